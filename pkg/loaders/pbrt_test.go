package loaders

import (
	"strings"
	"testing"

	"github.com/Roweax/pbrt-v4/pkg/core"
)

func TestTokenizePBRT_QuotedStringsAndBrackets(t *testing.T) {
	tokens := tokenizePBRT(`MakeNamedMedium "fog" "string type" "homogeneous" "rgb sigma_a" [0.5 0.5 0.5]`)
	want := []string{
		`MakeNamedMedium`, `"fog"`, `"string type"`, `"homogeneous"`, `"rgb sigma_a"`, `[0.5 0.5 0.5]`,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestTokenizePBRT_SpaceInsideQuotesPreserved(t *testing.T) {
	tokens := tokenizePBRT(`"float scale" 2.0`)
	if len(tokens) != 2 || tokens[0] != `"float scale"` {
		t.Fatalf("expected a single two-word quoted token, got %v", tokens)
	}
}

func TestParseStatement_MakeNamedMediumExtractsNameAndSubtype(t *testing.T) {
	stmt, err := parseStatement(`MakeNamedMedium "fog" "string type" "homogeneous" "float scale" 2.0`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt.Type != "MakeNamedMedium" || stmt.Name != "fog" || stmt.Subtype != "homogeneous" {
		t.Errorf("got Type=%q Name=%q Subtype=%q", stmt.Type, stmt.Name, stmt.Subtype)
	}
	v, ok := stmt.GetFloatParam("scale")
	if !ok || v != 2.0 {
		t.Errorf("expected scale=2.0, got %v ok=%v", v, ok)
	}
}

func TestParseStatement_MakeNamedMediumMissingTypeIsError(t *testing.T) {
	_, err := parseStatement(`MakeNamedMedium "fog" "float scale" 2.0`)
	if err == nil {
		t.Error("expected an error when \"string type\" is missing")
	}
}

func TestParseStatement_MakeNamedMediumWithoutAnyParamsErrors(t *testing.T) {
	// The first quoted token is consumed as the name, leaving no
	// well-formed "type name" parameter pair behind, so the required
	// "string type" declaration is never found.
	_, err := parseStatement(`MakeNamedMedium "string type" "homogeneous"`)
	if err == nil {
		t.Error("expected an error when no \"string type\" parameter can be parsed")
	}
}

func TestParseStatement_ShapeStatementIsIgnoredButDoesNotError(t *testing.T) {
	stmt, err := parseStatement(`Shape "sphere" "float radius" 1.0`)
	if err != nil {
		t.Fatalf("unexpected error parsing an out-of-scope statement: %v", err)
	}
	if stmt.Type != "Shape" || stmt.Subtype != "sphere" {
		t.Errorf("got Type=%q Subtype=%q", stmt.Type, stmt.Subtype)
	}
}

func TestParsePBRT_MultilineContinuation(t *testing.T) {
	src := `
MakeNamedMedium "fog" "string type" "homogeneous"
	"rgb sigma_a" [0.1 0.1 0.1]
	"rgb sigma_s" [0.9 0.9 0.9]
	"float scale" 1.5
`
	scene, err := ParsePBRT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scene.Media) != 1 {
		t.Fatalf("expected 1 medium statement, got %d", len(scene.Media))
	}
	m := scene.Media[0]
	if m.Name != "fog" || m.Subtype != "homogeneous" {
		t.Fatalf("got Name=%q Subtype=%q", m.Name, m.Subtype)
	}
	if v, ok := m.GetFloatParam("scale"); !ok || v != 1.5 {
		t.Errorf("expected scale=1.5 carried across continuation lines, got %v ok=%v", v, ok)
	}
	if arr, ok := m.GetFloatArrayParam("sigma_a"); !ok || len(arr) != 3 {
		t.Errorf("expected a 3-element sigma_a array, got %v ok=%v", arr, ok)
	}
}

func TestParsePBRT_CapturesTransformInEffect(t *testing.T) {
	src := `
Translate 1 2 3
MakeNamedMedium "fog" "string type" "homogeneous"
`
	scene, err := ParsePBRT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scene.Media) != 1 {
		t.Fatalf("expected 1 medium, got %d", len(scene.Media))
	}
	got := scene.Media[0].CTM.Point(core.NewVec3(0, 0, 0))
	if got.X != 1 || got.Y != 2 || got.Z != 3 {
		t.Errorf("expected the medium's CTM to carry the preceding Translate, got %v", got)
	}
}

func TestParsePBRT_AttributeBlockRestoresTransform(t *testing.T) {
	src := `
AttributeBegin
Translate 5 0 0
MakeNamedMedium "inside" "string type" "homogeneous"
AttributeEnd
MakeNamedMedium "outside" "string type" "homogeneous"
`
	scene, err := ParsePBRT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scene.Media) != 2 {
		t.Fatalf("expected 2 media, got %d", len(scene.Media))
	}
	inside := scene.Media[0].CTM.Point(core.NewVec3(0, 0, 0))
	outside := scene.Media[1].CTM.Point(core.NewVec3(0, 0, 0))
	if inside.X != 5 {
		t.Errorf("expected the translated transform inside the block, got %v", inside)
	}
	if outside.X != 0 {
		t.Errorf("expected the outer transform restored after AttributeEnd, got %v", outside)
	}
}

func TestParsePBRT_UnexpectedContinuationErrors(t *testing.T) {
	src := `
	"float scale" 1.0
`
	_, err := ParsePBRT(strings.NewReader(src))
	if err == nil {
		t.Error("expected an error for a continuation line with no preceding statement")
	}
}
