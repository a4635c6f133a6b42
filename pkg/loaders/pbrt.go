package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Roweax/pbrt-v4/pkg/core"
)

// PBRTParam is a single named parameter with its declared type and raw
// string values, exactly as written in the scene file. Values are kept
// as strings; callers convert on demand through the GetXParam helpers.
type PBRTParam struct {
	Type   string
	Values []string
}

// PBRTStatement is one parsed scene-file directive. Only MakeNamedMedium
// carries domain meaning here; every other directive (Camera, Shape,
// Material, LightSource, ...) is recognized only so the tokenizer can
// skip past it without erroring - surface scattering, shading, and
// scene geometry are handled by other collaborators, not this package.
type PBRTStatement struct {
	Type       string
	Name       string // MakeNamedMedium: the medium's name
	Subtype    string // MakeNamedMedium: the "string type" value (homogeneous, uniformgrid, cloud, nanovdb)
	Parameters map[string]PBRTParam
	CTM        core.Transform // current-transform-matrix in effect when the statement was parsed
}

// PBRTScene is the parsed result of a scene file: every MakeNamedMedium
// statement encountered, each tagged with the transform in effect at
// the point it appeared.
type PBRTScene struct {
	Media []PBRTStatement
}

// pbrtParser encapsulates the state and logic for parsing PBRT files
type pbrtParser struct {
	scene          *PBRTScene
	ctm            core.Transform
	ctmStack       []core.Transform
	statementLines []string
}

// ParsePBRT parses PBRT content from an io.Reader
func ParsePBRT(reader io.Reader) (*PBRTScene, error) {
	parser := newPBRTParser()

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, err
		}
	}

	if err := parser.finalize(); err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %v", err)
	}

	return parser.scene, nil
}

// LoadPBRT loads and parses a PBRT scene file
func LoadPBRT(filename string) (*PBRTScene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PBRT file: %v", err)
	}
	defer file.Close()

	return ParsePBRT(file)
}

func newPBRTParser() *pbrtParser {
	return &pbrtParser{
		scene:          &PBRTScene{Media: make([]PBRTStatement, 0)},
		ctm:            core.Identity(),
		ctmStack:       make([]core.Transform, 0),
		statementLines: make([]string, 0),
	}
}

// processAccumulatedStatement processes any accumulated statement lines and clears them
func (p *pbrtParser) processAccumulatedStatement(context string) error {
	if len(p.statementLines) == 0 {
		return nil
	}
	fullStatement := strings.Join(p.statementLines, " ")
	stmt, err := parseStatement(fullStatement)
	if err != nil {
		return fmt.Errorf("error parsing statement %s '%s': %v", context, fullStatement, err)
	}
	p.statementLines = nil
	return p.routeStatement(stmt)
}

// processAttributeBegin saves the current transform so AttributeEnd can restore it
func (p *pbrtParser) processAttributeBegin() error {
	if err := p.processAccumulatedStatement("before AttributeBegin"); err != nil {
		return err
	}
	p.ctmStack = append(p.ctmStack, p.ctm)
	return nil
}

// processAttributeEnd restores the transform saved by the matching AttributeBegin
func (p *pbrtParser) processAttributeEnd() error {
	if err := p.processAccumulatedStatement("before AttributeEnd"); err != nil {
		return err
	}
	if len(p.ctmStack) == 0 {
		return fmt.Errorf("AttributeEnd without a matching AttributeBegin")
	}
	p.ctm = p.ctmStack[len(p.ctmStack)-1]
	p.ctmStack = p.ctmStack[:len(p.ctmStack)-1]
	return nil
}

// processLine processes a single line of PBRT input
func (p *pbrtParser) processLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	switch line {
	case "WorldBegin", "WorldEnd":
		return p.processAccumulatedStatement("before " + line)
	case "AttributeBegin", "ObjectBegin", "TransformBegin":
		return p.processAttributeBegin()
	case "AttributeEnd", "ObjectEnd", "TransformEnd":
		return p.processAttributeEnd()
	case "Identity":
		if err := p.processAccumulatedStatement("before Identity"); err != nil {
			return err
		}
		p.ctm = core.Identity()
		return nil
	}

	if isStatementStart(line) {
		if err := p.processAccumulatedStatement(""); err != nil {
			return err
		}
		p.statementLines = []string{line}
	} else {
		if len(p.statementLines) == 0 {
			return fmt.Errorf("unexpected continuation line: %s", line)
		}
		p.statementLines = append(p.statementLines, line)
	}

	return nil
}

// finalize processes any remaining accumulated statements
func (p *pbrtParser) finalize() error {
	return p.processAccumulatedStatement("at end of file")
}

// routeStatement applies Translate and Scale directives to the CTM and
// records MakeNamedMedium statements; every other directive is
// discarded, since geometry, materials, lights, and camera setup belong
// to other collaborators. Rotate, Transform, ConcatTransform and LookAt
// are parsed but do not change the CTM.
func (p *pbrtParser) routeStatement(stmt *PBRTStatement) error {
	switch stmt.Type {
	case "Translate":
		v, err := parseFloatTriple(stmt.Parameters["values"].Values)
		if err != nil {
			return fmt.Errorf("invalid Translate: %v", err)
		}
		p.ctm = p.ctm.Compose(core.Translate(v))
	case "Scale":
		v, err := parseFloatTriple(stmt.Parameters["values"].Values)
		if err != nil {
			return fmt.Errorf("invalid Scale: %v", err)
		}
		p.ctm = p.ctm.Compose(core.Scale(v.X, v.Y, v.Z))
	case "MakeNamedMedium":
		stmt.CTM = p.ctm
		p.scene.Media = append(p.scene.Media, *stmt)
	}
	return nil
}

func parseFloatTriple(values []string) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 values, got %d", len(values))
	}
	x, err1 := strconv.ParseFloat(values[0], 64)
	y, err2 := strconv.ParseFloat(values[1], 64)
	z, err3 := strconv.ParseFloat(values[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return core.Vec3{}, fmt.Errorf("non-numeric component in %v", values)
	}
	return core.NewVec3(x, y, z), nil
}

// validateFilePath validates a file path for security issues
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	cleanPath := filepath.Clean(filename)

	if !strings.HasPrefix(cleanPath, "scenes/") &&
		!strings.HasPrefix(cleanPath, os.TempDir()) &&
		!strings.Contains(cleanPath, "scenes/") {
		return fmt.Errorf("file path must be in scenes/ directory")
	}

	if strings.Contains(cleanPath, "..") {
		if !strings.Contains(cleanPath, "scenes/") {
			return fmt.Errorf("invalid file path: directory traversal not allowed")
		}
	}

	if !strings.HasSuffix(strings.ToLower(cleanPath), ".pbrt") {
		return fmt.Errorf("invalid file type: only .pbrt files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	return nil
}

// tokenizePBRT tokenizes a PBRT line respecting quoted strings and brackets
func tokenizePBRT(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	inBrackets := false

	for _, char := range line {
		switch char {
		case '"':
			if !inBrackets {
				current.WriteRune(char)
				if inQuotes {
					tokens = append(tokens, current.String())
					current.Reset()
					inQuotes = false
				} else {
					inQuotes = true
				}
			} else {
				current.WriteRune(char)
			}
		case '[':
			if !inQuotes {
				if current.Len() > 0 {
					tokens = append(tokens, current.String())
					current.Reset()
				}
				current.WriteRune(char)
				inBrackets = true
			} else {
				current.WriteRune(char)
			}
		case ']':
			if !inQuotes && inBrackets {
				current.WriteRune(char)
				tokens = append(tokens, current.String())
				current.Reset()
				inBrackets = false
			} else {
				current.WriteRune(char)
			}
		case ' ', '\t':
			if inQuotes || inBrackets {
				current.WriteRune(char)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// parseStatement parses a single PBRT statement line
func parseStatement(line string) (*PBRTStatement, error) {
	for _, transform := range []string{"Translate", "Rotate", "Scale", "Transform", "ConcatTransform", "LookAt"} {
		if strings.HasPrefix(line, transform) {
			parts := strings.Fields(line[len(transform):])
			return &PBRTStatement{
				Type:       transform,
				Parameters: map[string]PBRTParam{"values": {Type: "float", Values: parts}},
			}, nil
		}
	}

	parts := tokenizePBRT(line)
	if len(parts) < 1 {
		return nil, fmt.Errorf("invalid statement format")
	}

	stmtType := parts[0]
	parts = parts[1:]

	if stmtType == "MakeNamedMedium" {
		return parseMakeNamedMedium(parts)
	}

	stmt := &PBRTStatement{Type: stmtType, Parameters: make(map[string]PBRTParam)}

	// Extract subtype (quoted string immediately after the type), when present
	if len(parts) > 0 && strings.HasPrefix(parts[0], "\"") && strings.HasSuffix(parts[0], "\"") {
		stmt.Subtype = strings.Trim(parts[0], "\"")
		parts = parts[1:]
	}

	params, err := parseParams(parts)
	if err != nil {
		return nil, err
	}
	stmt.Parameters = params
	return stmt, nil
}

// parseMakeNamedMedium parses the body of a MakeNamedMedium directive:
// a quoted name followed by the usual "type value" parameter pairs,
// one of which must be the required "string type" declaration.
func parseMakeNamedMedium(parts []string) (*PBRTStatement, error) {
	if len(parts) < 1 || !strings.HasPrefix(parts[0], "\"") {
		return nil, fmt.Errorf("MakeNamedMedium requires a quoted name")
	}
	name := strings.Trim(parts[0], "\"")

	params, err := parseParams(parts[1:])
	if err != nil {
		return nil, fmt.Errorf("MakeNamedMedium %q: %v", name, err)
	}

	typeParam, ok := params["type"]
	if !ok || len(typeParam.Values) == 0 {
		return nil, fmt.Errorf("MakeNamedMedium %q: missing required \"string type\" parameter", name)
	}

	return &PBRTStatement{
		Type:       "MakeNamedMedium",
		Name:       name,
		Subtype:    typeParam.Values[0],
		Parameters: params,
	}, nil
}

// parseParams parses a run of "type name" value [value ...] tokens into
// a parameter dictionary.
func parseParams(parts []string) (map[string]PBRTParam, error) {
	params := make(map[string]PBRTParam)

	i := 0
	for i < len(parts) {
		if !strings.HasPrefix(parts[i], "\"") {
			i++
			continue
		}

		paramDef := strings.Trim(parts[i], "\"")
		paramParts := strings.Fields(paramDef)
		if len(paramParts) != 2 {
			i++
			continue
		}

		paramType := paramParts[0]
		paramName := paramParts[1]
		i++

		var values []string
		if i < len(parts) {
			if strings.HasPrefix(parts[i], "[") && strings.HasSuffix(parts[i], "]") {
				arrayStr := strings.Trim(parts[i], "[] ")
				values = strings.Fields(arrayStr)
				i++
			} else {
				values = []string{strings.Trim(parts[i], "\"")}
				i++
			}
		}

		params[paramName] = PBRTParam{Type: paramType, Values: values}
	}

	return params, nil
}

// GetFloatParam extracts a float parameter from a PBRT statement
func (stmt *PBRTStatement) GetFloatParam(name string) (float64, bool) {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) == 0 {
		return 0, false
	}
	val, err := strconv.ParseFloat(param.Values[0], 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// GetIntParam extracts an integer parameter from a PBRT statement
func (stmt *PBRTStatement) GetIntParam(name string) (int, bool) {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) == 0 {
		return 0, false
	}
	val, err := strconv.Atoi(param.Values[0])
	if err != nil {
		return 0, false
	}
	return val, true
}

// GetFloatArrayParam extracts every value of a float-typed parameter
func (stmt *PBRTStatement) GetFloatArrayParam(name string) ([]float64, bool) {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) == 0 {
		return nil, false
	}
	out := make([]float64, len(param.Values))
	for i, s := range param.Values {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// GetRGBParam extracts an RGB color parameter from a PBRT statement
func (stmt *PBRTStatement) GetRGBParam(name string) (*core.Vec3, bool) {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) < 3 {
		return nil, false
	}
	r, err1 := strconv.ParseFloat(param.Values[0], 64)
	g, err2 := strconv.ParseFloat(param.Values[1], 64)
	b, err3 := strconv.ParseFloat(param.Values[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}
	return &core.Vec3{X: r, Y: g, Z: b}, true
}

// GetRGBArrayParam extracts a flat per-voxel RGB grid, grouping every 3
// consecutive values into one color.
func (stmt *PBRTStatement) GetRGBArrayParam(name string) ([][3]float64, bool) {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) == 0 || len(param.Values)%3 != 0 {
		return nil, false
	}
	out := make([][3]float64, len(param.Values)/3)
	for i := range out {
		for c := 0; c < 3; c++ {
			v, err := strconv.ParseFloat(param.Values[3*i+c], 64)
			if err != nil {
				return nil, false
			}
			out[i][c] = v
		}
	}
	return out, true
}

// GetPoint3Param extracts a point3 parameter from a PBRT statement
func (stmt *PBRTStatement) GetPoint3Param(name string) (*core.Vec3, bool) {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) < 3 {
		return nil, false
	}
	x, err1 := strconv.ParseFloat(param.Values[0], 64)
	y, err2 := strconv.ParseFloat(param.Values[1], 64)
	z, err3 := strconv.ParseFloat(param.Values[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}
	return &core.Vec3{X: x, Y: y, Z: z}, true
}

// GetStringParam extracts a string parameter from a PBRT statement
func (stmt *PBRTStatement) GetStringParam(name string) (string, bool) {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) == 0 {
		return "", false
	}
	return param.Values[0], true
}

// isStatementStart determines if a line starts a new PBRT statement
func isStatementStart(line string) bool {
	statementTypes := []string{
		"Camera", "Film", "Sampler", "Integrator", "LookAt", "PixelFilter", "Accelerator",
		"Material", "Shape", "LightSource", "AreaLightSource", "Texture",
		"Translate", "Rotate", "Scale", "Transform", "ConcatTransform",
		"ReverseOrientation", "Attribute", "MakeNamedMedium", "MediumInterface",
		"NamedMaterial", "ObjectInstance", "CoordinateSystem",
	}

	for _, stmt := range statementTypes {
		if strings.HasPrefix(line, stmt+" ") || line == stmt {
			return true
		}
	}
	return false
}
