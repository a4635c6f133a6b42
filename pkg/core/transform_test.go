package core

import "testing"

func vecClose(a, b Vec3, eps float64) bool {
	return a.Subtract(b).Length() <= eps
}

func TestTransform_Identity(t *testing.T) {
	id := Identity()
	p := NewVec3(1, 2, 3)
	if !vecClose(id.Point(p), p, 1e-12) {
		t.Errorf("identity should fix points, got %v", id.Point(p))
	}
}

func TestTransform_TranslatePoint(t *testing.T) {
	tr := Translate(NewVec3(1, 2, 3))
	p := NewVec3(0, 0, 0)
	if got := tr.Point(p); !vecClose(got, NewVec3(1, 2, 3), 1e-12) {
		t.Errorf("expected (1,2,3), got %v", got)
	}
	// translation does not affect vectors
	v := NewVec3(5, -1, 2)
	if got := tr.Vector(v); !vecClose(got, v, 1e-12) {
		t.Errorf("translation should leave vectors unchanged, got %v", got)
	}
}

func TestTransform_ScalePoint(t *testing.T) {
	s := Scale(2, 3, 4)
	p := NewVec3(1, 1, 1)
	if got := s.Point(p); !vecClose(got, NewVec3(2, 3, 4), 1e-12) {
		t.Errorf("expected (2,3,4), got %v", got)
	}
}

func TestTransform_InverseRoundTrip(t *testing.T) {
	tr := Scale(2, 4, 0.5).Compose(Translate(NewVec3(3, -1, 2)))
	inv := tr.Inverse()

	p := NewVec3(7, -3, 9)
	roundTrip := inv.Point(tr.Point(p))
	if !vecClose(roundTrip, p, 1e-9) {
		t.Errorf("expected round trip to recover p, got %v want %v", roundTrip, p)
	}
}

func TestTransform_ComposeMatchesSequentialApplication(t *testing.T) {
	a := Translate(NewVec3(1, 0, 0))
	b := Scale(2, 2, 2)
	composed := a.Compose(b) // apply a, then b

	p := NewVec3(3, 4, 5)
	sequential := b.Point(a.Point(p))
	if !vecClose(composed.Point(p), sequential, 1e-9) {
		t.Errorf("composed transform should match sequential application, got %v want %v",
			composed.Point(p), sequential)
	}
}

func TestTransform_ComposeInverseRoundTrip(t *testing.T) {
	a := Translate(NewVec3(2, 5, -1))
	b := Scale(3, 1, 2)
	composed := a.Compose(b)
	inv := composed.Inverse()

	p := NewVec3(-2, 6, 11)
	roundTrip := inv.Point(composed.Point(p))
	if !vecClose(roundTrip, p, 1e-9) {
		t.Errorf("expected composed/inverse round trip, got %v want %v", roundTrip, p)
	}
}

func TestTransform_ApplyInverseRay(t *testing.T) {
	tr := Translate(NewVec3(1, 1, 1)).Compose(Scale(2, 2, 2))
	r := NewRay(NewVec3(5, 5, 5), NewVec3(1, 0, 0))

	mapped := tr.ApplyInverseRay(r)
	// origin should round trip back under the forward transform
	if !vecClose(tr.Point(mapped.Origin), r.Origin, 1e-9) {
		t.Errorf("expected forward(inverse(origin)) == origin, got %v", tr.Point(mapped.Origin))
	}
}
