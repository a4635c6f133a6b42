package core

import "testing"

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 2), NewVec3(0.5, 3, 2.5))
	u := a.Union(b)

	if u.Min != NewVec3(-1, 0, 0) {
		t.Errorf("expected min (-1,0,0), got %v", u.Min)
	}
	if u.Max != NewVec3(1, 3, 2.5) {
		t.Errorf("expected max (1,3,2.5), got %v", u.Max)
	}
}

func TestAABB_OffsetLerp_RoundTrip(t *testing.T) {
	box := NewAABB(NewVec3(-2, 0, 1), NewVec3(4, 10, 3))
	p := NewVec3(1, 7, 2.5)

	o := box.Offset(p)
	back := box.Lerp(o)

	if back.Subtract(p).Length() > 1e-9 {
		t.Errorf("Lerp(Offset(p)) should recover p, got %v want %v", back, p)
	}
}

func TestAABB_Offset_DegenerateAxis(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(0, 5, 5))
	o := box.Offset(NewVec3(0, 2.5, 2.5))
	if o.X != 0 {
		t.Errorf("expected zero-width axis to map to 0, got %v", o.X)
	}
}

func TestAABB_IntersectP_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	tMin, tHit, ok := box.IntersectP(NewVec3(-5, 0, 0), NewVec3(1, 0, 0), 1e9)
	if !ok {
		t.Fatal("expected ray to hit box")
	}
	if tMin < 3.999 || tMin > 4.001 {
		t.Errorf("expected tMin near 4, got %v", tMin)
	}
	if tHit < 5.999 || tHit > 6.001 {
		t.Errorf("expected tHit near 6, got %v", tHit)
	}
}

func TestAABB_IntersectP_Miss(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	_, _, ok := box.IntersectP(NewVec3(-5, 5, 0), NewVec3(1, 0, 0), 1e9)
	if ok {
		t.Error("expected ray parallel to and offset from the box to miss")
	}
}

func TestAABB_IntersectP_ClampedByTMax(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	_, _, ok := box.IntersectP(NewVec3(-5, 0, 0), NewVec3(1, 0, 0), 2)
	if ok {
		t.Error("expected intersection beyond tMax to be rejected")
	}
}

func TestAABB_IsValid(t *testing.T) {
	if !NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)).IsValid() {
		t.Error("expected valid box to report valid")
	}
	if NewAABB(NewVec3(2, 0, 0), NewVec3(1, 1, 1)).IsValid() {
		t.Error("expected inverted box to report invalid")
	}
}
