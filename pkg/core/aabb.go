package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Diagonal returns the vector from Min to Max
func (aabb AABB) Diagonal() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Offset returns the position of p relative to the box, in [0,1]^3 for
// points inside the box. Used to map a medium-space point into the
// majorant grid's unit-cube coordinates.
func (aabb AABB) Offset(p Vec3) Vec3 {
	o := p.Subtract(aabb.Min)
	diag := aabb.Diagonal()
	if diag.X > 0 {
		o.X /= diag.X
	}
	if diag.Y > 0 {
		o.Y /= diag.Y
	}
	if diag.Z > 0 {
		o.Z /= diag.Z
	}
	return o
}

// Lerp interpolates within the box by a [0,1]^3 coordinate
func (aabb AABB) Lerp(t Vec3) Vec3 {
	return Vec3{
		X: aabb.Min.X + t.X*(aabb.Max.X-aabb.Min.X),
		Y: aabb.Min.Y + t.Y*(aabb.Max.Y-aabb.Min.Y),
		Z: aabb.Min.Z + t.Z*(aabb.Max.Z-aabb.Min.Z),
	}
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// IntersectP intersects a ray (origin o, direction d, parameter range
// [0, tMax]) against the box using the slab method, returning the
// entry/exit parameters clipped to the box and to tMax.
func (aabb AABB) IntersectP(o, d Vec3, tMax float64) (tMin, tHit float64, ok bool) {
	tMin, tHit = 0, tMax
	for axis := 0; axis < 3; axis++ {
		lo := aabb.Min.Component(axis)
		hi := aabb.Max.Component(axis)
		origin := o.Component(axis)
		dir := d.Component(axis)

		if math.Abs(dir) < 1e-8 {
			if origin < lo || origin > hi {
				return 0, 0, false
			}
			continue
		}

		invDir := 1.0 / dir
		t0 := (lo - origin) * invDir
		t1 := (hi - origin) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		tMin = math.Max(tMin, t0)
		tHit = math.Min(tHit, t1)
		if tMin > tHit {
			return 0, 0, false
		}
	}
	return tMin, tHit, true
}
