package core

// Transform represents an affine render-space <-> medium-space mapping:
// a 3x3 linear part plus a translation. It is immutable after
// construction; both the transform and its inverse are stored so that
// CuboidMedium can map a render-space ray into medium space without
// re-deriving the inverse on every call.
type Transform struct {
	m, mInv [3][3]float64
	t, tInv Vec3
}

// Identity returns the identity transform
func Identity() Transform {
	return Translate(Vec3{})
}

// Translate returns a transform that translates by v
func Translate(v Vec3) Transform {
	id := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	return Transform{m: id, mInv: id, t: v, tInv: v.Negate()}
}

// Scale returns a transform that scales by (x, y, z)
func Scale(x, y, z float64) Transform {
	m := [3][3]float64{{x, 0, 0}, {0, y, 0}, {0, 0, z}}
	mInv := [3][3]float64{{1 / x, 0, 0}, {0, 1 / y, 0}, {0, 0, 1 / z}}
	return Transform{m: m, mInv: mInv}
}

// mul3 multiplies a 3x3 matrix by a vector
func mul3(m [3][3]float64, v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// compose3 multiplies two 3x3 matrices: a * b
func compose3(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Compose returns the transform equivalent to applying t first, then other
// (t.Compose(other) means "other after t", matching matrix composition
// other * t).
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		m:    compose3(other.m, t.m),
		mInv: compose3(t.mInv, other.mInv),
		t:    mul3(other.m, t.t).Add(other.t),
		tInv: mul3(t.mInv, other.tInv).Add(t.tInv),
	}
}

// Inverse returns the inverse transform
func (t Transform) Inverse() Transform {
	return Transform{m: t.mInv, mInv: t.m, t: t.tInv, tInv: t.t}
}

// Point transforms a point, applying both the linear part and the translation
func (t Transform) Point(p Vec3) Vec3 {
	return mul3(t.m, p).Add(t.t)
}

// Vector transforms a direction vector, applying only the linear part
func (t Transform) Vector(v Vec3) Vec3 {
	return mul3(t.m, v)
}

// ApplyInverseRay maps a render-space ray into the space this transform
// maps *from* (i.e. applies the inverse transform to origin and
// direction). The returned direction is not renormalized and tMax is
// unaffected: t still parameterizes the same points, since an affine
// map preserves affine combinations along the ray.
func (t Transform) ApplyInverseRay(r Ray) Ray {
	inv := t.Inverse()
	return Ray{Origin: inv.Point(r.Origin), Direction: inv.Vector(r.Direction), Time: r.Time}
}
