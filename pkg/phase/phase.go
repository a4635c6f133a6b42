package phase

import (
	"fmt"
	"math"

	"github.com/Roweax/pbrt-v4/pkg/core"
)

// Sample is the outcome of drawing an outgoing direction from a
// PhaseFunction: the sampled direction, its density, and the phase
// value at that direction (equal to the density for every phase
// function implemented here, since all of them are perfectly
// importance sampled).
type Sample struct {
	PDF float64
	Wi  core.Vec3
	P   float64
}

// Function is a directional probability density governing scattering.
// It is a Go interface: calls through a Function value use interface
// dispatch, not a tagged variant. HenyeyGreenstein is its only
// implementation.
type Function interface {
	P(wo, wi core.Vec3) float64
	SampleP(wo core.Vec3, u core.Vec2) (Sample, bool)
	PDF(wo, wi core.Vec3) float64
	String() string
}

// HenyeyGreenstein is the sole required phase-function variant: a
// single-lobe approximation parameterized by asymmetry g in (-1, 1).
// g > 0 favors forward scattering, g < 0 favors back-scattering, g = 0
// is isotropic.
type HenyeyGreenstein struct {
	G float64
}

func henyeyGreenstein(cosTheta, g float64) float64 {
	denom := 1 + g*g + 2*g*cosTheta
	return (1 - g*g) / (4 * math.Pi * denom * math.Sqrt(math.Max(denom, 0)))
}

func (h HenyeyGreenstein) P(wo, wi core.Vec3) float64 {
	return henyeyGreenstein(wo.Dot(wi), h.G)
}

func (h HenyeyGreenstein) PDF(wo, wi core.Vec3) float64 {
	return h.P(wo, wi)
}

// SampleP draws an outgoing direction wi given incident direction wo
// and a uniform sample u, with pdf equal to p(wo, wi) by construction.
func (h HenyeyGreenstein) SampleP(wo core.Vec3, u core.Vec2) (Sample, bool) {
	g := h.G
	var cosTheta float64
	if math.Abs(g) > 1e-3 {
		sqrTerm := (1 - g*g) / (1 - g + 2*g*u.X)
		cosTheta = -(1 / (2 * g)) * (1 + g*g - sqrTerm*sqrTerm)
	} else {
		cosTheta = 1 - 2*u.X
	}

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y
	frame := newFrame(wo)
	wi := frame.fromLocal(sphericalDirection(sinTheta, cosTheta, phi))

	pdf := henyeyGreenstein(cosTheta, g)
	return Sample{PDF: pdf, Wi: wi, P: pdf}, true
}

func (h HenyeyGreenstein) String() string {
	return fmt.Sprintf("[ HenyeyGreenstein g: %f ]", h.G)
}

func sphericalDirection(sinTheta, cosTheta, phi float64) core.Vec3 {
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// orthonormalFrame builds a basis (s, t, n) around a normal direction,
// the same tangent/bitangent construction the sampler uses to turn a
// locally defined direction (relative to +z) into one relative to wo.
type orthonormalFrame struct {
	s, t, n core.Vec3
}

func newFrame(n core.Vec3) orthonormalFrame {
	n = n.Normalize()
	var s core.Vec3
	if math.Abs(n.X) > math.Abs(n.Y) {
		s = core.NewVec3(-n.Z, 0, n.X).Normalize()
	} else {
		s = core.NewVec3(0, n.Z, -n.Y).Normalize()
	}
	t := n.Cross(s)
	return orthonormalFrame{s: s, t: t, n: n}
}

func (f orthonormalFrame) fromLocal(v core.Vec3) core.Vec3 {
	return f.s.Multiply(v.X).Add(f.t.Multiply(v.Y)).Add(f.n.Multiply(v.Z))
}

