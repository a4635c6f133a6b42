package volume

import (
	"math/rand"

	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/phase"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

// Density is returned by a Provider's Density query. Most providers
// report a single scalar that scales sigma_a and sigma_s equally; the
// uniform-grid provider's separate-sigma variant reports an
// independent pair instead.
type Density struct {
	SigmaA, SigmaS float64
}

// ScalarDensity builds a Density that scales sigma_a and sigma_s
// equally by d.
func ScalarDensity(d float64) Density {
	return Density{SigmaA: d, SigmaS: d}
}

// Properties is returned by Medium.Sample: the local scattering and
// emission coefficients resolved at a set of sampled wavelengths.
type Properties struct {
	SigmaA, SigmaS spectrum.SampledSpectrum
	Phase          phase.Function
	Le             spectrum.SampledSpectrum
}

// Interaction describes a tentative scattering event reported to a
// Callback while walking a ray through a medium. It carries a
// back-pointer to the owning medium and phase function for later
// phase-function dispatch; callers must not retain it past the
// callback call that received it.
type Interaction struct {
	P        core.Vec3
	Wo       core.Vec3
	Time     float64
	SigmaA   spectrum.SampledSpectrum
	SigmaS   spectrum.SampledSpectrum
	SigmaMaj spectrum.SampledSpectrum
	Le       spectrum.SampledSpectrum
	Medium   Medium
	Phase    phase.Function
}

// Sample pairs a tentative Interaction with the majorant transmittance
// accumulated along the segment leading up to it.
type Sample struct {
	Intr Interaction
	TMaj spectrum.SampledSpectrum
}

// Callback is invoked once per tentative scattering event found while
// walking a ray through a medium, in strictly increasing t order.
// Returning true continues the walk (the event was a null collision);
// returning false halts it immediately (the integrator accepted a
// real collision and the remaining majorant transmittance is moot).
type Callback func(Sample) bool

// Medium is the polymorphic object the integrator sees: either a
// HomogeneousMedium or a CuboidMedium over some Provider.
type Medium interface {
	// Sample returns the local scattering/emission coefficients at a
	// render-space point, pure and safe for concurrent invocation.
	Sample(p core.Vec3, lambda spectrum.SampledWavelengths) Properties

	// SampleTMaj walks ray (in render space) out to tMax, drawing
	// exponentially distributed free-flight distances against the
	// medium's majorant extinction and invoking cb at each tentative
	// event. u is the first uniform sample to consume; rng supplies
	// every subsequent one. Returns the majorant transmittance for
	// whatever portion of the ray was not reported to cb.
	SampleTMaj(ray core.Ray, tMax, u float64, rng *rand.Rand, lambda spectrum.SampledWavelengths, cb Callback) spectrum.SampledSpectrum

	IsEmissive() bool
	String() string
}

// Provider is a polymorphic source of spatially varying density
// inside an axis-aligned bounding box in medium space, underlying a
// CuboidMedium.
type Provider interface {
	Bounds() core.AABB
	IsEmissive() bool
	Density(p core.Vec3, lambda spectrum.SampledWavelengths) Density
	Le(p core.Vec3, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum

	// GetMaxDensityGrid returns a coarse majorant grid: res reports
	// its resolution (Rx, Ry, Rz) and grid holds Rx*Ry*Rz per-cell
	// upper bounds on density, linearized as i = x + Rx*(y + Ry*z).
	GetMaxDensityGrid() (grid []float64, res [3]int)
}
