package volume

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

func unitDensityGrid(n int) *UniformGridProvider {
	bounds := core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	values := make([]float64, n*n*n)
	for i := range values {
		values[i] = 1
	}
	return NewUniformGridProviderDensity(bounds, NewFloatGrid(n, n, n, values), spectrum.ConstantSpectrum{C: 0}, nil)
}

// Scenario 3: cuboid uniform-grid with constant density 1 in [0,1]^3,
// sigma_t=1, ray from (-1, 0.5, 0.5) along +x clipped to [0,1]:
// should behave like a homogeneous medium over length 1.
func TestCuboidMedium_ClippedToBounds(t *testing.T) {
	provider := unitDensityGrid(4)
	m := NewCuboidMedium[*UniformGridProvider](provider,
		spectrum.ConstantSpectrum{C: 0.5}, spectrum.ConstantSpectrum{C: 0.5}, 1, 0, core.Identity())

	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))
	w := spectrum.SampleUniform(0.3)
	rng := rand.New(rand.NewSource(7))

	var lastT float64
	count := 0
	result := m.SampleTMaj(ray, 3, 1-1e-12, rng, w, func(s Sample) bool {
		count++
		lastT = s.Intr.P.X - (-1)
		return true
	})

	if count != 0 {
		t.Fatalf("u close to 1 should draw t far past tMax, expected no callback, got %d (last t=%v)", count, lastT)
	}
	// ray travels 1 unit of unit-density sigma_t=1 medium, then exits to
	// vacuum for the remaining 2 units: T_maj == exp(-1).
	want := math.Exp(-1)
	if math.Abs(result.At(0)-want) > 1e-6 {
		t.Errorf("expected T_maj=%v, got %v", want, result.At(0))
	}
}

func TestCuboidMedium_MissesBounds_NoCallback(t *testing.T) {
	provider := unitDensityGrid(4)
	m := NewCuboidMedium[*UniformGridProvider](provider,
		spectrum.ConstantSpectrum{C: 1}, spectrum.ConstantSpectrum{C: 1}, 1, 0, core.Identity())

	// ray entirely outside [0,1]^3, parallel to and offset from it
	ray := core.NewRay(core.NewVec3(-1, 5, 5), core.NewVec3(1, 0, 0))
	w := spectrum.SampleUniform(0.3)
	rng := rand.New(rand.NewSource(1))
	called := false
	result := m.SampleTMaj(ray, 10, 0.5, rng, w, func(Sample) bool { called = true; return true })

	if called {
		t.Error("expected no callback for a ray that misses the medium bounds")
	}
	for i := 0; i < spectrum.NSamples; i++ {
		if result.At(i) != 1 {
			t.Errorf("expected T=1 for a ray that misses bounds, got %v", result.At(i))
		}
	}
}

// Callback t values must be strictly increasing (invariant 4). Use a
// single coarse voxel spanning the whole medium and a high sigma_t so
// several events fire inside it via the refreshed rng.Float64() draws.
func TestCuboidMedium_CallbackTStrictlyIncreasing(t *testing.T) {
	provider := unitDensityGrid(1)
	m := NewCuboidMedium[*UniformGridProvider](provider,
		spectrum.ConstantSpectrum{C: 10}, spectrum.ConstantSpectrum{C: 10}, 1, 0, core.Identity())

	ray := core.NewRay(core.NewVec3(0, 0.5, 0.5), core.NewVec3(1, 0, 0))
	w := spectrum.SampleUniform(0.3)
	rng := rand.New(rand.NewSource(42))

	prevT := -math.MaxFloat64
	count := 0
	m.SampleTMaj(ray, 1, 0.5, rng, w, func(s Sample) bool {
		curT := s.Intr.P.X
		if curT <= prevT {
			t.Fatalf("expected strictly increasing t, got %v after %v", curT, prevT)
		}
		prevT = curT
		count++
		return true
	})
	if count < 2 {
		t.Fatalf("expected multiple callbacks to meaningfully test ordering, got %d", count)
	}
}

// Returning false from the callback halts sampling immediately
// (invariant 5 / scenario 6).
func TestCuboidMedium_CallbackFalseStopsImmediately(t *testing.T) {
	provider := unitDensityGrid(8)
	m := NewCuboidMedium[*UniformGridProvider](provider,
		spectrum.ConstantSpectrum{C: 5}, spectrum.ConstantSpectrum{C: 5}, 1, 0, core.Identity())

	ray := core.NewRay(core.NewVec3(0, 0.5, 0.5), core.NewVec3(1, 0, 0))
	w := spectrum.SampleUniform(0.3)
	rng := rand.New(rand.NewSource(11))

	count := 0
	result := m.SampleTMaj(ray, 1, 0.5, rng, w, func(Sample) bool {
		count++
		return false
	})

	if count != 1 {
		t.Fatalf("expected exactly one callback before stopping, got %d", count)
	}
	for i := 0; i < spectrum.NSamples; i++ {
		if result.At(i) != 1 {
			t.Errorf("expected SampledSpectrum(1) returned after early stop, got %v", result.At(i))
		}
	}
}

// Sample must transform its render-space point into medium space
// before querying the provider, the same way SampleTMaj already does
// for the ray. A provider whose density varies sharply across x
// distinguishes a correctly transformed query from one that queries
// the untransformed render-space point directly.
func TestCuboidMedium_SampleTransformsPointIntoMediumSpace(t *testing.T) {
	bounds := core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	values := make([]float64, 8) // 2x2x2, indexed x + 2*(y + 2*z)
	for i := range values {
		if i%2 == 1 {
			values[i] = 1 // every x=1 lattice point
		}
	}
	provider := NewUniformGridProviderDensity(bounds, NewFloatGrid(2, 2, 2, values), spectrum.ConstantSpectrum{C: 0}, nil)

	renderFromMedium := core.Translate(core.NewVec3(5, 0, 0))
	m := NewCuboidMedium[*UniformGridProvider](provider,
		spectrum.ConstantSpectrum{C: 1}, spectrum.ConstantSpectrum{C: 1}, 1, 0, renderFromMedium)

	w := spectrum.SampleUniform(0.3)

	near := m.Sample(core.NewVec3(5.1, 0.5, 0.5), w) // medium-space x=0.1: low density
	if near.SigmaA.At(0) > 1e-9 {
		t.Errorf("expected near-zero sigma_a at medium-space x=0.1, got %v (point not transformed into medium space?)", near.SigmaA.At(0))
	}

	far := m.Sample(core.NewVec3(5.9, 0.5, 0.5), w) // medium-space x=0.9: full density
	if math.Abs(far.SigmaA.At(0)-1) > 1e-9 {
		t.Errorf("expected sigma_a close to 1 at medium-space x=0.9, got %v", far.SigmaA.At(0))
	}
}

// Transmittance-conservation identity: the returned trailing
// transmittance times the product of every T_maj reported to the
// callback equals exp(-integral of sigma_maj) to within numerical
// tolerance, checked here against a deterministic single-cell grid
// where the integral is exp(-sigma_t * traversal length).
func TestCuboidMedium_TransmittanceConservation(t *testing.T) {
	provider := unitDensityGrid(1)
	const sigmaT = 3.0
	m := NewCuboidMedium[*UniformGridProvider](provider,
		spectrum.ConstantSpectrum{C: sigmaT / 2}, spectrum.ConstantSpectrum{C: sigmaT / 2}, 1, 0, core.Identity())

	ray := core.NewRay(core.NewVec3(0, 0.5, 0.5), core.NewVec3(1, 0, 0))
	w := spectrum.SampleUniform(0.3)
	rng := rand.New(rand.NewSource(5))

	product := 1.0
	result := m.SampleTMaj(ray, 1, 0.5, rng, w, func(s Sample) bool {
		product *= s.TMaj.At(0)
		return true
	})
	total := product * result.At(0)
	want := math.Exp(-sigmaT * 1)
	if math.Abs(total-want) > 1e-4*want {
		t.Errorf("expected combined transmittance %v, got %v", want, total)
	}
}
