package volume

import (
	"math"

	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

// CloudProvider is a purely analytic density field: no grid, just
// layered gradient noise with optional domain warping ("wispiness") and
// an altitude falloff, cheap enough to evaluate per point with no
// precomputed storage.
type CloudProvider struct {
	bounds    core.AABB
	density   float64
	wispiness float64
	frequency float64
}

// NewCloudProvider builds a cloud density field over bounds.
func NewCloudProvider(bounds core.AABB, density, wispiness, frequency float64) *CloudProvider {
	return &CloudProvider{bounds: bounds, density: density, wispiness: wispiness, frequency: frequency}
}

func (c *CloudProvider) Bounds() core.AABB { return c.bounds }

func (c *CloudProvider) IsEmissive() bool { return false }

func (c *CloudProvider) Le(core.Vec3, spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	return spectrum.NewSampledSpectrum(0)
}

func (c *CloudProvider) Density(p core.Vec3, _ spectrum.SampledWavelengths) Density {
	pp := p.Multiply(c.frequency)

	if c.wispiness > 0 {
		omega, lambda := 0.05*c.wispiness, 10.0
		for i := 0; i < 2; i++ {
			pp = pp.Add(DNoise(pp.Multiply(lambda)).Multiply(omega))
			omega *= 0.5
			lambda *= 1.99
		}
	}

	d := 0.0
	omega, lambda := 0.5, 1.0
	for i := 0; i < 5; i++ {
		d += omega * Noise(pp.Multiply(lambda))
		omega *= 0.5
		lambda *= 1.99
	}

	d = clamp((1-p.Y)*4.5*c.density*d, 0, 1)
	d += 2 * math.Max(0, 0.5-p.Y)
	return ScalarDensity(clamp(d, 0, 1))
}

func (c *CloudProvider) GetMaxDensityGrid() ([]float64, [3]int) {
	return []float64{1}, [3]int{1, 1, 1}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
