package volume

import (
	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

// uniformGridMajorantRes is the fixed majorant-grid resolution for the
// uniform-grid provider.
const uniformGridMajorantRes = 16

// UniformGridProvider sources density from a dense voxel grid defined
// over its bounds. Exactly one of Density, (SigmaA, SigmaS) or RGB is
// populated, matching the source's exclusive density/sigma-pair/rgb
// variants.
type UniformGridProvider struct {
	bounds core.AABB

	density          *FloatGrid
	sigmaAGrid       *FloatGrid
	sigmaSGrid       *FloatGrid
	rgbR, rgbG, rgbB *FloatGrid

	le      spectrum.Spectrum
	leScale *FloatGrid
}

// NewUniformGridProviderDensity builds a provider backed by a single
// scalar density grid.
func NewUniformGridProviderDensity(bounds core.AABB, density *FloatGrid, le spectrum.Spectrum, leScale *FloatGrid) *UniformGridProvider {
	return &UniformGridProvider{bounds: bounds, density: density, le: le, leScale: leScale}
}

// NewUniformGridProviderSigma builds a provider backed by independent
// sigma_a/sigma_s grids.
func NewUniformGridProviderSigma(bounds core.AABB, sigmaA, sigmaS *FloatGrid, le spectrum.Spectrum, leScale *FloatGrid) *UniformGridProvider {
	return &UniformGridProvider{bounds: bounds, sigmaAGrid: sigmaA, sigmaSGrid: sigmaS, le: le, leScale: leScale}
}

// NewUniformGridProviderRGB builds a provider backed by an RGB density
// grid, broadcast to a scalar density via spectrum.RGBDensityValue.
func NewUniformGridProviderRGB(bounds core.AABB, r, g, b *FloatGrid, le spectrum.Spectrum, leScale *FloatGrid) *UniformGridProvider {
	return &UniformGridProvider{bounds: bounds, rgbR: r, rgbG: g, rgbB: b, le: le, leScale: leScale}
}

func (p *UniformGridProvider) Bounds() core.AABB { return p.bounds }

func (p *UniformGridProvider) IsEmissive() bool {
	return p.le != nil && p.le.MaxValue() > 0
}

func (p *UniformGridProvider) Density(point core.Vec3, lambda spectrum.SampledWavelengths) Density {
	o := p.bounds.Offset(point)
	pp := [3]float64{o.X, o.Y, o.Z}

	switch {
	case p.density != nil:
		return ScalarDensity(p.density.Lookup(pp))
	case p.sigmaAGrid != nil:
		return Density{SigmaA: p.sigmaAGrid.Lookup(pp), SigmaS: p.sigmaSGrid.Lookup(pp)}
	default:
		d := spectrum.RGBDensityValue(p.rgbR.Lookup(pp), p.rgbG.Lookup(pp), p.rgbB.Lookup(pp))
		return ScalarDensity(d)
	}
}

func (p *UniformGridProvider) Le(point core.Vec3, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	if p.le == nil {
		return spectrum.NewSampledSpectrum(0)
	}
	o := p.bounds.Offset(point)
	pp := [3]float64{o.X, o.Y, o.Z}
	scale := 1.0
	if p.leScale != nil {
		scale = p.leScale.Lookup(pp)
	}
	return p.le.Sample(lambda).Scale(scale)
}

func (p *UniformGridProvider) GetMaxDensityGrid() ([]float64, [3]int) {
	const r = uniformGridMajorantRes
	res := [3]int{r, r, r}
	grid := make([]float64, r*r*r)

	offset := 0
	for z := 0; z < r; z++ {
		for y := 0; y < r; y++ {
			for x := 0; x < r; x++ {
				lo := [3]float64{float64(x) / r, float64(y) / r, float64(z) / r}
				hi := [3]float64{float64(x+1) / r, float64(y+1) / r, float64(z+1) / r}

				var maxD float64
				switch {
				case p.density != nil:
					maxD = p.density.MaxValueInBounds(lo, hi)
				case p.sigmaAGrid != nil:
					maxD = p.sigmaAGrid.MaxValueInBounds(lo, hi) + p.sigmaSGrid.MaxValueInBounds(lo, hi)
				default:
					maxD = spectrum.RGBDensityValue(
						p.rgbR.MaxValueInBounds(lo, hi),
						p.rgbG.MaxValueInBounds(lo, hi),
						p.rgbB.MaxValueInBounds(lo, hi),
					)
				}
				grid[offset] = maxD
				offset++
			}
		}
	}
	return grid, res
}
