package volume

import (
	"math"

	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

// vdbMajorantRes is the fixed majorant-grid resolution for the
// sparse-grid (VDB) provider.
const vdbMajorantRes = 64

// VDBProvider wraps an opaque sparse density grid and an optional
// sparse temperature grid. The on-disk format backing SparseFloatGrid
// is out of scope; this provider only needs point sampling and
// index/world bounds from it.
type VDBProvider struct {
	density     *SparseFloatGrid
	temperature *SparseFloatGrid

	bounds core.AABB

	leScale           float64
	temperatureCutoff float64
	temperatureScale  float64
}

// NewVDBProvider builds a provider over density (required) and an
// optional temperature grid used for blackbody emission.
func NewVDBProvider(density, temperature *SparseFloatGrid, leScale, temperatureCutoff, temperatureScale float64) *VDBProvider {
	bounds := density.WorldBounds()
	if temperature != nil {
		bounds = bounds.Union(temperature.WorldBounds())
	}
	return &VDBProvider{
		density:           density,
		temperature:       temperature,
		bounds:            bounds,
		leScale:           leScale,
		temperatureCutoff: temperatureCutoff,
		temperatureScale:  temperatureScale,
	}
}

func (p *VDBProvider) Bounds() core.AABB { return p.bounds }

func (p *VDBProvider) IsEmissive() bool {
	return p.temperature != nil && p.leScale > 0
}

func (p *VDBProvider) Density(point core.Vec3, _ spectrum.SampledWavelengths) Density {
	pIndex := p.density.WorldToIndex(point)
	return ScalarDensity(p.density.SampleIndex(pIndex))
}

func (p *VDBProvider) Le(point core.Vec3, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	if p.temperature == nil {
		return spectrum.NewSampledSpectrum(0)
	}
	pIndex := p.temperature.WorldToIndex(point)
	temp := p.temperature.SampleIndex(pIndex)
	temp = (temp - p.temperatureCutoff) * p.temperatureScale
	if temp <= 100 {
		return spectrum.NewSampledSpectrum(0)
	}
	return spectrum.NewBlackbodySpectrum(temp).Sample(lambda).Scale(p.leScale)
}

// GetMaxDensityGrid computes a 64^3 majorant grid in parallel: each
// cell's world bounds are mapped to the density grid's index space,
// expanded by one voxel of filter slop, clamped to its active index
// box, and the maximum stored value over that inclusive range is
// taken. Cells write only to their own output slot so this is safe
// to run concurrently with no shared mutable state.
func (p *VDBProvider) GetMaxDensityGrid() ([]float64, [3]int) {
	const r = vdbMajorantRes
	res := [3]int{r, r, r}
	grid := make([]float64, r*r*r)

	const filterSlop = 1.0

	parallelFor(len(grid), func(index int) {
		x := index % r
		y := (index / r) % r
		z := index / (r * r)

		lo := p.bounds.Lerp(core.NewVec3(float64(x)/r, float64(y)/r, float64(z)/r))
		hi := p.bounds.Lerp(core.NewVec3(float64(x+1)/r, float64(y+1)/r, float64(z+1)/r))

		i0 := p.density.WorldToIndex(lo)
		i1 := p.density.WorldToIndex(hi)

		loIdx := [3]int{
			int(math.Floor(math.Min(i0.X, i1.X) - filterSlop)),
			int(math.Floor(math.Min(i0.Y, i1.Y) - filterSlop)),
			int(math.Floor(math.Min(i0.Z, i1.Z) - filterSlop)),
		}
		hiIdx := [3]int{
			int(math.Ceil(math.Max(i0.X, i1.X) + filterSlop)),
			int(math.Ceil(math.Max(i0.Y, i1.Y) + filterSlop)),
			int(math.Ceil(math.Max(i0.Z, i1.Z) + filterSlop)),
		}

		grid[index] = p.density.MaxInIndexRange(loIdx, hiIdx)
	})

	return grid, res
}
