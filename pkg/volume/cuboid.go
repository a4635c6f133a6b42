package volume

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/phase"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

// CuboidMedium is a medium whose density varies spatially inside an
// axis-aligned box in medium space, sourced from a Provider. The DDA
// in SampleTMaj is identical regardless of which Provider is plugged
// in; only Density/Le/Bounds/GetMaxDensityGrid differ.
type CuboidMedium[P Provider] struct {
	provider P

	mediumBounds core.AABB
	sigmaA       spectrum.Spectrum
	sigmaS       spectrum.Spectrum
	sigScale     float64
	phase        phase.HenyeyGreenstein

	renderFromMedium core.Transform
	mediumFromRender core.Transform

	maxDensityGrid []float64
	gridRes        [3]int
}

// NewCuboidMedium builds a cuboid medium over provider, caching its
// bounds and building its majorant grid once up front.
func NewCuboidMedium[P Provider](provider P, sigmaA, sigmaS spectrum.Spectrum, sigScale, g float64, renderFromMedium core.Transform) *CuboidMedium[P] {
	grid, res := provider.GetMaxDensityGrid()
	return &CuboidMedium[P]{
		provider:         provider,
		mediumBounds:     provider.Bounds(),
		sigmaA:           sigmaA,
		sigmaS:           sigmaS,
		sigScale:         sigScale,
		phase:            phase.HenyeyGreenstein{G: g},
		renderFromMedium: renderFromMedium,
		mediumFromRender: renderFromMedium.Inverse(),
		maxDensityGrid:   grid,
		gridRes:          res,
	}
}

func (m *CuboidMedium[P]) IsEmissive() bool {
	return m.provider.IsEmissive()
}

func (m *CuboidMedium[P]) Sample(p core.Vec3, lambda spectrum.SampledWavelengths) Properties {
	sigmaA := m.sigmaA.Sample(lambda).Scale(m.sigScale)
	sigmaS := m.sigmaS.Sample(lambda).Scale(m.sigScale)

	pMedium := m.mediumFromRender.Point(p)
	d := m.provider.Density(pMedium, lambda)
	le := m.provider.Le(pMedium, lambda)
	return Properties{
		SigmaA: sigmaA.Scale(d.SigmaA),
		SigmaS: sigmaS.Scale(d.SigmaS),
		Phase:  m.phase,
		Le:     le,
	}
}

// stepAxis picks the axis whose nextCrossingT is smallest, breaking
// ties in x < y < z order. A straightforward comparison chain, as
// opposed to a packed-bits lookup table, since both are equivalent.
func stepAxis(nextCrossingT [3]float64) int {
	axis := 0
	for a := 1; a < 3; a++ {
		if nextCrossingT[a] < nextCrossingT[axis] {
			axis = a
		}
	}
	return axis
}

func (m *CuboidMedium[P]) SampleTMaj(rRender core.Ray, raytMax, u float64, rng *rand.Rand, lambda spectrum.SampledWavelengths, cb Callback) spectrum.SampledSpectrum {
	one := spectrum.NewSampledSpectrum(1)

	ray := m.renderFromMedium.ApplyInverseRay(rRender)
	rayTMax := raytMax
	rayTMax *= ray.Direction.Length()
	ray.Direction = ray.Direction.Normalize()

	tMin, tMax, ok := m.mediumBounds.IntersectP(ray.Origin, ray.Direction, rayTMax)
	if !ok {
		return one
	}

	sigmaA := m.sigmaA.Sample(lambda).Scale(m.sigScale)
	sigmaS := m.sigmaS.Sample(lambda).Scale(m.sigScale)
	sigmaT := sigmaA.Add(sigmaS)

	diag := m.mediumBounds.Diagonal()
	gridOrigin := m.mediumBounds.Offset(ray.Origin)
	gridDir := core.NewVec3(ray.Direction.X/diag.X, ray.Direction.Y/diag.Y, ray.Direction.Z/diag.Z)

	res := m.gridRes
	resF := core.NewVec3(float64(res[0]), float64(res[1]), float64(res[2]))
	gridAt := func(t float64) core.Vec3 {
		return gridOrigin.Add(gridDir.Multiply(t))
	}
	gridIntersect := gridAt(tMin)

	var nextCrossingT, deltaT [3]float64
	var step, voxelLimit, voxel [3]int

	for axis := 0; axis < 3; axis++ {
		r := res[axis]
		gi := gridIntersect.Component(axis)
		voxel[axis] = int(math.Max(0, math.Min(float64(r-1), math.Floor(gi*resF.Component(axis)))))

		d := gridDir.Component(axis)
		deltaT[axis] = 1 / math.Abs(d*resF.Component(axis))
		if d == 0 {
			d = 0 // collapse -0 to +0: its sign would otherwise flip nextCrossingT below
		}

		if d >= 0 {
			nextVoxelPos := float64(voxel[axis]+1) / float64(r)
			nextCrossingT[axis] = tMin + (nextVoxelPos-gi)/d
			step[axis] = 1
			voxelLimit[axis] = r
		} else {
			nextVoxelPos := float64(voxel[axis]) / float64(r)
			nextCrossingT[axis] = tMin + (nextVoxelPos-gi)/d
			step[axis] = -1
			voxelLimit[axis] = -1
		}
	}

	t0 := tMin
	tMajAccum := spectrum.NewSampledSpectrum(1)

	for {
		axis := stepAxis(nextCrossingT)
		t1 := math.Min(tMax, nextCrossingT[axis])

		offset := voxel[0] + res[0]*(voxel[1]+res[1]*voxel[2])
		maxDensity := m.maxDensityGrid[offset]
		sigmaMaj := sigmaT.Scale(maxDensity)

		if sigmaMaj.At(0) == 0 {
			tMajAccum = tMajAccum.Mul(spectrum.FastExp(sigmaMaj.Scale(t1 - t0)))
		} else {
			for {
				t := t0 + core.SampleExponential(u, sigmaMaj.At(0))
				u = rng.Float64()

				if t >= t1 {
					tMajAccum = tMajAccum.Mul(spectrum.FastExp(sigmaMaj.Scale(t1 - t0)))
					break
				}

				if t < tMax {
					tMaj := spectrum.FastExp(sigmaMaj.Scale(t - t0)).Mul(tMajAccum)
					tMajAccum = spectrum.NewSampledSpectrum(1)

					p := ray.At(t)
					d := m.provider.Density(p, lambda)
					le := m.provider.Le(p, lambda)
					sigmapA := sigmaA.Scale(d.SigmaA)
					sigmapS := sigmaS.Scale(d.SigmaS)

					pRender := m.renderFromMedium.Point(p)
					intr := Interaction{
						P:        pRender,
						Wo:       rRender.Direction.Normalize().Negate(),
						Time:     rRender.Time,
						SigmaA:   sigmapA,
						SigmaS:   sigmapS,
						SigmaMaj: sigmaMaj,
						Le:       le,
						Medium:   m,
						Phase:    m.phase,
					}
					if !cb(Sample{Intr: intr, TMaj: tMaj}) {
						return one
					}
				}
				t0 = t
			}
		}

		if nextCrossingT[axis] > tMax {
			return tMajAccum
		}
		voxel[axis] += step[axis]
		if voxel[axis] == voxelLimit[axis] {
			return tMajAccum
		}
		nextCrossingT[axis] += deltaT[axis]
		t0 = t1
	}
}

func (m *CuboidMedium[P]) String() string {
	return fmt.Sprintf("[ CuboidMedium mediumBounds: %v gridResolution: %v phase: %s ]",
		m.mediumBounds, m.gridRes, m.phase.String())
}
