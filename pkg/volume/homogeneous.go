package volume

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/phase"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

// HomogeneousMedium is constant-density gas or fluid filling all of
// space: its scattering and emission coefficients do not vary with
// position, so SampleTMaj produces at most one tentative event per
// call.
type HomogeneousMedium struct {
	sigmaA, sigmaS, le spectrum.ScaledSpectrum
	phase              phase.HenyeyGreenstein
}

// NewHomogeneousMedium builds a homogeneous medium from sigma_a,
// sigma_s and Le spectra, wrapping the scattering spectra with
// sigScale and the emission spectrum with leScale at construction;
// each Sample of those spectra applies the scale.
func NewHomogeneousMedium(sigmaA, sigmaS, le spectrum.Spectrum, sigScale, leScale, g float64) *HomogeneousMedium {
	return &HomogeneousMedium{
		sigmaA: spectrum.NewScaledSpectrum(sigmaA, sigScale),
		sigmaS: spectrum.NewScaledSpectrum(sigmaS, sigScale),
		le:     spectrum.NewScaledSpectrum(le, leScale),
		phase:  phase.HenyeyGreenstein{G: g},
	}
}

func (m *HomogeneousMedium) IsEmissive() bool {
	return m.le.MaxValue() > 0
}

func (m *HomogeneousMedium) Sample(p core.Vec3, lambda spectrum.SampledWavelengths) Properties {
	return Properties{
		SigmaA: m.sigmaA.Sample(lambda),
		SigmaS: m.sigmaS.Sample(lambda),
		Phase:  m.phase,
		Le:     m.le.Sample(lambda),
	}
}

func (m *HomogeneousMedium) SampleTMaj(ray core.Ray, tMax, u float64, rng *rand.Rand, lambda spectrum.SampledWavelengths, cb Callback) spectrum.SampledSpectrum {
	tMax *= ray.Direction.Length()
	ray.Direction = ray.Direction.Normalize()

	sigmaA := m.sigmaA.Sample(lambda)
	sigmaS := m.sigmaS.Sample(lambda)
	sigmaT := sigmaA.Add(sigmaS)
	sigmaMaj := sigmaT

	if math.IsInf(tMax, 1) {
		tMax = math.MaxFloat64
	}
	if sigmaMaj.At(0) == 0 {
		return spectrum.FastExp(sigmaMaj.Scale(tMax))
	}

	t := core.SampleExponential(u, sigmaMaj.At(0))
	if t < tMax {
		tMaj := spectrum.FastExp(sigmaMaj.Scale(t))
		le := m.le.Sample(lambda)
		intr := Interaction{
			P:        ray.At(t),
			Wo:       ray.Direction.Negate(),
			Time:     ray.Time,
			SigmaA:   sigmaA,
			SigmaS:   sigmaS,
			SigmaMaj: sigmaMaj,
			Le:       le,
			Medium:   m,
			Phase:    m.phase,
		}
		cb(Sample{Intr: intr, TMaj: tMaj})
		return spectrum.NewSampledSpectrum(1)
	}
	return spectrum.FastExp(sigmaMaj.Scale(tMax))
}

func (m *HomogeneousMedium) String() string {
	return fmt.Sprintf("[ HomogeneousMedium phase: %s ]", m.phase.String())
}
