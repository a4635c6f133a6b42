package spectrum

import "math"

// NSamples is the width of a SampledSpectrum / SampledWavelengths: the
// number of wavelengths tracked per path (hero-wavelength sampling).
const NSamples = 4

// LambdaMin and LambdaMax bound the visible range in nanometers that
// wavelengths are drawn from.
const (
	LambdaMin = 360.0
	LambdaMax = 830.0
)

// SampledWavelengths is the set of wavelengths currently under
// evaluation for one path. It is produced once per camera ray and
// threaded through every Spectrum.Sample call along that path.
type SampledWavelengths struct {
	lambda [NSamples]float64
	pdf    [NSamples]float64
}

// SampleUniform draws NSamples wavelengths, stratified across
// [LambdaMin, LambdaMax] starting from a single primary sample u, with
// the hero wavelength (index 0) placed at u itself and the remaining
// samples offset by even strides and wrapped into range.
func SampleUniform(u float64) SampledWavelengths {
	var w SampledWavelengths
	w.lambda[0] = LambdaMin + u*(LambdaMax-LambdaMin)
	for i := 1; i < NSamples; i++ {
		up := w.lambda[i-1] + (LambdaMax-LambdaMin)/NSamples
		if up > LambdaMax {
			up = LambdaMin + (up - LambdaMax)
		}
		w.lambda[i] = clampWavelength(up)
	}
	for i := range w.pdf {
		w.pdf[i] = 1 / (LambdaMax - LambdaMin)
	}
	return w
}

// At returns the i'th sampled wavelength in nanometers.
func (w SampledWavelengths) At(i int) float64 { return w.lambda[i] }

// PDF returns the sampling density used to draw wavelength i.
func (w SampledWavelengths) PDF(i int) float64 { return w.pdf[i] }

func clampWavelength(lambda float64) float64 {
	return math.Max(LambdaMin, math.Min(LambdaMax, lambda))
}
