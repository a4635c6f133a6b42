package spectrum

import "math"

const (
	planckC  = 299792458.0
	planckH  = 6.62606957e-34
	planckKB = 1.3806488e-23
)

// blackbodyRadiance evaluates Planck's law for a blackbody of
// temperature t (Kelvin) at wavelength lambda (nanometers), returning
// spectral radiance in W/(m^2*sr*nm).
func blackbodyRadiance(lambda, t float64) float64 {
	if t <= 0 {
		return 0
	}
	l := lambda * 1e-9
	lambda5 := (l * l) * (l * l) * l
	num := 2 * planckH * planckC * planckC
	denom := lambda5 * (math.Exp((planckH*planckC)/(l*planckKB*t)) - 1)
	return num / denom * 1e-9
}

// wienPeak returns the wavelength in nanometers of a temperature-t
// blackbody's radiance peak, via Wien's displacement law.
func wienPeak(t float64) float64 {
	return 2.8977721e-3 / t * 1e9
}

// BlackbodySpectrum is the emission spectrum of an ideal blackbody at
// a fixed temperature, normalized so its peak value is 1 - the same
// normalization pbrt applies so that BlackbodySpectrum composes
// naturally with a separate LeScale factor.
type BlackbodySpectrum struct {
	T         float64
	normalize float64
}

// NewBlackbodySpectrum builds a normalized blackbody spectrum for
// temperature t (Kelvin), t > 0.
func NewBlackbodySpectrum(t float64) BlackbodySpectrum {
	peak := blackbodyRadiance(wienPeak(t), t)
	norm := 1.0
	if peak > 0 {
		norm = 1 / peak
	}
	return BlackbodySpectrum{T: t, normalize: norm}
}

func (b BlackbodySpectrum) Sample(w SampledWavelengths) SampledSpectrum {
	var s SampledSpectrum
	for i := 0; i < NSamples; i++ {
		s = s.WithAt(i, blackbodyRadiance(w.At(i), b.T)*b.normalize)
	}
	return s
}

func (b BlackbodySpectrum) MaxValue() float64 { return 1 }
