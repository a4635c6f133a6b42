package spectrum

// mediumPreset bundles the absorption/scattering coefficients a named
// "preset" parameter resolves to, mirroring GetMediumScatteringProperties
// in the source: a small table of physically measured media, broadcast
// here as flat RGB-style constants since full per-preset spectral
// curves are outside this core's scope.
type mediumPreset struct {
	sigmaA, sigmaS [3]float64
}

var mediumPresets = map[string]mediumPreset{
	"Skin1":       {sigmaA: [3]float64{0.0372, 0.0642, 0.128}, sigmaS: [3]float64{0.74, 0.88, 1.01}},
	"Skin2":       {sigmaA: [3]float64{0.0132, 0.0336, 0.078}, sigmaS: [3]float64{1.09, 1.59, 1.79}},
	"Whole Milk":  {sigmaA: [3]float64{0.0011, 0.0024, 0.014}, sigmaS: [3]float64{2.55, 3.21, 3.77}},
	"Ketchup":     {sigmaA: [3]float64{0.061, 0.97, 1.45}, sigmaS: [3]float64{0.18, 0.07, 0.03}},
	"Coffee":      {sigmaA: [3]float64{0.113, 0.142, 0.164}, sigmaS: [3]float64{0.17, 0.21, 0.24}},
	"Wine":        {sigmaA: [3]float64{0.3, 1.06, 1.39}, sigmaS: [3]float64{0.01, 0.005, 0.0}},
	"Regular Milk": {sigmaA: [3]float64{0.0014, 0.0025, 0.0142}, sigmaS: [3]float64{4.5513, 5.8294, 7.136}},
	"Mustard":      {sigmaA: [3]float64{0.277, 0.366, 1.297}, sigmaS: [3]float64{2.97, 3.52, 3.94}},
}

// LookupMediumPreset returns the (sigma_a, sigma_s) spectra a named
// preset resolves to as RGB-broadcast ConstantSpectrum averages, and
// whether the name was recognized. An unrecognized name is a warning
// at the caller, never an error: the caller falls through to direct
// sigma_a/sigma_s parameters or the default unit spectra.
func LookupMediumPreset(name string) (sigmaA, sigmaS Spectrum, ok bool) {
	p, ok := mediumPresets[name]
	if !ok {
		return nil, nil, false
	}
	avg := func(c [3]float64) float64 { return (c[0] + c[1] + c[2]) / 3 }
	return ConstantSpectrum{C: avg(p.sigmaA)}, ConstantSpectrum{C: avg(p.sigmaS)}, true
}
