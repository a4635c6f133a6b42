package spectrum

import "math"

// Spectrum is an opaque spectral distribution. Implementations are
// immutable after construction and safe for concurrent use.
type Spectrum interface {
	// Sample evaluates the spectrum at each of the wavelengths in w.
	Sample(w SampledWavelengths) SampledSpectrum
	// MaxValue returns an upper bound on the spectrum's value over
	// its full domain, used to decide emissiveness without resolving
	// any particular wavelength set.
	MaxValue() float64
}

// ConstantSpectrum is a spectrum with the same value at every
// wavelength - the default sigma_a/sigma_s/Le when a scene omits a
// medium parameter outright.
type ConstantSpectrum struct {
	C float64
}

func (s ConstantSpectrum) Sample(SampledWavelengths) SampledSpectrum {
	return NewSampledSpectrum(s.C)
}

func (s ConstantSpectrum) MaxValue() float64 { return s.C }

// ScaledSpectrum wraps another spectrum with a scale factor fixed at
// construction and applied on every Sample call. HomogeneousMedium
// holds its sigma_a/sigma_s/Le this way, so its callers never apply
// the scale themselves.
type ScaledSpectrum struct {
	Base  Spectrum
	Scale float64
}

// NewScaledSpectrum returns base pre-multiplied by scale.
func NewScaledSpectrum(base Spectrum, scale float64) ScaledSpectrum {
	return ScaledSpectrum{Base: base, Scale: scale}
}

func (s ScaledSpectrum) Sample(w SampledWavelengths) SampledSpectrum {
	return s.Base.Sample(w).Scale(s.Scale)
}

func (s ScaledSpectrum) MaxValue() float64 { return s.Base.MaxValue() * s.Scale }

// RGBUnboundedSpectrum is a simplified stand-in for pbrt's RGB-to-spectrum
// upsampling, used for "rgb"/"color" spectrum parameters in scene files.
// Full Jakob/Hanika spectral upsampling is rendering machinery beyond
// the SampledSpectrum data type and is out of scope here; this instead
// broadcasts each wavelength's sample to a single representative RGB
// weight, twice the channel average (RGBDensityValue; non-negative for
// non-negative channels), the same at every wavelength.
type RGBUnboundedSpectrum struct {
	R, G, B float64
	scale   float64
}

// NewRGBUnboundedSpectrum builds an unbounded RGB spectrum, normalizing
// away a common scale factor (mirroring pbrt's RGBUnboundedSpectrum
// constructor, which factors out max(r,g,b) and folds it separately).
func NewRGBUnboundedSpectrum(r, g, b float64) RGBUnboundedSpectrum {
	m := math.Max(r, math.Max(g, b))
	if m <= 0 {
		return RGBUnboundedSpectrum{}
	}
	return RGBUnboundedSpectrum{R: r / m, G: g / m, B: b / m, scale: 2 * m}
}

func (s RGBUnboundedSpectrum) Sample(SampledWavelengths) SampledSpectrum {
	return NewSampledSpectrum(RGBDensityValue(s.R, s.G, s.B) * s.scale / 2)
}

func (s RGBUnboundedSpectrum) MaxValue() float64 {
	return s.scale * math.Max(s.R, math.Max(s.G, s.B))
}

// RGBDensityValue is the scalar broadcast an rgb density triple maps
// to: twice the channel average. Used directly by both
// RGBUnboundedSpectrum.Sample (via the normalized R, G, B it stores)
// and the uniform-grid provider's majorant bound, so the two stay in
// the same units - the majorant is this same mapping applied to each
// channel's per-cell maximum rather than its per-point value, which
// bounds the density correctly because the mapping is monotonically
// increasing in each channel.
func RGBDensityValue(r, g, b float64) float64 {
	return 2 * (r + g + b) / 3
}
