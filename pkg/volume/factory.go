package volume

import (
	"fmt"

	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

// CommonParams holds the medium-level parameters shared by every
// concrete medium: sigma_a, sigma_s, an overall scale, the
// Henyey-Greenstein asymmetry g, and an optional named preset.
// Callers (the scene loader) are responsible for applying each
// parameter's documented default before populating this struct -
// Scale and G are used as given, with no implicit zero-value
// fallback, since a caller may legitimately want scale 0.
type CommonParams struct {
	SigmaA, SigmaS spectrum.Spectrum
	Scale          float64
	G              float64
	Preset         string
}

// resolve picks sigma_a/sigma_s, preferring a named preset when one
// was given and recognized, warning and falling through to the direct
// spectra (then a unit default) when it was not.
func (c CommonParams) resolve(logger core.Logger) (spectrum.Spectrum, spectrum.Spectrum) {
	var sigmaA, sigmaS spectrum.Spectrum
	if c.Preset != "" {
		if pa, ps, ok := spectrum.LookupMediumPreset(c.Preset); ok {
			sigmaA, sigmaS = pa, ps
		} else if logger != nil {
			logger.Printf("medium preset %q not found", c.Preset)
		}
	}
	if sigmaA == nil {
		sigmaA = c.SigmaA
	}
	if sigmaS == nil {
		sigmaS = c.SigmaS
	}
	if sigmaA == nil {
		sigmaA = spectrum.ConstantSpectrum{C: 1}
	}
	if sigmaS == nil {
		sigmaS = spectrum.ConstantSpectrum{C: 1}
	}
	return sigmaA, sigmaS
}

// NewHomogeneousMediumFromParams builds a HomogeneousMedium from a
// parameter dictionary, per the "Homogeneous" recognized-parameter
// list: sigma_a, sigma_s, Le, scale, Lescale, g, preset.
func NewHomogeneousMediumFromParams(common CommonParams, le spectrum.Spectrum, leScale float64, logger core.Logger) *HomogeneousMedium {
	sigmaA, sigmaS := common.resolve(logger)
	if le == nil {
		le = spectrum.ConstantSpectrum{C: 0}
	}
	return NewHomogeneousMedium(sigmaA, sigmaS, le, common.Scale, leScale, common.G)
}

// NewCuboidMediumFromParams builds a CuboidMedium over an
// already-constructed provider, per the "Cuboid (common)"
// recognized-parameter list: sigma_a, sigma_s, scale, g, preset.
func NewCuboidMediumFromParams[P Provider](provider P, common CommonParams, renderFromMedium core.Transform, logger core.Logger) *CuboidMedium[P] {
	sigmaA, sigmaS := common.resolve(logger)
	return NewCuboidMedium(provider, sigmaA, sigmaS, common.Scale, common.G, renderFromMedium)
}

// UniformGridParams configures a UniformGridProvider. Exactly one of
// Density, (SigmaA and SigmaS), or RGB must be non-nil; giving more
// than one, or none, is a configuration error.
type UniformGridParams struct {
	Bounds         core.AABB
	Nx, Ny, Nz     int
	Density        []float64
	SigmaA, SigmaS []float64
	RGB            [][3]float64
	Le             spectrum.Spectrum
	LeScale        []float64
}

// NewUniformGridProviderFromParams validates and builds a
// UniformGridProvider, returning a configuration error if the grid
// specification is missing or contradictory.
func NewUniformGridProviderFromParams(p UniformGridParams) (*UniformGridProvider, error) {
	n := p.Nx * p.Ny * p.Nz
	present := 0
	if p.Density != nil {
		present++
	}
	if p.SigmaA != nil || p.SigmaS != nil {
		present++
	}
	if p.RGB != nil {
		present++
	}
	if present == 0 {
		return nil, fmt.Errorf("uniform grid medium: no density, sigma_a/sigma_s, or rgb grid given")
	}
	if present > 1 {
		return nil, fmt.Errorf("uniform grid medium: contradictory grid specification (more than one of density/sigma/rgb given)")
	}

	leScaleValues := p.LeScale
	if leScaleValues == nil {
		leScaleValues = make([]float64, n)
		for i := range leScaleValues {
			leScaleValues[i] = 1
		}
	} else if len(leScaleValues) != n {
		return nil, fmt.Errorf("uniform grid medium: Lescale grid has %d entries, want %d", len(leScaleValues), n)
	}
	leScaleGrid := NewFloatGrid(p.Nx, p.Ny, p.Nz, leScaleValues)

	le := p.Le
	if le == nil {
		le = spectrum.ConstantSpectrum{C: 0}
	}

	switch {
	case p.Density != nil:
		if len(p.Density) != n {
			return nil, fmt.Errorf("uniform grid medium: density grid has %d entries, want %d", len(p.Density), n)
		}
		return NewUniformGridProviderDensity(p.Bounds, NewFloatGrid(p.Nx, p.Ny, p.Nz, p.Density), le, leScaleGrid), nil

	case p.SigmaA != nil || p.SigmaS != nil:
		if p.SigmaA == nil || p.SigmaS == nil || len(p.SigmaA) != n || len(p.SigmaS) != n {
			return nil, fmt.Errorf("uniform grid medium: sigma_a/sigma_s grids must both be given with %d entries", n)
		}
		return NewUniformGridProviderSigma(p.Bounds, NewFloatGrid(p.Nx, p.Ny, p.Nz, p.SigmaA), NewFloatGrid(p.Nx, p.Ny, p.Nz, p.SigmaS), le, leScaleGrid), nil

	default:
		if len(p.RGB) != n {
			return nil, fmt.Errorf("uniform grid medium: rgb grid has %d entries, want %d", len(p.RGB), n)
		}
		r := make([]float64, n)
		g := make([]float64, n)
		b := make([]float64, n)
		for i, c := range p.RGB {
			r[i], g[i], b[i] = c[0], c[1], c[2]
		}
		return NewUniformGridProviderRGB(p.Bounds, NewFloatGrid(p.Nx, p.Ny, p.Nz, r), NewFloatGrid(p.Nx, p.Ny, p.Nz, g), NewFloatGrid(p.Nx, p.Ny, p.Nz, b), le, leScaleGrid), nil
	}
}

// CloudParams configures a CloudProvider.
type CloudParams struct {
	Bounds    core.AABB
	Density   float64
	Wispiness float64
	Frequency float64
}

// NewCloudProviderFromParams builds a CloudProvider from a parameter
// dictionary, per the "Cloud" recognized-parameter list.
func NewCloudProviderFromParams(p CloudParams) *CloudProvider {
	return NewCloudProvider(p.Bounds, p.Density, p.Wispiness, p.Frequency)
}

// VDBParams configures a VDBProvider from already-loaded sparse
// grids; loading the on-disk sparse-grid format itself is out of
// scope, so the caller supplies the parsed grids directly.
type VDBParams struct {
	Density           *SparseFloatGrid
	Temperature       *SparseFloatGrid
	LeScale           float64
	TemperatureCutoff float64
	TemperatureScale  float64
}

// NewVDBProviderFromParams builds a VDBProvider, per the "VDB"
// recognized-parameter list: file path (resolved by the caller into
// Density/Temperature), temperaturecutoff, temperaturescale, Lescale.
func NewVDBProviderFromParams(p VDBParams) (*VDBProvider, error) {
	if p.Density == nil {
		return nil, fmt.Errorf("vdb medium: no density grid given")
	}
	return NewVDBProvider(p.Density, p.Temperature, p.LeScale, p.TemperatureCutoff, p.TemperatureScale), nil
}
