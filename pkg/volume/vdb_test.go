package volume

import (
	"testing"

	"github.com/Roweax/pbrt-v4/pkg/core"
	"github.com/Roweax/pbrt-v4/pkg/spectrum"
)

func constantSparseGrid(v float64) *SparseFloatGrid {
	n := 4
	values := make([]float64, n*n*n)
	for i := range values {
		values[i] = v
	}
	return NewSparseFloatGrid([3]int{0, 0, 0}, [3]int{n - 1, n - 1, n - 1}, values, core.Identity())
}

func TestVDBProvider_DensityOnly(t *testing.T) {
	p := NewVDBProvider(constantSparseGrid(0.7), nil, 1, 0, 1)
	w := spectrum.SampleUniform(0.3)

	if p.IsEmissive() {
		t.Error("expected a VDB provider without a temperature grid to be non-emissive")
	}
	d := p.Density(core.NewVec3(1, 1, 1), w)
	if d.SigmaA < 0.6 || d.SigmaA > 0.8 {
		t.Errorf("expected density near 0.7, got %v", d.SigmaA)
	}
	if !p.Le(core.NewVec3(1, 1, 1), w).IsZero() {
		t.Error("expected zero emission without a temperature grid")
	}
}

func TestVDBProvider_EmissiveBelowCutoffIsZero(t *testing.T) {
	temp := constantSparseGrid(50) // below the 100K floor after cutoff/scale
	p := NewVDBProvider(constantSparseGrid(1), temp, 1, 0, 1)
	w := spectrum.SampleUniform(0.3)

	if !p.IsEmissive() {
		t.Error("expected a provider with a temperature grid and LeScale>0 to report emissive")
	}
	le := p.Le(core.NewVec3(1, 1, 1), w)
	if !le.IsZero() {
		t.Error("expected emission below the 100K floor to be zero")
	}
}

func TestVDBProvider_EmissiveAboveCutoff(t *testing.T) {
	temp := constantSparseGrid(3000)
	p := NewVDBProvider(constantSparseGrid(1), temp, 1, 0, 1)
	w := spectrum.SampleUniform(0.3)

	le := p.Le(core.NewVec3(1, 1, 1), w)
	if le.MaxComponentValue() <= 0 {
		t.Error("expected positive emission well above the 100K floor")
	}
}

// The majorant grid has the fixed 64^3 resolution and every cell is
// non-negative.
func TestVDBProvider_MajorantGridRespectsBounds(t *testing.T) {
	p := NewVDBProvider(constantSparseGrid(2), nil, 1, 0, 1)
	grid, res := p.GetMaxDensityGrid()
	if res != [3]int{64, 64, 64} {
		t.Fatalf("expected the fixed 64^3 majorant resolution, got %v", res)
	}
	for i, v := range grid {
		if v < 0 {
			t.Fatalf("expected non-negative majorant at cell %d, got %v", i, v)
		}
	}
}
