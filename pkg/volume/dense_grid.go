package volume

import "math"

// FloatGrid is a dense 3-D array of scalar samples over the unit cube
// [0,1]^3, looked up with trilinear interpolation. It backs the
// uniform-grid provider's density/sigma_a/sigma_s/LeScale grids.
type FloatGrid struct {
	nx, ny, nz int
	values     []float64
}

// NewFloatGrid wraps values (linearized x + nx*(y + ny*z)) as an
// nx*ny*nz dense grid.
func NewFloatGrid(nx, ny, nz int, values []float64) *FloatGrid {
	return &FloatGrid{nx: nx, ny: ny, nz: nz, values: values}
}

func (g *FloatGrid) at(x, y, z int) float64 {
	x = clampInt(x, 0, g.nx-1)
	y = clampInt(y, 0, g.ny-1)
	z = clampInt(z, 0, g.nz-1)
	return g.values[x+g.nx*(y+g.ny*z)]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lookup trilinearly interpolates the grid at p, a point in [0,1]^3.
func (g *FloatGrid) Lookup(p [3]float64) float64 {
	px := p[0]*float64(g.nx) - 0.5
	py := p[1]*float64(g.ny) - 0.5
	pz := p[2]*float64(g.nz) - 0.5
	x0, y0, z0 := int(math.Floor(px)), int(math.Floor(py)), int(math.Floor(pz))
	dx, dy, dz := px-float64(x0), py-float64(y0), pz-float64(z0)

	d00 := lerp(dx, g.at(x0, y0, z0), g.at(x0+1, y0, z0))
	d10 := lerp(dx, g.at(x0, y0+1, z0), g.at(x0+1, y0+1, z0))
	d01 := lerp(dx, g.at(x0, y0, z0+1), g.at(x0+1, y0, z0+1))
	d11 := lerp(dx, g.at(x0, y0+1, z0+1), g.at(x0+1, y0+1, z0+1))
	return lerp(dz, lerp(dy, d00, d10), lerp(dy, d01, d11))
}

// MaxValueInBounds returns an upper bound on the grid's trilinear
// interpolant restricted to the box [lo, hi] in [0,1]^3 coordinates,
// computed as the maximum over the sampled lattice corners touching
// the box - a conservative but cheap majorant.
func (g *FloatGrid) MaxValueInBounds(lo, hi [3]float64) float64 {
	lx := int(math.Floor(lo[0]*float64(g.nx) - 0.5))
	ly := int(math.Floor(lo[1]*float64(g.ny) - 0.5))
	lz := int(math.Floor(lo[2]*float64(g.nz) - 0.5))
	hx := int(math.Ceil(hi[0]*float64(g.nx) - 0.5))
	hy := int(math.Ceil(hi[1]*float64(g.ny) - 0.5))
	hz := int(math.Ceil(hi[2]*float64(g.nz) - 0.5))

	maxV := math.Inf(-1)
	for z := lz; z <= hz; z++ {
		for y := ly; y <= hy; y++ {
			for x := lx; x <= hx; x++ {
				if v := g.at(x, y, z); v > maxV {
					maxV = v
				}
			}
		}
	}
	return maxV
}
