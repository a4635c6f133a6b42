package volume

import (
	"math"

	"github.com/Roweax/pbrt-v4/pkg/core"
)

// SparseFloatGrid is a simplified stand-in for an opaque sparse voxel
// grid (e.g. a loaded VDB volume): a dense backing array over the
// grid's active index-space bounding box, plus the world<->index
// transforms a loader would have derived from the on-disk format. The
// on-disk format itself is out of scope; this type only needs to
// support point sampling and index/world bounds queries.
type SparseFloatGrid struct {
	indexMin, indexMax [3]int // inclusive active region
	nx, ny, nz         int
	values             []float64

	worldFromIndex core.Transform
	indexFromWorld core.Transform
}

// NewSparseFloatGrid wraps values (linearized over the inclusive
// index range [indexMin, indexMax]) as a sparse grid, active only
// within that box; samples outside it read as zero.
func NewSparseFloatGrid(indexMin, indexMax [3]int, values []float64, worldFromIndex core.Transform) *SparseFloatGrid {
	nx := indexMax[0] - indexMin[0] + 1
	ny := indexMax[1] - indexMin[1] + 1
	nz := indexMax[2] - indexMin[2] + 1
	return &SparseFloatGrid{
		indexMin: indexMin, indexMax: indexMax,
		nx: nx, ny: ny, nz: nz,
		values:         values,
		worldFromIndex: worldFromIndex,
		indexFromWorld: worldFromIndex.Inverse(),
	}
}

// IndexBounds returns the inclusive active index-space bounding box.
func (g *SparseFloatGrid) IndexBounds() (min, max [3]int) {
	return g.indexMin, g.indexMax
}

// WorldBounds returns the grid's axis-aligned bounding box in world
// (medium) space, the image of its index-space box under
// worldFromIndex.
func (g *SparseFloatGrid) WorldBounds() core.AABB {
	var box core.AABB
	first := true
	for _, corner := range [8][3]int{
		{g.indexMin[0], g.indexMin[1], g.indexMin[2]},
		{g.indexMax[0], g.indexMin[1], g.indexMin[2]},
		{g.indexMin[0], g.indexMax[1], g.indexMin[2]},
		{g.indexMax[0], g.indexMax[1], g.indexMin[2]},
		{g.indexMin[0], g.indexMin[1], g.indexMax[2]},
		{g.indexMax[0], g.indexMin[1], g.indexMax[2]},
		{g.indexMin[0], g.indexMax[1], g.indexMax[2]},
		{g.indexMax[0], g.indexMax[1], g.indexMax[2]},
	} {
		p := g.worldFromIndex.Point(core.NewVec3(float64(corner[0]), float64(corner[1]), float64(corner[2])))
		if first {
			box = core.NewAABB(p, p)
			first = false
		} else {
			box = box.Union(core.NewAABB(p, p))
		}
	}
	return box
}

// WorldToIndex maps a world-space point into this grid's index space.
func (g *SparseFloatGrid) WorldToIndex(p core.Vec3) core.Vec3 {
	return g.indexFromWorld.Point(p)
}

func (g *SparseFloatGrid) atIndex(x, y, z int) float64 {
	if x < g.indexMin[0] || x > g.indexMax[0] ||
		y < g.indexMin[1] || y > g.indexMax[1] ||
		z < g.indexMin[2] || z > g.indexMax[2] {
		return 0
	}
	lx, ly, lz := x-g.indexMin[0], y-g.indexMin[1], z-g.indexMin[2]
	return g.values[lx+g.nx*(ly+g.ny*lz)]
}

// SampleIndex trilinearly samples the grid at an index-space point,
// matching nanovdb's SampleFromVoxels<..., 1, false> used by the
// source - linear interpolation, no GPU residency.
func (g *SparseFloatGrid) SampleIndex(pIndex core.Vec3) float64 {
	x0, y0, z0 := int(math.Floor(pIndex.X)), int(math.Floor(pIndex.Y)), int(math.Floor(pIndex.Z))
	dx, dy, dz := pIndex.X-float64(x0), pIndex.Y-float64(y0), pIndex.Z-float64(z0)

	d00 := lerp(dx, g.atIndex(x0, y0, z0), g.atIndex(x0+1, y0, z0))
	d10 := lerp(dx, g.atIndex(x0, y0+1, z0), g.atIndex(x0+1, y0+1, z0))
	d01 := lerp(dx, g.atIndex(x0, y0, z0+1), g.atIndex(x0+1, y0, z0+1))
	d11 := lerp(dx, g.atIndex(x0, y0+1, z0+1), g.atIndex(x0+1, y0+1, z0+1))
	return lerp(dz, lerp(dy, d00, d10), lerp(dy, d01, d11))
}

// MaxInIndexRange returns the maximum stored value over the inclusive
// integer index range [lo, hi], clamped to the grid's active region.
func (g *SparseFloatGrid) MaxInIndexRange(lo, hi [3]int) float64 {
	lo[0] = clampInt(lo[0], g.indexMin[0], g.indexMax[0])
	lo[1] = clampInt(lo[1], g.indexMin[1], g.indexMax[1])
	lo[2] = clampInt(lo[2], g.indexMin[2], g.indexMax[2])
	hi[0] = clampInt(hi[0], g.indexMin[0], g.indexMax[0])
	hi[1] = clampInt(hi[1], g.indexMin[1], g.indexMax[1])
	hi[2] = clampInt(hi[2], g.indexMin[2], g.indexMax[2])

	maxV := 0.0
	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				if v := g.atIndex(x, y, z); v > maxV {
					maxV = v
				}
			}
		}
	}
	return maxV
}
