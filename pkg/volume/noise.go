package volume

import (
	"math"

	"github.com/Roweax/pbrt-v4/pkg/core"
)

// noisePerm is a fixed permutation table used to hash lattice
// coordinates into gradient indices, the classic Perlin-noise
// construction. Duplicated so indices can be looked up mod 256
// without branching.
var noisePerm = func() [512]int {
	base := [256]int{
		151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
		140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
		247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
		57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
		74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
		60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
		65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
		200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
		52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
		207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
		119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
		129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
		218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
		81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
		184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
		222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
	}
	var p [512]int
	for i := 0; i < 256; i++ {
		p[i] = base[i]
		p[i+256] = base[i]
	}
	return p
}()

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(t, a, b float64) float64 { return a + t*(b-a) }

// grad is Ken Perlin's reference gradient selection: pick one of 12
// gradient directions from the low bits of the lattice-corner hash.
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	v := z
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}
	a, b := u, v
	if h&1 != 0 {
		a = -u
	}
	if h&2 != 0 {
		b = -v
	}
	return a + b
}

// Noise evaluates classic Perlin gradient noise at p, in roughly [-1, 1].
func Noise(p core.Vec3) float64 {
	x, y, z := p.X, p.Y, p.Z
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)
	u, v, w := fade(xf), fade(yf), fade(zf)

	perm := noisePerm[:]
	a := perm[xi] + yi
	aa := perm[a] + zi
	ab := perm[a+1] + zi
	b := perm[xi+1] + yi
	ba := perm[b] + zi
	bb := perm[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad(perm[aa], xf, yf, zf), grad(perm[ba], xf-1, yf, zf)),
			lerp(u, grad(perm[ab], xf, yf-1, zf), grad(perm[bb], xf-1, yf-1, zf))),
		lerp(v,
			lerp(u, grad(perm[aa+1], xf, yf, zf-1), grad(perm[ba+1], xf-1, yf, zf-1)),
			lerp(u, grad(perm[ab+1], xf, yf-1, zf-1), grad(perm[bb+1], xf-1, yf-1, zf-1))))
}

// DNoise returns a vector-valued noise field used to domain-warp the
// cloud density lookup point, built from three independently offset
// evaluations of the same scalar noise.
func DNoise(p core.Vec3) core.Vec3 {
	const offset = 19.19
	return core.NewVec3(
		Noise(p),
		Noise(core.NewVec3(p.Y+offset, p.Z, p.X)),
		Noise(core.NewVec3(p.Z, p.X+offset, p.Y)),
	)
}
