// Package scene builds a small deterministic block scene used by the viewers
// and tests in place of a recorded session.
package scene

import (
	"math/rand"

	"voxelview/internal/meshing"
	"voxelview/internal/shading"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	SeaLevel   = 8
	baseHeight = 9
	amplitude  = 6
	noiseScale = 18.0
	// WaterAlpha matches the opacity recorded water renders with.
	WaterAlpha = 0.5
)

var (
	GrassTint = mgl32.Vec3{0.49, 0.74, 0.33}
	WaterTint = mgl32.Vec3{0.25, 0.46, 0.89}
)

// Scene is the fixture geometry split into the two render passes.
type Scene struct {
	Opaque      *meshing.Buffer
	Transparent *meshing.Buffer
	Radius      int
	heights     [][]int
}

// Height returns the top solid y of the column at (x, z), or -1 outside the scene.
func (s *Scene) Height(x, z int) int {
	i, j := x+s.Radius, z+s.Radius
	if i < 0 || j < 0 || i >= len(s.heights) || j >= len(s.heights) {
		return -1
	}
	return s.heights[i][j]
}

// Eye returns a camera position looking over the scene from the south-east.
func (s *Scene) Eye() mgl32.Vec3 {
	r := float32(s.Radius)
	return mgl32.Vec3{r * 0.9, baseHeight + amplitude + r*0.5, r * 0.9}
}

// Center is the point the default camera looks at.
func (s *Scene) Center() mgl32.Vec3 { return mgl32.Vec3{0, baseHeight, 0} }

// View looks from Eye toward Center.
func (s *Scene) View() mgl32.Mat4 {
	return mgl32.LookAtV(s.Eye(), s.Center(), mgl32.Vec3{0, 1, 0})
}

// Build generates a heightfield of (2*radius+1)^2 columns from seed.
func Build(seed int64, radius int) *Scene {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	size := 2*radius + 1
	heights := make([][]int, size)
	for i := range heights {
		heights[i] = make([]int, size)
		for j := range heights[i] {
			n := noise.Noise2D(float64(i-radius)/noiseScale, float64(j-radius)/noiseScale)
			heights[i][j] = max(1, baseHeight+int(n*amplitude*2))
		}
	}
	s := &Scene{
		Opaque:      meshing.NewBuffer(size * size * 4),
		Transparent: meshing.NewBuffer(size * size),
		Radius:      radius,
		heights:     heights,
	}
	rng := rand.New(rand.NewSource(seed))
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			s.emitColumn(x, z, rng)
		}
	}
	return s
}

func (s *Scene) solid(x, y, z int) bool {
	h := s.Height(x, z)
	return h >= 0 && y <= h
}

func (s *Scene) emitColumn(x, z int, rng *rand.Rand) {
	h := s.Height(x, z)
	top := mgl32.Vec3{float32(x), float32(h), float32(z)}

	grass := meshing.Material{Layer: LayerGrassTop, Tint: GrassTint, Alpha: 1}
	s.Opaque.AppendQuad(shading.FaceTop, meshing.CubeFace(shading.FaceTop, top), s.topOcclusion(x, h, z), grass)

	for face := shading.FaceRight; face <= shading.FaceBack; face++ {
		n := meshing.FaceNormals[face]
		for y := h; y >= 0 && !s.solid(x+n[0], y, z+n[2]); y-- {
			if s.Height(x+n[0], z+n[2]) < 0 && y < h {
				break // scene edge: one skirt block is enough
			}
			layer := LayerDirt
			if y == h {
				layer = LayerGrassSide
			}
			origin := mgl32.Vec3{float32(x), float32(y), float32(z)}
			s.Opaque.AppendFlatQuad(face, meshing.CubeFace(face, origin), meshing.Opaque(layer))
		}
	}

	if h < SeaLevel {
		surface := mgl32.Vec3{float32(x), SeaLevel - 1, float32(z)}
		water := meshing.Material{Layer: LayerWater, Tint: WaterTint, Alpha: WaterAlpha}
		s.Transparent.AppendUnshadedQuad(shading.FaceTop, meshing.CubeFace(shading.FaceTop, surface), water)
		return
	}
	if rng.Intn(6) == 0 {
		plant := meshing.Material{Layer: LayerTallGrass, Tint: GrassTint, Alpha: 1}
		s.Opaque.AppendCross(top.Add(mgl32.Vec3{0, 1, 0}), plant)
	}
}

// topCornerNeighbours lists, per top-face corner, the side, side and diagonal
// columns that can shade it.
var topCornerNeighbours = [4][3][2]int{
	{{-1, 0}, {0, -1}, {-1, -1}},
	{{1, 0}, {0, -1}, {1, -1}},
	{{1, 0}, {0, 1}, {1, 1}},
	{{-1, 0}, {0, 1}, {-1, 1}},
}

func (s *Scene) topOcclusion(x, y, z int) [4]int {
	var occ [4]int
	for c, ns := range topCornerNeighbours {
		for _, d := range ns {
			if s.solid(x+d[0], y+1, z+d[1]) {
				occ[c]++
			}
		}
	}
	return occ
}
