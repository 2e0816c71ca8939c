package shading

import "github.com/go-gl/mathgl/mgl32"

const (
	// VerticesPerQuad is two triangles of three vertices.
	VerticesPerQuad = 6

	// FaceCount covers the six shaded faces and their unshaded duplicates.
	FaceCount = 12
	// UnshadedOffset maps a shaded face id onto its unshaded duplicate.
	UnshadedOffset = 6
	AOLevels       = 4

	// MaxPackedCode is the largest code Pack produces for a face id in
	// [0, FaceCount). The encoding strides faces by 16 while AO and flip use
	// only 8 of those slots, so codes with code%16 >= 8 are never produced.
	MaxPackedCode = (FaceCount-1)*16 + (AOLevels-1)*2 + 1
	// TrustedCodes bounds the codes the vertex stage accepts from buffers:
	// [0, TrustedCodes) decodes without panicking, gaps included.
	TrustedCodes = 96

	// AlphaCutoff is the sampled alpha below which a fragment is discarded.
	AlphaCutoff = 0.1
	Gamma       = 2.2
	// FogDensity scales the squared fog distance in the exponential fog law.
	FogDensity = 0.00001
)

// Face ids in packing order. Ids 6-11 are the unshaded variants of 0-5.
const (
	FaceTop = iota
	FaceBottom
	FaceRight
	FaceLeft
	FaceFront
	FaceBack
)

// AOScale maps an AO level to a brightness multiplier; 3 is unoccluded.
var AOScale = [AOLevels]float32{0.1, 0.25, 0.5, 1.0}

// FaceShading is the baked directional light per face id.
var FaceShading = [FaceCount]float32{
	1.0, 0.5, // top, bottom
	0.5, 0.8, // right, left
	0.5, 0.8, // front, back
	1.0, 1.0, 1.0, 1.0, 1.0, 1.0,
}

// UVCorners are the unit quad corners.
var UVCorners = [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// UVOrder picks a corner for each of the six vertices of a quad, in four groups
// of six: even face, odd face, even face flipped, odd face flipped.
var UVOrder = [24]int{
	1, 0, 2, 1, 2, 3,
	3, 0, 2, 3, 1, 0,
	3, 1, 0, 3, 0, 2,
	1, 2, 3, 1, 0, 2,
}
