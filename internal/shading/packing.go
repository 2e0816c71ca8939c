package shading

// Pack builds the per-vertex face/AO/flip code.
func Pack(face, ao, flip int) int {
	return face*16 + ao*2 + flip
}

// Unpack splits a code produced by Pack. Codes outside [0, MaxPackedCode] are
// not checked; callers own that contract.
func Unpack(code int) (face, ao, flip int) {
	// unsigned so every field stays non-negative
	c := uint(code)
	return int(c / 16), int(c % 16 / 2), int(c % 2)
}

// Unshaded returns the duplicate of a shaded face that skips directional shading.
func Unshaded(face int) int {
	return face%UnshadedOffset + UnshadedOffset
}

// IsUnshaded reports whether face is one of the duplicate ids.
func IsUnshaded(face int) bool {
	return face >= UnshadedOffset
}
