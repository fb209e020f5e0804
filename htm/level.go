package htm

import "math/bits"

// Level returns the subdivision level of id, or -1 if id is not a
// well-formed HTM id.
//
// A level-L id occupies exactly 2L+4 bits with its MSB set. OR-ing id
// down with right shifts by 1,2,4,8,16,32 would turn every bit below the
// MSB to 1, and popcount of that equals id's bit length; bits.Len64
// computes the same bit length directly. Level is then (bitlen-4)/2,
// valid only when that's a non-negative integer not exceeding MaxLevel.
func Level(id Id) int {
	if id <= 0 {
		return -1
	}
	bitlen := bits.Len64(uint64(id))
	if bitlen < 4 {
		return -1
	}
	rem := bitlen - 4
	if rem%2 != 0 {
		return -1
	}
	level := rem / 2
	if level > MaxLevel {
		return -1
	}
	return level
}
