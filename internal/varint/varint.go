package varint

import "github.com/Caltech-IPAC/go-tinyhtm/errs"

// MaxLen is the largest number of bytes an encoded value can occupy.
const MaxLen = 9

// Encode appends the varint encoding of v to dst and returns the
// extended slice.
//
// The first byte holds a unary prefix of N one-bits terminated by a
// zero-bit (for N in [0,7]), followed by the top 7-N bits of the value;
// N follow bytes hold the remaining 8N bits, big-endian. This covers
// values up to 2^56-1 in at most 8 bytes. N=7 already leaves zero spare
// bits in the first byte (0 top bits + 56 follow bits = 56), so values
// requiring more than 56 bits use the escape prefix N=8: the first byte
// is 0xFF with no value bits of its own, and all 64 bits of v follow in
// 8 big-endian bytes - 9 bytes total, matching values up to 2^64-1.
func Encode(dst []byte, v uint64) []byte {
	for n := 0; n < 7; n++ {
		limit := uint64(1) << uint(7+7*n)
		if v < limit {
			first := byte(0xFF<<(8-n)) | byte(v>>uint(8*n))
			dst = append(dst, first)
			for i := n - 1; i >= 0; i-- {
				dst = append(dst, byte(v>>uint(8*i)))
			}
			return dst
		}
	}
	// N=7: fits in 56 bits (0 top bits + 7 follow bytes).
	if v < uint64(1)<<56 {
		dst = append(dst, 0xFE)
		for i := 6; i >= 0; i-- {
			dst = append(dst, byte(v>>uint(8*i)))
		}
		return dst
	}
	// N=8 escape: full 64-bit value in 8 follow bytes.
	dst = append(dst, 0xFF)
	for i := 7; i >= 0; i-- {
		dst = append(dst, byte(v>>uint(8*i)))
	}
	return dst
}

// Len returns the number of bytes Encode(nil, v) would produce, without
// allocating. TreeGen's layout estimator uses this to size a node before
// its final on-disk encoding is known.
func Len(v uint64) int {
	for n := 0; n < 7; n++ {
		if v < uint64(1)<<uint(7+7*n) {
			return 1 + n
		}
	}
	if v < uint64(1)<<56 {
		return 8
	}
	return 9
}

// NFollow returns the number of follow bytes implied by a varint's first
// byte: the count of leading one-bits, capped at 8.
func NFollow(first byte) int {
	n := 0
	for n < 8 && first&(0x80>>uint(n)) != 0 {
		n++
	}
	return n
}

// Decode reads one varint from the front of src, returning its value and
// the number of bytes consumed. src must hold at least 1+NFollow(src[0])
// bytes.
func Decode(src []byte) (uint64, int, error) {
	if len(src) == 0 {
		return 0, 0, errs.New(errs.KindBadLen, "varint: empty input")
	}
	first := src[0]
	n := NFollow(first)
	if len(src) < 1+n {
		return 0, 0, errs.New(errs.KindBadLen, "varint: truncated input")
	}
	if n == 8 {
		var v uint64
		for i := 0; i < 8; i++ {
			v = v<<8 | uint64(src[1+i])
		}
		return v, 9, nil
	}
	top := uint64(first & (0xFF >> uint(n+1)))
	v := top
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(src[1+i])
	}
	return v, 1 + n, nil
}

// EncodeReverse returns the same bytes Encode would produce, but in
// mirror-image byte order. TreeCompress builds its output file back to
// front, one reversed varint at a time, then reverses the whole byte
// stream once at the end; writing each varint's bytes in mirror order up
// front means that final whole-stream reversal restores normal
// (forward-readable) varint byte order without a second pass over each
// individual encoding.
func EncodeReverse(dst []byte, v uint64) []byte {
	fwd := Encode(nil, v)
	for i := len(fwd) - 1; i >= 0; i-- {
		dst = append(dst, fwd[i])
	}
	return dst
}
