package odz

// DEFLATE-compatible length and distance coding tables (spec §4.2). These
// values are part of the on-disk format and must not be altered: a block's
// match tokens are serialized as a length/distance base-code symbol plus a
// fixed number of extra raw bits, and the decoder inverts exactly this
// partitioning.

const (
	litlenSyms = 286 // 0-255 literal, 256 end-of-block, 257-285 length
	litlenEnd  = 256
	distSyms   = 30
	codelenSyms = 19
)

// baseLength and extraLBits partition lengths 3..258 into 29 symbols
// (257..285), each with a base value and a count of extra raw bits.
var baseLength = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17,
	19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var extraLBits = [29]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1,
	2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// baseDist and extraDBits partition distances 1..32768 into 30 symbols (0..29).
var baseDist = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49,
	65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var extraDBits = [30]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4,
	5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// codeLengthOrder is the wire order in which the 19 code-length-alphabet
// bit-lengths are serialized when writing a block's trees.
var codeLengthOrder = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// lengthToCode returns the length-code symbol (257..285), extra-bit count,
// and extra-bit value for a match length in [3, 258].
func lengthToCode(length int) (sym, ebits, eval int) {
	for c := 28; c >= 0; c-- {
		if length >= baseLength[c] {
			return c + 257, extraLBits[c], length - baseLength[c]
		}
	}
	return 0, 0, 0
}

// distToCode returns the distance-code symbol (0..29), extra-bit count, and
// extra-bit value for a distance in [1, 32768].
func distToCode(dist int) (sym, ebits, eval int) {
	for c := 29; c >= 0; c-- {
		if dist >= baseDist[c] {
			return c, extraDBits[c], dist - baseDist[c]
		}
	}
	return 0, 0, 0
}
