package odz

// Block codec (spec §4.5): LZ77 parse of one block into literal/match
// tokens, canonical Huffman entropy coding of those tokens, and the
// matching decoder. Ported from original_source/compress.c's
// compress_block and decompress.c's decompress_huffman_block.

type lzToken struct {
	isMatch bool
	lit     byte
	length  int
	dist    int
}

// parseBlock runs the LZ77 hash-chain matcher over data and returns the
// literal/match token stream plus the literal/length and distance
// frequency tables needed to build this block's Huffman trees.
//
// Matching uses lazy evaluation: a match is deferred by one position when
// the next position yields a strictly longer one (spec §9 Open Question,
// resolved in favor of skipping only below the near-maximum length
// maxMatch-1, since a match already that long is never worth deferring).
// Once a match is taken, every position in its interior is also inserted
// into the hash chain (the exhaustive policy spec §9 recommends for ratio
// over speed).
func parseBlock(data []byte) ([]lzToken, []uint32, []uint32) {
	m := acquireMatcher()
	defer releaseMatcher(m)

	var tokens []lzToken
	litFreq := make([]uint32, litlenSyms)
	distFreq := make([]uint32, distSyms)

	n := len(data)
	i := 0
	for i < n {
		length, dist := m.findBest(data, i, n)
		m.insert(data, i)

		if length >= minMatch {
			if length < maxMatch-1 && i+1 < n {
				length2, _ := m.findBest(data, i+1, n)
				if length2 > length {
					tokens = append(tokens, lzToken{lit: data[i]})
					litFreq[data[i]]++
					i++
					continue
				}
			}

			tokens = append(tokens, lzToken{isMatch: true, length: length, dist: dist})
			lsym, _, _ := lengthToCode(length)
			litFreq[lsym]++
			dsym, _, _ := distToCode(dist)
			distFreq[dsym]++

			for k := 1; k < length; k++ {
				if i+k < n {
					m.insert(data, i+k)
				}
			}
			i += length
			continue
		}

		tokens = append(tokens, lzToken{lit: data[i]})
		litFreq[data[i]]++
		i++
	}

	litFreq[litlenEnd]++
	return tokens, litFreq, distFreq
}

// compressBlock encodes data as a Huffman-coded block payload: the
// serialized lit/len and distance trees followed by the coded token
// stream and end-of-block marker.
func compressBlock(data []byte) []byte {
	tokens, litFreq, distFreq := parseBlock(data)

	llLens := buildLengths(litFreq, maxBits)
	llCodes := buildCodes(llLens)
	dLens := buildLengths(distFreq, maxBits)
	dCodes := buildCodes(dLens)

	bw := newBitWriter(len(data))
	writeTrees(bw, llLens, dLens)

	for _, t := range tokens {
		if !t.isMatch {
			bw.write(uint32(llCodes[t.lit]), uint(llLens[t.lit]))
			continue
		}
		lsym, lebits, leval := lengthToCode(t.length)
		bw.write(uint32(llCodes[lsym]), uint(llLens[lsym]))
		if lebits > 0 {
			bw.write(uint32(leval), uint(lebits))
		}
		dsym, debits, deval := distToCode(t.dist)
		bw.write(uint32(dCodes[dsym]), uint(dLens[dsym]))
		if debits > 0 {
			bw.write(uint32(deval), uint(debits))
		}
	}
	bw.write(uint32(llCodes[litlenEnd]), uint(llLens[litlenEnd]))
	bw.flush()

	return bw.buf
}

// decompressBlock decodes a Huffman-coded block payload of exactly
// rawSize output bytes. llTable and distTable are scratch decode tables
// owned by the caller and rebuilt in place here, so a single
// Decompress call can reuse their backing arrays across blocks.
func decompressBlock(payload []byte, rawSize int, llTable, distTable *decodeTable) ([]byte, error) {
	br := newBitReader(payload)

	llLens, dLens, err := readTrees(br)
	if err != nil {
		return nil, err
	}
	llTable.build(llLens)
	distTable.build(dLens)

	out := make([]byte, 0, rawSize)
	for {
		sym, err := llTable.decode(br)
		if err != nil {
			return nil, err
		}

		if sym < litlenEnd {
			if len(out) >= rawSize {
				return nil, ErrOverrun
			}
			out = append(out, byte(sym))
			continue
		}
		if sym == litlenEnd {
			break
		}

		lc := sym - 257
		if lc < 0 || lc >= len(baseLength) {
			return nil, ErrInvalidLengthCode
		}
		length := baseLength[lc] + int(br.read(uint(extraLBits[lc])))

		dsym, err := distTable.decode(br)
		if err != nil {
			return nil, err
		}
		if dsym < 0 || dsym >= len(baseDist) {
			return nil, ErrInvalidDistanceCode
		}
		dist := baseDist[dsym] + int(br.read(uint(extraDBits[dsym])))

		if dist <= 0 || dist > len(out) {
			return nil, ErrBadDistance
		}
		if len(out)+length > rawSize {
			return nil, ErrOverrun
		}

		srcStart := len(out) - dist
		switch {
		case dist >= length:
			out = append(out, out[srcStart:srcStart+length]...)
		case dist == 1:
			b := out[len(out)-1]
			for k := 0; k < length; k++ {
				out = append(out, b)
			}
		default:
			for k := 0; k < length; k++ {
				out = append(out, out[srcStart+k])
			}
		}
	}

	if len(out) != rawSize {
		return nil, ErrSizeMismatch
	}
	return out, nil
}
