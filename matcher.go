package odz

import "sync"

// LZ77 hash-chain match finder (spec §4.4), ported from
// original_source/lz_hashchain.c. A rolling 3-byte hash buckets window
// positions into singly linked chains (head/prev), walked back-to-front and
// bounded by maxChain so worst-case match cost stays linear in practice.

const (
	hashBits   = 15
	hashSize   = 1 << hashBits
	hashMask   = hashSize - 1
	minMatch   = 3
	maxMatch   = 258
	maxChain   = 64 // MAX_CHAIN_STEPS, per spec §4.4
	windowBits = 15
	windowSize = 1 << windowBits
	windowMask = windowSize - 1
)

// lzMatcher holds the hash-chain state for one block's worth of matching.
// It is reset and reused across blocks via a sync.Pool (matcherPool below),
// mirroring woozymasta-lzo/sliding_window_pool.go's acquire/release pattern.
type lzMatcher struct {
	head []int32 // hashSize buckets -> most recent position with that hash, or -1
	prev []int32 // windowSize slots -> previous position sharing the same hash, or -1
}

var matcherPool = sync.Pool{
	New: func() interface{} {
		return &lzMatcher{
			head: make([]int32, hashSize),
			prev: make([]int32, windowSize),
		}
	},
}

// acquireMatcher returns a matcher reset for a fresh block.
func acquireMatcher() *lzMatcher {
	m := matcherPool.Get().(*lzMatcher)
	for i := range m.head {
		m.head[i] = -1
	}
	return m
}

// releaseMatcher returns m to the pool for reuse by a later block.
func releaseMatcher(m *lzMatcher) {
	matcherPool.Put(m)
}

// hash3 computes a hashBits-wide hash of the 3 bytes starting at data[pos].
func hash3(data []byte, pos int) int {
	h := (uint32(data[pos])<<16 ^ uint32(data[pos+1])<<8 ^ uint32(data[pos+2])) * 2654435761
	return int(h & hashMask)
}

// insert records position pos (whose 3-byte prefix lies within data) into
// the hash chain.
func (m *lzMatcher) insert(data []byte, pos int) {
	if pos+minMatch > len(data) {
		return
	}
	h := hash3(data, pos)
	m.prev[pos&windowMask] = m.head[h]
	m.head[h] = int32(pos)
}

// matchLen returns the length of the common prefix of data[a:] and
// data[b:], capped at maxMatch and so that b+n never reaches limit.
func matchLen(data []byte, a, b, limit int) int {
	n := 0
	for a+n < len(data) && b+n < limit && data[a+n] == data[b+n] && n < maxMatch {
		n++
	}
	return n
}

// findBest searches the hash chain at pos for the longest match of length
// >= minMatch within the sliding window, returning (length, distance) or
// (0, 0) if none qualifies. limit bounds how far a match may read (used to
// keep matches from crossing the block boundary into unwritten lookahead).
func (m *lzMatcher) findBest(data []byte, pos, limit int) (length, dist int) {
	if pos+minMatch > limit {
		return 0, 0
	}
	h := hash3(data, pos)
	cand := m.head[h]
	chain := maxChain
	minPos := pos - windowSize
	if minPos < 0 {
		minPos = 0
	}

	bestLen := minMatch - 1
	bestDist := 0

	for cand >= int32(minPos) && chain > 0 {
		c := int(cand)
		if c < pos {
			l := matchLen(data, c, pos, limit)
			if l > bestLen {
				bestLen = l
				bestDist = pos - c
				if l >= maxMatch {
					break
				}
			}
		}
		cand = m.prev[c&windowMask]
		chain--
	}

	if bestLen < minMatch {
		return 0, 0
	}
	return bestLen, bestDist
}
