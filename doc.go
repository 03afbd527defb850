// SPDX-License-Identifier: BSD-2-Clause
// Adapted from github.com/JoshVarga/blast (Copyright (c) 2018 Josh Varga).

/*
Package odz implements the ODZ block-based LZ77 + canonical Huffman codec.

Input is split into independent blocks of up to 1 MiB. Each block is parsed
by an LZ77 hash-chain matcher into a stream of literal/match tokens, which
are then entropy-coded with a pair of per-block canonical Huffman trees (one
for literals/lengths, one for distances) using the classical DEFLATE-style
length/distance code tables and 3-level tree serialization. A block whose
Huffman payload would not be smaller than the raw bytes is stored verbatim
instead.

# Compress

	err := odz.Compress(r, w)

# Decompress

	err := odz.Decompress(r, w)

Streaming wrappers are also available for callers that prefer an
io.ReadCloser/io.WriteCloser:

	r, err := odz.NewReader(compressed)
	io.Copy(dst, r)
	r.Close()

	w := odz.NewWriter(dst)
	w.Write(data)
	w.Close()
*/
package odz
