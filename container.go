package odz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Stream container (spec §6), ported from original_source/odz.c: a fixed
// 12-byte header followed by one or more self-describing blocks.

const (
	magic         = "ODZ"
	formatVersion = 2 // ODZ_VERSION, per original_source/odz.h
	blockSize     = 1 << 20 // ODZ_BLOCK_SIZE

	// Block flags byte layout (spec §6): bit 0 is the last-block
	// indicator; bits 1-2 carry the block type (0 = stored, 1 = huffman;
	// 2 and 3 are reserved and rejected as ErrUnknownBlockType).
	flagLastBlock  = 1 << 0
	blockTypeShift = 1
	blockTypeMask  = 0x3

	blockTypeStored  = 0
	blockTypeHuffman = 1
)

// ProgressFunc, if set on an Options value, is invoked after each block is
// written (Compress) or read (Decompress); Compress does not invoke it for
// the single empty block it writes for empty input. It carries the running
// block count, bytes processed so far, and the total byte count — the Go
// equivalent of original_source/odz.c's fprintf progress reporting, kept
// as an optional caller-supplied callback.
type ProgressFunc func(blocks int, bytesDone, bytesTotal int64)

// Options configures a Compress/Decompress call beyond the package
// defaults.
type Options struct {
	Progress ProgressFunc
}

// Compress reads all of r, encodes it as an ODZ stream, and writes it to w.
func Compress(r io.Reader, w io.Writer) error {
	return CompressWithOptions(r, w, nil)
}

// CompressWithOptions is Compress with an optional progress callback.
func CompressWithOptions(r io.Reader, w io.Writer, opts *Options) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("odz: read input: %w", err)
	}

	if err := writeHeader(w, uint64(len(data))); err != nil {
		return err
	}

	total := int64(len(data))
	if total == 0 {
		return writeBlock(w, nil, nil, true)
	}

	var done int64
	blocks := 0
	for done < total {
		n := int64(blockSize)
		if done+n > total {
			n = total - done
		}
		chunk := data[done : done+n]
		last := done+n == total

		if err := compressOneBlock(w, chunk, last); err != nil {
			return err
		}
		done += n
		blocks++
		if opts != nil && opts.Progress != nil {
			opts.Progress(blocks, done, total)
		}
	}
	return nil
}

// compressOneBlock encodes chunk, preferring the Huffman-coded payload
// unless it would not be smaller than storing the chunk raw.
func compressOneBlock(w io.Writer, chunk []byte, last bool) error {
	huff := compressBlock(chunk)
	if len(huff) < len(chunk) {
		return writeBlock(w, chunk, huff, last)
	}
	return writeBlock(w, chunk, nil, last)
}

// writeBlock emits one block header plus payload. A nil huff payload
// means the block is stored verbatim (raw == payload).
func writeBlock(w io.Writer, raw, huff []byte, last bool) error {
	flags := byte(0)
	if huff != nil {
		flags |= blockTypeHuffman << blockTypeShift
	}
	if last {
		flags |= flagLastBlock
	}

	if _, err := w.Write([]byte{flags}); err != nil {
		return fmt.Errorf("odz: write block flags: %w", err)
	}
	if err := writeU32(w, uint32(len(raw))); err != nil {
		return fmt.Errorf("odz: write block raw size: %w", err)
	}

	if huff != nil {
		if err := writeU32(w, uint32(len(huff))); err != nil {
			return fmt.Errorf("odz: write block comp size: %w", err)
		}
		if _, err := w.Write(huff); err != nil {
			return fmt.Errorf("odz: write block payload: %w", err)
		}
		return nil
	}

	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("odz: write block payload: %w", err)
	}
	return nil
}

func writeHeader(w io.Writer, originalSize uint64) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return fmt.Errorf("odz: write header magic: %w", err)
	}
	if _, err := w.Write([]byte{formatVersion}); err != nil {
		return fmt.Errorf("odz: write header version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, originalSize); err != nil {
		return fmt.Errorf("odz: write header size: %w", err)
	}
	return nil
}

func writeU32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

// Decompress reads an ODZ stream from r and writes the decoded bytes to w.
func Decompress(r io.Reader, w io.Writer) error {
	return DecompressWithOptions(r, w, nil)
}

// DecompressWithOptions is Decompress with an optional progress callback.
func DecompressWithOptions(r io.Reader, w io.Writer, opts *Options) error {
	originalSize, err := readHeader(r)
	if err != nil {
		return err
	}

	var llTable, distTable decodeTable
	var written int64
	blocks := 0

	for {
		raw, last, err := decodeOneBlock(r, &llTable, &distTable, w)
		if err != nil {
			return err
		}
		written += raw
		blocks++
		if opts != nil && opts.Progress != nil {
			opts.Progress(blocks, written, int64(originalSize))
		}
		if last {
			break
		}
	}

	if written != int64(originalSize) {
		return ErrSizeMismatch
	}
	return nil
}

func readHeader(r io.Reader) (uint64, error) {
	hdr, err := readExact(r, 3+1+8)
	if err != nil {
		return 0, err
	}
	if string(hdr[:3]) != magic {
		return 0, ErrBadMagic
	}
	if hdr[3] != formatVersion {
		return 0, ErrUnsupportedVersion
	}
	return binary.LittleEndian.Uint64(hdr[4:]), nil
}

// decodeOneBlock reads and writes out the next block, returning its
// decompressed size and whether it was marked as the final block.
func decodeOneBlock(r io.Reader, llTable, distTable *decodeTable, w io.Writer) (int64, bool, error) {
	flagsBuf, err := readExact(r, 1)
	if err != nil {
		return 0, false, err
	}
	flags := flagsBuf[0]

	rawSizeBuf, err := readExact(r, 4)
	if err != nil {
		return 0, false, err
	}
	rawSize := binary.LittleEndian.Uint32(rawSizeBuf)
	if rawSize > blockSize {
		return 0, false, ErrBlockTooLarge
	}

	blockType := (flags >> blockTypeShift) & blockTypeMask
	switch blockType {
	case blockTypeStored:
		payload, err := readExact(r, int(rawSize))
		if err != nil {
			return 0, false, err
		}
		if _, err := w.Write(payload); err != nil {
			return 0, false, fmt.Errorf("odz: write output: %w", err)
		}
		return int64(rawSize), flags&flagLastBlock != 0, nil
	case blockTypeHuffman:
		// fall through to the Huffman decode path below
	default:
		return 0, false, ErrUnknownBlockType
	}

	compSizeBuf, err := readExact(r, 4)
	if err != nil {
		return 0, false, err
	}
	compSize := binary.LittleEndian.Uint32(compSizeBuf)

	payload, err := readExact(r, int(compSize))
	if err != nil {
		return 0, false, err
	}

	out, err := decompressBlock(payload, int(rawSize), llTable, distTable)
	if err != nil {
		return 0, false, err
	}
	if _, err := w.Write(out); err != nil {
		return 0, false, fmt.Errorf("odz: write output: %w", err)
	}
	return int64(rawSize), flags&flagLastBlock != 0, nil
}

func readExact(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("odz: read stream: %w", err)
	}
	return buf, nil
}

// Writer buffers writes and encodes them as a single ODZ stream on Close,
// mirroring the teacher's buffer-then-delegate Writer (compression needs
// the whole input to size the container header and choose per-block
// framing, so there is no way to emit output before Close).
type Writer struct {
	dst    io.Writer
	buf    bytes.Buffer
	opts   *Options
	closed bool
}

// NewWriter returns a Writer that encodes everything written to it as an
// ODZ stream written to w when Close is called.
func NewWriter(w io.Writer) *Writer {
	return &Writer{dst: w}
}

// NewWriterWithOptions is NewWriter with an optional progress callback.
func NewWriterWithOptions(w io.Writer, opts *Options) *Writer {
	return &Writer{dst: w, opts: opts}
}

func (wr *Writer) Write(p []byte) (int, error) {
	if wr.closed {
		return 0, errors.New("odz: write to closed Writer")
	}
	return wr.buf.Write(p)
}

// Close encodes the buffered input and flushes it to the underlying
// writer. It is idempotent: calling Close more than once is a no-op.
func (wr *Writer) Close() error {
	if wr.closed {
		return nil
	}
	wr.closed = true
	return CompressWithOptions(&wr.buf, wr.dst, wr.opts)
}

// NewReader decodes the entire ODZ stream read from r up front and returns
// an io.ReadCloser serving the decompressed bytes.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	var buf bytes.Buffer
	if err := Decompress(r, &buf); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}
