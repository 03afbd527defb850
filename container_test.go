package odz

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"empty":            {},
		"single-byte":      {'Q'},
		"small-text":       []byte("hello, world! hello, world!"),
		"multi-block":      bytes.Repeat([]byte("0123456789"), blockSize/5),
		"incompressible":   randomBlockBytes(99, 50000),
		"exact-block-size": bytes.Repeat([]byte{0xAB}, blockSize),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			var compressed bytes.Buffer
			if err := Compress(bytes.NewReader(data), &compressed); err != nil {
				t.Fatalf("Compress: %v", err)
			}

			var out bytes.Buffer
			if err := Decompress(bytes.NewReader(compressed.Bytes()), &out); err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(out.Bytes(), data) {
				t.Fatalf("round trip mismatch for %q: got %d bytes, want %d", name, out.Len(), len(data))
			}
		})
	}
}

func TestCompressThenCompressAgainIsIdempotentOnRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	var once bytes.Buffer
	if err := Compress(bytes.NewReader(data), &once); err != nil {
		t.Fatalf("first Compress: %v", err)
	}

	var roundTripped bytes.Buffer
	if err := Decompress(bytes.NewReader(once.Bytes()), &roundTripped); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(roundTripped.Bytes(), data) {
		t.Fatal("decompressed output does not match original input")
	}

	var twice bytes.Buffer
	if err := Compress(bytes.NewReader(roundTripped.Bytes()), &twice); err != nil {
		t.Fatalf("second Compress: %v", err)
	}
	var final bytes.Buffer
	if err := Decompress(bytes.NewReader(twice.Bytes()), &final); err != nil {
		t.Fatalf("second Decompress: %v", err)
	}
	if !bytes.Equal(final.Bytes(), data) {
		t.Fatal("second round trip changed the data")
	}
}

func TestDecompressRejectsBadMagic(t *testing.T) {
	bad := []byte("XYZ\x01\x00\x00\x00\x00\x00\x00\x00\x00")
	var out bytes.Buffer
	err := Decompress(bytes.NewReader(bad), &out)
	if err != ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestCompressWritesVersion2Header(t *testing.T) {
	var compressed bytes.Buffer
	if err := Compress(bytes.NewReader([]byte("hello")), &compressed); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if got := compressed.Bytes()[3]; got != 2 {
		t.Fatalf("header version byte = %d, want 2", got)
	}
}

func TestCompressEmptyInputWritesStoredLastBlockFlags(t *testing.T) {
	var compressed bytes.Buffer
	if err := Compress(bytes.NewReader(nil), &compressed); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	// Header is 12 bytes; the block's flags byte follows immediately.
	flags := compressed.Bytes()[12]
	if flags != 0x01 {
		t.Fatalf("empty-input block flags = 0x%02x, want 0x01 (stored, last)", flags)
	}
}

func TestDecompressRejectsUnknownBlockType(t *testing.T) {
	var compressed bytes.Buffer
	if err := Compress(bytes.NewReader([]byte("hello")), &compressed); err != nil {
		t.Fatalf("Compress: %v", err)
	}

	corrupted := append([]byte(nil), compressed.Bytes()...)
	// Stamp the first block's type field (bits 1-2) to the reserved
	// value 3, keeping the last-block bit intact.
	corrupted[12] = (corrupted[12] &^ (blockTypeMask << blockTypeShift)) | (3 << blockTypeShift)

	var out bytes.Buffer
	err := Decompress(bytes.NewReader(corrupted), &out)
	if err != ErrUnknownBlockType {
		t.Fatalf("expected ErrUnknownBlockType, got %v", err)
	}
}

func TestDecompressRejectsTruncatedStream(t *testing.T) {
	data := bytes.Repeat([]byte("abcdef"), 5000)
	var compressed bytes.Buffer
	if err := Compress(bytes.NewReader(data), &compressed); err != nil {
		t.Fatalf("Compress: %v", err)
	}

	truncated := compressed.Bytes()[:compressed.Len()-10]
	var out bytes.Buffer
	if err := Decompress(bytes.NewReader(truncated), &out); err == nil {
		t.Fatal("expected an error decoding a truncated stream")
	}
}

func TestNewReaderNewWriter(t *testing.T) {
	data := []byte("streamed through Writer and Reader wrappers")

	var dst bytes.Buffer
	w := NewWriter(&dst)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := NewReader(bytes.NewReader(dst.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	out := make([]byte, 0, len(data))
	buf := make([]byte, 8)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			break
		}
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("got %q, want %q", out, data)
	}
}

func TestWriterRejectsWriteAfterClose(t *testing.T) {
	var dst bytes.Buffer
	w := NewWriter(&dst)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := w.Write([]byte("too late")); err == nil {
		t.Fatal("expected an error writing after Close")
	}
}

func TestProgressCallbackReachesFinalBlock(t *testing.T) {
	data := bytes.Repeat([]byte("progress"), blockSize/4)

	var compressed bytes.Buffer
	var lastBytes int64
	opts := &Options{Progress: func(blocks int, bytesDone, bytesTotal int64) {
		lastBytes = bytesDone
	}}
	if err := CompressWithOptions(bytes.NewReader(data), &compressed, opts); err != nil {
		t.Fatalf("CompressWithOptions: %v", err)
	}
	if lastBytes != int64(len(data)) {
		t.Fatalf("progress callback reported %d bytes, want %d", lastBytes, len(data))
	}
}

func fuzzCorpus(n int) []byte {
	rng := rand.New(rand.NewSource(int64(n)))
	return randomishBytes(rng, n)
}

func TestCompressDecompressFuzzSizes(t *testing.T) {
	for _, n := range []int{0, 1, 2, 17, 4095, 4096, 4097, blockSize - 1, blockSize, blockSize + 1} {
		data := fuzzCorpus(n)
		var compressed, out bytes.Buffer
		if err := Compress(bytes.NewReader(data), &compressed); err != nil {
			t.Fatalf("n=%d: Compress: %v", n, err)
		}
		if err := Decompress(bytes.NewReader(compressed.Bytes()), &out); err != nil {
			t.Fatalf("n=%d: Decompress: %v", n, err)
		}
		if !bytes.Equal(out.Bytes(), data) {
			t.Fatalf("n=%d: round trip mismatch", n)
		}
	}
}
