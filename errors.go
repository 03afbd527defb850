package odz

import "errors"

// Sentinel errors for the container, block, and Huffman decode layers.
// Callers can use errors.Is to test for a specific condition; all of them
// represent a fatal, non-recoverable problem with the current stream (see
// spec §7) rather than a local, retryable failure.
var (
	// ErrBadMagic is returned when a stream does not start with "ODZ".
	ErrBadMagic = errors.New("odz: bad magic")
	// ErrUnsupportedVersion is returned for a version byte other than the one this package writes.
	ErrUnsupportedVersion = errors.New("odz: unsupported version")
	// ErrTruncated is returned when a stream ends before a header or payload is fully read.
	ErrTruncated = errors.New("odz: truncated stream")
	// ErrBlockTooLarge is returned when a block header declares a raw size above the block size limit.
	ErrBlockTooLarge = errors.New("odz: block larger than maximum block size")
	// ErrUnknownBlockType is returned for a block flags field with an unrecognized type.
	ErrUnknownBlockType = errors.New("odz: unknown block type")
	// ErrInvalidLengthCode is returned when a decoded length symbol is out of range.
	ErrInvalidLengthCode = errors.New("odz: invalid length code")
	// ErrInvalidDistanceCode is returned when a decoded distance symbol is out of range.
	ErrInvalidDistanceCode = errors.New("odz: invalid distance code")
	// ErrBadDistance is returned when a match distance is zero or exceeds the bytes emitted so far.
	ErrBadDistance = errors.New("odz: invalid match distance")
	// ErrOverrun is returned when a literal or match would write past the declared block size.
	ErrOverrun = errors.New("odz: block overrun")
	// ErrSizeMismatch is returned when a decoded block's size does not match its declared raw size,
	// or when total decompressed output does not match the container's declared original size.
	ErrSizeMismatch = errors.New("odz: size mismatch")
	// ErrCodeLength16NoPrev is returned when code-length symbol 16 (repeat previous) appears first.
	ErrCodeLength16NoPrev = errors.New("odz: code-length repeat with no previous value")
	// ErrCorruptSymbol is returned when a bad code-length symbol or an unassigned decode-table
	// entry is hit, indicating a corrupt or over-subscribed Huffman tree.
	ErrCorruptSymbol = errors.New("odz: corrupt or over-subscribed code")
)
