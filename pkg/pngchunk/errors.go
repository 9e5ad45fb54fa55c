package pngchunk

import "errors"

// Sentinel errors returned (wrapped) by the parsing and accessor paths.
// Callers match them with errors.Is.
var (
	// ErrInvalidChunkType is returned when a type tag is not four ASCII
	// letters or its reserved bit (third byte uppercase) is not set.
	ErrInvalidChunkType = errors.New("invalid chunk type")

	// ErrTruncated is returned when a buffer ends before the record it
	// declares is complete.
	ErrTruncated = errors.New("truncated chunk record")

	// ErrCRCMismatch is returned when the stored CRC disagrees with the
	// checksum recomputed over type and data; the record may be corrupted.
	ErrCRCMismatch = errors.New("crc mismatch")

	// ErrNotText is returned by DataAsString when the chunk data is not
	// valid UTF-8.
	ErrNotText = errors.New("chunk data is not valid text")
)
