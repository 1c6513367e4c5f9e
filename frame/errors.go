package frame

import "errors"

// ErrTruncatedFrame is returned when the stream closes or errors before a
// declared frame length is fully read.
var ErrTruncatedFrame = errors.New("frame: truncated")

// ErrFrameTooLarge is returned when a frame's declared length exceeds the
// 2 MiB hard cap.
var ErrFrameTooLarge = errors.New("frame: exceeds maximum size")

// ErrBadVarInt is returned when a length-prefix VarInt's continuation bits
// run past 5 bytes.
var ErrBadVarInt = errors.New("frame: malformed VarInt")

// ErrDecompressError is returned when zlib inflate fails outright.
var ErrDecompressError = errors.New("frame: decompression failed")

// ErrDecompressedSizeMismatch is returned when an inflated payload's length
// does not match the declared uncompressed length.
var ErrDecompressedSizeMismatch = errors.New("frame: decompressed size mismatch")
