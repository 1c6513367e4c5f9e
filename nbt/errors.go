package nbt

import "errors"

// Sentinel errors for the documented NBT failure modes. Reader/writer
// methods wrap these with fmt.Errorf("...: %w", ...) so callers can match
// with errors.Is while still getting a human-readable message.
var (
	// ErrMixedListTypes is returned when a List's elements do not all share
	// the list's declared element tag id.
	ErrMixedListTypes = errors.New("nbt: list has mixed element types")

	// ErrBadTagID is returned when a tag type byte does not correspond to
	// any of the 13 defined tag kinds.
	ErrBadTagID = errors.New("nbt: unknown tag id")

	// ErrTruncated is returned when the input ends before a complete tag
	// (or its declared length) has been read.
	ErrTruncated = errors.New("nbt: truncated data")

	// ErrNameTooLong is returned when a compound entry or root name exceeds
	// 32767 bytes.
	ErrNameTooLong = errors.New("nbt: name exceeds maximum length")

	// ErrInvalidUTF8 is returned when a name or string payload is not
	// well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("nbt: invalid utf-8")
)
