package buffer

import "fmt"

// Range represents a byte range in the buffer.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// NewRange creates a Range, ordering the offsets so Start <= End.
func NewRange(a, b ByteOffset) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}

// Shift returns a new range shifted by the given delta.
func (r Range) Shift(delta ByteOffset) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Clamp limits the range to [0, length].
func (r Range) Clamp(length ByteOffset) Range {
	return Range{Start: clampOffset(r.Start, length), End: clampOffset(r.End, length)}
}

func clampOffset(offset, length ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > length {
		return length
	}
	return offset
}
