package selection

import (
	"fmt"

	"github.com/dshills/caret/internal/engine/buffer"
)

// Aliases for buffer types used throughout the package.
type (
	ByteOffset = buffer.ByteOffset
	Column     = buffer.Column
	Range      = buffer.Range
)

// Selection is a single selected region or caret.
// Start is where the selection began and End is the active point; End may
// lie before Start when the region was extended backwards.
// Selection is an immutable value type.
type Selection struct {
	Start ByteOffset
	End   ByteOffset

	column    Column
	hasColumn bool
}

// New creates a selection from start to end.
func New(start, end ByteOffset) Selection {
	return Selection{Start: start, End: end}
}

// NewCaret creates a zero-width selection at offset.
func NewCaret(offset ByteOffset) Selection {
	return Selection{Start: offset, End: offset}
}

// Min returns the lower bound of the selection.
func (s Selection) Min() ByteOffset {
	return min(s.Start, s.End)
}

// Max returns the upper bound of the selection.
func (s Selection) Max() ByteOffset {
	return max(s.Start, s.End)
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() Range {
	return Range{Start: s.Min(), End: s.Max()}
}

// Len returns the length of the selection in bytes.
func (s Selection) Len() ByteOffset {
	return s.Max() - s.Min()
}

// IsCaret returns true if the selection has no extent.
func (s Selection) IsCaret() bool {
	return s.Start == s.End
}

// IsForward returns true if the active point is not before the start.
func (s Selection) IsForward() bool {
	return s.End >= s.Start
}

// Column returns the remembered horizontal position, if one was set by a
// vertical movement.
func (s Selection) Column() (Column, bool) {
	return s.column, s.hasColumn
}

// WithColumn returns a copy remembering col for vertical movement.
func (s Selection) WithColumn(col Column) Selection {
	s.column = col
	s.hasColumn = true
	return s
}

// WithoutColumn returns a copy with no remembered column.
func (s Selection) WithoutColumn() Selection {
	s.column = 0
	s.hasColumn = false
	return s
}

// Collapse returns a caret at the active point.
func (s Selection) Collapse() Selection {
	return NewCaret(s.End)
}

// ShouldMerge reports whether other must be folded into s when both are in
// a group. It expects s.Min() <= other.Min().
//
// Overlapping regions always merge. Regions that only touch merge when
// either of them is a caret.
func (s Selection) ShouldMerge(other Selection) bool {
	return other.Min() < s.Max() ||
		((s.IsCaret() || other.IsCaret()) && other.Min() == s.Max())
}

// MergeWith returns the union of s and other. The result keeps the
// direction of s and forgets any remembered column.
func (s Selection) MergeWith(other Selection) Selection {
	lo := min(s.Min(), other.Min())
	hi := max(s.Max(), other.Max())
	if s.IsForward() {
		return New(lo, hi)
	}
	return New(hi, lo)
}

// Clamp returns a selection clamped to [0, maxOffset].
func (s Selection) Clamp(maxOffset ByteOffset) Selection {
	s.Start = min(max(s.Start, 0), maxOffset)
	s.End = min(max(s.End, 0), maxOffset)
	return s
}

// Equals returns true if both selections cover the same offsets in the
// same direction. Remembered columns are ignored.
func (s Selection) Equals(other Selection) bool {
	return s.Start == other.Start && s.End == other.End
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsCaret() {
		return fmt.Sprintf("Caret(%d)", s.End)
	}
	dir := "→"
	if !s.IsForward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Start, dir, s.End)
}
