package buffer

import "fmt"

// Edit represents a text edit operation: the range to replace and the new
// text.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit creates a new Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: NewRange(start, end)}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// InsertedRange returns the range the new text occupies once applied.
func (e Edit) InsertedRange() Range {
	return Range{Start: e.Range.Start, End: e.Range.Start + ByteOffset(len(e.NewText))}
}

// EditResult contains information about an applied edit.
type EditResult struct {
	OldRange Range  // Range that was replaced, after clamping
	NewRange Range  // Range occupied by the inserted text
	OldText  string // Text that was replaced
	Delta    ByteOffset
}
