package rope

import (
	"strings"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// The zero value is an empty rope.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	return Rope{root: buildFromChunks(splitIntoChunks(s))}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	return r.root.len()
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in the byte range [start, end), clamped to the rope.
func (r Rope) Slice(start, end ByteOffset) string {
	start = r.clamp(start)
	end = r.clamp(end)
	if start >= end {
		return ""
	}

	var sb strings.Builder
	sb.Grow(int(end - start))
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at the given offset.
// Returns 0 and false if offset is out of range.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	return r.root.byteAt(offset), true
}

// Insert inserts text at the given byte offset, clamped to the rope.
// Returns a new rope; original is unchanged.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes text in the byte range [start, end), clamped to the rope.
// Returns a new rope; original is unchanged.
func (r Rope) Delete(start, end ByteOffset) Rope {
	start = r.clamp(start)
	end = r.clamp(end)
	if start >= end {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace replaces text in the byte range [start, end) with new text.
// Returns a new rope; original is unchanged.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	return r.Delete(start, end).Insert(r.clamp(start), text)
}

// Split splits the rope at offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil {
		return Rope{}, Rope{}
	}
	left, right := r.root.split(r.clamp(offset))
	return Rope{root: unwrap(left)}, Rope{root: unwrap(right)}
}

// Concat concatenates two ropes.
// Returns a new rope; originals are unchanged.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: unwrap(concat(r.root, other.root))}
}

// OffsetOfLine returns the byte offset of the start of the given line.
// Lines past the last one resolve to the end of the rope.
func (r Rope) OffsetOfLine(line int) ByteOffset {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line > r.root.summary.Lines {
		return r.Len()
	}
	return r.root.offsetAfterNewline(line)
}

// LineOfOffset returns the line containing the given offset. Offsets past the
// end resolve to the last line.
func (r Rope) LineOfOffset(offset ByteOffset) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	return r.root.newlinesBefore(offset)
}

// LineText returns the text of the given line without its line break.
func (r Rope) LineText(line int) string {
	text := r.Slice(r.OffsetOfLine(line), r.OffsetOfLine(line+1))
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	return r.Len() == other.Len() && r.String() == other.String()
}

func (r Rope) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if n := r.Len(); offset > n {
		return n
	}
	return offset
}
