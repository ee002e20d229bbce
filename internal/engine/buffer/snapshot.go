package buffer

import (
	"github.com/google/uuid"

	"github.com/dshills/caret/internal/engine/rope"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	id         uuid.UUID
	rope       rope.Rope
	revisionID RevisionID
	colors     []ColorSpan
}

// BufferID returns the ID of the buffer the snapshot was taken from.
func (s *Snapshot) BufferID() uuid.UUID {
	return s.id
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.rope.String()
}

// TextRange returns text in the given byte range.
func (s *Snapshot) TextRange(start, end ByteOffset) string {
	return s.rope.Slice(start, end)
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return s.rope.Len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return s.rope.LineCount()
}

// LineText returns the text of a specific line (without line ending).
func (s *Snapshot) LineText(line int) string {
	return s.rope.LineText(line)
}

// OffsetOfLine returns the byte offset of the start of a line.
func (s *Snapshot) OffsetOfLine(line int) ByteOffset {
	return s.rope.OffsetOfLine(line)
}

// LineOfOffset returns the line containing offset.
func (s *Snapshot) LineOfOffset(offset ByteOffset) int {
	return s.rope.LineOfOffset(offset)
}

// Colors returns the color spans at the time of the snapshot.
func (s *Snapshot) Colors() []ColorSpan {
	return s.colors
}

// RevisionID returns the revision the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

