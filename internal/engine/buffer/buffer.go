package buffer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caret/internal/engine/rope"
	"github.com/dshills/caret/internal/engine/spans"
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "\\r\\n"
	}
	return "\\n"
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// ParseLineEnding converts "lf" or "crlf" (any case) to a LineEnding.
func ParseLineEnding(s string) (LineEnding, bool) {
	switch strings.ToLower(s) {
	case "lf", "\\n", "unix":
		return LineEndingLF, true
	case "crlf", "\\r\\n", "windows":
		return LineEndingCRLF, true
	}
	return LineEndingLF, false
}

// ColorSpan is a color attached to a byte range of the buffer.
type ColorSpan = spans.Span[colorful.Color]

// Buffer wraps a Rope with editor functionality: revision tracking, line
// ending normalization and color metadata that follows edits.
//
// Buffer is not safe for concurrent use; the engine serializes access.
type Buffer struct {
	id         uuid.UUID
	rope       rope.Rope
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
	colors     spans.Spans[colorful.Color]
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		id:         uuid.New(),
		rope:       rope.New(),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.rope = rope.FromString(b.normalizeLineEndings(s))
	return b
}

// normalizeLineEndings converts all line endings to the buffer's style.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') && b.lineEnding == LineEndingLF {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding != LineEndingLF {
		s = strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
	}
	return s
}

// Read Operations

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	return b.rope.Slice(start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return b.rope.Len()
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// LineText returns the text of a specific line (without line ending).
func (b *Buffer) LineText(line int) string {
	return b.rope.LineText(line)
}

// LineLen returns the length of a specific line in bytes (without line ending).
func (b *Buffer) LineLen(line int) int {
	return len(b.rope.LineText(line))
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	return b.rope.ByteAt(offset)
}

// Line and grapheme queries

// OffsetOfLine returns the byte offset of the start of a line.
func (b *Buffer) OffsetOfLine(line int) ByteOffset {
	return b.rope.OffsetOfLine(line)
}

// LineOfOffset returns the line containing offset.
func (b *Buffer) LineOfOffset(offset ByteOffset) int {
	return b.rope.LineOfOffset(offset)
}

// NextGraphemeOffset returns the next grapheme cluster boundary after offset.
func (b *Buffer) NextGraphemeOffset(offset ByteOffset) (ByteOffset, bool) {
	return b.rope.NextGraphemeOffset(offset)
}

// PrevGraphemeOffset returns the previous grapheme cluster boundary before offset.
func (b *Buffer) PrevGraphemeOffset(offset ByteOffset) (ByteOffset, bool) {
	return b.rope.PrevGraphemeOffset(offset)
}

// NextLineBoundary returns the start of the line after the one containing offset.
func (b *Buffer) NextLineBoundary(offset ByteOffset) (ByteOffset, bool) {
	return b.rope.NextLineBoundary(offset)
}

// PrevLineBoundary returns the nearest line start before offset.
func (b *Buffer) PrevLineBoundary(offset ByteOffset) (ByteOffset, bool) {
	return b.rope.PrevLineBoundary(offset)
}

// NextWordOffset returns the end of the next word after offset.
func (b *Buffer) NextWordOffset(offset ByteOffset) ByteOffset {
	return b.rope.NextWordOffset(offset)
}

// PrevWordOffset returns the start of the word before offset.
func (b *Buffer) PrevWordOffset(offset ByteOffset) ByteOffset {
	return b.rope.PrevWordOffset(offset)
}

// Write Operations
//
// Offsets are clamped to the buffer rather than rejected.

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) ByteOffset {
	return b.ApplyEdit(NewInsert(offset, text)).NewRange.End
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) {
	b.ApplyEdit(NewDelete(start, end))
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) ByteOffset {
	return b.ApplyEdit(NewEdit(NewRange(start, end), text)).NewRange.End
}

// ApplyEdit applies a single edit to the buffer. Color spans are updated as
// part of the same edit.
func (b *Buffer) ApplyEdit(edit Edit) EditResult {
	r := NewRange(edit.Range.Start, edit.Range.End).Clamp(b.rope.Len())
	text := b.normalizeLineEndings(edit.NewText)
	if r.IsEmpty() && text == "" {
		return EditResult{OldRange: r, NewRange: r}
	}

	applied := Edit{Range: r, NewText: text}
	oldText := b.rope.Slice(r.Start, r.End)
	b.rope = b.rope.Replace(r.Start, r.End, text)
	b.colors.Edit(r.Start, r.End, ByteOffset(len(text)))
	b.revisionID = NewRevisionID()

	return EditResult{
		OldRange: r,
		NewRange: applied.InsertedRange(),
		OldText:  oldText,
		Delta:    ByteOffset(len(text)) - r.Len(),
	}
}

// SetText replaces the whole content and drops all color spans.
func (b *Buffer) SetText(text string) {
	b.rope = rope.FromString(b.normalizeLineEndings(text))
	b.colors.Clear()
	b.revisionID = NewRevisionID()
}

// Color metadata

// SetColor attaches a color to the given range, replacing any color that
// was there.
func (b *Buffer) SetColor(r Range, c colorful.Color) {
	r = r.Clamp(b.rope.Len())
	b.colors.Set(r.Start, r.End, c)
}

// ClearColors removes every color span.
func (b *Buffer) ClearColors() {
	b.colors.Clear()
}

// ColorSpans returns the color spans intersecting r, with offsets relative
// to r.Start.
func (b *Buffer) ColorSpans(r Range) []ColorSpan {
	return b.colors.Subseq(r.Start, r.End)
}

// ColorAt returns the color covering offset, if any.
func (b *Buffer) ColorAt(offset ByteOffset) (colorful.Color, bool) {
	sp, ok := b.colors.At(offset)
	return sp.Value, ok
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// SetLineEnding sets the buffer's line ending style.
// This does not convert existing line endings.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	if width > 0 {
		b.tabWidth = width
	}
}

// Snapshot returns a read-only snapshot of the current buffer state.
// It can be read from other goroutines while the buffer keeps changing.
func (b *Buffer) Snapshot() *Snapshot {
	return &Snapshot{
		id:         b.id,
		rope:       b.rope, // Ropes are immutable, safe to share
		revisionID: b.revisionID,
		colors:     b.colors.All(),
	}
}
