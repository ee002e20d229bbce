// Package coord converts between byte offsets and line/column positions.
//
// Columns are byte distances from the start of a line. Conversions clamp
// out-of-range input instead of failing, and LineColToOffset never returns
// an offset inside a grapheme cluster or past the end of the requested line.
package coord

import "github.com/dshills/caret/internal/engine/buffer"

// ByteOffset and Column are re-exported for callers that only need coord.
type (
	ByteOffset = buffer.ByteOffset
	Column     = buffer.Column
)

// Text is the line-index and grapheme capability the conversions need.
// Implemented by *buffer.Buffer and rope.Rope.
type Text interface {
	Len() ByteOffset
	LineCount() int
	OffsetOfLine(line int) ByteOffset
	LineOfOffset(offset ByteOffset) int
	PrevGraphemeOffset(offset ByteOffset) (ByteOffset, bool)
	NextGraphemeOffset(offset ByteOffset) (ByteOffset, bool)
}

// OffsetOfLine returns the offset of the first byte of line. The line is
// clamped to the line count first, so lines past the end resolve to the end
// of the text.
func OffsetOfLine(t Text, line int) ByteOffset {
	if line < 0 {
		line = 0
	}
	if n := t.LineCount(); line > n {
		line = n
	}
	return t.OffsetOfLine(line)
}

// LineOfOffset returns the line containing offset.
func LineOfOffset(t Text, offset ByteOffset) int {
	return t.LineOfOffset(offset)
}

// LastLine returns the index of the final line.
func LastLine(t Text) int {
	return t.LineOfOffset(t.Len())
}

// LineLen returns the byte length of line including its line break.
func LineLen(t Text, line int) ByteOffset {
	return OffsetOfLine(t, line+1) - OffsetOfLine(t, line)
}

// OffsetToLineCol splits offset into its line and the column within it.
func OffsetToLineCol(t Text, offset ByteOffset) (int, Column) {
	line := t.LineOfOffset(offset)
	return line, Column(offset - OffsetOfLine(t, line))
}

// OffsetToPoint is OffsetToLineCol returning a Point.
func OffsetToPoint(t Text, offset ByteOffset) buffer.Point {
	line, col := OffsetToLineCol(t, offset)
	return buffer.Point{Line: line, Column: col}
}

// LineColToOffset converts a line and column to an offset. The result is
// snapped back to a grapheme boundary, kept within line, and clamped to the
// end of the text.
func LineColToOffset(t Text, line int, col Column) ByteOffset {
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	offset := saturatingAdd(OffsetOfLine(t, line), ByteOffset(col))

	if length := t.Len(); offset >= length {
		offset = length
		if t.LineOfOffset(offset) <= line {
			return offset
		}
	} else {
		// Largest boundary at or before offset.
		offset, _ = t.PrevGraphemeOffset(offset + 1)
	}

	if next := OffsetOfLine(t, line+1); offset >= next {
		offset, _ = t.PrevGraphemeOffset(next)
	}
	return offset
}

// PointToOffset is LineColToOffset taking a Point.
func PointToOffset(t Text, p buffer.Point) ByteOffset {
	return LineColToOffset(t, p.Line, p.Column)
}

func saturatingAdd(a, b ByteOffset) ByteOffset {
	if s := a + b; s >= a {
		return s
	}
	return 1<<63 - 1
}
