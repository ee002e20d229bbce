package view

import (
	"github.com/dshills/caret/internal/engine/coord"
	"github.com/dshills/caret/internal/engine/selection"
)

// MoveSelection applies m to every region and installs the result.
//
// When modify is true regions are extended (the start stays put); otherwise
// each region becomes a caret at its new position.
func (v *View) MoveSelection(m Movement, modify bool) {
	v.SetSelection(v.MovedSelection(m, modify))
}

// MovedSelection returns the union of every region moved by m. Regions that
// meet after moving are merged.
func (v *View) MovedSelection(m Movement, modify bool) *Group {
	out := selection.NewGroup()
	for _, r := range v.selection.Regions() {
		out.AddRegion(v.MovedSelectionRegion(m, r, modify))
	}
	return out
}

// MovedSelectionRegion computes the result of moving one region.
func (v *View) MovedSelectionRegion(m Movement, r Selection, modify bool) Selection {
	var (
		end    ByteOffset
		col    Column
		hasCol = m.IsVertical()
	)

	switch m {
	case Up:
		end, col = v.verticalMotion(r, -1, modify)
	case Down:
		end, col = v.verticalMotion(r, 1, modify)
	case UpPage:
		end, col = v.verticalMotion(r, -v.PageScrollHeight(), modify)
	case DownPage:
		end, col = v.verticalMotion(r, v.PageScrollHeight(), modify)
	case UpExactPosition:
		end, col = v.verticalMotionExactPos(r, true, modify)
	case DownExactPosition:
		end, col = v.verticalMotionExactPos(r, false, modify)

	case StartOfDocument:
		end = 0
	case EndOfDocument:
		end = v.buf.Len()

	case Left:
		if !r.IsCaret() && !modify {
			end = r.Min()
			break
		}
		if prev, ok := v.buf.PrevGraphemeOffset(r.End); ok {
			end = prev
		} else {
			end = 0
			col, hasCol = r.Column()
		}
	case Right:
		if !r.IsCaret() && !modify {
			end = r.Max()
			break
		}
		if next, ok := v.buf.NextGraphemeOffset(r.End); ok {
			end = next
		} else {
			end = r.End
			col, hasCol = r.Column()
		}

	case LeftWord:
		if !r.IsCaret() && !modify {
			end = r.Min()
		} else {
			end = v.buf.PrevWordOffset(r.End)
		}
	case RightWord:
		if !r.IsCaret() && !modify {
			end = r.Max()
		} else {
			end = v.buf.NextWordOffset(r.End)
		}

	case LeftOfLine:
		end = coord.OffsetOfLine(v.buf, v.buf.LineOfOffset(r.End))
	case RightOfLine:
		line := v.buf.LineOfOffset(r.End)
		if line == coord.LastLine(v.buf) {
			end = v.buf.Len()
		} else if prev, ok := v.buf.PrevGraphemeOffset(coord.OffsetOfLine(v.buf, line+1)); ok {
			end = prev
		} else {
			end = v.buf.Len()
		}

	case StartOfParagraph:
		end, _ = v.buf.PrevLineBoundary(r.End)
	case EndOfParagraph:
		if next, ok := v.buf.NextLineBoundary(r.End); !ok {
			end = v.buf.Len()
		} else if prev, ok := v.buf.PrevGraphemeOffset(next); ok {
			end = prev
		} else {
			end = r.End
		}
	case EndOfParagraphKill:
		next, ok := v.buf.NextLineBoundary(r.End)
		if !ok {
			end = r.End
			break
		}
		end = next
		if eol, ok := v.buf.PrevGraphemeOffset(next); ok && eol != r.End {
			end = eol
		}

	default:
		panic("view: unhandled movement " + m.String())
	}

	start := end
	if modify {
		start = r.Start
	}
	out := selection.New(start, end)
	if hasCol {
		out = out.WithColumn(col)
	}
	return out
}

// selectionPosition returns the column and line of the region's active
// point. Without modify, moving up starts from the region's lower end and
// moving down from its upper end.
func (v *View) selectionPosition(r Selection, moveUp, modify bool) (Column, int) {
	active := r.Max()
	switch {
	case modify:
		active = r.End
	case moveUp:
		active = r.Min()
	}

	line, derived := coord.OffsetToLineCol(v.buf, active)
	if col, ok := r.Column(); ok {
		return col, line
	}
	return derived, line
}

// verticalMotion moves the region by lineDelta lines (negative is up),
// keeping the remembered column. Moving above the first line lands on the
// start of the buffer; moving below the last line lands on its end.
func (v *View) verticalMotion(r Selection, lineDelta int, modify bool) (ByteOffset, Column) {
	col, line := v.selectionPosition(r, lineDelta < 0, modify)
	lastLine := coord.LastLine(v.buf)

	if lineDelta < 0 && -lineDelta > line {
		return 0, col
	}
	target := line + lineDelta
	if lineDelta > 0 && target < line {
		target = lastLine + 1
	}
	if target > lastLine {
		return v.buf.Len(), col
	}
	return coord.LineColToOffset(v.buf, target, col), col
}

// verticalMotionExactPos moves one line up or down, skipping lines too
// short to hold the column. If no such line exists before the document
// boundary the region stays on its current line.
func (v *View) verticalMotionExactPos(r Selection, moveUp, modify bool) (ByteOffset, Column) {
	col, initLine := v.selectionPosition(r, moveUp, modify)
	lastLine := coord.LastLine(v.buf)

	if moveUp && initLine == 0 {
		return coord.LineColToOffset(v.buf, initLine, col), col
	}

	// A column past the current line's end is pulled back to it.
	if length := Column(v.lineLen(initLine)); length < col {
		col = max(length-1, 0)
	}

	line := initLine + 1
	if moveUp {
		line = initLine - 1
	}
	for {
		// The length includes the line break, hence > rather than >=.
		if Column(v.lineLen(line)) > col {
			break
		}
		if line >= lastLine || (line == 0 && moveUp) {
			line = initLine
			break
		}
		if moveUp {
			line--
		} else {
			line++
		}
	}

	return coord.LineColToOffset(v.buf, line, col), col
}
