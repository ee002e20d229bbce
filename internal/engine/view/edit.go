package view

import (
	"strings"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/selection"
)

// Change is a replacement of a byte range by new text.
type Change = buffer.Edit

// ChangeReplace creates a change replacing r with text.
func ChangeReplace(r buffer.Range, text string) Change {
	return buffer.NewEdit(r, text)
}

// locationChange tracks how far earlier changes in one batch have moved the
// text that follows them. Changes must be recorded in ascending order.
type locationChange struct {
	delta ByteOffset
}

func (l *locationChange) applyToRange(r buffer.Range) buffer.Range {
	return r.Shift(l.delta)
}

func (l *locationChange) applyToSelection(s Selection) Selection {
	return selection.New(s.Start+l.delta, s.End+l.delta)
}

func (l *locationChange) add(res buffer.EditResult) {
	l.delta += res.Delta
}

// ApplyChange applies c to the buffer without treating it as typing: regions
// are shifted to follow the text around them instead of being replaced.
func (v *View) ApplyChange(c Change) buffer.EditResult {
	res := v.buf.ApplyEdit(c)
	applied := buffer.NewEdit(res.OldRange, v.buf.TextRange(res.NewRange.Start, res.NewRange.End))
	v.notifyContent(applied)
	v.SetSelection(v.selection.Transform(applied))
	return res
}

// lineBreaks folds every break the buffer recognizes into '\n'.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ReplaceContent replaces the whole buffer, reports it as one change and
// leaves a caret at the start.
func (v *View) ReplaceContent(text string) {
	old := buffer.Range{End: v.buf.Len()}
	v.buf.SetText(text)
	v.notifyContent(buffer.NewEdit(old, v.buf.Text()))
	v.SetCursor(0)
}

// regionWrite is the text destined for one region. Regions with keep set
// are carried over unedited.
type regionWrite struct {
	region Selection
	text   string
	keep   bool
}

// Write replaces every region with text and leaves a caret after each
// insertion.
//
// When there is more than one region and text (ignoring trailing line
// breaks) spans several lines, the lines are handed out one per region in
// order. Regions left without a line are kept. "\r\n" and a lone "\r" count
// as line breaks.
func (v *View) Write(text string) {
	regions := v.selection.Regions()
	text = lineBreaks.Replace(text)
	trimmed := strings.TrimRight(text, "\n")
	perLine := len(regions) > 1 && strings.Contains(trimmed, "\n")

	var lines []string
	if perLine {
		lines = strings.Split(trimmed, "\n")
	}

	writes := make([]regionWrite, len(regions))
	for i, r := range regions {
		writes[i] = regionWrite{region: r, text: text}
		if perLine {
			if i < len(lines) {
				writes[i].text = lines[i]
			} else {
				writes[i].keep = true
			}
		}
	}
	v.writePerRegion(writes)
}

// writePerRegion applies writes in ascending order, shifting each region by
// the net length change of the edits before it.
func (v *View) writePerRegion(writes []regionWrite) {
	var shift locationChange
	out := selection.NewGroup()

	for _, w := range writes {
		if w.keep {
			out.AddRegion(shift.applyToSelection(w.region))
			continue
		}
		change := ChangeReplace(shift.applyToRange(w.region.Range()), w.text)
		res := v.buf.ApplyEdit(change)
		shift.add(res)
		if !change.IsNoOp() {
			v.notifyContent(buffer.NewEdit(res.OldRange, v.buf.TextRange(res.NewRange.Start, res.NewRange.End)))
		}
		out.AddRegion(selection.NewCaret(res.NewRange.End))
	}

	v.SetSelection(out)
}

// RemoveSelection deletes the text of every region.
func (v *View) RemoveSelection() {
	v.Write("")
}

// DoDeleteOperation deletes text by movement: regions with a selection
// lose it, carets first extend by m and then lose what they cover.
func (v *View) DoDeleteOperation(m Movement) {
	extended := selection.NewGroup()
	for _, r := range v.selection.Regions() {
		if r.IsCaret() {
			r = v.MovedSelectionRegion(m, r, true)
		}
		extended.AddRegion(r)
	}
	v.selection = extended
	v.RemoveSelection()
}

// CollapseSelection turns every region into a caret at its active point.
func (v *View) CollapseSelection() {
	out := selection.NewGroup()
	for _, r := range v.selection.Regions() {
		out.AddRegion(r.Collapse())
	}
	v.SetSelection(out)
}

// SelectedText returns the text of every region joined by line breaks.
func (v *View) SelectedText() string {
	regions := v.selection.Regions()
	parts := make([]string, len(regions))
	for i, r := range regions {
		parts[i] = v.buf.TextRange(r.Min(), r.Max())
	}
	return strings.Join(parts, "\n")
}
