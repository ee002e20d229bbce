// Package view couples a buffer with a multi-region selection and computes
// how movement commands and edits change that selection.
//
// A View owns its selection group; the buffer is shared and may be viewed
// by other views. View is not safe for concurrent use.
package view

import (
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/coord"
	"github.com/dshills/caret/internal/engine/selection"
)

// Type aliases for convenience.
type (
	ByteOffset = buffer.ByteOffset
	Column     = buffer.Column
	Selection  = selection.Selection
	Group      = selection.Group
)

const (
	// DefaultHeight is the viewport height used when none is configured.
	DefaultHeight = 10

	// ScrollOverlap is the number of lines kept visible across a page move.
	ScrollOverlap = 2
)

// Observer is notified when a view's selection or content changes, so a
// renderer can invalidate the affected lines.
type Observer interface {
	// SelectionChanged reports the line range [firstLine, lastLine) whose
	// selection drawing is stale.
	SelectionChanged(firstLine, lastLine int)

	// ContentChanged reports a change applied to the buffer.
	ContentChanged(change Change)
}

// View is an editing session over a buffer.
type View struct {
	buf       *buffer.Buffer
	firstLine int
	height    int
	selection *Group

	scrollTo    ByteOffset
	hasScrollTo bool

	observers []Observer
}

// Option configures a View.
type Option func(*View)

// WithHeight sets the viewport height in lines.
func WithHeight(lines int) Option {
	return func(v *View) {
		if lines > 0 {
			v.height = lines
		}
	}
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(v *View) {
		v.observers = append(v.observers, o)
	}
}

// New creates a view over buf with a caret at the start of the buffer.
// It panics if buf is nil.
func New(buf *buffer.Buffer, opts ...Option) *View {
	if buf == nil {
		panic("view: nil buffer")
	}
	v := &View{
		buf:       buf,
		height:    DefaultHeight,
		selection: selection.NewCaretGroup(0),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Buffer returns the viewed buffer.
func (v *View) Buffer() *buffer.Buffer {
	return v.buf
}

// FirstLine returns the first visible line.
func (v *View) FirstLine() int {
	return v.firstLine
}

// Height returns the viewport height in lines.
func (v *View) Height() int {
	return v.height
}

// SetHeight changes the viewport height. Non-positive values are ignored.
func (v *View) SetHeight(lines int) {
	if lines > 0 {
		v.height = lines
	}
}

// ScrollTo returns the offset most recently scrolled into view.
func (v *View) ScrollTo() (ByteOffset, bool) {
	return v.scrollTo, v.hasScrollTo
}

// AddObserver registers an observer.
func (v *View) AddObserver(o Observer) {
	v.observers = append(v.observers, o)
}

// PageScrollHeight is the number of lines moved by a page movement: the
// viewport height less a small overlap, and at least one.
func (v *View) PageScrollHeight() int {
	return max(v.height-ScrollOverlap, 1)
}

// SelRegions returns the current selection regions in order.
func (v *View) SelRegions() []Selection {
	return v.selection.Regions()
}

// Selection returns a copy of the current selection group.
func (v *View) Selection() *Group {
	return v.selection.Clone()
}

// SetSelection replaces the selection and scrolls its last region into
// view. Observers are notified only if the regions changed.
func (v *View) SetSelection(g *Group) {
	before := v.selection
	v.selection = g.Clone()
	if !before.Equal(v.selection) {
		v.invalidateSelection(before)
		v.invalidateSelection(v.selection)
	}
	v.scrollToCursor()
}

// HasSelection returns true if any region covers text.
func (v *View) HasSelection() bool {
	return !v.selection.Carets()
}

// SetCursor removes every region and places a single caret at offset.
func (v *View) SetCursor(offset ByteOffset) {
	v.SetSelection(selection.NewCaretGroup(v.clamp(offset)))
}

// AddCursor adds a caret at offset, keeping existing regions.
func (v *View) AddCursor(offset ByteOffset) {
	g := v.selection.Clone()
	g.AddRegion(selection.NewCaret(v.clamp(offset)))
	v.SetSelection(g)
}

// SelectRange replaces the selection with a single region from start to
// end.
func (v *View) SelectRange(start, end ByteOffset) {
	v.SetSelection(selection.NewGroup(selection.New(v.clamp(start), v.clamp(end))))
}

// SelectAll selects the whole buffer.
func (v *View) SelectAll() {
	v.SelectRange(0, v.buf.Len())
}

// scrollToCursor keeps the end of the last region visible.
func (v *View) scrollToCursor() {
	last, ok := v.selection.Last()
	if !ok {
		return
	}
	line := v.buf.LineOfOffset(last.End)
	if line < v.firstLine {
		v.firstLine = line
	} else if v.firstLine+v.height <= line {
		v.firstLine = line - (v.height - 1)
	}
	v.scrollTo = last.End
	v.hasScrollTo = true
}

// invalidateSelection tells observers which lines g covers.
func (v *View) invalidateSelection(g *Group) {
	if len(v.observers) == 0 {
		return
	}
	first, ok := g.First()
	if !ok {
		return
	}
	last, _ := g.Last()
	firstLine := v.buf.LineOfOffset(first.Min())
	lastLine := v.buf.LineOfOffset(last.Max()) + 1
	for _, o := range v.observers {
		o.SelectionChanged(firstLine, lastLine)
	}
}

func (v *View) notifyContent(c Change) {
	for _, o := range v.observers {
		o.ContentChanged(c)
	}
}

func (v *View) clamp(offset ByteOffset) ByteOffset {
	return min(max(offset, 0), v.buf.Len())
}

// lineLen is the byte length of line including its break.
func (v *View) lineLen(line int) ByteOffset {
	return coord.LineLen(v.buf, line)
}
