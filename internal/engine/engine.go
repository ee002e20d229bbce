package engine

import (
	"sync"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/coord"
	"github.com/dshills/caret/internal/engine/selection"
	"github.com/dshills/caret/internal/engine/view"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Column is a byte distance from the start of a line.
	Column = buffer.Column

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Change is a replacement of a byte range by new text.
	Change = view.Change

	// EditResult contains information about a completed edit.
	EditResult = buffer.EditResult

	// Selection is one selection region.
	Selection = selection.Selection

	// Movement is a cursor movement command.
	Movement = view.Movement

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// ColorSpan is a color attached to a byte range.
	ColorSpan = buffer.ColorSpan
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
)

// Engine serializes access to a buffer and the view editing it.
//
// The buffer, selection and movement packages are not synchronized; every
// Engine method takes the engine lock, so an Engine may be shared between
// goroutines (the terminal loop, a file watcher, a script).
type Engine struct {
	mu sync.Mutex

	buf  *buffer.Buffer
	view *view.View
	log  Logger

	// Configuration
	tabWidth     int
	lineEnding   buffer.LineEnding
	detectEnding bool
	height       int
	readOnly     bool
	observers    []view.Observer

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := configure(opts)
	e.init(buffer.NewBufferFromString(e.initContent, e.bufferOptions(e.initContent)...))
	return e
}

func configure(opts []Option) *Engine {
	e := &Engine{
		tabWidth:   DefaultTabWidth,
		lineEnding: buffer.LineEndingLF,
		height:     DefaultHeight,
		log:        nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) bufferOptions(text string) []buffer.Option {
	opts := []buffer.Option{buffer.WithTabWidth(e.tabWidth)}
	if e.detectEnding {
		return append(opts, buffer.WithDetectedLineEnding(text))
	}
	return append(opts, buffer.WithLineEnding(e.lineEnding))
}

func (e *Engine) init(buf *buffer.Buffer) {
	e.buf = buf
	vopts := []view.Option{view.WithHeight(e.height)}
	for _, o := range e.observers {
		vopts = append(vopts, view.WithObserver(o))
	}
	e.view = view.New(buf, vopts...)
	e.initContent = ""
}

// ============================================================================
// Reads
// ============================================================================

// ID returns the buffer's unique identifier.
func (e *Engine) ID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.ID()
}

// Text returns the entire buffer content.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Text()
}

// TextRange returns the text in [start, end).
func (e *Engine) TextRange(start, end ByteOffset) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.TextRange(start, end)
}

// Len returns the buffer length in bytes.
func (e *Engine) Len() ByteOffset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.LineCount()
}

// LineText returns the text of a line without its line break.
func (e *Engine) LineText(line int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.LineText(line)
}

// OffsetToPoint converts a byte offset to a line/column point.
func (e *Engine) OffsetToPoint(offset ByteOffset) Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return coord.OffsetToPoint(e.buf, offset)
}

// PointToOffset converts a line/column point to a byte offset, clamping
// past-the-end columns and snapping to a grapheme boundary.
func (e *Engine) PointToOffset(p Point) ByteOffset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return coord.PointToOffset(e.buf, p)
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.RevisionID()
}

// Snapshot returns an immutable copy of the buffer state.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Snapshot()
}

// IsReadOnly reports whether edits are rejected.
func (e *Engine) IsReadOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readOnly
}

// ============================================================================
// Selection
// ============================================================================

// SelRegions returns the current selection regions in order.
func (e *Engine) SelRegions() []Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.SelRegions()
}

// SelectedText returns the selected text of every region joined by
// line breaks.
func (e *Engine) SelectedText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.SelectedText()
}

// SetCursor places a single caret at offset.
func (e *Engine) SetCursor(offset ByteOffset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.SetCursor(offset)
}

// AddCursor adds a caret at offset.
func (e *Engine) AddCursor(offset ByteOffset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.AddCursor(offset)
}

// SelectRange selects [start, end) as a single region.
func (e *Engine) SelectRange(start, end ByteOffset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.SelectRange(start, end)
}

// SelectAll selects the whole buffer.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.SelectAll()
}

// HasSelection returns true if any region covers text.
func (e *Engine) HasSelection() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.HasSelection()
}

// CollapseSelection turns every region into a caret at its active point.
func (e *Engine) CollapseSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.CollapseSelection()
}

// SetSelection replaces the selection with the given regions. Overlapping
// regions are merged.
func (e *Engine) SetSelection(regions ...Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clamped := make([]Selection, len(regions))
	for i, r := range regions {
		clamped[i] = r.Clamp(e.buf.Len())
	}
	e.view.SetSelection(selection.NewGroup(clamped...))
}

// Move applies a movement to every region. With modify the regions are
// extended instead of moved.
func (e *Engine) Move(m Movement, modify bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.MoveSelection(m, modify)
	e.log.Debug("move %s modify=%t regions=%d", m, modify, len(e.view.SelRegions()))
}

// ParseMovement looks up a movement by name, ignoring case and the
// separators '_' and '-'.
func ParseMovement(name string) (Movement, error) {
	return view.ParseMovement(name)
}

// MoveNamed is Move with the movement given by name, as read from key
// bindings or scripts.
func (e *Engine) MoveNamed(name string, modify bool) error {
	m, err := view.ParseMovement(name)
	if err != nil {
		return err
	}
	e.Move(m, modify)
	return nil
}

// ============================================================================
// Viewport
// ============================================================================

// FirstLine returns the first visible line.
func (e *Engine) FirstLine() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.FirstLine()
}

// Height returns the viewport height in lines.
func (e *Engine) Height() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.Height()
}

// SetHeight changes the viewport height.
func (e *Engine) SetHeight(lines int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.SetHeight(lines)
}

// ScrollTo returns the offset most recently scrolled into view.
func (e *Engine) ScrollTo() (ByteOffset, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.ScrollTo()
}

// AddObserver registers an observer. Observers are called with the engine
// lock held and must not call back into the engine.
func (e *Engine) AddObserver(o view.Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
	e.view.AddObserver(o)
}

// ============================================================================
// Edits
// ============================================================================

// Write replaces every region with text. See view.View.Write for how
// multi-line text is spread over several regions.
func (e *Engine) Write(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	e.view.Write(text)
	e.log.Debug("write %d bytes regions=%d", len(text), len(e.view.SelRegions()))
	return nil
}

// Delete removes text by movement: each caret is extended by m first,
// selections are deleted as they are.
func (e *Engine) Delete(m Movement) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	e.view.DoDeleteOperation(m)
	e.log.Debug("delete %s", m)
	return nil
}

// RemoveSelection deletes the text of every region.
func (e *Engine) RemoveSelection() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	e.view.RemoveSelection()
	return nil
}

// ApplyChange applies a change that did not come from typing, such as an
// external tool or a script. Regions follow the surrounding text.
func (e *Engine) ApplyChange(c Change) (EditResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return EditResult{}, ErrReadOnly
	}
	res := e.view.ApplyChange(c)
	e.log.Debug("apply change %s", c)
	return res, nil
}

// SetContent replaces the whole buffer, as when a file is loaded, and
// resets the selection to a caret at the start. It is allowed on a
// read-only engine.
func (e *Engine) SetContent(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.ReplaceContent(text)
	e.log.Debug("content replaced: %d bytes", e.buf.Len())
}

// ============================================================================
// Colors
// ============================================================================

// SetColor attaches c to [start, end). Colors follow later edits.
func (e *Engine) SetColor(start, end ByteOffset, c colorful.Color) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.SetColor(buffer.NewRange(start, end), c)
}

// ClearColors removes all colors.
func (e *Engine) ClearColors() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.ClearColors()
}

// ColorSpans returns the colors in [start, end), relative to start.
func (e *Engine) ColorSpans(start, end ByteOffset) []ColorSpan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.ColorSpans(buffer.NewRange(start, end))
}

// ColorAt returns the color covering offset, if any.
func (e *Engine) ColorAt(offset ByteOffset) (colorful.Color, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.ColorAt(offset)
}

// Colorize runs fn with exclusive access to the buffer, for colorizers
// that read the text and set colors in one step. fn must not edit the text.
func (e *Engine) Colorize(fn func(b *buffer.Buffer)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.buf)
}

// ============================================================================
// Configuration
// ============================================================================

// TabWidth returns the tab width.
func (e *Engine) TabWidth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.TabWidth()
}

// SetTabWidth sets the tab width.
func (e *Engine) SetTabWidth(width int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.SetTabWidth(width)
}

// LineEnding returns the line ending style.
func (e *Engine) LineEnding() LineEnding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.LineEnding()
}

// SetLineEnding sets the line ending style used for new text.
func (e *Engine) SetLineEnding(le LineEnding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.SetLineEnding(le)
}
