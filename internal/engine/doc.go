// Package engine is the entry point to caret's editing core.
//
// An Engine owns a buffer and a view over it, and serializes every call
// behind one mutex. The packages below it are deliberately unsynchronized:
//
//   - rope: immutable chunked B-tree holding the text
//   - spans: values (colors) attached to byte ranges, kept in step with edits
//   - buffer: versioned text plus color spans, with clamping edits
//   - coord: line/column to offset conversion
//   - selection: selection regions and the merged, ordered region group
//   - view: movement commands and edits applied to every region
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("ab\ncd\nef"))
//	e.SetCursor(1)
//	e.Move(view.Down, false) // caret at 4
//	e.Move(view.EndOfDocument, false)
//
// # Multiple Regions
//
// Text written with several regions goes into each of them. When it spans
// several lines and there is more than one region, each region receives
// one line:
//
//	e := engine.New(engine.WithContent("ab\ncd"))
//	e.SetCursor(0)
//	e.AddCursor(3)
//	e.Write("X\nY") // "Xab\nYcd"
//
// # Read-Only Mode
//
// A read-only engine still moves regions and accepts SetContent, but Write,
// Delete, RemoveSelection and ApplyChange return ErrReadOnly.
package engine
