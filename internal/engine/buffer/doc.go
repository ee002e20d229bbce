// Package buffer provides the editable text content of a document: a rope
// plus revision tracking, line ending normalization and per-range color
// metadata.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Delete(0, 7)             // "Beautiful World!"
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Column: byte distance from the start of a line
//   - Point: line and column position (0-indexed)
//
// Out-of-range offsets are clamped, never rejected. Color spans set with
// SetColor are shifted, trimmed or dropped together with every edit, so
// highlighting never drifts from the text it describes.
//
// A Buffer is not synchronized. The engine package serializes access; use
// Snapshot to hand a consistent read-only view to another goroutine.
package buffer
