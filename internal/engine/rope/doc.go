// Package rope provides an immutable rope for storing editable text.
//
// A rope is a balanced tree whose leaves hold bounded text chunks and whose
// internal nodes cache aggregated metrics (byte count and newline count).
// The metrics make line lookups logarithmic: finding the start offset of a
// line, or the line containing an offset, walks a single root-to-leaf path.
//
// Key features:
//   - O(log n) insertion, deletion and line/offset conversion
//   - Immutable operations return new ropes; originals are never modified
//   - Grapheme-cluster boundary queries (via github.com/rivo/uniseg)
//   - Hard line-break boundary queries for paragraph motion
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")           // "hello, world"
//	r = r.Delete(0, 7)             // "world"
//	next, _ := r.NextGraphemeOffset(0)
//
// Offsets are measured in UTF-8 bytes. Lines are 0-indexed and end after
// each '\n'; a rope with n newlines has n+1 lines.
package rope
