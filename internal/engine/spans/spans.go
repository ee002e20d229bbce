// Package spans stores values attached to byte ranges of a text, kept in
// step with edits to that text.
//
// A Spans set is sorted by start offset and never holds overlapping spans.
// Setting a value over a range replaces whatever was there. Edits shift,
// trim or drop spans so they keep covering the same characters.
package spans

import "fmt"

// ByteOffset is a byte position in the tracked text.
type ByteOffset = int64

// Span is a value attached to the byte range [Start, End).
type Span[T any] struct {
	Start ByteOffset // Inclusive start
	End   ByteOffset // Exclusive end
	Value T
}

// Len returns the length of the span in bytes.
func (s Span[T]) Len() ByteOffset {
	return s.End - s.Start
}

// Contains returns true if the given offset is within the span.
func (s Span[T]) Contains(offset ByteOffset) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps returns true if the span intersects [start, end).
func (s Span[T]) Overlaps(start, end ByteOffset) bool {
	return s.Start < end && start < s.End
}

// String returns a human-readable representation of the span.
func (s Span[T]) String() string {
	return fmt.Sprintf("[%d:%d)=%v", s.Start, s.End, s.Value)
}

// Spans is an ordered set of non-overlapping spans.
// The zero value is an empty set ready to use. Not safe for concurrent use.
type Spans[T any] struct {
	items []Span[T]
}

// Len returns the number of spans.
func (s *Spans[T]) Len() int {
	return len(s.items)
}

// All returns a copy of every span in order.
func (s *Spans[T]) All() []Span[T] {
	out := make([]Span[T], len(s.items))
	copy(out, s.items)
	return out
}

// Clear removes all spans.
func (s *Spans[T]) Clear() {
	s.items = nil
}

// At returns the span covering offset.
func (s *Spans[T]) At(offset ByteOffset) (Span[T], bool) {
	i := s.search(offset)
	if i < len(s.items) && s.items[i].Contains(offset) {
		return s.items[i], true
	}
	return Span[T]{}, false
}

// Set attaches value to [start, end), replacing any overlapping parts of
// existing spans. Empty ranges are ignored.
func (s *Spans[T]) Set(start, end ByteOffset, value T) {
	if start < 0 {
		start = 0
	}
	if start >= end {
		return
	}

	i := s.search(start)
	out := make([]Span[T], 0, len(s.items)+2)
	out = append(out, s.items[:i]...)

	var tail []Span[T]
	j := i
	for ; j < len(s.items) && s.items[j].Start < end; j++ {
		old := s.items[j]
		if old.Start < start {
			out = append(out, Span[T]{Start: old.Start, End: start, Value: old.Value})
		}
		if old.End > end {
			tail = append(tail, Span[T]{Start: end, End: old.End, Value: old.Value})
		}
	}

	out = append(out, Span[T]{Start: start, End: end, Value: value})
	out = append(out, tail...)
	out = append(out, s.items[j:]...)
	s.items = out
}

// Edit updates spans for the replacement of [start, end) by newLen bytes.
// Spans after the edit shift, spans inside it are dropped, and a span that
// strictly contains the edit stretches over the new text.
func (s *Spans[T]) Edit(start, end, newLen ByteOffset) {
	if start > end {
		start, end = end, start
	}
	delta := newLen - (end - start)

	out := s.items[:0]
	for _, sp := range s.items {
		switch {
		case sp.End <= start:
			// unchanged
		case sp.Start >= end:
			sp.Start += delta
			sp.End += delta
		case sp.Start < start && sp.End > end:
			sp.End += delta
		case sp.Start < start:
			sp.End = start
		case sp.End > end:
			sp.Start = start + newLen
			sp.End += delta
		default:
			continue
		}
		out = append(out, sp)
	}
	s.items = out
}

// Subseq returns the spans intersecting [start, end), clipped to the range
// and rebased so that start becomes offset 0.
func (s *Spans[T]) Subseq(start, end ByteOffset) []Span[T] {
	var out []Span[T]
	for _, sp := range s.items[s.search(start):] {
		if !sp.Overlaps(start, end) {
			break
		}
		sp.Start = max(sp.Start, start) - start
		sp.End = min(sp.End, end) - start
		out = append(out, sp)
	}
	return out
}

// search returns the index of the first span ending after offset.
func (s *Spans[T]) search(offset ByteOffset) int {
	lo, hi := 0, len(s.items)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s.items[mid].End <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
