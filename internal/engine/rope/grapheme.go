package rope

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Grapheme clusters never span a hard line break ("\r\n" is a single
// cluster that ends its line), so boundary queries only segment the line
// that contains the offset.

// lineSegment returns the bounds and text of the given line, including its
// line break.
func (r Rope) lineSegment(line int) (ByteOffset, ByteOffset, string) {
	start := r.OffsetOfLine(line)
	end := r.OffsetOfLine(line + 1)
	return start, end, r.Slice(start, end)
}

// NextGraphemeOffset returns the offset of the first grapheme boundary after
// offset. Returns false if offset is at or past the end of the rope.
func (r Rope) NextGraphemeOffset(offset ByteOffset) (ByteOffset, bool) {
	if offset < 0 {
		offset = 0
	}
	if offset >= r.Len() {
		return r.Len(), false
	}

	start, end, text := r.lineSegment(r.LineOfOffset(offset))
	rel := int(offset - start)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		_, to := g.Positions()
		if to > rel {
			return start + ByteOffset(to), true
		}
	}
	return end, true
}

// PrevGraphemeOffset returns the offset of the last grapheme boundary before
// offset. Returns false if offset is at or before the start of the rope.
func (r Rope) PrevGraphemeOffset(offset ByteOffset) (ByteOffset, bool) {
	if offset <= 0 {
		return 0, false
	}
	offset = r.clamp(offset)

	start, _, text := r.lineSegment(r.LineOfOffset(offset - 1))
	rel := int(offset - start)
	prev := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		if from >= rel {
			break
		}
		prev = from
	}
	return start + ByteOffset(prev), true
}

// NextLineBoundary returns the start of the line after the one containing
// offset. Returns false on the last line.
func (r Rope) NextLineBoundary(offset ByteOffset) (ByteOffset, bool) {
	line := r.LineOfOffset(offset)
	if line+1 >= r.LineCount() {
		return r.Len(), false
	}
	return r.OffsetOfLine(line + 1), true
}

// PrevLineBoundary returns the start of the nearest line beginning strictly
// before offset. Returns 0 and false when that is the start of the rope.
func (r Rope) PrevLineBoundary(offset ByteOffset) (ByteOffset, bool) {
	if offset <= 0 {
		return 0, false
	}
	start := r.OffsetOfLine(r.LineOfOffset(r.clamp(offset) - 1))
	return start, start > 0
}

// NextWordOffset skips whitespace and then a run of non-whitespace clusters
// after offset. A line break stops the scan; at the end of a line the offset
// moves past the break.
func (r Rope) NextWordOffset(offset ByteOffset) ByteOffset {
	offset = r.clamp(offset)
	line := r.LineOfOffset(offset)
	start := r.OffsetOfLine(line)
	clusters := clustersOf(r.LineText(line))

	i, pos := clusterIndex(clusters, int(offset-start))
	if i == len(clusters) {
		next, _ := r.NextGraphemeOffset(offset)
		return next
	}
	for i < len(clusters) && isSpace(clusters[i]) {
		pos += len(clusters[i])
		i++
	}
	for i < len(clusters) && !isSpace(clusters[i]) {
		pos += len(clusters[i])
		i++
	}
	return start + ByteOffset(pos)
}

// PrevWordOffset is the mirror of NextWordOffset. At the start of a line the
// offset moves before the previous line's break.
func (r Rope) PrevWordOffset(offset ByteOffset) ByteOffset {
	offset = r.clamp(offset)
	line := r.LineOfOffset(offset)
	start := r.OffsetOfLine(line)
	if offset == start {
		prev, _ := r.PrevGraphemeOffset(offset)
		return prev
	}
	clusters := clustersOf(r.LineText(line))

	i, pos := clusterIndex(clusters, int(offset-start))
	for i > 0 && isSpace(clusters[i-1]) {
		i--
		pos -= len(clusters[i])
	}
	for i > 0 && !isSpace(clusters[i-1]) {
		i--
		pos -= len(clusters[i])
	}
	return start + ByteOffset(pos)
}

func clustersOf(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// clusterIndex returns the index of the first cluster starting at or after
// rel, and that cluster's byte position.
func clusterIndex(clusters []string, rel int) (int, int) {
	pos := 0
	for i, c := range clusters {
		if pos >= rel {
			return i, pos
		}
		pos += len(c)
	}
	return len(clusters), pos
}

func isSpace(cluster string) bool {
	return strings.TrimFunc(cluster, unicode.IsSpace) == ""
}
