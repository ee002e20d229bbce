package rope

import (
	"strings"
	"unicode/utf8"
)

// Tree shape constants.
const (
	// MinChunkSize is the smallest leaf that counts as well-filled.
	MinChunkSize = 128

	// MaxChunkSize is the largest leaf text before it is split.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred leaf size when building from a string.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2

	// MinChildren is the smallest child count that counts as well-filled.
	MinChildren = 4

	// MaxChildren is the largest child count of an internal node.
	MaxChildren = 8
)

// ByteOffset is an absolute byte position in the rope.
type ByteOffset = int64

// TextSummary holds the aggregated metrics of a span of text.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// Lines is the number of '\n' characters.
	Lines int
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Lines: s.Lines + other.Lines,
	}
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	return TextSummary{
		Bytes: ByteOffset(len(s)),
		Lines: strings.Count(s, "\n"),
	}
}

// splitIntoChunks splits s into leaf-sized pieces, cutting only at UTF-8
// boundaries and preferring to cut after a newline.
func splitIntoChunks(s string) []string {
	if len(s) == 0 {
		return nil
	}
	var chunks []string
	for len(s) > MaxChunkSize {
		at := chunkBoundary(s, TargetChunkSize)
		chunks = append(chunks, s[:at])
		s = s[at:]
	}
	return append(chunks, s)
}

// chunkBoundary finds a cut point near target.
func chunkBoundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}

	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))
	if i := strings.IndexByte(s[target:hi], '\n'); i >= 0 {
		return target + i + 1
	}
	if i := strings.LastIndexByte(s[lo:target], '\n'); i >= 0 {
		return lo + i + 1
	}

	at := target
	for at > 0 && !utf8.RuneStart(s[at]) {
		at--
	}
	if at == 0 {
		at = target
		for at < len(s) && !utf8.RuneStart(s[at]) {
			at++
		}
		if at == len(s) {
			at = target
		}
	}
	return at
}
