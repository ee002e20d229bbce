package view

import (
	"fmt"
	"strings"
)

// Movement is a cursor movement command.
type Movement uint8

const (
	// Left moves one grapheme cluster back.
	Left Movement = iota
	// Right moves one grapheme cluster forward.
	Right
	// LeftWord moves to the start of the previous word.
	LeftWord
	// RightWord moves to the end of the next word.
	RightWord
	// LeftOfLine moves to the start of the line.
	LeftOfLine
	// RightOfLine moves to the end of the line.
	RightOfLine
	// Up moves one line up.
	Up
	// Down moves one line down.
	Down
	// UpPage moves one viewport height up.
	UpPage
	// DownPage moves one viewport height down.
	DownPage
	// UpExactPosition moves up to the nearest line long enough to keep the column.
	UpExactPosition
	// DownExactPosition moves down to the nearest line long enough to keep the column.
	DownExactPosition
	// StartOfParagraph moves to the start of the hard line.
	StartOfParagraph
	// EndOfParagraph moves to the end of the hard line.
	EndOfParagraph
	// EndOfParagraphKill moves to the end of the hard line, or past its break
	// when already there.
	EndOfParagraphKill
	// StartOfDocument moves to the start of the buffer.
	StartOfDocument
	// EndOfDocument moves to the end of the buffer.
	EndOfDocument
)

var movementNames = [...]string{
	Left:               "Left",
	Right:              "Right",
	LeftWord:           "LeftWord",
	RightWord:          "RightWord",
	LeftOfLine:         "LeftOfLine",
	RightOfLine:        "RightOfLine",
	Up:                 "Up",
	Down:               "Down",
	UpPage:             "UpPage",
	DownPage:           "DownPage",
	UpExactPosition:    "UpExactPosition",
	DownExactPosition:  "DownExactPosition",
	StartOfParagraph:   "StartOfParagraph",
	EndOfParagraph:     "EndOfParagraph",
	EndOfParagraphKill: "EndOfParagraphKill",
	StartOfDocument:    "StartOfDocument",
	EndOfDocument:      "EndOfDocument",
}

// Movements returns every movement in declaration order.
func Movements() []Movement {
	out := make([]Movement, len(movementNames))
	for i := range movementNames {
		out[i] = Movement(i)
	}
	return out
}

// String returns the movement's name.
func (m Movement) String() string {
	if int(m) < len(movementNames) {
		return movementNames[m]
	}
	return fmt.Sprintf("Movement(%d)", m)
}

// IsVertical returns true for movements that keep a remembered column.
func (m Movement) IsVertical() bool {
	switch m {
	case Up, Down, UpPage, DownPage, UpExactPosition, DownExactPosition:
		return true
	}
	return false
}

// ParseMovement looks up a movement by name. Matching ignores case and the
// separators '_' and '-', so "EndOfDocument", "end_of_document" and
// "end-of-document" are all accepted.
func ParseMovement(name string) (Movement, error) {
	key := normalizeName(name)
	for _, m := range Movements() {
		if strings.ToLower(m.String()) == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMovement, name)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
}
