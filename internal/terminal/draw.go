package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/caret/internal/engine"
)

// draw renders the visible lines and the status line.
func (u *UI) draw() {
	e := u.session.Engine()
	width, height := u.screen.Size()
	rows := max(height-1, 0)

	u.screen.Clear()

	regions := e.SelRegions()
	var primary engine.Selection
	if len(regions) > 0 {
		primary = regions[len(regions)-1]
	}

	cursorX, cursorY := -1, -1
	first, lines := e.FirstLine(), e.LineCount()
	for row := 0; row < rows; row++ {
		line := first + row
		if line >= lines {
			u.screen.SetContent(0, row, '~', nil, u.styles.Filler)
			continue
		}
		x := u.drawLine(row, line, width, regions, primary)
		if x >= 0 {
			cursorX, cursorY = x, row
		}
	}

	u.drawStatus(width, height-1, primary)

	if cursorY >= 0 && cursorX < width {
		u.screen.ShowCursor(cursorX, cursorY)
	} else {
		u.screen.HideCursor()
	}
	u.screen.Show()
}

// drawLine draws one document line on row and returns the column of the
// primary caret, or -1 if it is not on this line.
func (u *UI) drawLine(row, line, width int, regions []engine.Selection, primary engine.Selection) int {
	e := u.session.Engine()
	tab := e.TabWidth()
	start := e.PointToOffset(engine.Point{Line: line})
	text := e.LineText(line)
	spans := e.ColorSpans(start, start+engine.ByteOffset(len(text)))

	cursor := -1
	x := 0
	offset := start
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		style := u.styleAt(offset, start, spans, regions, primary)
		if offset == primary.End {
			cursor = x
		}

		if cluster == "\t" {
			w := tab - x%tab
			for i := 0; i < w && x+i < width; i++ {
				u.screen.SetContent(x+i, row, ' ', nil, style)
			}
			x += w
		} else {
			runes := g.Runes()
			if x < width {
				u.screen.SetContent(x, row, runes[0], runes[1:], style)
			}
			x += max(runewidth.StringWidth(cluster), 1)
		}
		offset += engine.ByteOffset(len(cluster))
	}

	// Carets past the last character sit on the line break.
	for _, r := range regions {
		if r.IsCaret() && r.End == offset && r != primary && x < width {
			u.screen.SetContent(x, row, ' ', nil, u.styles.Caret)
		}
	}
	if offset == primary.End {
		cursor = x
	}
	return cursor
}

// styleAt picks the style for the character at offset: its syntax color,
// then selection or secondary caret highlighting.
func (u *UI) styleAt(offset, lineStart engine.ByteOffset, spans []engine.ColorSpan, regions []engine.Selection, primary engine.Selection) tcell.Style {
	style := u.styles.Text
	rel := offset - lineStart
	for _, sp := range spans {
		if sp.Start <= rel && rel < sp.End {
			style = style.Foreground(Color(sp.Value))
			break
		}
	}

	for _, r := range regions {
		switch {
		case r.IsCaret():
			if r.End == offset && r != primary {
				return style.Reverse(true)
			}
		case r.Min() <= offset && offset < r.Max():
			_, bg, _ := u.styles.Selection.Decompose()
			return style.Background(bg)
		}
	}
	return style
}

// drawStatus draws the status line on row y.
func (u *UI) drawStatus(width, y int, primary engine.Selection) {
	if y < 0 {
		return
	}
	doc := u.session.Document()
	e := u.session.Engine()

	name := doc.Name()
	if doc.IsModified() {
		name += " [+]"
	}
	if e.IsReadOnly() {
		name += " [ro]"
	}
	p := e.OffsetToPoint(primary.End)
	unit := "cur"
	if e.HasSelection() {
		unit = "sel"
	}
	left := fmt.Sprintf(" %s  %d:%d  %d %s", name, p.Line+1, p.Column+1, len(e.SelRegions()), unit)
	if u.status != "" {
		left += "  " + u.status
	}
	left = runewidth.Truncate(left, width, "…")
	left = runewidth.FillRight(left, width)

	x := 0
	for _, r := range left {
		u.screen.SetContent(x, y, r, nil, u.styles.Status)
		x += max(runewidth.RuneWidth(r), 1)
	}
}
