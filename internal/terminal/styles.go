package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caret/internal/engine/highlight"
)

// Styles are the faces used when drawing.
type Styles struct {
	Text      tcell.Style
	Selection tcell.Style
	Caret     tcell.Style
	Filler    tcell.Style
	Status    tcell.Style
}

// DefaultStyles returns styles that work on dark terminals.
func DefaultStyles() Styles {
	return Styles{
		Text:      tcell.StyleDefault,
		Selection: tcell.StyleDefault.Background(tcell.NewHexColor(0x44475a)),
		Caret:     tcell.StyleDefault.Reverse(true),
		Filler:    tcell.StyleDefault.Foreground(tcell.ColorGray),
		Status:    tcell.StyleDefault.Reverse(true),
	}
}

// ThemeStyles returns DefaultStyles with the text and filler colored like
// the highlight theme's background.
func ThemeStyles(theme string) (Styles, error) {
	tc, err := highlight.ThemeText(theme)
	if err != nil {
		return Styles{}, err
	}
	st := DefaultStyles()
	if tc.HasForeground {
		st.Text = st.Text.Foreground(Color(tc.Foreground))
	}
	if tc.HasBackground {
		st.Text = st.Text.Background(Color(tc.Background))
		st.Filler = st.Filler.Background(Color(tc.Background))
	}
	return st, nil
}

// Color converts a span color to a terminal color.
func Color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
