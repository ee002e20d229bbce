// Package highlight colors a buffer by lexing its text with chroma and
// attaching each token's style color as a color span.
package highlight

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caret/internal/engine/buffer"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

var (
	// ErrUnknownLanguage indicates no lexer is registered under a name.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrUnknownTheme indicates no style is registered under a name.
	ErrUnknownTheme = errors.New("unknown theme")
)

// Highlighter pairs a lexer with a style.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// New returns a highlighter for a chroma language name (such as "go") and
// theme. An empty theme selects DefaultTheme.
func New(language, theme string) (*Highlighter, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	style, err := lookupStyle(theme)
	if err != nil {
		return nil, err
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer), style: style}, nil
}

// ForFile returns a highlighter choosing the lexer from filename, falling
// back to plain text when nothing matches.
func ForFile(filename, theme string) (*Highlighter, error) {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style, err := lookupStyle(theme)
	if err != nil {
		return nil, err
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer), style: style}, nil
}

func lookupStyle(theme string) (*chroma.Style, error) {
	if theme == "" {
		theme = DefaultTheme
	}
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return style, nil
}

// TextColors are a theme's default text colors.
type TextColors struct {
	Foreground    colorful.Color
	Background    colorful.Color
	HasForeground bool
	HasBackground bool
}

// ThemeText returns the default text colors of theme.
func ThemeText(theme string) (TextColors, error) {
	style, err := lookupStyle(theme)
	if err != nil {
		return TextColors{}, err
	}
	entry := style.Get(chroma.Background)
	var tc TextColors
	tc.Foreground, tc.HasForeground = ToColorful(entry.Colour)
	tc.Background, tc.HasBackground = ToColorful(entry.Background)
	return tc, nil
}

// Language returns the lexer's name.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Apply replaces the buffer's colors with the colors of its tokens. Tokens
// whose style sets no foreground color are left uncolored.
func (h *Highlighter) Apply(b *buffer.Buffer) error {
	it, err := h.lexer.Tokenise(nil, b.Text())
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", h.Language(), err)
	}

	b.ClearColors()
	var offset buffer.ByteOffset
	for _, tok := range it.Tokens() {
		end := offset + buffer.ByteOffset(len(tok.Value))
		if c, ok := ToColorful(h.style.Get(tok.Type).Colour); ok {
			b.SetColor(buffer.NewRange(offset, end), c)
		}
		offset = end
	}
	return nil
}

// ToColorful converts a chroma color. It reports false for an unset color.
func ToColorful(c chroma.Colour) (colorful.Color, bool) {
	if !c.IsSet() {
		return colorful.Color{}, false
	}
	return colorful.Color{
		R: float64(c.Red()) / 255,
		G: float64(c.Green()) / 255,
		B: float64(c.Blue()) / 255,
	}, true
}
