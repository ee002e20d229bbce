// Package input maps terminal key events to editing commands.
//
// Key specifications accept two notations:
//
//	"Ctrl+S", "Shift+Left", "Alt+Down", "Enter", "a"
//	"<C-s>", "<S-Left>", "<A-Down>", "<CR>"
//
// Modifier names are ctrl, alt, shift and meta (C, A, S, M in angle
// brackets). Matching ignores case for key names but not for characters.
package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Chord is one key press with its modifiers. Character keys use
// tcell.KeyRune and carry the character in Rune.
type Chord struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

var keyNames = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"cr":        tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace,
	"bs":        tcell.KeyBackspace,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"ins":       tcell.KeyInsert,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pageup":    tcell.KeyPgUp,
	"pgup":      tcell.KeyPgUp,
	"pagedown":  tcell.KeyPgDn,
	"pgdn":      tcell.KeyPgDn,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// displayNames gives the canonical spelling used by String.
var displayNames = map[tcell.Key]string{
	tcell.KeyEnter:     "Enter",
	tcell.KeyEscape:    "Esc",
	tcell.KeyTab:       "Tab",
	tcell.KeyBackspace: "Backspace",
	tcell.KeyDelete:    "Delete",
	tcell.KeyInsert:    "Insert",
	tcell.KeyHome:      "Home",
	tcell.KeyEnd:       "End",
	tcell.KeyPgUp:      "PageUp",
	tcell.KeyPgDn:      "PageDown",
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
}

// ParseChord parses a key specification.
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>' {
		parts := strings.Split(spec[1:len(spec)-1], "-")
		return parseParts(spec, parts, vimModifier)
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		parts := strings.Split(spec, "+")
		// "Ctrl++" binds the plus key.
		if strings.HasSuffix(spec, "++") {
			parts = append(parts[:len(parts)-2], "+")
		}
		return parseParts(spec, parts, namedModifier)
	}
	return parseKey(spec, spec, 0)
}

// MustParseChord is ParseChord for specifications known to be valid.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func namedModifier(name string) tcell.ModMask {
	switch strings.ToLower(name) {
	case "ctrl", "control":
		return tcell.ModCtrl
	case "alt", "opt", "option":
		return tcell.ModAlt
	case "shift":
		return tcell.ModShift
	case "meta", "cmd", "super":
		return tcell.ModMeta
	}
	return tcell.ModNone
}

func vimModifier(name string) tcell.ModMask {
	switch strings.ToLower(name) {
	case "c":
		return tcell.ModCtrl
	case "a":
		return tcell.ModAlt
	case "s":
		return tcell.ModShift
	case "m", "d":
		return tcell.ModMeta
	}
	return tcell.ModNone
}

func parseParts(spec string, parts []string, modifier func(string) tcell.ModMask) (Chord, error) {
	var mods tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		m := modifier(strings.TrimSpace(p))
		if m == tcell.ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods |= m
	}
	return parseKey(spec, strings.TrimSpace(parts[len(parts)-1]), mods)
}

func parseKey(spec, name string, mods tcell.ModMask) (Chord, error) {
	if name == "" {
		return Chord{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	lower := strings.ToLower(name)
	if k, ok := keyNames[lower]; ok {
		return Chord{Key: k, Mod: mods}, nil
	}
	if lower == "space" {
		return runeChord(' ', mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, spec)
	}
	return runeChord(runes[0], mods), nil
}

// runeChord normalizes a character chord. Shift is folded into the
// character, and Ctrl chords use the lower case letter, matching what
// terminals report.
func runeChord(r rune, mods tcell.ModMask) Chord {
	if mods&tcell.ModShift != 0 && mods&tcell.ModCtrl == 0 {
		r = unicode.ToUpper(r)
		mods &^= tcell.ModShift
	}
	if mods&tcell.ModCtrl != 0 {
		r = unicode.ToLower(r)
	}
	return Chord{Key: tcell.KeyRune, Rune: r, Mod: mods}
}

// FromEvent converts a tcell key event to a Chord.
//
// tcell reports Ctrl+letter as KeyCtrlA..KeyCtrlZ; those become character
// chords with ModCtrl. Ctrl+H, Ctrl+I and Ctrl+M share codes with
// Backspace, Tab and Enter and are reported as those keys.
func FromEvent(ev *tcell.EventKey) Chord {
	k, mods := ev.Key(), ev.Modifiers()

	switch {
	case k == tcell.KeyRune:
		return runeChord(ev.Rune(), mods)
	case k == tcell.KeyBackspace2:
		k = tcell.KeyBackspace
	case k == tcell.KeyBackspace || k == tcell.KeyTab || k == tcell.KeyEnter:
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return Chord{Key: tcell.KeyRune, Rune: 'a' + rune(k-tcell.KeyCtrlA), Mod: mods | tcell.ModCtrl}
	}
	return Chord{Key: k, Mod: mods}
}

// String returns the canonical "Ctrl+Alt+Shift+Key" form, which
// ParseChord accepts.
func (c Chord) String() string {
	var sb strings.Builder
	for _, m := range []struct {
		mask tcell.ModMask
		name string
	}{
		{tcell.ModCtrl, "Ctrl+"},
		{tcell.ModAlt, "Alt+"},
		{tcell.ModMeta, "Meta+"},
		{tcell.ModShift, "Shift+"},
	} {
		if c.Mod&m.mask != 0 {
			sb.WriteString(m.name)
		}
	}

	switch {
	case c.Key == tcell.KeyRune && c.Rune == ' ':
		sb.WriteString("Space")
	case c.Key == tcell.KeyRune:
		sb.WriteRune(c.Rune)
	case displayNames[c.Key] != "":
		sb.WriteString(displayNames[c.Key])
	default:
		sb.WriteString(tcell.KeyNames[c.Key])
	}
	return sb.String()
}
