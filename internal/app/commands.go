package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/caret/internal/engine/view"
)

// CommandKind groups commands for metrics.
type CommandKind uint8

const (
	KindMove CommandKind = iota
	KindEdit
	KindFile
	KindSession
)

// Op names a command.
type Op string

// Commands understood by Session.Execute. Key bindings and scripts refer
// to them by these names.
const (
	OpMove      Op = "move"       // move <Movement>
	OpSelect    Op = "select"     // select <Movement>: extend regions
	OpDelete    Op = "delete"     // delete <Movement>
	OpWrite     Op = "write"      // write <text>
	OpNewline   Op = "newline"    // newline
	OpCursor    Op = "cursor"     // cursor <offset>
	OpAddCursor Op = "add_cursor" // add_cursor <offset>
	OpSelectAll Op = "select_all" // select_all
	OpCollapse  Op = "collapse"   // collapse: regions become carets
	OpSave      Op = "save"       // save
	OpReload    Op = "reload"     // reload: discards unsaved changes
	OpQuit      Op = "quit"       // quit
)

// Command is a parsed command line.
type Command struct {
	Op       Op
	Movement view.Movement
	Text     string
	Offset   int64
}

// Kind returns the metrics group of the command.
func (c Command) Kind() CommandKind {
	switch c.Op {
	case OpMove, OpSelect, OpCursor, OpAddCursor, OpSelectAll, OpCollapse:
		return KindMove
	case OpDelete, OpWrite, OpNewline:
		return KindEdit
	case OpSave, OpReload:
		return KindFile
	default:
		return KindSession
	}
}

func (c Command) String() string {
	switch c.Op {
	case OpMove, OpSelect, OpDelete:
		return fmt.Sprintf("%s %s", c.Op, c.Movement)
	case OpWrite:
		return fmt.Sprintf("%s %q", c.Op, c.Text)
	case OpCursor, OpAddCursor:
		return fmt.Sprintf("%s %d", c.Op, c.Offset)
	default:
		return string(c.Op)
	}
}

// ParseCommand parses "op [argument]". The argument of write is taken
// verbatim; a quoted argument is unquoted first, so "write \"\\t\"" writes
// a tab.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimLeft(line, " \t")
	name, arg, _ := strings.Cut(line, " ")
	cmd := Command{Op: Op(name)}

	switch cmd.Op {
	case OpMove, OpSelect, OpDelete:
		m, err := view.ParseMovement(strings.TrimSpace(arg))
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", name, err)
		}
		cmd.Movement = m

	case OpWrite:
		if arg == "" {
			return Command{}, fmt.Errorf("%s: missing text", name)
		}
		cmd.Text = arg
		if len(arg) >= 2 && arg[0] == '"' {
			text, err := strconv.Unquote(arg)
			if err != nil {
				return Command{}, fmt.Errorf("%s: %w", name, err)
			}
			cmd.Text = text
		}

	case OpCursor, OpAddCursor:
		n, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%s: bad offset: %w", name, err)
		}
		cmd.Offset = n

	case OpNewline, OpSelectAll, OpCollapse, OpSave, OpReload, OpQuit:
		if strings.TrimSpace(arg) != "" {
			return Command{}, fmt.Errorf("%s takes no argument", name)
		}

	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}
