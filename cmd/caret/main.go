// Package main is the entry point for the caret editor.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/caret/internal/app"
	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/input"
	"github.com/dshills/caret/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	readOnly   bool
	watch      bool
	batch      bool
	report     bool
	showKeys   bool
	eval       string
	path       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	keys := input.NewKeymap()
	if err := keys.Load(cfg.Keys); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.showKeys {
		fmt.Print(keys.Help())
		return 0
	}

	interactive := !opts.batch && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	log, closeLog, err := newLogger(cfg, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := app.NewSession(ctx, cfg, app.Options{
		Path:     opts.path,
		ReadOnly: opts.readOnly,
		Watch:    opts.watch,
		Logger:   log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer session.Close()

	if opts.eval != "" {
		if err := session.RunScript(ctx, opts.eval); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if interactive {
		var uiOpts []terminal.Option
		if cfg.Highlight.Enabled {
			if st, err := terminal.ThemeStyles(cfg.Highlight.Theme); err == nil {
				uiOpts = append(uiOpts, terminal.WithStyles(st))
			}
		}
		err = runTerminal(ctx, session, keys, log, uiOpts...)
	} else {
		err = runBatch(session, os.Stdin)
	}

	code := 0
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code = 1
	}

	if opts.report {
		out, err := session.Report()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(out)
	}
	return code
}

func runTerminal(ctx context.Context, s *app.Session, keys *input.Keymap, log *app.Logger, opts ...terminal.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	ui := terminal.New(screen, s, keys, append([]terminal.Option{terminal.WithLogger(log)}, opts...)...)
	if err := ui.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer ui.Close()
	return ui.Run(ctx)
}

// runBatch executes one command per input line until quit or end of input.
// Failing commands are reported and skipped; the last failure is returned.
func runBatch(s *app.Session, r io.Reader) error {
	var last error
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if text == "" || text[0] == '#' {
			continue
		}
		err := s.ExecuteLine(text)
		if errors.Is(err, app.ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
			last = err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return last
}

// newLogger builds the session logger. The interactive UI owns the
// terminal, so without a log file its logs are discarded.
func newLogger(cfg *config.Config, interactive bool) (*app.Logger, func(), error) {
	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.Log.Level)

	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		lc.Output = f
		return app.NewLogger(lc), func() { f.Close() }, nil
	case interactive:
		return app.NullLogger, func() {}, nil
	default:
		return app.NewLogger(lc), func() {}, nil
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Open the file read-only")
	flag.BoolVar(&opts.readOnly, "R", false, "Open the file read-only (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the file when it changes on disk")
	flag.BoolVar(&opts.batch, "batch", false, "Read commands from stdin instead of running the editor")
	flag.BoolVar(&opts.report, "report", false, "Print a JSON report of the session on exit")
	flag.BoolVar(&opts.showKeys, "keys", false, "List key bindings and exit")
	flag.StringVar(&opts.eval, "e", "", "Run a Lua snippet against the document before editing")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "caret - multi-cursor text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: caret [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  caret notes.txt                        Edit a file\n")
		fmt.Fprintf(os.Stderr, "  caret -R main.go                       View a file\n")
		fmt.Fprintf(os.Stderr, "  caret -batch -e 'caret.select_all()' a.txt   Script a file\n")
		fmt.Fprintf(os.Stderr, "  printf 'select_all\\nwrite x\\nsave\\n' | caret -batch -report out.txt\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("caret %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.path = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: caret edits one file at a time\n")
		os.Exit(1)
	}
	return opts
}
