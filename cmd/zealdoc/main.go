package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/zealdoc/etree"
	"github.com/fwojciec/zealdoc/goquery"
	"github.com/fwojciec/zealdoc/registry"
	zslog "github.com/fwojciec/zealdoc/slog"
	"github.com/fwojciec/zealdoc/sqlite"
	"github.com/fwojciec/zealdoc/toml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration directory. Set before calling Run().
	ConfigDir string

	// Docsets directory used when the configuration names none.
	DocsetsPath string

	Config   *toml.ConfigStore
	Registry *registry.Registry
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigDir:   os.Getenv("ZEALDOC_CONFIG"),
		DocsetsPath: os.Getenv("ZEALDOC_DOCSETS"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Registry != nil {
		return m.Registry.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("zealdoc"),
		kong.Description("Search Dash/Zeal docsets from the command line."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'zealdoc --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelError
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.Config, err = toml.NewConfigStore(m.ConfigDir)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set ZEALDOC_CONFIG to use a different configuration directory\n")
		return fmt.Errorf("failed to open configuration: %w", err)
	}
	m.Config.DefaultDocsetsPath = m.DocsetsPath

	loader := sqlite.NewLoader(etree.NewPlistReader())
	loader.Logger = deps.Logger

	deps.Config = m.Config
	deps.Loader = zslog.NewLoggingLoader(loader, deps.Logger)
	deps.Titles = goquery.NewTitleReader()

	m.Registry = registry.New(deps.Loader, deps.Config)
	m.Registry.Titles = deps.Titles
	m.Registry.Logger = deps.Logger
	deps.Registry = m.Registry
	defer m.Close()

	return kongCtx.Run(deps)
}
