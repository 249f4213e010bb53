package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/zealdoc"
	"github.com/fwojciec/zealdoc/registry"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   zealdoc.ConfigStore
	Loader   zealdoc.DocsetLoader
	Titles   zealdoc.TitleReader
	Registry *registry.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	List    ListCmd    `cmd:"" help:"List docsets in the docsets directory"`
	Enable  EnableCmd  `cmd:"" help:"Enable docsets for searching"`
	Disable DisableCmd `cmd:"" help:"Disable docsets"`
	Path    PathCmd    `cmd:"" help:"Show or set the docsets directory"`
	Info    InfoCmd    `cmd:"" help:"Show docset metadata and symbol counts"`
	Search  SearchCmd  `cmd:"" help:"Search enabled docsets"`
	Symbols SymbolsCmd `cmd:"" help:"Browse the symbols of an enabled docset"`
	Doc     DocCmd     `cmd:"" help:"Find the documentation page of a token"`
	Related RelatedCmd `cmd:"" help:"List symbols documented on the same page"`
	Watch   WatchCmd   `cmd:"" help:"Reload docsets when the docsets directory changes"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// EnableCmd is the "enable" subcommand.
type EnableCmd struct {
	Names []string `arg:"" help:"Docset titles or names"`
}

// DisableCmd is the "disable" subcommand.
type DisableCmd struct {
	Names []string `arg:"" help:"Docset titles or names"`
}

// PathCmd is the "path" subcommand.
type PathCmd struct {
	Dir string `arg:"" optional:"" help:"New docsets directory"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Name string `arg:"" help:"Docset title or name"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Docset string `short:"d" help:"Only search this docset"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of results (0 for all)"`
}

// SymbolsCmd is the "symbols" subcommand.
type SymbolsCmd struct {
	Docset   string `arg:"" help:"Docset title or name"`
	Category string `arg:"" optional:"" help:"Symbol category, e.g. Class or Function"`
}

// DocCmd is the "doc" subcommand.
type DocCmd struct {
	Token string `arg:"" help:"Qualified symbol name"`
	Lang  string `short:"l" help:"Declaration language, e.g. QML/JS"`
}

// RelatedCmd is the "related" subcommand.
type RelatedCmd struct {
	URL string `arg:"" help:"Page URL or file path inside a docset"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Debounce time.Duration `default:"500ms" help:"Quiet period before reloading"`
}
