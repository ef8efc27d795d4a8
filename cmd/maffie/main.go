package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/alkime/maffie/internal/config"
	"github.com/alkime/maffie/internal/document"
	"github.com/alkime/maffie/internal/eventloop"
	"github.com/alkime/maffie/internal/logger"
	"github.com/alkime/maffie/internal/registry"
	"github.com/alkime/maffie/internal/server"
	"github.com/alkime/maffie/internal/tui"
	_ "github.com/alkime/maffie/internal/widgets/slider" // registers maffie-slider
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the maffie command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Host a layout in the terminal"`

	// Subcommands
	Serve  ServeCmd  `cmd:"" help:"Host a layout over HTTP"`
	Render RenderCmd `cmd:"" help:"Print the mounted layout as HTML"`
	Kinds  KindsCmd  `cmd:"" help:"List registered widget tags"`
}

// TUICmd is the default command that runs the TUI.
type TUICmd struct {
	Layout  string `arg:"" optional:"" help:"Layout file (default: MAFFIE_LAYOUT)"`
	LogFile string `flag:"" optional:"" help:"Write JSON logs to this file"`
}

// Run executes the TUI command.
func (c *TUICmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var out io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()

		out = f
	}

	log := logger.SetupFileLogger(out, cfg)

	doc, err := openDocument(pick(c.Layout, cfg.Layout), log)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(doc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

// ServeCmd hosts a layout over HTTP.
type ServeCmd struct {
	Layout string `arg:"" optional:"" help:"Layout file (default: MAFFIE_LAYOUT)"`
	Port   string `flag:"" optional:"" help:"Listen port (default: PORT)"`
}

// Run executes the serve command.
func (c *ServeCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cfg.Port = pick(c.Port, cfg.Port)
	log := logger.SetupLogger(cfg)

	log.Info("Starting maffie server",
		"env", cfg.Env,
		"port", cfg.Port,
		"layout", pick(c.Layout, cfg.Layout),
	)

	doc, err := openDocument(pick(c.Layout, cfg.Layout), log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := eventloop.New(cfg.QueueSize)

	srv, err := server.New(cfg, log, doc, loop)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	if err := srv.Run(ctx); err != nil {
		stop()
		return err
	}

	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("event loop: %w", err)
	}

	log.Info("Server stopped")

	return nil
}

// RenderCmd prints the mounted layout as HTML.
type RenderCmd struct {
	Layout string `arg:"" optional:"" help:"Layout file (default: MAFFIE_LAYOUT)"`
}

// Run executes the render command.
func (c *RenderCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	doc, err := openDocument(pick(c.Layout, cfg.Layout), slog.Default())
	if err != nil {
		return err
	}

	if err := doc.Render(os.Stdout); err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout)

	return err
}

// KindsCmd lists registered widget tags.
type KindsCmd struct{}

// Run executes the kinds command.
func (c *KindsCmd) Run() error {
	for _, tag := range registry.Default.Tags() {
		fmt.Println(tag)
	}

	return nil
}

// openDocument loads, builds and mounts a layout from the default registry.
// The registry is frozen first so that no kind can appear mid-session.
func openDocument(path string, log *slog.Logger) (*document.Document, error) {
	registry.Default.Freeze()

	layout, err := document.LoadLayout(path)
	if err != nil {
		return nil, err
	}

	doc, err := document.Build(layout, registry.Default, log)
	if err != nil {
		return nil, fmt.Errorf("build document: %w", err)
	}

	if err := doc.MountAll(); err != nil {
		return nil, fmt.Errorf("mount document: %w", err)
	}

	log.Debug("document ready", "title", doc.Title(), "widgets", len(doc.Entries()))

	return doc, nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}

	return fallback
}

func main() {
	// Set up text-based logger for CLI output
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("maffie"),
		kong.Description("Host maffie widget layouts in a terminal or a browser."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
