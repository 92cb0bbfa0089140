// Package cmd implements the graphdraw command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"graphdraw/config"
	"graphdraw/editor"
	"graphdraw/export"
	"graphdraw/geometry"
	"graphdraw/logging"
	"graphdraw/terminal"
)

var version = "0.3.0"

// globals holds the persistent flags and what PersistentPreRunE loads from
// them.
type globals struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

func (g *globals) load() error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	g.cfg = cfg
	g.log = log
	return nil
}

// exportOptions builds exporter settings from the config.
func (g *globals) exportOptions(sizer *geometry.Sizer) export.Options {
	return export.Options{
		Sizer:     sizer,
		Padding:   g.cfg.Export.Padding,
		LineWidth: g.cfg.Export.LineWidth,
		FontSize:  g.cfg.Geometry.FontSize,
		Logger:    g.log,
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "graphdraw",
		Short: "graphdraw, an interactive graph drawing editor",
		Long: brand.Sprint("graphdraw") + " draws graphs in the terminal with the mouse\n" +
			subtle.Sprint("Add vertices, connect them, style them and export the result"),
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.log != nil {
				_ = g.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(g)
		},
	}

	root.SetVersionTemplate("graphdraw {{ .Version }}\n")
	root.PersistentFlags().StringVar(&g.configPath, "config", config.Path(), "Config file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		exportCmd(g),
		formatsCmd(),
		configCmd(g),
	)
	return root
}

// Execute runs the root command and reports errors.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "graphdraw: %v\n", err)
		return err
	}
	return nil
}

// runEditor opens the terminal editor on an empty drawing.
func runEditor(g *globals) error {
	sizer, err := g.cfg.Sizer()
	if err != nil {
		return err
	}

	ed := editor.New(sizer,
		editor.WithLogger(g.log),
		editor.WithTolerances(g.cfg.Tolerances()),
		editor.WithHistorySize(g.cfg.History.Size),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	g.log.Info("editor started", zap.String("drawing", ed.Drawing().Metadata.ID))

	app := terminal.NewApp(screen, ed, terminal.Options{
		Export:    g.exportOptions(sizer),
		OutputDir: ".",
		Filename:  g.cfg.Export.Filename,
		Logger:    g.log,
	})
	return app.Run()
}
