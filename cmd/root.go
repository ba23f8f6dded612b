// Package cmd contains the CLI commands for the leap application.
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eykd/leap-go/internal/config"
	"github.com/eykd/leap-go/internal/fs"
	"github.com/eykd/leap-go/internal/leap"
)

// verbose holds the global --verbose flag state.
var verbose bool

// colorMode holds the effective color mode: the --color flag, or the
// config value when the flag is not given.
var colorMode string

// configPath holds the global --config flag state.
var configPath string

// GetVerbose returns the current verbose flag state.
func GetVerbose() bool {
	return verbose
}

// NewRootCmd creates a new root command instance without subcommands.
// Running it without a subcommand is a usage error.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "leap",
		Short:         "Format and verify Leap spec files",
		Long:          "leap formats Leap spec files in place, verifies them, and prints the standard type catalogue.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &UsageError{Msg: fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return &UsageError{Msg: "missing command: expected one of format, verify, print-std"}
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	cmd.PersistentFlags().StringVar(&colorMode, "color", config.ColorAuto, "Colorize diagnostics (auto|always|never)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a .leap.yaml or leap.toml file")

	return cmd
}

// state is the per-run environment shared by the adapters. It is filled
// in before any subcommand runs.
type state struct {
	cfg config.Config
	log *slog.Logger
}

func newState() *state {
	return &state{cfg: config.Default(), log: slog.New(slog.DiscardHandler)}
}

// load reads configuration and sets up logging for cmd.
func (s *state) load(cmd *cobra.Command) error {
	s.log = newLogger(cmd.ErrOrStderr(), GetVerbose())

	path := configPath
	if path == "" {
		found, err := fs.FindConfig(config.FileNames)
		if err != nil {
			return &ContextError{Op: "finding config", Err: err}
		}
		path = found
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		s.cfg = cfg
		s.log.Debug("loaded config", "path", path)
	}

	if !cmd.Flags().Changed("color") {
		colorMode = s.cfg.Output.Color
	}
	switch colorMode {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return &UsageError{Msg: fmt.Sprintf("invalid --color %q: expected auto, always or never", colorMode)}
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// BuildCommandTree creates the root command with every subcommand wired to
// the real filesystem, parser and formatter.
func BuildCommandTree() *cobra.Command {
	st := newState()
	root := NewRootCmd()
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return st.load(cmd)
	}

	d := &Dispatcher{
		Format:   &formatAdapter{st: st},
		Verify:   &verifyAdapter{},
		StdTypes: func() string { return leap.StdTypes },
	}
	root.AddCommand(NewFormatCmd(d), NewVerifyCmd(d), NewPrintStdCmd(d))
	return root
}
