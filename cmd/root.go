package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/fanc/internal/config"
	"github.com/arnavsurve/fanc/internal/observability"
)

// ErrCheckFailed is returned once the offending diagnostics have already
// been printed; callers only need to set the exit status.
var ErrCheckFailed = errors.New("check failed")

type rootOptions struct {
	configPath string
	verbose    bool

	cfg             *config.Config
	shutdownTracing func(context.Context) error
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "fanc",
		Short: "fanc: semantic checker for FanC programs",
		Long: `fanc parses FanC sources, checks names, types and loop control, assigns
frame offsets and prints the resulting scope trace.

Commands:
  check  Check (.fanc) sources and print or write their scope traces
  watch  Re-check sources whenever they change
  init   Scaffold a fanc.toml and a starter program
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.shutdownTracing == nil {
				return nil
			}
			return opts.shutdownTracing(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to fanc.toml (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newCheckCmd(opts), newWatchCmd(opts), newInitCmd())
	return rootCmd
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	logLevel := cfg.SlogLevel()
	if o.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	shutdown, err := observability.SetupTracing(cmd.Context(), cfg.Tracing.Endpoint, cfg.Tracing.Insecure)
	if err != nil {
		return err
	}
	o.shutdownTracing = shutdown
	return nil
}

// loadConfig reads path, or the default file when path is empty. A missing
// default file means built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(config.DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", config.DefaultFile, err)
	}
	return cfg, nil
}
