// Package cli provides the penaltyctl command-line interface. It renders the
// same charts as the HTTP service straight from the penalty tables.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nhl-penalty-service/internal/app/penalties"
	"github.com/preston-bernstein/nhl-penalty-service/internal/config"
	"github.com/preston-bernstein/nhl-penalty-service/internal/logging"
	"github.com/preston-bernstein/nhl-penalty-service/internal/tables/backend"
)

// Output formats accepted by --format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatSVG  = "svg"
)

// Version is set at build time.
var Version = "dev"

type rootOptions struct {
	data     config.DataConfig
	format   string
	seasons  []string
	logLevel string
}

// NewRootCmd builds the penaltyctl command tree. Flag defaults come from the
// same environment variables the server reads.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{data: cfg.Data}

	rootCmd := &cobra.Command{
		Use:   "penaltyctl",
		Short: "Query NHL penalty tables from the command line",
		Long: `penaltyctl aggregates NHL penalty calls from the CSV exports or the
SQLite database and prints the resulting chart as JSON, YAML or SVG.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			switch opts.format {
			case FormatJSON, FormatYAML, FormatSVG:
			default:
				return fmt.Errorf("unsupported format %q (want %s, %s or %s)", opts.format, FormatJSON, FormatYAML, FormatSVG)
			}
			opts.data.Backend = strings.ToLower(strings.TrimSpace(opts.data.Backend))
			return opts.data.Validate()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.data.Dir, "data-dir", opts.data.Dir, "Directory holding the CSV exports")
	flags.StringVar(&opts.data.Backend, "backend", opts.data.Backend, "Table backend (csv|sqlite)")
	flags.StringVar(&opts.data.SQLitePath, "sqlite-path", opts.data.SQLitePath, "Path to the SQLite database")
	flags.StringVarP(&opts.format, "format", "f", FormatJSON, "Output format (json|yaml|svg)")
	flags.StringSliceVarP(&opts.seasons, "season", "s", nil, "Season id, repeatable or comma separated (e.g. 2015)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatJSON, FormatYAML, FormatSVG}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("backend", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.BackendCSV, config.BackendSQLite}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newTeamCommand(opts))
	rootCmd.AddCommand(newPenaltyCommand(opts))
	rootCmd.AddCommand(newOptionsCommand(opts))

	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (o *rootOptions) logger(stderr io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   o.logLevel,
		Format:  "text",
		Service: "penaltyctl",
		Version: Version,
		Output:  stderr,
	})
}

// withService opens the configured backend, runs fn and releases the backend.
func (o *rootOptions) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *penalties.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := o.logger(cmd.ErrOrStderr())

	source, closer, err := backend.Open(ctx, o.data, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logging.Warn(logger, "close table source", "err", cerr)
		}
	}()

	if o.data.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.data.LoadTimeout)
		defer cancel()
	}
	return fn(logging.WithLogger(ctx, logger), penalties.NewService(source, logger, nil))
}
