package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/youmna-rabie/uid2gateway/internal/config"
	"github.com/youmna-rabie/uid2gateway/internal/routing"
	"github.com/youmna-rabie/uid2gateway/internal/types"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 1
	exitReadError = 2

	usageLine = "Usage: uid2gateway <phone_number>"
)

var errWrongArgCount = errors.New("expected exactly one phone number")

// exitError carries the exit code a failed command should produce.
// A quiet error has already been reported and is not printed again.
type exitError struct {
	code  int
	err   error
	quiet bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// options holds flag values shared by every subcommand.
type options struct {
	configPath string
	csvPath    string
	strict     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "uid2gateway <phone_number>",
		Short: "Resolve a phone number to its fax gateway",
		Long: "uid2gateway prints the gateway identifier of the first row in the gateway file " +
			"whose phone number matches the argument exactly. Nothing is printed when there is no match.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &exitError{code: exitUsage, err: errWrongArgCount}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return lookupGateway(cmd, opts, args[0])
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitUsage, err: err}
	})

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "uid2gateway.yaml", "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.csvPath, "file", "", "gateway file to read, overrides routing.csv_path")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with status 2 when the gateway file cannot be read")

	cmd.AddCommand(newListCmd(opts), newServeCmd(opts))
	return cmd
}

// Execute runs the command line and exits the process.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes args and maps the outcome to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if !errors.As(err, &ee) {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	switch {
	case ee.code == exitUsage:
		if !errors.Is(ee.err, errWrongArgCount) {
			fmt.Fprintf(stderr, "error: %v\n", ee.err)
		}
		fmt.Fprintln(stderr, usageLine)
	case !ee.quiet:
		fmt.Fprintf(stderr, "error: %v\n", ee.err)
	}
	return ee.code
}

func lookupGateway(cmd *cobra.Command, opts *options, phone string) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging, cmd.ErrOrStderr())
	res := newLookup(cfg, logger).FindGateway(phone)

	switch res.Status {
	case types.StatusFound:
		fmt.Fprintln(cmd.OutOrStdout(), res.GatewayID)
	case types.StatusReadError:
		// Already logged by the lookup; only the exit code changes.
		if opts.strict {
			return &exitError{code: exitReadError, err: res.Err, quiet: true}
		}
	}
	return nil
}

// loadConfig reads --config and applies --file. The default config path is
// optional; one given explicitly must exist.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	load := config.LoadOptional
	if cmd.Flags().Changed("config") {
		load = config.Load
	}

	cfg, err := load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.csvPath != "" {
		cfg.Routing.CSVPath = o.csvPath
	}
	return cfg, nil
}

func newLookup(cfg *config.Config, logger *slog.Logger) *routing.Lookup {
	return &routing.Lookup{
		Path:   cfg.Routing.CSVPath,
		Comma:  cfg.Routing.Comma(),
		Logger: logger,
	}
}

// newLogger writes to w, which is stderr in practice: stdout carries only results.
func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
