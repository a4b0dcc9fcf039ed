// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/config"
	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/logger"
	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/source"
)

// Dependencies are the collaborators of the command tree.
type Dependencies struct {
	// Anchors loads the trust anchor named on the command line.
	Anchors source.TrustAnchorLoader
	// Tokens loads token text from a path or standard input.
	Tokens source.TokenSource
	// Stdout receives command results.
	Stdout io.Writer
	// Stderr receives diagnostics.
	Stderr io.Writer
	// Log is the text logger used unless JSON logging is selected.
	Log logger.Logger
}

// app holds the state of one command-line invocation.
type app struct {
	deps       Dependencies
	configFile string
	logJSON    bool
	verbose    bool

	cfg *config.Config
	log logger.Logger
}

// Execute runs the command tree with os.Args against the real file system,
// standard input and standard output.
//
// Parameters:
//   - ctx: Context checked between verification steps
//   - version: Version string reported by --version
//   - log: Diagnostics logger used unless JSON logging is selected
//
// Returns:
//   - error: The first error met by the selected command, already logged
func Execute(ctx context.Context, version string, log logger.Logger) error {
	loader := source.New()
	deps := Dependencies{
		Anchors: loader,
		Tokens:  loader,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Log:     log,
	}
	return Run(ctx, version, deps, os.Args[1:])
}

// Run executes the command tree for args. Errors are logged through the
// active logger before being returned, so the caller only has to choose an
// exit status.
//
// Missing writers default to the process streams, a missing logger to a
// [logger.CLILogger] on Stderr and missing loaders to a [source.Loader].
func Run(ctx context.Context, version string, deps Dependencies, args []string) error {
	a, rootCmd := newRootCommand(version, deps)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		a.log.Printf("Error: %v", err)
		return err
	}
	return nil
}

func newRootCommand(version string, deps Dependencies) (*app, *cobra.Command) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Log == nil {
		l := logger.NewCLILogger()
		l.SetOutput(deps.Stderr)
		deps.Log = l
	}
	if deps.Anchors == nil || deps.Tokens == nil {
		loader := source.New()
		if deps.Anchors == nil {
			deps.Anchors = loader
		}
		if deps.Tokens == nil {
			deps.Tokens = loader
		}
	}

	a := &app{deps: deps, log: deps.Log}
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:   exeName,
		Short: "Verify x5c-signed JWTs against a trust anchor",
		Long: `Verifies compact JWS tokens whose "x5c" header carries the signer
certificate chain. Every link of the chain, from the signing certificate up to
the trust anchor, must be signed with sha256WithRSAEncryption, and the token
must be signed with RS256 by the first certificate of the chain.

Only verified payloads are ever printed.`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "path to configuration file (JSON or YAML); defaults to $"+config.EnvConfigFile)
	rootCmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "write diagnostics as JSON lines")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log each verified token")

	rootCmd.AddCommand(
		a.newJSONCommand(exeName),
		a.newTxtCommand(exeName),
		a.newInspectCommand(exeName),
	)

	return a, rootCmd
}

// setup loads the configuration and selects the logger before any
// subcommand runs. --log-json takes effect before the configuration is read
// so that configuration errors are already logged as JSON.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.logJSON {
		if err := a.useLogFormat(cmd, logger.FormatJSON); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logJSON {
		return nil
	}
	return a.useLogFormat(cmd, cfg.Log.Format)
}

// useLogFormat switches diagnostics to format. The text format keeps the
// injected logger.
func (a *app) useLogFormat(cmd *cobra.Command, format string) error {
	l, err := logger.New(format, a.deps.Stderr)
	if err != nil {
		return err
	}

	switch l := l.(type) {
	case *logger.JSONLogger:
		a.log = l.With("command", cmd.Name())
	default:
		a.log = a.deps.Log
	}
	return nil
}

// debugf logs only in verbose mode.
func (a *app) debugf(format string, v ...any) {
	if a.verbose {
		a.log.Printf(format, v...)
	}
}
