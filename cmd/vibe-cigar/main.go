// Package main provides the vibe-cigar command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-cigar/internal/cigar"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Configuration keys
const (
	keyInsertionConsumesRef = "policy.insertion_consumes_reference"
	keyDeletionCovered      = "policy.deletion_covered"
	keyDBPath               = "db.path"
)

const configName = ".vibe-cigar"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := newApp()
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	a.logger.Sync()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// usageError marks errors caused by invalid command-line usage.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app holds state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	logger  *zap.Logger
	cfgFile string
	verbose bool
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		logger: zap.NewNop(),
	}
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vibe-cigar",
		Short: "Derive reference coordinates from CIGAR strings",
		Long: `vibe-cigar parses CIGAR alignment strings and derives junction boundaries,
covered reference positions, interval containment and alignment ends.

Coordinates are reported in the same system as --start (0- or 1-based).`,
		Example: `  vibe-cigar junctions 35M110N45M3I45M10N --start 500
  vibe-cigar cover 5M15N5M --start 500 --runs
  vibe-cigar covers 5M15N5M --start 500 --from 501 --to 503
  vibe-cigar query 2S80M53373N169M --start 16946 --db ~/.vibe-cigar/results.duckdb`,
		Version:           fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.init() },
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default: ~/.vibe-cigar.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	pf.Bool("insertion-consumes-ref", false, "Advance the reference cursor over insertions (I)")
	pf.Bool("deletion-covered", false, "Count deletions (D) as covered positions")
	a.v.BindPFlag(keyInsertionConsumesRef, pf.Lookup("insertion-consumes-ref"))
	a.v.BindPFlag(keyDeletionCovered, pf.Lookup("deletion-covered"))

	root.AddCommand(a.newParseCmd())
	root.AddCommand(a.newJunctionsCmd())
	root.AddCommand(a.newCoverCmd())
	root.AddCommand(a.newCoversCmd())
	root.AddCommand(a.newEndCmd())
	root.AddCommand(a.newClipCmd())
	root.AddCommand(a.newQueryCmd())
	root.AddCommand(a.newConfigCmd())

	return root
}

// init loads configuration and builds the logger.
func (a *app) init() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigName(configName)
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("VIBE_CIGAR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		// A missing config file is fine; config set creates it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	logger, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config", a.v.ConfigFileUsed()),
		zap.Bool("insertion_consumes_reference", a.v.GetBool(keyInsertionConsumesRef)),
		zap.Bool("deletion_covered", a.v.GetBool(keyDeletionCovered)))
	return nil
}

// newLogger returns a console logger on stderr at Warn, or Debug if verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// policy returns the coordinate policy selected by flags, config or env.
func (a *app) policy() cigar.Policy {
	return cigar.Policy{
		InsertionConsumesReference: a.v.GetBool(keyInsertionConsumesRef),
		DeletionCovered:            a.v.GetBool(keyDeletionCovered),
	}
}

// defaultConfigFile returns the path config set writes to when no config
// file was loaded.
func (a *app) defaultConfigFile() (string, error) {
	if cfgFile := a.v.ConfigFileUsed(); cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configName+".yaml"), nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// parseArg parses the CIGAR positional argument.
func (a *app) parseArg(text string) (cigar.Cigar, error) {
	c, err := cigar.Parse(text)
	if err != nil {
		return cigar.Cigar{}, fmt.Errorf("invalid CIGAR: %w", err)
	}
	a.logger.Debug("parsed cigar", zap.String("cigar", text), zap.Int("ops", c.Len()))
	return c, nil
}
