package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-cigar configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.vibe-cigar.yaml.",
		Example: `  vibe-cigar config                                              # show all config
  vibe-cigar config set policy.insertion_consumes_reference true  # legacy junctions
  vibe-cigar config set db.path ~/.vibe-cigar/results.duckdb     # cache query results
  vibe-cigar config get db.path                                  # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigShow(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigSet(cmd, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigGet(cmd, args[0])
		},
	})

	return cmd
}

// fileConfig returns a viper holding only the contents of the config file,
// without flags, env or defaults, and the file's path.
func (a *app) fileConfig() (*viper.Viper, string, error) {
	cfgFile, err := a.defaultConfigFile()
	if err != nil {
		return nil, "", err
	}
	fv := viper.New()
	fv.SetConfigFile(cfgFile)
	fv.SetConfigType("yaml")
	if err := fv.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("read config: %w", err)
	}
	return fv, cfgFile, nil
}

func (a *app) runConfigShow(cmd *cobra.Command) error {
	fv, cfgFile, err := a.fileConfig()
	if err != nil {
		return err
	}
	settings := fv.AllSettings()
	if len(settings) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "# No configuration set. Config file: %s\n", cfgFile)
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func (a *app) runConfigSet(cmd *cobra.Command, key, value string) error {
	fv, cfgFile, err := a.fileConfig()
	if err != nil {
		return err
	}

	// Parse boolean-like values
	switch value {
	case "true", "yes", "on":
		fv.Set(key, true)
	case "false", "no", "off":
		fv.Set(key, false)
	default:
		fv.Set(key, value)
	}

	if err := fv.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func (a *app) runConfigGet(cmd *cobra.Command, key string) error {
	val := a.v.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
