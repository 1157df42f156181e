package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-cigar/internal/duckdb"
	"github.com/inodb/vibe-cigar/internal/output"
	"github.com/inodb/vibe-cigar/internal/query"
)

func (a *app) newQueryCmd() *cobra.Command {
	var start int64
	cmd := &cobra.Command{
		Use:   "query <cigar>",
		Short: "Print every coordinate fact for one alignment as a tab-delimited row",
		Long: `Evaluate a CIGAR string at --start and print its end, lengths, junctions and
covered runs. With --db (or db.path in the config file) results are cached in a
DuckDB database and later queries for the same CIGAR, start and policy are
answered from it.`,
		Example: `  vibe-cigar query 2S80M53373N169M --start 16946
  vibe-cigar query 2S80M53373N169M --start 16946 --db ~/.vibe-cigar/results.duckdb`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args[0], start)
		},
	}
	addStartFlag(cmd, &start)
	cmd.Flags().String("db", "", "DuckDB database for caching results")
	a.v.BindPFlag(keyDBPath, cmd.Flags().Lookup("db"))
	return cmd
}

func (a *app) runQuery(cmd *cobra.Command, text string, start int64) error {
	eval := query.NewEvaluator(a.policy())
	eval.SetLogger(a.logger)

	if dbPath := a.v.GetString(keyDBPath); dbPath != "" {
		store, err := duckdb.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open result cache: %w", err)
		}
		defer store.Close()
		a.logger.Debug("using result cache", zap.String("path", store.Path()))
		eval.SetCache(store)
	}

	r, err := eval.Evaluate(text, start)
	if err != nil {
		return fmt.Errorf("invalid CIGAR: %w", err)
	}

	w := output.NewTabWriter(cmd.OutOrStdout())
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.Write(r); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return w.Flush()
}
