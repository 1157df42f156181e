package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-cigar/internal/output"
	"github.com/inodb/vibe-cigar/internal/strand"
)

// addStartFlag registers the required --start flag.
func addStartFlag(cmd *cobra.Command, start *int64) {
	cmd.Flags().Int64Var(start, "start", 0, "Alignment start on the reference (0- or 1-based, preserved in output)")
	cmd.MarkFlagRequired("start")
}

func (a *app) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "parse <cigar>",
		Short:   "Print the operations of a CIGAR string under the active policy",
		Example: `  vibe-cigar parse 35M110N45M3I45M10N11M`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parseArg(args[0])
			if err != nil {
				return err
			}
			p := a.policy()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "#Op\tLength\tConsumes_ref\tConsumes_query\tCovered")
			for _, o := range c.Ops() {
				fmt.Fprintf(out, "%s\t%d\t%t\t%t\t%t\n",
					o.Kind, o.Len, p.ConsumesReference(o.Kind), o.Kind.ConsumesQuery(), p.Covered(o.Kind))
			}
			return nil
		},
	}
}

func (a *app) newJunctionsCmd() *cobra.Command {
	var start int64
	cmd := &cobra.Command{
		Use:   "junctions <cigar>",
		Short: "Print skipped-region boundaries, comma-separated (\"-\" if none)",
		Example: `  vibe-cigar junctions 35M110N45M3I45M10N --start 500
  vibe-cigar junctions 35M110N45M3I45M10N --start 500 --insertion-consumes-ref`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parseArg(args[0])
			if err != nil {
				return err
			}
			junctions := a.policy().Junctions(c, start)
			a.logger.Debug("junctions", zap.Int64("start", start), zap.Int("count", len(junctions)/2))
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatPositions(junctions))
			return nil
		},
	}
	addStartFlag(cmd, &start)
	return cmd
}

func (a *app) newCoverCmd() *cobra.Command {
	var (
		start int64
		runs  bool
	)
	cmd := &cobra.Command{
		Use:   "cover <cigar>",
		Short: "Print covered reference positions, one per line",
		Example: `  vibe-cigar cover 5M15N5M --start 500
  vibe-cigar cover 5M15N5M --start 500 --runs`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parseArg(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if runs {
				for _, r := range a.policy().ReferenceRuns(c, start) {
					fmt.Fprintf(out, "%d\t%d\n", r.Start, r.End)
				}
				return nil
			}
			for _, pos := range a.policy().ReferenceCover(c, start) {
				fmt.Fprintln(out, pos)
			}
			return nil
		},
	}
	addStartFlag(cmd, &start)
	cmd.Flags().BoolVar(&runs, "runs", false, "Print inclusive start/end runs instead of every position")
	return cmd
}

func (a *app) newCoversCmd() *cobra.Command {
	var start, from, to int64
	cmd := &cobra.Command{
		Use:   "covers <cigar>",
		Short: "Report whether [from, to] is fully covered without gaps",
		Example: `  vibe-cigar covers 5M15N5M --start 500 --from 501 --to 503   # true
  vibe-cigar covers 5M15N5M --start 500 --from 504 --to 520   # false`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from > to {
				return usageError{fmt.Errorf("--from (%d) must not exceed --to (%d)", from, to)}
			}
			c, err := a.parseArg(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.policy().FullyCovers(c, start, from, to))
			return nil
		},
	}
	addStartFlag(cmd, &start)
	cmd.Flags().Int64Var(&from, "from", 0, "Interval start (inclusive)")
	cmd.Flags().Int64Var(&to, "to", 0, "Interval end (inclusive)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func (a *app) newEndCmd() *cobra.Command {
	var start int64
	cmd := &cobra.Command{
		Use:     "end <cigar>",
		Short:   "Print the last reference position touched by the alignment",
		Example: `  vibe-cigar end 5M15N5M --start 500   # 524`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parseArg(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.policy().EndOfAlignment(c, start))
			return nil
		},
	}
	addStartFlag(cmd, &start)
	return cmd
}

func (a *app) newClipCmd() *cobra.Command {
	var (
		strandText string
		minLen     int
	)
	cmd := &cobra.Command{
		Use:   "clip <cigar>",
		Short: "Print the 3' soft clip length and whether it exceeds --min",
		Long: `Print the soft clip at the 3' end of the read ("-" if none) and whether it
is longer than --min bases. The 3' end is the last operation for + reads and
the first for - reads; unstranded reads never report a clip.`,
		Example: `  vibe-cigar clip 100M45S --strand + --min 10   # 45	true`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := strand.Parse(strandText)
			if err != nil {
				return usageError{err}
			}
			c, err := a.parseArg(args[0])
			if err != nil {
				return err
			}
			length := "-"
			if n, ok := c.SoftClipped(s); ok {
				length = strconv.Itoa(n)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", length, c.SoftClippedEnd(s, minLen))
			return nil
		},
	}
	cmd.Flags().StringVar(&strandText, "strand", ".", "Read strand: +, - or .")
	cmd.Flags().IntVar(&minLen, "min", 0, "Report true only for clips longer than this")
	return cmd
}
