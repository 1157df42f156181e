// Package output provides result output formatters.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-cigar/internal/cigar"
	"github.com/inodb/vibe-cigar/internal/query"
)

// TabWriter writes query results in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Cigar",
			"Start",
			"End",
			"Ref_length",
			"Query_length",
			"Junctions",
			"Covered_runs",
			"Policy",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single result.
func (tw *TabWriter) Write(r *query.Result) error {
	values := []string{
		r.Cigar,
		strconv.FormatInt(r.Start, 10),
		strconv.FormatInt(r.End, 10),
		strconv.FormatInt(r.RefLength, 10),
		strconv.Itoa(r.QueryLength),
		FormatPositions(r.Junctions),
		FormatRuns(r.Runs),
		query.PolicyName(r.Policy),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// FormatPositions joins positions with commas, or returns "-" when empty.
func FormatPositions(pos []int64) string {
	if len(pos) == 0 {
		return "-"
	}
	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = strconv.FormatInt(p, 10)
	}
	return strings.Join(parts, ",")
}

// FormatRuns renders runs as comma-joined "start:end" pairs, or "-" when empty.
// The colon keeps negative coordinates unambiguous.
func FormatRuns(runs []cigar.Run) string {
	if len(runs) == 0 {
		return "-"
	}
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = strconv.FormatInt(r.Start, 10) + ":" + strconv.FormatInt(r.End, 10)
	}
	return strings.Join(parts, ",")
}
