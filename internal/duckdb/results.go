package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vibe-cigar/internal/cigar"
	"github.com/inodb/vibe-cigar/internal/query"
)

var _ query.ResultCache = (*Store)(nil)

// resultKey is the composite key for deduplicating results before writing.
type resultKey struct {
	cigar  string
	start  int64
	policy cigar.Policy
}

// WriteResults upserts query results in a single transaction.
// Duplicate keys within results are written once; existing rows are replaced.
func (s *Store) WriteResults(results []query.Result) error {
	if len(results) == 0 {
		return nil
	}

	seen := make(map[resultKey]bool, len(results))
	deduped := make([]query.Result, 0, len(results))
	for _, r := range results {
		k := resultKey{r.Cigar, r.Start, r.Policy}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO query_results (
		cigar, start_pos, insertion_consumes_ref, deletion_covered,
		end_pos, ref_length, query_length, junctions, runs
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range deduped {
		if _, err := stmt.Exec(
			r.Cigar, r.Start, r.Policy.InsertionConsumesReference, r.Policy.DeletionCovered,
			r.End, r.RefLength, int64(r.QueryLength),
			encodePositions(r.Junctions), encodeRuns(r.Runs),
		); err != nil {
			return fmt.Errorf("insert query result: %w", err)
		}
	}

	return tx.Commit()
}

// LookupResult returns a previously cached result, or nil if none exists.
func (s *Store) LookupResult(cigarText string, start int64, p cigar.Policy) (*query.Result, error) {
	row := s.db.QueryRow(`SELECT
		end_pos, ref_length, query_length, junctions, runs
		FROM query_results
		WHERE cigar=? AND start_pos=? AND insertion_consumes_ref=? AND deletion_covered=?`,
		cigarText, start, p.InsertionConsumesReference, p.DeletionCovered)

	r := query.Result{Cigar: cigarText, Start: start, Policy: p}
	var queryLength int64
	var junctions, runs string
	if err := row.Scan(&r.End, &r.RefLength, &queryLength, &junctions, &runs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query result: %w", err)
	}
	r.QueryLength = int(queryLength)

	var err error
	if r.Junctions, err = decodePositions(junctions); err != nil {
		return nil, fmt.Errorf("decode junctions: %w", err)
	}
	if r.Runs, err = decodeRuns(runs); err != nil {
		return nil, fmt.Errorf("decode runs: %w", err)
	}
	return &r, nil
}

// CountResults returns the number of cached results.
func (s *Store) CountResults() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT count(*) FROM query_results").Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

// ClearResults removes all cached results.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM query_results")
	return err
}

// Positions are stored comma-separated and runs as comma-separated
// "start:end" pairs; ':' keeps negative coordinates unambiguous.

func encodePositions(pos []int64) string {
	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = strconv.FormatInt(p, 10)
	}
	return strings.Join(parts, ",")
}

func decodePositions(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	pos := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		pos[i] = v
	}
	return pos, nil
}

func encodeRuns(runs []cigar.Run) string {
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = strconv.FormatInt(r.Start, 10) + ":" + strconv.FormatInt(r.End, 10)
	}
	return strings.Join(parts, ",")
}

func decodeRuns(s string) ([]cigar.Run, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	runs := make([]cigar.Run, len(parts))
	for i, p := range parts {
		startText, endText, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("malformed run %q", p)
		}
		start, err := strconv.ParseInt(startText, 10, 64)
		if err != nil {
			return nil, err
		}
		end, err := strconv.ParseInt(endText, 10, 64)
		if err != nil {
			return nil, err
		}
		runs[i] = cigar.Run{Start: start, End: end}
	}
	return runs, nil
}
