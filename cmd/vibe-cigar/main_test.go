package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with an isolated home directory.
func execute(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestJunctionsCmd(t *testing.T) {
	isolateHome(t)

	out, _, code := execute(t, "junctions", "35M110N45M3I45M10N", "--start", "500")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "535,645,735,745\n", out)

	out, _, code = execute(t, "junctions", "35M110N45M3I45M10N", "--start", "500", "--insertion-consumes-ref")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "535,645,738,748\n", out)

	out, _, code = execute(t, "junctions", "50M", "--start", "1")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "-\n", out)
}

func TestJunctionsCmd_PolicyFromEnv(t *testing.T) {
	isolateHome(t)
	t.Setenv("VIBE_CIGAR_POLICY_INSERTION_CONSUMES_REFERENCE", "true")

	out, _, code := execute(t, "junctions", "35M110N45M3I45M10N", "--start", "500")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "535,645,738,748\n", out)
}

func TestCoverCmd(t *testing.T) {
	isolateHome(t)

	out, _, code := execute(t, "cover", "5M15N5M", "--start", "500")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "500\n501\n502\n503\n504\n520\n521\n522\n523\n524\n", out)

	out, _, code = execute(t, "cover", "5M15N5M", "--start", "500", "--runs")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "500\t504\n520\t524\n", out)

	out, _, code = execute(t, "cover", "5M2D5M", "--start", "0", "--runs", "--deletion-covered")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "0\t11\n", out)
}

func TestCoversCmd(t *testing.T) {
	isolateHome(t)

	out, _, code := execute(t, "covers", "5M15N5M", "--start", "500", "--from", "501", "--to", "503")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "true\n", out)

	out, _, code = execute(t, "covers", "5M15N5M", "--start", "500", "--from", "504", "--to", "520")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "false\n", out)

	_, stderr, code := execute(t, "covers", "5M15N5M", "--start", "500", "--from", "503", "--to", "501")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "must not exceed")
}

func TestEndCmd(t *testing.T) {
	isolateHome(t)

	out, _, code := execute(t, "end", "5M15N5M", "--start", "500")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "524\n", out)
}

func TestClipCmd(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"clip", "100M45S", "--strand", "+", "--min", "10"}, "45\ttrue\n"},
		{[]string{"clip", "100M45S", "--strand", "-", "--min", "10"}, "-\tfalse\n"},
		{[]string{"clip", "12S100M", "--strand", "-", "--min", "12"}, "12\tfalse\n"},
		{[]string{"clip", "100M45S"}, "-\tfalse\n"},
	}
	for _, tt := range tests {
		out, _, code := execute(t, tt.args...)
		assert.Equal(t, ExitSuccess, code, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}

	_, _, code := execute(t, "clip", "100M45S", "--strand", "x")
	assert.Equal(t, ExitUsage, code)
}

func TestParseCmd(t *testing.T) {
	isolateHome(t)

	out, _, code := execute(t, "parse", "2S3M1N")
	require.Equal(t, ExitSuccess, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "S\t2\tfalse\ttrue\tfalse", lines[1])
	assert.Equal(t, "M\t3\ttrue\ttrue\ttrue", lines[2])
	assert.Equal(t, "N\t1\ttrue\tfalse\tfalse", lines[3])
}

func TestParseCmd_Policy(t *testing.T) {
	isolateHome(t)

	out, _, code := execute(t, "parse", "5M3I2D5M", "--insertion-consumes-ref", "--deletion-covered")
	require.Equal(t, ExitSuccess, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "I\t3\ttrue\ttrue\tfalse", lines[2])
	assert.Equal(t, "D\t2\ttrue\tfalse\ttrue", lines[3])

	// parse and end agree on whether the insertion is consumed.
	out, _, code = execute(t, "end", "5M3I5M", "--start", "0", "--insertion-consumes-ref")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "12\n", out)
}

func TestInvalidCigar(t *testing.T) {
	isolateHome(t)

	for _, text := range []string{"12M3", "3Q", "M", "*", "0M"} {
		out, stderr, code := execute(t, "end", text, "--start", "1")
		assert.Equal(t, ExitError, code, text)
		assert.Empty(t, out, text)
		assert.Contains(t, stderr, "invalid CIGAR", text)
	}
}

func TestUsageErrors(t *testing.T) {
	isolateHome(t)

	_, _, code := execute(t, "end", "--start", "1")
	assert.Equal(t, ExitUsage, code, "missing argument")

	_, _, code = execute(t, "end", "5M", "6M", "--start", "1")
	assert.Equal(t, ExitUsage, code, "extra argument")

	_, _, code = execute(t, "end", "5M", "--start", "1", "--bogus")
	assert.Equal(t, ExitUsage, code, "unknown flag")

	_, _, code = execute(t, "end", "5M", "--start", "abc")
	assert.Equal(t, ExitUsage, code, "bad flag value")
}

func TestConfigSetGet(t *testing.T) {
	home := isolateHome(t)

	out, _, code := execute(t, "config", "set", "policy.insertion_consumes_reference", "true")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, filepath.Join(home, ".vibe-cigar.yaml"))

	data, err := os.ReadFile(filepath.Join(home, ".vibe-cigar.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "insertion_consumes_reference: true")

	out, _, code = execute(t, "config", "get", "policy.insertion_consumes_reference")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "true\n", out)

	// The saved policy applies to later invocations.
	out, _, code = execute(t, "junctions", "35M110N45M3I45M10N", "--start", "500")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "535,645,738,748\n", out)

	out, _, code = execute(t, "config")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "insertion_consumes_reference: true")
}

func TestConfigShow_Empty(t *testing.T) {
	home := isolateHome(t)

	out, _, code := execute(t, "config", "--insertion-consumes-ref")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "# No configuration set. Config file: "+filepath.Join(home, ".vibe-cigar.yaml")+"\n", out)
}

func TestConfigSet_WritesOnlyKey(t *testing.T) {
	home := isolateHome(t)

	_, _, code := execute(t, "config", "set", "db.path", "/tmp/results.duckdb", "--insertion-consumes-ref")
	require.Equal(t, ExitSuccess, code)

	data, err := os.ReadFile(filepath.Join(home, ".vibe-cigar.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "path: /tmp/results.duckdb")
	assert.NotContains(t, string(data), "insertion_consumes_reference")
	assert.NotContains(t, string(data), "deletion_covered")

	// A one-off flag is not persisted.
	out, _, code := execute(t, "junctions", "35M110N45M3I45M10N", "--start", "500")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "535,645,735,745\n", out)

	// Existing keys survive later writes.
	_, _, code = execute(t, "config", "set", "policy.deletion_covered", "true")
	require.Equal(t, ExitSuccess, code)
	out, _, code = execute(t, "config")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "path: /tmp/results.duckdb")
	assert.Contains(t, out, "deletion_covered: true")
	assert.NotContains(t, out, "insertion_consumes_reference")
}

func TestConfigGet_Unset(t *testing.T) {
	isolateHome(t)

	_, stderr, code := execute(t, "config", "get", "no.such.key")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "not set")
}

func TestExplicitConfigFile(t *testing.T) {
	isolateHome(t)
	cfg := filepath.Join(t.TempDir(), "cigar.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("policy:\n  deletion_covered: true\n"), 0644))

	out, _, code := execute(t, "--config", cfg, "cover", "5M2D5M", "--start", "0", "--runs")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "0\t11\n", out)
}

func TestQueryCmd(t *testing.T) {
	isolateHome(t)

	out, _, code := execute(t, "query", "5M15N5M", "--start", "500")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t,
		"#Cigar\tStart\tEnd\tRef_length\tQuery_length\tJunctions\tCovered_runs\tPolicy\n"+
			"5M15N5M\t500\t524\t25\t10\t505,520\t500:504,520:524\tstandard\n",
		out)
}

func TestQueryCmd_WithDB(t *testing.T) {
	isolateHome(t)
	dbPath := filepath.Join(t.TempDir(), "cache", "results.duckdb")

	first, _, code := execute(t, "query", "2S80M53373N169M", "--start", "16946", "--db", dbPath)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, first, "\t17026,70399\t")
	assert.FileExists(t, dbPath)

	// The second run is answered from the cache with identical output.
	second, _, code := execute(t, "query", "2S80M53373N169M", "--start", "16946", "--db", dbPath)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, first, second)
}
