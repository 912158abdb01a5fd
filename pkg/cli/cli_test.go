package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudidomingues/censotec/internal/domain"
)

// run executes the CLI with args and returns its captured stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	os.Stdout = old
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), execErr
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CENSOTEC_META_PATH", filepath.Join(dir, "meta.sqlite"))
	t.Setenv("CENSOTEC_DUCKDB_PATH", filepath.Join(dir, "analysis.duckdb"))
	t.Setenv("CENSOTEC_CHART_DIR", filepath.Join(dir, "charts"))
	return dir
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "censotec version")

	out, err = run(t, "version", "--output", "json")
	require.NoError(t, err)
	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "dev", v["version"])
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(""))
	assert.NoError(t, validateOutputFormat("text"))
	assert.NoError(t, validateOutputFormat("json"))
	assert.Error(t, validateOutputFormat("yaml"))
}

func TestRoot_RejectsUnknownOutput(t *testing.T) {
	_, err := run(t, "version", "--output", "xml")
	assert.Error(t, err)
}

func TestSynthIngestAnalyzeFlow(t *testing.T) {
	dir := setupEnv(t)
	csvPath := filepath.Join(dir, "synth.csv")

	out, err := run(t, "synth", csvPath, "--n", "200", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, csvPath)

	out, err = run(t, "ingest", "censo", csvPath, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "ingested censo: 200 rows")

	out, err = run(t, "describe", "censo", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, domain.GroupWithTech)
	assert.Contains(t, out, domain.GroupWithoutTech)

	out, err = run(t, "ttest", "censo", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Welch t-test on censo")
	assert.Contains(t, out, "decision:")

	out, err = run(t, "runs", "--dataset", "censo", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "censo")

	out, err = run(t, "datasets", "list", "--output", "json", "--quiet")
	require.NoError(t, err)
	var list struct {
		TotalCount int `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, 1, list.TotalCount)

	out, err = run(t, "charts", "censo", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "censo_histogram.svg")

	_, err = run(t, "datasets", "delete", "censo", "--quiet")
	require.NoError(t, err)
}

func TestDistributionsCmd(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "distributions", "--dir", filepath.Join(dir, "ref"), "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "reference_normal.svg")

	entries, err := os.ReadDir(filepath.Join(dir, "ref"))
	require.NoError(t, err)
	assert.Len(t, entries, 9)
}

func TestDescribe_UnknownDataset(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "describe", "missing", "--quiet")
	assert.Error(t, err)
}
