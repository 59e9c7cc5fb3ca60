package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelcheck/internal/aggregate"
	"labelcheck/internal/config"
	"labelcheck/internal/models"
	"labelcheck/pkg/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestNormalizer_Paths(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "normalized")
	jsonOut := filepath.Join(dir, "results", "summary.json")
	ndjsonOut := filepath.Join(dir, "results", "summary.ndjson")

	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("---\n- id: ex-1\n  label: UNSAFE\n  text: \"hello\"\n...\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("I'm sorry, I cannot do that."), 0644))

	out, err := execute(t, b, a,
		"--out-dir", outDir,
		"--json-out", jsonOut,
		"--ndjson-out", ndjsonOut,
		"--serializer", "manual",
		"--workers", "2",
		"--log-level", "error",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Wrote JSON: "+jsonOut)
	assert.Contains(t, out, "Wrote NDJSON: "+ndjsonOut)

	outcomes, err := aggregate.Load(jsonOut)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, b, outcomes[0].File)
	assert.Equal(t, models.ModeNone, outcomes[0].ParsedMode)
	assert.Equal(t, models.ModeYAML, outcomes[1].ParsedMode)
	assert.Equal(t, filepath.Join(outDir, "a.yaml"), outcomes[1].ArtifactPath())
	assert.FileExists(t, outcomes[1].ArtifactPath())
	assert.FileExists(t, ndjsonOut)
}

func TestNormalizer_Quiet(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(in, []byte(`id: ex-1 label: UNSAFE text: "x"`), 0644))

	out, err := execute(t, in, "--quiet", "--out-dir", dir, "--json-out", filepath.Join(dir, "s.json"), "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNormalizer_NoInputs(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "labelcheck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input:\n  glob: "+filepath.Join(dir, "*.txt")+"\n"), 0644))

	_, err := execute(t, "--config", cfgPath, "--out-dir", dir, "--json-out", filepath.Join(dir, "s.json"))
	assert.True(t, errors.Is(err, ErrNoInputs))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestNormalizer_InvalidFlag(t *testing.T) {
	_, err := execute(t, "x.txt", "--serializer", "pyyaml")
	require.Error(t, err)
}

func TestErrNoInputs_IsInvalidInput(t *testing.T) {
	err := errors.Wrapf(ErrNoInputs, "glob %q matched nothing", "runs/*.txt")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestNormalizer_DumpConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labelcheck.yaml")

	out, err := execute(t, "--dump-config", path, "--workers", "3", "--serializer", "manual")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config: "+path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Processing.Workers)
	assert.Equal(t, config.SerializerManual, cfg.Serializer.Mode)
}
