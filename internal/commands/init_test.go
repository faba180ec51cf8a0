package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finmerge/finmerge/internal/config"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "finmerge-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "finmerge")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/finmerge")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runFinmerge runs the binary with dir as its working directory.
func runFinmerge(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_WritesDefaults(t *testing.T) {
	dir := t.TempDir()
	out, err := runFinmerge(t, dir, "init")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Initialized finmerge.yaml")

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	info, err := os.Stat(filepath.Join(dir, "input"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInit_CustomPaths(t *testing.T) {
	dir := t.TempDir()
	out, err := runFinmerge(t, dir, "init", "--input", "exports", "--output", "merged.csv")
	require.NoError(t, err, out)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, "exports", cfg.InputPath)
	assert.Equal(t, "merged.csv", cfg.OutputPath)

	_, err = os.Stat(filepath.Join(dir, "exports"))
	assert.NoError(t, err)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinmerge(t, dir, "init")
	require.NoError(t, err)

	out, err := runFinmerge(t, dir, "init", "--output", "other.csv")
	require.Error(t, err)
	assert.Contains(t, out, "already exists")

	out, err = runFinmerge(t, dir, "init", "--output", "other.csv", "--force")
	require.NoError(t, err, out)
	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, "other.csv", cfg.OutputPath)
}

func TestInit_CustomConfigPath(t *testing.T) {
	dir := t.TempDir()
	out, err := runFinmerge(t, dir, "init", "--config", "path.json")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(dir, "path.json"))
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runFinmerge(t, t.TempDir(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "finmerge version dev")
}
