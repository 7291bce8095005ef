package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner  = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	funder = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	steps := [][]string{
		{"deploy", "--owner", owner},
		{"wallet", "credit", "--address", funder, "--value", "1"},
		{"fund", "--from", funder, "--value", "0.5"},
		{"cheaper-withdraw", "--from", owner},
	}
	for _, args := range steps {
		_, stderr, err := runFM(t, binaryPath, home, args...)
		require.NoError(t, err, "fm %v stderr: %s", args, stderr)
	}

	stdout, stderr, err := runFM(t, binaryPath, home, "ledger", "funders")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Empty(t, stdout)

	stdout, stderr, err = runFM(t, binaryPath, home, "wallet", "show", owner)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "balance: 0.5 ETH")

	_, _, err = runFM(t, binaryPath, home, "withdraw", "--from", funder)
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "fm-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/fm")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build fm binary: %s", string(output))
	return binaryPath
}

func runFM(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "FM_FROM=")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
