package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_text(t *testing.T) {
	path := writeCSV(t, "Performance_Score\n1\n2\n3\n3\n5\n")

	var stdout, stderr bytes.Buffer

	code := start([]string{"-input", path, "-bins", "5", "-text"}, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "(total count: 5)\n")
}

func TestStart_failureStopsProfile(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer

	code := start([]string{
		"-input", filepath.Join(dir, "missing.csv"),
		"-profile", "cpu", "-profile-path", dir,
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "file not found")

	// Profile is only written on stop.
	st, err := os.Stat(filepath.Join(dir, "cpu.pprof"))
	require.NoError(t, err)
	assert.NotZero(t, st.Size())
}

func TestStart_badArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, start([]string{"-profile", "heap"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unexpected -profile value 'heap'")

	stderr.Reset()
	assert.Equal(t, 1, start([]string{"-viewer", `"unterminated`}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Invalid -viewer")

	assert.Equal(t, 2, start([]string{"-no-such-flag"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestStart_version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 0, start([]string{"-version"}, &stdout, &stderr))
	assert.NotEmpty(t, stdout.String())
}
