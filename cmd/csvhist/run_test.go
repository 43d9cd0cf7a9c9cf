package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/csvhist"
	"go.uber.org/zap/zaptest"
)

type viewerFunc func(ctx context.Context, path string) error

func (f viewerFunc) View(ctx context.Context, path string) error {
	return f(ctx, path)
}

func writeCSV(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	return path
}

func testOptions(path string) options {
	return options{
		inputPath:  path,
		columnName: "Performance_Score",
		binCount:   5,
		chart:      csvhist.DefaultChart(),
		viewer: viewerFunc(func(context.Context, string) error {
			panic("viewer is not expected")
		}),
	}
}

func TestRun_text(t *testing.T) {
	opts := testOptions(writeCSV(t, "Employee_ID,Performance_Score\n1,1\n2,2\n3,3\n4,3\n5,5\n"))
	opts.text = true

	var out bytes.Buffer

	require.NoError(t, run(context.Background(), opts, zaptest.NewLogger(t), &out))

	assert.Contains(t, out.String(), "50.0% < 2.60, sum < 3.00\n")
	assert.Contains(t, out.String(), "(total count: 5)\n")
	assert.Contains(t, out.String(), "[2.60 3.40] 2 40.00% ")
}

func TestRun_table(t *testing.T) {
	opts := testOptions(writeCSV(t, "Name,Score\nAlice,3\n"))
	opts.table = true

	var out bytes.Buffer

	require.NoError(t, run(context.Background(), opts, zaptest.NewLogger(t), &out))
	assert.Contains(t, out.String(), "Alice")
}

func TestRun_chart(t *testing.T) {
	opts := testOptions(writeCSV(t, "Performance_Score\n1\n2\n3\n3\n5\n"))

	called := 0
	opts.viewer = viewerFunc(func(_ context.Context, path string) error {
		called++

		assert.FileExists(t, path)

		return nil
	})

	var out bytes.Buffer

	require.NoError(t, run(context.Background(), opts, zaptest.NewLogger(t), &out))
	assert.Equal(t, 1, called)
	assert.Empty(t, out.String())
}

func TestRun_errors(t *testing.T) {
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()

	opts := testOptions(filepath.Join(dir, "missing.csv"))
	err := run(context.Background(), opts, logger, &bytes.Buffer{})
	assert.ErrorIs(t, err, csvhist.ErrFileNotFound)

	opts = testOptions(writeCSV(t, "Performance_Score,Name\n1,a\n2\n"))
	err = run(context.Background(), opts, logger, &bytes.Buffer{})
	assert.ErrorIs(t, err, csvhist.ErrParse)

	opts = testOptions(writeCSV(t, "Score\n1\n"))
	err = run(context.Background(), opts, logger, &bytes.Buffer{})
	assert.ErrorIs(t, err, csvhist.ErrColumnNotFound)
	assert.Contains(t, err.Error(), `"Performance_Score"`)

	opts = testOptions(writeCSV(t, "Performance_Score\n"))
	err = run(context.Background(), opts, logger, &bytes.Buffer{})
	assert.ErrorIs(t, err, csvhist.ErrEmptyData)

	opts = testOptions(writeCSV(t, "Performance_Score\n1\n"))
	opts.binCount = 0
	err = run(context.Background(), opts, logger, &bytes.Buffer{})
	assert.ErrorIs(t, err, csvhist.ErrBinCount)
}
