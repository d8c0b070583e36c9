package compiler

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/fanc/internal/compiler/diag"
)

var update = flag.Bool("update", false, "rewrite golden trace files")

func TestGoldenTraces(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "ok", "*.fanc"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			res, err := CheckFile(context.Background(), file, ".fanc")
			require.NoError(t, err)

			golden := strings.TrimSuffix(file, ".fanc") + TraceExt
			if *update {
				require.NoError(t, os.WriteFile(golden, []byte(res.Trace), 0o644))
			}
			want, err := os.ReadFile(golden)
			require.NoError(t, err)
			assert.Equal(t, string(want), res.Trace)
		})
	}
}

func TestGoldenErrors(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "errors", "*.fanc"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			res, err := CheckFile(context.Background(), file, ".fanc")
			require.Error(t, err)
			assert.Nil(t, res)

			_, ok := diag.As(err)
			assert.True(t, ok, "expected a diagnostic, got %v", err)

			want, rerr := os.ReadFile(strings.TrimSuffix(file, ".fanc") + ".err")
			require.NoError(t, rerr)
			assert.Equal(t, strings.TrimSpace(string(want)), err.Error())
		})
	}
}

func TestCheckResult(t *testing.T) {
	res, err := Check(context.Background(), "inline", "void main() { int x = 1; }")
	require.NoError(t, err)

	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err)
	assert.Equal(t, "inline", res.Source)
	assert.Contains(t, res.Trace, "  x int 0\n")
	assert.NotEmpty(t, res.Events)

	other, err := Check(context.Background(), "inline", "void main() { }")
	require.NoError(t, err)
	assert.NotEqual(t, res.ID, other.ID)
}

func TestCheckFileErrors(t *testing.T) {
	dir := t.TempDir()

	wrongExt := filepath.Join(dir, "main.txt")
	require.NoError(t, os.WriteFile(wrongExt, []byte("void main() { }"), 0o644))
	_, err := CheckFile(context.Background(), wrongExt, ".fanc")
	assert.ErrorContains(t, err, "source must have .fanc extension")

	_, err = CheckFile(context.Background(), filepath.Join(dir, "missing.fanc"), ".fanc")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, diag.KindOf(err))
}

func TestWriteTrace(t *testing.T) {
	res, err := Check(context.Background(), filepath.Join("src", "prog.fanc"), "void main() { }")
	require.NoError(t, err)

	outDir := filepath.Join(t.TempDir(), "out")
	path, err := WriteTrace(res, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "prog.scopes"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res.Trace, string(data))
}
