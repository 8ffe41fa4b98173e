package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktsarnakliyski/JobSpresso/internal/errors"
)

func newTestProcessor(t *testing.T, maxSize int64) *FileProcessor {
	t.Helper()
	logger, err := errors.New("error", "")
	require.NoError(t, err)
	return NewFileProcessor(logger, maxSize)
}

func TestReadFile(t *testing.T) {
	fp := newTestProcessor(t, 0)

	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("Senior Engineer wanted"), 0600))

	content, err := fp.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer wanted", content)
}

func TestReadFileNotFound(t *testing.T) {
	fp := newTestProcessor(t, 0)

	_, err := fp.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeFileNotFound, appErr.Code)
}

func TestReadFileSizeLimit(t *testing.T) {
	fp := newTestProcessor(t, 16)

	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0600))

	_, err := fp.ReadFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	// Under the limit passes
	small := filepath.Join(t.TempDir(), "small.txt")
	require.NoError(t, os.WriteFile(small, []byte("short"), 0600))
	_, err = fp.ReadFile(small)
	assert.NoError(t, err)
}

func TestValidateAndReadFiles(t *testing.T) {
	fp := newTestProcessor(t, 0)

	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(first, []byte("alpha"), 0600))
	require.NoError(t, os.WriteFile(second, []byte("beta"), 0600))

	contents, err := fp.ValidateAndReadFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, contents)
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	fp := newTestProcessor(t, 0)

	path := filepath.Join(t.TempDir(), "nested", "out", "result.json")
	require.NoError(t, fp.WriteFile(path, "{}"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
