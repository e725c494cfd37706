package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danjacques/gofslock/fslock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poppolopoppo/slngen/sln"
)

func testSolution(t *testing.T, outputDir string, options ...sln.OptionFunc) *sln.Solution {
	options = append([]sln.OptionFunc{sln.OptionName("dirs.proj"), sln.OptionOutputDir(outputDir)}, options...)
	manifest := testManifest()
	solution, err := sln.NewSolutionFromMetadata(sln.NewOptions(options...), manifest.Projects, manifest.SolutionItems)
	require.NoError(t, err)
	return solution
}

func TestWriteSolutionSkipsUnchangedContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	solution := testSolution(t, dir)

	output, result, err := WriteSolution(solution)
	require.NoError(t, err)
	assert.Equal(t, SLN_WRITE_CREATED, result)
	assert.Equal(t, filepath.Join(dir, "dirs.sln"), output.String())

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(output.String(), past, past))

	_, result, err = WriteSolution(testSolution(t, dir))
	require.NoError(t, err)
	assert.Equal(t, SLN_WRITE_UNCHANGED, result)

	st, err := os.Stat(output.String())
	require.NoError(t, err)
	assert.True(t, st.ModTime().Before(time.Now().Add(-time.Minute)), "file was not touched")

	_, result, err = WriteSolution(testSolution(t, dir), OptionSlnWriterForce(true))
	require.NoError(t, err)
	assert.Equal(t, SLN_WRITE_UPDATED, result)

	_, result, err = WriteSolution(testSolution(t, dir, sln.OptionCRLF(true)), OptionSlnWriterAtomic(true))
	require.NoError(t, err)
	assert.Equal(t, SLN_WRITE_UPDATED, result)

	raw, err := os.ReadFile(output.String())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("Microsoft Visual Studio Solution File, Format Version 12.00\r\n")))
	assert.NoFileExists(t, output.String()+".tmp")
}

func TestRenderSolutionWithBOM(t *testing.T) {
	solution := testSolution(t, t.TempDir())

	plain, err := RenderSolution(solution, false)
	require.NoError(t, err)
	withBOM, err := RenderSolution(solution, true)
	require.NoError(t, err)

	assert.Equal(t, append([]byte{0xEF, 0xBB, 0xBF}, plain...), withBOM)
}

func TestWriteSolutionFailsWhenLocked(t *testing.T) {
	dir := t.TempDir()
	solution := testSolution(t, dir)

	lock, err := fslock.Lock(filepath.Join(dir, "dirs.sln.lock"))
	require.NoError(t, err)
	defer lock.Unlock()

	output, _, err := WriteSolution(solution)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSolutionLocked))
	assert.True(t, errors.Is(err, fslock.ErrLockHeld))
	assert.NoFileExists(t, output.String())
}

func TestDigestFile(t *testing.T) {
	dir := t.TempDir()
	solution := testSolution(t, dir)

	output, _, err := WriteSolution(solution)
	require.NoError(t, err)

	content, err := RenderSolution(solution, false)
	require.NoError(t, err)

	fromFile, err := DigestFile(output)
	require.NoError(t, err)
	fromBytes, err := DigestBytes(content)
	require.NoError(t, err)
	assert.Equal(t, fromBytes, fromFile)

	missing, err := DigestFile(output.ReplaceExt(".missing"))
	require.NoError(t, err)
	assert.False(t, missing.Valid())
}
