package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/internal/io"
	"github.com/poppolopoppo/slngen/utils"
)

func TestExportManifestsMergesInputs(t *testing.T) {
	dir := t.TempDir()
	first := writeTestFile(t, filepath.Join(dir, "first.json"), testManifestJson)
	second := writeTestFile(t, filepath.Join(dir, "second.yaml"), `
Projects:
  - FullPath: src/Tool/Tool.csproj
    SolutionFolder: Tools
`)

	output := utils.MakeFilename(filepath.Join(dir, "merged.yaml.zst"))
	merged, err := ExportManifests(output, base.COMPRESSION_LEVEL_FAST, first, second)
	require.NoError(t, err)
	assert.Len(t, merged.Projects, 3)
	assert.Len(t, merged.SolutionItems, 1)

	reloaded, err := io.ReadManifest(output)
	require.NoError(t, err)
	assert.Equal(t, merged, reloaded)
	assert.Equal(t, "src/Tool/Tool.csproj", reloaded.Projects[2].FullPath)
}

func TestExportCommandRun(t *testing.T) {
	dir := t.TempDir()
	input := writeTestFile(t, filepath.Join(dir, "in.json"), testManifestJson)
	output := utils.MakeFilename(filepath.Join(dir, "out", "merged.json.lz4"))

	cmd := parseCommand(t, CommandExportJson, input.String(), "-Output="+output.String(), "-Compression=BEST")
	require.NoError(t, cmd.Run())

	reloaded, err := io.ReadManifest(output)
	require.NoError(t, err)
	assert.Len(t, reloaded.Projects, 2)

	cls := utils.NewCommandLine([]string{"-Output=" + output.String()})
	require.Len(t, cls, 1)
	assert.Error(t, CommandExportJson().Parse(cls[0]), "at least one manifest is required")
}
