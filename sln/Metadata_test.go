package sln

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(options ...OptionFunc) Options {
	return NewOptions(append([]OptionFunc{OptionName("Test.proj"), OptionOutputDir("out")}, options...)...)
}

func TestNewSolutionFromMetadataMergesRecords(t *testing.T) {
	solution, err := NewSolutionFromMetadata(
		testOptions(OptionConfigurations("Debug", "Release"), OptionPlatforms("AnyCPU")),
		[]ProjectMetadata{
			{FullPath: `C:\src\ProjA\ProjA.csproj`, Configurations: "Debug;Release", Platforms: "AnyCPU",
				OriginalConfiguration: "Debug", OriginalPlatform: "AnyCPU", Configuration: "Debug", Platform: "AnyCPU"},
			{FullPath: `C:\src\ProjB\ProjB.vcxproj`, Configurations: "Debug", Platforms: "x86",
				OriginalConfiguration: "Debug", OriginalPlatform: "AnyCPU", Configuration: "Debug", Platform: "x86"},
			{FullPath: `C:\src\ProjA\ProjA.csproj`, Configurations: "Debug;Release", Platforms: "AnyCPU",
				OriginalConfiguration: "Release", OriginalPlatform: "AnyCPU", Configuration: "Release", Platform: "AnyCPU"},
		}, nil)
	require.NoError(t, err)
	require.Len(t, solution.Projects, 2)

	projA, projB := solution.Projects[0], solution.Projects[1]
	assert.Equal(t, "ProjA", projA.Name)
	assert.Equal(t, "ProjB", projB.Name)
	assert.Equal(t, DefaultNetSdkProjectTypeGuid, projA.ProjectTypeGuid)
	assert.Equal(t, MustParseGuid("8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942"), projB.ProjectTypeGuid)

	assert.Equal(t, AxisRemap{"Debug": "Debug", "Release": "Release"}, solution.ConfigurationMap[projA.FullPath])
	assert.Equal(t, AxisRemap{"AnyCPU": "x86"}, solution.PlatformMap[projB.FullPath])

	assert.Equal(t, []ProjectConfigurationPair{
		{Solution: ConfigurationPair{"Debug", "AnyCPU"}, Project: ConfigurationPair{"Debug", "x86"}},
	}, solution.ProjectConfigurationPairs(projB))
	assert.Len(t, solution.ProjectConfigurationPairs(projA), 2)
}

func TestNewSolutionFromMetadataFatalErrors(t *testing.T) {
	records := []ProjectMetadata{{FullPath: "App.csproj"}}

	tests := []struct {
		name    string
		options Options
		records []ProjectMetadata
		items   []SolutionItemMetadata
		field   string
	}{
		{"no name", NewOptions(OptionOutputDir("out")), records, nil, "Name"},
		{"no output dir", NewOptions(OptionName("App")), records, nil, "OutputDir"},
		{"no projects", testOptions(), nil, nil, "Projects"},
		{"record without path", testOptions(), []ProjectMetadata{{Configuration: "Debug"}}, nil, "FullPath"},
		{"item without path", testOptions(), records, []SolutionItemMetadata{{SolutionFolder: "Docs"}}, "FullPath"},
		{"bad version", func() Options {
			o := testOptions()
			o.VisualStudioVersion = "16"
			return o
		}(), records, nil, "VisualStudioVersion"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			solution, err := NewSolutionFromMetadata(test.options, test.records, test.items)
			assert.Nil(t, solution)

			var configErr *ConfigurationError
			require.True(t, errors.As(err, &configErr), "got %v", err)
			assert.Equal(t, test.field, configErr.Field)
		})
	}
}

func TestAxisDefaultingChain(t *testing.T) {
	builder := NewAxisRemapBuilder()
	require.NoError(t, builder.Add(
		ProjectMetadata{FullPath: "explicit.csproj", Configurations: "Ship", Platforms: "x64",
			ProjectConfiguration: "Debug|Win32"},
		ProjectMetadata{FullPath: "pairs.vcxproj", ProjectConfiguration: "Debug|Win32;Release|x64"},
		ProjectMetadata{FullPath: "observed.csproj", Configuration: "Profile", Platform: "ARM64"},
		ProjectMetadata{FullPath: "bare.csproj"},
	))

	options := NewOptions()
	projects, _, _ := builder.Build(&options)
	require.Len(t, projects, 4)

	assert.Equal(t, base.NewStringSet("Ship"), projects[0].Configurations)
	assert.Equal(t, base.NewStringSet("x64"), projects[0].Platforms)
	assert.Equal(t, base.NewStringSet("Debug", "Release"), projects[1].Configurations)
	assert.Equal(t, base.NewStringSet("Win32", "x64"), projects[1].Platforms)
	assert.Equal(t, base.NewStringSet("Profile"), projects[2].Configurations)
	assert.Equal(t, base.NewStringSet("ARM64"), projects[2].Platforms)
	assert.Equal(t, base.NewStringSet("Debug"), projects[3].Configurations)
	assert.Equal(t, base.NewStringSet("AnyCPU"), projects[3].Platforms)

	options = NewOptions(OptionConfigurations("Checked"), OptionPlatforms("x86"))
	projects, _, _ = builder.Build(&options)
	assert.Equal(t, base.NewStringSet("Checked"), projects[3].Configurations)
	assert.Equal(t, base.NewStringSet("x86"), projects[3].Platforms)
}

func TestAxisRemapBuilderKeepsFirstConflictingAssociation(t *testing.T) {
	builder := NewAxisRemapBuilder()
	require.NoError(t, builder.Add(
		ProjectMetadata{FullPath: "a.csproj", OriginalPlatform: "AnyCPU", Platform: "x86"},
		ProjectMetadata{FullPath: "a.csproj", OriginalPlatform: "AnyCPU", Platform: "x64"},
		ProjectMetadata{FullPath: "a.csproj", OriginalPlatform: "", Platform: "ARM64"},
		ProjectMetadata{FullPath: "a.csproj", OriginalConfiguration: "Release", Configuration: " "},
	))
	assert.Equal(t, 1, builder.Len())

	options := NewOptions()
	_, configurationMap, platformMap := builder.Build(&options)
	assert.Equal(t, AxisRemap{"AnyCPU": "x86"}, platformMap["a.csproj"])
	assert.Empty(t, configurationMap["a.csproj"])
}

func TestProjectIdentityResolution(t *testing.T) {
	typeGuid := "{00D1A9C2-B5F0-4AF3-8072-F6C62B433612}"
	builder := NewAxisRemapBuilder()
	require.NoError(t, builder.Add(
		ProjectMetadata{FullPath: "legacy.csproj", UsingMicrosoftNETSdk: "false"},
		ProjectMetadata{FullPath: "literal.sqlproj", ProjectTypeGuid: typeGuid, Name: "Database"},
		ProjectMetadata{FullPath: "literal.sqlproj", ProjectTypeGuid: "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}", Name: "Other"},
		ProjectMetadata{FullPath: "invalid.fsproj", ProjectTypeGuid: "garbage", ProjectGuid: "garbage"},
	))

	options := NewOptions()
	projects, _, _ := builder.Build(&options)
	require.Len(t, projects, 3)

	assert.Equal(t, DefaultLegacyProjectTypeGuid, projects[0].ProjectTypeGuid)
	assert.Equal(t, MustParseGuid(typeGuid), projects[1].ProjectTypeGuid)
	assert.Equal(t, "Database", projects[1].Name)
	assert.Equal(t, MustParseGuid("F2A71F9B-5D33-465A-A702-920D77279786"), projects[2].ProjectTypeGuid)
	assert.Equal(t, GUID_POLICY_DETERMINISTIC.NewGuid(GUID_KIND_PROJECT, "invalid.fsproj"), projects[2].ProjectGuid)
}

func TestDuplicateProjectGuidIsRegenerated(t *testing.T) {
	literal := "{B3A1C1C9-3F0C-4E55-9E48-7B39A8C6C001}"
	solution, err := NewSolutionFromMetadata(testOptions(), []ProjectMetadata{
		{FullPath: "a.csproj", ProjectGuid: literal},
		{FullPath: "b.csproj", ProjectGuid: literal},
	}, nil)
	require.NoError(t, err)
	require.Len(t, solution.Projects, 2)

	assert.Equal(t, MustParseGuid(literal), solution.Projects[0].ProjectGuid)
	assert.NotEqual(t, solution.Projects[0].ProjectGuid, solution.Projects[1].ProjectGuid)
	assert.True(t, solution.Projects[1].ProjectGuid.Valid())
}

func TestProjectFoldersAndItemsShareTheRegistry(t *testing.T) {
	solution, err := NewSolutionFromMetadata(testOptions(OptionFolderHierarchy(true)), []ProjectMetadata{
		{FullPath: "tools/gen.csproj", SolutionFolder: "Build/Tools"},
	}, []SolutionItemMetadata{
		{FullPath: "build.props", SolutionFolder: `Build`},
		{FullPath: "README.md"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{`Build`, FolderDefaultName, `Build\Tools`}, folderPaths(solution.Folders))
	assert.Equal(t, `Build\Tools`, solution.Projects[0].SolutionFolder)

	build, _ := solution.Folders.Find("Build")
	assert.Same(t, build, solution.SolutionItems[0].Folder)
}

func TestSortProjects(t *testing.T) {
	solution, err := NewSolutionFromMetadata(testOptions(func(o *Options) { o.SortProjects = true }), []ProjectMetadata{
		{FullPath: "b/B.csproj"}, {FullPath: "A/A.csproj"}, {FullPath: "a/C.csproj"},
	}, nil)
	require.NoError(t, err)

	var names []string
	for _, it := range solution.Projects {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"A", "C", "B"}, names)
}

func TestOptionsOutputFile(t *testing.T) {
	options := testOptions()
	options.Name = `C:\src\dirs.proj`
	assert.Equal(t, filepath.Join("out", "dirs.sln"), options.OutputFile())

	options.Name = "MySolution"
	assert.Equal(t, filepath.Join("out", "MySolution.sln"), options.OutputFile())
}

func TestParseVisualStudioMajorVersion(t *testing.T) {
	for version, major := range map[string]int{
		"16.0.28606.126": 16,
		"15.0":           15,
		"10.0.40219.1":   10,
		"17.8.34322":     17,
	} {
		n, err := ParseVisualStudioMajorVersion(version)
		require.NoError(t, err, version)
		assert.Equal(t, major, n, version)
	}
	for _, invalid := range []string{"", "16", "16.x", "1.2.3.4.5", "-1.0"} {
		_, err := ParseVisualStudioMajorVersion(invalid)
		assert.Error(t, err, invalid)
	}
}
