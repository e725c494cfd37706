package sln

import (
	"strings"

	"github.com/poppolopoppo/slngen/internal/base"
)

const (
	AXIS_DEFAULT_CONFIGURATION = "Debug"
	AXIS_DEFAULT_PLATFORM      = PLATFORM_ANYCPU
)

/***************************************
 * Metadata records
 ***************************************/

// ProjectMetadata is one evaluation of a project for an (OriginalConfiguration, OriginalPlatform) request.
// Field names follow MSBuild item metadata.
type ProjectMetadata struct {
	FullPath         string `json:"FullPath" yaml:"FullPath"`
	OriginalItemSpec string `json:"OriginalItemSpec,omitempty" yaml:"OriginalItemSpec,omitempty"`
	Name             string `json:"Name,omitempty" yaml:"Name,omitempty"`

	Configuration         string `json:"Configuration,omitempty" yaml:"Configuration,omitempty"`
	Platform              string `json:"Platform,omitempty" yaml:"Platform,omitempty"`
	OriginalConfiguration string `json:"OriginalConfiguration,omitempty" yaml:"OriginalConfiguration,omitempty"`
	OriginalPlatform      string `json:"OriginalPlatform,omitempty" yaml:"OriginalPlatform,omitempty"`

	Configurations       string `json:"Configurations,omitempty" yaml:"Configurations,omitempty"`
	Platforms            string `json:"Platforms,omitempty" yaml:"Platforms,omitempty"`
	ProjectConfiguration string `json:"ProjectConfiguration,omitempty" yaml:"ProjectConfiguration,omitempty"`

	ProjectGuid          string `json:"ProjectGuid,omitempty" yaml:"ProjectGuid,omitempty"`
	ProjectTypeGuid      string `json:"ProjectTypeGuid,omitempty" yaml:"ProjectTypeGuid,omitempty"`
	UsingMicrosoftNETSdk string `json:"UsingMicrosoftNETSdk,omitempty" yaml:"UsingMicrosoftNETSdk,omitempty"`

	SolutionFolder string `json:"SolutionFolder,omitempty" yaml:"SolutionFolder,omitempty"`
	DependsOn      string `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

type SolutionItemMetadata struct {
	FullPath       string `json:"FullPath" yaml:"FullPath"`
	SolutionFolder string `json:"SolutionFolder,omitempty" yaml:"SolutionFolder,omitempty"`
}

// IsSdkStyle defaults to true when the metadata is absent.
func (x *ProjectMetadata) IsSdkStyle() bool {
	return parseSdkStyle(x.UsingMicrosoftNETSdk)
}

func parseSdkStyle(value string) bool {
	if value = strings.TrimSpace(value); len(value) > 0 {
		return strings.EqualFold(value, "true")
	}
	return true
}

// ProjectConfigurationAxes splits "Debug|x64;Release|x64" into its configurations and platforms.
func ProjectConfigurationAxes(in string) (configurations, platforms base.StringSet) {
	for _, it := range base.SplitList(in, ";") {
		configuration, platform, _ := strings.Cut(it, "|")
		if configuration = strings.TrimSpace(configuration); len(configuration) > 0 {
			configurations.AppendUniq(configuration)
		}
		if platform = strings.TrimSpace(platform); len(platform) > 0 {
			platforms.AppendUniq(platform)
		}
	}
	return
}

/***************************************
 * AxisRemapBuilder
 ***************************************/

type projectAccumulator struct {
	FullPath string
	Records  int

	OriginalItemSpec string
	Name             string
	ProjectGuid      string
	ProjectTypeGuid  string
	IsSdkStyle       string
	SolutionFolder   string
	DependsOn        base.StringSet

	Configurations base.StringSet
	Platforms      base.StringSet

	PairConfigurations base.StringSet
	PairPlatforms      base.StringSet

	ObservedConfigurations base.StringSet
	ObservedPlatforms      base.StringSet

	ConfigurationMap AxisRemap
	PlatformMap      AxisRemap
}

func firstNonEmpty(dst *string, value string) {
	if len(*dst) == 0 {
		*dst = strings.TrimSpace(value)
	}
}

func (x *projectAccumulator) addRemap(axis string, remap AxisRemap, global, local string) {
	global, local = strings.TrimSpace(global), strings.TrimSpace(local)
	if len(global) == 0 || len(local) == 0 {
		return
	}
	if kept, ok := remap.Add(global, local); !ok {
		base.LogWarning(LogSln, "project %q maps %s %q to both %q and %q, keep %q",
			x.FullPath, axis, global, kept, local, kept)
	}
}

func (x *projectAccumulator) add(md *ProjectMetadata) {
	x.Records++

	firstNonEmpty(&x.OriginalItemSpec, md.OriginalItemSpec)
	firstNonEmpty(&x.Name, md.Name)
	firstNonEmpty(&x.ProjectGuid, md.ProjectGuid)
	firstNonEmpty(&x.ProjectTypeGuid, md.ProjectTypeGuid)
	firstNonEmpty(&x.IsSdkStyle, md.UsingMicrosoftNETSdk)
	firstNonEmpty(&x.SolutionFolder, md.SolutionFolder)
	x.DependsOn.AppendUniq(base.SplitList(md.DependsOn, ";")...)

	x.Configurations.AppendUniq(base.SplitList(md.Configurations, ";")...)
	x.Platforms.AppendUniq(base.SplitList(md.Platforms, ";")...)

	pairConfigurations, pairPlatforms := ProjectConfigurationAxes(md.ProjectConfiguration)
	x.PairConfigurations.AppendUniq(pairConfigurations...)
	x.PairPlatforms.AppendUniq(pairPlatforms...)

	if configuration := strings.TrimSpace(md.Configuration); len(configuration) > 0 {
		x.ObservedConfigurations.AppendUniq(configuration)
	}
	if platform := strings.TrimSpace(md.Platform); len(platform) > 0 {
		x.ObservedPlatforms.AppendUniq(platform)
	}

	x.addRemap("configuration", x.ConfigurationMap, md.OriginalConfiguration, md.Configuration)
	x.addRemap("platform", x.PlatformMap, md.OriginalPlatform, md.Platform)
}

func defaultAxis(candidates ...base.StringSet) base.StringSet {
	for _, it := range candidates {
		if it.Len() > 0 {
			return base.NewStringSet(it...)
		}
	}
	base.UnreachableCode()
	return nil
}

func (x *projectAccumulator) build(options *Options) *Project {
	project := &Project{
		FullPath:          x.FullPath,
		OriginalItemSpec:  x.OriginalItemSpec,
		Name:              x.Name,
		ProjectGuid:       ResolveProjectGuid(x.ProjectGuid, x.FullPath, options.GuidPolicy),
		SolutionFolder:    NormalizeFolderPath(x.SolutionFolder),
		DependingProjects: x.DependsOn,
	}

	if len(project.Name) == 0 {
		filename := ProjectFilename(x.FullPath)
		project.Name = strings.TrimSuffix(filename, ProjectExtension(filename))
	}

	if id, err := ParseGuid(x.ProjectTypeGuid); len(x.ProjectTypeGuid) > 0 && err == nil && id.Valid() {
		project.ProjectTypeGuid = id
	} else {
		project.ProjectTypeGuid = ResolveProjectTypeGuid(project.Extension(), parseSdkStyle(x.IsSdkStyle), options.ProjectTypeGuids)
	}

	project.Configurations = defaultAxis(
		x.Configurations,
		x.PairConfigurations,
		x.ObservedConfigurations,
		options.Configurations,
		base.NewStringSet(AXIS_DEFAULT_CONFIGURATION))
	project.Platforms = defaultAxis(
		x.Platforms,
		x.PairPlatforms,
		x.ObservedPlatforms,
		options.Platforms,
		base.NewStringSet(AXIS_DEFAULT_PLATFORM))

	return project
}

// AxisRemapBuilder folds metadata records sharing a project path into one project and its remaps.
type AxisRemapBuilder struct {
	projects []*projectAccumulator
	byPath   map[string]*projectAccumulator
}

func NewAxisRemapBuilder() *AxisRemapBuilder {
	return &AxisRemapBuilder{
		byPath: make(map[string]*projectAccumulator),
	}
}

func (x *AxisRemapBuilder) Len() int { return len(x.projects) }

func (x *AxisRemapBuilder) Add(records ...ProjectMetadata) error {
	for i := range records {
		md := &records[i]

		fullPath := strings.TrimSpace(md.FullPath)
		if len(fullPath) == 0 {
			return NewConfigurationError("FullPath", "project metadata record #%d has no FullPath", i)
		}

		acc, ok := x.byPath[projectKey(fullPath)]
		if !ok {
			acc = &projectAccumulator{
				FullPath:         fullPath,
				ConfigurationMap: make(AxisRemap),
				PlatformMap:      make(AxisRemap),
			}
			x.projects = append(x.projects, acc)
			x.byPath[projectKey(fullPath)] = acc
		}
		acc.add(md)
	}
	return nil
}

// Build returns projects in first-seen order, with remaps keyed by project path.
func (x *AxisRemapBuilder) Build(options *Options) (projects []*Project, configurationMap, platformMap map[string]AxisRemap) {
	projects = make([]*Project, 0, len(x.projects))
	configurationMap = make(map[string]AxisRemap, len(x.projects))
	platformMap = make(map[string]AxisRemap, len(x.projects))

	for _, acc := range x.projects {
		project := acc.build(options)
		base.LogVeryVerbose(LogSln, "project %q merged from %d record(s): configurations=%v platforms=%v",
			project.FullPath, acc.Records, project.Configurations, project.Platforms)

		projects = append(projects, project)
		configurationMap[project.FullPath] = acc.ConfigurationMap
		platformMap[project.FullPath] = acc.PlatformMap
	}
	return
}

/***************************************
 * Solution assembly
 ***************************************/

func NewItem(fullPath, solutionFolder string) *Item {
	item := &Item{FullPath: fullPath}
	if path := NormalizeFolderPath(solutionFolder); len(path) > 0 {
		item.Folder = &Folder{FullPath: path}
	}
	return item
}

// NewSolutionFromMetadata validates the inputs and runs the whole assembly pass.
func NewSolutionFromMetadata(options Options, projects []ProjectMetadata, items []SolutionItemMetadata) (*Solution, error) {
	defer base.LogBenchmark(LogSln, "assemble solution %q", options.Name).Close()

	if err := options.Validate(); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, NewConfigurationError("Projects", "missing project metadata")
	}

	builder := NewAxisRemapBuilder()
	if err := builder.Add(projects...); err != nil {
		return nil, err
	}

	solution := NewSolution(options)

	solutionItems := make([]*Item, 0, len(items))
	for i, it := range items {
		if len(strings.TrimSpace(it.FullPath)) == 0 {
			return nil, NewConfigurationError("FullPath", "solution item #%d has no FullPath", i)
		}
		solutionItems = append(solutionItems, NewItem(strings.TrimSpace(it.FullPath), it.SolutionFolder))
	}
	solution.AddSolutionItems(solutionItems...)

	slnProjects, configurationMap, platformMap := builder.Build(&solution.Options)
	solution.AddProjects(slnProjects...)
	for path, remap := range configurationMap {
		solution.SetAxisRemap(path, remap, platformMap[path])
	}

	if options.SortProjects {
		solution.SortProjects()
	}

	base.LogVerbose(LogSln, "solution %q has %d project(s), %d item(s) and %d folder(s) from %d record(s)",
		options.Name, len(solution.Projects), len(solution.SolutionItems), solution.Folders.Len(), len(projects))
	return solution, nil
}
