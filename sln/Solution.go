package sln

import (
	"sort"
	"strings"

	"github.com/poppolopoppo/slngen/internal/base"
)

/***************************************
 * Solution
 ***************************************/

// Solution is built once by an assembly pass, then serialized once.
type Solution struct {
	Options Options

	Projects      []*Project
	SolutionItems []*Item
	Folders       *FolderRegistry

	// project path -> remap of solution values to project values
	ConfigurationMap map[string]AxisRemap
	PlatformMap      map[string]AxisRemap

	projectsByPath map[string]*Project
}

func NewSolution(options Options) *Solution {
	return &Solution{
		Options:          options,
		Folders:          NewFolderRegistry(options.GuidPolicy),
		ConfigurationMap: make(map[string]AxisRemap),
		PlatformMap:      make(map[string]AxisRemap),
		projectsByPath:   make(map[string]*Project),
	}
}

// projectKey tolerates both separators, DependsOn lists are often written by hand.
// Deterministic project GUIDs are hashed from this key.
func projectKey(path string) string {
	return strings.ReplaceAll(path, "/", `\`)
}

func (x *Solution) FindProject(path string) (*Project, bool) {
	project, ok := x.projectsByPath[projectKey(path)]
	return project, ok
}

// AddProjects appends new projects and merges repeated paths into the project already known.
// Explicit solution folders are merged into the folder registry.
func (x *Solution) AddProjects(projects ...*Project) {
	for _, project := range projects {
		if existing, ok := x.FindProject(project.FullPath); ok {
			base.LogVeryVerbose(LogSln, "merge duplicate project %q", project.FullPath)
			existing.merge(project)
			x.mergeProjectFolder(existing)
			continue
		}

		key := projectKey(project.FullPath)
		project.ProjectGuid = x.Folders.ClaimGuid(GUID_KIND_PROJECT, key, project.ProjectGuid)

		x.Projects = append(x.Projects, project)
		x.projectsByPath[key] = project
		x.mergeProjectFolder(project)
	}
}

func (x *Solution) mergeProjectFolder(project *Project) {
	project.SolutionFolder = NormalizeFolderPath(project.SolutionFolder)
	if len(project.SolutionFolder) > 0 {
		x.Folders.MergePath(project.SolutionFolder)
	}
}

// AddSolutionItems attaches every item to the registered folder of the same path, creating it when missing.
// Items without folder are placed under "Solution Items".
func (x *Solution) AddSolutionItems(items ...*Item) {
	for _, item := range items {
		folderPath := FolderDefaultName
		if item.Folder != nil {
			x.Folders.Merge(item.Folder)
			if path := NormalizeFolderPath(item.Folder.FullPath); len(path) > 0 {
				folderPath = path
			}
		}

		item.Folder = x.Folders.MergePath(folderPath)
		x.SolutionItems = append(x.SolutionItems, item)
	}
}

// UpdateSolutionFolder merges external folders, without regenerating GUIDs of paths already registered.
func (x *Solution) UpdateSolutionFolder(folders ...*Folder) {
	x.Folders.Merge(folders...)
}

// SetAxisRemap replaces the remaps of a project, nil maps are left unset.
func (x *Solution) SetAxisRemap(path string, configurationMap, platformMap AxisRemap) {
	if configurationMap != nil {
		x.ConfigurationMap[path] = configurationMap
	}
	if platformMap != nil {
		x.PlatformMap[path] = platformMap
	}
}

func (x *Solution) SortProjects() {
	sort.SliceStable(x.Projects, func(i, j int) bool {
		return strings.ToLower(x.Projects[i].FullPath) < strings.ToLower(x.Projects[j].FullPath)
	})
}

func (x *Solution) GlobalConfigurations() base.StringSet {
	return DeriveGlobalAxis(x.Options.Configurations, x.Projects, projectConfigurations)
}
func (x *Solution) GlobalPlatforms() base.StringSet {
	return DeriveGlobalAxis(x.Options.Platforms, x.Projects, projectPlatforms)
}

func (x *Solution) ProjectConfigurationPairs(project *Project) []ProjectConfigurationPair {
	return ResolveProjectConfigurationPairs(project,
		x.GlobalConfigurations(), x.GlobalPlatforms(),
		x.ConfigurationMap[project.FullPath], x.PlatformMap[project.FullPath])
}

// ResolveDependencies returns the GUIDs of dependencies present in the solution, missing ones are omitted.
func (x *Solution) ResolveDependencies(project *Project) (result []Guid) {
	for _, path := range project.DependingProjects {
		if dep, ok := x.FindProject(path); ok {
			result = base.AppendUniq(result, dep.ProjectGuid)
		} else {
			base.LogVeryVerbose(LogSln, "project %q depends on %q, which is not part of the solution", project.FullPath, path)
		}
	}
	return
}

func (x *Solution) FolderItems(folder *Folder) (result []*Item) {
	for _, item := range x.SolutionItems {
		if item.Folder == folder {
			result = append(result, item)
		}
	}
	return
}

func (x *Solution) FolderProjects(folder *Folder) (result []*Project) {
	for _, project := range x.Projects {
		if project.SolutionFolder == folder.FullPath {
			result = append(result, project)
		}
	}
	return
}
