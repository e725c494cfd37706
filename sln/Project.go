package sln

import (
	"github.com/poppolopoppo/slngen/internal/base"
)

/***************************************
 * Project
 ***************************************/

type Project struct {
	FullPath         string
	OriginalItemSpec string
	Name             string

	ProjectGuid     Guid
	ProjectTypeGuid Guid

	Configurations base.StringSet
	Platforms      base.StringSet

	// SolutionFolder is normalized with '\', empty when the project sits at the solution root
	SolutionFolder string

	// DependingProjects may reference projects absent from the solution
	DependingProjects base.StringSet
}

func (x *Project) String() string {
	return x.FullPath
}
func (x *Project) Extension() string {
	return ProjectExtension(x.FullPath)
}

// merge folds another description of the same project, first non-empty identity wins
func (x *Project) merge(other *Project) {
	base.Assert(func() bool { return x.FullPath == other.FullPath })

	if len(x.Name) == 0 {
		x.Name = other.Name
	}
	if len(x.OriginalItemSpec) == 0 {
		x.OriginalItemSpec = other.OriginalItemSpec
	}
	if len(x.SolutionFolder) == 0 {
		x.SolutionFolder = other.SolutionFolder
	}

	x.Configurations.AppendUniq(other.Configurations...)
	x.Platforms.AppendUniq(other.Platforms...)
	x.DependingProjects.AppendUniq(other.DependingProjects...)
}

/***************************************
 * Item
 ***************************************/

// Item is a file listed under a solution folder, the folder is shared with the registry.
type Item struct {
	FullPath string
	Folder   *Folder
}

func (x *Item) String() string {
	return x.FullPath
}
