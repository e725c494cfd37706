package sln

import (
	"io"

	"github.com/poppolopoppo/slngen/internal/base"
)

/***************************************
 * Solution serializer
 ***************************************/

type countingWriter struct {
	io.Writer
	written int64
}

func (x *countingWriter) Write(p []byte) (n int, err error) {
	n, err = x.Writer.Write(p)
	x.written += int64(n)
	return
}

// WriteTo renders the solution in the text format read by Visual Studio.
func (x *Solution) WriteTo(dst io.Writer) (int64, error) {
	flags := base.STRUCTUREDFILE_NONE
	if x.Options.CRLF {
		flags |= base.STRUCTUREDFILE_CRLF
	}

	counter := &countingWriter{Writer: dst}
	err := x.Serialize(base.NewStructuredFile(counter, base.STRUCTUREDFILE_DEFAULT_TAB, flags))
	return counter.written, err
}

func (x *Solution) Serialize(sln *base.StructuredFile) error {
	options := x.Options
	options.applyDefaults()

	majorVersion, err := ParseVisualStudioMajorVersion(options.VisualStudioVersion)
	if err != nil {
		return NewConfigurationError("VisualStudioVersion", "%v", err)
	}

	// headers
	sln.Println("Microsoft Visual Studio Solution File, Format Version %s", options.FileFormatVersion)
	if majorVersion >= 16 {
		sln.Println("# Visual Studio Version %d", majorVersion)
	} else {
		sln.Println("# Visual Studio %d", majorVersion)
	}
	sln.Println("VisualStudioVersion = %s", options.VisualStudioVersion)
	sln.Println("MinimumVisualStudioVersion = %s", options.MinimumVisualStudioVersion)

	x.serializeProjects(sln)
	x.serializeFolders(sln)

	// global
	sln.Println("Global")
	sln.BeginIndent()

	x.serializeSolutionConfigurationPlatforms(sln)
	x.serializeProjectConfigurationPlatforms(sln)
	if options.FolderHierarchy {
		x.serializeNestedProjects(sln)
	}

	// footer
	sln.EndIndent()
	sln.Println("EndGlobal")

	return sln.Err()
}

func (x *Solution) canonicalizePath(path string) string {
	if x.Options.RelativePaths {
		return CanonicalizePath(x.Options.OutputDir, path)
	}
	return path
}

func (x *Solution) serializeProjects(sln *base.StructuredFile) {
	for _, project := range x.Projects {
		sln.Println("Project(\"%v\") = \"%s\", \"%s\", \"%v\"",
			project.ProjectTypeGuid, project.Name, x.canonicalizePath(project.FullPath), project.ProjectGuid)
		sln.BeginIndent()

		// dependencies
		if dependencyGuids := x.ResolveDependencies(project); len(dependencyGuids) > 0 {
			sln.Println("ProjectSection(ProjectDependencies) = postProject")
			sln.BeginIndent()
			for _, guid := range dependencyGuids {
				sln.Println("%v = %v", guid, guid)
			}
			sln.EndIndent()
			sln.Println("EndProjectSection")
		}

		sln.EndIndent()
		sln.Println("EndProject")
	}
}

func (x *Solution) serializeFolders(sln *base.StructuredFile) {
	hierarchy := x.Options.FolderHierarchy
	if len(x.SolutionItems) == 0 && !hierarchy {
		return
	}

	for _, folder := range x.Folders.Folders() {
		items := x.FolderItems(folder)
		if len(items) == 0 && !hierarchy {
			continue
		}

		sln.Println("Project(\"%v\") = \"%s\", \"%s\", \"%v\"",
			FolderProjectTypeGuid, folder.Name, folder.Name, folder.FolderGuid)
		sln.BeginIndent()

		if len(items) > 0 {
			sln.Println("ProjectSection(SolutionItems) = preProject")
			sln.BeginIndent()
			for _, item := range items {
				path := x.canonicalizePath(item.FullPath)
				sln.Println("%s = %s", path, path)
			}
			sln.EndIndent()
			sln.Println("EndProjectSection")
		}

		sln.EndIndent()
		sln.Println("EndProject")
	}
}

func (x *Solution) serializeSolutionConfigurationPlatforms(sln *base.StructuredFile) {
	sln.Println("GlobalSection(SolutionConfigurationPlatforms) = preSolution")
	sln.BeginIndent()

	for _, pair := range SolutionConfigurationPairs(x.GlobalConfigurations(), x.GlobalPlatforms()) {
		sln.Println("%v = %v", pair, pair)
	}

	sln.EndIndent()
	sln.Println("EndGlobalSection")
}

func (x *Solution) serializeProjectConfigurationPlatforms(sln *base.StructuredFile) {
	sln.Println("GlobalSection(ProjectConfigurationPlatforms) = postSolution")
	sln.BeginIndent()

	configurations, platforms := x.GlobalConfigurations(), x.GlobalPlatforms()
	for _, project := range x.Projects {
		pairs := ResolveProjectConfigurationPairs(project, configurations, platforms,
			x.ConfigurationMap[project.FullPath], x.PlatformMap[project.FullPath])

		for _, it := range pairs {
			sln.Println("%v.%v.ActiveCfg = %s|%s", project.ProjectGuid, it.Solution,
				it.Project.Configuration, RenderProjectPlatform(it.Project.Platform))
			sln.Println("%v.%v.Build.0 = %s|%s", project.ProjectGuid, it.Solution,
				it.Project.Configuration, RenderProjectPlatform(it.Project.Platform))
		}
	}

	sln.EndIndent()
	sln.Println("EndGlobalSection")
}

func (x *Solution) serializeNestedProjects(sln *base.StructuredFile) {
	started := false
	nested := func(child, parent Guid) {
		if !started {
			started = true
			sln.Println("GlobalSection(NestedProjects) = preSolution")
			sln.BeginIndent()
		}
		sln.Println("%v = %v", child, parent)
	}

	for _, folder := range x.Folders.Folders() {
		if parentPath := folder.ParentPath(); len(parentPath) > 0 {
			parent, ok := x.Folders.Find(parentPath)
			base.Assert(func() bool { return ok })
			nested(folder.FolderGuid, parent.FolderGuid)
		}
		for _, project := range x.FolderProjects(folder) {
			nested(project.ProjectGuid, folder.FolderGuid)
		}
	}

	if started {
		sln.EndIndent()
		sln.Println("EndGlobalSection")
	}
}
