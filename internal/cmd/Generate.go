package cmd

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/internal/io"
	"github.com/poppolopoppo/slngen/sln"
	"github.com/poppolopoppo/slngen/utils"
)

/***************************************
 * Generate flags
 ***************************************/

type GenerateFlags struct {
	Manifests utils.FileSet

	Name      utils.StringVar
	OutputDir utils.Directory

	Configurations base.StringSet
	Platforms      base.StringSet

	FileFormatVersion          utils.StringVar
	VisualStudioVersion        utils.StringVar
	MinimumVisualStudioVersion utils.StringVar

	FolderHierarchy  utils.BoolVar
	GuidPolicy       sln.GuidPolicy
	ProjectTypeGuids sln.ProjectTypeGuids

	RelativePaths utils.BoolVar
	SortProjects  utils.BoolVar
	CRLF          utils.BoolVar
	BOM           utils.BoolVar
	Atomic        utils.BoolVar
	Force         utils.BoolVar

	Config utils.Filename
}

func NewGenerateFlags() *GenerateFlags {
	return &GenerateFlags{
		FileFormatVersion:          sln.SlnDefaultFileFormatVersion,
		VisualStudioVersion:        sln.SlnDefaultVisualStudioVersion,
		MinimumVisualStudioVersion: sln.SlnDefaultMinimumVisualStudioVersion,
		GuidPolicy:                 sln.GUID_POLICY_DETERMINISTIC,
		CRLF:                       true,
		BOM:                        true,
		Atomic:                     true,
	}
}

func (x *GenerateFlags) Flags(cfv utils.CommandFlagsVisitor) {
	cfv.Variable("Manifest", "project metadata manifest, can be repeated", &x.Manifests)
	cfv.Variable("Name", "solution name, any extension is replaced by .sln", &x.Name)
	cfv.Variable("OutputDir", "directory where the solution is written", &x.OutputDir)
	cfv.Variable("Configurations", "solution configurations, overrides the ones found in metadata", &x.Configurations)
	cfv.Variable("Platforms", "solution platforms, overrides the ones found in metadata", &x.Platforms)
	cfv.Variable("FileFormatVersion", "solution file format version", &x.FileFormatVersion)
	cfv.Variable("VisualStudioVersion", "VisualStudioVersion written in the header", &x.VisualStudioVersion)
	cfv.Variable("MinimumVisualStudioVersion", "MinimumVisualStudioVersion written in the header", &x.MinimumVisualStudioVersion)
	cfv.Variable("FolderHierarchy", "nest solution folders instead of flattening them", &x.FolderHierarchy)
	cfv.Variable("GuidPolicy", "how missing GUIDs are generated ["+base.JoinString("|", sln.GuidPolicies()...)+"]", &x.GuidPolicy)
	cfv.Variable("ProjectTypeGuids", "override project type GUIDs per extension, as .ext=guid", &x.ProjectTypeGuids)
	cfv.Variable("RelativePaths", "write project paths relative to the solution directory", &x.RelativePaths)
	cfv.Variable("SortProjects", "sort projects by path before writing", &x.SortProjects)
	cfv.Variable("CRLF", "use Windows line endings", &x.CRLF)
	cfv.Variable("BOM", "prefix the solution with an UTF-8 byte order mark", &x.BOM)
	cfv.Variable("Atomic", "write to a temporary file, then rename it over the solution", &x.Atomic)
	cfv.Variable("Force", "rewrite the solution even when its content did not change", &x.Force)
	cfv.Variable("Config", "optional HCL config file, "+EnvPrefix+"* environment variables override it", &x.Config)
}

func (x *GenerateFlags) Options() sln.Options {
	return sln.Options{
		Name:                       x.Name.Get(),
		OutputDir:                  x.OutputDir.String(),
		Configurations:             x.Configurations,
		Platforms:                  x.Platforms,
		FileFormatVersion:          x.FileFormatVersion.Get(),
		VisualStudioVersion:        x.VisualStudioVersion.Get(),
		MinimumVisualStudioVersion: x.MinimumVisualStudioVersion.Get(),
		FolderHierarchy:            x.FolderHierarchy.Get(),
		GuidPolicy:                 x.GuidPolicy,
		ProjectTypeGuids:           x.ProjectTypeGuids,
		RelativePaths:              x.RelativePaths.Get(),
		CRLF:                       x.CRLF.Get(),
		SortProjects:               x.SortProjects.Get(),
	}
}

func (x *GenerateFlags) WriterOptions() []io.SlnWriterOptionFunc {
	return []io.SlnWriterOptionFunc{
		io.OptionSlnWriterBOM(x.BOM.Get()),
		io.OptionSlnWriterAtomic(x.Atomic.Get()),
		io.OptionSlnWriterForce(x.Force.Get()),
	}
}

/***************************************
 * Generate config (HCL file and environment)
 ***************************************/

// GenerateConfig only holds what was set, zero values leave the lower layer untouched.
type GenerateConfig struct {
	Manifests []string `hcl:"manifests,optional" env:"MANIFESTS" envSeparator:";"`

	Name      string `hcl:"name,optional" env:"NAME"`
	OutputDir string `hcl:"output_dir,optional" env:"OUTPUT_DIR"`

	Configurations []string `hcl:"configurations,optional" env:"CONFIGURATIONS" envSeparator:";"`
	Platforms      []string `hcl:"platforms,optional" env:"PLATFORMS" envSeparator:";"`

	FileFormatVersion          string `hcl:"file_format_version,optional" env:"FILE_FORMAT_VERSION"`
	VisualStudioVersion        string `hcl:"visual_studio_version,optional" env:"VISUAL_STUDIO_VERSION"`
	MinimumVisualStudioVersion string `hcl:"minimum_visual_studio_version,optional" env:"MINIMUM_VISUAL_STUDIO_VERSION"`

	FolderHierarchy  *bool            `hcl:"folder_hierarchy,optional" env:"FOLDER_HIERARCHY"`
	GuidPolicy       string            `hcl:"guid_policy,optional" env:"GUID_POLICY"`
	ProjectTypeGuids map[string]string `hcl:"project_type_guids,optional" env:"PROJECT_TYPE_GUIDS" envSeparator:";" envKeyValSeparator:"="`

	RelativePaths *bool `hcl:"relative_paths,optional" env:"RELATIVE_PATHS"`
	SortProjects  *bool `hcl:"sort_projects,optional" env:"SORT_PROJECTS"`
	CRLF          *bool `hcl:"crlf,optional" env:"CRLF"`
	BOM           *bool `hcl:"bom,optional" env:"BOM"`
	Atomic        *bool `hcl:"atomic,optional" env:"ATOMIC"`
	Force         *bool `hcl:"force,optional" env:"FORCE"`

	// only read from environment, a config file can't include another one
	Config string `env:"CONFIG"`
}

// ApplyTo overrides flags with every value set, relative paths are resolved from root.
func (x *GenerateConfig) ApplyTo(flags *GenerateFlags, root utils.Directory) error {
	var errs []error
	for _, it := range x.Manifests {
		errs = append(errs, flags.Manifests.Set(resolvePath(root, it)))
	}

	errs = append(errs,
		applyString(&flags.Name, x.Name),
		applyString(&flags.OutputDir, resolvePath(root, x.OutputDir)),
		applyList(&flags.Configurations, x.Configurations),
		applyList(&flags.Platforms, x.Platforms),
		applyString(&flags.FileFormatVersion, x.FileFormatVersion),
		applyString(&flags.VisualStudioVersion, x.VisualStudioVersion),
		applyString(&flags.MinimumVisualStudioVersion, x.MinimumVisualStudioVersion),
		applyString(&flags.GuidPolicy, x.GuidPolicy))

	for _, ext := range base.SortedKeys(x.ProjectTypeGuids) {
		errs = append(errs, flags.ProjectTypeGuids.Set(ext+"="+x.ProjectTypeGuids[ext]))
	}

	applyBool(&flags.FolderHierarchy, x.FolderHierarchy)
	applyBool(&flags.RelativePaths, x.RelativePaths)
	applyBool(&flags.SortProjects, x.SortProjects)
	applyBool(&flags.CRLF, x.CRLF)
	applyBool(&flags.BOM, x.BOM)
	applyBool(&flags.Atomic, x.Atomic)
	applyBool(&flags.Force, x.Force)

	return errors.Join(errs...)
}

// LoadGenerateFlags layers defaults, then config file, then environment, then command-line switches.
func LoadGenerateFlags(cc utils.CommandContext) (*GenerateFlags, error) {
	var fromCommandLine GenerateFlags
	if err := cc.ReplayFlags(&fromCommandLine); err != nil {
		return nil, err
	}

	var fromEnv GenerateConfig
	if err := utils.LoadEnvConfig(EnvPrefix, processEnvironment, &fromEnv); err != nil {
		return nil, err
	}

	result := NewGenerateFlags()

	configFile := fromCommandLine.Config
	if !configFile.Valid() && len(fromEnv.Config) > 0 {
		configFile = utils.UFS.File(fromEnv.Config)
	}
	if configFile.Valid() {
		var fromFile GenerateConfig
		if err := utils.LoadHclConfig(configFile, environ(), &fromFile); err != nil {
			return nil, err
		}
		if err := fromFile.ApplyTo(result, configFile.Dirname); err != nil {
			return nil, fmt.Errorf("config %q: %w", configFile, err)
		}
		base.LogVerbose(LogCmd, "loaded generate options from %q", configFile)
	}

	if err := fromEnv.ApplyTo(result, utils.UFS.Working); err != nil {
		return nil, fmt.Errorf("environment %s*: %w", EnvPrefix, err)
	}

	if err := cc.ReplayFlags(result); err != nil {
		return nil, err
	}
	return result, nil
}

/***************************************
 * Generate solution
 ***************************************/

// GenerateSolution reads every manifest, assembles the solution and writes it if its content changed.
func GenerateSolution(flags *GenerateFlags, manifests ...utils.Filename) (utils.Filename, io.SlnWriteResult, error) {
	if len(manifests) == 0 {
		return utils.Filename{}, io.SLN_WRITE_UNCHANGED, sln.NewConfigurationError("Manifests", "missing project metadata manifest")
	}

	manifest, err := io.ReadManifests(manifests...)
	if err != nil {
		return utils.Filename{}, io.SLN_WRITE_UNCHANGED, err
	}

	solution, err := sln.NewSolutionFromMetadata(flags.Options(), manifest.Projects, manifest.SolutionItems)
	if err != nil {
		return utils.Filename{}, io.SLN_WRITE_UNCHANGED, err
	}

	if base.IsLogLevelActive(base.LOG_VERYVERBOSE) {
		base.LogVeryVerbose(LogCmd, "configuration remaps:\n%s", spew.Sdump(solution.ConfigurationMap))
		base.LogVeryVerbose(LogCmd, "platform remaps:\n%s", spew.Sdump(solution.PlatformMap))
	}

	return io.WriteSolution(solution, flags.WriterOptions()...)
}

/***************************************
 * Generate command
 ***************************************/

type GenerateCommand struct {
	Flags  *GenerateFlags
	Inputs []utils.Filename
}

func (x *GenerateCommand) Init(cc utils.CommandContext) error {
	cc.Options(
		utils.OptionCommandParsableFlags("GenerateFlags", "solution generation options", x.Flags),
		utils.OptionCommandConsumeMany("manifest", "project metadata manifests (.json or .yaml, optionally .lz4 or .zst)", &x.Inputs, true))
	return nil
}

func (x *GenerateCommand) Run(cc utils.CommandContext) error {
	flags, err := LoadGenerateFlags(cc)
	if err != nil {
		return err
	}

	manifests := append(base.CopySlice(flags.Manifests...), x.Inputs...)
	output, result, err := GenerateSolution(flags, manifests...)
	if err != nil {
		return err
	}

	if result == io.SLN_WRITE_UNCHANGED {
		base.LogInfo(LogCmd, "solution %q is up-to-date", output)
	} else {
		base.LogClaim(LogCmd, "%v solution %q from %d manifest(s)", result, output, len(manifests))
	}
	return nil
}

var CommandGenerate = utils.NewCommandable(
	"Solution",
	"generate",
	"generate a Visual Studio solution from project metadata manifests (default command)",
	&GenerateCommand{Flags: NewGenerateFlags()})
