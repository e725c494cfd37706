package sln

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poppolopoppo/slngen/internal/base"
)

const (
	SlnDefaultFileFormatVersion          = "12.00"
	SlnDefaultVisualStudioVersion        = "16.0.28606.126" // Visual Studio 2019
	SlnDefaultMinimumVisualStudioVersion = "10.0.40219.1"   // Visual Studio Express 2010
)

/***************************************
 * ConfigurationError
 ***************************************/

// ConfigurationError reports invalid inputs, nothing is written when it is returned.
type ConfigurationError struct {
	Field  string
	Reason string
}

func NewConfigurationError(field, reason string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf(reason, args...),
	}
}
func (x *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid solution configuration: %s: %s", x.Field, x.Reason)
}

/***************************************
 * Options
 ***************************************/

type Options struct {
	// Name is the base name of the solution, any extension is replaced by .sln
	Name      string
	OutputDir string

	Configurations base.StringSet
	Platforms      base.StringSet

	FileFormatVersion          string
	VisualStudioVersion        string
	MinimumVisualStudioVersion string

	FolderHierarchy  bool
	GuidPolicy       GuidPolicy
	ProjectTypeGuids ProjectTypeGuids

	RelativePaths bool
	CRLF          bool
	SortProjects  bool
}

type OptionFunc = func(*Options)

func OptionName(name string) OptionFunc {
	return func(o *Options) { o.Name = name }
}
func OptionOutputDir(dir string) OptionFunc {
	return func(o *Options) { o.OutputDir = dir }
}
func OptionConfigurations(configurations ...string) OptionFunc {
	return func(o *Options) { o.Configurations = base.NewStringSet(configurations...) }
}
func OptionPlatforms(platforms ...string) OptionFunc {
	return func(o *Options) { o.Platforms = base.NewStringSet(platforms...) }
}
func OptionFolderHierarchy(enabled bool) OptionFunc {
	return func(o *Options) { o.FolderHierarchy = enabled }
}
func OptionGuidPolicy(policy GuidPolicy) OptionFunc {
	return func(o *Options) { o.GuidPolicy = policy }
}
func OptionRelativePaths(enabled bool) OptionFunc {
	return func(o *Options) { o.RelativePaths = enabled }
}
func OptionCRLF(enabled bool) OptionFunc {
	return func(o *Options) { o.CRLF = enabled }
}

func NewOptions(options ...OptionFunc) (result Options) {
	result.FileFormatVersion = SlnDefaultFileFormatVersion
	result.VisualStudioVersion = SlnDefaultVisualStudioVersion
	result.MinimumVisualStudioVersion = SlnDefaultMinimumVisualStudioVersion
	result.GuidPolicy = GUID_POLICY_DETERMINISTIC

	for _, opt := range options {
		opt(&result)
	}
	return
}

func (x *Options) applyDefaults() {
	if len(strings.TrimSpace(x.FileFormatVersion)) == 0 {
		x.FileFormatVersion = SlnDefaultFileFormatVersion
	}
	if len(strings.TrimSpace(x.VisualStudioVersion)) == 0 {
		x.VisualStudioVersion = SlnDefaultVisualStudioVersion
	}
	if len(strings.TrimSpace(x.MinimumVisualStudioVersion)) == 0 {
		x.MinimumVisualStudioVersion = SlnDefaultMinimumVisualStudioVersion
	}
}

// Validate applies defaults to blank versions, then checks the inputs needed before anything is written.
func (x *Options) Validate() error {
	x.applyDefaults()

	if len(strings.TrimSpace(x.Name)) == 0 {
		return NewConfigurationError("Name", "missing solution name")
	}
	if len(strings.TrimSpace(x.OutputDir)) == 0 {
		return NewConfigurationError("OutputDir", "missing output directory")
	}
	if _, err := ParseVisualStudioMajorVersion(x.VisualStudioVersion); err != nil {
		return NewConfigurationError("VisualStudioVersion", "%v", err)
	}
	if _, err := ParseVisualStudioMajorVersion(x.MinimumVisualStudioVersion); err != nil {
		return NewConfigurationError("MinimumVisualStudioVersion", "%v", err)
	}
	return nil
}

// OutputFile is "<OutputDir>/<Name without extension>.sln".
func (x *Options) OutputFile() string {
	name := ProjectFilename(x.Name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(x.OutputDir, name+".sln")
}

// ParseVisualStudioMajorVersion expects 2 to 4 numeric components, like "16.0.28606.126".
func ParseVisualStudioMajorVersion(version string) (int, error) {
	components := strings.Split(strings.TrimSpace(version), ".")
	if len(components) < 2 || len(components) > 4 {
		return 0, fmt.Errorf("unparsable version %q", version)
	}

	major := -1
	for i, it := range components {
		n, err := strconv.Atoi(it)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("unparsable version %q", version)
		}
		if i == 0 {
			major = n
		}
	}
	return major, nil
}
