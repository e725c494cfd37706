package sln

import (
	"strings"

	"github.com/poppolopoppo/slngen/internal/base"
)

/***************************************
 * AxisRemap
 ***************************************/

// AxisRemap maps a solution value to the project value, for one axis of one project.
type AxisRemap map[string]string

// Add keeps the first association seen for a solution value, ok is false on conflict.
func (x AxisRemap) Add(global, local string) (kept string, ok bool) {
	if previous, found := x[global]; found {
		return previous, previous == local
	}
	x[global] = local
	return local, true
}

// Resolve applies the explicit mapping, then identity when the project knows the value.
func (x AxisRemap) Resolve(global string, own base.StringSet) (string, bool) {
	if local, ok := x[global]; ok {
		return local, true
	}
	if own.Contains(global) {
		return global, true
	}
	return "", false
}

// String renders "global=local;..." sorted by solution value.
func (x AxisRemap) String() string {
	var sb strings.Builder
	for i, global := range base.SortedKeys(x) {
		if i > 0 {
			sb.WriteRune(';')
		}
		sb.WriteString(global)
		sb.WriteRune('=')
		sb.WriteString(x[global])
	}
	return sb.String()
}

/***************************************
 * Global axes
 ***************************************/

// DeriveGlobalAxis returns the explicit list when non-empty, else the ordered union of every project values.
func DeriveGlobalAxis(explicit base.StringSet, projects []*Project, values func(*Project) base.StringSet) (result base.StringSet) {
	if explicit.Len() > 0 {
		return explicit
	}
	for _, project := range projects {
		result.AppendUniq(values(project)...)
	}
	return
}

func projectConfigurations(p *Project) base.StringSet { return p.Configurations }
func projectPlatforms(p *Project) base.StringSet      { return p.Platforms }

/***************************************
 * Configuration pairs
 ***************************************/

const (
	PLATFORM_ANYCPU          = "AnyCPU"
	PLATFORM_ANYCPU_RENDERED = "Any CPU"
)

// RenderProjectPlatform inserts the space Visual Studio expects in project configuration values.
func RenderProjectPlatform(platform string) string {
	if platform == PLATFORM_ANYCPU {
		return PLATFORM_ANYCPU_RENDERED
	}
	return platform
}

type ConfigurationPair struct {
	Configuration string
	Platform      string
}

func (x ConfigurationPair) Blank() bool {
	return len(strings.TrimSpace(x.Configuration)) == 0 || len(strings.TrimSpace(x.Platform)) == 0
}
func (x ConfigurationPair) String() string {
	return x.Configuration + "|" + x.Platform
}

// SolutionConfigurationPairs is the cross product of both axes, configurations first, blanks skipped.
func SolutionConfigurationPairs(configurations, platforms base.StringSet) (result []ConfigurationPair) {
	result = make([]ConfigurationPair, 0, configurations.Len()*platforms.Len())
	for _, configuration := range configurations {
		for _, platform := range platforms {
			if pair := (ConfigurationPair{configuration, platform}); !pair.Blank() {
				result = append(result, pair)
			}
		}
	}
	return
}

type ProjectConfigurationPair struct {
	Solution ConfigurationPair
	Project  ConfigurationPair
}

// ResolveProjectConfigurationPairs lists the solution pairs a project can build, with its own values.
// A pair is dropped as soon as one of its axes does not resolve or resolves to a blank value.
func ResolveProjectConfigurationPairs(project *Project, configurations, platforms base.StringSet, configurationMap, platformMap AxisRemap) (result []ProjectConfigurationPair) {
	for _, solution := range SolutionConfigurationPairs(configurations, platforms) {
		configuration, ok := configurationMap.Resolve(solution.Configuration, project.Configurations)
		if !ok {
			continue
		}
		platform, ok := platformMap.Resolve(solution.Platform, project.Platforms)
		if !ok {
			continue
		}

		local := ConfigurationPair{Configuration: configuration, Platform: platform}
		if local.Blank() {
			continue
		}

		result = append(result, ProjectConfigurationPair{
			Solution: solution,
			Project:  local,
		})
	}
	return
}
