package sln

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/poppolopoppo/slngen/internal/base"
)

var LogSln = base.NewLogCategory("Sln")

/***************************************
 * Guid
 ***************************************/

// Guid is rendered the way Visual Studio writes it in solutions: {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}
type Guid uuid.UUID

var NilGuid Guid

func ParseGuid(literal string) (Guid, error) {
	id, err := uuid.Parse(strings.TrimSpace(literal))
	return Guid(id), err
}
func MustParseGuid(literal string) Guid {
	id, err := ParseGuid(literal)
	base.LogPanicIfFailed(LogSln, err)
	return id
}

func (x Guid) Valid() bool { return x != NilGuid }
func (x Guid) String() string {
	return "{" + strings.ToUpper(uuid.UUID(x).String()) + "}"
}
func (x *Guid) Set(in string) (err error) {
	*x, err = ParseGuid(in)
	return
}
func (x Guid) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *Guid) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * GuidPolicy
 ***************************************/

type GuidPolicy int32

const (
	// GUID_POLICY_DETERMINISTIC hashes the normalized path, so the same input always yields the same solution
	GUID_POLICY_DETERMINISTIC GuidPolicy = iota
	// GUID_POLICY_RANDOM draws a fresh version 4 GUID for every generation
	GUID_POLICY_RANDOM
)

func GuidPolicies() []GuidPolicy {
	return []GuidPolicy{
		GUID_POLICY_DETERMINISTIC,
		GUID_POLICY_RANDOM,
	}
}
func (x GuidPolicy) String() string {
	switch x {
	case GUID_POLICY_DETERMINISTIC:
		return "deterministic"
	case GUID_POLICY_RANDOM:
		return "random"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *GuidPolicy) Set(in string) error {
	for _, it := range GuidPolicies() {
		if strings.EqualFold(in, it.String()) {
			*x = it
			return nil
		}
	}
	return base.MakeUnexpectedValueError(x, in)
}
func (x GuidPolicy) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *GuidPolicy) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

type GuidKind string

const (
	GUID_KIND_PROJECT GuidKind = "project"
	GUID_KIND_FOLDER  GuidKind = "folder"
)

// NewGuid creates a GUID for an entity identified by its kind and its path.
func (x GuidPolicy) NewGuid(kind GuidKind, path string) Guid {
	switch x {
	case GUID_POLICY_DETERMINISTIC:
		return Guid(base.StringFingerprint(string(kind) + ":" + path).Uuid())
	case GUID_POLICY_RANDOM:
		return Guid(uuid.New())
	default:
		base.UnexpectedValue(x)
		return NilGuid
	}
}

/***************************************
 * GuidResolver
 ***************************************/

// ResolveProjectGuid keeps a syntactically valid literal, or creates a new GUID with the given policy.
func ResolveProjectGuid(literal, path string, policy GuidPolicy) Guid {
	if len(literal) > 0 {
		if id, err := ParseGuid(literal); err == nil && id.Valid() {
			return id
		}
		base.LogVerbose(LogSln, "ignore invalid project guid %q for %q", literal, path)
	}
	return policy.NewGuid(GUID_KIND_PROJECT, projectKey(path))
}

var (
	FolderProjectTypeGuid        = MustParseGuid("{2150E333-8FDC-42A3-9474-1A3956D46DE8}")
	DefaultLegacyProjectTypeGuid = MustParseGuid("FAE04EC0-301F-11D3-BF4B-00C04F79EFBC")
	DefaultNetSdkProjectTypeGuid = MustParseGuid("9A19103F-16F7-4668-BE54-9A1E7A4F7556")
)

// keys are lower case extensions
var (
	knownProjectTypeGuids = map[string]Guid{
		".ccproj":     MustParseGuid("151D2E53-A2C4-4D7D-83FE-D05416EBD58E"),
		".fsproj":     MustParseGuid("F2A71F9B-5D33-465A-A702-920D77279786"),
		".nativeproj": MustParseGuid("8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942"),
		".nuproj":     MustParseGuid("FF286327-C783-4F7A-AB73-9BCBAD0D4460"),
		".vcproj":     MustParseGuid("8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942"),
		".vcxproj":    MustParseGuid("8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942"),
		".vjsproj":    MustParseGuid("E6FDF86B-F3D1-11D4-8576-0002A516ECE8"),
		".wixproj":    MustParseGuid("930C7802-8A8C-48F9-8165-68863BCCD9DD"),
	}
	knownNetSdkProjectTypeGuids = map[string]Guid{
		"":        DefaultNetSdkProjectTypeGuid,
		".csproj": DefaultNetSdkProjectTypeGuid,
		".vbproj": MustParseGuid("778DAE3C-4631-46EA-AA77-85C1314464D9"),
	}
	knownLegacyProjectTypeGuids = map[string]Guid{
		"":        DefaultLegacyProjectTypeGuid,
		".csproj": DefaultLegacyProjectTypeGuid,
		".vbproj": MustParseGuid("F184B08F-C81C-45F6-A57F-5ABD9991F28F"),
	}
)

// ProjectTypeGuids maps a project file extension to a type GUID, ignoring case.
type ProjectTypeGuids map[string]Guid

func (x ProjectTypeGuids) Find(extension string) (Guid, bool) {
	if id, ok := x[extension]; ok {
		return id, true
	}
	for ext, id := range x {
		if strings.EqualFold(ext, extension) {
			return id, true
		}
	}
	return NilGuid, false
}

// String renders the overrides as ".ext=guid;.ext=guid", sorted by extension.
func (x ProjectTypeGuids) String() string {
	var sb strings.Builder
	for i, ext := range base.SortedKeys(x) {
		if i > 0 {
			sb.WriteRune(';')
		}
		sb.WriteString(ext)
		sb.WriteRune('=')
		sb.WriteString(x[ext].String())
	}
	return sb.String()
}

// Set parses ".ext=guid" associations separated by ';', which can be repeated on the command-line.
func (x *ProjectTypeGuids) Set(in string) error {
	if *x == nil {
		*x = make(ProjectTypeGuids)
	}
	for _, it := range base.SplitList(in, ";") {
		ext, literal, ok := strings.Cut(it, "=")
		if !ok {
			return base.MakeError("invalid project type guid override %q, expected \".ext=guid\"", it)
		}
		id, err := ParseGuid(literal)
		if err != nil {
			return base.MakeError("invalid project type guid override %q: %v", it, err)
		}
		ext = strings.TrimSpace(ext)
		if len(ext) > 0 && ext[0] != '.' {
			ext = "." + ext
		}
		(*x)[strings.ToLower(ext)] = id
	}
	return nil
}

// ResolveProjectTypeGuid never fails: overrides, then fixed kinds, then SDK style or legacy tables with their default.
func ResolveProjectTypeGuid(extension string, isSdkStyle bool, overrides ProjectTypeGuids) Guid {
	if id, ok := overrides.Find(extension); ok {
		return id
	}

	extension = strings.ToLower(extension)
	if id, ok := knownProjectTypeGuids[extension]; ok {
		return id
	}

	if isSdkStyle {
		if id, ok := knownNetSdkProjectTypeGuids[extension]; ok {
			return id
		}
		return DefaultNetSdkProjectTypeGuid
	}

	if id, ok := knownLegacyProjectTypeGuids[extension]; ok {
		return id
	}
	return DefaultLegacyProjectTypeGuid
}

// ProjectExtension accepts both '/' and '\' separators, project paths are often Windows paths.
func ProjectExtension(path string) string {
	return filepath.Ext(ProjectFilename(path))
}
func ProjectFilename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
