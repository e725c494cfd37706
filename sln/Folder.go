package sln

import (
	"fmt"
	"strings"

	"github.com/poppolopoppo/slngen/internal/base"
)

const FolderDefaultName = "Solution Items"

// FolderSeparator is the canonical separator of solution folder paths
const FolderSeparator = `\`

/***************************************
 * Folder
 ***************************************/

type Folder struct {
	FullPath   string
	Name       string
	FolderGuid Guid
}

func NewFolder(path string, guid Guid) *Folder {
	path = NormalizeFolderPath(path)
	return &Folder{
		FullPath:   path,
		Name:       path[strings.LastIndex(path, FolderSeparator)+1:],
		FolderGuid: guid,
	}
}

// ParentPath returns an empty string for root folders.
func (x *Folder) ParentPath() string {
	if i := strings.LastIndex(x.FullPath, FolderSeparator); i >= 0 {
		return x.FullPath[:i]
	}
	return ""
}
func (x *Folder) String() string {
	return x.FullPath
}

func splitFolderPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// NormalizeFolderPath converts both separators to '\' and drops empty segments.
func NormalizeFolderPath(path string) string {
	return strings.Join(splitFolderPath(path), FolderSeparator)
}

/***************************************
 * FolderRegistry
 ***************************************/

// FolderRegistry holds folders by normalized path, iterated in insertion order.
// It also owns the set of GUIDs claimed in the solution, by folders and projects alike.
type FolderRegistry struct {
	policy  GuidPolicy
	folders []*Folder
	byPath  map[string]*Folder
	guids   map[Guid]string
}

func NewFolderRegistry(policy GuidPolicy) *FolderRegistry {
	return &FolderRegistry{
		policy: policy,
		byPath: make(map[string]*Folder),
		guids:  make(map[Guid]string),
	}
}

// ClaimGuid reserves guid for the entity at path and returns it.
// An invalid guid is created with the registry policy, a taken one is regenerated with a salt.
func (x *FolderRegistry) ClaimGuid(kind GuidKind, path string, guid Guid) Guid {
	if !guid.Valid() {
		guid = x.policy.NewGuid(kind, path)
	}
	for salt := 1; ; salt++ {
		owner, ok := x.guids[guid]
		if !ok {
			break
		}
		previous := guid
		guid = x.policy.NewGuid(kind, fmt.Sprintf("%s#%d", path, salt))
		base.LogWarning(LogSln, "%s %q uses guid %v already taken by %q, regenerated as %v",
			kind, path, previous, owner, guid)
	}
	x.guids[guid] = path
	return guid
}

func (x *FolderRegistry) Len() int           { return len(x.folders) }
func (x *FolderRegistry) Folders() []*Folder { return x.folders }
func (x *FolderRegistry) Find(path string) (*Folder, bool) {
	folder, ok := x.byPath[NormalizeFolderPath(path)]
	return folder, ok
}

func (x *FolderRegistry) insert(folder *Folder) {
	x.folders = append(x.folders, folder)
	x.byPath[folder.FullPath] = folder
}

// MergePath registers every prefix of path, existing folders are kept untouched.
// Returns the folder matching the whole path, or nil when path has no segment.
func (x *FolderRegistry) MergePath(path string) (leaf *Folder) {
	segments := splitFolderPath(path)
	for i := range segments {
		prefix := strings.Join(segments[:i+1], FolderSeparator)
		if folder, ok := x.byPath[prefix]; ok {
			leaf = folder
			continue
		}

		leaf = NewFolder(prefix, x.ClaimGuid(GUID_KIND_FOLDER, prefix, NilGuid))
		x.insert(leaf)
		base.LogTrace(LogSln, "merge new solution folder %q %v", leaf.FullPath, leaf.FolderGuid)
	}
	return
}

// Merge adopts externally built folders without reassigning the GUID of a path already registered.
// Missing parents are created with the registry policy, a GUID already claimed is regenerated.
func (x *FolderRegistry) Merge(folders ...*Folder) {
	for _, it := range folders {
		if it == nil {
			continue
		}

		path := NormalizeFolderPath(it.FullPath)
		if _, ok := x.byPath[path]; ok || len(path) == 0 {
			continue
		}

		folder := NewFolder(path, x.ClaimGuid(GUID_KIND_FOLDER, path, it.FolderGuid))
		if parent := folder.ParentPath(); len(parent) > 0 {
			x.MergePath(parent)
		}
		x.insert(folder)
		base.LogTrace(LogSln, "merge external solution folder %q %v", folder.FullPath, folder.FolderGuid)
	}
}
