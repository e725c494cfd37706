package sln

import (
	"strings"
)

func splitAnyPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

func toWindowsPath(path string) string {
	return strings.ReplaceAll(path, "/", `\`)
}

func isRootedPath(path string) bool {
	return len(path) > 0 && (path[0] == '/' || path[0] == '\\')
}
func hasDriveLetter(path string) bool {
	return len(path) >= 2 && path[1] == ':' &&
		(('a' <= path[0] && path[0] <= 'z') || ('A' <= path[0] && path[0] <= 'Z'))
}

// isWindowsPath tells if path segments should be compared ignoring case.
func isWindowsPath(path string) bool {
	return hasDriveLetter(path) || strings.ContainsRune(path, '\\')
}

// CanonicalizePath renders path relative to basePath with '\' separators, like Visual Studio does.
// Windows paths are compared ignoring case. Paths without a common root, like two distinct drives, are kept absolute.
func CanonicalizePath(basePath, path string) string {
	if len(basePath) == 0 || isRootedPath(basePath) != isRootedPath(path) {
		return toWindowsPath(path)
	}

	equal := func(a, b string) bool { return a == b }
	if isWindowsPath(basePath) || isWindowsPath(path) {
		equal = strings.EqualFold
	}

	from := splitAnyPath(basePath)
	to := splitAnyPath(path)

	common := 0
	for common < len(from) && common < len(to) && equal(from[common], to[common]) {
		common++
	}

	if common == 0 && (hasDriveLetter(basePath) || hasDriveLetter(path)) {
		return toWindowsPath(path)
	}

	relative := make([]string, 0, len(from)-common+len(to)-common)
	for i := common; i < len(from); i++ {
		relative = append(relative, "..")
	}
	relative = append(relative, to[common:]...)
	return strings.Join(relative, `\`)
}
