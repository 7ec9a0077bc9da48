package minify

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// Glob expands a wildcard pattern into the sorted list of files it matches.
// Directories are never returned.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid wildcard %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func hasWildcard(path string) bool {
	return strings.Contains(path, "*")
}

// expandWildcards replaces every wildcard entry with the files it matches,
// relative to publicFolder when one is set. Literal entries are kept in place.
// A wildcard always yields a list, even from a single pattern.
func expandWildcards(in Paths, publicFolder string) (Paths, error) {
	if !lo.SomeBy(in.Files, hasWildcard) {
		return in, nil
	}

	var files []string
	for _, item := range in.Files {
		path := joinFolder(publicFolder, item)
		if !hasWildcard(item) {
			files = append(files, path)
			continue
		}
		matches, err := Glob(path)
		if err != nil {
			return Paths{}, err
		}
		files = append(files, matches...)
	}

	return Paths{Files: lo.Uniq(files), List: true}, nil
}

// applyPublicFolder moves relative inputs under publicFolder, leaving entries
// already inside it alone.
func applyPublicFolder(in Paths, publicFolder string) Paths {
	if publicFolder == "" {
		return in
	}
	return Paths{
		Files: lo.Map(in.Files, func(item string, _ int) string {
			return joinFolder(publicFolder, item)
		}),
		List: in.List,
	}
}

func joinFolder(folder, path string) string {
	if folder == "" {
		return path
	}
	folder = filepath.Clean(folder)
	path = filepath.Clean(path)
	if filepath.IsAbs(path) || path == folder || strings.HasPrefix(path, folder+string(filepath.Separator)) {
		return path
	}
	return filepath.Join(folder, path)
}
