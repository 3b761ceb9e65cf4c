// Package walker discovers the candidate files for a migration run: a
// recursive traversal filtered by extension and exclusion globs.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotDirectory indicates the traversal root is not a directory.
var ErrNotDirectory = errors.New("root is not a directory")

// Directories never descended into, regardless of configuration.
var prunedDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".next":        {},
	"dist":         {},
	"build":        {},
}

// Options configures a traversal.
type Options struct {
	// Root is the directory to walk.
	Root string

	// Extensions is the set of file extensions to keep, dot included
	// (".tsx"). Empty means every file.
	Extensions []string

	// Excludes holds doublestar patterns matched against the
	// slash-separated path relative to Root ("**/*.test.tsx").
	Excludes []string
}

// Walk returns the matching file paths under opts.Root, sorted, so runs
// and reports are deterministic. Paths are returned as given, joined to
// Root. Unreadable subtrees surface as an error; a missing root does too.
func Walk(opts Options) ([]string, error) {
	info, statErr := os.Stat(opts.Root)
	if statErr != nil {
		return nil, fmt.Errorf("failed to stat root: %w", statErr)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, opts.Root)
	}

	extensions := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions[ext] = struct{}{}
	}

	var files []string

	walkErr := filepath.WalkDir(opts.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if _, pruned := prunedDirs[entry.Name()]; pruned && path != opts.Root {
				return filepath.SkipDir
			}

			return nil
		}

		if len(extensions) > 0 {
			if _, ok := extensions[matchExt(entry.Name())]; !ok {
				return nil
			}
		}

		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			return relErr
		}

		if excluded(filepath.ToSlash(rel), opts.Excludes) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", opts.Root, walkErr)
	}

	sort.Strings(files)

	return files, nil
}

// matchExt returns the extension used for filtering. Compound suffixes
// like ".test.tsx" stay distinguishable via the Excludes patterns, so
// only the final extension matters here.
func matchExt(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			// A bad pattern never blocks the walk.
			continue
		}

		if matched {
			return true
		}
	}

	return false
}
