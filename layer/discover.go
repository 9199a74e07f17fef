package layer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stems of the fixed tiers.
const (
	StemDefault = "default"
	StemLocal   = "local"
)

var (
	osReadDir = os.ReadDir
	osStat    = os.Stat
)

// Candidate describes a file selected for loading.
type Candidate struct {
	// FileName is the directory entry name.
	FileName string
	// Path is dir joined with FileName.
	Path string
	// Priority is the tier assigned from the file name.
	Priority Priority
}

// Discover lists the immediate entries of dir and classifies them for env.
// Subdirectories, including symlinks to directories, are never candidates.
func Discover(dir, env string) ([]Candidate, error) {
	entries, err := osReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isDir(dir, entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	return Classify(dir, names, env), nil
}

// isDir reports whether entry is a directory, following symlinks.
// A dangling symlink is not a directory.
func isDir(dir string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := osStat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}

// Classify selects the names that start with "default", "local" or env
// (case-sensitive) and orders them by priority. Names with the same priority
// keep their relative order from names.
//
// Example:
//
//	Classify("config", []string{"production.yaml", "default.json", "README.md"}, "production")
//	// default.json (1), production.yaml (3)
func Classify(dir string, names []string, env string) []Candidate {
	candidates := make([]Candidate, 0, len(names))
	for _, name := range names {
		if !selected(name, env) {
			continue
		}
		candidates = append(candidates, Candidate{
			FileName: name,
			Path:     filepath.Join(dir, name),
			Priority: PriorityOf(name),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})
	return candidates
}

// PriorityOf returns the tier of a file name. The stem (everything before the
// first dot) is compared case-insensitively with "default" and "local";
// anything else is an environment file.
func PriorityOf(fileName string) Priority {
	stem, _, _ := strings.Cut(fileName, ".")
	switch {
	case strings.EqualFold(stem, StemDefault):
		return PriorityDefault
	case strings.EqualFold(stem, StemLocal):
		return PriorityLocal
	default:
		return PriorityEnvironment
	}
}

func selected(name, env string) bool {
	if strings.HasPrefix(name, StemDefault) || strings.HasPrefix(name, StemLocal) {
		return true
	}
	return env != "" && strings.HasPrefix(name, env)
}
