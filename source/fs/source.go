// Package fs provides a file system based configuration source.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yacchi/kasane/source"
)

type tempFile interface {
	Write(p []byte) (n int, err error)
	Sync() error
	Close() error
	Name() string
}

var (
	userHomeDir = os.UserHomeDir
	osReadFile  = os.ReadFile
	osStat      = os.Stat
	osChmod     = os.Chmod
	osRename    = os.Rename
	osRemove    = os.Remove

	createTemp = func(dir, pattern string) (tempFile, error) {
		return os.CreateTemp(dir, pattern)
	}
)

// DefaultFileMode is the permission mode used for written files.
const DefaultFileMode = 0644

// Source reads and writes a single file.
type Source struct {
	path     string
	fileMode os.FileMode
}

// Ensure Source implements the source.Source interface.
var _ source.Source = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithFileMode sets the file permission mode used when saving.
// Default is 0644.
func WithFileMode(mode os.FileMode) Option {
	return func(s *Source) {
		s.fileMode = mode
	}
}

// New creates a source for the file at path. Tilde (~) expansion is applied
// when the file is accessed.
//
// Example:
//
//	src := fs.New("config/default.yaml")
//	src := fs.New("~/.config/app/production.json", fs.WithFileMode(0600))
func New(path string, opts ...Option) *Source {
	s := &Source{
		path:     path,
		fileMode: DefaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the path the source was created with.
func (s *Source) Path() string {
	return s.path
}

// Type returns source.TypeFS.
func (s *Source) Type() source.SourceType {
	return source.TypeFS
}

// Load implements the source.Source interface.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := ExpandTilde(s.path)
	if err != nil {
		return nil, err
	}

	data, err := osReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", s.path, err)
	}
	return data, nil
}

// Save implements the source.Source interface.
//
// The data is written to a temporary file in the target directory, synced,
// and renamed over the target, so readers never observe a partial file.
// The parent directory must already exist.
func (s *Source) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	targetPath, err := ExpandTilde(s.path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(targetPath)
	info, err := osStat(dir)
	if err != nil {
		return fmt.Errorf("failed to access directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("failed to access directory %q: not a directory", dir)
	}

	tmpFile, err := createTemp(dir, ".kasane-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			osRemove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := osChmod(tmpPath, s.fileMode); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if err := osRename(tmpPath, targetPath); err != nil {
		return fmt.Errorf("failed to rename temporary file to %q: %w", targetPath, err)
	}

	success = true
	return nil
}

// ExpandTilde expands a leading tilde in path.
// Handles both "~" (home directory) and "~/path" (path under home);
// "~user" forms are returned unchanged.
func ExpandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}
