// Package source provides the I/O side of configuration loading.
// A source only moves raw bytes; parsing is handled by a format.Codec.
package source

import (
	"context"
)

// SourceType identifies the kind of a source.
type SourceType string

// TypeFS is the source type of file system sources.
const TypeFS SourceType = "fs"

// Source loads raw configuration data and writes it back.
type Source interface {
	// Type returns the source type identifier.
	Type() SourceType

	// Load reads the complete contents of the source.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the complete contents of the source with data.
	Save(ctx context.Context, data []byte) error
}
