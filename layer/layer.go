// Package layer turns configuration files into prioritized layers.
//
// A layer is one configuration file paired with the codec that parses it.
// Layers are merged in ascending priority: default files first, then local
// files, then environment-specific files.
package layer

import (
	"context"

	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/source"
)

// Priority defines the precedence of a configuration layer.
// Higher values take precedence during merging.
type Priority int

// Precedence tiers.
const (
	// PriorityDefault is the tier of files whose stem is "default".
	PriorityDefault Priority = 1
	// PriorityLocal is the tier of files whose stem is "local".
	PriorityLocal Priority = 2
	// PriorityEnvironment is the tier of every other retained file,
	// normally files named after the active environment.
	PriorityEnvironment Priority = 3
)

// String returns the tier name.
func (p Priority) String() string {
	switch p {
	case PriorityDefault:
		return "default"
	case PriorityLocal:
		return "local"
	case PriorityEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// Name is the identifier of a layer, normally the file name.
type Name string

// Layer is a configuration source with a priority.
type Layer interface {
	// Name returns the layer identifier.
	Name() Name

	// Priority returns the merge precedence.
	Priority() Priority

	// Format returns the format of the layer's document.
	Format() format.Name

	// Load reads the source and decodes it into a configuration map.
	Load(ctx context.Context) (map[string]any, error)
}

// FileLayer is the standard Layer implementation combining a Source and a
// Codec.
type FileLayer struct {
	name     Name
	priority Priority
	source   source.Source
	codec    format.Codec
}

// Ensure FileLayer implements Layer.
var _ Layer = (*FileLayer)(nil)

// New creates a layer reading src with codec.
//
// Example:
//
//	l := layer.New("default.yaml", layer.PriorityDefault, fs.New("config/default.yaml"), yaml.New())
//	data, err := l.Load(ctx)
func New(name Name, priority Priority, src source.Source, codec format.Codec) *FileLayer {
	return &FileLayer{
		name:     name,
		priority: priority,
		source:   src,
		codec:    codec,
	}
}

// Name returns the layer's name.
func (l *FileLayer) Name() Name {
	return l.name
}

// Priority returns the layer's priority.
func (l *FileLayer) Priority() Priority {
	return l.priority
}

// Format returns the codec's format name.
func (l *FileLayer) Format() format.Name {
	return l.codec.Name()
}

// Source returns the underlying source.
func (l *FileLayer) Source() source.Source {
	return l.source
}

// Load reads the raw bytes from the source and decodes them.
// Read errors are returned as-is; decode errors are wrapped in *DecodeError
// so callers can tell the two apart.
func (l *FileLayer) Load(ctx context.Context) (map[string]any, error) {
	data, err := l.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := l.codec.Decode(data)
	if err != nil {
		return nil, &DecodeError{Layer: l.name, Format: l.codec.Name(), Err: err}
	}
	return doc, nil
}

// DecodeError reports that a layer's contents could not be parsed.
type DecodeError struct {
	Layer  Name
	Format format.Name
	Err    error
}

func (e *DecodeError) Error() string {
	return "layer " + string(e.Layer) + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
