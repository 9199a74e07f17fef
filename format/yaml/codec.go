// Package yaml provides the YAML codec, built on gopkg.in/yaml.v3.
//
// Decoding resolves anchors, aliases and merge keys and accepts a single
// document. Encoding produces
// block-style documents with sorted keys and a two-space indent.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/yacchi/kasane/container"
	"github.com/yacchi/kasane/format"
	"gopkg.in/yaml.v3"
)

// DefaultIndent is the indentation used by Encode.
const DefaultIndent = 2

// Codec is the YAML implementation of format.Codec.
type Codec struct {
	indent int
}

// Ensure Codec implements format.Codec.
var _ format.Codec = (*Codec)(nil)

// Option configures a Codec.
type Option func(*Codec)

// WithIndent sets the number of spaces used for each indentation level.
func WithIndent(spaces int) Option {
	return func(c *Codec) {
		c.indent = spaces
	}
}

// New returns a YAML codec.
//
// Example:
//
//	codec := yaml.New()
//	data, err := codec.Decode([]byte("server:\n  port: 8080\n"))
func New(opts ...Option) *Codec {
	c := &Codec{indent: DefaultIndent}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns format.YAML.
func (c *Codec) Name() format.Name {
	return format.YAML
}

// Extensions returns ".yaml" and ".yml".
func (c *Codec) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// ErrMultipleDocuments is returned by Decode for a stream holding more than
// one document.
var ErrMultipleDocuments = errors.New("multiple YAML documents are not supported")

// Decode parses a single YAML document.
// Empty input, comment-only input and an explicit null document all yield an
// empty map.
func (c *Codec) Decode(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var next any
	if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", ErrMultipleDocuments)
	}

	if root == nil {
		return map[string]any{}, nil
	}

	obj, ok := container.Normalize(root).(map[string]any)
	if !ok {
		return nil, &format.RootTypeError{Format: format.YAML, Got: format.TypeName(root)}
	}
	return obj, nil
}

// Encode serializes data as a block-style YAML document.
func (c *Codec) Encode(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}
