// Package json provides the JSON codec, built on encoding/json.
//
// Numbers are decoded with json.Number and normalized, so integral values
// become int and the rest float64. Like JSON.parse, empty input is an error.
// Output is compact unless WithIndent is used.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/yacchi/kasane/container"
	"github.com/yacchi/kasane/format"
)

// Codec is the JSON implementation of format.Codec.
type Codec struct {
	indent string
}

// Ensure Codec implements format.Codec.
var _ format.Codec = (*Codec)(nil)

// Option configures a Codec.
type Option func(*Codec)

// WithIndent makes Encode produce indented output using the given indent
// string for each level.
func WithIndent(indent string) Option {
	return func(c *Codec) {
		c.indent = indent
	}
}

// New returns a JSON codec.
//
// Example:
//
//	codec := json.New()
//	data, err := codec.Decode([]byte(`{"server":{"port":8080}}`))
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns format.JSON.
func (c *Codec) Name() format.Name {
	return format.JSON
}

// Extensions returns ".json".
func (c *Codec) Extensions() []string {
	return []string{".json"}
}

// ErrEmptyDocument is returned by Decode for input that holds no JSON value.
var ErrEmptyDocument = errors.New("empty JSON document")

// Decode parses JSON data. The root value must be an object; empty input is
// rejected with ErrEmptyDocument and a literal null with *format.RootTypeError.
func (c *Codec) Decode(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("failed to parse JSON: %w", ErrEmptyDocument)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse JSON: unexpected data after top-level value")
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, &format.RootTypeError{Format: format.JSON, Got: format.TypeName(root)}
	}

	return container.NormalizeMap(obj), nil
}

// Encode serializes data as JSON without HTML escaping and without a
// trailing newline.
func (c *Codec) Encode(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.indent != "" {
		enc.SetIndent("", c.indent)
	}
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
