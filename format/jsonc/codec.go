// Package jsonc provides the JSONC (JSON with comments and trailing commas)
// codec, built on github.com/tailscale/hujson.
//
// Decode strips comments before handing the document to the JSON codec.
// Encode emits standard JSON formatted by hujson.
package jsonc

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tailscale/hujson"
	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/format/json"
)

// Codec is the JSONC implementation of format.Codec.
type Codec struct {
	base *json.Codec
}

// Ensure Codec implements format.Codec.
var _ format.Codec = (*Codec)(nil)

// New returns a JSONC codec.
//
// Example:
//
//	store := kasane.New(kasane.WithCodec(jsonc.New()))
func New() *Codec {
	return &Codec{base: json.New()}
}

// Name returns format.JSONC.
func (c *Codec) Name() format.Name {
	return format.JSONC
}

// Extensions returns ".jsonc".
func (c *Codec) Extensions() []string {
	return []string{".jsonc"}
}

// Decode parses JSONC data. Input with no value, including comment-only
// input, is rejected like empty JSON.
func (c *Codec) Decode(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("failed to parse JSONC: %w", json.ErrEmptyDocument)
	}

	v, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSONC: %w", err)
	}
	v.Standardize()

	result, err := c.base.Decode(v.Pack())
	if err != nil {
		var rootErr *format.RootTypeError
		if errors.As(err, &rootErr) {
			return nil, &format.RootTypeError{Format: format.JSONC, Got: rootErr.Got}
		}
		return nil, err
	}
	return result, nil
}

// Encode serializes data as JSON and formats it with hujson.
func (c *Codec) Encode(data map[string]any) ([]byte, error) {
	b, err := c.base.Encode(data)
	if err != nil {
		return nil, err
	}
	formatted, err := hujson.Format(b)
	if err != nil {
		return nil, fmt.Errorf("failed to format JSONC: %w", err)
	}
	return formatted, nil
}
