// Package toml provides the TOML codec, built on github.com/pelletier/go-toml/v2.
//
// TOML has no null value, so Encode rejects data containing nil with a
// *format.UnsupportedStructureError.
package toml

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/yacchi/kasane/container"
	"github.com/yacchi/kasane/format"
)

// Codec is the TOML implementation of format.Codec.
type Codec struct{}

// Ensure Codec implements format.Codec.
var _ format.Codec = (*Codec)(nil)

var tomlMarshal = toml.Marshal
var tomlUnmarshal = toml.Unmarshal

// New returns a TOML codec.
//
// TOML files are not part of the default registry; register the codec with
// the store to load them:
//
//	store := kasane.New(kasane.WithCodec(toml.New()))
func New() *Codec {
	return &Codec{}
}

// Name returns format.TOML.
func (c *Codec) Name() format.Name {
	return format.TOML
}

// Extensions returns ".toml".
func (c *Codec) Extensions() []string {
	return []string{".toml"}
}

// Decode parses TOML data. Empty input yields an empty map.
func (c *Codec) Decode(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := tomlUnmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if result == nil {
		return map[string]any{}, nil
	}
	return container.NormalizeMap(result), nil
}

// Encode serializes data as TOML.
func (c *Codec) Encode(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	if err := checkNil("", data); err != nil {
		return nil, err
	}

	b, err := tomlMarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return b, nil
}

// checkNil reports the first nil value found under v, using dotted paths.
func checkNil(path string, v any) error {
	switch vv := v.(type) {
	case nil:
		return format.UnsupportedAt(path, "TOML does not support null values")
	case map[string]any:
		for k, item := range vv {
			p := k
			if path != "" {
				p = path + "." + k
			}
			if err := checkNil(p, item); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range vv {
			if err := checkNil(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	}
	return nil
}
