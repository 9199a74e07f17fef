// Package format defines the Codec abstraction used to turn configuration
// files into map[string]any and back, and a Registry that picks a codec from a
// file name or a format name.
//
// Codec implementations live in the subpackages:
//
//	format/json   encoding/json
//	format/yaml   gopkg.in/yaml.v3
//	format/toml   github.com/pelletier/go-toml/v2
//	format/jsonc  github.com/tailscale/hujson
package format

import (
	"strings"
)

// Name identifies a configuration format ("json", "yaml", ...).
type Name string

// Standard format names.
const (
	JSON  Name = "json"
	YAML  Name = "yaml"
	TOML  Name = "toml"
	JSONC Name = "jsonc"
)

// Codec decodes raw file contents into a configuration map and encodes a
// configuration map back to bytes.
type Codec interface {
	// Name returns the format name. Matching against user input is
	// case-insensitive.
	Name() Name

	// Extensions returns the file extensions handled by this codec,
	// including the leading dot. The first entry is used when writing files.
	Extensions() []string

	// Decode parses data. Empty input yields an empty map. The document
	// root must be a mapping; anything else returns a *RootTypeError.
	// Values are normalized with container.Normalize.
	Decode(data []byte) (map[string]any, error)

	// Encode serializes data.
	Encode(data map[string]any) ([]byte, error)
}

// Registry holds codecs in registration order.
// A codec registered later wins over earlier ones for the same name or
// extension.
type Registry struct {
	codecs []Codec
}

// NewRegistry creates a registry with the given codecs.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

// Register adds a codec to the registry.
func (r *Registry) Register(c Codec) {
	if c == nil {
		return
	}
	r.codecs = append(r.codecs, c)
}

// ForFile returns the codec whose extension is a case-insensitive suffix of
// fileName, or false when no codec handles it.
func (r *Registry) ForFile(fileName string) (Codec, bool) {
	lower := strings.ToLower(fileName)
	for i := len(r.codecs) - 1; i >= 0; i-- {
		for _, ext := range r.codecs[i].Extensions() {
			if strings.HasSuffix(lower, strings.ToLower(ext)) {
				return r.codecs[i], true
			}
		}
	}
	return nil, false
}

// ByName returns the codec registered under name (case-insensitive).
func (r *Registry) ByName(name string) (Codec, bool) {
	for i := len(r.codecs) - 1; i >= 0; i-- {
		if strings.EqualFold(string(r.codecs[i].Name()), name) {
			return r.codecs[i], true
		}
	}
	return nil, false
}

// Names returns the registered format names in registration order,
// without duplicates.
func (r *Registry) Names() []Name {
	seen := make(map[Name]bool, len(r.codecs))
	names := make([]Name, 0, len(r.codecs))
	for _, c := range r.codecs {
		if seen[c.Name()] {
			continue
		}
		seen[c.Name()] = true
		names = append(names, c.Name())
	}
	return names
}
