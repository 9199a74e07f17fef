package format

import "fmt"

// RootTypeError is returned by Decode when the document root is not a mapping.
type RootTypeError struct {
	Format Name
	Got    string
}

func (e *RootTypeError) Error() string {
	return fmt.Sprintf("%s document root must be a mapping, got %s", e.Format, e.Got)
}

// UnsupportedStructureError is returned by Encode when the data contains a
// structure the format cannot represent (for example null in TOML).
type UnsupportedStructureError struct {
	Path   string
	Reason string
}

func (e *UnsupportedStructureError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unsupported structure: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported structure at %q: %s", e.Path, e.Reason)
}

// UnsupportedAt creates an UnsupportedStructureError at a specific path.
//
// Example:
//
//	return nil, format.UnsupportedAt("server.timeout", "TOML does not support null values")
func UnsupportedAt(path, reason string) *UnsupportedStructureError {
	return &UnsupportedStructureError{Path: path, Reason: reason}
}

// TypeName describes the Go value produced by a decoder in error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "sequence"
	case map[string]any, map[any]any:
		return "mapping"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
