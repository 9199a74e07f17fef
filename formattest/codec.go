// Package formattest provides a compliance suite for format.Codec
// implementations.
//
// Example:
//
//	func TestCodec_Compliance(t *testing.T) {
//	    formattest.NewCodecTester(t, toml.New(),
//	        formattest.SkipNullTest("TOML doesn't support null values"),
//	        formattest.WithInvalidInput([]byte("key = = value")),
//	    ).TestAll()
//	}
package formattest

import (
	"errors"
	"strings"
	"testing"

	"github.com/yacchi/kasane/format"
)

// CodecTesterOption configures CodecTester behavior.
type CodecTesterOption func(*CodecTester)

// SkipNullTest skips the null value round trip.
// The reason parameter is required to document why the test is skipped.
func SkipNullTest(reason string) CodecTesterOption {
	return func(ct *CodecTester) {
		ct.skipNullReason = reason
	}
}

// WithInvalidInput sets malformed input that Decode must reject.
func WithInvalidInput(data []byte) CodecTesterOption {
	return func(ct *CodecTester) {
		ct.invalidInput = data
	}
}

// WithNonMappingRoot sets well-formed input whose root is not a mapping.
// Decode must reject it with a *format.RootTypeError.
func WithNonMappingRoot(data []byte) CodecTesterOption {
	return func(ct *CodecTester) {
		ct.nonMappingRoot = data
	}
}

// RejectEmptyInput makes the suite expect Decode to fail on empty input
// instead of returning an empty map.
func RejectEmptyInput() CodecTesterOption {
	return func(ct *CodecTester) {
		ct.rejectEmpty = true
	}
}

// CodecTester verifies a format.Codec implementation.
type CodecTester struct {
	t              *testing.T
	codec          format.Codec
	skipNullReason string
	invalidInput   []byte
	nonMappingRoot []byte
	rejectEmpty    bool
}

// NewCodecTester creates a CodecTester for codec.
func NewCodecTester(t *testing.T, codec format.Codec, opts ...CodecTesterOption) *CodecTester {
	ct := &CodecTester{
		t:     t,
		codec: codec,
	}
	for _, opt := range opts {
		opt(ct)
	}
	return ct
}

// TestAll runs all standard compliance tests.
func (ct *CodecTester) TestAll() {
	ct.t.Run("Metadata", ct.testMetadata)
	ct.t.Run("DecodeEmpty", ct.testDecodeEmpty)
	ct.t.Run("RoundTrip", ct.testRoundTrip)
	ct.t.Run("RoundTripNested", ct.testRoundTripNested)
	ct.t.Run("SpecialValues", ct.testSpecialValues)
	ct.t.Run("Null", ct.testNull)
	ct.t.Run("EncodeNil", ct.testEncodeNil)
	ct.t.Run("InvalidInput", ct.testInvalidInput)
	ct.t.Run("NonMappingRoot", ct.testNonMappingRoot)
}

func (ct *CodecTester) testMetadata(t *testing.T) {
	check(t, ct.codec.Name() != "", "Name() returned empty string")
	exts := ct.codec.Extensions()
	require(t, len(exts) > 0, "Extensions() returned no extensions")
	for _, ext := range exts {
		check(t, strings.HasPrefix(ext, "."), "extension %q must start with a dot", ext)
	}
}

func (ct *CodecTester) testDecodeEmpty(t *testing.T) {
	for _, input := range [][]byte{nil, {}, []byte("  \n\t")} {
		data, err := ct.codec.Decode(input)
		if ct.rejectEmpty {
			check(t, err != nil, "Decode(%q) = %v, want error", input, data)
			continue
		}
		requireNoError(t, err, "Decode(%q) error = %v", input, err)
		require(t, data != nil, "Decode(%q) returned nil map", input)
		check(t, len(data) == 0, "Decode(%q) = %v, want empty map", input, data)
	}
}

// roundTrip encodes data and decodes the result.
func (ct *CodecTester) roundTrip(t *testing.T, data map[string]any) map[string]any {
	t.Helper()
	encoded, err := ct.codec.Encode(data)
	requireNoError(t, err, "Encode error = %v", err)
	decoded, err := ct.codec.Decode(encoded)
	requireNoError(t, err, "Decode error = %v\ninput:\n%s", err, encoded)
	return decoded
}

func (ct *CodecTester) testRoundTrip(t *testing.T) {
	data := map[string]any{
		"name":    "app",
		"port":    8080,
		"ratio":   0.5,
		"enabled": true,
	}
	got := ct.roundTrip(t, data)
	check(t, sameDocument(got, data), "round trip = %#v, want %#v", got, data)
}

func (ct *CodecTester) testRoundTripNested(t *testing.T) {
	data := map[string]any{
		"server": map[string]any{
			"host": "localhost",
			"port": 8080,
			"tls": map[string]any{
				"enabled": false,
			},
		},
		"features": []any{"a", "b"},
		"servers": []any{
			map[string]any{"name": "primary", "weight": 10},
			map[string]any{"name": "backup", "weight": 1},
		},
	}
	got := ct.roundTrip(t, data)
	check(t, sameDocument(got, data), "round trip = %#v, want %#v", got, data)
}

func (ct *CodecTester) testSpecialValues(t *testing.T) {
	data := map[string]any{
		"empty":     "",
		"quoted":    "8080",
		"bool_text": "true",
		"unicode":   "日本語",
		"markup":    "<a href=\"x\">&</a>",
		"multiline": "line1\nline2",
		"key.with.dots": map[string]any{
			"inner": 1,
		},
	}
	got := ct.roundTrip(t, data)
	check(t, sameDocument(got, data), "round trip = %#v, want %#v", got, data)
}

func (ct *CodecTester) testNull(t *testing.T) {
	data := map[string]any{"value": nil}
	if ct.skipNullReason != "" {
		_, err := ct.codec.Encode(data)
		var unsupported *format.UnsupportedStructureError
		check(t, errors.As(err, &unsupported), "Encode(null) error = %v, want *format.UnsupportedStructureError", err)
		t.Skip(ct.skipNullReason)
	}
	got := ct.roundTrip(t, data)
	v, ok := got["value"]
	check(t, ok && v == nil, "round trip = %#v, want value=nil", got)
}

func (ct *CodecTester) testEncodeNil(t *testing.T) {
	got := ct.roundTrip(t, nil)
	check(t, len(got) == 0, "round trip of nil = %#v, want empty map", got)
}

func (ct *CodecTester) testInvalidInput(t *testing.T) {
	if ct.invalidInput == nil {
		t.Skip("no invalid input configured")
	}
	_, err := ct.codec.Decode(ct.invalidInput)
	check(t, err != nil, "Decode(%q) succeeded, want error", ct.invalidInput)
}

func (ct *CodecTester) testNonMappingRoot(t *testing.T) {
	if ct.nonMappingRoot == nil {
		t.Skip("no non-mapping input configured")
	}
	_, err := ct.codec.Decode(ct.nonMappingRoot)
	var rootErr *format.RootTypeError
	check(t, errors.As(err, &rootErr), "Decode(%q) error = %v, want *format.RootTypeError", ct.nonMappingRoot, err)
}
