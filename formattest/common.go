package formattest

import (
	"reflect"
	"testing"
)

// require stops the test when cond is false.
func require(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// requireNoError stops the test when err is set.
func requireNoError(t *testing.T, err error, format string, args ...any) {
	t.Helper()
	require(t, err == nil, format, args...)
}

// check records a failure when cond is false and lets the test continue.
func check(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Errorf(format, args...)
	}
}

// sameDocument reports whether a decoded document equals the encoded one.
// Decoders normalize their output, so Go types must match exactly: an int
// encoded as 1 must not come back as float64(1).
func sameDocument(got, want map[string]any) bool {
	return reflect.DeepEqual(got, want)
}
