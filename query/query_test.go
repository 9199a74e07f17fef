package query

import (
	"errors"
	"reflect"
	"testing"
)

func testData() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"host": "localhost",
			"port": 8080,
		},
		"empty": map[string]any{},
		"servers": []any{
			map[string]any{"name": "primary", "weight": 10},
			map[string]any{"name": "backup", "weight": 1},
		},
	}
}

func TestJSONPath_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		want   any
		wantOK bool
	}{
		{"dotted path", "server.port", 8080, true},
		{"rooted path", "$.server.host", "localhost", true},
		{"missing leaf", "empty.port", nil, false},
		{"missing branch", "client.port", nil, false},
		{"index", "servers[1].name", "backup", true},
		{"wildcard", "servers[*].name", []any{"primary", "backup"}, true},
		{"filter", "servers[?(@.weight > 5)].name", "primary", true},
		{"root", "$", testData(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := JSONPath().Evaluate(tt.expr, testData())
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Evaluate(%q) ok = %v, want %v", tt.expr, ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Evaluate(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestJSONPath_Errors(t *testing.T) {
	if _, _, err := JSONPath().Evaluate("  ", testData()); !errors.Is(err, ErrEmptyExpression) {
		t.Errorf("Evaluate(blank) error = %v, want ErrEmptyExpression", err)
	}
	if _, _, err := JSONPath().Evaluate("servers[?(@.weight >", testData()); err == nil {
		t.Error("Evaluate(malformed) expected error, got nil")
	}
}

func TestExpr_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		want   any
		wantOK bool
	}{
		{"member access", "server.port", 8080, true},
		{"missing member", "empty.port", nil, false},
		{"undefined variable", "client", nil, false},
		{"comparison", "server.port > 8000", true, true},
		{"ternary", `server.port == 8080 ? "default" : "custom"`, "default", true},
		{"map builtin", "map(servers, .name)", []any{"primary", "backup"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Expr().Evaluate(tt.expr, testData())
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Evaluate(%q) ok = %v, want %v", tt.expr, ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Evaluate(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestExpr_Errors(t *testing.T) {
	if _, _, err := Expr().Evaluate("", testData()); !errors.Is(err, ErrEmptyExpression) {
		t.Errorf("Evaluate(empty) error = %v, want ErrEmptyExpression", err)
	}
	if _, _, err := Expr().Evaluate("server.port >", testData()); err == nil {
		t.Error("Evaluate(malformed) expected error, got nil")
	}
}

func TestEvaluatorFunc(t *testing.T) {
	var e Evaluator = EvaluatorFunc(func(expression string, data map[string]any) (any, bool, error) {
		return data[expression], true, nil
	})
	got, ok, err := e.Evaluate("k", map[string]any{"k": "v"})
	if err != nil || !ok || got != "v" {
		t.Fatalf("Evaluate() = %v, %v, %v", got, ok, err)
	}
}

func TestPointer_Evaluate(t *testing.T) {
	data := testData()
	data["paths"] = map[string]any{"/api/users": "users", "a~b": "tilde"}

	tests := []struct {
		name   string
		expr   string
		want   any
		wantOK bool
	}{
		{"nested key", "/server/port", 8080, true},
		{"sequence index", "/servers/0/name", "primary", true},
		{"escaped slash", "/paths/~1api~1users", "users", true},
		{"escaped tilde", "/paths/a~0b", "tilde", true},
		{"root", "/", data, true},
		{"missing key", "/empty/port", nil, false},
		{"index out of range", "/servers/5/name", nil, false},
		{"non-numeric index", "/servers/first", nil, false},
		{"through scalar", "/server/port/value", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Pointer().Evaluate(tt.expr, data)
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if ok != tt.wantOK {
				t.Errorf("Evaluate(%q) ok = %v, want %v", tt.expr, ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestPointer_Errors(t *testing.T) {
	if _, _, err := Pointer().Evaluate("server/port", testData()); err == nil {
		t.Error("Evaluate(relative pointer) should return an error")
	}
	if _, _, err := Pointer().Evaluate(" ", testData()); !errors.Is(err, ErrEmptyExpression) {
		t.Errorf("Evaluate(blank) error = %v, want ErrEmptyExpression", err)
	}
}
