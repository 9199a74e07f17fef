// Package query evaluates selector expressions against a configuration map.
//
// Three evaluators are provided:
//
//	JSONPath()  path and filter expressions (github.com/ohler55/ojg/jp)
//	Expr()      general expressions (github.com/expr-lang/expr)
//	Pointer()   JSON Pointer (RFC 6901) references
//
// JSONPath and Expr accept plain dotted paths such as "server.port".
package query

import (
	"errors"
	"strings"
)

// ErrEmptyExpression is returned when the expression is blank.
var ErrEmptyExpression = errors.New("empty query expression")

// Evaluator evaluates expression against data.
// It returns the selected value and true, or nil and false when nothing
// matches. Grammar errors are returned as err.
type Evaluator interface {
	Evaluate(expression string, data map[string]any) (any, bool, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(expression string, data map[string]any) (any, bool, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(expression string, data map[string]any) (any, bool, error) {
	return f(expression, data)
}

func checkExpression(expression string) (string, error) {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return "", ErrEmptyExpression
	}
	return trimmed, nil
}
