package query

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
)

type jsonPath struct{}

// JSONPath returns an Evaluator for JSONPath expressions.
//
// Expressions without a leading "$" or "@" are rooted automatically, so
// "server.port" is evaluated as "$.server.port" and "[0]" as "$[0]".
// A single match is returned as-is; several matches are returned as []any.
//
// Example:
//
//	v, ok, err := query.JSONPath().Evaluate("servers[?(@.weight > 5)].name", data)
func JSONPath() Evaluator {
	return jsonPath{}
}

func (jsonPath) Evaluate(expression string, data map[string]any) (any, bool, error) {
	expression, err := checkExpression(expression)
	if err != nil {
		return nil, false, err
	}

	x, err := jp.ParseString(rooted(expression))
	if err != nil {
		return nil, false, fmt.Errorf("invalid JSONPath %q: %w", expression, err)
	}

	results := x.Get(data)
	switch len(results) {
	case 0:
		return nil, false, nil
	case 1:
		return results[0], true, nil
	default:
		return results, true, nil
	}
}

func rooted(expression string) string {
	switch {
	case strings.HasPrefix(expression, "$"), strings.HasPrefix(expression, "@"):
		return expression
	case strings.HasPrefix(expression, "["):
		return "$" + expression
	default:
		return "$." + expression
	}
}
