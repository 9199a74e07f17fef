package query

import (
	"fmt"

	"github.com/expr-lang/expr"
)

type exprEvaluator struct{}

// Expr returns an Evaluator for expr-lang expressions. The configuration's
// top-level keys are the expression's variables; unknown variables evaluate
// to nil. A nil result counts as no match.
//
// Example:
//
//	v, ok, err := query.Expr().Evaluate(`server.port > 8000 ? "high" : "low"`, data)
//	v, ok, err = query.Expr().Evaluate(`filter(servers, .weight > 5)`, data)
func Expr() Evaluator {
	return exprEvaluator{}
}

func (exprEvaluator) Evaluate(expression string, data map[string]any) (any, bool, error) {
	expression, err := checkExpression(expression)
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		data = map[string]any{}
	}

	program, err := expr.Compile(expression, expr.Env(data), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, false, fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	out, err := expr.Run(program, data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to evaluate %q: %w", expression, err)
	}
	if out == nil {
		return nil, false, nil
	}
	return out, true, nil
}
