package query

import (
	"fmt"
	"strconv"
	"strings"
)

type pointer struct{}

// Pointer returns an Evaluator for JSON Pointer (RFC 6901) expressions.
// "/" selects the whole configuration; "~1" and "~0" escape "/" and "~"
// within a key. Sequence elements are addressed by index.
//
// Example:
//
//	v, ok, err := query.Pointer().Evaluate("/servers/0/name", data)
//	v, ok, err = query.Pointer().Evaluate("/paths/~1api~1users", data)
func Pointer() Evaluator {
	return pointer{}
}

func (pointer) Evaluate(expression string, data map[string]any) (any, bool, error) {
	expression, err := checkExpression(expression)
	if err != nil {
		return nil, false, err
	}

	keys, err := splitPointer(expression)
	if err != nil {
		return nil, false, err
	}

	var current any = data
	for _, key := range keys {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[key]
			if !ok {
				return nil, false, nil
			}
			current = next
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false, nil
			}
			current = v[i]
		default:
			return nil, false, nil
		}
	}
	return current, true, nil
}

// splitPointer returns the unescaped reference tokens of p.
// The root pointer "/" yields no tokens.
func splitPointer(p string) ([]string, error) {
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("invalid JSON Pointer %q: must start with '/'", p)
	}
	if p == "/" {
		return nil, nil
	}

	tokens := strings.Split(p[1:], "/")
	for i, tok := range tokens {
		// "~1" first so that "~01" decodes to "~1".
		tokens[i] = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
	}
	return tokens, nil
}
