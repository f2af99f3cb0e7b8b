package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/knetic/govaluate"
)

// expressionFunctions are the functions usable in pattern expressions.
func expressionFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		// abs(v)
		"abs": func(args ...interface{}) (interface{}, error) {
			v, err := floatArgs("abs", 1, args)
			if err != nil {
				return nil, err
			}
			return math.Abs(v[0]), nil
		},
		// dist(x1, y1, x2, y2) is the euclidean distance between two points.
		"dist": func(args ...interface{}) (interface{}, error) {
			v, err := floatArgs("dist", 4, args)
			if err != nil {
				return nil, err
			}
			return math.Hypot(v[2]-v[0], v[3]-v[1]), nil
		},
	}
}

// govaluate hands all numbers to functions as float64.
func floatArgs(name string, n int, args []interface{}) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d must be numeric", name, i+1)
		}
		out[i] = f
	}
	return out, nil
}

func compile(expr string) (*govaluate.EvaluableExpression, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("empty expression")
	}
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, expressionFunctions())
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expr, err)
	}
	return e, nil
}
