package formula

import (
	"fmt"
	"math"

	"equity-navigator/internal/series"
)

// value is one of: float64, series.Series, series.Rolling, series.EWM.
type value interface{}

func eval(f series.Frame, n node) (value, error) {
	switch n := n.(type) {
	case numberNode:
		return n.value, nil

	case identNode:
		col, ok := f.Column(n.name)
		if !ok {
			return nil, fmt.Errorf("unknown identifier %q", n.name)
		}
		return col, nil

	case unaryNode:
		operand, err := eval(f, n.operand)
		if err != nil {
			return nil, err
		}
		switch v := operand.(type) {
		case float64:
			return -v, nil
		case series.Series:
			return v.Neg(), nil
		default:
			return nil, fmt.Errorf("cannot negate %s", typeName(operand))
		}

	case binaryNode:
		left, err := eval(f, n.left)
		if err != nil {
			return nil, err
		}
		right, err := eval(f, n.right)
		if err != nil {
			return nil, err
		}
		return binOp(n.op, left, right)

	case callNode:
		recv, err := eval(f, n.recv)
		if err != nil {
			return nil, err
		}
		return call(recv, n.method, n.args)

	default:
		return nil, fmt.Errorf("unsupported expression")
	}
}

func binOp(op byte, left, right value) (value, error) {
	a, aScalar := left.(float64)
	b, bScalar := right.(float64)
	as, aSeries := left.(series.Series)
	bs, bSeries := right.(series.Series)

	switch {
	case aScalar && bScalar:
		switch op {
		case '+':
			return a + b, nil
		case '-':
			return a - b, nil
		case '*':
			return a * b, nil
		case '/':
			if b == 0 {
				return math.NaN(), nil
			}
			return a / b, nil
		}

	case aSeries && bSeries:
		if as.Len() != bs.Len() {
			return nil, fmt.Errorf("series length mismatch %d vs %d", as.Len(), bs.Len())
		}
		switch op {
		case '+':
			return as.Add(bs), nil
		case '-':
			return as.Sub(bs), nil
		case '*':
			return as.Mul(bs), nil
		case '/':
			return as.Div(bs), nil
		}

	case aSeries && bScalar:
		switch op {
		case '+':
			return as.AddScalar(b), nil
		case '-':
			return as.SubScalar(b), nil
		case '*':
			return as.MulScalar(b), nil
		case '/':
			return as.DivScalar(b), nil
		}

	case aScalar && bSeries:
		switch op {
		case '+':
			return bs.AddScalar(a), nil
		case '-':
			return bs.Neg().AddScalar(a), nil
		case '*':
			return bs.MulScalar(a), nil
		case '/':
			return series.Const(bs, a).Div(bs), nil
		}
	}
	return nil, fmt.Errorf("invalid operands for %q: %s and %s",
		string(op), typeName(left), typeName(right))
}

// call dispatches a dotted method from the allow-list. Nothing outside
// this switch is reachable from a formula.
func call(recv value, method string, args []float64) (value, error) {
	switch r := recv.(type) {
	case series.Series:
		switch method {
		case "rolling":
			w, err := intArg(method, args, 1)
			if err != nil {
				return nil, err
			}
			if w < 1 {
				return nil, fmt.Errorf("rolling window must be >= 1, got %d", w)
			}
			return r.Rolling(w), nil
		case "ewm":
			span, err := intArg(method, args, 1)
			if err != nil {
				return nil, err
			}
			if span < 1 {
				return nil, fmt.Errorf("ewm span must be >= 1, got %d", span)
			}
			return r.EWM(span), nil
		case "shift":
			n, err := intArg(method, args, 1)
			if err != nil {
				return nil, err
			}
			return r.Shift(n), nil
		case "diff":
			if err := noArgs(method, args); err != nil {
				return nil, err
			}
			return r.Diff(), nil
		case "abs":
			if err := noArgs(method, args); err != nil {
				return nil, err
			}
			return r.Abs(), nil
		case "cumsum":
			if err := noArgs(method, args); err != nil {
				return nil, err
			}
			return r.Cumsum(), nil
		}
		return nil, fmt.Errorf("unknown series method %q", method)

	case series.Rolling:
		if err := noArgs(method, args); err != nil {
			return nil, err
		}
		switch method {
		case "mean":
			return r.Mean(), nil
		case "std":
			return r.Std(), nil
		case "min":
			return r.Min(), nil
		case "max":
			return r.Max(), nil
		case "sum":
			return r.Sum(), nil
		}
		return nil, fmt.Errorf("unknown rolling method %q", method)

	case series.EWM:
		if err := noArgs(method, args); err != nil {
			return nil, err
		}
		if method == "mean" {
			return r.Mean(), nil
		}
		return nil, fmt.Errorf("unknown ewm method %q", method)
	}
	return nil, fmt.Errorf("cannot call %q on %s", method, typeName(recv))
}

func intArg(method string, args []float64, want int) (int, error) {
	if len(args) != want {
		return 0, fmt.Errorf("%s takes %d argument(s), got %d", method, want, len(args))
	}
	v := args[0]
	n := int(v)
	if float64(n) != v {
		return 0, fmt.Errorf("%s argument must be an integer, got %v", method, v)
	}
	return n, nil
}

func noArgs(method string, args []float64) error {
	if len(args) != 0 {
		return fmt.Errorf("%s takes no arguments, got %d", method, len(args))
	}
	return nil
}

func typeName(v value) string {
	switch v.(type) {
	case float64:
		return "number"
	case series.Series:
		return "series"
	case series.Rolling:
		return "rolling window"
	case series.EWM:
		return "ewm window"
	default:
		return "unknown value"
	}
}
