// Package encode converts expression trees to and from JSON. A tree is a
// nested object, one per node:
//
//	{"number": "2.5"}                 {"number": "1", "imag": "-2"}
//	{"variable": "x"}                 {"prefix": "-", "operand": {...}}
//	{"operator": "+", "left": {...}, "right": {...}}
//	{"function": "f", "args": [{...}, ...]}
package encode

import (
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

func str(s string) *structpb.Value {
	return structpb.NewStringValue(s)
}

func object(fields map[string]*structpb.Value) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: fields})
}

func ToValue(e *expr.Expr) (*structpb.Value, error) {
	return toValue(e, 0)
}

func toValue(e *expr.Expr, depth int) (*structpb.Value, error) {
	if e == nil {
		return nil, errs.New(errs.NullExpression, "encode")
	}
	if err := expr.CheckDepth(depth); err != nil {
		return nil, err
	}

	switch e.Kind {
	case expr.NumberKind:
		fields := map[string]*structpb.Value{"number": str(e.Num.Real().Text())}
		if !e.Num.IsReal() {
			fields["imag"] = str(e.Num.Imag().Text())
		}
		return object(fields), nil
	case expr.VariableKind:
		return object(map[string]*structpb.Value{"variable": str(e.Name)}), nil
	case expr.PrefixKind:
		v, err := toValue(e.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return object(map[string]*structpb.Value{
			"prefix":  str(e.Op.String()),
			"operand": v,
		}), nil
	case expr.OperatorKind:
		l, err := toValue(e.Left, depth+1)
		if err != nil {
			return nil, err
		}
		r, err := toValue(e.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return object(map[string]*structpb.Value{
			"operator": str(e.Op.String()),
			"left":     l,
			"right":    r,
		}), nil
	case expr.FunctionKind:
		args := make([]*structpb.Value, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := toValue(a, depth+1)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return object(map[string]*structpb.Value{
			"function": str(e.Name),
			"args":     structpb.NewListValue(&structpb.ListValue{Values: args}),
		}), nil
	}
	return nil, errs.Errorf(errs.InvalidToken, "encode: kind %s", e.Kind)
}

func MarshalJSON(e *expr.Expr) ([]byte, error) {
	v, err := ToValue(e)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(v)
}

func FromValue(v *structpb.Value, prec uint) (*expr.Expr, error) {
	return fromValue(v, prec, 0)
}

func field(s *structpb.Struct, name string) (string, bool) {
	v, ok := s.Fields[name]
	if !ok {
		return "", false
	}
	sv, ok := v.Kind.(*structpb.Value_StringValue)
	if !ok {
		return "", false
	}
	return sv.StringValue, true
}

func parseOp(s string) (expr.Op, error) {
	r, n := utf8.DecodeRuneInString(s)
	if n == len(s) {
		if op, ok := expr.OpFromRune(r); ok {
			return op, nil
		}
	}
	return 0, errs.Errorf(errs.InvalidOperator, "encode: %q", s)
}

func fromValue(v *structpb.Value, prec uint, depth int) (*expr.Expr, error) {
	if err := expr.CheckDepth(depth); err != nil {
		return nil, err
	}
	s := v.GetStructValue()
	if s == nil {
		return nil, errs.New(errs.NullExpression, "encode: expected an object")
	}

	if text, ok := field(s, "number"); ok {
		n, err := number.Parse(text, prec)
		if err != nil {
			return nil, err
		}
		if text, ok := field(s, "imag"); ok {
			im, err := number.Parse(text, prec)
			if err != nil {
				return nil, err
			}
			n = number.Complex(n, im)
		}
		return expr.Num(n), nil
	} else if name, ok := field(s, "variable"); ok {
		return expr.Var(name), nil
	} else if sym, ok := field(s, "prefix"); ok {
		op, err := parseOp(sym)
		if err != nil {
			return nil, err
		}
		if !op.IsSign() {
			return nil, errs.Errorf(errs.InvalidPrefix, "encode: %s", op)
		}
		operand, err := fromValue(s.Fields["operand"], prec, depth+1)
		if err != nil {
			return nil, err
		}
		return expr.Prefix(op, operand), nil
	} else if sym, ok := field(s, "operator"); ok {
		op, err := parseOp(sym)
		if err != nil {
			return nil, err
		}
		l, err := fromValue(s.Fields["left"], prec, depth+1)
		if err != nil {
			return nil, err
		}
		r, err := fromValue(s.Fields["right"], prec, depth+1)
		if err != nil {
			return nil, err
		}
		return expr.Operator(op, l, r), nil
	} else if name, ok := field(s, "function"); ok {
		e := expr.Function(name)
		for _, a := range s.Fields["args"].GetListValue().GetValues() {
			arg, err := fromValue(a, prec, depth+1)
			if err != nil {
				return nil, err
			}
			e.Args.Append(arg)
		}
		return e, nil
	}
	return nil, errs.New(errs.InvalidToken, "encode: unknown node")
}

func UnmarshalJSON(b []byte, prec uint) (*expr.Expr, error) {
	var v structpb.Value
	if err := protojson.Unmarshal(b, &v); err != nil {
		return nil, errs.Errorf(errs.InvalidToken, "encode: %s", err)
	}
	return FromValue(&v, prec)
}
