package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
	"github.com/leftmike/algebra/pkg/parser"
)

func MustParse(t testing.TB, s string) *expr.Expr {
	t.Helper()

	e, err := parser.ParseString(s, number.DefaultPrec)
	if err != nil {
		t.Fatalf("ParseString(%q) failed with %s", s, err)
	}
	return e
}

// DiffExpr returns a readable difference between two trees, ignoring the
// scope remembered by variables; it is empty when the trees are the same.
func DiffExpr(want, got *expr.Expr) string {
	return cmp.Diff(want, got,
		cmpopts.IgnoreFields(expr.Expr{}, "Env"),
		cmp.Comparer(number.Equal))
}
