package evaluate

import (
	"github.com/google/btree"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

type Truth int

const (
	Unknown Truth = iota
	True
	False
)

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

// Callback materializes a native entry; parameters are bound in s.
type Callback func(s *Scope) (*expr.Expr, error)

type Entry struct {
	Name     string
	Value    *expr.Expr
	Callback Callback
	Params   []string // non-nil when the entry is callable
	Constant bool
}

func (ent *Entry) Callable() bool {
	return ent.Params != nil
}

func lessEntries(ent1, ent2 *Entry) bool {
	return ent1.Name < ent2.Name
}

type Scope struct {
	entries  *btree.BTreeG[*Entry]
	parent   *Scope
	builtins *Builtins
	truth    Truth
	compares int
}

func NewScope(parent *Scope) *Scope {
	s := &Scope{
		entries: btree.NewG[*Entry](8, lessEntries),
		parent:  parent,
	}
	if parent != nil {
		s.builtins = parent.builtins
	}
	return s
}

// NewRootScope returns a scope holding the built-in constants and functions
// computed at prec bits. Close releases the built-ins.
func NewRootScope(prec uint) *Scope {
	s := NewScope(nil)
	s.builtins = NewBuiltins(prec)
	s.builtins.Register(s)
	return s
}

func (s *Scope) Close() {
	if s.parent == nil && s.builtins != nil {
		s.builtins.Close()
	}
}

// Prec is the precision numbers are created with in this scope.
func (s *Scope) Prec() uint {
	if s.builtins == nil {
		return number.DefaultPrec
	}
	return s.builtins.prec
}

func (s *Scope) release() {
	s.entries.Clear(false)
}

func (s *Scope) insert(ent *Entry) {
	if old, ok := s.entries.Get(ent); ok && old.Constant {
		return
	}
	s.entries.ReplaceOrInsert(ent)
}

func (s *Scope) Define(name string, value *expr.Expr) {
	s.insert(&Entry{Name: name, Value: value})
}

func (s *Scope) DefineConstant(name string, value *expr.Expr) {
	s.insert(&Entry{Name: name, Value: value, Constant: true})
}

func (s *Scope) DefineFunction(name string, params []string, body *expr.Expr) {
	if params == nil {
		params = []string{}
	}
	s.insert(&Entry{Name: name, Value: body, Params: params})
}

// DefineNative adds an entry backed by cb. Without params the entry behaves
// like a variable whose value is computed on every read.
func (s *Scope) DefineNative(name string, cb Callback, params ...string) {
	ent := &Entry{Name: name, Callback: cb}
	if len(params) > 0 {
		ent.Params = params
	}
	s.insert(ent)
}

func (s *Scope) Lookup(name string) (*Entry, error) {
	key := &Entry{Name: name}
	for scope := s; scope != nil; scope = scope.parent {
		if ent, ok := scope.entries.Get(key); ok {
			return ent, nil
		}
	}
	return nil, errs.Errorf(errs.NonexistentKey, "evaluate: %s", name)
}

// Has reports whether name resolves in s or a parent.
func (s *Scope) Has(name string) bool {
	_, err := s.Lookup(name)
	return err == nil
}

func (s *Scope) GetValue(name string) (*expr.Expr, error) {
	ent, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	if len(ent.Params) > 0 {
		return nil, errs.Errorf(errs.IsAFunction, "evaluate: %s", name)
	}
	if ent.Callback != nil {
		return ent.Callback(s)
	}
	if ent.Value == nil {
		return nil, errs.Errorf(errs.NullExpression, "evaluate: %s", name)
	}
	return ent.Value.Copy(), nil
}

func (s *Scope) Call(name string, args expr.List) (*expr.Expr, error) {
	return s.call(name, args, 0)
}

func (s *Scope) call(name string, args expr.List, depth int) (*expr.Expr, error) {
	ent, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !ent.Callable() {
		return nil, errs.Errorf(errs.IsAVariable, "evaluate: %s", name)
	}
	if len(args) != len(ent.Params) {
		return nil, errs.Errorf(errs.WrongArgumentCount, "evaluate: %s: expected %d, got %d",
			name, len(ent.Params), len(args))
	}

	child := NewScope(s)
	defer child.release()

	for i, arg := range args {
		if err := evaluate(arg, s, depth+1); err != nil {
			return nil, err
		}
		child.Define(ent.Params[i], arg.Copy())
	}

	if ent.Callback != nil {
		return ent.Callback(child)
	}
	body := ent.Value.Copy()
	if err := evaluate(body, child, depth+1); err != nil {
		return nil, err
	}
	return body, nil
}

// Names returns the names defined directly in s, in order.
func (s *Scope) Names() []string {
	var names []string
	s.entries.Ascend(func(ent *Entry) bool {
		names = append(names, ent.Name)
		return true
	})
	return names
}

func (s *Scope) Truth() Truth {
	return s.truth
}

// Compared reports whether a comparison was evaluated since ResetTruth.
func (s *Scope) Compared() bool {
	return s.compares > 0
}

func (s *Scope) ResetTruth() {
	s.truth = Unknown
	s.compares = 0
}

func (s *Scope) updateTruth(ok bool) {
	s.compares += 1
	if s.truth == False {
		return
	} else if !ok {
		s.truth = False
	} else if s.compares == 1 || s.truth == True {
		s.truth = True
	}
}

func (s *Scope) unknownTruth() {
	s.compares += 1
	if s.truth != False {
		s.truth = Unknown
	}
}
