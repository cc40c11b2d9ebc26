package evaluate

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/leftmike/algebra/pkg/encode"
	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/isolate"
	"github.com/leftmike/algebra/pkg/number"
	"github.com/leftmike/algebra/pkg/parser"
	"github.com/leftmike/algebra/pkg/simplify"
)

type Options struct {
	Prec      uint
	Simplify  bool
	Isolate   string // isolate this variable in every result containing it
	Format    expr.FormatOptions
	JSON      bool
	JSONInput bool // files hold one JSON tree per line
}

// Session evaluates statements against a single root scope; definitions made
// by one statement are visible to the statements after it.
type Session struct {
	scope *Scope
	opts  Options
	log   zerolog.Logger
	id    uuid.UUID
}

type Result struct {
	Expr     *expr.Expr
	Truth    Truth
	Compared bool
}

// NewSession returns a session with a fresh root scope. A zero Prec or Format
// selects the defaults.
func NewSession(opts Options, log zerolog.Logger) *Session {
	if opts.Prec == 0 {
		opts.Prec = number.DefaultPrec
	}
	if opts.Format == (expr.FormatOptions{}) {
		opts.Format = expr.DefaultFormat
	}

	id := uuid.New()
	return &Session{
		scope: NewRootScope(opts.Prec),
		opts:  opts,
		log:   log.With().Str("session", id.String()).Logger(),
		id:    id,
	}
}

func (ses *Session) Close() {
	ses.scope.Close()
}

func (ses *Session) ID() uuid.UUID {
	return ses.id
}

func (ses *Session) Scope() *Scope {
	return ses.scope
}

// Reset discards every definition made in the session.
func (ses *Session) Reset() {
	ses.scope.Close()
	ses.scope = NewRootScope(ses.opts.Prec)
	ses.log.Debug().Msg("reset")
}

// Define binds name to the evaluated value of src.
func (ses *Session) Define(name, src string) error {
	e, err := parser.ParseString(src, ses.opts.Prec)
	if err != nil {
		return errors.Wrapf(err, "define %s", name)
	}
	err = Evaluate(e, ses.scope)
	if err != nil {
		return errors.Wrapf(err, "define %s", name)
	}
	ses.scope.Define(name, e)
	ses.log.Debug().Str("name", name).Stringer("value", e).Msg("define")
	return nil
}

// Evaluate runs e through the pipeline: evaluate, then optionally simplify and
// isolate followed by a second evaluation. e is modified in place.
func (ses *Session) Evaluate(e *expr.Expr) (Result, error) {
	ses.scope.ResetTruth()
	ses.log.Debug().Stringer("expr", e).Msg("parsed")

	err := Evaluate(e, ses.scope)
	if err != nil {
		return Result{}, err
	}
	ses.log.Debug().Stringer("expr", e).Msg("evaluated")

	again := false
	if ses.opts.Simplify {
		err = simplify.Simplify(e)
		if err != nil {
			return Result{}, err
		}
		ses.log.Debug().Stringer("expr", e).Msg("simplified")
		again = true
	}

	if ses.opts.Isolate != "" {
		if e.Contains(ses.opts.Isolate) {
			err = isolate.Isolate(e, ses.opts.Isolate)
			if err != nil {
				return Result{}, err
			}
			ses.log.Debug().Stringer("expr", e).Str("variable", ses.opts.Isolate).
				Msg("isolated")
			again = true
		} else {
			ses.log.Debug().Str("variable", ses.opts.Isolate).Msg("not present")
		}
	}

	if again {
		err = Evaluate(e, ses.scope)
		if err != nil {
			return Result{}, err
		}
		ses.log.Debug().Stringer("expr", e).Msg("evaluated")
	}

	return Result{
		Expr:     e,
		Truth:    ses.scope.Truth(),
		Compared: ses.scope.Compared(),
	}, nil
}

func (ses *Session) EvaluateString(s string) (Result, error) {
	e, err := parser.ParseString(s, ses.opts.Prec)
	if err != nil {
		return Result{}, err
	}
	return ses.Evaluate(e)
}

// EvaluateJSON decodes a tree in the form written by encode.MarshalJSON and
// evaluates it.
func (ses *Session) EvaluateJSON(b []byte) (Result, error) {
	e, err := encode.UnmarshalJSON(b, ses.opts.Prec)
	if err != nil {
		return Result{}, err
	}
	return ses.Evaluate(e)
}

// Print writes one result line: the expression, followed by the comparison
// outcome in brackets when a comparison was evaluated.
func (ses *Session) Print(w io.Writer, r Result) error {
	if ses.opts.JSON {
		b, err := encode.MarshalJSON(r.Expr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}

	s := expr.Format(r.Expr, ses.opts.Format)
	var err error
	if r.Compared {
		_, err = fmt.Fprintf(w, "%s [%s]\n", s, r.Truth)
	} else {
		_, err = fmt.Fprintln(w, s)
	}
	return err
}

func fatal(err error) bool {
	return errs.Is(err, errs.UnableToOpenFile) || errs.Is(err, errs.FileClosed)
}

// failed logs err and records it if it is the first; it returns true when
// processing should stop.
func (ses *Session) failed(err error, first *error, stopOnError bool) bool {
	ses.log.Error().Err(err).Msg("statement failed")
	if *first == nil {
		*first = err
	}
	return stopOnError || fatal(err)
}

// Run evaluates and prints each statement read from rr. A failing statement is
// logged and, unless stopOnError, skipped; the first error is returned once
// the input is exhausted.
func (ses *Session) Run(rr io.RuneReader, fn string, w io.Writer, stopOnError bool) error {
	p := parser.NewParser(rr, fn, ses.opts.Prec)

	var first error
	for {
		e, err := p.Parse()
		if err == io.EOF {
			break
		} else if err == nil {
			src := e.String()
			var r Result
			r, err = ses.Evaluate(e)
			if err == nil {
				err = ses.Print(w, r)
			} else {
				err = errors.Wrapf(err, "%s: %s", fn, src)
			}
		}

		if err != nil && ses.failed(err, &first, stopOnError) {
			break
		}
	}

	return first
}

// RunJSON is Run for input holding one JSON tree per line; blank lines are
// skipped.
func (ses *Session) RunJSON(r io.Reader, fn string, w io.Writer, stopOnError bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 64<<20)

	var first error
	for line := 1; sc.Scan(); line++ {
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}

		res, err := ses.EvaluateJSON(b)
		if err == nil {
			err = ses.Print(w, res)
		}
		if err != nil {
			err = errors.Wrapf(err, "%s:%d", fn, line)
			if ses.failed(err, &first, stopOnError) {
				return first
			}
		}
	}

	if err := sc.Err(); err != nil && first == nil {
		first = errors.Wrap(err, fn)
	}
	return first
}

// RunFile evaluates the statements in path, stopping at the first failure.
func (ses *Session) RunFile(fsys billy.Filesystem, path string, w io.Writer) error {
	f, err := fsys.Open(path)
	if err != nil {
		return errs.Errorf(errs.UnableToOpenFile, "%s: %s", path, err)
	}
	defer f.Close()

	ses.log.Debug().Str("file", path).Bool("json", ses.opts.JSONInput).Msg("run")
	if ses.opts.JSONInput {
		return ses.RunJSON(f, path, w, true)
	}
	return ses.Run(bufio.NewReader(f), path, w, true)
}
