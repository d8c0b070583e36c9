// Package semantic checks a parsed FanC program: names resolve, types agree,
// break and continue sit inside loops, and every variable gets a frame
// offset. Analysis stops at the first problem found.
package semantic

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/arnavsurve/fanc/internal/compiler/ast"
	"github.com/arnavsurve/fanc/internal/compiler/diag"
	"github.com/arnavsurve/fanc/internal/compiler/scope"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

type Analyzer struct {
	scopes *scope.Stack
	logger *slog.Logger

	retType   types.Type // return type of the function being checked
	loopDepth int
	used      bool
}

type Option func(*Analyzer)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an analyzer reporting scopes and declarations to
// listener, which may be nil. The built-in functions are declared here.
func NewAnalyzer(listener scope.Listener, opts ...Option) *Analyzer {
	a := &Analyzer{
		scopes: scope.NewStack(listener),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	for _, b := range builtins {
		// The global scope is empty at this point.
		_, _ = a.declareFunction(b.name, b.ret, b.params, 0)
	}
	return a
}

// Scopes exposes the scope stack, mainly so callers can inspect the global
// symbols after a successful run.
func (a *Analyzer) Scopes() *scope.Stack { return a.scopes }

// Analyze checks root and returns the first *diag.Diagnostic encountered.
// An Analyzer is single use.
func (a *Analyzer) Analyze(root *ast.Funcs) error {
	if root == nil {
		return fmt.Errorf("analyze: nil program")
	}
	if a.used {
		return fmt.Errorf("analyze: analyzer already used")
	}
	a.used = true

	protos, err := a.declarePrototypes(root)
	if err != nil {
		return err
	}
	if err := checkMain(protos); err != nil {
		return err
	}
	for i := 0; i < protos.Len(); i++ {
		if err := a.function(protos.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// function checks one body. Parameters and the body's top-level statements
// share a single scope.
func (a *Analyzer) function(p Prototype) error {
	a.retType = p.Symbol.Type
	a.loopDepth = 0
	a.scopes.ResetLocals()
	a.logger.Debug("checking function", "name", p.Symbol.Name)

	return a.scopes.Within(func() error {
		for i, formal := range p.Decl.Formals.List {
			if err := a.declareVariable(formal.ID.Name, formal.Type.Type, -(i + 1), formal.Line()); err != nil {
				return err
			}
		}
		return a.statements(p.Decl.Body.List)
	})
}

func (a *Analyzer) statements(list []ast.Stmt) error {
	for _, s := range list {
		if err := a.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// arm checks the body of an if, else or while inside a scope of its own.
// A braced body opens its block scope nested in the arm scope.
func (a *Analyzer) arm(s ast.Stmt) error {
	return a.scopes.Within(func() error {
		return a.stmt(s)
	})
}

func (a *Analyzer) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Statements:
		return a.scopes.Within(func() error {
			return a.statements(s.List)
		})

	case *ast.VarDecl:
		// The variable is visible in its own initializer.
		if err := a.declareVariable(s.ID.Name, s.Type.Type, a.scopes.NextLocal(), s.ID.Line()); err != nil {
			return err
		}
		if s.Init == nil {
			return nil
		}
		t, err := a.expr(s.Init)
		if err != nil {
			return err
		}
		if !types.CanAssign(s.Type.Type, t) {
			return diag.Mismatch(s.Line())
		}
		return nil

	case *ast.Assign:
		sym, ok := a.scopes.Lookup(s.ID.Name)
		if !ok {
			return diag.Undefined(s.Line(), s.ID.Name)
		}
		if sym.IsFunction() {
			return diag.IsFunction(s.Line(), s.ID.Name)
		}
		t, err := a.expr(s.Value)
		if err != nil {
			return err
		}
		if !types.CanAssign(sym.Type, t) {
			return diag.Mismatch(s.Line())
		}
		return nil

	case *ast.Call:
		_, err := a.call(s)
		return err

	case *ast.Return:
		if s.Value == nil {
			if a.retType != types.Void {
				return diag.Mismatch(s.Line())
			}
			return nil
		}
		t, err := a.expr(s.Value)
		if err != nil {
			return err
		}
		if !types.CanAssign(a.retType, t) {
			return diag.Mismatch(s.Line())
		}
		return nil

	case *ast.If:
		if err := a.condition(s.Cond); err != nil {
			return err
		}
		if err := a.arm(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return a.arm(s.Else)
		}
		return nil

	case *ast.While:
		if err := a.condition(s.Cond); err != nil {
			return err
		}
		a.loopDepth++
		defer func() { a.loopDepth-- }()
		return a.arm(s.Body)

	case *ast.Break:
		if a.loopDepth == 0 {
			return diag.UnexpectedBreak(s.Line())
		}
		return nil

	case *ast.Continue:
		if a.loopDepth == 0 {
			return diag.UnexpectedContinue(s.Line())
		}
		return nil

	default:
		return fmt.Errorf("line %d: unhandled statement %T", s.Line(), s)
	}
}

// condition requires a bool; mismatches are reported at the condition.
func (a *Analyzer) condition(e ast.Expr) error {
	t, err := a.expr(e)
	if err != nil {
		return err
	}
	if t != types.Bool {
		return diag.Mismatch(e.Line())
	}
	return nil
}
