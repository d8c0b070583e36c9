package semantic

import (
	"fmt"

	"github.com/arnavsurve/fanc/internal/compiler/ast"
	"github.com/arnavsurve/fanc/internal/compiler/diag"
	"github.com/arnavsurve/fanc/internal/compiler/lib"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

// expr returns the type of e. Operands are checked left to right.
func (a *Analyzer) expr(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Num:
		return types.Int, nil

	case *ast.NumB:
		if !lib.FitsByte(e.Value) {
			return types.Void, diag.ByteOutOfRange(e.Line(), e.Token.Literal)
		}
		return types.Byte, nil

	case *ast.String:
		return types.String, nil

	case *ast.Bool:
		return types.Bool, nil

	case *ast.ID:
		sym, ok := a.scopes.Lookup(e.Name)
		if !ok {
			return types.Void, diag.Undefined(e.Line(), e.Name)
		}
		if sym.IsFunction() {
			return types.Void, diag.IsFunction(e.Line(), e.Name)
		}
		return sym.Type, nil

	case *ast.Call:
		return a.call(e)

	case *ast.BinOp:
		l, r, err := a.operands(e.Left, e.Right)
		if err != nil {
			return types.Void, err
		}
		if !types.IsNumeric(l) || !types.IsNumeric(r) {
			return types.Void, diag.Mismatch(e.Line())
		}
		return types.Widen(l, r), nil

	case *ast.RelOp:
		l, r, err := a.operands(e.Left, e.Right)
		if err != nil {
			return types.Void, err
		}
		if !types.IsNumeric(l) || !types.IsNumeric(r) {
			return types.Void, diag.Mismatch(e.Line())
		}
		return types.Bool, nil

	case *ast.Not:
		t, err := a.expr(e.Operand)
		if err != nil {
			return types.Void, err
		}
		if t != types.Bool {
			return types.Void, diag.Mismatch(e.Line())
		}
		return types.Bool, nil

	case *ast.And:
		return a.logical(e.Left, e.Right, e.Line())

	case *ast.Or:
		return a.logical(e.Left, e.Right, e.Line())

	case *ast.Cast:
		t, err := a.expr(e.Operand)
		if err != nil {
			return types.Void, err
		}
		if !types.IsNumeric(t) || !types.IsNumeric(e.Target.Type) {
			return types.Void, diag.Mismatch(e.Line())
		}
		return e.Target.Type, nil

	default:
		return types.Void, fmt.Errorf("line %d: unhandled expression %T", e.Line(), e)
	}
}

func (a *Analyzer) operands(left, right ast.Expr) (types.Type, types.Type, error) {
	l, err := a.expr(left)
	if err != nil {
		return types.Void, types.Void, err
	}
	r, err := a.expr(right)
	if err != nil {
		return types.Void, types.Void, err
	}
	return l, r, nil
}

func (a *Analyzer) logical(left, right ast.Expr, line int) (types.Type, error) {
	l, r, err := a.operands(left, right)
	if err != nil {
		return types.Void, err
	}
	if l != types.Bool || r != types.Bool {
		return types.Void, diag.Mismatch(line)
	}
	return types.Bool, nil
}

// call resolves the callee, checks every argument, then matches them against
// the prototype. Arguments widen like assignments do.
func (a *Analyzer) call(c *ast.Call) (types.Type, error) {
	name := c.Callee.Name
	sym, ok := a.scopes.Lookup(name)
	if !ok {
		return types.Void, diag.UndefinedFunction(c.Line(), name)
	}
	if !sym.IsFunction() {
		return types.Void, diag.IsVariable(c.Line(), name)
	}

	actuals := make([]types.Type, 0, len(c.Args.Exps))
	for _, arg := range c.Args.Exps {
		t, err := a.expr(arg)
		if err != nil {
			return types.Void, err
		}
		actuals = append(actuals, t)
	}

	if len(actuals) != len(sym.Params) {
		return types.Void, diag.PrototypeMismatch(c.Line(), name, sym.Params)
	}
	for i, t := range actuals {
		if !types.CanAssign(sym.Params[i], t) {
			return types.Void, diag.PrototypeMismatch(c.Line(), name, sym.Params)
		}
	}
	return sym.Type, nil
}
