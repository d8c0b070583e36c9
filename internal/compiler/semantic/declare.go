package semantic

import (
	"github.com/arnavsurve/fanc/internal/compiler/diag"
	"github.com/arnavsurve/fanc/internal/compiler/symbols"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

type builtin struct {
	name   string
	ret    types.Type
	params []types.Type
}

// builtins are the output primitives every program can call.
var builtins = []builtin{
	{name: "print", ret: types.Void, params: []types.Type{types.String}},
	{name: "printi", ret: types.Void, params: []types.Type{types.Int}},
}

// declareVariable inserts a variable into the current scope. A name visible
// from any open scope, functions included, may not be declared again.
func (a *Analyzer) declareVariable(name string, t types.Type, offset, line int) error {
	if a.scopes.ExistsInEnclosing(name) {
		return diag.Redeclared(line, name)
	}
	if err := a.scopes.Insert(symbols.NewVariable(name, t, offset, line)); err != nil {
		return diag.Redeclared(line, name)
	}
	a.scopes.Listener().EmitVar(name, t, offset)
	a.logger.Debug("declared variable", "name", name, "type", t, "offset", offset, "depth", a.scopes.Depth())
	return nil
}

// declareFunction inserts a function into the global scope regardless of
// the current depth.
func (a *Analyzer) declareFunction(name string, ret types.Type, params []types.Type, line int) (symbols.Symbol, error) {
	sym := symbols.NewFunction(name, ret, params, line)
	if err := a.scopes.InsertGlobal(sym); err != nil {
		return symbols.Symbol{}, diag.Redeclared(line, name)
	}
	a.scopes.Listener().EmitFunc(name, ret, sym.Params)
	a.logger.Debug("declared function", "name", name, "ret", ret, "params", len(params))
	return sym, nil
}
