package semantic

import (
	"github.com/arnavsurve/fanc/internal/compiler/ast"
	"github.com/arnavsurve/fanc/internal/compiler/diag"
	"github.com/arnavsurve/fanc/internal/compiler/symbols"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

// Prototype pairs a declared function with the syntax of its body.
type Prototype struct {
	Symbol symbols.Symbol
	Decl   *ast.FuncDecl
}

// Prototypes is the outcome of the prototype pass: every user function in
// declaration order. It is never modified after the pass returns.
type Prototypes struct {
	list  []Prototype
	index map[string]int
}

func (p Prototypes) Len() int { return len(p.list) }

func (p Prototypes) At(i int) Prototype { return p.list[i] }

func (p Prototypes) Lookup(name string) (Prototype, bool) {
	i, ok := p.index[name]
	if !ok {
		return Prototype{}, false
	}
	return p.list[i], true
}

// declarePrototypes registers every function signature before any body is
// looked at, so calls may refer to functions declared later in the file.
func (a *Analyzer) declarePrototypes(root *ast.Funcs) (Prototypes, error) {
	protos := Prototypes{
		list:  make([]Prototype, 0, len(root.Funcs)),
		index: make(map[string]int, len(root.Funcs)),
	}
	for _, fn := range root.Funcs {
		sym, err := a.declareFunction(fn.ID.Name, fn.ReturnType.Type, fn.ParamTypes(), fn.ID.Line())
		if err != nil {
			return Prototypes{}, err
		}
		protos.index[sym.Name] = len(protos.list)
		protos.list = append(protos.list, Prototype{Symbol: sym, Decl: fn})
	}
	return protos, nil
}

// checkMain requires a user-declared `void main()`.
func checkMain(protos Prototypes) error {
	main, ok := protos.Lookup("main")
	if !ok || main.Symbol.Type != types.Void || len(main.Symbol.Params) != 0 {
		return diag.MainMissing()
	}
	return nil
}
