package symbols

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/fanc/internal/compiler/types"
)

type Kind int

const (
	Variable Kind = iota
	Function
)

func (k Kind) String() string {
	if k == Function {
		return "function"
	}
	return "variable"
}

type Symbol struct {
	Name string
	Kind Kind
	Type types.Type // declared type, or return type for functions
	Line int

	// --- Function specific info ---
	Params []types.Type

	// --- Variable specific info ---
	Offset int // params -1, -2, ...; locals 0, 1, ...
}

func NewVariable(name string, t types.Type, offset, line int) Symbol {
	return Symbol{Name: name, Kind: Variable, Type: t, Offset: offset, Line: line}
}

func NewFunction(name string, ret types.Type, params []types.Type, line int) Symbol {
	// Own the slice so later mutation by the caller can't leak in.
	ps := make([]types.Type, len(params))
	copy(ps, params)
	return Symbol{Name: name, Kind: Function, Type: ret, Params: ps, Line: line}
}

func (s Symbol) IsFunction() bool { return s.Kind == Function }

func (s Symbol) String() string {
	if s.IsFunction() {
		return fmt.Sprintf("%s (%s) -> %s", s.Name, strings.Join(types.Names(s.Params), ","), s.Type)
	}
	return fmt.Sprintf("%s %s %d", s.Name, s.Type, s.Offset)
}
