package scope

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/fanc/internal/compiler/symbols"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

var ErrPopGlobal = errors.New("cannot pop the global scope")

// Listener receives scope boundaries and declarations in traversal order.
type Listener interface {
	BeginScope()
	EndScope()
	EmitVar(name string, t types.Type, offset int)
	EmitFunc(name string, ret types.Type, params []types.Type)
}

type nopListener struct{}

func (nopListener) BeginScope()                                {}
func (nopListener) EndScope()                                  {}
func (nopListener) EmitVar(string, types.Type, int)            {}
func (nopListener) EmitFunc(string, types.Type, []types.Type) {}

// --- Scope ---
type Scope struct {
	Symbols map[string]symbols.Symbol
	Names   []string // insertion order, for reporting

	savedLocal int // local offset counter at the time this scope was pushed
}

func NewScope() *Scope {
	return &Scope{Symbols: make(map[string]symbols.Symbol)}
}

// Define adds a symbol ONLY to this scope level.
// It returns an error if the name already exists at this level.
func (s *Scope) Define(sym symbols.Symbol) error {
	if _, exists := s.Symbols[sym.Name]; exists {
		return fmt.Errorf("symbol '%s' already declared in this scope", sym.Name)
	}
	s.Symbols[sym.Name] = sym
	s.Names = append(s.Names, sym.Name)
	return nil
}

// Lookup checks ONLY this scope level.
func (s *Scope) Lookup(name string) (symbols.Symbol, bool) {
	sym, ok := s.Symbols[name]
	return sym, ok
}

// --- Stack ---

// Stack is the ordered sequence of open scopes. Index 0 is the global scope
// and is never popped.
type Stack struct {
	scopes    []*Scope
	listener  Listener
	nextLocal int
}

func NewStack(l Listener) *Stack {
	if l == nil {
		l = nopListener{}
	}
	return &Stack{
		scopes:   []*Scope{NewScope()},
		listener: l,
	}
}

func (st *Stack) Listener() Listener { return st.listener }

// Depth is the number of open scopes, the global one included.
func (st *Stack) Depth() int { return len(st.scopes) }

func (st *Stack) Global() *Scope { return st.scopes[0] }

func (st *Stack) Current() *Scope { return st.scopes[len(st.scopes)-1] }

func (st *Stack) Push() {
	sc := NewScope()
	sc.savedLocal = st.nextLocal
	st.scopes = append(st.scopes, sc)
	st.listener.BeginScope()
}

// Pop closes the innermost scope and restores the local offset counter to
// its value at the matching Push, so sibling blocks reuse slots.
func (st *Stack) Pop() error {
	if len(st.scopes) <= 1 {
		return ErrPopGlobal
	}
	sc := st.Current()
	st.listener.EndScope()
	st.scopes = st.scopes[:len(st.scopes)-1]
	st.nextLocal = sc.savedLocal
	return nil
}

// Within runs fn inside a freshly pushed scope. The scope is popped on every
// return path, including when fn fails.
func (st *Stack) Within(fn func() error) (err error) {
	st.Push()
	defer func() {
		if perr := st.Pop(); perr != nil && err == nil {
			err = perr
		}
	}()
	return fn()
}

// Lookup searches innermost to outermost; the first match wins.
func (st *Stack) Lookup(name string) (symbols.Symbol, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].Lookup(name); ok {
			return sym, true
		}
	}
	return symbols.Symbol{}, false
}

func (st *Stack) ExistsInCurrent(name string) bool {
	_, ok := st.Current().Lookup(name)
	return ok
}

func (st *Stack) ExistsInAny(name string) bool {
	_, ok := st.Lookup(name)
	return ok
}

// ExistsInEnclosing reports whether name is defined in any open scope other
// than the innermost one.
func (st *Stack) ExistsInEnclosing(name string) bool {
	for i := len(st.scopes) - 2; i >= 0; i-- {
		if _, ok := st.scopes[i].Lookup(name); ok {
			return true
		}
	}
	return false
}

// Insert defines sym in the innermost scope.
func (st *Stack) Insert(sym symbols.Symbol) error {
	return st.Current().Define(sym)
}

// InsertGlobal defines sym in the outermost scope regardless of depth.
func (st *Stack) InsertGlobal(sym symbols.Symbol) error {
	return st.Global().Define(sym)
}

// NextLocal hands out the next local offset.
func (st *Stack) NextLocal() int {
	off := st.nextLocal
	st.nextLocal++
	return off
}

// ResetLocals restarts local numbering at 0, at the start of a function body.
func (st *Stack) ResetLocals() {
	st.nextLocal = 0
}
