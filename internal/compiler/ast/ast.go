package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arnavsurve/fanc/internal/compiler/token"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

// --- Interfaces ---

// Node is implemented only by the types in this file. Consumers switch over
// the concrete types; adding a node means updating every such switch.
type Node interface {
	Line() int
	String() string
	node()
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Base carries the token a node starts at.
type Base struct {
	Token token.Token
}

// At positions a node at tok.
func At(tok token.Token) Base { return Base{Token: tok} }

func (b Base) Line() int { return b.Token.Line }
func (Base) node()       {}

// --- Program ---

// Funcs is the root: every function in declaration order.
type Funcs struct {
	Base
	Funcs []*FuncDecl
}

func (f *Funcs) String() string {
	var out bytes.Buffer
	for _, fn := range f.Funcs {
		out.WriteString(fn.String())
		out.WriteString("\n")
	}
	return out.String()
}

// FuncDecl -> int add(int a, int b) { ... }
type FuncDecl struct {
	Base
	ReturnType *Type
	ID         *ID
	Formals    *Formals
	Body       *Statements
}

func (fd *FuncDecl) String() string {
	return fmt.Sprintf("%s %s(%s) %s", fd.ReturnType, fd.ID, fd.Formals, fd.Body)
}

// ParamTypes is the declared parameter type sequence.
func (fd *FuncDecl) ParamTypes() []types.Type {
	out := make([]types.Type, 0, len(fd.Formals.List))
	for _, f := range fd.Formals.List {
		out = append(out, f.Type.Type)
	}
	return out
}

type Formals struct {
	Base
	List []*Formal
}

func (fs *Formals) String() string {
	parts := make([]string, 0, len(fs.List))
	for _, f := range fs.List {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ", ")
}

// Formal -> int a
type Formal struct {
	Base
	Type *Type
	ID   *ID
}

func (f *Formal) String() string { return f.Type.String() + " " + f.ID.String() }

// Type is a type keyword as written in the source.
type Type struct {
	Base
	Type types.Type
}

func (t *Type) String() string { return t.Type.String() }

// --- Statements ---

// Statements -> { statement1 statement2 }
type Statements struct {
	Base
	List []Stmt
}

func (*Statements) stmtNode() {}
func (s *Statements) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, st := range s.List {
		out.WriteString("\t" + st.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// VarDecl -> int x; or int x = value;
type VarDecl struct {
	Base
	Type *Type
	ID   *ID
	Init Expr // nil when absent
}

func (*VarDecl) stmtNode() {}
func (vd *VarDecl) String() string {
	if vd.Init != nil {
		return fmt.Sprintf("%s %s = %s;", vd.Type, vd.ID, vd.Init)
	}
	return fmt.Sprintf("%s %s;", vd.Type, vd.ID)
}

// Assign -> x = value;
type Assign struct {
	Base
	ID    *ID
	Value Expr
}

func (*Assign) stmtNode() {}
func (a *Assign) String() string { return fmt.Sprintf("%s = %s;", a.ID, a.Value) }

type If struct {
	Base
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

func (*If) stmtNode() {}
func (i *If) String() string {
	s := fmt.Sprintf("if (%s) %s", i.Cond, i.Then)
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

type While struct {
	Base
	Cond Expr
	Body Stmt
}

func (*While) stmtNode() {}
func (w *While) String() string { return fmt.Sprintf("while (%s) %s", w.Cond, w.Body) }

type Break struct{ Base }

func (*Break) stmtNode()       {}
func (*Break) String() string { return "break;" }

type Continue struct{ Base }

func (*Continue) stmtNode()       {}
func (*Continue) String() string { return "continue;" }

// Return -> return; or return value;
type Return struct {
	Base
	Value Expr // nil for a bare return
}

func (*Return) stmtNode() {}
func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// --- Expressions ---

type Num struct {
	Base
	Value int64
}

func (*Num) exprNode()        {}
func (n *Num) String() string { return n.Token.Literal }

// NumB -> 12b
type NumB struct {
	Base
	Value int64
}

func (*NumB) exprNode()        {}
func (n *NumB) String() string { return n.Token.Literal + "b" }

type String struct {
	Base
	Value string
}

func (*String) exprNode()        {}
func (s *String) String() string { return `"` + s.Value + `"` }

type Bool struct {
	Base
	Value bool
}

func (*Bool) exprNode()        {}
func (b *Bool) String() string { return fmt.Sprintf("%t", b.Value) }

type ID struct {
	Base
	Name string
}

func (*ID) exprNode()        {}
func (i *ID) String() string { return i.Name }

// BinOp -> left (+|-|*|/) right
type BinOp struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (*BinOp) exprNode() {}
func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// RelOp -> left (==|!=|<|>|<=|>=) right
type RelOp struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (*RelOp) exprNode() {}
func (r *RelOp) String() string {
	return "(" + r.Left.String() + " " + r.Op + " " + r.Right.String() + ")"
}

type Not struct {
	Base
	Operand Expr
}

func (*Not) exprNode()        {}
func (n *Not) String() string { return "(not " + n.Operand.String() + ")" }

type And struct {
	Base
	Left  Expr
	Right Expr
}

func (*And) exprNode()        {}
func (a *And) String() string { return "(" + a.Left.String() + " and " + a.Right.String() + ")" }

type Or struct {
	Base
	Left  Expr
	Right Expr
}

func (*Or) exprNode()        {}
func (o *Or) String() string { return "(" + o.Left.String() + " or " + o.Right.String() + ")" }

// Cast -> (byte) value
type Cast struct {
	Base
	Target  *Type
	Operand Expr
}

func (*Cast) exprNode()        {}
func (c *Cast) String() string { return "((" + c.Target.String() + ") " + c.Operand.String() + ")" }

// Call is both an expression and, followed by ';', a statement.
type Call struct {
	Base
	Callee *ID
	Args   *ExpList
}

func (*Call) exprNode() {}
func (*Call) stmtNode() {}
func (c *Call) String() string { return c.Callee.String() + "(" + c.Args.String() + ")" }

type ExpList struct {
	Base
	Exps []Expr
}

func (el *ExpList) String() string {
	parts := make([]string, 0, len(el.Exps))
	for _, e := range el.Exps {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
