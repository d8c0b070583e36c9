// Package diag defines the diagnostics produced by the FanC front end and
// semantic analyzer. Every check is fail-fast: the first Diagnostic returned
// ends the compilation.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavsurve/fanc/internal/compiler/types"
)

type Kind string

const (
	KindLexical             Kind = "LEXICAL"
	KindSyntax              Kind = "SYNTAX"
	KindRedeclaredName      Kind = "REDECLARED_NAME"
	KindUndefinedName       Kind = "UNDEFINED_NAME"
	KindNameIsFunction      Kind = "NAME_IS_FUNCTION"
	KindNameIsVariable      Kind = "NAME_IS_VARIABLE"
	KindTypeMismatch        Kind = "TYPE_MISMATCH"
	KindPrototypeMismatch   Kind = "PROTOTYPE_MISMATCH"
	KindByteOutOfRange      Kind = "BYTE_OUT_OF_RANGE"
	KindBreakOutsideLoop    Kind = "BREAK_OUTSIDE_LOOP"
	KindContinueOutsideLoop Kind = "CONTINUE_OUTSIDE_LOOP"
	KindMainMissing         Kind = "MAIN_MISSING_OR_INVALID"
)

// Kinds lists every diagnostic kind, front end first.
var Kinds = []Kind{
	KindLexical, KindSyntax,
	KindRedeclaredName, KindUndefinedName, KindNameIsFunction, KindNameIsVariable,
	KindTypeMismatch, KindPrototypeMismatch, KindByteOutOfRange,
	KindBreakOutsideLoop, KindContinueOutsideLoop, KindMainMissing,
}

type Diagnostic struct {
	Kind    Kind
	Line    int
	Name    string       // offending identifier, when there is one
	Params  []types.Type // expected parameter list for prototype mismatches
	Literal string       // byte literal as written, for range errors
	Callee  bool         // the undefined name was used as a function
	Detail  string       // extra context for front-end errors, not rendered
}

func (d *Diagnostic) Error() string {
	switch d.Kind {
	case KindLexical:
		return fmt.Sprintf("line %d: lexical error", d.Line)
	case KindSyntax:
		return fmt.Sprintf("line %d: syntax error", d.Line)
	case KindRedeclaredName:
		return fmt.Sprintf("line %d: symbol %s is already defined", d.Line, d.Name)
	case KindUndefinedName:
		if d.Callee {
			return fmt.Sprintf("line %d: function %s is not defined", d.Line, d.Name)
		}
		return fmt.Sprintf("line %d: variable %s is not defined", d.Line, d.Name)
	case KindNameIsFunction:
		return fmt.Sprintf("line %d: symbol %s is a function", d.Line, d.Name)
	case KindNameIsVariable:
		return fmt.Sprintf("line %d: symbol %s is a variable", d.Line, d.Name)
	case KindTypeMismatch:
		return fmt.Sprintf("line %d: type mismatch", d.Line)
	case KindPrototypeMismatch:
		return fmt.Sprintf("line %d: prototype mismatch, function %s expects parameters (%s)",
			d.Line, d.Name, strings.Join(types.Names(d.Params), ","))
	case KindByteOutOfRange:
		return fmt.Sprintf("line %d: byte literal %s out of range", d.Line, d.Literal)
	case KindBreakOutsideLoop:
		return fmt.Sprintf("line %d: unexpected break statement", d.Line)
	case KindContinueOutsideLoop:
		return fmt.Sprintf("line %d: unexpected continue statement", d.Line)
	case KindMainMissing:
		return "Program has no 'void main()' function"
	default:
		return fmt.Sprintf("line %d: [%s] %s", d.Line, d.Kind, d.Name)
	}
}

// --- Constructors ---

func Lexical(line int, detail string) *Diagnostic {
	return &Diagnostic{Kind: KindLexical, Line: line, Detail: detail}
}

func Syntax(line int, detail string) *Diagnostic {
	return &Diagnostic{Kind: KindSyntax, Line: line, Detail: detail}
}

func Redeclared(line int, name string) *Diagnostic {
	return &Diagnostic{Kind: KindRedeclaredName, Line: line, Name: name}
}

func Undefined(line int, name string) *Diagnostic {
	return &Diagnostic{Kind: KindUndefinedName, Line: line, Name: name}
}

func UndefinedFunction(line int, name string) *Diagnostic {
	return &Diagnostic{Kind: KindUndefinedName, Line: line, Name: name, Callee: true}
}

func IsFunction(line int, name string) *Diagnostic {
	return &Diagnostic{Kind: KindNameIsFunction, Line: line, Name: name}
}

func IsVariable(line int, name string) *Diagnostic {
	return &Diagnostic{Kind: KindNameIsVariable, Line: line, Name: name}
}

func Mismatch(line int) *Diagnostic {
	return &Diagnostic{Kind: KindTypeMismatch, Line: line}
}

func PrototypeMismatch(line int, name string, params []types.Type) *Diagnostic {
	ps := make([]types.Type, len(params))
	copy(ps, params)
	return &Diagnostic{Kind: KindPrototypeMismatch, Line: line, Name: name, Params: ps}
}

func ByteOutOfRange(line int, literal string) *Diagnostic {
	return &Diagnostic{Kind: KindByteOutOfRange, Line: line, Literal: literal}
}

func UnexpectedBreak(line int) *Diagnostic {
	return &Diagnostic{Kind: KindBreakOutsideLoop, Line: line}
}

func UnexpectedContinue(line int) *Diagnostic {
	return &Diagnostic{Kind: KindContinueOutsideLoop, Line: line}
}

func MainMissing() *Diagnostic {
	return &Diagnostic{Kind: KindMainMissing}
}

// --- Inspection ---

// As extracts the Diagnostic from an error chain.
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// KindOf returns the diagnostic kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	if d, ok := As(err); ok {
		return d.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
