package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/fanc/internal/compiler/ast"
	"github.com/arnavsurve/fanc/internal/compiler/diag"
	"github.com/arnavsurve/fanc/internal/compiler/lexer"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

// --- Test Helper Functions ---

// checkParserErrors is a common helper function for parser tests.
func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper() // Marks this function as a test helper
	errors := p.Errors()
	if len(errors) == 0 {
		return
	}

	t.Errorf("Parser has %d errors:", len(errors))
	for i, d := range errors {
		t.Errorf("   Error %d: %q (%s)", i+1, d.Error(), d.Detail)
	}
	t.FailNow() // Stop the test if there are parsing errors
}

func parse(t *testing.T, input string) *ast.Funcs {
	t.Helper()
	p := NewParser(lexer.NewLexer(input))
	program := p.ParseProgram()
	checkParserErrors(t, p)
	require.NotNil(t, program, "ParseProgram() returned nil")
	return program
}

// --- The Test Cases ---

func TestFunctionDeclarations(t *testing.T) {
	input := `
int add(int a, byte b) {
	return a + b;
}

void main() {
	printi(add(1, 2b));
}
`
	program := parse(t, input)
	require.Len(t, program.Funcs, 2)

	add := program.Funcs[0]
	assert.Equal(t, "add", add.ID.Name)
	assert.Equal(t, types.Int, add.ReturnType.Type)
	assert.Equal(t, []types.Type{types.Int, types.Byte}, add.ParamTypes())
	assert.Equal(t, 2, add.Line())
	require.Len(t, add.Body.List, 1)

	ret, ok := add.Body.List[0].(*ast.Return)
	require.True(t, ok, "add.Body.List[0] is not *ast.Return. got=%T", add.Body.List[0])
	assert.Equal(t, "(a + b)", ret.Value.String())
	assert.Equal(t, 3, ret.Line())

	main := program.Funcs[1]
	assert.Equal(t, "main", main.ID.Name)
	assert.Equal(t, types.Void, main.ReturnType.Type)
	assert.Empty(t, main.Formals.List)
	assert.Equal(t, 6, main.Line())

	call, ok := main.Body.List[0].(*ast.Call)
	require.True(t, ok, "main.Body.List[0] is not *ast.Call. got=%T", main.Body.List[0])
	assert.Equal(t, "printi", call.Callee.Name)
	require.Len(t, call.Args.Exps, 1)

	inner, ok := call.Args.Exps[0].(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "add(1, 2b)", inner.String())
}

func TestStatements(t *testing.T) {
	input := `void main() {
	int x;
	byte y = 3b;
	x = y;
	{ bool z = true; }
	if (x < 3) x = 1; else { x = 2; }
	while (true) { break; continue; }
	return;
}`
	program := parse(t, input)
	body := program.Funcs[0].Body.List
	require.Len(t, body, 7)

	vd, ok := body[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Nil(t, vd.Init)
	assert.Equal(t, types.Int, vd.Type.Type)

	vd, ok = body[1].(*ast.VarDecl)
	require.True(t, ok)
	numb, ok := vd.Init.(*ast.NumB)
	require.True(t, ok)
	assert.Equal(t, int64(3), numb.Value)

	_, ok = body[2].(*ast.Assign)
	assert.True(t, ok)

	block, ok := body[3].(*ast.Statements)
	require.True(t, ok)
	assert.Len(t, block.List, 1)
	assert.Equal(t, 5, block.Line())

	ifs, ok := body[4].(*ast.If)
	require.True(t, ok)
	_, ok = ifs.Then.(*ast.Assign)
	assert.True(t, ok, "bare then arm should stay a single statement")
	_, ok = ifs.Else.(*ast.Statements)
	assert.True(t, ok, "else arm should be a block")

	loop, ok := body[5].(*ast.While)
	require.True(t, ok)
	loopBody := loop.Body.(*ast.Statements)
	require.Len(t, loopBody.List, 2)
	assert.IsType(t, &ast.Break{}, loopBody.List[0])
	assert.IsType(t, &ast.Continue{}, loopBody.List[1])

	ret, ok := body[6].(*ast.Return)
	require.True(t, ok)
	assert.Nil(t, ret.Value)
}

func TestDanglingElse(t *testing.T) {
	program := parse(t, `void main() { if (true) if (false) return; else return; }`)
	outer := program.Funcs[0].Body.List[0].(*ast.If)
	assert.Nil(t, outer.Else)
	inner := outer.Then.(*ast.If)
	assert.NotNil(t, inner.Else)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"a or b and c", "(a or (b and c))"},
		{"not a and b", "((not a) and b)"},
		{"not a == b", "((not a) == b)"},
		{"(byte) x + 1", "(((byte) x) + 1)"},
		{"(int) (byte) 300", "((int) ((byte) 300))"},
		{"f(1, 2 + 3) * 2", "(f(1, (2 + 3)) * 2)"},
		{"1 + 2 <= 3 or false", "(((1 + 2) <= 3) or false)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parse(t, "void main() { bool r = "+tt.input+"; }")
			vd := program.Funcs[0].Body.List[0].(*ast.VarDecl)
			assert.Equal(t, tt.expected, vd.Init.String())
		})
	}
}

func TestNotOperand(t *testing.T) {
	program := parse(t, "void main() { bool r = not true; }")
	vd := program.Funcs[0].Body.List[0].(*ast.VarDecl)
	not, ok := vd.Init.(*ast.Not)
	require.True(t, ok)
	assert.IsType(t, &ast.Bool{}, not.Operand)
}

func TestLiterals(t *testing.T) {
	program := parse(t, `void main() { print("a\tb"); int n = 99999999999999999999; byte b = 255b; }`)
	body := program.Funcs[0].Body.List

	s := body[0].(*ast.Call).Args.Exps[0].(*ast.String)
	assert.Equal(t, `a\tb`, s.Value)

	n := body[1].(*ast.VarDecl).Init.(*ast.Num)
	assert.Greater(t, n.Value, int64(255))

	b := body[2].(*ast.VarDecl).Init.(*ast.NumB)
	assert.Equal(t, int64(255), b.Value)
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  diag.Kind
		line  int
	}{
		{"missing semicolon", "void main() {\n int x = 1\n}", diag.KindSyntax, 3},
		{"missing return type", "main() { }", diag.KindSyntax, 1},
		{"string variable", "void main() {\n string s; }", diag.KindSyntax, 2},
		{"void parameter", "void f(void x) { }", diag.KindSyntax, 1},
		{"unclosed block", "void main() {\n int x;\n", diag.KindSyntax, 3},
		{"missing paren", "void main() { if true) return; }", diag.KindSyntax, 1},
		{"empty cast", "void main() { int x = () 3; }", diag.KindSyntax, 1},
		{"expression statement", "void main() {\n x + 1; }", diag.KindSyntax, 2},
		{"illegal char", "void main() {\n\n int x = 3 @ 4; }", diag.KindLexical, 3},
		{"bang", "void main() { if (!x) return; }", diag.KindLexical, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(lexer.NewLexer(tt.input))
			program := p.ParseProgram()
			assert.Nil(t, program)
			require.Len(t, p.Errors(), 1, "parsing must stop at the first error")

			err := p.Err()
			require.Error(t, err)
			assert.True(t, diag.Is(err, tt.kind), "got %v", err)
			d, _ := diag.As(err)
			assert.Equal(t, tt.line, d.Line)
		})
	}
}

func TestEmptyProgram(t *testing.T) {
	p := NewParser(lexer.NewLexer("// nothing here\n"))
	program := p.ParseProgram()
	checkParserErrors(t, p)
	require.NotNil(t, program)
	assert.Empty(t, program.Funcs)
}
