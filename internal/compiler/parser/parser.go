package parser

import (
	"github.com/arnavsurve/fanc/internal/compiler/ast"
	"github.com/arnavsurve/fanc/internal/compiler/diag"
	"github.com/arnavsurve/fanc/internal/compiler/lexer"
	"github.com/arnavsurve/fanc/internal/compiler/lib"
	"github.com/arnavsurve/fanc/internal/compiler/token"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

// Precedence levels for Pratt parsing
const (
	_ int = iota
	PrecLowest
	PrecOr         // or
	PrecAnd        // and
	PrecEquality   // ==, !=
	PrecRelational // <, >, <=, >=
	PrecSum        // +, -
	PrecProduct    // *, /
	PrecPrefix     // not, (type) cast
)

var precedences = map[token.TokenType]int{
	token.TokenOr:       PrecOr,
	token.TokenAnd:      PrecAnd,
	token.TokenEq:       PrecEquality,
	token.TokenNe:       PrecEquality,
	token.TokenLt:       PrecRelational,
	token.TokenGt:       PrecRelational,
	token.TokenLe:       PrecRelational,
	token.TokenGe:       PrecRelational,
	token.TokenPlus:     PrecSum,
	token.TokenMinus:    PrecSum,
	token.TokenAsterisk: PrecProduct,
	token.TokenSlash:    PrecProduct,
}

func tokenPrecedence(tok token.Token) int {
	if p, ok := precedences[tok.Type]; ok {
		return p
	}
	return PrecLowest
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser turns FanC source into an *ast.Funcs. It stops at the first error,
// matching the fail-fast contract of the rest of the pipeline.
type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token
	errors  []*diag.Diagnostic

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.initializePratt()

	// Read two tokens so curTok and peekTok are both set
	p.nextToken()
	p.nextToken()
	return p
}

// --- Token Handling ---
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

// --- Error Handling ---

// addError records a syntax error at tok. An ILLEGAL token is reported as a
// lexical error instead, since that is what actually went wrong.
func (p *Parser) addError(tok token.Token, detail string) {
	if p.failed() {
		return
	}
	if tok.Type == token.TokenIllegal {
		p.errors = append(p.errors, diag.Lexical(tok.Line, "illegal token "+tok.Literal))
		return
	}
	p.errors = append(p.errors, diag.Syntax(tok.Line, detail))
}

func (p *Parser) failed() bool { return len(p.errors) > 0 }

// Errors returns the recorded errors; at most one, since parsing stops there.
func (p *Parser) Errors() []*diag.Diagnostic {
	return p.errors
}

// Err returns the first error as an error value, or nil.
func (p *Parser) Err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors[0]
}

// --- Program Parsing ---

func (p *Parser) ParseProgram() *ast.Funcs {
	program := &ast.Funcs{Base: ast.At(p.curTok)}

	for p.curTok.Type != token.TokenEOF {
		fn := p.parseFuncDecl()
		if fn == nil {
			return nil
		}
		program.Funcs = append(program.Funcs, fn)
	}
	return program
}

// parseFuncDecl parses `RetType ID ( Formals ) { Statements }`
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	fn := &ast.FuncDecl{Base: ast.At(p.curTok)}

	fn.ReturnType = p.parseRetType()
	if fn.ReturnType == nil {
		return nil
	}

	if p.curTok.Type != token.TokenIdent {
		p.addError(p.curTok, "expected function name")
		return nil
	}
	fn.ID = &ast.ID{Base: ast.At(p.curTok), Name: p.curTok.Literal}
	p.nextToken()

	fn.Formals = p.parseFormals()
	if fn.Formals == nil {
		return nil
	}

	fn.Body = p.parseStatements()
	if fn.Body == nil {
		return nil
	}
	return fn
}

// parseRetType accepts a value type or void.
func (p *Parser) parseRetType() *ast.Type {
	if p.curTok.Type == token.TokenVoid {
		t := &ast.Type{Base: ast.At(p.curTok), Type: types.Void}
		p.nextToken()
		return t
	}
	return p.parseType()
}

// parseType accepts int, byte or bool.
func (p *Parser) parseType() *ast.Type {
	if !p.curTok.IsTypeKeyword() {
		p.addError(p.curTok, "expected type")
		return nil
	}
	ty, ok := types.FromKeyword(p.curTok.Literal)
	if !ok {
		p.addError(p.curTok, "unknown type "+p.curTok.Literal)
		return nil
	}
	t := &ast.Type{Base: ast.At(p.curTok), Type: ty}
	p.nextToken()
	return t
}

// parseFormals parses `( [Type ID {, Type ID}] )`
func (p *Parser) parseFormals() *ast.Formals {
	if p.curTok.Type != token.TokenLParen {
		p.addError(p.curTok, "expected '('")
		return nil
	}
	formals := &ast.Formals{Base: ast.At(p.curTok)}
	p.nextToken() // Consume '('

	if p.curTok.Type == token.TokenRParen {
		p.nextToken()
		return formals
	}

	for {
		formal := p.parseFormal()
		if formal == nil {
			return nil
		}
		formals.List = append(formals.List, formal)

		if p.curTok.Type != token.TokenComma {
			break
		}
		p.nextToken() // Consume ','
	}

	if p.curTok.Type != token.TokenRParen {
		p.addError(p.curTok, "expected ')' after parameters")
		return nil
	}
	p.nextToken()
	return formals
}

func (p *Parser) parseFormal() *ast.Formal {
	formal := &ast.Formal{Base: ast.At(p.curTok)}
	formal.Type = p.parseType()
	if formal.Type == nil {
		return nil
	}
	if p.curTok.Type != token.TokenIdent {
		p.addError(p.curTok, "expected parameter name")
		return nil
	}
	formal.ID = &ast.ID{Base: ast.At(p.curTok), Name: p.curTok.Literal}
	p.nextToken()
	return formal
}

// --- Statement Parsing ---

// parseStatements parses `{ Statement* }`
func (p *Parser) parseStatements() *ast.Statements {
	if p.curTok.Type != token.TokenLBrace {
		p.addError(p.curTok, "expected '{'")
		return nil
	}
	block := &ast.Statements{Base: ast.At(p.curTok)}
	p.nextToken() // Consume '{'

	for p.curTok.Type != token.TokenRBrace {
		if p.curTok.Type == token.TokenEOF {
			p.addError(p.curTok, "expected '}' to close block")
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.List = append(block.List, stmt)
	}

	p.nextToken() // Consume '}'
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok.Type {
	case token.TokenLBrace:
		// A typed nil would defeat the caller's nil check
		if block := p.parseStatements(); block != nil {
			return block
		}
		return nil
	case token.TokenTypeLiteral:
		return p.parseVarDecl()
	case token.TokenIdent:
		switch p.peekTok.Type {
		case token.TokenAssign:
			return p.parseAssign()
		case token.TokenLParen:
			call := p.parseCall()
			if call == nil || !p.expectSemicolon() {
				return nil
			}
			return call
		default:
			p.addError(p.peekTok, "expected '=' or '(' after identifier")
			return nil
		}
	case token.TokenReturn:
		return p.parseReturn()
	case token.TokenIf:
		return p.parseIf()
	case token.TokenWhile:
		return p.parseWhile()
	case token.TokenBreak:
		stmt := &ast.Break{Base: ast.At(p.curTok)}
		p.nextToken()
		if !p.expectSemicolon() {
			return nil
		}
		return stmt
	case token.TokenContinue:
		stmt := &ast.Continue{Base: ast.At(p.curTok)}
		p.nextToken()
		if !p.expectSemicolon() {
			return nil
		}
		return stmt
	default:
		p.addError(p.curTok, "unexpected token at start of statement")
		return nil
	}
}

// parseVarDecl parses `Type ID ;` or `Type ID = Exp ;`
func (p *Parser) parseVarDecl() ast.Stmt {
	stmt := &ast.VarDecl{Base: ast.At(p.curTok)}
	stmt.Type = p.parseType()
	if stmt.Type == nil {
		return nil
	}

	if p.curTok.Type != token.TokenIdent {
		p.addError(p.curTok, "expected variable name")
		return nil
	}
	stmt.ID = &ast.ID{Base: ast.At(p.curTok), Name: p.curTok.Literal}
	p.nextToken()

	if p.curTok.Type == token.TokenAssign {
		p.nextToken() // Consume '='
		stmt.Init = p.parseExpression(PrecLowest)
		if stmt.Init == nil {
			return nil
		}
	}

	if !p.expectSemicolon() {
		return nil
	}
	return stmt
}

// parseAssign parses `ID = Exp ;`
func (p *Parser) parseAssign() ast.Stmt {
	stmt := &ast.Assign{Base: ast.At(p.curTok)}
	stmt.ID = &ast.ID{Base: ast.At(p.curTok), Name: p.curTok.Literal}
	p.nextToken() // Consume ID
	p.nextToken() // Consume '='

	stmt.Value = p.parseExpression(PrecLowest)
	if stmt.Value == nil || !p.expectSemicolon() {
		return nil
	}
	return stmt
}

// parseReturn parses `return ;` or `return Exp ;`
func (p *Parser) parseReturn() ast.Stmt {
	stmt := &ast.Return{Base: ast.At(p.curTok)}
	p.nextToken() // Consume 'return'

	if p.curTok.Type != token.TokenSemicolon {
		stmt.Value = p.parseExpression(PrecLowest)
		if stmt.Value == nil {
			return nil
		}
	}
	if !p.expectSemicolon() {
		return nil
	}
	return stmt
}

// parseIf parses `if ( Exp ) Statement [else Statement]`. A dangling else
// binds to the nearest if.
func (p *Parser) parseIf() ast.Stmt {
	stmt := &ast.If{Base: ast.At(p.curTok)}
	p.nextToken() // Consume 'if'

	stmt.Cond = p.parseCondition()
	if stmt.Cond == nil {
		return nil
	}

	stmt.Then = p.parseStatement()
	if stmt.Then == nil {
		return nil
	}

	if p.curTok.Type == token.TokenElse {
		p.nextToken() // Consume 'else'
		stmt.Else = p.parseStatement()
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

// parseWhile parses `while ( Exp ) Statement`
func (p *Parser) parseWhile() ast.Stmt {
	stmt := &ast.While{Base: ast.At(p.curTok)}
	p.nextToken() // Consume 'while'

	stmt.Cond = p.parseCondition()
	if stmt.Cond == nil {
		return nil
	}

	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseCondition parses a parenthesised expression and consumes the parens.
func (p *Parser) parseCondition() ast.Expr {
	if p.curTok.Type != token.TokenLParen {
		p.addError(p.curTok, "expected '('")
		return nil
	}
	p.nextToken()

	cond := p.parseExpression(PrecLowest)
	if cond == nil {
		return nil
	}

	if p.curTok.Type != token.TokenRParen {
		p.addError(p.curTok, "expected ')'")
		return nil
	}
	p.nextToken()
	return cond
}

// --- Pratt Parsing ---

// registerPrefix associates a token type with its prefix parsing function.
func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix associates a token type with its infix parsing function.
func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) initializePratt() {
	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.infixParseFns = make(map[token.TokenType]infixParseFn)

	// Prefixes (NUDs)
	p.registerPrefix(token.TokenIdent, p.parseIdentifierOrCall)
	p.registerPrefix(token.TokenNum, p.parseNum)
	p.registerPrefix(token.TokenNumB, p.parseNumB)
	p.registerPrefix(token.TokenString, p.parseString)
	p.registerPrefix(token.TokenTrue, p.parseBool)
	p.registerPrefix(token.TokenFalse, p.parseBool)
	p.registerPrefix(token.TokenNot, p.parseNot)
	p.registerPrefix(token.TokenLParen, p.parseGroupedOrCast)

	// Infixes (LEDs)
	for _, tt := range []token.TokenType{token.TokenPlus, token.TokenMinus, token.TokenAsterisk, token.TokenSlash} {
		p.registerInfix(tt, p.parseBinOp)
	}
	for _, tt := range []token.TokenType{token.TokenEq, token.TokenNe, token.TokenLt, token.TokenGt, token.TokenLe, token.TokenGe} {
		p.registerInfix(tt, p.parseRelOp)
	}
	p.registerInfix(token.TokenAnd, p.parseAnd)
	p.registerInfix(token.TokenOr, p.parseOr)
}

// parseExpression is the main entry point for Pratt parsing. On return curTok
// is the first token after the expression.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.curTok.Type]
	if prefix == nil {
		p.addError(p.curTok, "expected expression")
		return nil
	}
	leftExpr := prefix()
	if leftExpr == nil {
		return nil
	}

	for precedence < tokenPrecedence(p.curTok) {
		infix := p.infixParseFns[p.curTok.Type]
		if infix == nil {
			return leftExpr
		}
		leftExpr = infix(leftExpr)
		if leftExpr == nil {
			return nil
		}
	}
	return leftExpr
}

// --- Pratt NUD/Prefix Functions ---

func (p *Parser) parseIdentifierOrCall() ast.Expr {
	if p.peekTok.Type == token.TokenLParen {
		if call := p.parseCall(); call != nil {
			return call
		}
		return nil
	}
	id := &ast.ID{Base: ast.At(p.curTok), Name: p.curTok.Literal}
	p.nextToken()
	return id
}

func (p *Parser) parseNum() ast.Expr {
	n := &ast.Num{Base: ast.At(p.curTok), Value: lib.ParseDecimal(p.curTok.Literal)}
	p.nextToken()
	return n
}

func (p *Parser) parseNumB() ast.Expr {
	n := &ast.NumB{Base: ast.At(p.curTok), Value: lib.ParseDecimal(p.curTok.Literal)}
	p.nextToken()
	return n
}

func (p *Parser) parseString() ast.Expr {
	s := &ast.String{Base: ast.At(p.curTok), Value: p.curTok.Literal}
	p.nextToken()
	return s
}

func (p *Parser) parseBool() ast.Expr {
	b := &ast.Bool{Base: ast.At(p.curTok), Value: p.curTok.Type == token.TokenTrue}
	p.nextToken()
	return b
}

func (p *Parser) parseNot() ast.Expr {
	n := &ast.Not{Base: ast.At(p.curTok)}
	p.nextToken() // Consume 'not'
	n.Operand = p.parseExpression(PrecPrefix)
	if n.Operand == nil {
		return nil
	}
	return n
}

// parseGroupedOrCast handles `( Exp )` and `( Type ) Exp`.
func (p *Parser) parseGroupedOrCast() ast.Expr {
	startTok := p.curTok
	p.nextToken() // Consume '('

	if p.curTok.IsTypeKeyword() {
		cast := &ast.Cast{Base: ast.At(startTok)}
		cast.Target = p.parseType()
		if cast.Target == nil {
			return nil
		}
		if p.curTok.Type != token.TokenRParen {
			p.addError(p.curTok, "expected ')' after cast type")
			return nil
		}
		p.nextToken()
		cast.Operand = p.parseExpression(PrecPrefix)
		if cast.Operand == nil {
			return nil
		}
		return cast
	}

	expr := p.parseExpression(PrecLowest)
	if expr == nil {
		return nil
	}
	if p.curTok.Type != token.TokenRParen {
		p.addError(p.curTok, "expected ')'")
		return nil
	}
	p.nextToken()
	return expr
}

// parseCall parses `ID ( [ExpList] )` with curTok on the ID.
func (p *Parser) parseCall() *ast.Call {
	call := &ast.Call{Base: ast.At(p.curTok)}
	call.Callee = &ast.ID{Base: ast.At(p.curTok), Name: p.curTok.Literal}
	p.nextToken() // Consume ID

	call.Args = &ast.ExpList{Base: ast.At(p.curTok)}
	p.nextToken() // Consume '('

	if p.curTok.Type == token.TokenRParen {
		p.nextToken()
		return call
	}

	for {
		arg := p.parseExpression(PrecLowest)
		if arg == nil {
			return nil
		}
		call.Args.Exps = append(call.Args.Exps, arg)
		if p.curTok.Type != token.TokenComma {
			break
		}
		p.nextToken() // Consume ','
	}

	if p.curTok.Type != token.TokenRParen {
		p.addError(p.curTok, "expected ')' or ',' in argument list")
		return nil
	}
	p.nextToken()
	return call
}

// --- Pratt LED/Infix Functions ---

// infixOperands consumes the operator at curTok and parses the right operand
// at the operator's precedence, which makes the operators left-associative.
func (p *Parser) infixOperands() (token.Token, ast.Expr) {
	opToken := p.curTok
	precedence := tokenPrecedence(opToken)
	p.nextToken()
	return opToken, p.parseExpression(precedence)
}

func (p *Parser) parseBinOp(left ast.Expr) ast.Expr {
	opToken, right := p.infixOperands()
	if right == nil {
		return nil
	}
	return &ast.BinOp{Base: ast.At(opToken), Op: opToken.Literal, Left: left, Right: right}
}

func (p *Parser) parseRelOp(left ast.Expr) ast.Expr {
	opToken, right := p.infixOperands()
	if right == nil {
		return nil
	}
	return &ast.RelOp{Base: ast.At(opToken), Op: opToken.Literal, Left: left, Right: right}
}

func (p *Parser) parseAnd(left ast.Expr) ast.Expr {
	opToken, right := p.infixOperands()
	if right == nil {
		return nil
	}
	return &ast.And{Base: ast.At(opToken), Left: left, Right: right}
}

func (p *Parser) parseOr(left ast.Expr) ast.Expr {
	opToken, right := p.infixOperands()
	if right == nil {
		return nil
	}
	return &ast.Or{Base: ast.At(opToken), Left: left, Right: right}
}

// --- Utility Functions ---

// expectSemicolon consumes a ';' or records an error.
func (p *Parser) expectSemicolon() bool {
	if p.curTok.Type == token.TokenSemicolon {
		p.nextToken()
		return true
	}
	p.addError(p.curTok, "expected ';'")
	return false
}
