package lexer

import "github.com/arnavsurve/fanc/internal/compiler/token"

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances the lexer's position and updates the current character.
// It handles EOF and tracks line/column numbers.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else if l.ch != 0 {
		l.column++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// Tokenize reads the whole input. The final token is always EOF or ILLEGAL.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF || tok.Type == token.TokenIllegal {
			return toks
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine := l.line
	startCol := l.column

	switch l.ch {
	case '/':
		if l.peekChar() == '/' {
			l.readComment()
			return l.NextToken()
		}
		return l.single(token.TokenSlash, startLine, startCol)
	case '=':
		if l.peekChar() == '=' {
			return l.double(token.TokenEq, startLine, startCol)
		}
		return l.single(token.TokenAssign, startLine, startCol)
	case '!':
		if l.peekChar() == '=' {
			return l.double(token.TokenNe, startLine, startCol)
		}
		return l.single(token.TokenIllegal, startLine, startCol)
	case '<':
		if l.peekChar() == '=' {
			return l.double(token.TokenLe, startLine, startCol)
		}
		return l.single(token.TokenLt, startLine, startCol)
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.TokenGe, startLine, startCol)
		}
		return l.single(token.TokenGt, startLine, startCol)
	case '(':
		return l.single(token.TokenLParen, startLine, startCol)
	case ')':
		return l.single(token.TokenRParen, startLine, startCol)
	case '{':
		return l.single(token.TokenLBrace, startLine, startCol)
	case '}':
		return l.single(token.TokenRBrace, startLine, startCol)
	case '+':
		return l.single(token.TokenPlus, startLine, startCol)
	case '-':
		return l.single(token.TokenMinus, startLine, startCol)
	case '*':
		return l.single(token.TokenAsterisk, startLine, startCol)
	case ',':
		return l.single(token.TokenComma, startLine, startCol)
	case ';':
		return l.single(token.TokenSemicolon, startLine, startCol)
	case '"':
		return l.readString(startLine, startCol)
	case 0:
		return l.newToken(token.TokenEOF, "", startLine, startCol)
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return l.newToken(lookupIdent(ident), ident, startLine, startCol)
		} else if isDigit(l.ch) {
			return l.readNumber(startLine, startCol)
		}
		return l.single(token.TokenIllegal, startLine, startCol)
	}
}

func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

// single emits a one-character token and consumes it.
func (l *Lexer) single(tokenType token.TokenType, line, col int) token.Token {
	tok := l.newToken(tokenType, string(l.ch), line, col)
	l.readChar()
	return tok
}

// double emits a two-character operator such as "<=" and consumes both.
func (l *Lexer) double(tokenType token.TokenType, line, col int) token.Token {
	lit := string(l.ch) + string(l.peekChar())
	l.readChar()
	l.readChar()
	return l.newToken(tokenType, lit, line, col)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString consumes a double-quoted literal. Strings may not span lines;
// an unterminated string is ILLEGAL.
func (l *Lexer) readString(startLine, startCol int) token.Token {
	start := l.position + 1
	l.readChar() // opening "

	for l.ch != '"' {
		switch l.ch {
		case 0, '\n', '\r':
			return l.newToken(token.TokenIllegal, l.input[start-1:l.position], startLine, startCol)
		case '\\':
			if !isEscape(l.peekChar()) {
				return l.newToken(token.TokenIllegal, l.input[start-1:l.readPosition], startLine, startCol)
			}
			l.readChar()
		}
		l.readChar()
	}

	lit := l.input[start:l.position]
	l.readChar() // closing "
	return l.newToken(token.TokenString, lit, startLine, startCol)
}

// readNumber reads 0 or [1-9][0-9]*, optionally suffixed with 'b' for byte
// literals. A leading zero ends the number, so "01" lexes as two numbers.
func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	start := l.position
	if l.ch == '0' {
		l.readChar()
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	literal := l.input[start:l.position]

	if l.ch == 'b' && !isLetter(l.peekChar()) && !isDigit(l.peekChar()) {
		l.readChar()
		return l.newToken(token.TokenNumB, literal, startLine, startCol)
	}
	return l.newToken(token.TokenNum, literal, startLine, startCol)
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isEscape(ch byte) bool {
	switch ch {
	case '\\', '"', 'n', 'r', 't', '0', 'x':
		return true
	}
	return false
}

// keywords maps identifier strings to their corresponding token types.
var keywords = map[string]token.TokenType{
	"int":      token.TokenTypeLiteral,
	"byte":     token.TokenTypeLiteral,
	"bool":     token.TokenTypeLiteral,
	"void":     token.TokenVoid,
	"return":   token.TokenReturn,
	"if":       token.TokenIf,
	"else":     token.TokenElse,
	"while":    token.TokenWhile,
	"break":    token.TokenBreak,
	"continue": token.TokenContinue,
	"true":     token.TokenTrue,
	"false":    token.TokenFalse,
	"not":      token.TokenNot,
	"and":      token.TokenAnd,
	"or":       token.TokenOr,
}

// lookupIdent returns the keyword's token type, or TokenIdent.
func lookupIdent(ident string) token.TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return token.TokenIdent
}
