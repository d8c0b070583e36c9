package token

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenLBrace    TokenType = "LBRACE"    // {
	TokenRBrace    TokenType = "RBRACE"    // }
	TokenAssign    TokenType = "ASSIGN"    // =
	TokenPlus      TokenType = "PLUS"      // +
	TokenMinus     TokenType = "MINUS"     // -
	TokenAsterisk  TokenType = "ASTERISK"  // *
	TokenSlash     TokenType = "SLASH"     // /
	TokenComma     TokenType = "COMMA"     // ,
	TokenSemicolon TokenType = "SEMICOLON" // ;

	// Relational operators
	TokenEq TokenType = "EQ" // ==
	TokenNe TokenType = "NE" // !=
	TokenLt TokenType = "LT" // <
	TokenGt TokenType = "GT" // >
	TokenLe TokenType = "LE" // <=
	TokenGe TokenType = "GE" // >=

	// Keywords
	TokenReturn   TokenType = "RETURN"   // return
	TokenIf       TokenType = "IF"       // if
	TokenElse     TokenType = "ELSE"     // else
	TokenWhile    TokenType = "WHILE"    // while
	TokenBreak    TokenType = "BREAK"    // break
	TokenContinue TokenType = "CONTINUE" // continue
	TokenTrue     TokenType = "TRUE"     // true
	TokenFalse    TokenType = "FALSE"    // false
	TokenNot      TokenType = "NOT"      // not
	TokenAnd      TokenType = "AND"      // and
	TokenOr       TokenType = "OR"       // or
	TokenVoid     TokenType = "VOID"     // void

	// Literals & Identifiers
	TokenString TokenType = "STRING" // "..."
	TokenNum    TokenType = "NUM"    // 43
	TokenNumB   TokenType = "NUMB"   // 43b
	TokenIdent  TokenType = "IDENT"

	// Special
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"

	// int, byte, bool are all lexed as TokenTypeLiteral; void has its own token
	TokenTypeLiteral TokenType = "TYPE_LITERAL"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) IsTypeKeyword() bool {
	return t.Type == TokenTypeLiteral
}
