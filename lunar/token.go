package lunar

import (
	"fmt"
	"strconv"
)

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenEOF TokenType = "EOF"

	TokenName   TokenType = "NAME"
	TokenInt    TokenType = "INT"
	TokenFloat  TokenType = "FLOAT"
	TokenString TokenType = "STRING"

	TokenAdd    TokenType = "+"
	TokenSub    TokenType = "-"
	TokenMul    TokenType = "*"
	TokenDiv    TokenType = "/"
	TokenIDiv   TokenType = "//"
	TokenMod    TokenType = "%"
	TokenPow    TokenType = "^"
	TokenLen    TokenType = "#"
	TokenBitAnd TokenType = "&"
	TokenBitXor TokenType = "~"
	TokenBitOr  TokenType = "|"
	TokenShiftL TokenType = "<<"
	TokenShiftR TokenType = ">>"

	TokenEqual   TokenType = "=="
	TokenNotEq   TokenType = "~="
	TokenLessEq  TokenType = "<="
	TokenGreatEq TokenType = ">="
	TokenLess    TokenType = "<"
	TokenGreater TokenType = ">"
	TokenAssign  TokenType = "="

	TokenParL      TokenType = "("
	TokenParR      TokenType = ")"
	TokenCurlyL    TokenType = "{"
	TokenCurlyR    TokenType = "}"
	TokenSquareL   TokenType = "["
	TokenSquareR   TokenType = "]"
	TokenDoubColon TokenType = "::"
	TokenSemiColon TokenType = ";"
	TokenColon     TokenType = ":"
	TokenComma     TokenType = ","
	TokenDot       TokenType = "."
	TokenConcat    TokenType = ".."
	TokenDots      TokenType = "..."

	TokenAnd      TokenType = "AND"
	TokenBreak    TokenType = "BREAK"
	TokenDo       TokenType = "DO"
	TokenElse     TokenType = "ELSE"
	TokenElseif   TokenType = "ELSEIF"
	TokenEnd      TokenType = "END"
	TokenFalse    TokenType = "FALSE"
	TokenFor      TokenType = "FOR"
	TokenFunction TokenType = "FUNCTION"
	TokenGoto     TokenType = "GOTO"
	TokenIf       TokenType = "IF"
	TokenIn       TokenType = "IN"
	TokenLocal    TokenType = "LOCAL"
	TokenNil      TokenType = "NIL"
	TokenNot      TokenType = "NOT"
	TokenOr       TokenType = "OR"
	TokenRepeat   TokenType = "REPEAT"
	TokenReturn   TokenType = "RETURN"
	TokenThen     TokenType = "THEN"
	TokenTrue     TokenType = "TRUE"
	TokenUntil    TokenType = "UNTIL"
	TokenWhile    TokenType = "WHILE"
)

// Token captures lexical information for the parser. Exactly one payload
// field is meaningful, selected by Type: Int for TokenInt, Float for
// TokenFloat, Str for TokenString, Name for TokenName. Str holds the raw
// literal bytes and is never validated as UTF-8; Name is always ASCII.
type Token struct {
	Type  TokenType
	Int   int64
	Float float64
	Str   []byte
	Name  string
	Pos   Position
}

// Position identifies a line and column in the source, both 1-based.
type Position struct {
	Line   int
	Column int
}

// String renders the token for diagnostics and token dumps.
func (t Token) String() string {
	switch t.Type {
	case TokenName:
		return fmt.Sprintf("NAME(%s)", t.Name)
	case TokenInt:
		return fmt.Sprintf("INT(%d)", t.Int)
	case TokenFloat:
		return fmt.Sprintf("FLOAT(%s)", strconv.FormatFloat(t.Float, 'g', -1, 64))
	case TokenString:
		return fmt.Sprintf("STRING(%q)", t.Str)
	default:
		return string(t.Type)
	}
}

// lookupName maps reserved spellings to their keyword token type. A miss
// means the text is an ordinary name, so a NAME token can never carry a
// keyword spelling.
func lookupName(name string) (TokenType, bool) {
	switch name {
	case "and":
		return TokenAnd, true
	case "break":
		return TokenBreak, true
	case "do":
		return TokenDo, true
	case "else":
		return TokenElse, true
	case "elseif":
		return TokenElseif, true
	case "end":
		return TokenEnd, true
	case "false":
		return TokenFalse, true
	case "for":
		return TokenFor, true
	case "function":
		return TokenFunction, true
	case "goto":
		return TokenGoto, true
	case "if":
		return TokenIf, true
	case "in":
		return TokenIn, true
	case "local":
		return TokenLocal, true
	case "nil":
		return TokenNil, true
	case "not":
		return TokenNot, true
	case "or":
		return TokenOr, true
	case "repeat":
		return TokenRepeat, true
	case "return":
		return TokenReturn, true
	case "then":
		return TokenThen, true
	case "true":
		return TokenTrue, true
	case "until":
		return TokenUntil, true
	case "while":
		return TokenWhile, true
	}
	return TokenName, false
}
