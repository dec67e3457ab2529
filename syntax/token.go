// Package syntax houses the scanner and the parser together, the way a
// front-end with a small, tightly coupled grammar typically does: the
// parser's token-kind switch and the scanner's keyword table are the same
// vocabulary, and splitting them into separate packages would only add an
// import for no decoupling benefit.
package syntax

import "github.com/dc03/wis/report"

// Token is a single lexical token: its kind, the literal source slice it
// came from, and its position for diagnostics.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Span   *report.TextSpan
}

// TokenKind enumerates every token the scanner can produce.
type TokenKind int

const (
	NONE TokenKind = iota

	// Literals and identifiers.
	IDENTIFIER
	INT_VALUE
	FLOAT_VALUE
	STRING_VALUE

	// Keywords.
	AND
	BREAK
	CLASS
	CONST
	CONTINUE
	ELSE
	FALSE
	FN
	FOR
	IF
	IMPORT
	NULL
	OR
	PRIVATE
	PROTECTED
	PUBLIC
	REF
	RETURN
	SUPER
	SWITCH
	THIS
	TRUE
	TYPE
	TYPEOF
	VAR
	WHILE
	DEFAULT

	// Single- and multi-character punctuators.
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	COMMA
	DOT
	MINUS
	PLUS
	SLASH
	STAR
	PERCENT
	SEMICOLON
	COLON
	QUESTION
	TILDE
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	LESS_LESS
	GREATER_GREATER
	AMP
	PIPE
	CARET
	PLUS_PLUS
	MINUS_MINUS
	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	SLASH_EQUAL
	DOT_DOT
	DOT_DOT_EQUAL
	COLON_COLON
	ARROW

	END_OF_LINE
	END_OF_FILE
)

// keywords maps a scanned identifier lexeme to its keyword kind. Anything
// not found here is an ordinary IDENTIFIER.
var keywords = map[string]TokenKind{
	"and":       AND,
	"break":     BREAK,
	"class":     CLASS,
	"const":     CONST,
	"continue":  CONTINUE,
	"default":   DEFAULT,
	"else":      ELSE,
	"false":     FALSE,
	"fn":        FN,
	"for":       FOR,
	"if":        IF,
	"import":    IMPORT,
	"null":      NULL,
	"or":        OR,
	"private":   PRIVATE,
	"protected": PROTECTED,
	"public":    PUBLIC,
	"ref":       REF,
	"return":    RETURN,
	"super":     SUPER,
	"switch":    SWITCH,
	"this":      THIS,
	"true":      TRUE,
	"type":      TYPE,
	"typeof":    TYPEOF,
	"var":       VAR,
	"while":     WHILE,
}

// declarationStarters is the token-kind set synchronize() scans forward
// for after a syntax error: the next token that begins a declaration or
// statement is always a safe place to resume parsing.
var declarationStarters = map[TokenKind]bool{
	CLASS:     true,
	FN:        true,
	FOR:       true,
	IF:        true,
	IMPORT:    true,
	PRIVATE:   true,
	PROTECTED: true,
	PUBLIC:    true,
	RETURN:    true,
	TYPE:      true,
	CONST:     true,
	VAR:       true,
	WHILE:     true,
	BREAK:     true,
	CONTINUE:  true,
}
