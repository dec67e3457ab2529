package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc03/wis/report"
)

func scanAll(t *testing.T, source string) ([]Token, *report.Sink) {
	sink := report.New(report.LevelSilent)
	sink.SetSource(source)
	sink.SetModuleName("test")
	tokens := NewScanner(sink, source).Scan()
	require.NotEmpty(t, tokens)
	return tokens, sink
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestScanNewlineAsTerminator(t *testing.T) {
	tokens, sink := scanAll(t, "var x = 1\nvar y = 2\n")
	assert.False(t, sink.HadError())
	assert.Equal(t,
		[]TokenKind{VAR, IDENTIFIER, EQUAL, INT_VALUE, END_OF_LINE, VAR, IDENTIFIER, EQUAL, INT_VALUE, END_OF_LINE, END_OF_FILE},
		kinds(tokens),
	)
}

func TestScanTupleMemberChain(t *testing.T) {
	tokens, sink := scanAll(t, "x.2.0;")
	assert.False(t, sink.HadError())
	assert.Equal(t,
		[]TokenKind{IDENTIFIER, DOT, FLOAT_VALUE, SEMICOLON, END_OF_LINE, END_OF_FILE},
		kinds(tokens),
	)
	assert.Equal(t, "2.0", tokens[2].Lexeme)
}

func TestScanBlankLinesCollapse(t *testing.T) {
	tokens, _ := scanAll(t, "var x = 1\n\n\n\nvar y = 2\n")
	count := 0
	for _, k := range kinds(tokens) {
		if k == END_OF_LINE {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestScanNewlineSuppressedInsideBrackets(t *testing.T) {
	tokens, sink := scanAll(t, "fn f(\n) -> int {\nreturn 1\n}\n")
	assert.False(t, sink.HadError())

	// No END_OF_LINE should appear between the parens; braces suppress
	// newlines too, so the only one in the stream follows the closing `}`.
	sawLeftParen := false
	for i, k := range kinds(tokens) {
		if k == LEFT_PAREN {
			sawLeftParen = true
		}
		if sawLeftParen && k == RIGHT_PAREN {
			break
		}
		if sawLeftParen && k == END_OF_LINE {
			t.Fatalf("unexpected END_OF_LINE inside parens at index %d", i)
		}
	}
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	_, sink := scanAll(t, `"unterminated`)
	assert.True(t, sink.HadError())
}

func TestScanCompoundPunctuators(t *testing.T) {
	tokens, _ := scanAll(t, "== != <= >= << >> .. ..= :: -> += -= *= /= ++ --")
	got := kinds(tokens)
	want := []TokenKind{
		EQUAL_EQUAL, BANG_EQUAL, LESS_EQUAL, GREATER_EQUAL, LESS_LESS, GREATER_GREATER,
		DOT_DOT, DOT_DOT_EQUAL, COLON_COLON, ARROW, PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL,
		SLASH_EQUAL, PLUS_PLUS, MINUS_MINUS, END_OF_LINE, END_OF_FILE,
	}
	require.Equal(t, len(want), len(got))
	assert.Equal(t, want, got)
}
