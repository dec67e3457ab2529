// Package report is the diagnostic sink consumed by the scanner, parser,
// and type resolver. It is the only component of the front-end that talks
// to a terminal.
package report

// TextSpan is a range of source text. Spans are inclusive on the start side
// and exclusive on the end side, except for synthetic spans, which may
// collapse start and end to the same position.
type TextSpan struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// Over returns a new span that starts where a begins and ends where b ends.
func Over(a, b *TextSpan) *TextSpan {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	return &TextSpan{
		StartLine: a.StartLine,
		StartCol:  a.StartCol,
		EndLine:   b.EndLine,
		EndCol:    b.EndCol,
	}
}
