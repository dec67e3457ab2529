package report

import "fmt"

// LocalError is a recoverable parse error: it is panicked from deep inside
// a recursive-descent production and caught by the nearest synchronize
// point, rather than threaded back up through every return value.
type LocalError struct {
	Span    *TextSpan
	Message string
}

func (e *LocalError) Error() string {
	return e.Message
}

// Raise builds a LocalError. Callers panic(Raise(...)); they do not return
// it, so that unrelated call sites can't mistake it for an ordinary error.
func Raise(span *TextSpan, format string, args ...interface{}) *LocalError {
	return &LocalError{Span: span, Message: fmt.Sprintf(format, args...)}
}

// Catch reports a recovered *LocalError to the sink, returning true so
// the caller knows to resynchronize. Any other recovered value continues
// unwinding. Callers must call recover() directly inside their own
// deferred function and pass its result here, since recover() only takes
// effect when called directly by a deferred function.
func (s *Sink) Catch(x interface{}) bool {
	if x == nil {
		return false
	}
	if lerr, ok := x.(*LocalError); ok {
		s.Error(lerr.Span, "%s", lerr.Message)
		return true
	}
	panic(x)
}
