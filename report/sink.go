package report

import (
	"fmt"
	"sync"
)

// Enumeration of log levels, lowest to highest verbosity.
const (
	LevelSilent = iota
	LevelError
	LevelWarn
	LevelVerbose
)

// Sink is the diagnostic sink. One Sink is shared by every phase of a
// compilation; its source/module-name fields are swapped in and out across
// import boundaries in stack discipline (see Save/Restore) so that nested
// errors are always reported against the right file.
type Sink struct {
	m *sync.Mutex

	level int

	source     string
	moduleName string

	hadError        bool
	hadRuntimeError bool

	warnings []Message
	errors   []Message
}

// Message is a single recorded diagnostic.
type Message struct {
	ModuleName string
	Span       *TextSpan
	Text       string
	IsError    bool
}

// New creates a sink at the given log level.
func New(level int) *Sink {
	return &Sink{m: &sync.Mutex{}, level: level}
}

// SetSource installs the source text that subsequent spans are rendered
// against.
func (s *Sink) SetSource(source string) {
	s.source = source
}

// SetModuleName installs the module name attached to subsequent messages.
func (s *Sink) SetModuleName(name string) {
	s.moduleName = name
}

// snapshot is an opaque save point produced by Save.
type snapshot struct {
	source     string
	moduleName string
}

// Save captures the sink's current source/module-name so that a nested
// compile (an import) can install its own and the caller can restore its
// own afterward, even if the nested compile panics.
func (s *Sink) Save() snapshot {
	return snapshot{source: s.source, moduleName: s.moduleName}
}

// Restore reinstalls a previously captured save point.
func (s *Sink) Restore(snap snapshot) {
	s.source = snap.source
	s.moduleName = snap.moduleName
}

// -----------------------------------------------------------------------------

// Error records a compile error at the given span and latches HadError.
func (s *Sink) Error(span *TextSpan, format string, args ...interface{}) {
	s.m.Lock()
	defer s.m.Unlock()

	s.hadError = true
	msg := Message{ModuleName: s.moduleName, Span: span, Text: fmt.Sprintf(format, args...), IsError: true}
	s.errors = append(s.errors, msg)

	if s.level > LevelSilent {
		displayMessage("error", s.moduleName, s.source, span, msg.Text)
	}
}

// Warning records a compile warning. It never latches HadError.
func (s *Sink) Warning(span *TextSpan, format string, args ...interface{}) {
	s.m.Lock()
	defer s.m.Unlock()

	msg := Message{ModuleName: s.moduleName, Span: span, Text: fmt.Sprintf(format, args...), IsError: false}
	s.warnings = append(s.warnings, msg)

	if s.level >= LevelWarn {
		displayMessage("warning", s.moduleName, s.source, span, msg.Text)
	}
}

// RuntimeError records an error discovered by a downstream consumer (the
// bytecode generator or VM) that is still reported through this sink.
// The front-end itself never calls this; it exists so the latch described
// in spec.md section 6 has somewhere to live.
func (s *Sink) RuntimeError(span *TextSpan, format string, args ...interface{}) {
	s.m.Lock()
	defer s.m.Unlock()

	s.hadRuntimeError = true

	if s.level > LevelSilent {
		displayMessage("runtime error", s.moduleName, s.source, span, fmt.Sprintf(format, args...))
	}
}

// Note records an informational note with no position.
func (s *Sink) Note(format string, args ...interface{}) {
	s.m.Lock()
	defer s.m.Unlock()

	if s.level == LevelVerbose {
		fmt.Printf("note: %s\n", fmt.Sprintf(format, args...))
	}
}

// HadError reports whether any error has been latched.
func (s *Sink) HadError() bool {
	s.m.Lock()
	defer s.m.Unlock()

	return s.hadError
}

// HadRuntimeError reports whether any runtime error has been latched.
func (s *Sink) HadRuntimeError() bool {
	s.m.Lock()
	defer s.m.Unlock()

	return s.hadRuntimeError
}
