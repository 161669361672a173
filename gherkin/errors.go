package gherkin

import "fmt"

// SyntaxError describes malformed feature text, with the 1-based line
// number of the offending line.
type SyntaxError struct {
	Source string
	Line   int
	Msg    string
}

func (e *SyntaxError) Error() string {
	source := e.Source
	if source == "" {
		source = "<feature>"
	}
	return fmt.Sprintf("%s:%d: %s", source, e.Line, e.Msg)
}

func newSyntaxError(source string, line int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Source: source, Line: line, Msg: fmt.Sprintf(format, args...)}
}
