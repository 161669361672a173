// Package gherkin parses feature text into Feature/Scenario/Step trees and
// expands scenario outlines. It knows nothing about step handlers, hooks or
// execution; that lives in the root gobdd package.
package gherkin

// SourceLocation pins a registered step definition to a file and line, for
// diagnostics.
type SourceLocation struct {
	File string
	Line int
}

// StepState is a step's place in the pending -> passed|failed|skipped|undefined
// state machine.
type StepState int

const (
	StepPending StepState = iota
	StepPassed
	StepFailed
	StepSkipped
	StepUndefined
)

func (s StepState) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	case StepUndefined:
		return "undefined"
	default:
		return "pending"
	}
}

// Failure captures why a step failed: the cause message, a coarse error-kind
// tag and a best-effort traceback string.
type Failure struct {
	Cause     string
	Kind      string
	Traceback string
}

// Table is an ordered header plus ordered rows of column->value, the shape
// shared by a step's inline data table and an Examples block.
type Table struct {
	Header []string
	Rows   []map[string]string
}

// Step is a single Given/When/Then/And/But line, optionally carrying a data
// table and/or a multiline string body.
type Step struct {
	Keyword  string
	Sentence string
	Table    *Table
	Multiline    string
	HasMultiline bool
	Line         int

	// Scenario is a non-owning back-reference set by the parser (and by
	// outline expansion for materialized steps).
	Scenario *Scenario

	// Resolution state, set by the root package's resolver.
	Resolved      bool
	HasDefinition bool
	Captures      []string
	NamedCaptures map[string]string
	DefinedAt     SourceLocation

	// Execution state, set by the root package's runner.
	State   StepState
	Failure *Failure
}

// clone returns a fresh Step with a pending execution/resolution state,
// used by outline expansion.
func (s *Step) clone() *Step {
	return &Step{
		Keyword:      s.Keyword,
		Sentence:     s.Sentence,
		Table:        s.Table,
		Multiline:    s.Multiline,
		HasMultiline: s.HasMultiline,
		Line:         s.Line,
		Scenario:     s.Scenario,
	}
}

// ExampleBlock is one `Examples:` table within a Scenario Outline.
type ExampleBlock struct {
	Header []string
	Rows   []map[string]string
}

// Scenario is a named, ordered list of steps, optionally parameterized by
// one or more Examples blocks.
type Scenario struct {
	Name     string
	Keyword  string
	Tags     []string
	Steps    []*Step
	Examples []ExampleBlock
	Outline  bool
	Feature  *Feature
	Line     int
}

// Feature is the top-level unit parsed from a single text blob.
type Feature struct {
	Name        string
	Description string
	Tags        []string
	Scenarios   []*Scenario
	Line        int
	Source      string
}
