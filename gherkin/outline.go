package gherkin

import "strings"

// EvaluatedOutline pairs one example row with the step list materialized
// from it.
type EvaluatedOutline struct {
	Row   map[string]string
	Steps []*Step
}

// Outlines flattens every Examples block's rows, in source order. A
// non-outline Scenario has an empty outline set.
func (s *Scenario) Outlines() []map[string]string {
	var rows []map[string]string
	for _, block := range s.Examples {
		rows = append(rows, block.Rows...)
	}
	return rows
}

// SolvedSteps returns the fully-materialized step sequence: for a
// non-outline Scenario this is the literal step list; for a Scenario
// Outline it is the template steps repeated once per example row with
// <name> placeholders substituted.
func (s *Scenario) SolvedSteps() []*Step {
	rows := s.Outlines()
	if len(rows) == 0 {
		return s.Steps
	}

	solved := make([]*Step, 0, len(s.Steps)*len(rows))
	for _, row := range rows {
		for _, tmpl := range s.Steps {
			solved = append(solved, solveStep(tmpl, row))
		}
	}
	return solved
}

// Evaluated pairs each example row with its materialized step list.
func (s *Scenario) Evaluated() []EvaluatedOutline {
	rows := s.Outlines()
	if len(rows) == 0 {
		return nil
	}

	out := make([]EvaluatedOutline, 0, len(rows))
	for _, row := range rows {
		steps := make([]*Step, 0, len(s.Steps))
		for _, tmpl := range s.Steps {
			steps = append(steps, solveStep(tmpl, row))
		}
		out = append(out, EvaluatedOutline{Row: row, Steps: steps})
	}
	return out
}

func solveStep(tmpl *Step, row map[string]string) *Step {
	st := tmpl.clone()
	st.Sentence = substitute(tmpl.Sentence, row)

	if tmpl.Table != nil {
		table := &Table{Header: tmpl.Table.Header}
		for _, r := range tmpl.Table.Rows {
			solved := make(map[string]string, len(r))
			for k, v := range r {
				solved[k] = substitute(v, row)
			}
			table.Rows = append(table.Rows, solved)
		}
		st.Table = table
	}

	if tmpl.HasMultiline {
		st.Multiline = substitute(tmpl.Multiline, row)
	}

	return st
}

// substitute textually replaces every `<name>` in text with row[name].
// Unknown placeholders are left untouched (spec open question, resolved in
// DESIGN.md).
func substitute(text string, row map[string]string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	for name, value := range row {
		text = strings.ReplaceAll(text, "<"+name+">", value)
	}
	return text
}
