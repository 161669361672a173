package gherkin

import (
	"regexp"
	"strings"
)

var (
	featureRe  = regexp.MustCompile(`(?i)^Feature:\s*(.*)$`)
	scenarioRe = regexp.MustCompile(`(?i)^(Scenario Outline|Scenario):\s*(.*)$`)
	examplesRe = regexp.MustCompile(`(?i)^Examples:\s*$`)
	stepRe     = regexp.MustCompile(`(?i)^(Given|When|Then|And|But)\b(.*)$`)
	tagTokenRe = regexp.MustCompile(`^@[A-Za-z0-9_\-]+$`)
)

type tableConsumer int

const (
	consumeNone tableConsumer = iota
	consumeStep
	consumeExample
)

type parser struct {
	source string

	feature  *Feature
	scenario *Scenario
	step     *Step

	pendingTags []string

	inDescription bool
	descLines     []string

	insideMultiline bool
	multilineIndent int
	multilineLines  []string

	consumer tableConsumer

	exHeader    []string
	exHeaderSet bool
	exRows      []map[string]string
}

// ParseFeature parses a UTF-8 feature text blob, recording source for
// diagnostics in any returned *SyntaxError.
func ParseFeature(text string, source string) (*Feature, error) {
	p := &parser{source: source}
	return p.run(text)
}

func (p *parser) run(text string) (*Feature, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	for idx, raw := range lines {
		lineNum := idx + 1

		if p.insideMultiline {
			if strings.TrimSpace(raw) == `"""` {
				p.step.Multiline = dedent(p.multilineLines, p.multilineIndent)
				p.step.HasMultiline = true
				p.insideMultiline = false
				p.multilineLines = nil
				continue
			}
			p.multilineLines = append(p.multilineLines, raw)
			continue
		}

		leftTrimmed := strings.TrimLeft(raw, " \t")
		if strings.HasPrefix(leftTrimmed, "#") {
			continue
		}

		stripped := stripInlineComment(raw)
		trimmed := strings.TrimSpace(stripped)

		if trimmed == "" {
			if err := p.endStepTable(); err != nil {
				return nil, err
			}
			p.endExampleBlock()
			continue
		}

		if isTagLine(trimmed) {
			p.pendingTags = append(p.pendingTags, parseTags(trimmed)...)
			continue
		}

		if m := featureRe.FindStringSubmatch(trimmed); m != nil {
			if p.feature != nil {
				return nil, newSyntaxError(p.source, lineNum, "a feature file may contain only one Feature:")
			}
			p.feature = &Feature{Name: strings.TrimSpace(m[1]), Tags: p.pendingTags, Line: lineNum, Source: p.source}
			p.pendingTags = nil
			p.inDescription = true
			p.descLines = nil
			continue
		}

		if m := scenarioRe.FindStringSubmatch(trimmed); m != nil {
			if p.feature == nil {
				return nil, newSyntaxError(p.source, lineNum, "Scenario header found before any Feature:")
			}
			if err := p.endStepTable(); err != nil {
				return nil, err
			}
			p.endExampleBlock()
			if p.inDescription {
				p.feature.Description = strings.TrimSpace(strings.Join(p.descLines, "\n"))
				p.inDescription = false
			}

			keyword := m[1]
			sc := &Scenario{
				Name:    strings.TrimSpace(m[2]),
				Keyword: keyword,
				Outline: strings.EqualFold(keyword, "Scenario Outline"),
				Feature: p.feature,
				Line:    lineNum,
				Tags:    mergeTags(p.pendingTags, p.feature.Tags),
			}
			p.feature.Scenarios = append(p.feature.Scenarios, sc)
			p.scenario = sc
			p.step = nil
			p.pendingTags = nil
			continue
		}

		if examplesRe.MatchString(trimmed) {
			if p.scenario == nil || !p.scenario.Outline {
				return nil, newSyntaxError(p.source, lineNum, "Examples: found outside a Scenario Outline")
			}
			if err := p.endStepTable(); err != nil {
				return nil, err
			}
			p.endExampleBlock()
			p.consumer = consumeExample
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			cells := parseTableRow(trimmed)
			switch p.consumer {
			case consumeExample:
				if !p.exHeaderSet {
					p.exHeader = cells
					p.exHeaderSet = true
				} else {
					p.exRows = append(p.exRows, rowFromCells(p.exHeader, cells))
				}
			default:
				if p.step == nil {
					return nil, newSyntaxError(p.source, lineNum, "a table may not appear before any step in a scenario")
				}
				if p.step.Table == nil {
					p.step.Table = &Table{Header: cells}
					p.consumer = consumeStep
				} else {
					p.step.Table.Rows = append(p.step.Table.Rows, rowFromCells(p.step.Table.Header, cells))
				}
			}
			continue
		}

		if trimmed == `"""` {
			if p.step == nil {
				return nil, newSyntaxError(p.source, lineNum, "a multiline string may not appear before any step")
			}
			if err := p.endStepTable(); err != nil {
				return nil, err
			}
			p.endExampleBlock()
			p.insideMultiline = true
			p.multilineIndent = len(raw) - len(strings.TrimLeft(raw, " \t"))
			p.multilineLines = nil
			continue
		}

		if m := stepRe.FindStringSubmatch(trimmed); m != nil {
			if p.scenario == nil {
				return nil, newSyntaxError(p.source, lineNum, "step found outside any scenario")
			}
			if err := p.endStepTable(); err != nil {
				return nil, err
			}
			p.endExampleBlock()
			st := &Step{Keyword: m[1], Sentence: trimmed, Line: lineNum, Scenario: p.scenario}
			p.scenario.Steps = append(p.scenario.Steps, st)
			p.step = st
			p.consumer = consumeNone
			continue
		}

		if p.inDescription {
			p.descLines = append(p.descLines, stripped)
			continue
		}
		// Text that isn't a recognized block and isn't part of the feature
		// description is ignored permissively (e.g. a free-text scenario
		// description line), matching the parser's leniency elsewhere.
	}

	if p.insideMultiline {
		return nil, newSyntaxError(p.source, len(lines), "unterminated multiline string at end of file")
	}
	if err := p.endStepTable(); err != nil {
		return nil, err
	}
	p.endExampleBlock()
	if p.inDescription && p.feature != nil {
		p.feature.Description = strings.TrimSpace(strings.Join(p.descLines, "\n"))
	}
	if p.feature == nil {
		return nil, newSyntaxError(p.source, 1, "no Feature: found")
	}
	return p.feature, nil
}

func (p *parser) endStepTable() error {
	if p.consumer != consumeStep {
		return nil
	}
	p.consumer = consumeNone
	if p.step != nil && p.step.Table != nil && len(p.step.Table.Rows) == 0 {
		return newSyntaxError(p.source, p.step.Line, "step table for %q has no data rows", p.step.Sentence)
	}
	return nil
}

func (p *parser) endExampleBlock() {
	if p.consumer != consumeExample {
		return
	}
	if p.exHeaderSet {
		p.scenario.Examples = append(p.scenario.Examples, ExampleBlock{Header: p.exHeader, Rows: p.exRows})
	}
	p.exHeader = nil
	p.exRows = nil
	p.exHeaderSet = false
	p.consumer = consumeNone
}

func rowFromCells(header, cells []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(cells) {
			row[h] = cells[i]
		}
	}
	return row
}

func parseTableRow(trimmed string) []string {
	parts := strings.Split(trimmed, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// stripInlineComment removes a trailing `# ...` comment from line, unless
// the `#` falls within a balanced pair of single or double quotes.
func stripInlineComment(line string) string {
	inSingle, inDouble := false, false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '#':
			if !inSingle && !inDouble {
				return strings.TrimRight(line[:i], " \t")
			}
		}
	}
	return line
}

func isTagLine(trimmed string) bool {
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !tagTokenRe.MatchString(f) {
			return false
		}
	}
	return true
}

func parseTags(trimmed string) []string {
	fields := strings.Fields(trimmed)
	tags := make([]string, len(fields))
	for i, f := range fields {
		tags[i] = strings.TrimPrefix(f, "@")
	}
	return tags
}

func mergeTags(own, inherited []string) []string {
	seen := make(map[string]bool, len(own)+len(inherited))
	out := make([]string, 0, len(own)+len(inherited))
	for _, t := range own {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range inherited {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// dedent strips up to `indent` leading space/tab columns from each line,
// raw column equality with no tab expansion (spec open question, resolved
// in DESIGN.md).
func dedent(lines []string, indent int) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		n := 0
		for n < indent && n < len(l) && (l[n] == ' ' || l[n] == '\t') {
			n++
		}
		out[i] = l[n:]
	}
	return strings.Join(out, "\n")
}
