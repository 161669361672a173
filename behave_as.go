package gobdd

import (
	"regexp"
	"strings"
)

var behaveAsLineRe = regexp.MustCompile(`(?i)^\s*(Given|When|Then|And|But)\b(.*)$`)

// splitStepLines breaks a behave_as block into individual step sentences,
// one per Given/When/Then/And/But line, trimming surrounding whitespace.
// Blank lines are dropped. This reuses the same keyword vocabulary as the
// feature-file parser but is deliberately independent of it: a behave_as
// body is a handful of lines typed in source, not a parsed feature file.
func splitStepLines(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if behaveAsLineRe.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}
