package gherkin

import "strings"

// MatchesTags reports whether tags satisfies the filter expression list
// exprs. Each expression is a bare tag (`t`), a negation (`-t`), a fuzzy
// substring match (`~t`) or a negated fuzzy match (`-~t`).
//
// Negative expressions are applied first and exclude on any match. The
// remaining, positive expressions are OR'd: a scenario passes if it has
// none of the excluded tags and, when at least one positive expression is
// present, matches at least one of them. A scenario with no tags vacuously
// passes a purely-negative expression list (spec.md §4.5/§8).
func MatchesTags(tags []string, exprs []string) bool {
	var positives []string

	for _, expr := range exprs {
		negate, fuzzy, name := parseTagExpr(expr)
		if !negate {
			positives = append(positives, expr)
			continue
		}
		if tagSetContains(tags, name, fuzzy) {
			return false
		}
	}

	if len(positives) == 0 {
		return true
	}

	for _, expr := range positives {
		_, fuzzy, name := parseTagExpr(expr)
		if tagSetContains(tags, name, fuzzy) {
			return true
		}
	}
	return false
}

func parseTagExpr(expr string) (negate, fuzzy bool, name string) {
	switch {
	case strings.HasPrefix(expr, "-~"):
		return true, true, expr[2:]
	case strings.HasPrefix(expr, "-"):
		return true, false, expr[1:]
	case strings.HasPrefix(expr, "~"):
		return false, true, expr[1:]
	default:
		return false, false, expr
	}
}

func tagSetContains(tags []string, name string, fuzzy bool) bool {
	for _, t := range tags {
		if fuzzy {
			if strings.Contains(t, name) {
				return true
			}
		} else if t == name {
			return true
		}
	}
	return false
}
