// Package assertions gives step definitions a small set of fluent checks
// that return an error instead of reporting directly to a *testing.T,
// matching the runner's failure contract (runner.go: a step fails either
// by returning an error or by panicking).
//
// Grounded on ormasoftchile-gert's pkg/assertions, which evaluates a fixed
// set of named checks (contains, equals, matches, ...) and reports a
// structured pass/fail/message result rather than calling t.Fatal
// directly; the shape carries over here even though the underlying
// comparison (ObjectsAreEqual) comes from testify, already the teacher's
// test dependency, rather than from github.com/go-bdd/assert. The teacher's
// own go.mod lists go-bdd/assert but no file in the teacher repo ever
// imports it, and its source isn't present to ground an API against, so it
// is dropped here rather than guessed at (see DESIGN.md).
package assertions

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stretchr/testify/assert"
)

// Equal fails unless actual deep-equals expected.
func Equal(expected, actual interface{}) error {
	if !assert.ObjectsAreEqual(expected, actual) {
		return fmt.Errorf("expected %v, got %v", expected, actual)
	}
	return nil
}

// NotEqual fails if actual deep-equals expected.
func NotEqual(expected, actual interface{}) error {
	if assert.ObjectsAreEqual(expected, actual) {
		return fmt.Errorf("expected value other than %v", expected)
	}
	return nil
}

// Contains fails unless haystack contains needle.
func Contains(haystack, needle string) error {
	if !strings.Contains(haystack, needle) {
		return fmt.Errorf("%q does not contain %q", haystack, needle)
	}
	return nil
}

// NotContains fails if haystack contains needle.
func NotContains(haystack, needle string) error {
	if strings.Contains(haystack, needle) {
		return fmt.Errorf("%q unexpectedly contains %q", haystack, needle)
	}
	return nil
}

// Matches fails unless value matches the regular expression pattern.
func Matches(pattern, value string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if !re.MatchString(value) {
		return fmt.Errorf("%q does not match /%s/", value, pattern)
	}
	return nil
}

// True fails unless ok is true. msg, if non-empty, replaces the default
// failure message.
func True(ok bool, msg string) error {
	if !ok {
		if msg == "" {
			msg = "expected condition to be true"
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}
