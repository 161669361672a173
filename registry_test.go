package gobdd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-bdd/gobdd/gherkin"
)

func TestAddStepRejectsBadPattern(t *testing.T) {
	r := NewRegistry()
	err := r.AddStep("(unterminated", func(s *gherkin.Step, w *World) {})
	require.Error(t, err)
	var loadErr *StepLoadingError
	assert.ErrorAs(t, err, &loadErr)
}

func TestAddStepRejectsWrongFirstParams(t *testing.T) {
	r := NewRegistry()
	err := r.AddStep("I do something", func(a, b int) {})
	require.Error(t, err)
}

func TestResolveUndefinedSentence(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("nothing registered matches this", true)
	assert.ErrorIs(t, err, errUndefinedStep)
}

func TestResolvePicksFirstRegisteredMatch(t *testing.T) {
	r := NewRegistry()
	var which string
	require.NoError(t, r.AddStep(`I have (\d+) cukes`, func(s *gherkin.Step, w *World, n string) {
		which = "generic:" + n
	}))
	require.NoError(t, r.AddStep(`I have (\d+) cukes in my (\w+)`, func(s *gherkin.Step, w *World, n, place string) {
		which = "specific:" + n + ":" + place
	}))

	res, err := r.Resolve("I have 5 cukes in my belly", true)
	require.NoError(t, err)
	runInline(t, res)
	assert.Equal(t, "generic:5", which)
}

func TestResolveIsCaseInsensitiveByDefault(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddStep("i am shouting", func(s *gherkin.Step, w *World) {}))
	_, err := r.Resolve("I AM SHOUTING", true)
	require.NoError(t, err)
}

func TestResolveHonorsCaseSensitiveOverride(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddStep("i am shouting", func(s *gherkin.Step, w *World) {}))
	_, err := r.Resolve("I AM SHOUTING", false)
	assert.ErrorIs(t, err, errUndefinedStep)
}

func TestNamedCapturesOverridePositional(t *testing.T) {
	r := NewRegistry()
	var gotA, gotB string
	require.NoError(t, r.AddStep(`(?P<b>\w+) and (?P<a>\w+)`, func(s *gherkin.Step, w *World, a, b string) {
		gotA, gotB = a, b
	}))
	res, err := r.Resolve("first and second", true)
	require.NoError(t, err)
	runInline(t, res)
	// alphabetical sort of group names a,b => a's value ("second") first
	assert.Equal(t, "second", gotA)
	assert.Equal(t, "first", gotB)
}

func TestHandlerCanReturnError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, r.AddStep("it fails", func(s *gherkin.Step, w *World) error {
		return boom
	}))
	res, err := r.Resolve("it fails", true)
	require.NoError(t, err)

	runner := NewRunner(r, NewHookRegistry(), true)
	callErr := runner.call(res, &gherkin.Step{Sentence: "it fails"}, NewWorld())
	assert.ErrorIs(t, callErr, boom)
}

// runInline invokes a resolved handler directly, the way runner.call does,
// for tests that only care about argument wiring.
func runInline(t *testing.T, res *Resolution) {
	t.Helper()
	r := NewRunner(nil, NewHookRegistry(), true)
	require.NoError(t, r.call(res, &gherkin.Step{}, NewWorld()))
}
