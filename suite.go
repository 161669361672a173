package gobdd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/loom-bdd/gobdd/gherkin"
)

// Suite holds everything needed to run a set of feature files: the step
// registry, the hook registry and the options controlling which feature
// files and scenarios are in scope. It is the direct descendant of the
// teacher's Suite/SuiteOptions pair in the old gobdd.go, rewired onto the
// gherkin/registry/runner split instead of wrapping cucumber/gherkin-go
// (see SPEC_FULL.md §0).
type Suite struct {
	options  SuiteOptions
	registry *Registry
	hooks    *HookRegistry
	logger   Logger
}

// SuiteOptions configures a Suite: where its feature files live, which
// tags/scenarios are in scope, and the default case sensitivity for step
// resolution.
type SuiteOptions struct {
	featuresPath string
	tags         []string
	ignoreCase   bool
}

// NewSuiteOptions returns the default configuration: features under
// "features/*.feature", no tag filter, case-insensitive step matching
// (lettuce's default, see SPEC_FULL.md §4).
func NewSuiteOptions() SuiteOptions {
	return SuiteOptions{
		featuresPath: "features/*.feature",
		ignoreCase:   true,
	}
}

// WithFeaturesPath configures a glob pattern where feature files can be
// found. The default is "features/*.feature".
func WithFeaturesPath(path string) func(*SuiteOptions) {
	return func(o *SuiteOptions) { o.featuresPath = path }
}

// WithTags restricts a run to scenarios matching the given tag expressions
// (gherkin.MatchesTags: "name", "-name", "~name", "-~name").
func WithTags(tags []string) func(*SuiteOptions) {
	return func(o *SuiteOptions) { o.tags = tags }
}

// WithCaseSensitiveSteps disables the default case-insensitive step
// matching (lettuce's `ignore_case=False`, SPEC_FULL.md §4).
func WithCaseSensitiveSteps() func(*SuiteOptions) {
	return func(o *SuiteOptions) { o.ignoreCase = false }
}

// NewSuite builds a Suite from the given options. Dropped from the
// teacher's NewSuite: RunInParallel. spec.md's Non-goals explicitly
// exclude parallel scenario execution, and the World's single-threaded,
// unsynchronized attribute bag (world.go) would make concurrent scenario
// runs unsafe by construction, so the option has no home here (see
// DESIGN.md, "Suite / functional options").
func NewSuite(opts ...func(*SuiteOptions)) *Suite {
	options := NewSuiteOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Suite{
		options:  options,
		registry: NewRegistry(),
		hooks:    NewHookRegistry(),
	}
}

// AddStep registers a step definition. pattern is matched as an unanchored
// substring search against a step's full sentence, keyword included (see
// Registry.AddStep); WithCaseSensitiveSteps governs whether resolution
// uses the pattern as written or a forced-case-insensitive variant.
func (s *Suite) AddStep(pattern string, handler stepHandler) {
	if err := s.registry.AddStep(pattern, handler); err != nil {
		panic(err)
	}
}

// AddRegexStep registers a step definition against an already-compiled
// pattern. As with AddStep, WithCaseSensitiveSteps governs whether
// resolution uses the pattern as compiled or a forced-case-insensitive
// variant of it.
func (s *Suite) AddRegexStep(re *regexp.Regexp, handler stepHandler) {
	if err := s.registry.AddRegexStep(re, handler); err != nil {
		panic(err)
	}
}

// SetLogger redirects the Suite's runner diagnostic trace to l (see
// Logger); a Suite with no logger set stays silent.
func (s *Suite) SetLogger(l Logger) {
	s.logger = l
}

func (s *Suite) AddBeforeAll(f BeforeAllFunc)           { s.hooks.AddBeforeAll(f) }
func (s *Suite) AddAfterAll(f AfterAllFunc)              { s.hooks.AddAfterAll(f) }
func (s *Suite) AddBeforeFeature(f FeatureFunc)          { s.hooks.AddBeforeFeature(f) }
func (s *Suite) AddAfterFeature(f FeatureFunc)           { s.hooks.AddAfterFeature(f) }
func (s *Suite) AddBeforeScenario(f ScenarioFunc)        { s.hooks.AddBeforeScenario(f) }
func (s *Suite) AddAfterScenario(f ScenarioFunc)         { s.hooks.AddAfterScenario(f) }
func (s *Suite) AddBeforeStep(f StepFunc)                { s.hooks.AddBeforeStep(f) }
func (s *Suite) AddAfterStep(f StepFunc)                 { s.hooks.AddAfterStep(f) }

// Run globs featuresPath, parses every match and runs it, returning the
// aggregate result. It mirrors the teacher's Suite.Run, which globbed
// options.featuresPaths and called executeFeature per match (old
// gobdd.go), but returns a RunResult instead of driving *testing.T
// directly: a caller that wants go test integration wraps Run itself
// (cmd/gobdd is one such caller, outside go test).
func (s *Suite) Run() (*RunResult, error) {
	paths, err := filepath.Glob(s.options.featuresPath)
	if err != nil {
		return nil, fmt.Errorf("gobdd: bad features path %q: %w", s.options.featuresPath, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("gobdd: no feature files matched %q", s.options.featuresPath)
	}

	features := make([]*gherkin.Feature, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("gobdd: reading %s: %w", path, err)
		}
		ft, err := gherkin.ParseFeature(string(raw), path)
		if err != nil {
			return nil, fmt.Errorf("gobdd: parsing %s: %w", path, err)
		}
		features = append(features, ft)
	}

	runner := NewRunner(s.registry, s.hooks, s.options.ignoreCase)
	if s.logger != nil {
		runner.SetLogger(s.logger)
	}
	world := NewWorld()
	opts := RunOptions{Tags: s.options.tags}
	return runner.RunAll(features, world, opts), nil
}
