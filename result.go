package gobdd

import "github.com/loom-bdd/gobdd/gherkin"

// StepResult is the immutable outcome of one executed step (spec.md §6),
// grounded on denizgursoy-cacik's StepResult/StepStatus shape and on
// lettuce's why.cause/why.traceback/error-kind fields (test_step_runner.py).
type StepResult struct {
	Sentence  string
	State     gherkin.StepState
	Failure   *gherkin.Failure
	DefinedAt gherkin.SourceLocation
}

// ScenarioResult aggregates the results of every step in one scenario run
// (one per Examples row, for an outline). Scenario is a back-reference to
// the scenario that produced this result (spec.md §6); StepsPassed/
// StepsFailed/StepsSkipped/StepsUndefined are the ordered lists of that
// scenario's steps in each corresponding state, so a caller can get "the
// list of failed steps" directly instead of re-deriving it from Steps.
type ScenarioResult struct {
	Name     string
	Tags     []string
	Scenario *gherkin.Scenario
	Steps    []StepResult
	Passed   bool

	StepsPassed    []StepResult
	StepsFailed    []StepResult
	StepsSkipped   []StepResult
	StepsUndefined []StepResult
}

func newScenarioResult(sc *gherkin.Scenario, steps []*gherkin.Step) ScenarioResult {
	res := ScenarioResult{Name: sc.Name, Tags: sc.Tags, Scenario: sc, Passed: true}
	for _, st := range steps {
		sr := StepResult{Sentence: st.Sentence, State: st.State, Failure: st.Failure, DefinedAt: st.DefinedAt}
		res.Steps = append(res.Steps, sr)
		switch st.State {
		case gherkin.StepPassed:
			res.StepsPassed = append(res.StepsPassed, sr)
		case gherkin.StepFailed:
			res.StepsFailed = append(res.StepsFailed, sr)
			res.Passed = false
		case gherkin.StepSkipped:
			res.StepsSkipped = append(res.StepsSkipped, sr)
			res.Passed = false
		case gherkin.StepUndefined:
			res.StepsUndefined = append(res.StepsUndefined, sr)
			res.Passed = false
		}
	}
	return res
}

// FeatureResult aggregates every scenario result belonging to one feature.
type FeatureResult struct {
	Name      string
	Scenarios []ScenarioResult
	Passed    bool
}

func newFeatureResult(ft *gherkin.Feature) FeatureResult {
	return FeatureResult{Name: ft.Name, Passed: true}
}

func (fr *FeatureResult) add(sr ScenarioResult) {
	fr.Scenarios = append(fr.Scenarios, sr)
	if !sr.Passed {
		fr.Passed = false
	}
}

// RunResult is the top-level outcome of a Suite.Run call: every feature's
// result plus run-wide totals, matching spec.md §6's external result shape
// (steps_passed/failed/undefined/skipped, total_steps, a single pass/fail
// flag).
type RunResult struct {
	Features []FeatureResult
	Passed   bool

	TotalSteps     int
	StepsPassed    int
	StepsFailed    int
	StepsSkipped   int
	StepsUndefined int
}

func newRunResult() *RunResult {
	return &RunResult{Passed: true}
}

func (r *RunResult) addFeature(fr FeatureResult) {
	r.Features = append(r.Features, fr)
	if !fr.Passed {
		r.Passed = false
	}
	for _, sc := range fr.Scenarios {
		r.TotalSteps += len(sc.Steps)
		r.StepsPassed += len(sc.StepsPassed)
		r.StepsFailed += len(sc.StepsFailed)
		r.StepsSkipped += len(sc.StepsSkipped)
		r.StepsUndefined += len(sc.StepsUndefined)
	}
}
