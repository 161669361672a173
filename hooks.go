package gobdd

import "github.com/loom-bdd/gobdd/gherkin"

// The hook registry dispatches in registration order across the eight
// lifecycle phases spec.md §4.3 lists: before/after, crossed with
// all/feature/scenario/step. The teacher exposed these one at a time as
// functional options on SuiteOptions (WithBeforeScenario, WithAfterStep,
// ...); HookRegistry generalizes that to an explicit, independently
// testable type so a Suite can be built from more than one source of hooks.

// BeforeAllFunc/AfterAllFunc run once around the entire run. AfterAllFunc
// additionally receives the run's total step count (RunResult.TotalSteps,
// which includes skipped and undefined steps), matching
// lettuce's `after.all` hook which closes over the accumulated step count
// (test_step_runner.py).
type BeforeAllFunc func(world *World)
type AfterAllFunc func(world *World, totalSteps int)

// FeatureFunc runs around a single feature.
type FeatureFunc func(world *World, feature *gherkin.Feature)

// ScenarioFunc runs around a single scenario.
type ScenarioFunc func(world *World, scenario *gherkin.Scenario)

// StepFunc runs around a single step.
type StepFunc func(world *World, step *gherkin.Step)

// HookRegistry holds the registered hooks for every phase. The zero value
// is ready to use.
type HookRegistry struct {
	beforeAll      []BeforeAllFunc
	afterAll       []AfterAllFunc
	beforeFeature  []FeatureFunc
	afterFeature   []FeatureFunc
	beforeScenario []ScenarioFunc
	afterScenario  []ScenarioFunc
	beforeStep     []StepFunc
	afterStep      []StepFunc
}

// NewHookRegistry returns an empty hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{}
}

func (h *HookRegistry) AddBeforeAll(f BeforeAllFunc)           { h.beforeAll = append(h.beforeAll, f) }
func (h *HookRegistry) AddAfterAll(f AfterAllFunc)             { h.afterAll = append(h.afterAll, f) }
func (h *HookRegistry) AddBeforeFeature(f FeatureFunc)         { h.beforeFeature = append(h.beforeFeature, f) }
func (h *HookRegistry) AddAfterFeature(f FeatureFunc)          { h.afterFeature = append(h.afterFeature, f) }
func (h *HookRegistry) AddBeforeScenario(f ScenarioFunc)       { h.beforeScenario = append(h.beforeScenario, f) }
func (h *HookRegistry) AddAfterScenario(f ScenarioFunc)        { h.afterScenario = append(h.afterScenario, f) }
func (h *HookRegistry) AddBeforeStep(f StepFunc)               { h.beforeStep = append(h.beforeStep, f) }
func (h *HookRegistry) AddAfterStep(f StepFunc)                { h.afterStep = append(h.afterStep, f) }

func (h *HookRegistry) runBeforeAll(w *World) {
	for _, f := range h.beforeAll {
		f(w)
	}
}

func (h *HookRegistry) runAfterAll(w *World, totalSteps int) {
	for _, f := range h.afterAll {
		f(w, totalSteps)
	}
}

func (h *HookRegistry) runBeforeFeature(w *World, ft *gherkin.Feature) {
	for _, f := range h.beforeFeature {
		f(w, ft)
	}
}

func (h *HookRegistry) runAfterFeature(w *World, ft *gherkin.Feature) {
	for _, f := range h.afterFeature {
		f(w, ft)
	}
}

func (h *HookRegistry) runBeforeScenario(w *World, sc *gherkin.Scenario) {
	for _, f := range h.beforeScenario {
		f(w, sc)
	}
}

func (h *HookRegistry) runAfterScenario(w *World, sc *gherkin.Scenario) {
	for _, f := range h.afterScenario {
		f(w, sc)
	}
}

func (h *HookRegistry) runBeforeStep(w *World, st *gherkin.Step) {
	for _, f := range h.beforeStep {
		f(w, st)
	}
}

func (h *HookRegistry) runAfterStep(w *World, st *gherkin.Step) {
	for _, f := range h.afterStep {
		f(w, st)
	}
}
