package gobdd

import (
	"fmt"
	"reflect"

	"github.com/loom-bdd/gobdd/gherkin"
)

// RunOptions narrows which scenarios of a feature actually execute.
// Scenarios is a set of 1-based indices into Feature.Scenarios (lettuce's
// `feature.run(scenarios=(2,5))`, SPEC_FULL.md §4); a nil or empty slice
// runs everything not excluded by Tags. Tags is evaluated with
// gherkin.MatchesTags against each scenario's (feature-inherited) tags.
type RunOptions struct {
	Tags      []string
	Scenarios []int
}

func (o RunOptions) includesIndex(idx int) bool {
	if len(o.Scenarios) == 0 {
		return true
	}
	for _, want := range o.Scenarios {
		if want == idx {
			return true
		}
	}
	return false
}

// Runner executes parsed features against a Registry and HookRegistry. It
// holds no mutable run state of its own; everything per-run lives in the
// World and in the Result trees it returns, so one Runner can drive many
// runs.
type Runner struct {
	registry   *Registry
	hooks      *HookRegistry
	ignoreCase bool
	logger     Logger
}

// NewRunner builds a Runner. ignoreCase controls the default case
// sensitivity steps resolve with (lettuce defaults `ignore_case=True`, see
// test_step_runner.py and SPEC_FULL.md §4). Its diagnostic trace is
// discarded by default; see SetLogger.
func NewRunner(registry *Registry, hooks *HookRegistry, ignoreCase bool) *Runner {
	return &Runner{registry: registry, hooks: hooks, ignoreCase: ignoreCase, logger: defaultLogger()}
}

// SetLogger redirects the runner's per-step diagnostic trace to l.
func (r *Runner) SetLogger(l Logger) {
	r.logger = l
}

// RunAll runs every feature in order, wrapping the whole run in the
// before.all/after.all hooks. world is shared across every feature unless a
// hook or step replaces its attributes; scenario-level isolation happens
// via World.Clone (see runScenario).
func (r *Runner) RunAll(features []*gherkin.Feature, world *World, opts RunOptions) *RunResult {
	result := newRunResult()
	r.hooks.runBeforeAll(world)
	for _, ft := range features {
		result.addFeature(r.RunFeature(ft, world, opts))
	}
	r.hooks.runAfterAll(world, result.TotalSteps)
	return result
}

// RunFeature runs every scenario of ft that opts admits.
func (r *Runner) RunFeature(ft *gherkin.Feature, world *World, opts RunOptions) FeatureResult {
	fr := newFeatureResult(ft)
	r.hooks.runBeforeFeature(world, ft)
	for i, sc := range ft.Scenarios {
		idx := i + 1
		if !opts.includesIndex(idx) {
			continue
		}
		if !gherkin.MatchesTags(sc.Tags, opts.Tags) {
			continue
		}
		for _, sr := range r.runScenario(sc, world) {
			fr.add(sr)
		}
	}
	r.hooks.runAfterFeature(world, ft)
	return fr
}

// runScenario runs sc once per its evaluated outline row (or exactly once,
// for a plain scenario), each against its own cloned World so parallel
// Examples rows cannot see each other's state (spec.md §4.2/§5).
func (r *Runner) runScenario(sc *gherkin.Scenario, parent *World) []ScenarioResult {
	evaluated := sc.Evaluated()
	if len(evaluated) == 0 {
		steps := sc.SolvedSteps()
		return []ScenarioResult{r.runOneScenario(sc, steps, parent.Clone())}
	}
	results := make([]ScenarioResult, 0, len(evaluated))
	for _, row := range evaluated {
		results = append(results, r.runOneScenario(sc, row.Steps, parent.Clone()))
	}
	return results
}

func (r *Runner) runOneScenario(sc *gherkin.Scenario, steps []*gherkin.Step, world *World) ScenarioResult {
	r.hooks.runBeforeScenario(world, sc)
	skip := false
	for _, step := range steps {
		if skip {
			step.State = gherkin.StepSkipped
			continue
		}
		r.runStep(step, world)
		if step.State == gherkin.StepFailed || step.State == gherkin.StepUndefined {
			skip = true
		}
	}
	r.hooks.runAfterScenario(world, sc)
	return newScenarioResult(sc, steps)
}

// runStep resolves and executes a single step in place, setting its
// Resolved/HasDefinition/Captures/NamedCaptures/DefinedAt and
// State/Failure fields (spec.md §3/§4.5).
func (r *Runner) runStep(step *gherkin.Step, world *World) {
	r.hooks.runBeforeStep(world, step)
	defer r.hooks.runAfterStep(world, step)

	res, err := r.registry.Resolve(stepSentenceFor(step), r.ignoreCase)
	if err != nil {
		step.Resolved = false
		step.HasDefinition = false
		step.State = gherkin.StepUndefined
		step.Failure = &gherkin.Failure{Cause: err.Error(), Kind: "undefined"}
		r.logger.Printf("gobdd: %q: undefined", step.Sentence)
		return
	}

	step.Resolved = true
	step.HasDefinition = true
	step.DefinedAt = res.entry.definedAt
	step.Captures = res.captures
	step.NamedCaptures = res.namedCaptures

	prevInvoke := world.invoke
	world.invoke = func(sentence string) error { return r.invoke(sentence, world) }
	defer func() { world.invoke = prevInvoke }()

	if err := r.call(res, step, world); err != nil {
		step.State = gherkin.StepFailed
		step.Failure = &gherkin.Failure{Cause: err.Error(), Kind: failureKind(err)}
		r.logger.Printf("gobdd: %q: failed: %v", step.Sentence, err)
		return
	}
	step.State = gherkin.StepPassed
	r.logger.Printf("gobdd: %q: passed", step.Sentence)
}

// invoke resolves and runs sentence as a nested step (World.Given/When/
// Then/BehaveAs), reusing the calling step's world but not its result
// bookkeeping: a nested step's pass/fail becomes the parent step's error,
// it does not appear separately in the ScenarioResult (spec.md §4.6).
func (r *Runner) invoke(sentence string, world *World) error {
	res, err := r.registry.Resolve(sentence, r.ignoreCase)
	if err != nil {
		return err
	}
	nested := &gherkin.Step{
		Sentence:      sentence,
		Resolved:      true,
		HasDefinition: true,
		DefinedAt:     res.entry.definedAt,
		Captures:      res.captures,
		NamedCaptures: res.namedCaptures,
	}
	return r.call(res, nested, world)
}

// call dispatches to the resolved handler via reflect, converting a panic
// (the teacher's handlers call t.Fatal/t.Error, which this engine has no
// *testing.T to receive, so a handler signals failure either by returning
// an error or by panicking) into a plain error.
func (r *Runner) call(res *Resolution, step *gherkin.Step, world *World) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()

	in := make([]reflect.Value, 0, len(res.args)+2)
	in = append(in, reflect.ValueOf(step), reflect.ValueOf(world))
	in = append(in, res.args...)

	out := reflect.ValueOf(res.entry.handler).Call(in)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// stepSentenceFor resolves the sentence a step should be matched against:
// materialized steps already carry it in Sentence (outline placeholders
// are substituted well before resolution, see gherkin.Scenario.SolvedSteps).
func stepSentenceFor(step *gherkin.Step) string {
	return step.Sentence
}

// failureKind coarsely classifies an error for reporting, mirroring
// lettuce's error-kind tag (AssertionError vs. an arbitrary exception) in
// test_step_runner.py's `why.exception`/`why.cause` fixtures. Everything
// that isn't a StepLoadingError (caught earlier, at registration) is
// reported as an assertion failure unless it implements a Kind() string
// method, letting richer handler errors override the label.
func failureKind(err error) string {
	type kinder interface{ Kind() string }
	if k, ok := err.(kinder); ok {
		return k.Kind()
	}
	return "assertion"
}
