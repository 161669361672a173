package gobdd

// World is the process-wide attribute bag shared between hooks and steps
// (spec.md §3/§5). It carries no synchronization of its own: the engine is
// strictly sequential, and any test that introduces goroutines must
// coordinate externally.
//
// Re-architected per spec.md §9: rather than a dynamic attribute bag owned
// implicitly by the process, World is an explicit value threaded into every
// hook and step handler call, so a host can run more than one World (e.g.
// one per `go test` package) without the engine reaching for global state.
type World struct {
	attrs  map[interface{}]interface{}
	invoke func(sentence string) error
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{attrs: map[interface{}]interface{}{}}
}

// Set stores value under key.
func (w *World) Set(key, value interface{}) {
	w.attrs[key] = value
}

// Get retrieves the value stored under key, and whether it was present.
func (w *World) Get(key interface{}) (interface{}, bool) {
	v, ok := w.attrs[key]
	return v, ok
}

// Clear removes every attribute, per the explicit teardown contract
// (spec.md §3 "cleared on explicit teardown").
func (w *World) Clear() {
	w.attrs = map[interface{}]interface{}{}
}

// Given, When and Then let a step definition invoke another registered step
// by sentence from within its own body, the way lettuce's step object
// exposes step.given/when/then (test_step_runner.py
// test_a_step_can_invoke_other_steps_and_propagate_its_state). Each
// constructs the transient sentence by prepending its own keyword
// ("Given "/"When "/"Then ") to s before resolving (spec.md §4.6), so a
// step definition registered against a pattern that spells out its
// keyword (e.g. "Given a cart") still resolves when invoked this way.
func (w *World) Given(s string) error { return w.Invoke("Given " + s) }
func (w *World) When(s string) error  { return w.Invoke("When " + s) }
func (w *World) Then(s string) error  { return w.Invoke("Then " + s) }

// Invoke resolves and runs sentence against the same registry and world as
// the step currently executing, propagating its failure to the caller
// instead of to the overall scenario directly (spec.md §4.6). Calling it
// outside of a running step is a programming error and panics.
func (w *World) Invoke(sentence string) error {
	if w.invoke == nil {
		panic("gobdd: World.Invoke called outside of a running step")
	}
	return w.invoke(sentence)
}

// BehaveAs invokes every Given/When/Then/And/But line in text as nested
// steps in order, stopping at the first failure, mirroring lettuce's
// step.behave_as(\"\"\"...\"\"\") (spec.md §4.6).
func (w *World) BehaveAs(text string) error {
	lines := splitStepLines(text)
	for _, line := range lines {
		if err := w.Invoke(line); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a new World seeded with a shallow copy of the current
// attributes, used to run every scenario, and each evaluated row of a
// Scenario Outline, against an independent World (the teacher's
// `ctx.Clone()` per scenario outline iteration in gobdd.go).
func (w *World) Clone() *World {
	clone := NewWorld()
	for k, v := range w.attrs {
		clone.attrs[k] = v
	}
	return clone
}
