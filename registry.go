package gobdd

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"sort"
	"strconv"

	"github.com/loom-bdd/gobdd/gherkin"
)

// stepHandler is the contract a step definition satisfies: it always
// receives the step and the world first (spec.md §4.4), followed by the
// regex's captured parameters as strings, and signals failure either via
// a non-nil error return or (mirroring the teacher's gobdd.go `stepDef.run`,
// which calls t.Fatal internally) by panicking.
//
// Go has no keyword-argument calling convention, so unlike the captures
// passed as a parameter by name, named capture groups are reduced to
// positional arguments sorted by group name (see extractCaptures below).
type stepHandler = interface{}

type handlerEntry struct {
	pattern   string
	re        *regexp.Regexp // as registered, matched verbatim
	ciRe      *regexp.Regexp // same pattern forced case-insensitive
	handler   stepHandler
	numIn     int
	definedAt gherkin.SourceLocation
}

// Registry holds the step definitions a Suite resolves sentences against.
// The zero value is ready to use; NewRegistry exists for symmetry with
// NewHookRegistry and to let a test clear state between suites without
// touching a package-level global (the teacher kept one global registry
// per process; this generalizes it to spec.md §4.3's "no hidden global
// state" note).
type Registry struct {
	entries []*handlerEntry
}

// NewRegistry returns an empty step registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Clear removes every registered step definition. Clearing an empty
// Registry is a no-op.
func (r *Registry) Clear() {
	r.entries = nil
}

// AddStep compiles pattern and registers handler for it. Unlike the
// gherkin parser's step lines, a step pattern is matched against the
// sentence with regexp.FindStringSubmatch - an unanchored search, not a
// full-sentence match - so a pattern may include its keyword
// ("When a foreign at..."), omit it entirely ("I have a defined step",
// which then matches the step regardless of whether it's a Given, When or
// Then), or match only part of a longer sentence. This mirrors both the
// teacher's AddStep (gobdd.go: a bare regexp.Compile, no anchors added)
// and lettuce's own step matching, which lettuce implements as a plain
// re.search over the full "Keyword text" sentence (test_step_runner.py:
// the same pattern 'I have a defined step' matches both a Given and a
// Then line of FEATURE1).
func (r *Registry) AddStep(pattern string, handler stepHandler) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return newStepLoadingError(pattern, "%w", err)
	}
	return r.addCompiled(pattern, re, handler)
}

// AddRegexStep registers handler against an already-compiled pattern.
func (r *Registry) AddRegexStep(re *regexp.Regexp, handler stepHandler) error {
	return r.addCompiled(re.String(), re, handler)
}

func (r *Registry) addCompiled(pattern string, re *regexp.Regexp, handler stepHandler) error {
	numIn, err := validateStepFunc(handler)
	if err != nil {
		return newStepLoadingError(pattern, "%w", err)
	}
	ciRe, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return newStepLoadingError(pattern, "%w", err)
	}
	// Best-effort: skips addCompiled and Registry.AddStep/AddRegexStep, plus
	// Suite.AddStep/AddRegexStep when called through a Suite, landing on
	// whichever function registered the step. Exact enough for
	// diagnostics; not meant to be load-bearing.
	skip := 2
	if pc, _, _, ok := runtime.Caller(skip); ok {
		if fn := runtime.FuncForPC(pc); fn != nil && regexp.MustCompile(`\(\*Suite\)\.Add(Regex)?Step$`).MatchString(fn.Name()) {
			skip++
		}
	}
	_, file, line, _ := runtime.Caller(skip)
	r.entries = append(r.entries, &handlerEntry{
		pattern:   pattern,
		re:        re,
		ciRe:      ciRe,
		handler:   handler,
		numIn:     numIn,
		definedAt: gherkin.SourceLocation{File: file, Line: line},
	})
	return nil
}

// validateStepFunc checks that handler is a func whose first two parameters
// are a *gherkin.Step and a *World (spec.md §4.4: "the step under execution
// is always available to its own handler"), and that it returns either
// nothing or a single error, mirroring the teacher's reflect-based
// `stepDef.run` dispatch in gobdd.go but validated eagerly at registration
// time instead of failing at call time.
func validateStepFunc(handler stepHandler) (int, error) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		return 0, fmt.Errorf("handler must be a function, got %s", v.Kind())
	}
	t := v.Type()
	if t.NumIn() < 2 {
		return 0, fmt.Errorf("handler must accept at least (*gherkin.Step, *World), got %d params", t.NumIn())
	}
	stepType := reflect.TypeOf(&gherkin.Step{})
	worldType := reflect.TypeOf(&World{})
	if t.In(0) != stepType {
		return 0, fmt.Errorf("handler's first parameter must be *gherkin.Step, got %s", t.In(0))
	}
	if t.In(1) != worldType {
		return 0, fmt.Errorf("handler's second parameter must be *World, got %s", t.In(1))
	}
	switch t.NumOut() {
	case 0:
	case 1:
		errType := reflect.TypeOf((*error)(nil)).Elem()
		if !t.Out(0).Implements(errType) {
			return 0, fmt.Errorf("handler's single return value must be error, got %s", t.Out(0))
		}
	default:
		return 0, fmt.Errorf("handler must return nothing or a single error, got %d results", t.NumOut())
	}
	return t.NumIn() - 2, nil
}

// Resolution is the outcome of successfully resolving a step sentence: the
// matched entry, the arguments ready to splice after (step, world) in a
// reflect.Call, and the raw captures recorded onto the resolved Step
// (spec.md §3/§4.4).
type Resolution struct {
	entry         *handlerEntry
	args          []reflect.Value
	captures      []string
	namedCaptures map[string]string
}

// Resolve finds the first registered entry whose pattern matches sentence,
// scanning entries in registration order and stopping at the first hit
// (spec.md §4.3: "scan entries in registration order; return the first
// whose pattern matches sentence").
//
// ignoreCase selects, for every entry, between its pattern as registered
// and a forced-case-insensitive variant; it exists because lettuce's
// step_runner tests toggle `ignore_case` per run (test_step_runner.py
// `f.run(ignore_case=False)`, defaulting to true). SPEC_FULL.md §4 carries
// the same default and the same override.
func (r *Registry) Resolve(sentence string, ignoreCase bool) (*Resolution, error) {
	for _, e := range r.entries {
		re := e.re
		if ignoreCase {
			re = e.ciRe
		}
		m := re.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}

		captures, named := extractCaptures(m, re.SubexpNames())
		args, err := convertArgs(e, captures)
		if err != nil {
			return nil, err
		}
		return &Resolution{entry: e, args: args, captures: captures, namedCaptures: named}, nil
	}
	return nil, errUndefinedStep
}

// extractCaptures reduces a regex match to the positional string arguments
// a handler receives. When the pattern has named groups, their values are
// sorted by name and used in place of the plain positional submatches
// (lettuce's test_steps_that_match_groups_and_named_groups_takes_just_named_as_params:
// named groups win outright over positional ones when both are present).
func extractCaptures(match []string, names []string) ([]string, map[string]string) {
	named := map[string]string{}
	for i, name := range names {
		if i == 0 || name == "" {
			continue
		}
		named[name] = match[i]
	}
	if len(named) > 0 {
		keys := make([]string, 0, len(named))
		for k := range named {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make([]string, len(keys))
		for i, k := range keys {
			ordered[i] = named[k]
		}
		return ordered, named
	}
	return match[1:], named
}

// convertArgs converts the string captures to the handler's declared
// parameter types, mirroring the teacher's paramType byte-conversion
// helper in gobdd.go, generalized from the fixed {int}/{float}/{word}/
// {text} sugar to whatever concrete types the handler's signature names.
func convertArgs(e *handlerEntry, captures []string) ([]reflect.Value, error) {
	t := reflect.TypeOf(e.handler)
	if len(captures) != e.numIn {
		return nil, fmt.Errorf("gobdd: step `%s` expects %d captures, sentence produced %d", e.pattern, e.numIn, len(captures))
	}
	args := make([]reflect.Value, e.numIn)
	for i, raw := range captures {
		paramType := t.In(i + 2)
		v, err := convertOne(raw, paramType)
		if err != nil {
			return nil, fmt.Errorf("gobdd: step `%s` argument %d: %w", e.pattern, i+1, err)
		}
		args[i] = v
	}
	return args, nil
}

func convertOne(raw string, paramType reflect.Type) (reflect.Value, error) {
	switch paramType.Kind() {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(paramType), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not an int: %w", raw, err)
		}
		return reflect.ValueOf(n).Convert(paramType), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a float: %w", raw, err)
		}
		return reflect.ValueOf(f).Convert(paramType), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a bool: %w", raw, err)
		}
		return reflect.ValueOf(b).Convert(paramType), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported step parameter type %s", paramType)
	}
}
