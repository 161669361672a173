package gobdd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loom-bdd/gobdd/gherkin"
)

func TestHooksRunInRegistrationOrder(t *testing.T) {
	h := NewHookRegistry()
	var order []string
	h.AddBeforeScenario(func(w *World, sc *gherkin.Scenario) { order = append(order, "first") })
	h.AddBeforeScenario(func(w *World, sc *gherkin.Scenario) { order = append(order, "second") })

	h.runBeforeScenario(NewWorld(), &gherkin.Scenario{})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAfterAllReceivesTotalStepCount(t *testing.T) {
	h := NewHookRegistry()
	var total int
	h.AddAfterAll(func(w *World, totalSteps int) { total = totalSteps })

	h.runAfterAll(NewWorld(), 7)
	assert.Equal(t, 7, total)
}

func TestFeatureAndStepHooksFire(t *testing.T) {
	h := NewHookRegistry()
	var seenFeature, seenStep bool
	h.AddBeforeFeature(func(w *World, ft *gherkin.Feature) { seenFeature = true })
	h.AddAfterStep(func(w *World, st *gherkin.Step) { seenStep = true })

	h.runBeforeFeature(NewWorld(), &gherkin.Feature{})
	h.runAfterStep(NewWorld(), &gherkin.Step{})

	assert.True(t, seenFeature)
	assert.True(t, seenStep)
}
