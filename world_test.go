package gobdd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldSetGet(t *testing.T) {
	w := NewWorld()
	_, ok := w.Get("key")
	assert.False(t, ok)

	w.Set("key", 42)
	v, ok := w.Get("key")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestWorldClearRemovesAttributes(t *testing.T) {
	w := NewWorld()
	w.Set("key", "value")
	w.Clear()
	_, ok := w.Get("key")
	assert.False(t, ok)
}

func TestWorldCloneIsIndependent(t *testing.T) {
	w := NewWorld()
	w.Set("key", "original")
	clone := w.Clone()
	clone.Set("key", "changed")

	orig, _ := w.Get("key")
	cloned, _ := clone.Get("key")
	assert.Equal(t, "original", orig)
	assert.Equal(t, "changed", cloned)
}

func TestInvokeOutsideRunningStepPanics(t *testing.T) {
	w := NewWorld()
	assert.Panics(t, func() { _ = w.Given("anything") })
}

func TestInvokeDelegatesToBoundFunc(t *testing.T) {
	w := NewWorld()
	var seen string
	w.invoke = func(sentence string) error {
		seen = sentence
		return errors.New("nested failure")
	}
	err := w.When("a nested step")
	assert.EqualError(t, err, "nested failure")
	assert.Equal(t, "When a nested step", seen)
}

func TestBehaveAsStopsAtFirstFailure(t *testing.T) {
	w := NewWorld()
	var invoked []string
	w.invoke = func(sentence string) error {
		invoked = append(invoked, sentence)
		if sentence == "When it breaks" {
			return errors.New("broke")
		}
		return nil
	}

	err := w.BehaveAs(`
		Given a setup step
		When it breaks
		Then it never gets here
	`)
	require.Error(t, err)
	assert.Equal(t, []string{"Given a setup step", "When it breaks"}, invoked)
}
