package gobdd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-bdd/gobdd/gherkin"
)

func writeFeature(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestSuiteRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFeature(t, dir, "calculator.feature", `
Feature: Calculator
  Scenario Outline: Add two numbers
    Given I have entered <input_1> into the calculator
    And I have entered <input_2> into the calculator
    When I press <button>
    Then the result should be <output> on the screen

    Examples:
      | input_1 | input_2 | button | output |
      | 20      | 30      | add    | 50     |
      | 2       | 5       | add    | 7      |
`)

	suite := NewSuite(WithFeaturesPath(filepath.Join(dir, "*.feature")))

	var entered []string
	suite.AddStep(`I have entered (\d+) into the calculator`, func(s *gherkin.Step, w *World, n string) {
		entered = append(entered, n)
	})
	suite.AddStep(`I press (\w+)`, func(s *gherkin.Step, w *World, button string) {
		w.Set("button", button)
	})
	suite.AddStep(`the result should be (\d+) on the screen`, func(s *gherkin.Step, w *World, result string) error {
		button, _ := w.Get("button")
		if button != "add" {
			return errors.New("unexpected button")
		}
		return nil
	})

	result, err := suite.Run()
	require.NoError(t, err)
	require.True(t, result.Passed)
	require.Len(t, result.Features, 1)
	require.Len(t, result.Features[0].Scenarios, 2)
	assert.Equal(t, []string{"20", "30", "2", "5"}, entered)
}

func TestSuiteRunRejectsEmptyGlob(t *testing.T) {
	suite := NewSuite(WithFeaturesPath(filepath.Join(t.TempDir(), "*.feature")))
	_, err := suite.Run()
	assert.Error(t, err)
}

func TestSuiteAddStepPanicsOnBadHandler(t *testing.T) {
	suite := NewSuite()
	assert.Panics(t, func() {
		suite.AddStep("anything", func(a int) {})
	})
}

func TestSuiteTagFilterAppliesAcrossFeature(t *testing.T) {
	dir := t.TempDir()
	writeFeature(t, dir, "tags.feature", `
Feature: tags
  @keep
  Scenario: keep me
    Given a step

  Scenario: drop me
    Given a step
`)
	suite := NewSuite(WithFeaturesPath(filepath.Join(dir, "*.feature")), WithTags([]string{"keep"}))
	suite.AddStep("a step", func(s *gherkin.Step, w *World) {})

	result, err := suite.Run()
	require.NoError(t, err)
	require.Len(t, result.Features[0].Scenarios, 1)
	assert.Equal(t, "keep me", result.Features[0].Scenarios[0].Name)
}
