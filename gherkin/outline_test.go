package gherkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolvedStepsExpandOutline(t *testing.T) {
	const text = `
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
      | 0       | 40      | add    | 40     |
`
	feature, err := ParseFeature(text, "calc.feature")
	require.NoError(t, err)
	sc := feature.Scenarios[0]

	solved := sc.SolvedSteps()
	require.Len(t, solved, 12)
	assert.Equal(t, "Given I have entered 20 into the calculator", solved[0].Sentence)
	assert.Equal(t, "Then the result should be 40 on the screen", solved[11].Sentence)

	for _, step := range solved {
		assert.Same(t, sc, step.Scenario)
	}
}

func TestSolvedStepsIsIdentityForNonOutlineScenario(t *testing.T) {
	const text = `
Feature: Plain
  Scenario: Plain scenario
    Given a thing happens
    Then it is observed
`
	feature, err := ParseFeature(text, "plain.feature")
	require.NoError(t, err)
	sc := feature.Scenarios[0]

	solved := sc.SolvedSteps()
	require.Len(t, solved, len(sc.Steps))
	for i := range sc.Steps {
		assert.Equal(t, sc.Steps[i].Sentence, solved[i].Sentence)
	}
}

func TestOutlineSubstitutionAppliesToStepTables(t *testing.T) {
	const text = `
Feature: Config
  Scenario Outline: Bad configuration should fail
    Given I provide the following configuration:
       | Parameter | Value |
       |     a     |  <a>  |
       |     b     |  <b>  |
    When I run the program
    Then it should fail hard-core

  Examples:
    | a | b |
    | 1 | 2 |
    | 2 | 4 |
`
	feature, err := ParseFeature(text, "config.feature")
	require.NoError(t, err)
	sc := feature.Scenarios[0]
	solved := sc.SolvedSteps()

	require.NotNil(t, solved[0].Table)
	assert.Equal(t, []map[string]string{
		{"Parameter": "a", "Value": "1"},
		{"Parameter": "b", "Value": "2"},
	}, solved[0].Table.Rows)

	require.NotNil(t, solved[3].Table)
	assert.Equal(t, []map[string]string{
		{"Parameter": "a", "Value": "2"},
		{"Parameter": "b", "Value": "4"},
	}, solved[3].Table.Rows)
}

func TestOutlineSubstitutionAppliesToMultilineBody(t *testing.T) {
	const text = `
Feature: HTML
  Scenario Outline: Parsing HTML
    When I parse the HTML:
        """
        <div><v></div>
        """

  Examples:
    | v             |
    | outline value |
`
	feature, err := ParseFeature(text, "html.feature")
	require.NoError(t, err)
	sc := feature.Scenarios[0]
	solved := sc.SolvedSteps()

	require.True(t, solved[0].HasMultiline)
	assert.Equal(t, "<div>outline value</div>", solved[0].Multiline)
}

func TestEvaluatedPairsRowsWithSteps(t *testing.T) {
	const text = `
Feature: Calculator
  Scenario Outline: Add two numbers
    Given I have entered <input_1> into the calculator
    When I press <button>
    Then the result should be <output> on the screen

    Examples:
      | input_1 | button | output |
      | 20      | add    | 50     |
      | 2       | add    | 7      |
`
	feature, err := ParseFeature(text, "calc.feature")
	require.NoError(t, err)
	sc := feature.Scenarios[0]

	evaluated := sc.Evaluated()
	require.Len(t, evaluated, 2)
	assert.Equal(t, "20", evaluated[0].Row["input_1"])
	assert.Equal(t, "Given I have entered 20 into the calculator", evaluated[0].Steps[0].Sentence)
	assert.Equal(t, "2", evaluated[1].Row["input_1"])
}

func TestUnknownPlaceholderIsLeftLiteral(t *testing.T) {
	const text = `
Feature: Unknown placeholder
  Scenario Outline: Unknown
    Given a value of <known> and <unknown>

    Examples:
      | known |
      | 7     |
`
	feature, err := ParseFeature(text, "unknown.feature")
	require.NoError(t, err)
	solved := feature.Scenarios[0].SolvedSteps()
	assert.Equal(t, "Given a value of 7 and <unknown>", solved[0].Sentence)
}
