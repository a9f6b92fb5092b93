package model

import (
	"testing"

	"github.com/knights-analytics/hugot/pipelines"
	"github.com/stretchr/testify/assert"
)

func TestScoresFromOutputs(t *testing.T) {
	t.Run("reads both labels", func(t *testing.T) {
		outputs := []pipelines.ClassificationOutput{
			{Label: "TOXIC", Score: 0.91},
			{Label: "NOT_TOXIC", Score: 0.09},
		}

		scores, err := scoresFromOutputs(outputs)

		assert.NoError(t, err)
		assert.InDelta(t, 0.91, scores.Toxic, 1e-6)
		assert.InDelta(t, 0.09, scores.NotToxic, 1e-6)
	})

	t.Run("derives complement when only toxic label present", func(t *testing.T) {
		outputs := []pipelines.ClassificationOutput{
			{Label: "toxic", Score: 0.8},
		}

		scores, err := scoresFromOutputs(outputs)

		assert.NoError(t, err)
		assert.InDelta(t, 0.8, scores.Toxic, 1e-6)
		assert.InDelta(t, 0.2, scores.NotToxic, 1e-6)
	})

	t.Run("derives complement when only not-toxic label present", func(t *testing.T) {
		outputs := []pipelines.ClassificationOutput{
			{Label: "non-toxic", Score: 0.75},
		}

		scores, err := scoresFromOutputs(outputs)

		assert.NoError(t, err)
		assert.InDelta(t, 0.25, scores.Toxic, 1e-6)
		assert.InDelta(t, 0.75, scores.NotToxic, 1e-6)
	})

	t.Run("accepts generic LABEL_0/LABEL_1 names", func(t *testing.T) {
		outputs := []pipelines.ClassificationOutput{
			{Label: "LABEL_0", Score: 0.3},
			{Label: "LABEL_1", Score: 0.7},
		}

		scores, err := scoresFromOutputs(outputs)

		assert.NoError(t, err)
		assert.InDelta(t, 0.7, scores.Toxic, 1e-6)
		assert.InDelta(t, 0.3, scores.NotToxic, 1e-6)
	})

	t.Run("errors on unrecognized labels", func(t *testing.T) {
		outputs := []pipelines.ClassificationOutput{
			{Label: "POSITIVE", Score: 0.6},
			{Label: "NEGATIVE", Score: 0.4},
		}

		scores, err := scoresFromOutputs(outputs)

		assert.Error(t, err)
		assert.Nil(t, scores)
	})
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "NOT_TOXIC", normalizeLabel("not-toxic"))
	assert.Equal(t, "NOT_TOXIC", normalizeLabel(" Not Toxic "))
	assert.Equal(t, "TOXIC", normalizeLabel("toxic"))
	assert.Equal(t, "LABEL_1", normalizeLabel("label_1"))
}
