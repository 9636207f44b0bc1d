package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateExtractionPrompt_NoExistingTopics(t *testing.T) {
	prompt, err := generateExtractionPrompt("some response text", nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "e.g., 'Salvation', 'Faith', 'Creation'")
	assert.NotContains(t, prompt, "Existing topics:")
	assert.Contains(t, prompt, "some response text")
	assert.Contains(t, prompt, "default to 'NLT'")
	assert.Contains(t, prompt, "use 'General'")
}

func TestGenerateExtractionPrompt_WithExistingTopics(t *testing.T) {
	prompt, err := generateExtractionPrompt("some response text", []string{"Salvation", "Comfort"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Existing topics: [Salvation, Comfort]")
	assert.Contains(t, prompt, "MUST reuse the existing topic name exactly")
}

func TestGenerateSuggestionPrompt(t *testing.T) {
	prompt, err := generateSuggestionPrompt("some response text", SuggestionCount)
	require.NoError(t, err)

	assert.Contains(t, prompt, "provide 3 \"dig deeper\" suggestions")
	assert.Contains(t, prompt, "some response text")
}

func TestSystemPrompt_NotEmpty(t *testing.T) {
	assert.NotEmpty(t, SystemPrompt())
}
