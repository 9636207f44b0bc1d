package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlsheets/shepherd/internal/conversation"
)

func TestParseReferences_Valid(t *testing.T) {
	raw := `[
		{"reference": "John 3:16", "text": "For God so loved the world...", "version": "KJV", "topic": "Salvation"},
		{"reference": "Psalm 23:1", "text": "The Lord is my shepherd...", "version": "NLT", "topic": "Comfort"}
	]`

	refs, err := parseReferences(raw)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, conversation.Reference{
		Reference: "John 3:16",
		Text:      "For God so loved the world...",
		Version:   "KJV",
		Topic:     "Salvation",
	}, refs[0])
}

func TestParseReferences_AppliesFallbacks(t *testing.T) {
	raw := `[{"reference": "Genesis 1:1", "text": "In the beginning..."}]`

	refs, err := parseReferences(raw)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, FallbackVersion, refs[0].Version)
	assert.Equal(t, FallbackTopic, refs[0].Topic)
}

func TestParseReferences_DropsRecordsWithoutLocator(t *testing.T) {
	raw := `[
		{"text": "orphaned quote", "version": "KJV", "topic": "General"},
		{"reference": "Romans 8:28", "text": "And we know...", "version": "ESV", "topic": "Providence"}
	]`

	refs, err := parseReferences(raw)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Romans 8:28", refs[0].Reference)
}

func TestParseReferences_Empty(t *testing.T) {
	refs, err := parseReferences("")
	require.NoError(t, err)
	assert.Empty(t, refs)

	refs, err = parseReferences("[]")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestParseReferences_MalformedJSON(t *testing.T) {
	_, err := parseReferences(`{"not": "an array"}`)
	assert.Error(t, err)

	_, err = parseReferences(`[{"reference": "John 3:16"`)
	assert.Error(t, err)
}

func TestParseSuggestions_Valid(t *testing.T) {
	suggestions, err := parseSuggestions(`["What does grace mean?", "Read Romans 5.", "Who was Paul?"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"What does grace mean?", "Read Romans 5.", "Who was Paul?"}, suggestions)
}

func TestParseSuggestions_DropsEmptyStrings(t *testing.T) {
	suggestions, err := parseSuggestions(`["", "Read Romans 5."]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Read Romans 5."}, suggestions)
}

func TestParseSuggestions_MalformedJSON(t *testing.T) {
	_, err := parseSuggestions(`"just a string"`)
	assert.Error(t, err)
}
