package ai

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed system_prompt.md
var systemPrompt string

//go:embed extraction_prompt.tmpl
var extractionPromptTemplate string

//go:embed suggestion_prompt.tmpl
var suggestionPromptTemplate string

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// SystemPrompt returns the assistant persona instruction used by the chat
// session
func SystemPrompt() string {
	return systemPrompt
}

type extractionPromptData struct {
	Text   string
	Topics []string
}

type suggestionPromptData struct {
	Text  string
	Count int
}

// generateExtractionPrompt builds the verse-extraction prompt for a finished
// response, biased towards reusing the topic labels already in play
func generateExtractionPrompt(text string, topics []string) (string, error) {
	return executeTemplate("extraction", extractionPromptTemplate, extractionPromptData{
		Text:   text,
		Topics: topics,
	})
}

// generateSuggestionPrompt builds the follow-up-suggestion prompt for a
// finished response
func generateSuggestionPrompt(text string, count int) (string, error) {
	return executeTemplate("suggestion", suggestionPromptTemplate, suggestionPromptData{
		Text:  text,
		Count: count,
	})
}

func executeTemplate(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s prompt template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s prompt template: %w", name, err)
	}
	return buf.String(), nil
}
