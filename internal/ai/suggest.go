package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// SuggestionCount is the fixed number of follow-up suggestions requested per
// finished response
const SuggestionCount = 3

var suggestionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeString,
	},
}

// GenerateSuggestions asks the flash model for a short list of "dig deeper"
// follow-up questions for a finished response. Failures yield an empty result
// and an error for the caller to log; suggestions are always best-effort.
func (c *Client) GenerateSuggestions(ctx context.Context, text string) ([]string, error) {
	prompt, err := generateSuggestionPrompt(text, SuggestionCount)
	if err != nil {
		return nil, err
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.flashModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("suggestion call failed: %w", err)
	}

	suggestions, err := parseSuggestions(resp.Text())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("generated suggestions", zap.Int("count", len(suggestions)))
	return suggestions, nil
}

func parseSuggestions(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("malformed suggestion response: %w", err)
	}

	out := suggestions[:0]
	for _, s := range suggestions {
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
