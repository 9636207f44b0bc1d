package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/dlsheets/shepherd/internal/conversation"
)

// Values substituted when the model leaves an expected field unstated
const (
	FallbackVersion = "NLT"
	FallbackTopic   = "General"
)

var referenceSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"reference": {
				Type:        genai.TypeString,
				Description: "The book, chapter, and verse reference (e.g., John 3:16).",
			},
			"text": {
				Type:        genai.TypeString,
				Description: "The full, verbatim text of the scripture.",
			},
			"version": {
				Type:        genai.TypeString,
				Description: "The Bible version abbreviation (e.g., NLT, KJV, ESV).",
			},
			"topic": {
				Type:        genai.TypeString,
				Description: "A brief, one or two-word topic for the verse (e.g., 'Salvation', 'Faith').",
			},
		},
		Required: []string{"reference", "text", "version", "topic"},
	},
}

// ExtractReferences asks the flash model for every scripture reference
// mentioned in a finished response. topics is the set of labels already in
// use; the prompt tells the model to reuse them verbatim where a verse fits,
// keeping topic proliferation down. The returned records are in the model's
// order. Any failure yields an empty result and an error for the caller to
// log; extraction is always best-effort.
func (c *Client) ExtractReferences(ctx context.Context, text string, topics []string) ([]conversation.Reference, error) {
	prompt, err := generateExtractionPrompt(text, topics)
	if err != nil {
		return nil, err
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.flashModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   referenceSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	refs, err := parseReferences(resp.Text())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("extracted references", zap.Int("count", len(refs)))
	return refs, nil
}

// parseReferences decodes the model's JSON output and applies the fallback
// version and topic to unstated fields
func parseReferences(raw string) ([]conversation.Reference, error) {
	if raw == "" {
		return nil, nil
	}

	var refs []conversation.Reference
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		return nil, fmt.Errorf("malformed extraction response: %w", err)
	}

	out := refs[:0]
	for _, r := range refs {
		if r.Reference == "" {
			// A record without a locator has no identity; drop it
			continue
		}
		if r.Version == "" {
			r.Version = FallbackVersion
		}
		if r.Topic == "" {
			r.Topic = FallbackTopic
		}
		out = append(out, r)
	}
	return out, nil
}
