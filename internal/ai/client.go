// Package ai wraps the Gemini backend: the long-lived chat session for the
// primary conversation and the structured flash-model calls that enrich
// finished responses.
package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/dlsheets/shepherd/internal/config"
)

// Client holds the Gemini API client and the model selections
type Client struct {
	genai      *genai.Client
	chatModel  string
	flashModel string
	logger     *zap.Logger
}

// NewClient creates a Gemini client from configuration. A missing credential
// is an unrecoverable initialization error; nothing downstream is usable
// without it.
func NewClient(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		genai:      client,
		chatModel:  cfg.ChatModel,
		flashModel: cfg.FlashModel,
		logger:     logger,
	}, nil
}
