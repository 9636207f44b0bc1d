// Package config provides configuration management for the shepherd assistant.
package config

import (
	"fmt"
	"os"
)

// Default model selections. The chat model carries the conversation; the flash
// model handles the cheap structured calls (verse extraction, suggestions).
const (
	DefaultChatModel  = "gemini-2.5-pro"
	DefaultFlashModel = "gemini-2.5-flash"
)

// Config holds the configuration for the assistant
type Config struct {
	GeminiAPIKey string
	ChatModel    string
	FlashModel   string
	OTLPEndpoint string
	LogFile      string
}

// Load loads configuration from environment variables
func Load() Config {
	config := Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ChatModel:    os.Getenv("SHEPHERD_CHAT_MODEL"),
		FlashModel:   os.Getenv("SHEPHERD_FLASH_MODEL"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogFile:      os.Getenv("SHEPHERD_LOG_FILE"),
	}

	// API_KEY is accepted as a legacy alias
	if config.GeminiAPIKey == "" {
		config.GeminiAPIKey = os.Getenv("API_KEY")
	}

	if config.ChatModel == "" {
		config.ChatModel = DefaultChatModel
	}
	if config.FlashModel == "" {
		config.FlashModel = DefaultFlashModel
	}

	return config
}

// Validate checks if the required configuration is present
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("missing required environment variable: GEMINI_API_KEY")
	}
	return nil
}
