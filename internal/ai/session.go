package ai

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

// Session is the single stateful chat context with the assistant persona.
// It is created once per process and reused for every send; the server side
// carries the conversational history.
type Session struct {
	chat *genai.Chat
}

// NewSession establishes a fresh chat session configured with the assistant's
// system instruction
func (c *Client) NewSession(ctx context.Context) (*Session, error) {
	chat, err := c.genai.Chats.Create(ctx, c.chatModel, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return &Session{chat: chat}, nil
}

// Send initiates one model turn and yields the response text in generation
// order, one fragment per model chunk. The sequence is finite, forward-only
// and non-restartable; an upstream failure surfaces as a non-nil error after
// whatever fragments were already delivered, and those fragments remain
// valid.
func (s *Session) Send(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range s.chat.SendMessageStream(ctx, genai.Part{Text: prompt}) {
			if err != nil {
				yield("", fmt.Errorf("failed to stream response: %w", err))
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}
