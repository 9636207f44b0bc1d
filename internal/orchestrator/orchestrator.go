// Package orchestrator drives one conversational round-trip at a time: user
// turn in, streamed assistant turn folded into the store, then best-effort
// background enrichment of the finished response.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dlsheets/shepherd/internal/conversation"
)

// ErrBusy is returned when a prompt is submitted while a send is already in
// flight. The store is left unchanged.
var ErrBusy = errors.New("a send is already in flight")

// State is the round-trip state. Submissions are accepted only in StateIdle.
type State int

const (
	StateIdle State = iota
	StateSending
	StateStreaming
)

// Session is the long-lived chat context with the generative backend
type Session interface {
	Send(ctx context.Context, prompt string) iter.Seq2[string, error]
}

// Extractor pulls structured scripture references out of finished response
// text
type Extractor interface {
	ExtractReferences(ctx context.Context, text string, topics []string) ([]conversation.Reference, error)
}

// Suggester produces follow-up suggestions for finished response text
type Suggester interface {
	GenerateSuggestions(ctx context.Context, text string) ([]string, error)
}

// Orchestrator owns the lifecycle of a round-trip. It accepts one submission
// at a time, folds the response stream into the conversation store in arrival
// order, and dispatches the two enrichment jobs once streaming completes.
// Enrichment never blocks the next submission.
type Orchestrator struct {
	store     *conversation.Store
	session   Session
	extractor Extractor
	suggester Suggester
	logger    *zap.Logger
	tracer    trace.Tracer

	mu    sync.Mutex
	state State

	jobs sync.WaitGroup
}

// New creates an orchestrator around the given collaborators
func New(store *conversation.Store, session Session, extractor Extractor, suggester Suggester, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		session:   session,
		extractor: extractor,
		suggester: suggester,
		logger:    logger,
		tracer:    otel.Tracer("github.com/dlsheets/shepherd/internal/orchestrator"),
	}
}

// State returns the current round-trip state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Submit drives one round-trip for the given prompt. It blocks until the
// response stream completes or fails; the enrichment jobs it dispatches keep
// running after it returns. Submitting while a send is in flight returns
// ErrBusy with no state change. A stream failure is recovered into a
// user-visible assistant turn and returned to the caller; partial content
// already folded into the store stays put.
func (o *Orchestrator) Submit(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil
	}

	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return ErrBusy
	}
	o.state = StateSending
	o.mu.Unlock()

	ctx, span := o.tracer.Start(ctx, "round_trip",
		trace.WithAttributes(attribute.Int("prompt_chars", len(prompt))))
	defer span.End()

	o.store.AppendUser(prompt)

	// Open the assistant turn before the first chunk arrives so readers have
	// a target to render into
	turnID := o.store.OpenAssistant()
	o.setState(StateStreaming)

	var full strings.Builder
	chunks := 0
	for chunk, err := range o.session.Send(ctx, prompt) {
		if err != nil {
			o.store.CloseAssistant(turnID)
			o.store.AppendAssistant(fmt.Sprintf("Sorry, I encountered an error: %v", err))
			o.setState(StateIdle)
			span.RecordError(err)
			o.logger.Error("round-trip failed", zap.Error(err))
			return err
		}
		full.WriteString(chunk)
		o.store.AppendChunk(turnID, chunk)
		chunks++
	}
	o.store.CloseAssistant(turnID)
	span.SetAttributes(attribute.Int("chunks", chunks), attribute.Int("response_chars", full.Len()))

	// The round-trip is finished as far as the next submission is concerned;
	// enrichment must not hold the state machine
	o.setState(StateIdle)

	if text := full.String(); text != "" {
		// Each job gets an immutable snapshot of the text and its own target
		// turn id, decoupling it from whatever the store looks like when it
		// resolves. Jobs outlive the caller's context on purpose: a new
		// submission never cancels in-flight enrichment.
		jobCtx := context.WithoutCancel(ctx)
		topics := o.store.Topics()
		o.jobs.Add(2)
		go o.extractReferences(jobCtx, text, topics)
		go o.generateSuggestions(jobCtx, turnID, text)
	}

	return nil
}

// extractReferences runs the reference-extraction job and merges the result.
// Failure is logged and swallowed; the store is left exactly as it was.
func (o *Orchestrator) extractReferences(ctx context.Context, text string, topics []string) {
	defer o.jobs.Done()

	ctx, span := o.tracer.Start(ctx, "extract_references")
	defer span.End()

	refs, err := o.extractor.ExtractReferences(ctx, text, topics)
	if err != nil {
		span.RecordError(err)
		o.logger.Warn("reference extraction failed", zap.Error(err))
		return
	}

	if added := o.store.MergeReferences(refs); added > 0 {
		o.logger.Debug("merged extracted references",
			zap.Int("extracted", len(refs)), zap.Int("added", added))
	}
}

// generateSuggestions runs the suggestion job and attaches the result to the
// turn it analyzed. Failure is logged and swallowed.
func (o *Orchestrator) generateSuggestions(ctx context.Context, turnID uuid.UUID, text string) {
	defer o.jobs.Done()

	ctx, span := o.tracer.Start(ctx, "generate_suggestions")
	defer span.End()

	suggestions, err := o.suggester.GenerateSuggestions(ctx, text)
	if err != nil {
		span.RecordError(err)
		o.logger.Warn("suggestion generation failed", zap.Error(err))
		return
	}

	if o.store.AttachSuggestions(turnID, suggestions) {
		o.logger.Debug("attached suggestions", zap.Int("count", len(suggestions)))
	}
}

// WaitForEnrichment blocks until all dispatched enrichment jobs have
// resolved. Used by one-shot mode and tests; the interactive flow never
// waits.
func (o *Orchestrator) WaitForEnrichment() {
	o.jobs.Wait()
}
