// Package conversation owns the message log and the accumulated scripture
// references for a single assistant session.
package conversation

import (
	"sync"

	"github.com/google/uuid"
)

// Role identifies the author of a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation. Assistant turns grow in place
// while a response is streaming and are immutable once closed, except for the
// late attachment of suggestions by a background job.
type Turn struct {
	ID          uuid.UUID
	Role        Role
	Content     string
	Suggestions []string
	Open        bool
}

// Reference is a deduplicated scripture citation extracted from a response
type Reference struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
	Version   string `json:"version"`
	Topic     string `json:"topic"`
}

// ReferenceKey is the identity of a reference: two citations are the same
// entity iff locator and version match exactly
type ReferenceKey struct {
	Reference string
	Version   string
}

// Key returns the identity key of a reference
func (r Reference) Key() ReferenceKey {
	return ReferenceKey{Reference: r.Reference, Version: r.Version}
}

// Store is the single source of truth for the session: the ordered turn log
// plus the reference collection. It is safe for concurrent use; the streaming
// loop and the background enrichment jobs all write through it.
type Store struct {
	mu    sync.RWMutex
	turns []Turn
	refs  []Reference
	seen  map[ReferenceKey]struct{}

	updates chan struct{}
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		seen: map[ReferenceKey]struct{}{},
		// Coalescing: one pending notification is enough for a re-render
		updates: make(chan struct{}, 1),
	}
}

// Updates returns a coalescing notification channel that receives after every
// visible mutation. Readers re-read Turns/References on each notification.
func (s *Store) Updates() <-chan struct{} {
	return s.updates
}

func (s *Store) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// AppendUser appends a user turn. Any suggestions on the immediately
// preceding assistant turn are dropped; stale suggestions never survive past
// the next user turn.
func (s *Store) AppendUser(content string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.turns); n > 0 && s.turns[n-1].Role == RoleAssistant {
		s.turns[n-1].Suggestions = nil
	}

	t := Turn{ID: uuid.New(), Role: RoleUser, Content: content}
	s.turns = append(s.turns, t)
	s.notify()
	return t.ID
}

// AppendAssistant appends a complete (closed) assistant turn. Used for the
// welcome message and for synthetic error turns.
func (s *Store) AppendAssistant(content string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Turn{ID: uuid.New(), Role: RoleAssistant, Content: content}
	s.turns = append(s.turns, t)
	s.notify()
	return t.ID
}

// OpenAssistant appends an empty assistant turn in the open state so the UI
// has a target to render into before the first chunk arrives. At most one
// turn is open at a time and it is always the last turn in the log.
func (s *Store) OpenAssistant() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Turn{ID: uuid.New(), Role: RoleAssistant, Open: true}
	s.turns = append(s.turns, t)
	s.notify()
	return t.ID
}

// AppendChunk appends streamed text to the open assistant turn identified by
// id, preserving arrival order. Chunks for a turn that is no longer open are
// discarded.
func (s *Store) AppendChunk(id uuid.UUID, chunk string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.turns)
	if n == 0 || s.turns[n-1].ID != id || !s.turns[n-1].Open {
		return false
	}
	s.turns[n-1].Content += chunk
	s.notify()
	return true
}

// CloseAssistant marks the open assistant turn identified by id as complete
func (s *Store) CloseAssistant(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.turns {
		if s.turns[i].ID == id {
			s.turns[i].Open = false
			break
		}
	}
	s.notify()
}

// AttachSuggestions attaches follow-up suggestions to the assistant turn they
// were generated for. An empty set leaves the store untouched. The target may
// no longer be the latest turn by the time a slow job resolves; the
// suggestions still belong to that turn, not to whatever is newest.
func (s *Store) AttachSuggestions(id uuid.UUID, suggestions []string) bool {
	if len(suggestions) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.turns {
		if s.turns[i].ID == id && s.turns[i].Role == RoleAssistant {
			s.turns[i].Suggestions = suggestions
			s.notify()
			return true
		}
	}
	return false
}

// MergeReferences appends the incoming references whose identity key is not
// already present, preserving the incoming order. Duplicates are dropped
// whole; text and topic of an existing entry are never reconciled. Returns
// the number of references added; when nothing is added the store is left
// exactly as it was and no update is published.
func (s *Store) MergeReferences(refs []Reference) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, r := range refs {
		key := r.Key()
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.refs = append(s.refs, r)
		added++
	}
	if added > 0 {
		s.notify()
	}
	return added
}

// Turns returns a snapshot of the turn log
func (s *Store) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// LastTurn returns the most recent turn, if any
func (s *Store) LastTurn() (Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}

// References returns a snapshot of the accumulated reference collection in
// first-seen order
func (s *Store) References() []Reference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Reference, len(s.refs))
	copy(out, s.refs)
	return out
}

// Topics returns the distinct non-empty topic labels among the accumulated
// references, in first-seen order
func (s *Store) Topics() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	var topics []string
	for _, r := range s.refs {
		if r.Topic == "" {
			continue
		}
		if _, ok := seen[r.Topic]; ok {
			continue
		}
		seen[r.Topic] = struct{}{}
		topics = append(topics, r.Topic)
	}
	return topics
}
