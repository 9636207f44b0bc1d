package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(reference, version, topic string) Reference {
	return Reference{Reference: reference, Version: version, Text: "text of " + reference, Topic: topic}
}

func TestAppendChunk_PreservesArrivalOrder(t *testing.T) {
	store := NewStore()
	id := store.OpenAssistant()

	chunks := []string{"<p>For", " God so loved...", "</p>"}
	for _, c := range chunks {
		require.True(t, store.AppendChunk(id, c))
	}
	store.CloseAssistant(id)

	turns := store.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "<p>For God so loved...</p>", turns[0].Content)
	assert.False(t, turns[0].Open)
}

func TestAppendChunk_SingleCharacterChunks(t *testing.T) {
	store := NewStore()
	id := store.OpenAssistant()

	for _, c := range "Peace be with you" {
		require.True(t, store.AppendChunk(id, string(c)))
	}

	turns := store.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "Peace be with you", turns[0].Content)
}

func TestAppendChunk_ClosedTurnDiscards(t *testing.T) {
	store := NewStore()
	id := store.OpenAssistant()
	require.True(t, store.AppendChunk(id, "hello"))
	store.CloseAssistant(id)

	assert.False(t, store.AppendChunk(id, " world"))

	turns := store.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "hello", turns[0].Content)
}

func TestAppendUser_ClearsPrecedingSuggestions(t *testing.T) {
	store := NewStore()
	id := store.AppendAssistant("an answer")
	require.True(t, store.AttachSuggestions(id, []string{"a", "b", "c"}))

	store.AppendUser("next question")

	turns := store.Turns()
	require.Len(t, turns, 2)
	assert.Nil(t, turns[0].Suggestions)
}

func TestAttachSuggestions_EmptyIsNoOp(t *testing.T) {
	store := NewStore()
	id := store.AppendAssistant("an answer")

	assert.False(t, store.AttachSuggestions(id, nil))

	turns := store.Turns()
	assert.Nil(t, turns[0].Suggestions)
}

func TestAttachSuggestions_TargetsOriginalTurn(t *testing.T) {
	store := NewStore()
	first := store.AppendAssistant("first answer")
	store.AppendUser("another question")
	store.AppendAssistant("second answer")

	// A slow suggestion job from the first round-trip resolves late; it must
	// land on the turn it analyzed, not on the newest assistant turn
	require.True(t, store.AttachSuggestions(first, []string{"dig deeper"}))

	turns := store.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, []string{"dig deeper"}, turns[0].Suggestions)
	assert.Nil(t, turns[2].Suggestions)
}

func TestMergeReferences_DeduplicatesByIdentityKey(t *testing.T) {
	store := NewStore()

	added := store.MergeReferences([]Reference{ref("John 3:16", "KJV", "Salvation")})
	assert.Equal(t, 1, added)

	// Same locator and version, different text and topic: dropped whole
	dup := Reference{Reference: "John 3:16", Version: "KJV", Text: "different text", Topic: "Love"}
	added = store.MergeReferences([]Reference{dup})
	assert.Equal(t, 0, added)

	refs := store.References()
	require.Len(t, refs, 1)
	assert.Equal(t, "Salvation", refs[0].Topic)
	assert.Equal(t, "text of John 3:16", refs[0].Text)
}

func TestMergeReferences_DifferentVersionIsDistinct(t *testing.T) {
	store := NewStore()

	store.MergeReferences([]Reference{ref("John 3:16", "KJV", "Salvation")})
	added := store.MergeReferences([]Reference{ref("John 3:16", "NLT", "Salvation")})
	assert.Equal(t, 1, added)

	assert.Len(t, store.References(), 2)
}

func TestMergeReferences_PreservesFirstSeenOrder(t *testing.T) {
	store := NewStore()

	store.MergeReferences([]Reference{
		ref("Psalm 23:1", "NLT", "Comfort"),
		ref("John 3:16", "KJV", "Salvation"),
	})
	store.MergeReferences([]Reference{
		ref("John 3:16", "KJV", "Comfort"),
		ref("Romans 8:28", "ESV", "Comfort"),
	})

	refs := store.References()
	require.Len(t, refs, 3)
	assert.Equal(t, "Psalm 23:1", refs[0].Reference)
	assert.Equal(t, "John 3:16", refs[1].Reference)
	assert.Equal(t, "Salvation", refs[1].Topic)
	assert.Equal(t, "Romans 8:28", refs[2].Reference)
}

func TestMergeReferences_NoAdditionsNoUpdate(t *testing.T) {
	store := NewStore()
	store.MergeReferences([]Reference{ref("John 3:16", "KJV", "Salvation")})

	// Drain the pending notification
	select {
	case <-store.Updates():
	default:
	}

	added := store.MergeReferences([]Reference{ref("John 3:16", "KJV", "Salvation")})
	assert.Equal(t, 0, added)

	select {
	case <-store.Updates():
		t.Fatal("expected no update notification for an empty merge")
	default:
	}
}

func TestTopics_DistinctFirstSeenOrder(t *testing.T) {
	store := NewStore()
	store.MergeReferences([]Reference{
		ref("Psalm 23:1", "NLT", "Comfort"),
		ref("John 3:16", "KJV", "Salvation"),
		ref("Romans 8:28", "ESV", "Comfort"),
		{Reference: "Genesis 1:1", Version: "NLT", Text: "In the beginning"},
	})

	assert.Equal(t, []string{"Comfort", "Salvation"}, store.Topics())
}
