package conversations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	m       map[string][]byte
	getErr  error
	setErr  error
	setHits int
}

func newFakeStore() *fakeStore { return &fakeStore{m: map[string][]byte{}} }

func (f *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.m[key], nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setHits++
	f.m[key] = value
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	delete(f.m, key)
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.m = map[string][]byte{}
	return nil
}

func newLoadedStore(t *testing.T) (*Store, *fakeStore) {
	t.Helper()
	repo := newFakeStore()
	s := NewStore(repo)
	require.NoError(t, s.Load(context.Background()))
	return s, repo
}

func TestLoad_MissingBlobSeedsDefault(t *testing.T) {
	s, _ := newLoadedStore(t)

	require.Equal(t, 1, s.Len())
	current := s.Current()
	require.NotNil(t, current)
	assert.Equal(t, "Chat 1", current.Name)
	require.Len(t, current.Messages, 1)
	assert.Equal(t, Greeting, current.Messages[0].Text)
	assert.Equal(t, SenderAssistant, current.Messages[0].Sender)
}

func TestLoad_CorruptBlobSeedsDefault(t *testing.T) {
	repo := newFakeStore()
	repo.m["conversations"] = []byte("{definitely not json")

	s := NewStore(repo)
	err := s.Load(context.Background())
	require.ErrorIs(t, err, common.ErrPersistenceCorrupt)

	// The store stays usable regardless.
	require.Equal(t, 1, s.Len())
	require.NotNil(t, s.Current())
}

func TestLoad_DanglingCurrentSeedsDefault(t *testing.T) {
	repo := newFakeStore()
	blob, err := json.Marshal(map[string]any{
		"conversations": map[string]any{
			"c1": map[string]any{"id": "c1", "name": "Chat 1"},
		},
		"current_id": "missing",
	})
	require.NoError(t, err)
	repo.m["conversations"] = blob

	s := NewStore(repo)
	require.ErrorIs(t, s.Load(context.Background()), common.ErrPersistenceCorrupt)
	require.Equal(t, 1, s.Len())
	assert.NotEqual(t, "missing", s.CurrentID())
}

func TestLoad_RepoErrorStillSeedsDefault(t *testing.T) {
	repo := newFakeStore()
	repo.getErr = errors.New("disk on fire")

	s := NewStore(repo)
	require.Error(t, s.Load(context.Background()))
	require.Equal(t, 1, s.Len())
}

func TestNew_MakesConversationCurrent(t *testing.T) {
	s, _ := newLoadedStore(t)

	first := s.Current()
	second := s.New()

	assert.Equal(t, second.ID, s.CurrentID())
	assert.Equal(t, "Chat 2", second.Name)
	assert.Equal(t, 2, s.Len())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSwitch(t *testing.T) {
	s, _ := newLoadedStore(t)

	first := s.Current()
	s.New()

	require.NoError(t, s.Switch(first.ID))
	assert.Equal(t, first.ID, s.CurrentID())

	assert.ErrorIs(t, s.Switch("missing"), common.ErrorNotFound)
}

func TestAppend_KeepsInsertionOrder(t *testing.T) {
	s, _ := newLoadedStore(t)
	id := s.CurrentID()

	_, ok := s.Append(id, SenderUser, "first")
	require.True(t, ok)
	_, ok = s.Append(id, SenderAssistant, "second")
	require.True(t, ok)

	msgs := s.Current().Messages
	require.Len(t, msgs, 3) // greeting + two appended
	assert.Equal(t, "first", msgs[1].Text)
	assert.Equal(t, "second", msgs[2].Text)
}

func TestAppend_DeletedConversationIsNoop(t *testing.T) {
	s, _ := newLoadedStore(t)

	doomed := s.New()
	require.NoError(t, s.Delete(doomed.ID))

	_, ok := s.Append(doomed.ID, SenderAssistant, "late reply")
	assert.False(t, ok, "append to a deleted conversation must be a silent no-op")
}

func TestDelete_LastConversationGuard(t *testing.T) {
	s, _ := newLoadedStore(t)
	id := s.CurrentID()

	s.Append(id, SenderUser, "one more")
	before := len(s.Current().Messages)

	err := s.Delete(id)
	assert.ErrorIs(t, err, common.ErrLastConversation)
	assert.Equal(t, 1, s.Len(), "guard must leave the map unchanged")
	assert.Len(t, s.Current().Messages, before, "guard must leave messages unchanged")
}

func TestDelete_CurrentRepointsBeforeRemoval(t *testing.T) {
	s, _ := newLoadedStore(t)

	first := s.Current()
	second := s.New()
	require.Equal(t, second.ID, s.CurrentID())

	require.NoError(t, s.Delete(second.ID))
	assert.Equal(t, first.ID, s.CurrentID(), "current must repoint to a remaining conversation")
	assert.Equal(t, 1, s.Len())
}

func TestDelete_NonCurrentKeepsCurrent(t *testing.T) {
	s, _ := newLoadedStore(t)

	first := s.Current()
	second := s.New()

	require.NoError(t, s.Delete(first.ID))
	assert.Equal(t, second.ID, s.CurrentID())
}

func TestDelete_Missing(t *testing.T) {
	s, _ := newLoadedStore(t)
	assert.ErrorIs(t, s.Delete("missing"), common.ErrorNotFound)
}

func TestList_SortedByCreation(t *testing.T) {
	s, _ := newLoadedStore(t)

	s.New()
	s.New()

	list := s.List()
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}
}

func TestPersistRoundTrip(t *testing.T) {
	s, repo := newLoadedStore(t)
	ctx := context.Background()

	id := s.CurrentID()
	s.Append(id, SenderUser, "hello")
	second := s.New()
	require.NoError(t, s.Flush(ctx))

	restored := NewStore(repo)
	require.NoError(t, restored.Load(ctx))

	assert.Equal(t, s.Len(), restored.Len())
	assert.Equal(t, second.ID, restored.CurrentID())
	require.NotNil(t, restored.Get(id))
	assert.Equal(t, "hello", restored.Get(id).Messages[1].Text)
}

func TestFlush_WritesLatestStateAfterBurst(t *testing.T) {
	s, repo := newLoadedStore(t)
	ctx := context.Background()

	// A burst of mutations inside one scheduling window.
	id := s.CurrentID()
	s.Append(id, SenderUser, "a")
	s.Append(id, SenderUser, "b")
	s.Append(id, SenderUser, "c")
	require.NoError(t, s.Flush(ctx))

	var snap snapshot
	require.NoError(t, json.Unmarshal(repo.m["conversations"], &snap))
	require.Len(t, snap.Conversations[id].Messages, 4, "persisted blob must reflect the latest state")
}

func TestScenario_GuardedDeleteKeepsMessages(t *testing.T) {
	s, _ := newLoadedStore(t)

	// One conversation with the greeting replaced by an explicit exchange.
	id := s.CurrentID()
	s.Append(id, SenderUser, "first message")

	require.ErrorIs(t, s.Delete(id), common.ErrLastConversation)
	assert.Len(t, s.Current().Messages, 2)
}
