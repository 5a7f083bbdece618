// Package conversations implements the client-resident store of chat
// threads: a map of conversations plus a pointer to the current one, with
// durable persistence after every mutation.
//
// Invariants kept by the store: the map is never empty, the current pointer
// always names an existing conversation, and messages within a conversation
// keep insertion order.
package conversations

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/essabriabdelghani/chatbot-gemini/internal/client/repositories/metadata"
	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
	"github.com/google/uuid"
)

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Greeting seeds every new conversation.
const Greeting = "Hello! I am your assistant. How can I help you?"

// storageKey is the durable-storage key holding the serialized store.
const storageKey = "conversations"

type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type Conversation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// snapshot is the persisted shape: the whole map plus the current id.
type snapshot struct {
	Conversations map[string]*Conversation `json:"conversations"`
	CurrentID     string                   `json:"current_id"`
}

// Store holds the in-memory conversation map, which is the source of truth;
// persistence is derived from it. Mutations signal a coalescing persister so
// durable storage always converges on the latest state (last-write-wins;
// intermediate snapshots may be skipped, never stale ones kept).
type Store struct {
	mu            sync.Mutex
	conversations map[string]*Conversation
	currentID     string

	repo  metadata.Repository
	dirty chan struct{}
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{
		conversations: make(map[string]*Conversation),
		repo:          repo,
		dirty:         make(chan struct{}, 1),
	}
}

// Load restores the store from durable storage. A missing, corrupt or
// invariant-violating blob falls back to a fresh single-conversation default;
// the returned error is informational, for logging only, and the store is
// always usable afterwards.
func (s *Store) Load(ctx context.Context) error {
	blob, err := s.repo.Get(ctx, storageKey)
	if err != nil {
		s.seedDefault()
		return err
	}
	if len(blob) == 0 {
		s.seedDefault()
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		s.seedDefault()
		return fmt.Errorf("%w: %v", common.ErrPersistenceCorrupt, err)
	}

	if !snap.valid() {
		s.seedDefault()
		return common.ErrPersistenceCorrupt
	}

	s.mu.Lock()
	s.conversations = snap.Conversations
	s.currentID = snap.CurrentID
	s.mu.Unlock()
	return nil
}

func (snap *snapshot) valid() bool {
	if len(snap.Conversations) == 0 {
		return false
	}
	for id, c := range snap.Conversations {
		if c == nil || c.ID != id {
			return false
		}
	}
	_, ok := snap.Conversations[snap.CurrentID]
	return ok
}

func (s *Store) seedDefault() {
	s.mu.Lock()
	s.conversations = make(map[string]*Conversation)
	s.currentID = ""
	s.mu.Unlock()
	s.New()
}

// New creates a conversation seeded with the greeting message and makes it
// current.
func (s *Store) New() *Conversation {
	s.mu.Lock()
	defer s.scheduleLocked()

	now := time.Now()
	c := &Conversation{
		ID:        uuid.NewString(),
		Name:      fmt.Sprintf("Chat %d", len(s.conversations)+1),
		CreatedAt: now,
		Messages: []Message{{
			ID:        uuid.NewString(),
			Text:      Greeting,
			Sender:    SenderAssistant,
			Timestamp: now,
		}},
	}

	s.conversations[c.ID] = c
	s.currentID = c.ID
	return c
}

// Switch makes the named conversation current.
func (s *Store) Switch(id string) error {
	s.mu.Lock()
	defer s.scheduleLocked()

	if _, ok := s.conversations[id]; !ok {
		return common.ErrorNotFound
	}
	s.currentID = id
	return nil
}

// Append adds a message to the named conversation. When the conversation was
// deleted in the meantime (a reply arriving after its thread is gone) the
// call is a silent no-op and ok is false.
func (s *Store) Append(id, sender, text string) (Message, bool) {
	s.mu.Lock()
	defer s.scheduleLocked()

	c, ok := s.conversations[id]
	if !ok {
		return Message{}, false
	}

	msg := Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	}
	c.Messages = append(c.Messages, msg)
	return msg, true
}

// Delete removes a conversation. The last remaining conversation can never
// be deleted. When the current conversation is deleted, the current pointer
// is repointed to the first remaining conversation in List order before the
// removal completes, so it never dangles.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.scheduleLocked()

	if _, ok := s.conversations[id]; !ok {
		return common.ErrorNotFound
	}
	if len(s.conversations) <= 1 {
		return common.ErrLastConversation
	}

	if s.currentID == id {
		for _, c := range s.sortedLocked() {
			if c.ID != id {
				s.currentID = c.ID
				break
			}
		}
	}

	delete(s.conversations, id)
	return nil
}

// Current returns the current conversation.
func (s *Store) Current() *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations[s.currentID]
}

// CurrentID returns the id of the current conversation.
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Get returns the named conversation, or nil.
func (s *Store) Get(id string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations[id]
}

// Len reports the number of conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// List returns the conversations ordered by creation time, ties broken by id.
func (s *Store) List() []*Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

func (s *Store) sortedLocked() []*Conversation {
	out := make([]*Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// scheduleLocked releases the mutex and signals the persister. The signal
// channel has capacity one: multiple mutations in quick succession collapse
// into a single persist of the latest state.
func (s *Store) scheduleLocked() {
	s.mu.Unlock()
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// Run drives the persister until ctx is cancelled, flushing once more on the
// way out so shutdown never loses the latest state.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = s.Flush(context.Background())
			return
		case <-s.dirty:
			_ = s.Flush(ctx)
		}
	}
}

// Flush writes the current snapshot to durable storage synchronously.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	snap := snapshot{Conversations: s.conversations, CurrentID: s.currentID}
	blob, err := json.Marshal(snap)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return s.repo.Set(ctx, storageKey, blob)
}
