package store

import (
	"sort"
	"sync"
	"time"

	"github.com/cipherchat/cipherchat/models"
)

// ConversationStore is the conversation repository used by the development
// server. Production deployments keep conversations in the backend's own
// datastore; this interface only exists so the reference server can serve
// the conversation endpoints end to end.
type ConversationStore interface {
	// Create inserts a new conversation.
	Create(conv models.Conversation)

	// Get returns the conversation with the given ID.
	Get(id string) (models.Conversation, bool)

	// List returns up to limit summaries ordered by last update, newest
	// first, skipping offset entries. starred filters by star state when
	// non-nil. hasMore reports whether the page was full.
	List(limit, offset int, starred *bool) (items []models.ConversationSummary, hasMore bool)

	// Rename sets the conversation title.
	Rename(id, title string) bool

	// SetStarred sets the star flag.
	SetStarred(id string, starred bool) bool

	// Delete removes the conversation.
	Delete(id string) bool

	// DeleteNonStarred removes every conversation that is not starred
	// and returns the number removed.
	DeleteNonStarred() int

	// AppendMessages appends messages and bumps the last-updated stamp.
	AppendMessages(id string, msgs ...models.Message) bool
}

type memoryConversationStore struct {
	mu    sync.RWMutex
	items map[string]models.Conversation
}

// NewMemoryConversationStore returns an empty in-memory [ConversationStore].
func NewMemoryConversationStore() ConversationStore {
	return &memoryConversationStore{items: make(map[string]models.Conversation)}
}

func (s *memoryConversationStore) Create(conv models.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[conv.ConversationID] = conv
}

func (s *memoryConversationStore) Get(id string) (models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.items[id]
	return conv, ok
}

func (s *memoryConversationStore) List(limit, offset int, starred *bool) ([]models.ConversationSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Conversation, 0, len(s.items))
	for _, conv := range s.items {
		if starred != nil && conv.Starred != *starred {
			continue
		}
		all = append(all, conv)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].LastUpdated.After(all[j].LastUpdated)
	})

	if offset >= len(all) {
		return nil, false
	}
	all = all[offset:]

	page := all
	if limit > 0 && len(page) > limit {
		page = page[:limit]
	}

	items := make([]models.ConversationSummary, 0, len(page))
	for _, conv := range page {
		items = append(items, summarize(conv))
	}
	return items, limit > 0 && len(all) > limit
}

func (s *memoryConversationStore) Rename(id, title string) bool {
	return s.update(id, func(conv *models.Conversation) {
		conv.Title = title
	})
}

func (s *memoryConversationStore) SetStarred(id string, starred bool) bool {
	return s.update(id, func(conv *models.Conversation) {
		conv.Starred = starred
	})
}

func (s *memoryConversationStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *memoryConversationStore) DeleteNonStarred() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, conv := range s.items {
		if !conv.Starred {
			delete(s.items, id)
			deleted++
		}
	}
	return deleted
}

func (s *memoryConversationStore) AppendMessages(id string, msgs ...models.Message) bool {
	return s.update(id, func(conv *models.Conversation) {
		conv.Messages = append(conv.Messages, msgs...)
		conv.LastUpdated = time.Now().UTC()
	})
}

func (s *memoryConversationStore) update(id string, apply func(*models.Conversation)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.items[id]
	if !ok {
		return false
	}
	apply(&conv)
	s.items[id] = conv
	return true
}

func summarize(conv models.Conversation) models.ConversationSummary {
	summary := models.ConversationSummary{
		ConversationID: conv.ConversationID,
		Title:          conv.Title,
		CreatedAt:      conv.CreatedAt,
		LastUpdated:    conv.LastUpdated,
		Starred:        conv.Starred,
		MessageCount:   len(conv.Messages),
	}
	if len(conv.Messages) > 0 {
		preview := conv.Messages[len(conv.Messages)-1].Content
		// Truncate on a rune boundary so the preview stays valid UTF-8.
		if runes := []rune(preview); len(runes) > 120 {
			preview = string(runes[:120])
		}
		summary.Preview = preview
	}
	return summary
}
