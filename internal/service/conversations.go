package service

import (
	"context"
	"fmt"

	"github.com/cipherchat/cipherchat/internal/adapter"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/validators"
	"github.com/cipherchat/cipherchat/models"
)

type conversationService struct {
	backend adapter.BackendClient
	log     *logger.Logger
}

// NewConversationService constructs a [ConversationService] over backend.
func NewConversationService(backend adapter.BackendClient, log *logger.Logger) ConversationService {
	return &conversationService{backend: backend, log: log}
}

func (s *conversationService) List(ctx context.Context, limit, offset int, starred *bool) (models.ConversationList, error) {
	list, err := s.backend.ListConversations(ctx, adapter.ConversationQuery{
		Limit:   limit,
		Offset:  offset,
		Starred: starred,
	})
	if err != nil {
		return models.ConversationList{}, fmt.Errorf("list conversations: %w", err)
	}
	return list, nil
}

func (s *conversationService) Get(ctx context.Context, id string) (models.Conversation, error) {
	conv, err := s.backend.GetConversation(ctx, id)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}

func (s *conversationService) Rename(ctx context.Context, id, title string) error {
	if err := validators.ValidateConversationTitle(title); err != nil {
		return err
	}
	if err := s.backend.RenameConversation(ctx, id, title); err != nil {
		return fmt.Errorf("rename conversation: %w", err)
	}
	return nil
}

func (s *conversationService) Star(ctx context.Context, id string, starred bool) error {
	if err := s.backend.StarConversation(ctx, id, starred); err != nil {
		return fmt.Errorf("star conversation: %w", err)
	}
	return nil
}

func (s *conversationService) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteConversation(ctx, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}

func (s *conversationService) DeleteNonStarred(ctx context.Context) (int, error) {
	deleted, err := s.backend.DeleteNonStarredConversations(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete non-starred conversations: %w", err)
	}
	s.log.Info().Int("deleted", deleted).Msg("non-starred conversations deleted")
	return deleted, nil
}
