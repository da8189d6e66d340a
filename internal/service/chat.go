package service

import (
	"context"
	"fmt"

	"github.com/cipherchat/cipherchat/internal/adapter"
	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/stream"
	"github.com/cipherchat/cipherchat/internal/validators"
	"github.com/cipherchat/cipherchat/models"
)

type chatService struct {
	backend      adapter.BackendClient
	codec        *crypto.Codec
	defaultModel string
	log          *logger.Logger
}

// NewChatService constructs a [ChatService] streaming through backend.
func NewChatService(backend adapter.BackendClient, codec *crypto.Codec, defaultModel string, log *logger.Logger) ChatService {
	return &chatService{backend: backend, codec: codec, defaultModel: defaultModel, log: log}
}

func (s *chatService) Send(ctx context.Context, conversationID, message string, opts ChatOptions, cb stream.Callbacks) (stream.Result, error) {
	if err := validators.ValidateChatMessage(message); err != nil {
		return stream.Result{}, err
	}

	model := opts.Model
	if model == "" {
		model = s.defaultModel
	}
	req := models.ChatRequest{
		Message:      message,
		EnableSearch: opts.EnableSearch,
		Model:        model,
	}

	body, err := s.backend.OpenChatStream(ctx, req, conversationID)
	if err != nil {
		return stream.Result{}, fmt.Errorf("open chat stream: %w", err)
	}

	// Each stream gets its own coordinator: the state machine and the
	// accumulation buffer are per-turn, never shared across streams.
	coordinator := stream.NewCoordinator(s.codec, s.log)
	result, err := coordinator.Run(ctx, body, cb)
	if err != nil {
		return stream.Result{}, err
	}

	s.log.Debug().
		Str("conversation_id", result.Final.ConversationID).
		Bool("grounded", result.Final.Grounded).
		Int("chars", len(result.Text)).
		Msg("chat turn completed")
	return result, nil
}

func (s *chatService) Models(ctx context.Context) ([]models.ModelInfo, error) {
	catalog, err := s.backend.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return catalog, nil
}
