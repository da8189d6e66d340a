package service

import (
	"github.com/cipherchat/cipherchat/internal/adapter"
	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
)

// ClientServices aggregates the client-side services behind one
// constructor so the entrypoint wires dependencies in a single place.
type ClientServices struct {
	Keys          KeyService
	Chat          ChatService
	Conversations ConversationService
}

// NewClientServices wires the client services over the shared keyring,
// codec, and backend client.
func NewClientServices(keys *crypto.Keyring, codec *crypto.Codec, backend adapter.BackendClient, defaultModel string, log *logger.Logger) *ClientServices {
	return &ClientServices{
		Keys:          NewKeyService(keys, codec, log),
		Chat:          NewChatService(backend, codec, defaultModel, log),
		Conversations: NewConversationService(backend, log),
	}
}
