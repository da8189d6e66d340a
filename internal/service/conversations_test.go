package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cipherchat/cipherchat/internal/adapter"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/mock"
	"github.com/cipherchat/cipherchat/internal/validators"
	"github.com/cipherchat/cipherchat/models"
)

func TestConversationService_ListForwardsQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mock.NewMockBackendClient(ctrl)
	svc := NewConversationService(backend, logger.Nop())

	starred := true
	backend.EXPECT().
		ListConversations(gomock.Any(), adapter.ConversationQuery{Limit: 10, Offset: 20, Starred: &starred}).
		Return(models.ConversationList{Total: 1}, nil)

	list, err := svc.List(context.Background(), 10, 20, &starred)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestConversationService_RenameValidatesTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No backend expectation: invalid titles are rejected locally.
	backend := mock.NewMockBackendClient(ctrl)
	svc := NewConversationService(backend, logger.Nop())

	assert.ErrorIs(t, svc.Rename(context.Background(), "c1", ""), validators.ErrTitleEmpty)
	assert.ErrorIs(t, svc.Rename(context.Background(), "c1", strings.Repeat("t", 101)), validators.ErrTitleTooLong)
}

func TestConversationService_BackendErrorsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mock.NewMockBackendClient(ctrl)
	svc := NewConversationService(backend, logger.Nop())
	ctx := context.Background()

	backend.EXPECT().GetConversation(ctx, "c1").Return(models.Conversation{}, adapter.ErrNotFound)
	_, err := svc.Get(ctx, "c1")
	assert.ErrorIs(t, err, adapter.ErrNotFound)

	boom := errors.New("network down")
	backend.EXPECT().DeleteConversation(ctx, "c1").Return(boom)
	assert.ErrorIs(t, svc.Delete(ctx, "c1"), boom)

	backend.EXPECT().StarConversation(ctx, "c1", true).Return(nil)
	assert.NoError(t, svc.Star(ctx, "c1", true))
}

func TestConversationService_DeleteNonStarred(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mock.NewMockBackendClient(ctrl)
	svc := NewConversationService(backend, logger.Nop())
	ctx := context.Background()

	backend.EXPECT().DeleteNonStarredConversations(ctx).Return(4, nil)
	deleted, err := svc.DeleteNonStarred(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)

	boom := errors.New("backend down")
	backend.EXPECT().DeleteNonStarredConversations(ctx).Return(0, boom)
	_, err = svc.DeleteNonStarred(ctx)
	assert.ErrorIs(t, err, boom)
}
