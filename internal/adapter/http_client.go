// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cipherchat/cipherchat/internal/config"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/models"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

type httpBackendClient struct {
	client *resty.Client

	// streamClient carries no client-level timeout: it would cut the SSE
	// body mid-stream. Chat streams are bounded by their context.
	streamClient *resty.Client

	transport *Transport
	log       *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPBackendClient constructs a [BackendClient] speaking HTTP to the
// backend at cfg.HTTPAddress. The configured request timeout applies to
// non-streaming calls only; chat streams are bounded by their context.
func NewHTTPBackendClient(cfg config.ClientAdapter, transport *Transport, log *logger.Logger) (BackendClient, error) {
	if cfg.HTTPAddress == "" {
		return nil, config.ErrNoAdapterAddress
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(cfg.HTTPAddress, "/")
	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	streamCli := resty.New().
		SetBaseURL(baseURL)

	h := &httpBackendClient{client: cli, streamClient: streamCli, transport: transport, log: log}
	h.SetToken(cfg.AuthToken)
	return h, nil
}

func (h *httpBackendClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpBackendClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpBackendClient) TokenValid() bool {
	token := h.Token()
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

func (h *httpBackendClient) ListConversations(ctx context.Context, q ConversationQuery) (models.ConversationList, error) {
	req := h.authedRequest(ctx)
	if q.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(q.Offset))
	}
	if q.Starred != nil {
		req.SetQueryParam("starred", strconv.FormatBool(*q.Starred))
	}

	resp, err := req.Get("/api/conversations/")
	if err != nil {
		return models.ConversationList{}, fmt.Errorf("list conversations request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ConversationList{}, err
	}

	var list models.ConversationList
	if err = h.transport.UnwrapResponse(resp.Body(), &list); err != nil {
		return models.ConversationList{}, fmt.Errorf("list conversations: %w", err)
	}
	return list, nil
}

func (h *httpBackendClient) GetConversation(ctx context.Context, id string) (models.Conversation, error) {
	resp, err := h.authedRequest(ctx).Get("/api/conversations/" + id)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("get conversation request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Conversation{}, err
	}

	var conv models.Conversation
	if err = h.transport.UnwrapResponse(resp.Body(), &conv); err != nil {
		return models.Conversation{}, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}

func (h *httpBackendClient) RenameConversation(ctx context.Context, id, title string) error {
	body, err := h.transport.WrapRequest(models.RenameRequest{Title: title})
	if err != nil {
		return fmt.Errorf("rename conversation: %w", err)
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Patch("/api/conversations/" + id + "/title")
	if err != nil {
		return fmt.Errorf("rename conversation request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpBackendClient) StarConversation(ctx context.Context, id string, starred bool) error {
	body, err := h.transport.WrapRequest(models.StarRequest{Starred: starred})
	if err != nil {
		return fmt.Errorf("star conversation: %w", err)
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/api/conversations/" + id + "/star")
	if err != nil {
		return fmt.Errorf("star conversation request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpBackendClient) DeleteConversation(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/conversations/" + id)
	if err != nil {
		return fmt.Errorf("delete conversation request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpBackendClient) DeleteNonStarredConversations(ctx context.Context) (int, error) {
	resp, err := h.authedRequest(ctx).Delete("/api/conversations/nonstarred")
	if err != nil {
		return 0, fmt.Errorf("bulk delete conversations request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	var ack models.APIResponse
	if err = h.transport.UnwrapResponse(resp.Body(), &ack); err != nil {
		return 0, fmt.Errorf("bulk delete conversations: %w", err)
	}
	return ack.DeletedCount, nil
}

func (h *httpBackendClient) ListModels(ctx context.Context) ([]models.ModelInfo, error) {
	resp, err := h.authedRequest(ctx).Get("/api/models")
	if err != nil {
		return nil, fmt.Errorf("list models request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var catalog []models.ModelInfo
	if err = h.transport.UnwrapResponse(resp.Body(), &catalog); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return catalog, nil
}

func (h *httpBackendClient) OpenChatStream(ctx context.Context, chatReq models.ChatRequest, conversationID string) (io.ReadCloser, error) {
	body, err := h.transport.WrapRequest(chatReq)
	if err != nil {
		return nil, fmt.Errorf("open chat stream: %w", err)
	}

	url := "/api/chat/"
	if conversationID != "" {
		url += conversationID
	}

	req := h.streamClient.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "text/event-stream").
		SetBody(body).
		SetDoNotParseResponse(true).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("open chat stream request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		raw := resp.RawBody()
		msg, _ := io.ReadAll(io.LimitReader(raw, 4096))
		_ = raw.Close()
		return nil, statusError(resp.StatusCode(), strings.TrimSpace(string(msg)))
	}

	return resp.RawBody(), nil
}

func (h *httpBackendClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}
	return statusError(resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
}

func statusError(status int, body string) error {
	if body == "" {
		body = http.StatusText(status)
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		return fmt.Errorf("http %d: %s", status, body)
	}
}
