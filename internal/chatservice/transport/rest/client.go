// transport/rest — REST-транспорт chat-service: те же четыре операции,
// что и у gRPC-транспорта, поверх именованных эндпоинтов с JSON-телами.
//
// Контракт внешнего API:
//   - POST /chat-service/register            {user_id, tinode_id, full_name} -> {state_message};
//   - POST /chat-service/save-device-token   {recipient_id, client_id, token, platform, notif_pipeline} -> {state_message};
//   - GET  /chat-service/participants/{orderId} -> {call_room_id, chat_room_id, full_name};
//   - POST /chat-service/token/auth          {client_id, client_secret} -> числовые поля строками.
//
// Authorization: Bearer прикрепляется ко всем операциям, кроме выпуска
// security-токена; grpc-metadata-userid — к запросу участника.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chatlink/internal/chatservice"
)

// Client реализует chatservice.Transport поверх http.Client.
type Client struct {
	base  string
	http  *http.Client
	creds CredentialSource
}

// CredentialSource отдаёт актуальные на момент вызова учётные данные сессии.
type CredentialSource interface {
	Bearer() string
	ChatUserID() string
}

var _ chatservice.Transport = (*Client)(nil)

// New создаёт REST-клиент. timeout <= 0 — без клиентского таймаута
// (ограничение по времени — забота вызывающего через контекст).
func New(baseURL string, creds CredentialSource, timeout time.Duration) (*Client, error) {
	const op = "chatservice/transport/rest.New"

	if baseURL == "" {
		return nil, fmt.Errorf("%s: empty base url", op)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}

	httpClient := &http.Client{}
	if timeout > 0 {
		httpClient.Timeout = timeout
	}

	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  httpClient,
		creds: creds,
	}, nil
}

type registerBody struct {
	UserID   string `json:"user_id"`
	TinodeID string `json:"tinode_id"`
	FullName string `json:"full_name"`
}

type stateBody struct {
	StateMessage string `json:"state_message"`
}

// Register выполняет POST /chat-service/register.
func (c *Client) Register(ctx context.Context, req chatservice.RegisterRequest) (chatservice.StateResponse, error) {
	const op = "chatservice/transport/rest.Register"

	var out stateBody
	err := c.do(ctx, http.MethodPost, "/chat-service/register", registerBody{
		UserID:   req.UserID,
		TinodeID: req.TinodeID,
		FullName: req.FullName,
	}, &out, true, false)
	if err != nil {
		return chatservice.StateResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return chatservice.StateResponse{StateMessage: out.StateMessage}, nil
}

type saveTokenBody struct {
	RecipientID   string `json:"recipient_id"`
	ClientID      string `json:"client_id"`
	Token         string `json:"token"`
	Platform      int32  `json:"platform"`
	NotifPipeline string `json:"notif_pipeline"`
}

// SaveDeviceToken выполняет POST /chat-service/save-device-token.
func (c *Client) SaveDeviceToken(ctx context.Context, req chatservice.SaveDeviceTokenRequest) (chatservice.StateResponse, error) {
	const op = "chatservice/transport/rest.SaveDeviceToken"

	var out stateBody
	err := c.do(ctx, http.MethodPost, "/chat-service/save-device-token", saveTokenBody{
		RecipientID:   req.RecipientID,
		ClientID:      req.ClientID,
		Token:         req.Token,
		Platform:      req.Platform,
		NotifPipeline: req.NotifPipeline,
	}, &out, true, false)
	if err != nil {
		return chatservice.StateResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return chatservice.StateResponse{StateMessage: out.StateMessage}, nil
}

type participantBody struct {
	CallRoomID string `json:"call_room_id"`
	ChatRoomID string `json:"chat_room_id"`
	FullName   string `json:"full_name"`
}

// GetParticipants выполняет GET /chat-service/participants/{orderId}.
func (c *Client) GetParticipants(ctx context.Context, req chatservice.GetParticipantsRequest) (chatservice.GetParticipantsResponse, error) {
	const op = "chatservice/transport/rest.GetParticipants"

	var out participantBody
	path := "/chat-service/participants/" + url.PathEscape(req.OrderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true, true); err != nil {
		return chatservice.GetParticipantsResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return chatservice.GetParticipantsResponse{
		CallRoomID: out.CallRoomID,
		ChatRoomID: out.ChatRoomID,
		FullName:   out.FullName,
	}, nil
}

type generateTokenBody struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// REST-вариант отдаёт числовые поля строками.
type tokenBody struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        string `json:"expires_in"`
	RefreshExpiresIn string `json:"refresh_expires_in"`
}

// GenerateToken выполняет POST /chat-service/token/auth (без bearer-заголовка).
func (c *Client) GenerateToken(ctx context.Context, req chatservice.GenerateTokenRequest) (chatservice.GenerateTokenResponse, error) {
	const op = "chatservice/transport/rest.GenerateToken"

	var out tokenBody
	err := c.do(ctx, http.MethodPost, "/chat-service/token/auth", generateTokenBody{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
	}, &out, false, false)
	if err != nil {
		return chatservice.GenerateTokenResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	expiresIn, err := parseSeconds(out.ExpiresIn)
	if err != nil {
		return chatservice.GenerateTokenResponse{}, fmt.Errorf("%s: expires_in %q: %w", op, out.ExpiresIn, chatservice.ErrParse)
	}
	refreshExpiresIn, err := parseSeconds(out.RefreshExpiresIn)
	if err != nil {
		return chatservice.GenerateTokenResponse{}, fmt.Errorf("%s: refresh_expires_in %q: %w", op, out.RefreshExpiresIn, chatservice.ErrParse)
	}

	return chatservice.GenerateTokenResponse{
		AccessToken:      out.AccessToken,
		ExpiresIn:        expiresIn,
		RefreshToken:     out.RefreshToken,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

// Close ничего не освобождает: http.Client не держит выделенных ресурсов.
func (c *Client) Close() error { return nil }

// parseSeconds разбирает строковое число секунд; пустая строка — 0.
func parseSeconds(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.ParseInt(s, 10, 64)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, withAuth, withUserID bool) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if withAuth {
			req.Header.Set("Authorization", "Bearer "+c.creds.Bearer())
		}
		if withUserID {
			if uid := c.creds.ChatUserID(); uid != "" {
				req.Header.Set("grpc-metadata-userid", uid)
			}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", chatservice.ErrParse)
	}

	return nil
}
