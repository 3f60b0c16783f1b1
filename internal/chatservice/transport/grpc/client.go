// transport/grpc — gRPC-транспорт chat-service: прямые Invoke-вызовы четырёх
// unary-методов сервиса grpc.ChatService с ручным протобуф-кодеком (wire.go).
//
// Цепочка клиентских интерсепторов: auth-metadata -> timeout -> logging ->
// prometheus. Bearer-заголовок берётся из CredentialSource на момент вызова
// и не прикрепляется к выпуску security-токена.
package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chatlink/internal/chatservice"
	"chatlink/internal/chatservice/transport/grpc/interceptors"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Полные имена методов внешнего сервиса.
const (
	registerMethod        = "/grpc.ChatService/Register"
	saveDeviceTokenMethod = "/grpc.ChatService/SaveDeviceToken"
	getParticipantsMethod = "/grpc.ChatService/GetParticipants"
	generateTokenMethod   = "/grpc.ChatService/GenerateToken"
)

// Client реализует chatservice.Transport поверх одного gRPC-коннекта.
type Client struct {
	conn *grpc.ClientConn
}

var _ chatservice.Transport = (*Client)(nil)

// New открывает коннект к chat-service и собирает цепочку клиентских
// интерсепторов. timeout <= 0 — без дедлайна по умолчанию (контракт
// внешнего сервиса допускает неограниченное ожидание).
func New(addr string, creds interceptors.CredentialSource, timeout time.Duration, log *slog.Logger) (*Client, error) {
	const op = "chatservice/transport/grpc.New"

	if addr == "" {
		return nil, fmt.Errorf("%s: empty chat-service addr", op)
	}

	chain := grpc.WithChainUnaryInterceptor(
		interceptors.ClientWithAuth(creds, generateTokenMethod),
		interceptors.ClientWithTimeout(timeout),
		interceptors.ClientUnaryLoggingInterceptor(log),
		grpc_prometheus.UnaryClientInterceptor,
	)

	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		chain,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}

	return &Client{conn: conn}, nil
}

// Register выполняет grpc.ChatService/Register.
func (c *Client) Register(ctx context.Context, req chatservice.RegisterRequest) (chatservice.StateResponse, error) {
	in := registerRequest(req)
	var out stateResponse

	if err := c.invoke(ctx, registerMethod, &in, &out); err != nil {
		return chatservice.StateResponse{}, err
	}

	return chatservice.StateResponse(out), nil
}

// SaveDeviceToken выполняет grpc.ChatService/SaveDeviceToken.
func (c *Client) SaveDeviceToken(ctx context.Context, req chatservice.SaveDeviceTokenRequest) (chatservice.StateResponse, error) {
	in := saveDeviceTokenRequest(req)
	var out stateResponse

	if err := c.invoke(ctx, saveDeviceTokenMethod, &in, &out); err != nil {
		return chatservice.StateResponse{}, err
	}

	return chatservice.StateResponse(out), nil
}

// GetParticipants выполняет grpc.ChatService/GetParticipants.
func (c *Client) GetParticipants(ctx context.Context, req chatservice.GetParticipantsRequest) (chatservice.GetParticipantsResponse, error) {
	in := getParticipantsRequest(req)
	var out getParticipantsResponse

	if err := c.invoke(ctx, getParticipantsMethod, &in, &out); err != nil {
		return chatservice.GetParticipantsResponse{}, err
	}

	return chatservice.GetParticipantsResponse(out), nil
}

// GenerateToken выполняет grpc.ChatService/GenerateToken (без bearer-заголовка).
func (c *Client) GenerateToken(ctx context.Context, req chatservice.GenerateTokenRequest) (chatservice.GenerateTokenResponse, error) {
	in := generateTokenRequest(req)
	var out generateTokenResponse

	if err := c.invoke(ctx, generateTokenMethod, &in, &out); err != nil {
		return chatservice.GenerateTokenResponse{}, err
	}

	return chatservice.GenerateTokenResponse(out), nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out wireMessage) error {
	return c.conn.Invoke(ctx, method, in, out, grpc.ForceCodec(wireCodec{}))
}

// Close закрывает коннект.
func (c *Client) Close() error {
	return c.conn.Close()
}
