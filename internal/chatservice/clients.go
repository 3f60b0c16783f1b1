package chatservice

import (
	"context"
	"fmt"

	"chatlink/internal/models"
)

// AuthClient выполняет привязку tinode-сессии к записи chat-service
// (операция Register). Один незавершённый вызов на экземпляр.
type AuthClient struct {
	c *caller[RegisterRequest, models.Outcome]
}

// NewAuthClient создаёт клиент поверх общего транспорта.
func NewAuthClient(t Transport) *AuthClient {
	return &AuthClient{
		c: newCaller(func(ctx context.Context, req RegisterRequest) (models.Outcome, error) {
			const op = "chatservice.AuthClient"

			resp, err := t.Register(ctx, req)
			if err != nil {
				return models.OutcomeUnknown, fmt.Errorf("%s: %w", op, err)
			}
			if resp.StateMessage == "" {
				return models.OutcomeUnknown, fmt.Errorf("%s: %w", op, ErrParse)
			}

			return models.ParseOutcome(resp.StateMessage), nil
		}),
	}
}

// AuthRequest регистрирует пользователя chat-service и возвращает исход
// по state_message ответа. Транспортные ошибки пробрасываются без изменений.
func (a *AuthClient) AuthRequest(ctx context.Context, userID, tinodeID, fullName string) (models.Outcome, error) {
	return a.c.call(ctx, RegisterRequest{
		UserID:   userID,
		TinodeID: tinodeID,
		FullName: fullName,
	})
}

// Stop отменяет незавершённый вызов, если он есть.
func (a *AuthClient) Stop() { a.c.stop() }

// Retry повторяет последний запрос; false — повторять нечего.
func (a *AuthClient) Retry(ctx context.Context) (models.Outcome, bool, error) {
	return a.c.retry(ctx)
}

// DeviceTokenClient отправляет привязку push-токена устройства.
type DeviceTokenClient struct {
	c *caller[SaveDeviceTokenRequest, models.Outcome]
}

// NewDeviceTokenClient создаёт клиент поверх общего транспорта.
func NewDeviceTokenClient(t Transport) *DeviceTokenClient {
	return &DeviceTokenClient{
		c: newCaller(func(ctx context.Context, req SaveDeviceTokenRequest) (models.Outcome, error) {
			const op = "chatservice.DeviceTokenClient"

			resp, err := t.SaveDeviceToken(ctx, req)
			if err != nil {
				return models.OutcomeUnknown, fmt.Errorf("%s: %w", op, err)
			}
			if resp.StateMessage == "" {
				return models.OutcomeUnknown, fmt.Errorf("%s: %w", op, ErrParse)
			}

			return models.ParseOutcome(resp.StateMessage), nil
		}),
	}
}

// SaveToken отправляет привязку push-токена и возвращает исход по state_message.
func (d *DeviceTokenClient) SaveToken(ctx context.Context, b models.DeviceTokenBinding) (models.Outcome, error) {
	return d.c.call(ctx, SaveDeviceTokenRequest{
		RecipientID:   b.RecipientID,
		ClientID:      b.ClientID,
		Token:         b.Token,
		Platform:      int32(b.Platform),
		NotifPipeline: string(b.Pipeline),
	})
}

// Stop отменяет незавершённый вызов, если он есть.
func (d *DeviceTokenClient) Stop() { d.c.stop() }

// Retry повторяет последний запрос; false — повторять нечего.
func (d *DeviceTokenClient) Retry(ctx context.Context) (models.Outcome, bool, error) {
	return d.c.retry(ctx)
}

// ParticipantClient запрашивает участника разговора по заказу.
type ParticipantClient struct {
	c *caller[GetParticipantsRequest, models.ParticipantInfo]
}

// NewParticipantClient создаёт клиент поверх общего транспорта.
func NewParticipantClient(t Transport) *ParticipantClient {
	return &ParticipantClient{
		c: newCaller(func(ctx context.Context, req GetParticipantsRequest) (models.ParticipantInfo, error) {
			const op = "chatservice.ParticipantClient"

			resp, err := t.GetParticipants(ctx, req)
			if err != nil {
				return models.ParticipantInfo{}, fmt.Errorf("%s: %w", op, err)
			}

			return models.ParticipantInfo{
				ChatRoomID: resp.ChatRoomID,
				CallRoomID: resp.CallRoomID,
				FullName:   resp.FullName,
			}, nil
		}),
	}
}

// GetParticipant возвращает идентификаторы комнат и имя собеседника.
func (p *ParticipantClient) GetParticipant(ctx context.Context, orderID string) (models.ParticipantInfo, error) {
	return p.c.call(ctx, GetParticipantsRequest{OrderID: orderID})
}

// Stop отменяет незавершённый вызов, если он есть.
func (p *ParticipantClient) Stop() { p.c.stop() }

// Retry повторяет последний запрос; false — повторять нечего.
func (p *ParticipantClient) Retry(ctx context.Context) (models.ParticipantInfo, bool, error) {
	return p.c.retry(ctx)
}

// SecurityClient выпускает security-токен по клиентской паре.
// Единственная операция, выполняемая без bearer-заголовка.
type SecurityClient struct {
	c *caller[GenerateTokenRequest, models.TokenBundle]
}

// NewSecurityClient создаёт клиент поверх общего транспорта.
func NewSecurityClient(t Transport) *SecurityClient {
	return &SecurityClient{
		c: newCaller(func(ctx context.Context, req GenerateTokenRequest) (models.TokenBundle, error) {
			const op = "chatservice.SecurityClient"

			resp, err := t.GenerateToken(ctx, req)
			if err != nil {
				return models.TokenBundle{}, fmt.Errorf("%s: %w", op, err)
			}
			if resp.AccessToken == "" {
				return models.TokenBundle{}, fmt.Errorf("%s: %w", op, ErrParse)
			}

			return models.TokenBundle{
				AccessToken:      resp.AccessToken,
				ExpiresIn:        resp.ExpiresIn,
				RefreshToken:     resp.RefreshToken,
				RefreshExpiresIn: resp.RefreshExpiresIn,
			}, nil
		}),
	}
}

// GenerateNewToken выпускает новый security-токен.
func (s *SecurityClient) GenerateNewToken(ctx context.Context, clientID, clientSecret string) (models.TokenBundle, error) {
	return s.c.call(ctx, GenerateTokenRequest{ClientID: clientID, ClientSecret: clientSecret})
}

// Stop отменяет незавершённый вызов, если он есть.
func (s *SecurityClient) Stop() { s.c.stop() }

// Retry повторяет последний запрос; false — повторять нечего.
func (s *SecurityClient) Retry(ctx context.Context) (models.TokenBundle, bool, error) {
	return s.c.retry(ctx)
}
