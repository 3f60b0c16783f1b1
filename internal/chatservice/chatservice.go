// chatservice содержит ролевые клиенты chat-service (регистрация сессии,
// device-токены, участники разговора, выпуск security-токена) поверх общего
// транспортного интерфейса Transport. gRPC- и REST-реализации транспорта
// живут в подпакетах transport/grpc и transport/rest.
//
// Основные аспекты:
//   - Каждый клиент владеет собственным call guard: на экземпляр допускается
//     не более одного незавершённого вызова (см. call.go). Повторный вызов при
//     незавершённом первом немедленно завершается ErrAlreadyInProgress.
//   - Транспортный успех и прикладной исход разделены: state_message ответа
//     маппится в models.Outcome независимо от кода транспорта; непригодный
//     для интерпретации успешный ответ — ErrParse.
//   - Клиенты не кэшируют ответы и не мутируют сессию; побочных эффектов,
//     кроме сетевого вызова, нет.
package chatservice

import (
	"context"
	"errors"
)

var (
	// ErrAlreadyInProgress — на этом экземпляре клиента уже есть
	// незавершённый вызов. Запрос не ставится в очередь и не вытесняет
	// текущий; вызывающий ждёт или использует Retry.
	ErrAlreadyInProgress = errors.New("call already in progress")

	// ErrParse — транспорт отработал успешно, но ответ не удалось
	// интерпретировать в типизированный исход. Жёсткая ошибка, без ретраев.
	ErrParse = errors.New("response parsing failed")
)

// RegisterRequest — привязка аутентифицированной tinode-сессии к записи
// chat-service (операция Register).
type RegisterRequest struct {
	UserID   string
	TinodeID string
	FullName string
}

// SaveDeviceTokenRequest — привязка push-токена устройства к получателю.
type SaveDeviceTokenRequest struct {
	RecipientID   string
	ClientID      string
	Token         string
	Platform      int32
	NotifPipeline string
}

// StateResponse — протокольное подтверждение chat-service: строка состояния,
// сравниваемая без учёта регистра (см. models.ParseOutcome).
type StateResponse struct {
	StateMessage string
}

// GetParticipantsRequest — запрос участника разговора по идентификатору заказа.
type GetParticipantsRequest struct {
	OrderID string
}

// GetParticipantsResponse — идентификаторы комнат и имя собеседника.
type GetParticipantsResponse struct {
	CallRoomID string
	ChatRoomID string
	FullName   string
}

// GenerateTokenRequest — запрос выпуска security-токена по клиентской паре.
type GenerateTokenRequest struct {
	ClientID     string
	ClientSecret string
}

// GenerateTokenResponse — выпущенный токен. Refresh-поля заполняет только
// REST-транспорт: gRPC-ответ несёт лишь access-токен и срок жизни.
type GenerateTokenResponse struct {
	AccessToken      string
	ExpiresIn        int64
	RefreshToken     string
	RefreshExpiresIn int64
}

// Transport — транспортный коллаборатор chat-service: четыре операции
// с фиксированными формами запроса/ответа. Реализации обязаны быть
// потокобезопасными: разные клиенты разделяют один Transport.
type Transport interface {
	Register(ctx context.Context, req RegisterRequest) (StateResponse, error)
	SaveDeviceToken(ctx context.Context, req SaveDeviceTokenRequest) (StateResponse, error)
	GetParticipants(ctx context.Context, req GetParticipantsRequest) (GetParticipantsResponse, error)
	GenerateToken(ctx context.Context, req GenerateTokenRequest) (GenerateTokenResponse, error)
	Close() error
}
