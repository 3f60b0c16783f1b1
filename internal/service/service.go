// service содержит оркестратор жизненного цикла сессии: login-or-register
// с фолбэком на регистрацию, привязку к chat-service, регистрацию
// device-токена, выпуск security-токена и фоновые дочитки для роутера
// уведомлений.
//
// Основные аспекты:
//   - Все мутации сессии проходят через методы Service и сериализуются
//     мьютексом: дисциплина одного писателя из спецификации сохраняется
//     независимо от того, из какой горутины пришёл вызов.
//   - Ошибки возвращаются сентинелами этого пакета; единственное место,
//     где перехватывается ErrUnauthorized и превращается в фолбэк
//     регистрации, — LoginOrRegister. Остальные ошибки уходят вызывающему
//     без изменений.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"chatlink/internal/config"
	"chatlink/internal/messaging"
	"chatlink/internal/models"
	"chatlink/internal/session"
	"chatlink/internal/store"
)

var (
	// ErrUnauthorized — логин отклонён из-за неверных учётных данных.
	// Перехватывается в LoginOrRegister и ровно один раз конвертируется
	// в фолбэк регистрации (без цикла фолбэков).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists — регистрация отклонена: аккаунт уже существует.
	// Восстановимое условие: поток продолжается привязкой, как если бы
	// логин удался.
	ErrAlreadyExists = errors.New("account already exists")

	// ErrConnection — транспортный/сетевой сбой мессенджера. Побочный
	// эффект: сессия инвалидируется, следующая попытка аутентифицируется
	// заново.
	ErrConnection = errors.New("connection failed")

	// ErrFatal — любая другая структурная протокольная ошибка; наружу
	// уходит с серверной детализацией, автоматических ретраев нет.
	ErrFatal = errors.New("fatal chat error")
)

// AuthAPI — привязка сессии к chat-service (роль Authentication).
type AuthAPI interface {
	AuthRequest(ctx context.Context, userID, tinodeID, fullName string) (models.Outcome, error)
}

// DeviceTokenAPI — отправка привязки push-токена (роль DeviceToken).
type DeviceTokenAPI interface {
	SaveToken(ctx context.Context, b models.DeviceTokenBinding) (models.Outcome, error)
}

// ParticipantAPI — поиск участника разговора (роль Participant).
type ParticipantAPI interface {
	GetParticipant(ctx context.Context, orderID string) (models.ParticipantInfo, error)
}

// SecurityAPI — выпуск security-токена (роль TokenIssuance).
type SecurityAPI interface {
	GenerateNewToken(ctx context.Context, clientID, clientSecret string) (models.TokenBundle, error)
}

// Clients агрегирует ролевые клиенты chat-service.
type Clients struct {
	Auth         AuthAPI
	Devices      DeviceTokenAPI
	Participants ParticipantAPI
	Security     SecurityAPI
}

// Service — оркестратор сессии.
type Service struct {
	cfg      config.ChatServiceConfig
	platform models.Platform

	sess    *session.Session
	msg     messaging.Client
	clients Clients
	tokens  store.TokenStore

	// mu сериализует мутации сессии (single-writer discipline).
	mu  sync.Mutex
	now func() time.Time
}

// New создаёт оркестратор.
func New(cfg config.ChatServiceConfig, platform models.Platform, sess *session.Session, msg messaging.Client, clients Clients, tokens store.TokenStore) *Service {
	return &Service{
		cfg:      cfg,
		platform: platform,
		sess:     sess,
		msg:      msg,
		clients:  clients,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Session возвращает сессию, которой владеет оркестратор.
func (s *Service) Session() *session.Session {
	return s.sess
}

// Participant возвращает участника разговора по идентификатору заказа.
func (s *Service) Participant(ctx context.Context, orderID string) (models.ParticipantInfo, error) {
	return s.clients.Participants.GetParticipant(ctx, orderID)
}
