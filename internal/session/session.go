// session хранит процесс-глобальное состояние аутентификации устройства.
//
// Инвариант: сессия либо полностью анонимна (нет токена, нет user id), либо
// полностью аутентифицирована (token + срок + user id выставлены вместе);
// частичные состояния запрещены и отклоняются на входе.
//
// Дисциплина записи: мутации выполняются только оркестратором (internal/service)
// и регистратором device-токена; остальные компоненты читают. Мьютекс закрывает
// случай конкурентного чтения из роутера уведомлений.
package session

import (
	"errors"
	"sync"
	"time"

	"chatlink/internal/models"
)

// ErrPartialIdentity — попытка выставить аутентификацию без токена или user id.
var ErrPartialIdentity = errors.New("partial session identity")

// Session — изменяемая запись о текущей сессии устройства.
// Нулевое значение — анонимная сессия, готовая к использованию.
type Session struct {
	mu sync.RWMutex

	userID      string
	authToken   string
	authExpires time.Time

	chatUserID string

	registered bool
	linked     bool

	bearer        models.TokenBundle
	bearerPresent bool
	bearerExpires time.Time
}

// New возвращает анонимную сессию.
func New() *Session {
	return &Session{}
}

// SetAuthenticated переводит сессию в аутентифицированное состояние.
// Все три поля обязательны — иначе ErrPartialIdentity.
func (s *Session) SetAuthenticated(userID, authToken string, expires time.Time) error {
	if userID == "" || authToken == "" || expires.IsZero() {
		return ErrPartialIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.authToken = authToken
	s.authExpires = expires

	return nil
}

// Invalidate сбрасывает сессию в анонимное состояние: токен, user id,
// флаги "already registered" и привязки к chat-service очищаются.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = ""
	s.authToken = ""
	s.authExpires = time.Time{}
	s.chatUserID = ""
	s.registered = false
	s.linked = false
	s.bearer = models.TokenBundle{}
	s.bearerPresent = false
	s.bearerExpires = time.Time{}
}

// SetChatUserID запоминает идентификатор пользователя chat-service
// (логин, под которым сессия привязана к backend-записи).
func (s *Session) SetChatUserID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chatUserID = id
}

// ChatUserID возвращает идентификатор пользователя chat-service
// ("" до установления привязки).
func (s *Session) ChatUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chatUserID
}

// Authenticated сообщает, аутентифицирована ли сессия.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userID != "" && s.authToken != ""
}

// UserID возвращает идентификатор пользователя ("" для анонимной сессии).
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userID
}

// AuthToken возвращает auth-токен мессенджера и срок его действия.
func (s *Session) AuthToken() (string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.authToken, s.authExpires
}

// MarkLinked фиксирует успешную привязку сессии к chat-service.
func (s *Session) MarkLinked() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.linked = true
	s.registered = true
}

// Linked сообщает, установлена ли привязка к chat-service.
func (s *Session) Linked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.linked
}

// Registered возвращает флаг "аккаунт уже зарегистрирован".
func (s *Session) Registered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.registered
}

// SetBearer сохраняет выпущенную chat-service пару токенов и срок действия
// access-токена.
func (s *Session) SetBearer(t models.TokenBundle, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bearer = t
	s.bearerPresent = t.AccessToken != ""
	s.bearerExpires = expires
}

// Bearer возвращает access-токен chat-service для Authorization-заголовка
// ("" если токен не выпускался или сессия была инвалидирована).
func (s *Session) Bearer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.bearerPresent {
		return ""
	}

	return s.bearer.AccessToken
}

// BearerExpires возвращает срок действия access-токена chat-service
// (нулевое время, если токен не выпускался).
func (s *Session) BearerExpires() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bearerExpires
}
