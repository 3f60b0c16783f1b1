package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chatlink/internal/messaging"
	"chatlink/internal/models"
	"chatlink/internal/pkg/log"
	"chatlink/internal/pkg/redact"
	"chatlink/internal/store"
)

// ConfigureUser выводит учётные данные из телефона профиля и запускает
// login-or-register. Пустой телефон — нет текущего профиля, делать нечего.
func (s *Service) ConfigureUser(ctx context.Context, phone, fullName string) error {
	const op = "service.ConfigureUser"

	if phone == "" {
		return fmt.Errorf("%s: empty phone", op)
	}

	creds := models.CredentialsFromPhone(phone, fullName)
	if err := s.LoginOrRegister(ctx, creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LoginOrRegister выполняет полный цикл: логин, при отказе 401 — ровно один
// фолбэк на регистрацию (409 «уже существует» считается успехом), затем
// привязка аккаунта к chat-service.
//
// Идемпотентность: если сессия уже аутентифицирована и привязана, метод
// возвращает nil без единого сетевого вызова.
func (s *Service) LoginOrRegister(ctx context.Context, creds models.CredentialProfile) error {
	const op = "service.LoginOrRegister"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess.Authenticated() && s.sess.Linked() {
		return nil
	}

	err := s.signIn(ctx, creds)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnauthorized):
		// Единственный фолбэк: логин → регистрация. Обратного нет.
		if err := s.signUp(ctx, creds); err != nil && !errors.Is(err, ErrAlreadyExists) {
			return fmt.Errorf("%s: %w", op, err)
		}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.link(ctx, creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// signIn подключается к мессенджеру и логинится по basic-схеме. Успешный
// логин персистится до проверки ctrl-кода: токен сохраняется даже если
// ответ в итоге трактуется как отказ.
func (s *Service) signIn(ctx context.Context, creds models.CredentialProfile) error {
	const op = "service.signIn"

	lg := log.WithComponent(log.From(ctx), "service")

	if err := s.msg.Connect(ctx); err != nil {
		s.sess.Invalidate()
		return fmt.Errorf("%s: %w: %s", op, ErrConnection, err)
	}

	res, err := s.msg.LoginBasic(ctx, creds.Username, creds.Password)
	if err != nil {
		var serr *messaging.ServerError
		if errors.As(err, &serr) {
			if strings.Contains(serr.Error(), "401") {
				lg.Info("login_rejected", "user", redact.Phone(creds.Username))
				return fmt.Errorf("%s: %w", op, ErrUnauthorized)
			}
			return fmt.Errorf("%s: %w: %s", op, ErrFatal, serr.Text)
		}
		s.sess.Invalidate()
		return fmt.Errorf("%s: %w: %s", op, ErrConnection, err)
	}

	if err := s.persistLogin(ctx, creds.Username, res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Транспортно успешный ответ с кодом >= 300 и текстом про валидацию
	// учётных данных трактуется как отказ: единый канал сигнала.
	if res.Ctrl.Code >= 300 && strings.Contains(res.Ctrl.Text, "validate credentials") {
		return fmt.Errorf("%s: %w: %s", op, ErrFatal, res.Ctrl.Text)
	}

	lg.Info("login_ok", "user", redact.Phone(creds.Username))
	return nil
}

// signUp создаёт basic-аккаунт с display-именем в публичной карточке.
// Невосстановимый отказ регистрации рвёт соединение перед возвратом.
func (s *Service) signUp(ctx context.Context, creds models.CredentialProfile) error {
	const op = "service.signUp"

	lg := log.WithComponent(log.From(ctx), "service")

	res, err := s.msg.CreateAccountBasic(ctx, creds.Username, creds.Password, creds.FullName)
	if err != nil {
		var serr *messaging.ServerError
		if errors.As(err, &serr) {
			if strings.Contains(serr.Error(), "409") {
				lg.Info("account_exists", "user", redact.Phone(creds.Username))
				return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
			}
			s.msg.Disconnect()
			return fmt.Errorf("%s: %w: %s", op, ErrFatal, serr.Text)
		}
		s.msg.Disconnect()
		return fmt.Errorf("%s: %w: %s", op, ErrConnection, err)
	}

	if err := s.persistLogin(ctx, creds.Username, res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.Ctrl.Code >= 300 && strings.Contains(res.Ctrl.Text, "validate credentials") {
		return fmt.Errorf("%s: %w: %s", op, ErrFatal, res.Ctrl.Text)
	}

	lg.Info("register_ok", "user", redact.Phone(creds.Username))
	return nil
}

// persistLogin сохраняет результат логина: токен — в зашифрованное
// хранилище и в авто-логин мессенджера, идентичность — в сессию.
// Сбой записи в хранилище не фатален: сессия живёт, следующий логин
// пересохранит токен.
func (s *Service) persistLogin(ctx context.Context, login string, res messaging.LoginResult) error {
	const op = "service.persistLogin"

	lg := log.WithComponent(log.From(ctx), "service")

	if err := s.tokens.SaveAuthToken(ctx, store.AuthToken{
		Login:   login,
		Token:   res.Token,
		Expires: res.Expires,
	}); err != nil {
		lg.Warn("auth_token_save_failed", "err", err.Error())
	}

	s.msg.SetAutoLoginToken(res.Token)

	if err := s.sess.SetAuthenticated(res.UID, res.Token, res.Expires); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// link привязывает аутентифицированный аккаунт к chat-service. Любой отказ
// привязки откатывает сессию в анонимное состояние (sign-out): частично
// привязанных сессий не бывает.
func (s *Service) link(ctx context.Context, creds models.CredentialProfile) error {
	const op = "service.link"

	out, err := s.clients.Auth.AuthRequest(ctx, creds.Username, s.msg.MyUID(), creds.FullName)
	if err != nil {
		s.signOutLocked(ctx)
		return fmt.Errorf("%s: %w", op, err)
	}
	if out != models.OutcomeSuccess {
		s.signOutLocked(ctx)
		return fmt.Errorf("%s: %w: backend rejected link: %s", op, ErrFatal, out)
	}

	s.sess.SetChatUserID(creds.Username)
	s.sess.MarkLinked()
	return nil
}

// Resume восстанавливает сессию мессенджера из персистентного токена:
// логин по token-схеме без участия пользователя. Привязку к chat-service
// не восстанавливает — это делает следующий LoginOrRegister.
func (s *Service) Resume(ctx context.Context) error {
	const op = "service.Resume"

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.tokens.LoadAuthToken(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !rec.Expires.IsZero() && s.now().After(rec.Expires) {
		_ = s.tokens.RemoveAuthToken(ctx)
		return fmt.Errorf("%s: %w: token expired", op, ErrUnauthorized)
	}

	if err := s.msg.Connect(ctx); err != nil {
		s.sess.Invalidate()
		return fmt.Errorf("%s: %w: %s", op, ErrConnection, err)
	}

	res, err := s.msg.LoginToken(ctx, rec.Token)
	if err != nil {
		var serr *messaging.ServerError
		if errors.As(err, &serr) {
			// Протухший или отозванный токен: чистим хранилище,
			// дальше только интерактивный логин.
			_ = s.tokens.RemoveAuthToken(ctx)
			return fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		s.sess.Invalidate()
		return fmt.Errorf("%s: %w: %s", op, ErrConnection, err)
	}

	if err := s.persistLogin(ctx, rec.Login, res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.sess.SetChatUserID(rec.Login)
	return nil
}

// SignOut разлогинивает: удаляет персистентный токен и сбрасывает сессию.
func (s *Service) SignOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signOutLocked(ctx)
}

func (s *Service) signOutLocked(ctx context.Context) {
	lg := log.WithComponent(log.From(ctx), "service")

	if err := s.tokens.RemoveAuthToken(ctx); err != nil && !errors.Is(err, store.ErrNotFound) {
		lg.Warn("auth_token_remove_failed", "err", err.Error())
	}
	s.sess.Invalidate()
}
