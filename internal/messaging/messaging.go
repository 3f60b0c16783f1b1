// messaging описывает поверхность внешнего мессенджер-SDK, которой пользуется
// оркестратор сессии: соединение, basic/token-логин, создание аккаунта,
// me-топик и фоновые дочитки для роутера уведомлений.
//
// Проводной протокол мессенджера — внешний коллаборатор: реализация поверх
// опубликованного gRPC-моста живёт в подпакете tinode, остальной код зависит
// только от интерфейса Client.
package messaging

import (
	"context"
	"fmt"
	"time"
)

// Ctrl — протокольное подтверждение мессенджера: код состояния и текст,
// отдельные от полезной нагрузки запроса.
type Ctrl struct {
	Code int
	Text string
}

// LoginResult — итог успешного логина или создания аккаунта с login-on-success.
type LoginResult struct {
	// UID — идентификатор пользователя в мессенджере.
	UID string
	// Token и Expires — auth-токен сессии и срок его действия.
	Token   string
	Expires time.Time
	// Ctrl — control-ответ сервера. Код может быть >= 300 и при успешном
	// транспортном завершении (например, требование валидации credentials).
	Ctrl Ctrl
}

// ServerError — структурная протокольная ошибка мессенджера (control-ответ
// с кодом >= 400), в отличие от транспортного сбоя соединения.
//
// Текст ошибки намеренно включает числовой код: вызывающие стороны
// исторически распознают 401/409 подстрокой (см. internal/service).
type ServerError struct {
	Code int
	Text string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("messaging: server returned %d %s", e.Code, e.Text)
}

// Client — клиент мессенджера. Реализации обязаны быть потокобезопасными.
type Client interface {
	// Connect устанавливает соединение с backend-ом мессенджера.
	// Повторный вызов при живом соединении — no-op.
	Connect(ctx context.Context) error

	// LoginBasic выполняет вход по логину/паролю.
	LoginBasic(ctx context.Context, uname, password string) (LoginResult, error)

	// LoginToken выполняет вход по ранее выпущенному auth-токену.
	LoginToken(ctx context.Context, token string) (LoginResult, error)

	// CreateAccountBasic создаёт аккаунт с публичной карточкой
	// и немедленным логином (login-on-success).
	CreateAccountBasic(ctx context.Context, uname, password, fullName string) (LoginResult, error)

	// SetAutoLoginToken настраивает автоматический вход по токену
	// при последующих переподключениях.
	SetAutoLoginToken(token string)

	// MyUID возвращает идентификатор текущего пользователя
	// ("" до аутентификации).
	MyUID() string

	// AuthToken возвращает auth-токен текущей сессии и срок его действия.
	AuthToken() (string, time.Time)

	// Disconnect разрывает соединение. Без соединения — no-op.
	Disconnect()

	// MeNote возвращает поле note публичной карточки me-топика.
	MeNote(ctx context.Context) (string, error)

	// SetMeNote обновляет поле note публичной карточки me-топика.
	SetMeNote(ctx context.Context, note string) error

	// FetchData дочитывает сообщения топика начиная с seq; keepConnection
	// оставляет подписку живой (звонок в процессе).
	FetchData(ctx context.Context, topic string, seq int, keepConnection bool) error

	// FetchDesc перечитывает описание топика.
	FetchDesc(ctx context.Context, topic string) error

	// UpdateRead продвигает отметку прочитанного топика до seq.
	UpdateRead(ctx context.Context, topic string, seq int) error
}
