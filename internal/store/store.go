// store описывает локальную персистентность auth-токена мессенджера:
// токен переживает перезапуск демона и позволяет восстановить сессию
// без повторного ввода учётных данных. Реализация на SQLite —
// в подпакете sqlite.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound — сохранённого токена нет (первый запуск или после sign-out).
var ErrNotFound = errors.New("auth token not found")

// AuthToken — персистируемая запись: логин, auth-токен мессенджера
// и срок его действия.
type AuthToken struct {
	Login   string
	Token   string
	Expires time.Time
}

// TokenStore — хранилище auth-токена текущего устройства.
// Хранится не более одной записи: новая перезаписывает предыдущую.
type TokenStore interface {
	// SaveAuthToken сохраняет запись, вытесняя предыдущую.
	SaveAuthToken(ctx context.Context, rec AuthToken) error

	// LoadAuthToken возвращает сохранённую запись или ErrNotFound.
	LoadAuthToken(ctx context.Context) (AuthToken, error)

	// RemoveAuthToken удаляет запись. Отсутствие записи ошибкой не считается.
	RemoveAuthToken(ctx context.Context) error

	Close() error
}
