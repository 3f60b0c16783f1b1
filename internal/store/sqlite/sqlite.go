// sqlite реализует store.TokenStore поверх локального SQLite-файла.
// Токен шифруется на запись конвертом securebox (argon2id +
// XChaCha20-Poly1305); парольная фраза приходит из конфигурации.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chatlink/internal/pkg/securebox"
	"chatlink/internal/store"

	_ "modernc.org/sqlite"
)

// Store — SQLite-хранилище auth-токена.
type Store struct {
	db         *sql.DB
	passphrase []byte
}

var _ store.TokenStore = (*Store)(nil)

// sealedToken — шифруемая часть записи.
type sealedToken struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// New открывает (или создаёт) файл хранилища и инициализирует схему.
func New(path string, passphrase string) (*Store, error) {
	const op = "store/sqlite.New"

	if passphrase == "" {
		return nil, fmt.Errorf("%s: empty passphrase", op)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: create dir: %w", op, err)
	}

	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", op, err)
	}

	// Хранилище локальное, один писатель.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS auth_token (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		login      TEXT    NOT NULL,
		sealed     BLOB    NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: schema: %w", op, err)
	}

	return &Store{db: db, passphrase: []byte(passphrase)}, nil
}

// SaveAuthToken сохраняет запись, вытесняя предыдущую.
func (s *Store) SaveAuthToken(ctx context.Context, rec store.AuthToken) error {
	const op = "store/sqlite.SaveAuthToken"

	plain, err := json.Marshal(sealedToken{Token: rec.Token, Expires: rec.Expires.UTC()})
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	sealed, err := securebox.Seal(s.passphrase, plain)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const query = `
	INSERT INTO auth_token (id, login, sealed, updated_at)
	VALUES (1, $1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET
		login = excluded.login,
		sealed = excluded.sealed,
		updated_at = excluded.updated_at;`

	if _, err := s.db.ExecContext(ctx, query, rec.Login, sealed, time.Now().Unix()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LoadAuthToken возвращает сохранённую запись или store.ErrNotFound.
func (s *Store) LoadAuthToken(ctx context.Context) (store.AuthToken, error) {
	const op = "store/sqlite.LoadAuthToken"

	const query = `SELECT login, sealed FROM auth_token WHERE id = 1;`

	var login string
	var sealed []byte
	err := s.db.QueryRowContext(ctx, query).Scan(&login, &sealed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.AuthToken{}, fmt.Errorf("%s: %w", op, store.ErrNotFound)
		}

		return store.AuthToken{}, fmt.Errorf("%s: %w", op, err)
	}

	plain, err := securebox.Open(s.passphrase, sealed)
	if err != nil {
		return store.AuthToken{}, fmt.Errorf("%s: %w", op, err)
	}

	var tok sealedToken
	if err := json.Unmarshal(plain, &tok); err != nil {
		return store.AuthToken{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	return store.AuthToken{Login: login, Token: tok.Token, Expires: tok.Expires}, nil
}

// RemoveAuthToken удаляет запись; отсутствие записи ошибкой не считается.
func (s *Store) RemoveAuthToken(ctx context.Context) error {
	const op = "store/sqlite.RemoveAuthToken"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM auth_token WHERE id = 1;`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает базу.
func (s *Store) Close() error {
	return s.db.Close()
}
