// securebox — конверт шифрования секретов в локальном хранилище:
// ключ из парольной фразы через argon2id, шифрование XChaCha20-Poly1305.
//
// Формат конверта: версия (1 байт) || соль (16) || nonce (24) || ciphertext.
// Соль и nonce генерируются на каждый Seal, конверт самодостаточен.
package securebox

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	version  = 0x01
	saltSize = 16

	// Параметры argon2id: время/память/параллелизм.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var (
	// ErrMalformed — конверт повреждён или имеет неизвестную версию.
	ErrMalformed = errors.New("malformed envelope")

	// ErrDecrypt — расшифровка не удалась: неверная парольная фраза
	// или подменённый ciphertext.
	ErrDecrypt = errors.New("decryption failed")
)

// Seal шифрует plaintext парольной фразой и возвращает конверт.
func Seal(passphrase, plaintext []byte) ([]byte, error) {
	const op = "securebox.Seal"

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%s: salt: %w", op, err)
	}

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%s: nonce: %w", op, err)
	}

	box := make([]byte, 0, 1+saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	box = append(box, version)
	box = append(box, salt...)
	box = append(box, nonce...)

	return aead.Seal(box, nonce, plaintext, nil), nil
}

// Open расшифровывает конверт той же парольной фразой.
func Open(passphrase, box []byte) ([]byte, error) {
	const op = "securebox.Open"

	if len(box) < 1+saltSize+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformed)
	}
	if box[0] != version {
		return nil, fmt.Errorf("%s: version %d: %w", op, box[0], ErrMalformed)
	}

	salt := box[1 : 1+saltSize]
	nonce := box[1+saltSize : 1+saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := box[1+saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDecrypt)
	}

	return plaintext, nil
}

func newAEAD(passphrase, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)

	return chacha20poly1305.NewX(key)
}
