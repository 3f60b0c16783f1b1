package securebox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	t.Parallel()

	pass := []byte("device-passphrase")
	plain := []byte(`{"token":"dG9rZW4=","expires":"2026-09-01T10:00:00Z"}`)

	box, err := Seal(pass, plain)
	require.NoError(t, err)
	require.NotContains(t, string(box), "dG9rZW4=")

	got, err := Open(pass, box)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestOpen_WrongPassphrase(t *testing.T) {
	t.Parallel()

	box, err := Seal([]byte("right"), []byte("secret"))
	require.NoError(t, err)

	_, err = Open([]byte("wrong"), box)
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestOpen_TamperedCiphertext(t *testing.T) {
	t.Parallel()

	box, err := Seal([]byte("pass"), []byte("secret"))
	require.NoError(t, err)

	box[len(box)-1] ^= 0xff
	_, err = Open([]byte("pass"), box)
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestOpen_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Open([]byte("pass"), []byte("short"))
	require.ErrorIs(t, err, ErrMalformed)

	box, err := Seal([]byte("pass"), []byte("secret"))
	require.NoError(t, err)

	box[0] = 0x7f
	_, err = Open([]byte("pass"), box)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestSeal_FreshSaltAndNonce(t *testing.T) {
	t.Parallel()

	a, err := Seal([]byte("pass"), []byte("secret"))
	require.NoError(t, err)
	b, err := Seal([]byte("pass"), []byte("secret"))
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}
