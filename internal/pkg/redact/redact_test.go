package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	t.Parallel()

	require.Equal(t, "***7890", Phone("081234567890"))
	require.Equal(t, "***", Phone("0812"))
	require.Equal(t, "***", Phone(""))
}

func TestToken(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN len=0]", Token(""))
	require.Equal(t, "[REDACTED_TOKEN len=5]", Token("abcde"))
}
