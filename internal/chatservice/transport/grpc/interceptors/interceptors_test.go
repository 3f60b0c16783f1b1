package interceptors

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chatlink/internal/pkg/log"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// capHandler — минимальный slog.Handler для захвата последней записи
// и всех атрибутов. Дополнительно ведёт счётчик сообщений по тексту.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	if h.count == nil {
		h.count = make(map[string]int)
	}
	h.count[r.Message]++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

// staticCreds — фиксированный CredentialSource для тестов.
type staticCreds struct {
	bearer string
	userID string
}

func (c staticCreds) Bearer() string     { return c.bearer }
func (c staticCreds) ChatUserID() string { return c.userID }

func captureMD(mdOut *metadata.MD) grpc.UnaryInvoker {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		*mdOut = md
		return nil
	}
}

func TestClientWithAuth_AppendsHeaders(t *testing.T) {
	t.Parallel()

	inter := ClientWithAuth(staticCreds{bearer: "token-xyz", userID: "0812"})

	var mdOut metadata.MD
	err := inter(context.Background(), "/grpc.ChatService/Register", nil, nil, nil, captureMD(&mdOut))
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer token-xyz"}, mdOut.Get("authorization"))
	require.Equal(t, []string{"0812"}, mdOut.Get("grpc-metadata-userid"))
}

func TestClientWithAuth_SkipsAuthForListedMethods(t *testing.T) {
	t.Parallel()

	inter := ClientWithAuth(staticCreds{bearer: "token-xyz", userID: "0812"}, "/grpc.ChatService/GenerateToken")

	var mdOut metadata.MD
	err := inter(context.Background(), "/grpc.ChatService/GenerateToken", nil, nil, nil, captureMD(&mdOut))
	require.NoError(t, err)

	// Выпуск security-токена идёт без Authorization, но userid сохраняется.
	require.Empty(t, mdOut.Get("authorization"))
	require.Equal(t, []string{"0812"}, mdOut.Get("grpc-metadata-userid"))
}

func TestClientWithAuth_SkipEmptyValues(t *testing.T) {
	t.Parallel()

	inter := ClientWithAuth(staticCreds{})

	var mdOut metadata.MD
	err := inter(context.Background(), "/grpc.ChatService/Register", nil, nil, nil, captureMD(&mdOut))
	require.NoError(t, err)
	require.Empty(t, mdOut.Get("authorization"))
	require.Empty(t, mdOut.Get("grpc-metadata-userid"))
}

func TestClientWithTimeout_SetsDeadline_AndInvokerSeesDeadlineExceeded(t *testing.T) {
	t.Parallel()

	const d = 40 * time.Millisecond
	inter := ClientWithTimeout(d)

	start := time.Now()
	err := inter(
		context.Background(),
		"/grpc.ChatService/Register",
		nil, nil, nil,
		func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), d)
}

func TestClientWithTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	parentDL, ok := parent.Deadline()
	require.True(t, ok)

	inter := ClientWithTimeout(1 * time.Second)

	var childDL time.Time
	err := inter(
		parent,
		"/grpc.ChatService/SaveDeviceToken",
		nil, nil, nil,
		func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			var ok bool
			childDL, ok = ctx.Deadline()
			require.True(t, ok)
			return nil
		},
	)
	require.NoError(t, err)
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestClientWithTimeout_ZeroDuration_PassThrough(t *testing.T) {
	t.Parallel()

	inter := ClientWithTimeout(0)
	var hasDL bool
	err := inter(
		context.Background(),
		"/grpc.ChatService/GetParticipants",
		nil, nil, nil,
		func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			_, hasDL = ctx.Deadline()
			return nil
		},
	)
	require.NoError(t, err)
	require.False(t, hasDL, "no deadline expected when d <= 0")
}

func TestClientUnaryLoggingInterceptor_LogsAndPutsLoggerIntoContext(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	base := slog.New(h)

	inter := ClientUnaryLoggingInterceptor(base)

	err := inter(context.Background(), "/grpc.ChatService/Register", "req", nil, nil, func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		// Логгер внедрён в контекст.
		l := log.From(ctx)
		l.Info("handler", slog.String("ok", "1"))
		return nil
	})
	require.NoError(t, err)

	// Была запись "handler" от внутреннего вызова.
	require.Equal(t, 1, h.count["handler"])

	// Итоговая запись интерсептора.
	require.Equal(t, "grpc", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)

	code, _ := h.attrs["code"].(string)
	require.Equal(t, "OK", code)

	if d, ok := h.attrs["dur"].(time.Duration); ok {
		require.Greater(t, d, time.Duration(0))
	} else {
		t.Fatalf("dur attr not found or wrong type: %#v", h.attrs["dur"])
	}
}
