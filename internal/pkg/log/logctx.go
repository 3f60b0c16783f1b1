// log — прокладка slog-логгера через context.Context.
// Используется клиентскими интерсепторами и сервисным слоем, чтобы
// финальные записи о вызовах несли request_id/method без глобального состояния.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into кладёт логгер в контекст.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста (или возвращает slog.Default()).
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}

// WithComponent возвращает логгер с меткой подсистемы (session/registrar/notify).
func WithComponent(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}

	return l.With(slog.String("component", name))
}
