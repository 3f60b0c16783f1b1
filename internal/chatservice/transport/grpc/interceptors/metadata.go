// interceptors предоставляет набор gRPC-интерсепторов для клиентской стороны
// chat-service транспорта.
package interceptors

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// CredentialSource отдаёт актуальные на момент вызова учётные данные сессии.
// Оба значения могут быть пустыми (до выпуска токена / до привязки).
type CredentialSource interface {
	// Bearer — access-токен chat-service для Authorization-заголовка.
	Bearer() string
	// ChatUserID — идентификатор пользователя chat-service.
	ChatUserID() string
}

// ClientWithAuth — добавляет в исходящий gRPC-вызов заголовки:
//   - authorization: Bearer <token> (если токен выпущен),
//   - grpc-metadata-userid (если привязка установлена).
//
// Методы из skipAuth (выпуск security-токена) выполняются без
// Authorization-заголовка.
func ClientWithAuth(creds CredentialSource, skipAuth ...string) grpc.UnaryClientInterceptor {
	skip := make(map[string]struct{}, len(skipAuth))
	for _, m := range skipAuth {
		skip[m] = struct{}{}
	}

	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		var pairs []string

		if creds != nil {
			if _, ok := skip[method]; !ok {
				if tok := creds.Bearer(); tok != "" {
					pairs = append(pairs, "authorization", "Bearer "+tok)
				}
			}
			if uid := creds.ChatUserID(); uid != "" {
				pairs = append(pairs, "grpc-metadata-userid", uid)
			}
		}
		if len(pairs) > 0 {
			ctx = metadata.AppendToOutgoingContext(ctx, pairs...)
		}

		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
