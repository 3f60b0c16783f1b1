package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chatlink/internal/models"
)

// bearerSkew — запас до истечения access-токена, при котором токен
// считается протухшим и перевыпускается.
const bearerSkew = 30 * time.Second

// EnsureSecurityToken выпускает security-токен chat-service, если текущий
// отсутствует или истекает. Токен кэшируется в сессии и подставляется
// транспортом в Authorization-заголовок.
func (s *Service) EnsureSecurityToken(ctx context.Context) error {
	const op = "service.EnsureSecurityToken"

	if s.sess.Bearer() != "" {
		exp := s.sess.BearerExpires()
		if exp.IsZero() || s.now().Add(bearerSkew).Before(exp) {
			return nil
		}
	}

	if err := s.GenerateSecurityToken(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GenerateSecurityToken безусловно выпускает новый security-токен
// по клиентской паре из конфигурации и сохраняет его в сессии.
func (s *Service) GenerateSecurityToken(ctx context.Context) error {
	const op = "service.GenerateSecurityToken"

	bundle, err := s.clients.Security.GenerateNewToken(ctx, s.cfg.ClientID, s.cfg.ClientSecret)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.sess.SetBearer(bundle, bearerExpiry(bundle, s.now()))
	return nil
}

// bearerExpiry определяет срок действия access-токена: exp-клейм JWT, если
// токен разбирается, иначе expires_in от момента выпуска. Подпись не
// проверяется — токен выпущен доверенной стороной, нужен только срок.
func bearerExpiry(t models.TokenBundle, now time.Time) time.Time {
	if exp, ok := jwtExpiry(t.AccessToken); ok {
		return exp
	}
	if t.ExpiresIn > 0 {
		return now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return time.Time{}
}

func jwtExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
