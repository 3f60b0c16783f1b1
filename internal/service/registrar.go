package service

import (
	"context"

	"chatlink/internal/models"
	"chatlink/internal/pkg/log"
	"chatlink/internal/pkg/redact"
)

// maxTopicNoteLength — предел длины поля note публичной карточки me-топика.
const maxTopicNoteLength = 360

// SubscribeToken отправляет привязку push-токена устройства к текущей
// сессии и при успехе дублирует идентификатор push-клиента в публичную
// карточку me-топика.
//
// Прекондиция: сессия аутентифицирована; для анонимной сессии вызов —
// no-op. Регистрация токена — best-effort: сбои логируются и не влияют
// на жизненный цикл сессии, nil возвращается в любом случае, кроме
// отсутствия прекондиции у вызывающего (ошибок метод не возвращает вовсе).
func (s *Service) SubscribeToken(ctx context.Context, pushClientID, token string) {
	lg := log.WithComponent(log.From(ctx), "registrar")

	uid := s.sess.UserID()
	if uid == "" {
		lg.Debug("subscribe_skipped_anonymous")
		return
	}
	if token == "" {
		lg.Debug("subscribe_skipped_empty_token")
		return
	}

	binding := models.DeviceTokenBinding{
		RecipientID: uid,
		ClientID:    s.cfg.NotifClientID,
		Token:       token,
		Platform:    s.platform,
		Pipeline:    models.PipelineFor(s.platform),
	}

	out, err := s.clients.Devices.SaveToken(ctx, binding)
	if err != nil {
		lg.Error("save_device_token_failed",
			"token", redact.Token(token), "err", err.Error())
		return
	}
	if out != models.OutcomeSuccess {
		lg.Warn("save_device_token_rejected", "state", out.String())
		return
	}

	lg.Info("device_token_saved", "token", redact.Token(token))
	s.setNotifClientID(ctx, pushClientID)
}

// setNotifClientID записывает идентификатор push-клиента в note-поле
// публичной карточки me-топика, если он отличается от текущего значения.
func (s *Service) setNotifClientID(ctx context.Context, pushClientID string) {
	lg := log.WithComponent(log.From(ctx), "registrar")

	note := truncateRunes(pushClientID, maxTopicNoteLength)

	current, err := s.msg.MeNote(ctx)
	if err != nil {
		lg.Warn("me_note_read_failed", "err", err.Error())
		return
	}
	if current == note {
		return
	}

	if err := s.msg.SetMeNote(ctx, note); err != nil {
		lg.Warn("me_note_write_failed", "err", err.Error())
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
