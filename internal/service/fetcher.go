package service

import (
	"context"

	"chatlink/internal/notify"
	"chatlink/internal/pkg/log"
)

// Fetcher адаптирует мессенджер-клиент к контракту роутера уведомлений:
// каждая дочитка при необходимости устанавливает соединение и переводит
// ошибки в Disposition.
type Fetcher struct {
	svc *Service
}

// NewFetcher возвращает реализацию notify.Fetcher поверх оркестратора.
func NewFetcher(svc *Service) *Fetcher {
	return &Fetcher{svc: svc}
}

// FetchData дочитывает сообщения топика начиная с seq.
func (f *Fetcher) FetchData(ctx context.Context, topic string, seq int, keepConnection bool) notify.Disposition {
	lg := log.WithComponent(log.From(ctx), "fetcher")

	if err := f.svc.msg.Connect(ctx); err != nil {
		lg.Warn("fetch_connect_failed", "topic", topic, "err", err.Error())
		return notify.DispositionFailed
	}

	if err := f.svc.msg.FetchData(ctx, topic, seq, keepConnection); err != nil {
		lg.Warn("fetch_data_failed", "topic", topic, "seq", seq, "err", err.Error())
		return notify.DispositionFailed
	}
	return notify.DispositionNewData
}

// FetchDesc перечитывает описание топика.
func (f *Fetcher) FetchDesc(ctx context.Context, topic string) notify.Disposition {
	lg := log.WithComponent(log.From(ctx), "fetcher")

	if err := f.svc.msg.Connect(ctx); err != nil {
		lg.Warn("fetch_connect_failed", "topic", topic, "err", err.Error())
		return notify.DispositionFailed
	}

	if err := f.svc.msg.FetchDesc(ctx, topic); err != nil {
		lg.Warn("fetch_desc_failed", "topic", topic, "err", err.Error())
		return notify.DispositionFailed
	}
	return notify.DispositionNewData
}

// UpdateRead продвигает отметку прочитанного до seq. Отметка отправляется
// fire-and-forget, новых данных не приносит.
func (f *Fetcher) UpdateRead(ctx context.Context, topic string, seq int) notify.Disposition {
	lg := log.WithComponent(log.From(ctx), "fetcher")

	if err := f.svc.msg.Connect(ctx); err != nil {
		lg.Warn("fetch_connect_failed", "topic", topic, "err", err.Error())
		return notify.DispositionFailed
	}

	if err := f.svc.msg.UpdateRead(ctx, topic, seq); err != nil {
		lg.Warn("update_read_failed", "topic", topic, "seq", seq, "err", err.Error())
		return notify.DispositionFailed
	}
	return notify.DispositionNoData
}
