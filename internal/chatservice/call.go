package chatservice

import (
	"context"
	"errors"
	"sync"
)

// caller — guard "не более одного незавершённого вызова" на экземпляр клиента.
// Держит ручку незавершённого вызова (cancel его контекста) и последний
// отправленный запрос для Retry.
//
// Контракт:
//  1. call при незавершённом вызове немедленно возвращает ErrAlreadyInProgress,
//     не затрагивая результат первого вызова;
//  2. ручка очищается до возврата результата вызывающему — независимо от
//     успеха, ошибки или отмены;
//  3. stop отменяет контекст незавершённого вызова, не доставляя отдельного
//     результата: заблокированный вызывающий увидит context.Canceled;
//  4. retry повторяет последний сохранённый запрос, только если сейчас ничего
//     не выполняется, и сообщает, стартовал ли повтор.
type caller[Req, Resp any] struct {
	send func(ctx context.Context, req Req) (Resp, error)

	mu     sync.Mutex
	cancel context.CancelFunc // nil — вызовов в полёте нет
	latest *Req
}

func newCaller[Req, Resp any](send func(ctx context.Context, req Req) (Resp, error)) *caller[Req, Resp] {
	return &caller[Req, Resp]{send: send}
}

// call выполняет запрос под guard-ом и возвращает результат транспорта
// без изменений.
func (c *caller[Req, Resp]) call(ctx context.Context, req Req) (Resp, error) {
	var zero Resp

	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return zero, ErrAlreadyInProgress
	}

	cctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.latest = &req
	c.mu.Unlock()

	resp, err := c.send(cctx, req)

	// Ручка очищается раньше, чем результат уйдёт вызывающему.
	c.mu.Lock()
	c.cancel = nil
	c.mu.Unlock()
	cancel()

	return resp, err
}

// stop отменяет незавершённый вызов, если он есть. Без вызова в полёте — no-op.
func (c *caller[Req, Resp]) stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// retry повторно отправляет последний сохранённый запрос.
// Возвращает false без ошибки, когда повторять нечего (запросов ещё не было)
// или когда предыдущий вызов всё ещё выполняется.
func (c *caller[Req, Resp]) retry(ctx context.Context) (Resp, bool, error) {
	var zero Resp

	c.mu.Lock()
	if c.cancel != nil || c.latest == nil {
		c.mu.Unlock()
		return zero, false, nil
	}
	req := *c.latest
	c.mu.Unlock()

	resp, err := c.call(ctx, req)
	if errors.Is(err, ErrAlreadyInProgress) {
		// Конкурентный вызов успел занять guard между проверкой и стартом.
		return zero, false, nil
	}

	return resp, true, err
}
