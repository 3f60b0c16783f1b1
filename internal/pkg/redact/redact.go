// redact — утилиты безопасного редактирования чувствительных данных для логов
// (телефон, push-токены, auth-токены). Цель — исключить утечки секретов,
// сохранив полезный для отладки контекст (хвост номера, длина токена).
package redact

import "strconv"

// Phone маскирует номер телефона, оставляя последние четыре символа.
//
// Правила:
//   - длина ≤ 4 — возвращается "***";
//   - иначе "***" + последние четыре символа (по рунам).
//
// Примеры:
//
//	"081234567890" -> "***7890"
//	"0812"         -> "***"
func Phone(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return "***"
	}

	return "***" + string(r[len(r)-4:])
}

// Token возвращает заглушку для токена с указанием длины —
// по длине видно, пришёл ли пустой токен, не раскрывая содержимого.
func Token(s string) string {
	return "[REDACTED_TOKEN len=" + strconv.Itoa(len(s)) + "]"
}
