// Package session управляет анонимной сессией, которая живёт только в cookie.
// Значение не подписывается и не проверяется: любой непустой sessionId считается сессией.
package session

import (
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "sessionId"
	CookiePath = "/"
	MaxAge     = 7 * 24 * time.Hour

	// MaxAgeSeconds - значение атрибута Max-Age (604800).
	MaxAgeSeconds = int(MaxAge / time.Second)
)

// Resolve возвращает сессию-владельца для новой транзакции. Если клиент
// уже прислал cookie, она переиспользуется; иначе выпускается новый UUID
// и minted сообщает, что cookie нужно установить в ответе.
func Resolve(existing string) (id string, minted bool) {
	if existing != "" {
		return existing, false
	}
	return uuid.NewString(), true
}
