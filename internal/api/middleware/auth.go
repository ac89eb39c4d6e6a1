package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// Заголовки, которые выставляет API-шлюз после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const msgInvalidRole = "некорректная роль пользователя"

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает пользователя из заголовков шлюза
// Без X-User-ID запрос отклоняется с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w)
			return
		}

		role, ok := domain.ParseRole(strings.TrimSpace(r.Header.Get(HeaderUserRole)))
		if !ok {
			handlers.RespondForbidden(w, msgInvalidRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{ID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return "", false
	}
	return actor.ID, true
}
