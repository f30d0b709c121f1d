package middleware

import (
	"context"
	"net/http"

	"ptp_tracker/internal/api/response"

	"github.com/google/uuid"
)

// OwnerHeader выставляется внешним слоем аутентификации
const OwnerHeader = "X-User-ID"

type ownerKey struct{}

// Owner требует валидный id владельца и кладет его в контекст
func Owner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(OwnerHeader))
		if err != nil || id == uuid.Nil {
			response.WriteError(w, http.StatusUnauthorized, "missing or invalid "+OwnerHeader)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), id)))
	})
}

func WithOwner(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey{}, id)
}

// OwnerID uuid.Nil, если middleware не применялся
func OwnerID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(ownerKey{}).(uuid.UUID)
	return id
}
