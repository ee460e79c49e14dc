package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/de-tools/stat-atlas/pkg/handlers/response"
	"github.com/rs/zerolog"
)

// UserCookie carries the caller's numeric id. It is trusted as-is.
const UserCookie = "user_id"

type userKey struct{}

func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userKey{}).(int64)
	return id, ok
}

// Identity rejects requests without a usable user_id cookie: 401 when it
// is absent, 400 when it is not an integer.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(UserCookie)
		if err != nil || cookie.Value == "" {
			response.WriteDetail(w, r, http.StatusUnauthorized, "user is not authenticated")
			return
		}

		id, err := strconv.ParseInt(cookie.Value, 10, 64)
		if err != nil {
			response.WriteDetail(w, r, http.StatusBadRequest, "invalid user_id cookie value")
			return
		}

		ctx := WithUserID(r.Context(), id)
		logger := zerolog.Ctx(ctx).With().Int64("user_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(ctx)))
	})
}
