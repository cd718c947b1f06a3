package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/auth"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/ctxkeys"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

// Guard authenticates protected routes. It verifies the bearer token and
// confirms the subject still exists, so a deleted account is cut off even
// while its access token is formally valid.
type Guard struct {
	tm    *auth.TokenManager
	users mongo.UserRepository
	rp    *responder
	log   *logger.Logger
}

func NewGuard(tm *auth.TokenManager, users mongo.UserRepository, rp *responder, log *logger.Logger) *Guard {
	return &Guard{tm: tm, users: users, rp: rp, log: log.Named("guard")}
}

func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			g.rp.Error(w, apperr.NewCoded(apperr.Unauthorized, apperr.CodeNoToken, "Access token required"))
			return
		}

		subject, err := g.tm.Verify(token, auth.AccessToken)
		if err != nil {
			g.rp.Error(w, apperr.NewCoded(apperr.Forbidden, apperr.CodeInvalidToken, "Invalid or expired token"))
			return
		}

		id, err := primitive.ObjectIDFromHex(subject)
		if err != nil {
			g.rp.Error(w, apperr.NewCoded(apperr.Forbidden, apperr.CodeInvalidToken, "Invalid or expired token"))
			return
		}

		user, err := g.users.FindByID(r.Context(), id)
		if errors.Is(err, mongo.ErrNotFound) {
			g.rp.Error(w, apperr.NewCoded(apperr.Forbidden, apperr.CodeUserNotFound, "User not found"))
			return
		}
		if err != nil {
			// A store failure must not read as a revoked session.
			g.log.WithContext(r.Context()).Error("auth user lookup failed", zap.Error(err))
			g.rp.Error(w, &apperr.Error{
				Kind:    apperr.Internal,
				Code:    apperr.CodeAuthDBError,
				Message: "Authentication error",
				Err:     err,
			})
			return
		}

		ctx := context.WithValue(r.Context(), ctxkeys.UserIDKey, subject)
		ctx = context.WithValue(ctx, ctxkeys.UserEmailKey, user.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxkeys.UserIDKey).(string)
	return id
}
