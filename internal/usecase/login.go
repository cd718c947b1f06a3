package usecase

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/auth"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/metrics"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/validate"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/backoff"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

var loginTracer = otel.Tracer("usecase/login")

// invalidCredentials is shared by the unknown-email and wrong-password
// branches so the two responses stay byte-identical (no account enumeration).
func invalidCredentials() error {
	return apperr.New(apperr.Unauthorized, "Invalid credentials")
}

type loginHandler struct {
	users  mongo.UserRepository
	tokens mongo.TokenRepository
	tm     *auth.TokenManager
	log    *logger.Logger
}

func NewLoginHandler(users mongo.UserRepository, tokens mongo.TokenRepository, tm *auth.TokenManager, log *logger.Logger) LoginHandler {
	return &loginHandler{users, tokens, tm, log.Named("login")}
}

func (h *loginHandler) Handle(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	ctx, span := loginTracer.Start(ctx, "Login")
	defer span.End()

	if req.Email == "" || req.Password == "" {
		metrics.LoginTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "Email and password are required")
	}

	email := validate.NormalizeEmail(req.Email)
	if !validate.Email(email) {
		metrics.LoginTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "Invalid email format")
	}

	user, err := h.users.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNotFound) {
		metrics.LoginTotal.WithLabelValues("fail").Inc()
		return nil, invalidCredentials()
	}
	if err != nil {
		h.log.WithContext(ctx).Error("user lookup failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	if !auth.VerifyPassword(req.Password, user.Password) {
		metrics.LoginTotal.WithLabelValues("fail").Inc()
		return nil, invalidCredentials()
	}

	userID := user.ID.Hex()
	access, err := h.tm.IssueAccess(userID)
	if err != nil {
		h.log.WithContext(ctx).Error("generate access failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	refresh, err := h.tm.IssueRefresh(userID, req.RememberMe)
	if err != nil {
		h.log.WithContext(ctx).Error("generate refresh failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	now := time.Now()
	err = backoff.Execute(ctx, backoff.Config{MaxElapsedTime: 2 * time.Second}, h.log, func(ctx context.Context) error {
		return h.tokens.Insert(ctx, &mongo.RefreshToken{
			UserID:    user.ID,
			Token:     refresh,
			CreatedAt: now,
			ExpiresAt: now.Add(h.tm.RefreshTTL(req.RememberMe)),
		})
	})
	if err != nil {
		h.log.WithContext(ctx).Error("store refresh failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	if err := h.users.TouchLastLogin(ctx, user.ID); err != nil {
		// Non-fatal: the session is already established.
		h.log.WithContext(ctx).Warn("touch last login failed", zap.Error(err))
	}

	metrics.LoginTotal.WithLabelValues("ok").Inc()
	metrics.IssuedTokens.WithLabelValues("access").Inc()
	metrics.IssuedTokens.WithLabelValues("refresh").Inc()

	return &LoginResponse{
		User: AuthUser{
			ID:        userID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		AccessToken:  access,
		RefreshToken: refresh,
		RememberMe:   req.RememberMe,
	}, nil
}
