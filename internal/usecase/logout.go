package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

var logoutTracer = otel.Tracer("usecase/logout")

type logoutHandler struct {
	tokens mongo.TokenRepository
	log    *logger.Logger
}

func NewLogoutHandler(tokens mongo.TokenRepository, log *logger.Logger) LogoutHandler {
	return &logoutHandler{tokens, log.Named("logout")}
}

// Handle revokes the refresh record. Deleting an unknown token still
// succeeds: logout is idempotent.
func (h *logoutHandler) Handle(ctx context.Context, req LogoutRequest) error {
	ctx, span := logoutTracer.Start(ctx, "Logout")
	defer span.End()

	if req.RefreshToken == "" {
		return apperr.New(apperr.Validation, "Refresh token is required")
	}

	if err := h.tokens.Delete(ctx, req.RefreshToken); err != nil {
		h.log.WithContext(ctx).Error("delete refresh token failed", zap.Error(err))
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return nil
}
