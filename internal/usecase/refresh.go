package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/auth"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/metrics"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

var refreshTracer = otel.Tracer("usecase/refresh")

type refreshHandler struct {
	tokens mongo.TokenRepository
	tm     *auth.TokenManager
	log    *logger.Logger
}

func NewRefreshHandler(tokens mongo.TokenRepository, tm *auth.TokenManager, log *logger.Logger) RefreshHandler {
	return &refreshHandler{tokens, tm, log.Named("refresh")}
}

// Handle mints a new access token against a persisted refresh record.
// The refresh token itself is not rotated: the record stays valid until
// its original expiry or an explicit logout.
func (h *refreshHandler) Handle(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	ctx, span := refreshTracer.Start(ctx, "Refresh")
	defer span.End()

	if req.RefreshToken == "" {
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "Refresh token is required")
	}

	subject, err := h.tm.Verify(req.RefreshToken, auth.RefreshToken)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.NewCoded(apperr.Forbidden, apperr.CodeInvalidToken, "Invalid refresh token")
	}

	userID, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.NewCoded(apperr.Forbidden, apperr.CodeInvalidToken, "Invalid refresh token")
	}

	record, err := h.tokens.Find(ctx, req.RefreshToken, userID)
	if errors.Is(err, mongo.ErrNotFound) {
		metrics.RefreshTotal.WithLabelValues("fail").Inc()
		return nil, apperr.New(apperr.Forbidden, "Refresh token not found")
	}
	if err != nil {
		h.log.WithContext(ctx).Error("refresh token lookup failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	// Lazy cleanup: an expired record is removed on first touch, so a retry
	// with the same token lands on "not found" rather than "expired" again.
	if time.Now().After(record.ExpiresAt) {
		if err := h.tokens.DeleteByID(ctx, record.ID); err != nil {
			h.log.WithContext(ctx).Warn("expired token cleanup failed", zap.Error(err))
		}
		metrics.RefreshTotal.WithLabelValues("expired").Inc()
		return nil, apperr.New(apperr.Forbidden, "Refresh token expired")
	}

	access, err := h.tm.IssueAccess(subject)
	if err != nil {
		h.log.WithContext(ctx).Error("generate access failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	metrics.IssuedTokens.WithLabelValues("access").Inc()

	return &RefreshResponse{AccessToken: access}, nil
}
