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

var signupTracer = otel.Tracer("usecase/signup")

type signupHandler struct {
	users  mongo.UserRepository
	tokens mongo.TokenRepository
	tm     *auth.TokenManager
	log    *logger.Logger
}

func NewSignupHandler(users mongo.UserRepository, tokens mongo.TokenRepository, tm *auth.TokenManager, log *logger.Logger) SignupHandler {
	return &signupHandler{users, tokens, tm, log.Named("signup")}
}

func (h *signupHandler) Handle(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	ctx, span := signupTracer.Start(ctx, "Signup")
	defer span.End()

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		metrics.SignupTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "All fields are required")
	}

	firstName := validate.Sanitize(req.FirstName)
	lastName := validate.Sanitize(req.LastName)
	email := validate.NormalizeEmail(req.Email)

	if !validate.Email(email) {
		metrics.SignupTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "Invalid email format")
	}
	if !validate.Name(firstName) || !validate.Name(lastName) {
		metrics.SignupTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "Names must be between 2-50 characters")
	}
	if !validate.Password(req.Password) {
		metrics.SignupTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "Password must be at least 8 characters with uppercase, lowercase, and number")
	}

	// Early duplicate check for a friendly 409; the unique index remains the
	// authoritative guard for concurrent signups.
	if _, err := h.users.FindByEmail(ctx, email); err == nil {
		metrics.SignupTotal.WithLabelValues("conflict").Inc()
		return nil, apperr.New(apperr.Conflict, "User already exists with this email")
	} else if !errors.Is(err, mongo.ErrNotFound) {
		h.log.WithContext(ctx).Error("email lookup failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.WithContext(ctx).Error("hash password failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	now := time.Now()
	userID, err := h.users.Insert(ctx, &mongo.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  digest,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, mongo.ErrDuplicateKey) {
		metrics.SignupTotal.WithLabelValues("conflict").Inc()
		return nil, apperr.New(apperr.Conflict, "User already exists with this email")
	}
	if err != nil {
		h.log.WithContext(ctx).Error("create user failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	access, err := h.tm.IssueAccess(userID.Hex())
	if err != nil {
		h.log.WithContext(ctx).Error("generate access failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	refresh, err := h.tm.IssueRefresh(userID.Hex(), false)
	if err != nil {
		h.log.WithContext(ctx).Error("generate refresh failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	err = backoff.Execute(ctx, backoff.Config{MaxElapsedTime: 2 * time.Second}, h.log, func(ctx context.Context) error {
		return h.tokens.Insert(ctx, &mongo.RefreshToken{
			UserID:    userID,
			Token:     refresh,
			CreatedAt: now,
			ExpiresAt: now.Add(h.tm.RefreshTTL(false)),
		})
	})
	if err != nil {
		h.log.WithContext(ctx).Error("store refresh failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	metrics.SignupTotal.WithLabelValues("ok").Inc()
	metrics.IssuedTokens.WithLabelValues("access").Inc()
	metrics.IssuedTokens.WithLabelValues("refresh").Inc()

	return &SignupResponse{
		User: AuthUser{
			ID:        userID.Hex(),
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
		},
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
