package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

var profileTracer = otel.Tracer("usecase/profile")

type profileHandler struct {
	users mongo.UserRepository
	log   *logger.Logger
}

func NewProfileHandler(users mongo.UserRepository, log *logger.Logger) ProfileHandler {
	return &profileHandler{users, log.Named("profile")}
}

func (h *profileHandler) Handle(ctx context.Context, userID string) (*ProfileResponse, error) {
	ctx, span := profileTracer.Start(ctx, "Profile")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}

	user, err := h.users.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		h.log.WithContext(ctx).Error("profile lookup failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	return &ProfileResponse{
		User: ProfileUser{
			ID:        user.ID.Hex(),
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			LastLogin: user.LastLogin,
		},
	}, nil
}
