package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/validate"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

var imageTracer = otel.Tracer("usecase/images")

// ImageView is the list projection of a saved image. ImageData is omitted
// from listings and only populated on single-image fetches.
type ImageView struct {
	ID        string                 `json:"id"`
	ImageType string                 `json:"imageType"`
	ImageData string                 `json:"imageData,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type SaveImageRequest struct {
	ImageData string                 `json:"imageData"`
	ImageType string                 `json:"imageType"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type ImageListResponse struct {
	Images     []ImageView `json:"images"`
	Pagination Pagination  `json:"pagination"`
}

// ImageService stores user-saved data-URL images (logos, rendered mockups).
type ImageService struct {
	images mongo.ImageRepository
	log    *logger.Logger
}

func NewImageService(images mongo.ImageRepository, log *logger.Logger) *ImageService {
	return &ImageService{images: images, log: log.Named("images")}
}

func (s *ImageService) Save(ctx context.Context, userID string, req SaveImageRequest) (*ImageView, error) {
	ctx, span := imageTracer.Start(ctx, "SaveImage")
	defer span.End()

	if req.ImageData == "" || req.ImageType == "" {
		return nil, apperr.New(apperr.Validation, "Image data and type are required")
	}
	if !validate.ImageType(req.ImageType) {
		return nil, apperr.New(apperr.Validation, "Invalid image type. Must be 'logo' or 'mockup'")
	}
	if !validate.ImageData(req.ImageData) {
		return nil, apperr.New(apperr.Validation, "Invalid image data format")
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	now := time.Now()
	image := &mongo.Image{
		UserID:    owner,
		ImageData: req.ImageData,
		ImageType: req.ImageType,
		Metadata:  bson.M(req.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.images.Insert(ctx, image)
	if err != nil {
		s.log.WithContext(ctx).Error("save image failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	image.ID = id
	return imageView(image, true), nil
}

func (s *ImageService) Get(ctx context.Context, userID, imageID string) (*ImageView, error) {
	ctx, span := imageTracer.Start(ctx, "GetImage")
	defer span.End()

	owner, id, err := parseOwnedID(userID, imageID, "Image ID")
	if err != nil {
		return nil, err
	}

	image, err := s.images.FindByID(ctx, owner, id)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "Image not found")
	}
	if err != nil {
		s.log.WithContext(ctx).Error("get image failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return imageView(image, true), nil
}

func (s *ImageService) List(ctx context.Context, userID, imageType string, page, limit int64) (*ImageListResponse, error) {
	ctx, span := imageTracer.Start(ctx, "ListImages")
	defer span.End()

	if imageType != "" && !validate.ImageType(imageType) {
		return nil, apperr.New(apperr.Validation, "Invalid image type. Must be 'logo' or 'mockup'")
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	images, total, err := s.images.List(ctx, owner, imageType, page, limit)
	if err != nil {
		s.log.WithContext(ctx).Error("list images failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	views := make([]ImageView, 0, len(images))
	for i := range images {
		views = append(views, *imageView(&images[i], false))
	}
	return &ImageListResponse{
		Images:     views,
		Pagination: paginate(page, limit, total),
	}, nil
}

func (s *ImageService) BulkDelete(ctx context.Context, userID string, imageIDs []string) (*BulkDeleteResponse, error) {
	ctx, span := imageTracer.Start(ctx, "BulkDeleteImages")
	defer span.End()

	if len(imageIDs) == 0 {
		return nil, apperr.New(apperr.Validation, "Image IDs array is required")
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	ids, err := parseIDs(imageIDs, "Some image IDs are invalid")
	if err != nil {
		return nil, err
	}

	deleted, err := s.images.DeleteMany(ctx, owner, ids)
	if err != nil {
		s.log.WithContext(ctx).Error("bulk delete images failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return &BulkDeleteResponse{DeletedCount: deleted, RequestedCount: len(imageIDs)}, nil
}

func imageView(img *mongo.Image, withData bool) *ImageView {
	v := &ImageView{
		ID:        img.ID.Hex(),
		ImageType: img.ImageType,
		Metadata:  map[string]interface{}(img.Metadata),
		CreatedAt: img.CreatedAt,
		UpdatedAt: img.UpdatedAt,
	}
	if withData {
		v.ImageData = img.ImageData
	}
	return v
}
