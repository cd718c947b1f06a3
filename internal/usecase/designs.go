package usecase

import (
	"context"
	"errors"
	"strings"
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

var designTracer = otel.Tracer("usecase/designs")

// DesignView is the API projection of a stored design (owner id omitted).
type DesignView struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Data      map[string]interface{} `json:"data"`
	Thumbnail *string                `json:"thumbnail"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
	Version   int                    `json:"version"`
}

type CreateDesignRequest struct {
	Name      string                 `json:"name"`
	Data      map[string]interface{} `json:"data"`
	Thumbnail *string                `json:"thumbnail"`
}

type UpdateDesignRequest struct {
	Name string                 `json:"name"`
	Data map[string]interface{} `json:"data"`
	// Thumbnail may be set to nil explicitly; ThumbnailSet distinguishes
	// that from an absent field.
	Thumbnail    *string `json:"thumbnail"`
	ThumbnailSet bool    `json:"-"`
}

type DesignListResponse struct {
	Designs    []DesignView `json:"designs"`
	Pagination Pagination   `json:"pagination"`
}

type BulkDeleteResponse struct {
	DeletedCount   int64 `json:"deletedCount"`
	RequestedCount int   `json:"requestedCount"`
}

// DesignService implements per-user CRUD over design documents.
type DesignService struct {
	designs mongo.DesignRepository
	log     *logger.Logger
}

func NewDesignService(designs mongo.DesignRepository, log *logger.Logger) *DesignService {
	return &DesignService{designs: designs, log: log.Named("designs")}
}

func (s *DesignService) Create(ctx context.Context, userID string, req CreateDesignRequest) (*DesignView, error) {
	ctx, span := designTracer.Start(ctx, "CreateDesign")
	defer span.End()

	if strings.TrimSpace(req.Name) == "" || req.Data == nil {
		return nil, apperr.New(apperr.Validation, "Design name and data are required")
	}
	if !validate.DesignName(req.Name) {
		return nil, apperr.New(apperr.Validation, "Design name must be between 1-100 characters")
	}
	if !validate.DesignData(req.Data) {
		return nil, apperr.New(apperr.Validation, "Invalid design data format")
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	now := time.Now()
	design := &mongo.Design{
		UserID:    owner,
		Name:      strings.TrimSpace(req.Name),
		Data:      bson.M(req.Data),
		Thumbnail: req.Thumbnail,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
		IsPublic:  false,
	}

	id, err := s.designs.Insert(ctx, design)
	if errors.Is(err, mongo.ErrDuplicateKey) {
		return nil, apperr.New(apperr.Conflict, "A design with this name already exists")
	}
	if err != nil {
		s.log.WithContext(ctx).Error("create design failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	design.ID = id
	return designView(design), nil
}

func (s *DesignService) Get(ctx context.Context, userID, designID string) (*DesignView, error) {
	ctx, span := designTracer.Start(ctx, "GetDesign")
	defer span.End()

	owner, id, err := parseOwnedID(userID, designID, "Design ID")
	if err != nil {
		return nil, err
	}

	design, err := s.designs.FindByID(ctx, owner, id)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "Design not found or access denied")
	}
	if err != nil {
		s.log.WithContext(ctx).Error("get design failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return designView(design), nil
}

func (s *DesignService) List(ctx context.Context, userID, search string, page, limit int64) (*DesignListResponse, error) {
	ctx, span := designTracer.Start(ctx, "ListDesigns")
	defer span.End()

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	designs, total, err := s.designs.List(ctx, owner, strings.TrimSpace(search), page, limit)
	if err != nil {
		s.log.WithContext(ctx).Error("list designs failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	views := make([]DesignView, 0, len(designs))
	for i := range designs {
		views = append(views, *designView(&designs[i]))
	}
	return &DesignListResponse{
		Designs:    views,
		Pagination: paginate(page, limit, total),
	}, nil
}

func (s *DesignService) Update(ctx context.Context, userID, designID string, req UpdateDesignRequest) (*DesignView, error) {
	ctx, span := designTracer.Start(ctx, "UpdateDesign")
	defer span.End()

	owner, id, err := parseOwnedID(userID, designID, "Design ID")
	if err != nil {
		return nil, err
	}

	patch := mongo.DesignPatch{
		Name:         strings.TrimSpace(req.Name),
		Thumbnail:    req.Thumbnail,
		ThumbnailSet: req.ThumbnailSet,
	}
	if req.Data != nil {
		patch.Data = bson.M(req.Data)
	}

	design, err := s.designs.Update(ctx, owner, id, patch)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "Design not found or access denied")
	}
	if errors.Is(err, mongo.ErrDuplicateKey) {
		return nil, apperr.New(apperr.Conflict, "A design with this name already exists")
	}
	if err != nil {
		s.log.WithContext(ctx).Error("update design failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return designView(design), nil
}

func (s *DesignService) Delete(ctx context.Context, userID, designID string) error {
	ctx, span := designTracer.Start(ctx, "DeleteDesign")
	defer span.End()

	owner, id, err := parseOwnedID(userID, designID, "Design ID")
	if err != nil {
		return err
	}

	err = s.designs.Delete(ctx, owner, id)
	if errors.Is(err, mongo.ErrNotFound) {
		return apperr.New(apperr.NotFound, "Design not found or access denied")
	}
	if err != nil {
		s.log.WithContext(ctx).Error("delete design failed", zap.Error(err))
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return nil
}

func (s *DesignService) BulkDelete(ctx context.Context, userID string, designIDs []string) (*BulkDeleteResponse, error) {
	ctx, span := designTracer.Start(ctx, "BulkDeleteDesigns")
	defer span.End()

	if len(designIDs) == 0 {
		return nil, apperr.New(apperr.Validation, "Design IDs array is required")
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	ids, err := parseIDs(designIDs, "One or more invalid design ID formats")
	if err != nil {
		return nil, err
	}

	deleted, err := s.designs.DeleteMany(ctx, owner, ids)
	if err != nil {
		s.log.WithContext(ctx).Error("bulk delete designs failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return &BulkDeleteResponse{DeletedCount: deleted, RequestedCount: len(designIDs)}, nil
}

func designView(d *mongo.Design) *DesignView {
	return &DesignView{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Data:      map[string]interface{}(d.Data),
		Thumbnail: d.Thumbnail,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Version:   d.Version,
	}
}

func parseOwnedID(userID, resourceID, label string) (primitive.ObjectID, primitive.ObjectID, error) {
	if resourceID == "" {
		return primitive.NilObjectID, primitive.NilObjectID,
			apperr.New(apperr.Validation, label+" is required")
	}
	id, err := primitive.ObjectIDFromHex(resourceID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID,
			apperr.New(apperr.Validation, "Invalid "+lowerFirst(label)+" format")
	}
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID,
			apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return owner, id, nil
}

// lowerFirst downcases only the leading word so "Design ID" reads as
// "design ID" mid-sentence.
func lowerFirst(label string) string {
	if label == "" {
		return label
	}
	return strings.ToLower(label[:1]) + label[1:]
}

func parseIDs(raw []string, message string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, apperr.New(apperr.Validation, message)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
