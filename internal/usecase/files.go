package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/metrics"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

var fileTracer = otel.Tracer("usecase/files")

type UploadResponse struct {
	FileID       string `json:"fileId"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType"`
}

// ServedFile describes a stored blob for the download path. Transport uses
// it for Content-Type, Content-Length and ETag before streaming.
type ServedFile struct {
	Filename    string
	ContentType string
	Length      int64
	UploadedAt  time.Time
}

// FileService manages chunked binary uploads in the blob bucket.
type FileService struct {
	files   mongo.FileRepository
	baseURL string
	maxSize int64
	log     *logger.Logger
}

func NewFileService(files mongo.FileRepository, baseURL string, maxSize int64, log *logger.Logger) *FileService {
	return &FileService{
		files:   files,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
		log:     log.Named("files"),
	}
}

// Upload stores an image blob and returns its public download location.
// The stored filename is generated; the client-supplied name survives only
// in metadata.
func (s *FileService) Upload(ctx context.Context, userID, originalName, contentType string, data []byte) (*UploadResponse, error) {
	ctx, span := fileTracer.Start(ctx, "UploadFile")
	defer span.End()

	if len(data) == 0 {
		metrics.UploadsTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "No image file provided")
	}
	if !strings.HasPrefix(contentType, "image/") {
		metrics.UploadsTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.New(apperr.Validation, "Only image files are allowed")
	}
	if int64(len(data)) > s.maxSize {
		metrics.UploadsTotal.WithLabelValues("too_large").Inc()
		return nil, apperr.New(apperr.Validation,
			fmt.Sprintf("File size must be less than %dMB", s.maxSize/(1024*1024)))
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	meta := mongo.FileMetadata{
		UserID:       owner,
		OriginalName: originalName,
		ContentType:  contentType,
		UploadedAt:   time.Now(),
	}

	id, err := s.files.Upload(ctx, filename, meta, data)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("fail").Inc()
		s.log.WithContext(ctx).Error("upload failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	return &UploadResponse{
		FileID:       id.Hex(),
		Filename:     filename,
		OriginalName: originalName,
		URL:          fmt.Sprintf("%s/api/uploads/file/%s", s.baseURL, id.Hex()),
		Size:         int64(len(data)),
		ContentType:  contentType,
	}, nil
}

// Serve writes the blob to w after describing it. Callers that only need
// headers (ETag probes) pass a nil writer.
func (s *FileService) Serve(ctx context.Context, fileID string, w io.Writer) (*ServedFile, error) {
	ctx, span := fileTracer.Start(ctx, "ServeFile")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "Invalid file ID format")
	}

	info, err := s.files.Stat(ctx, id)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "File not found")
	}
	if err != nil {
		s.log.WithContext(ctx).Error("file stat failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	served := &ServedFile{
		Filename:    info.Name,
		ContentType: info.Metadata.ContentType,
		Length:      info.Length,
		UploadedAt:  info.Metadata.UploadedAt,
	}
	if served.ContentType == "" {
		served.ContentType = "application/octet-stream"
	}

	if w != nil {
		if err := s.files.Download(ctx, id, w); err != nil {
			if errors.Is(err, mongo.ErrNotFound) {
				return nil, apperr.New(apperr.NotFound, "File not found")
			}
			s.log.WithContext(ctx).Error("file download failed", zap.Error(err))
			return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
		}
	}
	return served, nil
}
