// Package mongo adapts the document store: users, refresh tokens, designs,
// saved images and the GridFS-backed upload bucket.
package mongo

import (
	"context"
	"errors"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for stable mapping in the usecase layer.
var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey indicates a unique-index violation. For concurrent
	// inserts with the same key exactly one writer observes it.
	ErrDuplicateKey = errors.New("duplicate key")
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"` // bcrypt digest, never plaintext
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
	LastLogin *time.Time         `bson:"lastLogin,omitempty"`
}

type RefreshToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Token     string             `bson:"token"`
	CreatedAt time.Time          `bson:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt"`
}

type Design struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Name      string             `bson:"name"`
	Data      bson.M             `bson:"data"`
	Thumbnail *string            `bson:"thumbnail"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
	Version   int                `bson:"version"`
	IsPublic  bool               `bson:"isPublic"`
}

// DesignPatch carries the mutable design fields. ThumbnailSet distinguishes
// "clear thumbnail" from "leave unchanged".
type DesignPatch struct {
	Name         string
	Data         bson.M
	Thumbnail    *string
	ThumbnailSet bool
}

type Image struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	ImageData string             `bson:"imageData"`
	ImageType string             `bson:"imageType"`
	Metadata  bson.M             `bson:"metadata"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// FileMetadata is stored alongside every GridFS object.
type FileMetadata struct {
	UserID       primitive.ObjectID `bson:"userId"`
	OriginalName string             `bson:"originalName"`
	ContentType  string             `bson:"contentType"`
	UploadedAt   time.Time          `bson:"uploadedAt"`
}

// FileInfo describes a stored GridFS object.
type FileInfo struct {
	ID       primitive.ObjectID
	Name     string
	Length   int64
	Metadata FileMetadata
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	Insert(ctx context.Context, user *User) (primitive.ObjectID, error)
	TouchLastLogin(ctx context.Context, id primitive.ObjectID) error
}

type TokenRepository interface {
	Insert(ctx context.Context, token *RefreshToken) error
	Find(ctx context.Context, token string, userID primitive.ObjectID) (*RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type DesignRepository interface {
	Insert(ctx context.Context, design *Design) (primitive.ObjectID, error)
	FindByID(ctx context.Context, userID, id primitive.ObjectID) (*Design, error)
	List(ctx context.Context, userID primitive.ObjectID, search string, page, limit int64) ([]Design, int64, error)
	Update(ctx context.Context, userID, id primitive.ObjectID, patch DesignPatch) (*Design, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error)
}

type ImageRepository interface {
	Insert(ctx context.Context, image *Image) (primitive.ObjectID, error)
	FindByID(ctx context.Context, userID, id primitive.ObjectID) (*Image, error)
	List(ctx context.Context, userID primitive.ObjectID, imageType string, page, limit int64) ([]Image, int64, error)
	DeleteMany(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error)
}

type FileRepository interface {
	Upload(ctx context.Context, filename string, meta FileMetadata, data []byte) (primitive.ObjectID, error)
	Stat(ctx context.Context, id primitive.ObjectID) (*FileInfo, error)
	Download(ctx context.Context, id primitive.ObjectID, w io.Writer) error
}
