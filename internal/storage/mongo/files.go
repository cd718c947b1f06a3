package mongo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fileRepo stores binary uploads in the GridFS chunked-blob bucket.
type fileRepo struct {
	client *Client
}

func NewFileRepo(client *Client) FileRepository {
	return &fileRepo{client: client}
}

func (r *fileRepo) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, err
	}
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(uploadsBucket))
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = bucket.SetWriteDeadline(deadline)
		_ = bucket.SetReadDeadline(deadline)
	}
	return bucket, nil
}

func (r *fileRepo) Upload(ctx context.Context, filename string, meta FileMetadata, data []byte) (primitive.ObjectID, error) {
	bucket, err := r.bucket(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, err := bucket.UploadFromStream(filename, bytes.NewReader(data),
		options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("upload file: %w", err)
	}
	return id, nil
}

func (r *fileRepo) Stat(ctx context.Context, id primitive.ObjectID) (*FileInfo, error) {
	bucket, err := r.bucket(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := bucket.Find(bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("find file: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return nil, ErrNotFound
	}

	var file gridfs.File
	if err := cursor.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode file: %w", err)
	}

	info := &FileInfo{ID: id, Name: file.Name, Length: file.Length}
	if file.Metadata != nil {
		if err := bson.Unmarshal(file.Metadata, &info.Metadata); err != nil {
			return nil, fmt.Errorf("decode file metadata: %w", err)
		}
	}
	return info, nil
}

func (r *fileRepo) Download(ctx context.Context, id primitive.ObjectID, w io.Writer) error {
	bucket, err := r.bucket(ctx)
	if err != nil {
		return err
	}

	if _, err := bucket.DownloadToStream(id, w); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("download file: %w", err)
	}
	return nil
}
