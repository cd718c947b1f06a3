package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type imageRepo struct {
	client *Client
}

func NewImageRepo(client *Client) ImageRepository {
	return &imageRepo{client: client}
}

func (r *imageRepo) Insert(ctx context.Context, image *Image) (primitive.ObjectID, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := db.Collection(imagesCollection).InsertOne(ctx, image)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert image: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *imageRepo) FindByID(ctx context.Context, userID, id primitive.ObjectID) (*Image, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, err
	}

	var image Image
	err = db.Collection(imagesCollection).FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&image)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find image: %w", err)
	}
	return &image, nil
}

// List excludes the inline payload: imageData can be megabytes per record.
func (r *imageRepo) List(ctx context.Context, userID primitive.ObjectID, imageType string, page, limit int64) ([]Image, int64, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := bson.M{"userId": userID}
	if imageType != "" {
		query["imageType"] = imageType
	}

	skip := (page - 1) * limit
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{"imageData": 0})

	cursor, err := db.Collection(imagesCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list images: %w", err)
	}
	defer cursor.Close(ctx)

	var images []Image
	if err := cursor.All(ctx, &images); err != nil {
		return nil, 0, fmt.Errorf("decode images: %w", err)
	}

	total, err := db.Collection(imagesCollection).CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count images: %w", err)
	}
	return images, total, nil
}

func (r *imageRepo) DeleteMany(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return 0, err
	}

	res, err := db.Collection(imagesCollection).DeleteMany(ctx, bson.M{
		"_id":    bson.M{"$in": ids},
		"userId": userID,
	})
	if err != nil {
		return 0, fmt.Errorf("bulk delete images: %w", err)
	}
	return res.DeletedCount, nil
}
