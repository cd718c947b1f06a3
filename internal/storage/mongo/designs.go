package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type designRepo struct {
	client *Client
}

func NewDesignRepo(client *Client) DesignRepository {
	return &designRepo{client: client}
}

func (r *designRepo) Insert(ctx context.Context, design *Design) (primitive.ObjectID, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := db.Collection(designsCollection).InsertOne(ctx, design)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicateKey
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert design: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *designRepo) FindByID(ctx context.Context, userID, id primitive.ObjectID) (*Design, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, err
	}

	var design Design
	err = db.Collection(designsCollection).FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&design)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find design: %w", err)
	}
	return &design, nil
}

func (r *designRepo) List(ctx context.Context, userID primitive.ObjectID, search string, page, limit int64) ([]Design, int64, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := bson.M{"userId": userID}
	if search != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: search, Options: "i"}}
	}

	skip := (page - 1) * limit
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := db.Collection(designsCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list designs: %w", err)
	}
	defer cursor.Close(ctx)

	var designs []Design
	if err := cursor.All(ctx, &designs); err != nil {
		return nil, 0, fmt.Errorf("decode designs: %w", err)
	}

	total, err := db.Collection(designsCollection).CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count designs: %w", err)
	}
	return designs, total, nil
}

// Update bumps version and updatedAt on every successful write and applies
// only the fields present in the patch.
func (r *designRepo) Update(ctx context.Context, userID, id primitive.ObjectID, patch DesignPatch) (*Design, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != "" {
		set["name"] = patch.Name
	}
	if patch.Data != nil {
		set["data"] = patch.Data
	}
	if patch.ThumbnailSet {
		set["thumbnail"] = patch.Thumbnail
	}

	var updated Design
	err = db.Collection(designsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateKey
	}
	if err != nil {
		return nil, fmt.Errorf("update design: %w", err)
	}
	return &updated, nil
}

func (r *designRepo) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	db, err := r.client.Database(ctx)
	if err != nil {
		return err
	}

	res, err := db.Collection(designsCollection).DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *designRepo) DeleteMany(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return 0, err
	}

	res, err := db.Collection(designsCollection).DeleteMany(ctx, bson.M{
		"_id":    bson.M{"$in": ids},
		"userId": userID,
	})
	if err != nil {
		return 0, fmt.Errorf("bulk delete designs: %w", err)
	}
	return res.DeletedCount, nil
}
