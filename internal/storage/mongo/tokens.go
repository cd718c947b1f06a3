package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type tokenRepo struct {
	client *Client
}

func NewTokenRepo(client *Client) TokenRepository {
	return &tokenRepo{client: client}
}

func (r *tokenRepo) Insert(ctx context.Context, token *RefreshToken) error {
	db, err := r.client.Database(ctx)
	if err != nil {
		return err
	}

	if _, err := db.Collection(tokensCollection).InsertOne(ctx, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// Find is always scoped by the owning user: a token string alone never
// resolves across users.
func (r *tokenRepo) Find(ctx context.Context, token string, userID primitive.ObjectID) (*RefreshToken, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, err
	}

	var rec RefreshToken
	err = db.Collection(tokensCollection).FindOne(ctx, bson.M{"token": token, "userId": userID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &rec, nil
}

// Delete is idempotent: removing an unknown token is not an error.
func (r *tokenRepo) Delete(ctx context.Context, token string) error {
	db, err := r.client.Database(ctx)
	if err != nil {
		return err
	}

	if _, err := db.Collection(tokensCollection).DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *tokenRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	db, err := r.client.Database(ctx)
	if err != nil {
		return err
	}

	if _, err := db.Collection(tokensCollection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete refresh token by id: %w", err)
	}
	return nil
}
