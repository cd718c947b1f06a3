package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	client *Client
}

func NewUserRepo(client *Client) UserRepository {
	return &userRepo{client: client}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, err
	}

	var user User
	err = db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return nil, err
	}

	var user User
	err = db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Insert relies on the unique email index: of two concurrent signups with
// the same email exactly one succeeds, the other gets ErrDuplicateKey.
func (r *userRepo) Insert(ctx context.Context, user *User) (primitive.ObjectID, error) {
	db, err := r.client.Database(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := db.Collection(usersCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicateKey
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	db, err := r.client.Database(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLogin": now, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}
