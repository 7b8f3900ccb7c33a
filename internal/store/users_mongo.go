package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"merchly/shop-api/internal/model"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(ctx context.Context, db *mongo.Database) (*MongoUserStore, error) {
	coll := db.Collection("users")

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user indexes, %w", err)
	}

	return &MongoUserStore{coll: coll}, nil
}

func (s *MongoUserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var or []bson.M
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if len(or) == 0 {
		return false, nil
	}

	n, err := s.coll.CountDocuments(ctx, bson.M{"$or": or})
	if err != nil {
		return false, fmt.Errorf("failed to check for existing user, %w", err)
	}

	return n > 0, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) FindByConfirmationToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	return s.findOne(ctx, bson.M{
		"email_confirmation_token_hash": tokenHash,
		"email_confirmation_expires":    bson.M{"$gt": now},
	})
}

func (s *MongoUserStore) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	return s.findOne(ctx, bson.M{
		"reset_token_hash": tokenHash,
		"reset_expires":    bson.M{"$gt": now},
	})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	err := s.coll.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user, %w", err)
	}

	return &u, nil
}

func (s *MongoUserStore) Insert(ctx context.Context, u *model.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}

	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("failed to insert user, %w", err)
	}

	return nil
}

func (s *MongoUserStore) Save(ctx context.Context, u *model.User) error {
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u); err != nil {
		return fmt.Errorf("failed to save user, %w", err)
	}

	return nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete user, %w", err)
	}

	return nil
}
