// Package store defines the persistence interfaces for the application's
// document collections and their MongoDB implementations.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"merchly/shop-api/internal/model"
)

// UserStore persists account documents. Lookups return (nil, nil) when no
// document matches; mutations follow the load-mutate-save discipline the
// handlers use, so concurrent writes to the same account are last-write-wins.
type UserStore interface {
	// ExistsByEmailOrUsername reports whether any account holds the given
	// email or username. Empty arguments are skipped.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByConfirmationToken matches the stored confirmation token hash
	// with an expiry still in the future.
	FindByConfirmationToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	// FindByResetToken matches the stored reset token hash with an expiry
	// still in the future.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	Insert(ctx context.Context, u *model.User) error
	Save(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductStore reads the catalog collection.
type ProductStore interface {
	FindAll(ctx context.Context, page, limit int64) ([]model.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
}
