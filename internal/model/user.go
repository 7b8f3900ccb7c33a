package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is one account document. Credential material (password hash, token
// hashes, session list) is never serialized to clients.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	IsEmailConfirmed           bool       `bson:"is_email_confirmed" json:"isEmailConfirmed"`
	EmailConfirmationTokenHash string     `bson:"email_confirmation_token_hash,omitempty" json:"-"`
	EmailConfirmationExpires   *time.Time `bson:"email_confirmation_expires,omitempty" json:"-"`

	ResetTokenHash string     `bson:"reset_token_hash,omitempty" json:"-"`
	ResetExpires   *time.Time `bson:"reset_expires,omitempty" json:"-"`

	Sessions []SessionToken `bson:"sessions" json:"-"`

	Cart      []CartItem `bson:"cart" json:"cart"`
	Wishlists []Wishlist `bson:"wishlists" json:"wishlists"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// SessionToken is one live login session, tracked by the SHA-256 hex of the
// signed token string.
type SessionToken struct {
	TokenHash string `bson:"token_hash" json:"-"`
}

type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Product   Product            `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type Wishlist struct {
	Name     string         `bson:"name" json:"name"`
	Products []WishlistItem `bson:"products" json:"products"`
}

type WishlistItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Product   Product            `bson:"product" json:"product"`
}

// FindCartItem returns the index of the cart line holding productID, or -1.
func (u *User) FindCartItem(productID primitive.ObjectID) int {
	for i, item := range u.Cart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// FindWishlist returns the index of the wishlist with the given name, or -1.
func (u *User) FindWishlist(name string) int {
	for i, wl := range u.Wishlists {
		if wl.Name == name {
			return i
		}
	}
	return -1
}

// HasSession reports whether the given token hash is in the session set.
func (u *User) HasSession(tokenHash string) bool {
	for _, s := range u.Sessions {
		if s.TokenHash == tokenHash {
			return true
		}
	}
	return false
}

// RemoveSession drops the session entry matching tokenHash. Removing an
// absent entry is a no-op.
func (u *User) RemoveSession(tokenHash string) {
	kept := u.Sessions[:0]
	for _, s := range u.Sessions {
		if s.TokenHash != tokenHash {
			kept = append(kept, s)
		}
	}
	u.Sessions = kept
}
