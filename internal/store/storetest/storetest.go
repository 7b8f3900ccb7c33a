// Package storetest provides in-memory store implementations for tests.
package storetest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"merchly/shop-api/internal/model"
)

// Users is an in-memory store.UserStore. Documents are copied in and out so
// tests observe only what was saved, like with a real collection.
type Users struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]model.User

	// Err, when set, is returned by every call. Lets tests exercise the
	// generic 500 path.
	Err error
}

func NewUsers() *Users {
	return &Users{users: make(map[primitive.ObjectID]model.User)}
}

func (s *Users) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Users) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.ID == id })
}

func (s *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.Email == email })
}

func (s *Users) FindByConfirmationToken(_ context.Context, tokenHash string, now time.Time) (*model.User, error) {
	return s.find(func(u model.User) bool {
		return u.EmailConfirmationTokenHash == tokenHash &&
			u.EmailConfirmationExpires != nil && u.EmailConfirmationExpires.After(now)
	})
}

func (s *Users) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*model.User, error) {
	return s.find(func(u model.User) bool {
		return u.ResetTokenHash == tokenHash &&
			u.ResetExpires != nil && u.ResetExpires.After(now)
	})
}

func (s *Users) Insert(_ context.Context, u *model.User) error {
	if s.Err != nil {
		return s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = clone(u)
	return nil
}

func (s *Users) Save(_ context.Context, u *model.User) error {
	if s.Err != nil {
		return s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.ID] = clone(u)
	return nil
}

func (s *Users) Delete(_ context.Context, id primitive.ObjectID) error {
	if s.Err != nil {
		return s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

// Get returns the stored document by ID, or nil.
func (s *Users) Get(id primitive.ObjectID) *model.User {
	u, _ := s.FindByID(context.Background(), id)
	return u
}

func (s *Users) find(match func(model.User) bool) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if match(u) {
			out := clone(&u)
			return &out, nil
		}
	}
	return nil, nil
}

func clone(u *model.User) model.User {
	out := *u
	out.Sessions = append([]model.SessionToken(nil), u.Sessions...)
	out.Cart = append([]model.CartItem(nil), u.Cart...)
	out.Wishlists = make([]model.Wishlist, len(u.Wishlists))
	for i, wl := range u.Wishlists {
		out.Wishlists[i] = model.Wishlist{
			Name:     wl.Name,
			Products: append([]model.WishlistItem(nil), wl.Products...),
		}
	}
	if u.EmailConfirmationExpires != nil {
		t := *u.EmailConfirmationExpires
		out.EmailConfirmationExpires = &t
	}
	if u.ResetExpires != nil {
		t := *u.ResetExpires
		out.ResetExpires = &t
	}
	return out
}

// Products is an in-memory store.ProductStore.
type Products struct {
	mu       sync.Mutex
	products []model.Product
}

func NewProducts(products ...model.Product) *Products {
	p := &Products{}
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
	}
	p.products = products
	return p
}

func (s *Products) FindAll(_ context.Context, page, limit int64) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]model.Product(nil), s.products...)
	if limit <= 0 {
		return out, nil
	}

	start := (page - 1) * limit
	if page < 1 {
		start = 0
	}
	if start >= int64(len(out)) {
		return []model.Product{}, nil
	}

	end := start + limit
	if end > int64(len(out)) {
		end = int64(len(out))
	}
	return out[start:end], nil
}

func (s *Products) FindByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}
