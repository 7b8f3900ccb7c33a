// Package identity owns the account credential lifecycle: registration with
// email confirmation, login and session-token issuance, logout, password
// reset and account deletion. Persistence, hashing, token signing and mail
// delivery are injected capabilities.
package identity

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"merchly/shop-api/internal/model"
	"merchly/shop-api/internal/store"
	"merchly/shop-api/pkg/security"
)

const (
	confirmationTTL = 24 * time.Hour
	resetTTL        = 10 * time.Minute
)

// Mailer delivers the transactional mails the credential lifecycle triggers.
// Every send is attempted exactly once.
type Mailer interface {
	SendConfirmation(to, confirmURL string) error
	SendPasswordReset(to, resetURL string) error
	SendPasswordChanged(to string) error
	SendCancellation(to, username string) error
}

type Service struct {
	store   store.UserStore
	hasher  *security.ArgonHasher
	signer  *TokenSigner
	mail    Mailer
	baseURL string
}

// NewService wires the credential manager. baseURL is the externally
// reachable origin used to build the links embedded in mails, without a
// trailing slash (e.g. "https://shop.example.com").
func NewService(s store.UserStore, hasher *security.ArgonHasher, signer *TokenSigner, mail Mailer, baseURL string) *Service {
	return &Service{
		store:   s,
		hasher:  hasher,
		signer:  signer,
		mail:    mail,
		baseURL: baseURL,
	}
}

// Register creates an unconfirmed account and mails a confirmation link
// embedding the plaintext token. Only the token's hash is persisted. No
// session is created.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	exists, err := s.store.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password, %w", err)
	}

	plain, tokenHash, err := security.NewOneTimeToken()
	if err != nil {
		return fmt.Errorf("failed to generate confirmation token, %w", err)
	}

	now := time.Now()
	expires := now.Add(confirmationTTL)

	u := &model.User{
		Email:                      email,
		Username:                   username,
		PasswordHash:               hash,
		IsEmailConfirmed:           false,
		EmailConfirmationTokenHash: tokenHash,
		EmailConfirmationExpires:   &expires,
		Sessions:                   []model.SessionToken{},
		Cart:                       []model.CartItem{},
		Wishlists:                  []model.Wishlist{},
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}

	if err := s.store.Insert(ctx, u); err != nil {
		return err
	}

	// A failed confirmation mail doesn't undo the registration; the user
	// can request a fresh link via the update-user flow.
	if err := s.mail.SendConfirmation(u.Email, s.confirmURL(plain)); err != nil {
		zap.L().Warn("Failed to send confirmation mail", zap.Error(err), zap.String("email", u.Email))
	}

	return nil
}

// ConfirmEmail flips the account to confirmed if the presented token hashes
// to a stored, unexpired confirmation entry. Unknown and expired tokens are
// indistinguishable to the caller.
func (s *Service) ConfirmEmail(ctx context.Context, token string) error {
	u, err := s.store.FindByConfirmationToken(ctx, security.HashToken(token), time.Now())
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidOrExpiredToken
	}

	u.IsEmailConfirmed = true
	u.EmailConfirmationTokenHash = ""
	u.EmailConfirmationExpires = nil
	u.UpdatedAt = time.Now()

	return s.store.Save(ctx, u)
}

// Login verifies the credentials, mints a session token and records its hash
// in the account's session set. Unknown email and wrong password fail with
// the same error; an unconfirmed email fails distinctly.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password, %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	if !u.IsEmailConfirmed {
		return "", ErrEmailNotConfirmed
	}

	token, err := s.signer.Sign(u.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("failed to sign session token, %w", err)
	}

	u.Sessions = append(u.Sessions, model.SessionToken{TokenHash: security.HashToken(token)})
	u.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, u); err != nil {
		return "", err
	}

	return token, nil
}

// Logout removes the presented token's session entry. Removing an entry
// that is already gone still succeeds.
func (s *Service) Logout(ctx context.Context, u *model.User, token string) error {
	u.RemoveSession(security.HashToken(token))
	u.UpdatedAt = time.Now()

	return s.store.Save(ctx, u)
}

// Authenticate resolves a bearer token to its account. Only the signature
// and embedded expiry are checked; the per-account session list is not
// consulted, so a logged-out token keeps authenticating until it expires.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnauthorized
	}

	return u, nil
}

// ForgotPassword stores a hashed reset token with a short expiry and mails
// the plaintext token. If delivery fails the fields are cleared again so no
// usable token is left behind.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	plain, tokenHash, err := security.NewOneTimeToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token, %w", err)
	}

	expires := time.Now().Add(resetTTL)
	u.ResetTokenHash = tokenHash
	u.ResetExpires = &expires
	u.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, u); err != nil {
		return err
	}

	if err := s.mail.SendPasswordReset(u.Email, s.resetURL(plain)); err != nil {
		zap.L().Error("Failed to send reset mail", zap.Error(err), zap.String("email", u.Email))

		u.ResetTokenHash = ""
		u.ResetExpires = nil
		if saveErr := s.store.Save(ctx, u); saveErr != nil {
			return saveErr
		}

		return ErrEmailDelivery
	}

	return nil
}

// ResetPassword sets a new password for the account matching an unexpired
// reset token, clears the reset fields so the token is single-use, and
// sends a password-changed notice.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.store.FindByResetToken(ctx, security.HashToken(token), time.Now())
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidOrExpiredToken
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password, %w", err)
	}

	u.PasswordHash = hash
	u.ResetTokenHash = ""
	u.ResetExpires = nil
	u.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, u); err != nil {
		return err
	}

	if err := s.mail.SendPasswordChanged(u.Email); err != nil {
		zap.L().Warn("Failed to send password-changed mail", zap.Error(err), zap.String("email", u.Email))
	}

	return nil
}

// DeleteAccount hard-deletes the account and everything embedded in it
// (sessions, cart, wishlists) and sends a cancellation notice. There is no
// grace period.
func (s *Service) DeleteAccount(ctx context.Context, u *model.User) error {
	if err := s.store.Delete(ctx, u.ID); err != nil {
		return err
	}

	if err := s.mail.SendCancellation(u.Email, u.Username); err != nil {
		zap.L().Warn("Failed to send cancellation mail", zap.Error(err), zap.String("email", u.Email))
	}

	return nil
}

// UpdateProfile changes the account's email and/or username. A changed email
// flips the account back to unconfirmed and triggers a fresh confirmation
// mail.
func (s *Service) UpdateProfile(ctx context.Context, u *model.User, email, username string) error {
	if email == "" && username == "" {
		return Validation("At least one field is required for update")
	}

	newEmail := ""
	if email != "" && email != u.Email {
		newEmail = email
	}
	newUsername := ""
	if username != "" && username != u.Username {
		newUsername = username
	}

	if newEmail == "" && newUsername == "" {
		return nil
	}

	exists, err := s.store.ExistsByEmailOrUsername(ctx, newEmail, newUsername)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateIdentity
	}

	if newUsername != "" {
		u.Username = newUsername
	}

	var confirmURL string
	if newEmail != "" {
		plain, tokenHash, err := security.NewOneTimeToken()
		if err != nil {
			return fmt.Errorf("failed to generate confirmation token, %w", err)
		}

		expires := time.Now().Add(confirmationTTL)
		u.Email = newEmail
		u.IsEmailConfirmed = false
		u.EmailConfirmationTokenHash = tokenHash
		u.EmailConfirmationExpires = &expires
		confirmURL = s.confirmURL(plain)
	}

	u.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, u); err != nil {
		return err
	}

	if confirmURL != "" {
		if err := s.mail.SendConfirmation(u.Email, confirmURL); err != nil {
			zap.L().Warn("Failed to send confirmation mail", zap.Error(err), zap.String("email", u.Email))
		}
	}

	return nil
}

// Profile loads the account for the authenticated user ID.
func (s *Service) Profile(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return u, nil
}

func (s *Service) confirmURL(token string) string {
	return fmt.Sprintf("%s/api/user/confirm-email/%s", s.baseURL, url.PathEscape(token))
}

func (s *Service) resetURL(token string) string {
	return fmt.Sprintf("%s/api/user/resetpassword/%s", s.baseURL, url.PathEscape(token))
}
