package identity_test

import (
	"context"
	"net/url"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchly/shop-api/internal/identity"
	"merchly/shop-api/internal/store/storetest"
	"merchly/shop-api/pkg/security"
)

const baseURL = "http://shop.test"

// fakeMailer records every send and can be told to fail the next one.
type fakeMailer struct {
	confirmURLs []string
	resetURLs   []string
	changedTo   []string
	cancelledTo []string
	nextSendErr error
}

func (m *fakeMailer) takeErr() error {
	err := m.nextSendErr
	m.nextSendErr = nil
	return err
}

func (m *fakeMailer) SendConfirmation(_, confirmURL string) error {
	if err := m.takeErr(); err != nil {
		return err
	}
	m.confirmURLs = append(m.confirmURLs, confirmURL)
	return nil
}

func (m *fakeMailer) SendPasswordReset(_, resetURL string) error {
	if err := m.takeErr(); err != nil {
		return err
	}
	m.resetURLs = append(m.resetURLs, resetURL)
	return nil
}

func (m *fakeMailer) SendPasswordChanged(to string) error {
	if err := m.takeErr(); err != nil {
		return err
	}
	m.changedTo = append(m.changedTo, to)
	return nil
}

func (m *fakeMailer) SendCancellation(to, _ string) error {
	if err := m.takeErr(); err != nil {
		return err
	}
	m.cancelledTo = append(m.cancelledTo, to)
	return nil
}

// lastToken extracts the plaintext token from the last mailed link.
func lastToken(t *testing.T, urls []string) string {
	t.Helper()
	require.NotEmpty(t, urls)

	u, err := url.Parse(urls[len(urls)-1])
	require.NoError(t, err)

	return path.Base(u.Path)
}

func newService(t *testing.T) (*identity.Service, *storetest.Users, *fakeMailer) {
	t.Helper()

	users := storetest.NewUsers()
	mailer := &fakeMailer{}
	signer := identity.NewTokenSigner("test-secret", time.Hour)
	svc := identity.NewService(users, security.NewArgonHasher(), signer, mailer, baseURL)

	return svc, users, mailer
}

func register(t *testing.T, svc *identity.Service) {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), "alice", "alice@x.com", "Password123"))
}

func registerConfirmed(t *testing.T, svc *identity.Service, mailer *fakeMailer) {
	t.Helper()
	register(t, svc)
	require.NoError(t, svc.ConfirmEmail(context.Background(), lastToken(t, mailer.confirmURLs)))
}

func TestRegister(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	register(t, svc)

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "alice", u.Username)
	assert.False(t, u.IsEmailConfirmed)
	assert.Empty(t, u.Sessions)
	assert.NotEqual(t, "Password123", u.PasswordHash)

	// The mailed link embeds the plaintext token; only its hash is stored
	token := lastToken(t, mailer.confirmURLs)
	assert.NotEqual(t, token, u.EmailConfirmationTokenHash)
	assert.Equal(t, security.HashToken(token), u.EmailConfirmationTokenHash)
	require.NotNil(t, u.EmailConfirmationExpires)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *u.EmailConfirmationExpires, 5*time.Second)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	register(t, svc)

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"same email", "someone-else", "alice@x.com"},
		{"same username", "alice", "other@x.com"},
		{"both taken", "alice", "alice@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.username, tt.email, "Password123")
			assert.Equal(t, identity.ErrDuplicateIdentity, err)
		})
	}
}

func TestConfirmEmail(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	register(t, svc)
	token := lastToken(t, mailer.confirmURLs)

	require.NoError(t, svc.ConfirmEmail(ctx, token))

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.True(t, u.IsEmailConfirmed)
	assert.Empty(t, u.EmailConfirmationTokenHash)
	assert.Nil(t, u.EmailConfirmationExpires)

	// Single use: the same token is now indistinguishable from an unknown one
	assert.Equal(t, identity.ErrInvalidOrExpiredToken, svc.ConfirmEmail(ctx, token))
}

func TestConfirmEmailExpiredToken(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	register(t, svc)
	token := lastToken(t, mailer.confirmURLs)

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	u.EmailConfirmationExpires = &past
	require.NoError(t, users.Save(ctx, u))

	expiredErr := svc.ConfirmEmail(ctx, token)
	unknownErr := svc.ConfirmEmail(ctx, "0000000000000000000000000000000000000000")

	assert.Equal(t, identity.ErrInvalidOrExpiredToken, expiredErr)
	assert.Equal(t, unknownErr, expiredErr)
}

func TestLoginFailsUniformly(t *testing.T) {
	svc, _, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)

	_, unknownErr := svc.Login(ctx, "nobody@x.com", "Password123")
	_, wrongPassErr := svc.Login(ctx, "alice@x.com", "not-the-password")

	assert.Equal(t, identity.ErrInvalidCredentials, unknownErr)
	assert.Equal(t, unknownErr, wrongPassErr)
}

func TestLoginBeforeConfirmation(t *testing.T) {
	svc, _, _ := newService(t)

	register(t, svc)

	_, err := svc.Login(context.Background(), "alice@x.com", "Password123")
	assert.Equal(t, identity.ErrEmailNotConfirmed, err)
}

func TestLoginStoresSessionHash(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)

	token, err := svc.Login(ctx, "alice@x.com", "Password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, u.Sessions, 1)
	assert.Equal(t, security.HashToken(token), u.Sessions[0].TokenHash)
}

func TestLogout(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)

	token, err := svc.Login(ctx, "alice@x.com", "Password123")
	require.NoError(t, err)

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, u, token))
	assert.Empty(t, users.Get(u.ID).Sessions)

	// Logging out an already-removed session still succeeds
	require.NoError(t, svc.Logout(ctx, users.Get(u.ID), token))
}

func TestAuthenticate(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)

	token, err := svc.Login(ctx, "alice@x.com", "Password123")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", u.Email)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.Equal(t, identity.ErrUnauthorized, err)

	// The session list is not consulted, so the token keeps working after
	// logout until its embedded expiry
	require.NoError(t, svc.Logout(ctx, u, token))
	_, err = svc.Authenticate(ctx, token)
	assert.NoError(t, err)

	// But a deleted account ends it immediately
	require.NoError(t, users.Delete(ctx, u.ID))
	_, err = svc.Authenticate(ctx, token)
	assert.Equal(t, identity.ErrUnauthorized, err)
}

func TestForgotPassword(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)

	assert.Equal(t, identity.ErrUserNotFound, svc.ForgotPassword(ctx, "nobody@x.com"))

	require.NoError(t, svc.ForgotPassword(ctx, "alice@x.com"))

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)

	token := lastToken(t, mailer.resetURLs)
	assert.Equal(t, security.HashToken(token), u.ResetTokenHash)
	require.NotNil(t, u.ResetExpires)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *u.ResetExpires, 5*time.Second)
}

func TestForgotPasswordDeliveryFailureClearsToken(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)

	mailer.nextSendErr = assert.AnError

	err := svc.ForgotPassword(ctx, "alice@x.com")
	assert.Equal(t, identity.ErrEmailDelivery, err)

	u, findErr := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, findErr)
	assert.Empty(t, u.ResetTokenHash)
	assert.Nil(t, u.ResetExpires)
}

func TestResetPassword(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)
	require.NoError(t, svc.ForgotPassword(ctx, "alice@x.com"))
	token := lastToken(t, mailer.resetURLs)

	require.NoError(t, svc.ResetPassword(ctx, token, "NewPassword456"))

	// Old password no longer authenticates, the new one does
	_, err := svc.Login(ctx, "alice@x.com", "Password123")
	assert.Equal(t, identity.ErrInvalidCredentials, err)

	_, err = svc.Login(ctx, "alice@x.com", "NewPassword456")
	assert.NoError(t, err)

	// Reset fields are cleared, so the token is single-use
	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Empty(t, u.ResetTokenHash)
	assert.Nil(t, u.ResetExpires)
	assert.Equal(t, identity.ErrInvalidOrExpiredToken, svc.ResetPassword(ctx, token, "AnotherOne789"))

	assert.Equal(t, []string{"alice@x.com"}, mailer.changedTo)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)
	require.NoError(t, svc.ForgotPassword(ctx, "alice@x.com"))
	token := lastToken(t, mailer.resetURLs)

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	u.ResetExpires = &past
	require.NoError(t, users.Save(ctx, u))

	assert.Equal(t, identity.ErrInvalidOrExpiredToken, svc.ResetPassword(ctx, token, "NewPassword456"))
}

func TestDeleteAccount(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, u))

	gone, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, []string{"alice@x.com"}, mailer.cancelledTo)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, mailer := newService(t)
	ctx := context.Background()

	registerConfirmed(t, svc, mailer)

	u, err := users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)

	t.Run("no fields", func(t *testing.T) {
		var ie *identity.Error
		err := svc.UpdateProfile(ctx, u, "", "")
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 400, ie.Status)
	})

	t.Run("rename only keeps confirmation", func(t *testing.T) {
		require.NoError(t, svc.UpdateProfile(ctx, u, "", "alice2"))

		saved := users.Get(u.ID)
		assert.Equal(t, "alice2", saved.Username)
		assert.True(t, saved.IsEmailConfirmed)
	})

	t.Run("email change requires reconfirmation", func(t *testing.T) {
		mailsBefore := len(mailer.confirmURLs)

		require.NoError(t, svc.UpdateProfile(ctx, u, "alice@new.com", ""))

		saved := users.Get(u.ID)
		assert.Equal(t, "alice@new.com", saved.Email)
		assert.False(t, saved.IsEmailConfirmed)
		assert.NotEmpty(t, saved.EmailConfirmationTokenHash)
		assert.Len(t, mailer.confirmURLs, mailsBefore+1)

		require.NoError(t, svc.ConfirmEmail(ctx, lastToken(t, mailer.confirmURLs)))
		assert.True(t, users.Get(u.ID).IsEmailConfirmed)
	})

	t.Run("taken identity rejected", func(t *testing.T) {
		require.NoError(t, svc.Register(ctx, "bob", "bob@x.com", "Password123"))

		fresh := users.Get(u.ID)
		assert.Equal(t, identity.ErrDuplicateIdentity, svc.UpdateProfile(ctx, fresh, "bob@x.com", ""))
		assert.Equal(t, identity.ErrDuplicateIdentity, svc.UpdateProfile(ctx, fresh, "", "bob"))
	})
}
