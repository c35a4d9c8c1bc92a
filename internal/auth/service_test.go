package auth

import (
	"context"
	"testing"

	"github.com/sebuszqo/PaymentGateway/internal/permission"
	"github.com/sebuszqo/PaymentGateway/internal/user"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// stubUserService backs auth tests with a single in-memory user.
type stubUserService struct {
	user *user.User
}

func (s *stubUserService) Create(string, string, permission.Permission) (*user.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetByUid(uid string) (*user.User, error) {
	if s.user != nil && s.user.Uid == uid {
		return s.user, nil
	}
	return nil, user.ErrUserNotFound
}

func (s *stubUserService) GetByUsername(username string) (*user.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, user.ErrUserNotFound
}

func (s *stubUserService) GetAll() ([]*user.User, error) {
	return []*user.User{s.user}, nil
}

func (s *stubUserService) UpdatePermissions(uid string, permissions permission.Permission) (*user.User, error) {
	s.user.Permissions = permissions
	return s.user, nil
}

func (s *stubUserService) VerifyPassword(u *user.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func newStubUser(t *testing.T, username, password string, permissions permission.Permission) *user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		Uid:          "uid-1",
		Username:     username,
		PasswordHash: string(hash),
		Permissions:  permissions,
	}
}

func newTestService(t *testing.T, u *user.User) Service {
	t.Setenv("JWT_SECRET", "test-secret")
	return NewAuthService(&stubUserService{user: u}, NewMemoryGenerationStore(), NewJWTManager())
}

func TestLogin_Success(t *testing.T) {
	u := newStubUser(t, "sebastian", "secret", permission.PaymentView)
	svc := newTestService(t, u)

	loggedIn, token, err := svc.Login(context.Background(), "sebastian", "secret")

	assert.NoError(t, err)
	assert.Equal(t, u, loggedIn)
	assert.NotEmpty(t, token)
}

func TestLogin_UnknownUserAndWrongPasswordAreIndistinguishable(t *testing.T) {
	u := newStubUser(t, "sebastian", "secret", permission.PaymentView)
	svc := newTestService(t, u)

	_, _, errUnknown := svc.Login(context.Background(), "nobody", "secret")
	_, _, errWrongPass := svc.Login(context.Background(), "sebastian", "wrong")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestLogout_InvalidatesIssuedTokens(t *testing.T) {
	u := newStubUser(t, "sebastian", "secret", permission.PaymentView)
	t.Setenv("JWT_SECRET", "test-secret")
	store := NewMemoryGenerationStore()
	jwtManager := NewJWTManager()
	svc := NewAuthService(&stubUserService{user: u}, store, jwtManager)

	_, token, err := svc.Login(context.Background(), "sebastian", "secret")
	assert.NoError(t, err)

	grant, err := jwtManager.ValidateAccessToken(token)
	assert.NoError(t, err)

	current, err := store.Current(context.Background(), "sebastian")
	assert.NoError(t, err)
	assert.Equal(t, current, grant.Generation)

	assert.NoError(t, svc.Logout(context.Background(), "sebastian"))

	current, err = store.Current(context.Background(), "sebastian")
	assert.NoError(t, err)
	assert.NotEqual(t, current, grant.Generation)
}

func TestReissue_CarriesNewPermissionsAndGeneration(t *testing.T) {
	u := newStubUser(t, "sebastian", "secret", permission.PaymentView)
	t.Setenv("JWT_SECRET", "test-secret")
	store := NewMemoryGenerationStore()
	jwtManager := NewJWTManager()
	svc := NewAuthService(&stubUserService{user: u}, store, jwtManager)

	_, oldToken, err := svc.Login(context.Background(), "sebastian", "secret")
	assert.NoError(t, err)
	oldGrant, err := jwtManager.ValidateAccessToken(oldToken)
	assert.NoError(t, err)

	newToken, err := svc.Reissue(context.Background(), "sebastian", permission.PaymentView|permission.PaymentCreate)
	assert.NoError(t, err)

	newGrant, err := jwtManager.ValidateAccessToken(newToken)
	assert.NoError(t, err)
	assert.Equal(t, permission.PaymentView|permission.PaymentCreate, newGrant.Permissions)
	assert.Greater(t, newGrant.Generation, oldGrant.Generation)

	current, err := store.Current(context.Background(), "sebastian")
	assert.NoError(t, err)
	assert.Equal(t, current, newGrant.Generation)
}
