package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/sebuszqo/PaymentGateway/internal/permission"
	"github.com/sebuszqo/PaymentGateway/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(ctx context.Context, username, password string) (*user.User, string, error)
	Logout(ctx context.Context, username string) error
	Reissue(ctx context.Context, username string, permissions permission.Permission) (string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
	RequirePermissions(requiredSets ...permission.Permission) func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	generations GenerationStore
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, generations GenerationStore, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		generations: generations,
		jwtManager:  jwtManager,
	}
}

// Login verifies the credentials and issues an access token carrying the
// user's permission set. Unknown usernames and wrong passwords are not told
// apart: both return ErrInvalidCredentials.
func (s *service) Login(ctx context.Context, username, password string) (*user.User, string, error) {
	existing, err := s.userService.GetByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		log.Printf("Could not look up user on login: %v", err)
		return nil, "", ErrInternalError
	}

	if !s.userService.VerifyPassword(existing, password) {
		return nil, "", ErrInvalidCredentials
	}

	generation, err := s.generations.Current(ctx, existing.Username)
	if err != nil {
		log.Printf("Could not read token generation: %v", err)
		return nil, "", ErrInternalError
	}

	token, err := s.jwtManager.GenerateAccessJWT(existing.Username, existing.Permissions, generation, defaultJWTDuration)
	if err != nil {
		log.Printf("Could not sign access token: %v", err)
		return nil, "", ErrInternalError
	}

	return existing, token, nil
}

// Logout bumps the caller's token generation, invalidating every token issued
// before the bump.
func (s *service) Logout(ctx context.Context, username string) error {
	_, err := s.generations.Bump(ctx, username)
	return err
}

// Reissue invalidates the caller's outstanding tokens and signs a fresh one
// carrying the given permission set. Used after a permission change for the
// authenticated identity.
func (s *service) Reissue(ctx context.Context, username string, permissions permission.Permission) (string, error) {
	generation, err := s.generations.Bump(ctx, username)
	if err != nil {
		return "", err
	}
	return s.jwtManager.GenerateAccessJWT(username, permissions, generation, defaultJWTDuration)
}
