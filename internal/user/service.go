package user

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sebuszqo/PaymentGateway/internal/permission"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrInternalError = errors.New("internal Server Error")
)

type Service interface {
	Create(username, password string, permissions permission.Permission) (*User, error)
	GetByUid(uid string) (*User, error)
	GetByUsername(username string) (*User, error)
	GetAll() ([]*User, error)
	UpdatePermissions(uid string, permissions permission.Permission) (*User, error)
	VerifyPassword(user *User, password string) bool
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashed), err
}

// Create persists a new user with a hashed password and a fresh uid. The
// username must not already exist; the check is an exact match.
func (s *service) Create(username, password string, permissions permission.Permission) (*User, error) {
	_, err := s.repo.getByUsername(username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("could not check username: %v", err)
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %v", err)
	}

	newUser := &User{
		Uid:          uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Permissions:  permissions,
	}

	id, err := s.repo.insert(newUser)
	if err != nil {
		log.Printf("Unknown error occured when inserting user into DB: %v", err)
		return nil, ErrInternalError
	}
	if id <= 0 {
		log.Printf("User insert returned non-positive id %d", id)
		return nil, ErrInternalError
	}

	return newUser, nil
}

func (s *service) GetByUid(uid string) (*User, error) {
	return s.repo.getByUid(uid)
}

func (s *service) GetByUsername(username string) (*User, error) {
	return s.repo.getByUsername(username)
}

func (s *service) GetAll() ([]*User, error) {
	return s.repo.getAll()
}

// UpdatePermissions overwrites the user's permission set. Returns
// ErrUserNotFound when the uid is unknown.
func (s *service) UpdatePermissions(uid string, permissions permission.Permission) (*User, error) {
	existing, err := s.repo.getByUid(uid)
	if err != nil {
		return nil, err
	}

	existing.Permissions = permissions
	updated, err := s.repo.update(existing)
	if err != nil {
		log.Printf("Unknown error occured when updating user in DB: %v", err)
		return nil, ErrInternalError
	}
	if !updated {
		return nil, ErrInternalError
	}

	return existing, nil
}

// VerifyPassword checks a plaintext password against the stored bcrypt hash.
func (s *service) VerifyPassword(user *User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
