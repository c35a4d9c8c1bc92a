package auth

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/sebuszqo/PaymentGateway/internal/permission"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

const defaultJWTDuration = 30 * time.Minute

// Grant is the decoded authorization artifact of one request: who the caller
// is, which permissions the token carries and which issuance generation it
// belongs to.
type Grant struct {
	Username    string
	Permissions permission.Permission
	Generation  int64
}

type JWTManagerInterface interface {
	GenerateAccessJWT(username string, permissions permission.Permission, generation int64, duration time.Duration) (string, error)
	ValidateAccessToken(tokenString string) (*Grant, error)
}

// AccessTokenCustomClaims carries the permission grant as a JSON array of
// permission names. The claim shape is part of the wire contract.
type AccessTokenCustomClaims struct {
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
	Generation  int64    `json:"generation"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret string
}

func NewJWTManager() JWTManagerInterface {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is not set in .env file")
	}

	return &JWTManager{secret: jwtSecret}
}

func (j *JWTManager) GenerateAccessJWT(username string, permissions permission.Permission, generation int64, duration time.Duration) (string, error) {
	claims := &AccessTokenCustomClaims{
		Username:    username,
		Permissions: permissions.Names(),
		Generation:  generation,
		StandardClaims: jwt.StandardClaims{
			Subject:   username,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTManager) ValidateAccessToken(tokenString string) (*Grant, error) {
	claims := &AccessTokenCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidJWTToken
		}
		return []byte(j.secret), nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpiredJWTToken
		}
		return nil, ErrInvalidJWTToken
	}
	if !token.Valid {
		return nil, ErrInvalidJWTToken
	}

	granted, err := permission.FromNames(claims.Permissions)
	if err != nil {
		return nil, ErrInvalidJWTToken
	}

	return &Grant{
		Username:    claims.Username,
		Permissions: granted,
		Generation:  claims.Generation,
	}, nil
}
