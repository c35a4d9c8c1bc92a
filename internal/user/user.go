package user

import (
	"github.com/sebuszqo/PaymentGateway/internal/permission"
)

// User is the persisted user record. PasswordHash never leaves the package.
type User struct {
	ID           int64
	Uid          string
	Username     string
	PasswordHash string
	Permissions  permission.Permission
}

// Model is the caller-visible projection of a user. The password hash is
// dropped entirely, never masked.
type Model struct {
	Uid         string                `json:"Uid"`
	Username    string                `json:"Username"`
	Permissions permission.Permission `json:"Permissions"`
}

// ToModel builds the response view of a user.
func ToModel(u *User) *Model {
	if u == nil {
		return nil
	}
	return &Model{
		Uid:         u.Uid,
		Username:    u.Username,
		Permissions: u.Permissions,
	}
}
