package validation

import (
	"strings"

	"github.com/sebuszqo/PaymentGateway/internal/permission"
)

const minPasswordLength = 4

// UserRequest is the inbound user model for registration and login.
type UserRequest struct {
	Username    string                `json:"Username"`
	Password    string                `json:"Password"`
	Permissions permission.Permission `json:"Permissions"`
}

// UserValidator checks user requests. It carries no configuration.
type UserValidator struct{}

func NewUserValidator() *UserValidator {
	return &UserValidator{}
}

// Validate runs the user checks in order: Username then Password.
// A nil return means the request is valid.
func (v *UserValidator) Validate(req UserRequest) *Outcome {
	outcome := &Outcome{}

	if strings.TrimSpace(req.Username) == "" {
		outcome.Add("Username", CodeMissing)
	}

	if strings.TrimSpace(req.Password) == "" {
		outcome.Add("Password", CodeMissing)
	} else if len(req.Password) < minPasswordLength {
		outcome.Add("Password", CodeAtLeastFourCharacters)
	}

	return outcome.result()
}
