package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sebuszqo/PaymentGateway/internal/user"
	"github.com/sebuszqo/PaymentGateway/internal/validation"
)

// loginFailureField keys the generic login failure in the outcome body. One
// field for both unknown-username and wrong-password keeps usernames
// unenumerable.
const loginFailureField = "Username_Password"

type Handler struct {
	authService Service
	validator   *validation.UserValidator
}

func NewHandler(authService Service, validator *validation.UserValidator) *Handler {
	return &Handler{
		authService: authService,
		validator:   validator,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encoding error: %v", err)
	}
}

// loginModel is the login response: the caller's masked view plus the issued
// access token carrying the permission grant.
type loginModel struct {
	*user.Model
	Token string `json:"Token"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req validation.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if outcome := h.validator.Validate(req); outcome != nil {
		validation.WriteTeapot(w, outcome)
		return
	}

	existing, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			validation.WriteTeapot(w, validation.SingleOutcome(loginFailureField, validation.CodeInvalidUsernameOrPass))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, loginModel{
		Model: user.ToModel(existing),
		Token: token,
	})
}

func (h *Handler) HandleSignout(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value("username").(string)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), username); err != nil {
		log.Printf("Could not invalidate tokens on signout: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
