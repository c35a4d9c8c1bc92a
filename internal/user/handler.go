package user

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sebuszqo/PaymentGateway/internal/permission"
	"github.com/sebuszqo/PaymentGateway/internal/validation"
)

// TokenIssuer re-issues the authorization artifact after a permission change
// for the currently authenticated identity. Implemented by the auth service.
type TokenIssuer interface {
	Reissue(ctx context.Context, username string, permissions permission.Permission) (string, error)
}

type Handler struct {
	userService Service
	validator   *validation.UserValidator
	tokens      TokenIssuer
}

func NewHandler(userService Service, validator *validation.UserValidator, tokens TokenIssuer) *Handler {
	return &Handler{
		userService: userService,
		validator:   validator,
		tokens:      tokens,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encoding error: %v", err)
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req validation.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if outcome := h.validator.Validate(req); outcome != nil {
		validation.WriteTeapot(w, outcome)
		return
	}

	created, err := h.userService.Create(req.Username, req.Password, req.Permissions)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			validation.WriteTeapot(w, validation.SingleOutcome("Username", validation.CodeNameAlreadyExists))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, ToModel(created))
}

func (h *Handler) HandleGetByUid(w http.ResponseWriter, r *http.Request) {
	found, err := h.userService.GetByUid(r.PathValue("uid"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, ToModel(found))
}

func (h *Handler) HandleGetAll(w http.ResponseWriter, _ *http.Request) {
	users, err := h.userService.GetAll()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	models := make([]*Model, 0, len(users))
	for _, u := range users {
		models = append(models, ToModel(u))
	}
	respondJSON(w, http.StatusOK, models)
}

// permissionsModel is the assign-permissions response. Token is set only when
// the caller updated their own permissions and a fresh grant was issued.
type permissionsModel struct {
	*Model
	Token string `json:"Token,omitempty"`
}

func (h *Handler) HandleAssignPermissions(w http.ResponseWriter, r *http.Request) {
	var permissions permission.Permission
	if err := json.NewDecoder(r.Body).Decode(&permissions); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	updated, err := h.userService.UpdatePermissions(r.PathValue("uid"), permissions)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := permissionsModel{Model: ToModel(updated)}

	// Updating your own permissions invalidates the current token and issues a
	// replacement carrying the new set, so later checks in the same session see
	// the change without a fresh login.
	callerName, _ := r.Context().Value("username").(string)
	if callerName != "" && callerName == updated.Username {
		token, err := h.tokens.Reissue(r.Context(), updated.Username, updated.Permissions)
		if err != nil {
			log.Printf("Could not reissue token after permission change: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		response.Token = token
	}

	respondJSON(w, http.StatusOK, response)
}
