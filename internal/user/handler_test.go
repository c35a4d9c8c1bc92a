package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sebuszqo/PaymentGateway/internal/permission"
	"github.com/sebuszqo/PaymentGateway/internal/validation"
	"github.com/stretchr/testify/assert"
)

type mockUserService struct {
	createErr error
	created   *User
	users     map[string]*User
	updateErr error
}

func (m *mockUserService) Create(username, password string, permissions permission.Permission) (*User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = &User{Uid: "uid-1", Username: username, Permissions: permissions}
	return m.created, nil
}

func (m *mockUserService) GetByUid(uid string) (*User, error) {
	if u, ok := m.users[uid]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockUserService) GetByUsername(username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserService) GetAll() ([]*User, error) {
	var users []*User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserService) UpdatePermissions(uid string, permissions permission.Permission) (*User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	u, ok := m.users[uid]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Permissions = permissions
	return u, nil
}

func (m *mockUserService) VerifyPassword(*User, string) bool { return true }

type mockTokenIssuer struct {
	token  string
	called bool
}

func (m *mockTokenIssuer) Reissue(context.Context, string, permission.Permission) (string, error) {
	m.called = true
	return m.token, nil
}

func newTestHandler(svc Service, tokens TokenIssuer) *Handler {
	return NewHandler(svc, validation.NewUserValidator(), tokens)
}

func TestHandleCreate_Success(t *testing.T) {
	handler := newTestHandler(&mockUserService{}, &mockTokenIssuer{})

	body := `{"Username":"sebastian","Password":"secret","Permissions":["Payment_View"]}`
	req := httptest.NewRequest(http.MethodPost, "/user/create", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var model Model
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&model))
	assert.Equal(t, "uid-1", model.Uid)
	assert.Equal(t, "sebastian", model.Username)
	assert.Equal(t, permission.PaymentView, model.Permissions)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestHandleCreate_ValidationFailureIsTeapot(t *testing.T) {
	handler := newTestHandler(&mockUserService{}, &mockTokenIssuer{})

	req := httptest.NewRequest(http.MethodPost, "/user/create", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Equal(t, `{"Username":{"ErrorCode":"missing"},"Password":{"ErrorCode":"missing"}}`, w.Body.String())
}

func TestHandleCreate_DuplicateUsernameIsTeapot(t *testing.T) {
	handler := newTestHandler(&mockUserService{createErr: ErrUsernameTaken}, &mockTokenIssuer{})

	body := `{"Username":"sebastian","Password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/user/create", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Equal(t, `{"Username":{"ErrorCode":"name_already_exists"}}`, w.Body.String())
}

func TestHandleAssignPermissions_SelfUpdateReissuesToken(t *testing.T) {
	svc := &mockUserService{users: map[string]*User{
		"uid-1": {Uid: "uid-1", Username: "sebastian", Permissions: permission.PaymentView},
	}}
	tokens := &mockTokenIssuer{token: "fresh-token"}
	handler := newTestHandler(svc, tokens)

	req := httptest.NewRequest(http.MethodPatch, "/user/uid-1/permissions/assign",
		strings.NewReader(`["Payment_View","Payment_Create"]`))
	req.SetPathValue("uid", "uid-1")
	req = req.WithContext(context.WithValue(req.Context(), "username", "sebastian"))
	w := httptest.NewRecorder()

	handler.HandleAssignPermissions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, tokens.called)

	var response struct {
		Model
		Token string `json:"Token"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "fresh-token", response.Token)
	assert.Equal(t, permission.PaymentView|permission.PaymentCreate, response.Permissions)
}

func TestHandleAssignPermissions_OtherUserKeepsCallerToken(t *testing.T) {
	svc := &mockUserService{users: map[string]*User{
		"uid-2": {Uid: "uid-2", Username: "someone", Permissions: permission.None},
	}}
	tokens := &mockTokenIssuer{token: "fresh-token"}
	handler := newTestHandler(svc, tokens)

	req := httptest.NewRequest(http.MethodPatch, "/user/uid-2/permissions/assign",
		strings.NewReader(`["Payment_View"]`))
	req.SetPathValue("uid", "uid-2")
	req = req.WithContext(context.WithValue(req.Context(), "username", "sebastian"))
	w := httptest.NewRecorder()

	handler.HandleAssignPermissions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.False(t, tokens.called)
	assert.NotContains(t, w.Body.String(), "fresh-token")
}

func TestHandleAssignPermissions_UnknownUidIsEmpty404(t *testing.T) {
	handler := newTestHandler(&mockUserService{users: map[string]*User{}}, &mockTokenIssuer{})

	req := httptest.NewRequest(http.MethodPatch, "/user/missing/permissions/assign",
		strings.NewReader(`["Payment_View"]`))
	req.SetPathValue("uid", "missing")
	w := httptest.NewRecorder()

	handler.HandleAssignPermissions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Empty(t, w.Body.String())
}
