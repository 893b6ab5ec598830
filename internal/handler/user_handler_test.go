package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "taskrooms/internal/errors"
	"taskrooms/internal/model"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, email, credential, role string) (*model.User, error) {
	args := m.Called(ctx, id, email, credential, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserHandler_CreateUser(t *testing.T) {
	authSvc := new(MockAuthService)
	created := &model.User{
		ID:                 uuid.New(),
		Email:              "a@b.com",
		PasswordCredential: "$2a$10$fakehash",
		Role:               "admin",
	}
	authSvc.On("Register", mock.Anything, "a@b.com", "pw", "admin").Return(created, nil)
	h := NewUserHandler(authSvc, new(MockUserService))

	e := newTestEcho()
	body := `{"email":"a@b.com","passwordCredential":"pw","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.CreateUser(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID.String(), got["id"])
	assert.Equal(t, "a@b.com", got["email"])
	// The stored credential column is serialized, but it holds the hash.
	assert.Equal(t, created.PasswordCredential, got["passwordCredential"])
}

func TestUserHandler_DeleteUser_NotFound(t *testing.T) {
	userSvc := new(MockUserService)
	id := uuid.New()
	userSvc.On("Delete", mock.Anything, id).Return(apperrors.ErrUserNotFound)
	h := NewUserHandler(new(MockAuthService), userSvc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/users/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.DeleteUser(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user not found", body["error"])
}
