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

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, title, description, status, roomID string) (*model.Task, error) {
	args := m.Called(ctx, title, description, status, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id uuid.UUID, title, description, status, roomID string) (*model.Task, error) {
	args := m.Called(ctx, id, title, description, status, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	svc := new(MockTaskService)
	created := &model.Task{
		ID:          uuid.New(),
		Title:       "write report",
		Description: "quarterly numbers",
		Status:      model.StatusToDo,
		RoomID:      uuid.NewString(),
	}
	svc.On("Create", mock.Anything, "write report", "quarterly numbers", "", created.RoomID).Return(created, nil)
	h := NewTaskHandler(svc)

	e := newTestEcho()
	body := `{"title":"write report","description":"quarterly numbers","roomId":"` + created.RoomID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.CreateTask(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, model.StatusToDo, got.Status)
}

func TestTaskHandler_CreateTask_MissingTitle(t *testing.T) {
	svc := new(MockTaskService)
	h := NewTaskHandler(svc)

	e := newTestEcho()
	body := `{"description":"quarterly numbers","roomId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.CreateTask(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestTaskHandler_UpdateTask_NotFound(t *testing.T) {
	svc := new(MockTaskService)
	id := uuid.New()
	svc.On("Update", mock.Anything, id, "x", "y", model.StatusDone, "").Return(nil, apperrors.ErrTaskNotFound)
	h := NewTaskHandler(svc)

	e := newTestEcho()
	body := `{"title":"x","description":"y","status":"Done"}`
	req := httptest.NewRequest(http.MethodPut, "/tasks/"+id.String(), strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.UpdateTask(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var bodyOut map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bodyOut))
	assert.Equal(t, "task not found", bodyOut["error"])
}

func TestTaskHandler_UpdateTask_InvalidID(t *testing.T) {
	svc := new(MockTaskService)
	h := NewTaskHandler(svc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPut, "/tasks/not-a-uuid", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.UpdateTask(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Update")
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	svc := new(MockTaskService)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)
	h := NewTaskHandler(svc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/tasks/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.DeleteTask(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestTaskHandler_ListTasks(t *testing.T) {
	svc := new(MockTaskService)
	tasks := []model.Task{
		{ID: uuid.New(), Title: "a", Status: model.StatusToDo},
		{ID: uuid.New(), Title: "b", Status: model.StatusDone},
	}
	svc.On("List", mock.Anything).Return(tasks, nil)
	h := NewTaskHandler(svc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ListTasks(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
