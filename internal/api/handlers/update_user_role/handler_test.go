package update_user_role

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-PickupService/internal/api/middleware"
	"github.com/m04kA/SMC-PickupService/internal/service/users"
	"github.com/m04kA/SMC-PickupService/internal/service/users/models"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) UpdateRole(ctx context.Context, actorID, id int64, req *models.UpdateRoleRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

type MockLogger struct{}

func (m *MockLogger) Info(format string, v ...interface{})  {}
func (m *MockLogger) Warn(format string, v ...interface{})  {}
func (m *MockLogger) Error(format string, v ...interface{}) {}

func patch(h *Handler, actorID int64, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/"+id+"/role", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"userId": id})
	if actorID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), actorID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &MockUserService{}
	h := NewHandler(svc, &MockLogger{})
	svc.On("UpdateRole", mock.Anything, int64(1), int64(5), &models.UpdateRoleRequest{Role: "admin"}).
		Return(&models.UserResponse{ID: 5, Role: "admin"}, nil)

	rec := patch(h, 1, "5", `{"role":"admin"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestHandle_MissingActor(t *testing.T) {
	svc := &MockUserService{}
	h := NewHandler(svc, &MockLogger{})

	assert.Equal(t, http.StatusUnauthorized, patch(h, 0, "5", `{"role":"admin"}`).Code)
	svc.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_BadInput(t *testing.T) {
	svc := &MockUserService{}
	h := NewHandler(svc, &MockLogger{})

	assert.Equal(t, http.StatusBadRequest, patch(h, 1, "abc", `{"role":"admin"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(h, 1, "5", "").Code)
	assert.Equal(t, http.StatusBadRequest, patch(h, 1, "5", `{"role":"admin","extra":1}`).Code)
	svc.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{users.ErrInvalidRole, http.StatusBadRequest},
		{users.ErrSelfRoleChange, http.StatusForbidden},
		{users.ErrUserNotFound, http.StatusNotFound},
		{users.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &MockUserService{}
		h := NewHandler(svc, &MockLogger{})
		svc.On("UpdateRole", mock.Anything, int64(1), int64(5), mock.Anything).Return(nil, tt.err)

		assert.Equal(t, tt.status, patch(h, 1, "5", `{"role":"driver"}`).Code, tt.err.Error())
	}
}
