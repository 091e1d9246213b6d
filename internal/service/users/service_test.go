package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	driverRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/driver"
	userRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/user"
	"github.com/m04kA/SMC-PickupService/internal/service/users/models"
	"github.com/m04kA/SMC-PickupService/pkg/ptr"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id int64, role domain.Role, driverCode *string) error {
	return m.Called(ctx, id, role, driverCode).Error(0)
}

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) NextDriverNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) (*domain.Driver, error) {
	args := m.Called(ctx, driver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverRepository) SetActive(ctx context.Context, code string, active bool) error {
	return m.Called(ctx, code, active).Error(0)
}

type MockTxManager struct {
	calls int
}

func (m *MockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type MockLogger struct{}

func (m *MockLogger) Info(format string, v ...interface{})  {}
func (m *MockLogger) Warn(format string, v ...interface{})  {}
func (m *MockLogger) Error(format string, v ...interface{}) {}

func newTestService() (*Service, *MockUserRepository, *MockDriverRepository, *MockTxManager) {
	users := &MockUserRepository{}
	drivers := &MockDriverRepository{}
	tx := &MockTxManager{}
	return NewService(users, drivers, tx, &MockLogger{}), users, drivers, tx
}

func customer() *domain.User {
	return &domain.User{
		ID:           5,
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}
}

func TestGetByID(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(5)).Return(customer(), nil)

	resp, err := svc.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "customer", resp.Role)
	assert.Equal(t, "jane@example.com", resp.Email)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(9)).Return(nil, userRepo.ErrUserNotFound)

	_, err := svc.GetByID(ctx, 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(9)).Return(nil, errors.New("db down"))

	_, err := svc.GetByID(ctx, 9)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateRole_CustomerToAdmin(t *testing.T) {
	svc, users, drivers, tx := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(5)).Return(customer(), nil)
	users.On("UpdateRole", ctx, int64(5), domain.RoleAdmin, (*string)(nil)).Return(nil)

	resp, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, 1, tx.calls)
	users.AssertExpectations(t)
	drivers.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRole_InvalidRole(t *testing.T) {
	svc, users, _, tx := newTestService()

	_, err := svc.UpdateRole(context.Background(), 1, 5, &models.UpdateRoleRequest{Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Zero(t, tx.calls)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateRole_OwnRole(t *testing.T) {
	svc, _, _, tx := newTestService()

	_, err := svc.UpdateRole(context.Background(), 5, 5, &models.UpdateRoleRequest{Role: "customer"})
	assert.ErrorIs(t, err, ErrSelfRoleChange)
	assert.Zero(t, tx.calls)
}

func TestUpdateRole_UserNotFound(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(5)).Return(nil, userRepo.ErrUserNotFound)

	_, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "admin"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateRole_SameRoleIsNoop(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(5)).Return(customer(), nil)

	resp, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "customer"})
	require.NoError(t, err)
	assert.Equal(t, "customer", resp.Role)
	users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRole_PromoteCustomerCreatesProfile(t *testing.T) {
	svc, users, drivers, tx := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(5)).Return(customer(), nil)
	drivers.On("NextDriverNumber", ctx).Return(int64(12), nil)
	drivers.On("Create", ctx, mock.MatchedBy(func(d *domain.Driver) bool {
		return d.UserID == 5 &&
			d.DriverCode == "D0012" &&
			d.Status == domain.DefaultDriverStatus &&
			d.Rating == domain.DefaultDriverRating &&
			d.IsActive
	})).Return(&domain.Driver{ID: 3, UserID: 5, DriverCode: "D0012"}, nil)
	users.On("UpdateRole", ctx, int64(5), domain.RoleDriver, ptr.Ptr("D0012")).Return(nil)

	resp, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "driver"})
	require.NoError(t, err)
	assert.Equal(t, "driver", resp.Role)
	assert.Equal(t, ptr.Ptr("D0012"), resp.DriverCode)
	assert.Equal(t, 1, tx.calls)
	drivers.AssertExpectations(t)
	users.AssertExpectations(t)
	drivers.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRole_PromoteProfileCreateFails(t *testing.T) {
	svc, users, drivers, _ := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(5)).Return(customer(), nil)
	drivers.On("NextDriverNumber", ctx).Return(int64(12), nil)
	drivers.On("Create", ctx, mock.Anything).Return(nil, driverRepo.ErrDriverExists)

	_, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "driver"})
	assert.ErrorIs(t, err, ErrInternal)
	users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRole_DemoteDriverDeactivatesProfile(t *testing.T) {
	svc, users, drivers, _ := newTestService()
	ctx := context.Background()
	user := customer()
	user.Role = domain.RoleDriver
	user.DriverCode = ptr.Ptr("D0004")
	users.On("GetByID", ctx, int64(5)).Return(user, nil)
	drivers.On("SetActive", ctx, "D0004", false).Return(nil)
	users.On("UpdateRole", ctx, int64(5), domain.RoleCustomer, ptr.Ptr("D0004")).Return(nil)

	resp, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "customer"})
	require.NoError(t, err)
	assert.Equal(t, "customer", resp.Role)
	assert.Equal(t, ptr.Ptr("D0004"), resp.DriverCode)
	drivers.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestUpdateRole_RestoreDriverReactivatesProfile(t *testing.T) {
	svc, users, drivers, _ := newTestService()
	ctx := context.Background()
	user := customer()
	user.DriverCode = ptr.Ptr("D0004")
	users.On("GetByID", ctx, int64(5)).Return(user, nil)
	drivers.On("SetActive", ctx, "D0004", true).Return(nil)
	users.On("UpdateRole", ctx, int64(5), domain.RoleDriver, ptr.Ptr("D0004")).Return(nil)

	resp, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "driver"})
	require.NoError(t, err)
	assert.Equal(t, "driver", resp.Role)
	drivers.AssertExpectations(t)
}

func TestUpdateRole_MissingDriverProfileRow(t *testing.T) {
	svc, users, drivers, _ := newTestService()
	ctx := context.Background()
	user := customer()
	user.DriverCode = ptr.Ptr("D0004")
	users.On("GetByID", ctx, int64(5)).Return(user, nil)
	drivers.On("SetActive", ctx, "D0004", true).Return(driverRepo.ErrDriverNotFound)

	_, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "driver"})
	assert.ErrorIs(t, err, ErrInternal)
	users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRole_RepositoryError(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	users.On("GetByID", ctx, int64(5)).Return(customer(), nil)
	users.On("UpdateRole", ctx, int64(5), domain.RoleAdmin, (*string)(nil)).Return(errors.New("deadlock"))

	_, err := svc.UpdateRole(ctx, 1, 5, &models.UpdateRoleRequest{Role: "admin"})
	assert.ErrorIs(t, err, ErrInternal)
}
