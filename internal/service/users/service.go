package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	driverRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/driver"
	userRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/user"
	"github.com/m04kA/SMC-PickupService/internal/service/users/models"
)

// Service сервис пользователей
type Service struct {
	userRepo   UserRepository
	driverRepo DriverRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	driverRepo DriverRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		driverRepo: driverRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: user_id=%d, role=%s", id, user.Role)
	return models.FromDomainUser(user), nil
}

// UpdateRole меняет роль пользователя.
// При повышении до driver пользователь без кода получает новый код и пустой профиль водителя,
// ранее выключенный профиль включается обратно. При снятии роли driver профиль выключается,
// код водителя остается за пользователем.
func (s *Service) UpdateRole(ctx context.Context, actorID, id int64, req *models.UpdateRoleRequest) (*models.UserResponse, error) {
	role := domain.Role(req.Role)
	if !role.IsValid() {
		s.logger.Warn("UpdateRole: invalid role=%q for user_id=%d", req.Role, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}
	if actorID == id {
		s.logger.Warn("UpdateRole: user_id=%d tried to change own role", id)
		return nil, ErrSelfRoleChange
	}

	var result *domain.User

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		user, err := s.getUser(txCtx, "UpdateRole", id)
		if err != nil {
			return err
		}

		if user.Role == role {
			result = user
			return nil
		}

		switch {
		case role == domain.RoleDriver && user.DriverCode == nil:
			code, err := s.createDriverProfile(txCtx, user.ID)
			if err != nil {
				return err
			}
			user.DriverCode = &code

		case role == domain.RoleDriver:
			if err := s.setDriverActive(txCtx, *user.DriverCode, true); err != nil {
				return err
			}

		case user.Role == domain.RoleDriver && user.DriverCode != nil:
			if err := s.setDriverActive(txCtx, *user.DriverCode, false); err != nil {
				return err
			}
		}

		if err := s.userRepo.UpdateRole(txCtx, id, role, user.DriverCode); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return ErrUserNotFound
			}
			s.logger.Error("UpdateRole: failed to update user_id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateRole - repository error: %v", ErrInternal, err)
		}

		user.Role = role
		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateRole: user_id=%d, role=%s, by=%d", id, role, actorID)
	return models.FromDomainUser(result), nil
}

func (s *Service) getUser(ctx context.Context, op string, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user_id=%d not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: failed to get user_id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) createDriverProfile(ctx context.Context, userID int64) (string, error) {
	n, err := s.driverRepo.NextDriverNumber(ctx)
	if err != nil {
		s.logger.Error("UpdateRole: failed to allocate driver number: %v", err)
		return "", fmt.Errorf("%w: UpdateRole - allocate driver number: %v", ErrInternal, err)
	}
	code := domain.FormatDriverCode(n)

	_, err = s.driverRepo.Create(ctx, &domain.Driver{
		UserID:     userID,
		DriverCode: code,
		Status:     domain.DefaultDriverStatus,
		Rating:     domain.DefaultDriverRating,
		IsActive:   true,
	})
	if err != nil {
		s.logger.Error("UpdateRole: failed to create driver profile code=%s for user_id=%d: %v", code, userID, err)
		return "", fmt.Errorf("%w: UpdateRole - create driver profile: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRole: driver profile code=%s created for user_id=%d", code, userID)
	return code, nil
}

func (s *Service) setDriverActive(ctx context.Context, code string, active bool) error {
	err := s.driverRepo.SetActive(ctx, code, active)
	if err == nil {
		return nil
	}
	if errors.Is(err, driverRepo.ErrDriverNotFound) {
		s.logger.Error("UpdateRole: user holds driver code=%s without a profile", code)
		return fmt.Errorf("%w: UpdateRole - driver profile %s is missing", ErrInternal, code)
	}
	s.logger.Error("UpdateRole: failed to toggle driver=%s: %v", code, err)
	return fmt.Errorf("%w: UpdateRole - driver repository error: %v", ErrInternal, err)
}
