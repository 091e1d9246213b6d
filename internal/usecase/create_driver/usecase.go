package create_driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	userRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/user"
	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
	"github.com/m04kA/SMC-PickupService/pkg/ptr"
)

// UseCase use case для создания водителя
type UseCase struct {
	userRepo   UserRepository
	driverRepo DriverRepository
	hasher     PasswordHasher
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	driverRepo DriverRepository,
	hasher PasswordHasher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:   userRepo,
		driverRepo: driverRepo,
		hasher:     hasher,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute создает пользователя с ролью driver и профиль водителя в одной транзакции.
// Код водителя берется из последовательности, поэтому параллельные вызовы не получают одинаковый код.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.DriverResponse, error) {
	uc.logger.Info("CreateDriver: email=%s", req.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateDriver: validation failed: %v", err)
		return nil, err
	}

	// 2. Хешируем пароль до начала транзакции
	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		uc.logger.Error("CreateDriver: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	var result *domain.Driver

	// 3. Пользователь и профиль создаются атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		n, err := uc.driverRepo.NextDriverNumber(txCtx)
		if err != nil {
			uc.logger.Error("CreateDriver: failed to allocate driver number: %v", err)
			return fmt.Errorf("%w: failed to allocate driver number: %v", ErrInternal, err)
		}
		code := domain.FormatDriverCode(n)

		user, err := uc.userRepo.Create(txCtx, &domain.User{
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Email:        strings.TrimSpace(req.Email),
			Phone:        req.Phone,
			PasswordHash: hash,
			Role:         domain.RoleDriver,
			DriverCode:   ptr.Ptr(code),
			IsActive:     true,
		})
		if err != nil {
			if errors.Is(err, userRepo.ErrEmailTaken) {
				uc.logger.Warn("CreateDriver: email=%s already registered", req.Email)
				return ErrDuplicateIdentity
			}
			uc.logger.Error("CreateDriver: failed to create user: %v", err)
			return fmt.Errorf("%w: failed to create user: %v", ErrInternal, err)
		}

		driver, err := uc.driverRepo.Create(txCtx, &domain.Driver{
			UserID:           user.ID,
			DriverCode:       code,
			Status:           domain.DefaultDriverStatus,
			Rating:           domain.DefaultDriverRating,
			Vehicle:          req.Vehicle,
			WorkingHours:     req.WorkingHours,
			WorkingDays:      normalizeDays(req.WorkingDays),
			EmergencyContact: req.EmergencyContact,
			IsActive:         true,
		})
		if err != nil {
			uc.logger.Error("CreateDriver: failed to create driver profile code=%s: %v", code, err)
			return fmt.Errorf("%w: failed to create driver: %v", ErrInternal, err)
		}

		driver.User = user
		result = driver
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateIdentity) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateDriver: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateDriver: driver code=%s created for user id=%d", result.DriverCode, result.UserID)
	return models.FromDomainDriver(result), nil
}

func normalizeDays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, strings.ToLower(day))
	}
	return out
}
