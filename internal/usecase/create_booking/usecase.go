package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/user"
	"github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
	"github.com/m04kA/SMC-PickupService/pkg/password"
	"github.com/m04kA/SMC-PickupService/pkg/ptr"
)

const defaultPlaceholderPasswordBytes = 16

// Config параметры use case
type Config struct {
	CodeMaxAttempts          int
	PlaceholderPasswordBytes int
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	hasher       PasswordHasher
	statsCache   StatsCache
	notifier     Notifier
	metrics      Metrics
	cfg          Config
	timeProvider TimeProvider
	logger       Logger

	generateCode func(domain.ServiceType) string
}

// NewUseCase создает новый экземпляр use case.
// statsCache может быть nil, если кеш статистики отключен.
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	hasher PasswordHasher,
	statsCache StatsCache,
	notifier Notifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.CodeMaxAttempts < 1 {
		cfg.CodeMaxAttempts = domain.DefaultBookingCodeAttempts
	}
	if cfg.PlaceholderPasswordBytes < 1 {
		cfg.PlaceholderPasswordBytes = defaultPlaceholderPasswordBytes
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		hasher:       hasher,
		statsCache:   statsCache,
		notifier:     notifier,
		metrics:      metrics,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		generateCode: domain.GenerateBookingCode,
	}
}

// Execute создает бронирование клиента. Новое бронирование всегда в статусе pending,
// цена считается по тарифу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: email=%s, service_type=%s, bag_count=%s, urgent=%t",
		req.Email, req.ServiceType, req.BagCount, req.UrgentPickup)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Находим или создаем клиента
	customer, err := uc.resolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Собираем бронирование
	booking := newBooking(req, customer.ID)
	booking.EstimatedPrice = domain.CalculatePrice(req.ServiceType, req.BagCount, req.UrgentPickup)
	booking.Status = domain.StatusPending
	booking.PaymentStatus = domain.PaymentPending

	// 4. Сохраняем с генерацией уникального кода
	created, err := uc.insert(ctx, booking)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordBookingCreated(string(created.ServiceType))
	uc.invalidateStats(ctx)
	uc.notifier.NotifyNewBooking(created)

	uc.logger.Info("CreateBooking: booking id=%d code=%s created for customer id=%d, price=%.2f",
		created.ID, created.BookingCode, customer.ID, created.EstimatedPrice)
	return models.FromDomainBooking(created), nil
}

// Import создает бронирование с заданным начальным состоянием (заполнение тестовыми данными).
// Переходы статусов не проверяются, уведомления не отправляются.
func (uc *UseCase) Import(ctx context.Context, req *ImportRequest) (*models.BookingResponse, error) {
	uc.logger.Info("ImportBooking: email=%s, status=%s, service_type=%s", req.Email, req.Status, req.ServiceType)

	if err := validateImport(req); err != nil {
		uc.logger.Warn("ImportBooking: validation failed: %v", err)
		return nil, err
	}

	if req.DriverUserID != nil {
		if err := uc.checkDriver(ctx, *req.DriverUserID); err != nil {
			return nil, err
		}
	}

	customer, err := uc.resolveCustomer(ctx, &req.Request)
	if err != nil {
		return nil, err
	}

	booking := newBooking(&req.Request, customer.ID)
	booking.Status = req.Status
	booking.DriverID = req.DriverUserID
	booking.ActualPrice = req.ActualPrice
	booking.EstimatedPrice = domain.CalculatePrice(req.ServiceType, req.BagCount, req.UrgentPickup)
	if req.EstimatedPrice != nil {
		booking.EstimatedPrice = *req.EstimatedPrice
	}
	booking.PaymentStatus = domain.PaymentPending
	if req.PaymentStatus != nil {
		booking.PaymentStatus = *req.PaymentStatus
	}
	if req.Status == domain.StatusCompleted {
		booking.CompletedAt = ptr.Ptr(uc.timeProvider.Now())
	}

	created, err := uc.insert(ctx, booking)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordBookingCreated(string(created.ServiceType))
	uc.invalidateStats(ctx)

	uc.logger.Info("ImportBooking: booking id=%d code=%s imported with status=%s",
		created.ID, created.BookingCode, created.Status)
	return models.FromDomainBooking(created), nil
}

// resolveCustomer находит клиента по email без учета регистра или создает заглушку.
// Одновременное создание того же клиента другим запросом не считается ошибкой.
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (*domain.User, error) {
	customer, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		uc.logger.Error("CreateBooking: failed to get customer email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	secret, err := password.Random(uc.cfg.PlaceholderPasswordBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate placeholder password: %v", ErrInternal, err)
	}
	hash, err := uc.hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash placeholder password: %v", ErrInternal, err)
	}

	customer, err = uc.userRepo.Create(ctx, &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		Address:      ptr.Ptr(req.Address),
		City:         ptr.Ptr(req.City),
		ZipCode:      ptr.Ptr(req.ZipCode),
		IsActive:     true,
	})
	if err == nil {
		uc.logger.Info("CreateBooking: placeholder customer id=%d created for email=%s", customer.ID, req.Email)
		return customer, nil
	}

	if errors.Is(err, userRepo.ErrEmailTaken) {
		customer, err = uc.userRepo.GetByEmail(ctx, req.Email)
		if err == nil {
			return customer, nil
		}
	}

	uc.logger.Error("CreateBooking: failed to create customer email=%s: %v", req.Email, err)
	return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
}

func (uc *UseCase) checkDriver(ctx context.Context, driverUserID int64) error {
	user, err := uc.userRepo.GetByID(ctx, driverUserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("ImportBooking: driver user id=%d not found", driverUserID)
			return ErrInvalidDriver
		}
		uc.logger.Error("ImportBooking: failed to get driver user id=%d: %v", driverUserID, err)
		return fmt.Errorf("%w: failed to get driver: %v", ErrInternal, err)
	}

	if user.Role != domain.RoleDriver {
		uc.logger.Warn("ImportBooking: user id=%d has role=%s, not a driver", driverUserID, user.Role)
		return ErrInvalidDriver
	}

	return nil
}

// insert сохраняет бронирование, перегенерируя код при конфликте уникальности
func (uc *UseCase) insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for attempt := 1; attempt <= uc.cfg.CodeMaxAttempts; attempt++ {
		booking.BookingCode = uc.generateCode(booking.ServiceType)

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err == nil {
			return uc.reload(ctx, created)
		}
		if !errors.Is(err, bookingRepo.ErrBookingCodeTaken) {
			uc.logger.Error("CreateBooking: failed to save booking: %v", err)
			return nil, fmt.Errorf("%w: failed to save booking: %v", ErrInternal, err)
		}

		uc.logger.Warn("CreateBooking: booking code=%s already taken, attempt %d/%d",
			booking.BookingCode, attempt, uc.cfg.CodeMaxAttempts)
	}

	uc.logger.Error("CreateBooking: no free booking code after %d attempts", uc.cfg.CodeMaxAttempts)
	return nil, ErrBookingCodeExhausted
}

// reload перечитывает бронирование вместе с данными клиента и водителя
func (uc *UseCase) reload(ctx context.Context, created *domain.Booking) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, created.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to reload booking id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) invalidateStats(ctx context.Context) {
	if uc.statsCache == nil {
		return
	}
	if err := uc.statsCache.Invalidate(ctx); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate stats cache: %v", err)
	}
}

func newBooking(req *Request, customerID int64) *domain.Booking {
	return &domain.Booking{
		CustomerID: customerID,
		Customer: domain.CustomerSnapshot{
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     strings.TrimSpace(req.Email),
			Phone:     req.Phone,
			Address:   req.Address,
			City:      req.City,
			ZipCode:   req.ZipCode,
		},
		ServiceType:         req.ServiceType,
		BagCount:            req.BagCount,
		UrgentPickup:        req.UrgentPickup,
		PreferredDate:       req.PreferredDate,
		PreferredTime:       req.PreferredTime,
		SpecialInstructions: req.SpecialInstructions,
		Notes:               req.Notes,
		Priority:            domain.PriorityFor(req.ServiceType),
	}
}
