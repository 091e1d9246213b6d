package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/user"
	"github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
	"github.com/m04kA/SMC-PickupService/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	statsCache   StatsCache
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// statsCache может быть nil, тогда статистика всегда считается в БД.
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	statsCache StatsCache,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		statsCache:   statsCache,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// FindAll получает бронирования по фильтрам, новые первыми.
// Фильтр date совпадает с календарным днем создания.
func (s *Service) FindAll(ctx context.Context, req *models.FindAllRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("FindAll: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("FindAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: FindAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("FindAll: found %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// FindByID получает бронирование по ID
func (s *Service) FindByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "FindByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus меняет статус по графу переходов и применяет дополнительные поля.
// Бронирование блокируется на время транзакции, поэтому параллельные изменения выполняются по очереди.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d, status=%s", id, req.Status)

	next, patch, err := s.buildPatch(req)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid request for booking id=%d: %v", id, err)
		return nil, err
	}

	var (
		previous domain.BookingStatus
		updated  *domain.Booking
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}
		previous = booking.Status

		if err := domain.ValidateTransition(booking.Status, next); err != nil {
			s.logger.Warn("UpdateStatus: booking id=%d: %v", id, err)
			return fmt.Errorf("%w: booking %s: %w", ErrInvalidTransition, booking.BookingCode, err)
		}

		if next.RequiresDriver() && !booking.HasDriver() {
			s.logger.Warn("UpdateStatus: booking id=%d has no driver for status=%s", id, next)
			return fmt.Errorf("%w: booking %s to %s", ErrDriverRequired, booking.BookingCode, next)
		}

		if next == domain.StatusCompleted {
			patch.CompletedAt = ptr.Ptr(s.timeProvider.Now())
		}

		if err := s.bookingRepo.Update(txCtx, id, patch); err != nil {
			s.logger.Error("UpdateStatus: failed to update booking id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		updated, err = s.getBooking(txCtx, "UpdateStatus", id)
		return err
	})
	if err != nil {
		return nil, s.wrapTxError("UpdateStatus", err)
	}

	s.metrics.RecordStatusTransition(string(previous), string(next))
	s.invalidateStats(ctx)
	s.notifier.NotifyStatusChange(updated)

	s.logger.Info("UpdateStatus: booking id=%d moved from %s to %s", id, previous, next)
	return models.FromDomainBooking(updated), nil
}

// AssignDriver назначает водителя и переводит бронирование в статус назначения.
// Граф переходов здесь не проверяется: назначение на бронирование in-progress возвращает его в scheduled.
func (s *Service) AssignDriver(ctx context.Context, bookingID, driverUserID int64) (*models.BookingResponse, error) {
	s.logger.Info("AssignDriver: booking id=%d, driver user id=%d", bookingID, driverUserID)

	var (
		previous domain.BookingStatus
		updated  *domain.Booking
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "AssignDriver", bookingID)
		if err != nil {
			return err
		}
		previous = booking.Status

		if err := s.checkDriver(txCtx, driverUserID); err != nil {
			return err
		}

		status := domain.StatusOnAssignment(booking.Status)
		if err := s.bookingRepo.AssignDriver(txCtx, bookingID, driverUserID, status); err != nil {
			s.logger.Error("AssignDriver: failed to assign driver to booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: AssignDriver - repository error: %v", ErrInternal, err)
		}

		updated, err = s.getBooking(txCtx, "AssignDriver", bookingID)
		return err
	})
	if err != nil {
		return nil, s.wrapTxError("AssignDriver", err)
	}

	s.metrics.RecordDriverAssigned()
	if previous != updated.Status {
		s.metrics.RecordStatusTransition(string(previous), string(updated.Status))
	}
	s.invalidateStats(ctx)
	s.notifier.NotifyStatusChange(updated)

	s.logger.Info("AssignDriver: driver user id=%d assigned to booking id=%d, status %s -> %s",
		driverUserID, bookingID, previous, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// GetStats считает агрегаты по бронированиям за период. Пустой набор дает нули.
func (s *Service) GetStats(ctx context.Context, req *models.StatsRequest) (*models.StatsResponse, error) {
	period := domain.StatsRange{From: req.StartDate, To: req.EndDate}

	// Поколение кеша читается до запроса в БД: инвалидация после этого момента
	// отправит вычисленный результат в устаревшее поколение
	var (
		cacheVersion int64
		cacheUsable  bool
	)
	if s.statsCache != nil {
		cached, version, err := s.statsCache.Get(ctx, period)
		if err != nil {
			s.logger.Warn("GetStats: cache read failed: %v", err)
		} else {
			cacheVersion, cacheUsable = version, true
		}
		if cached != nil {
			return models.FromDomainStats(cached), nil
		}
	}

	stats, err := s.bookingRepo.Stats(ctx, period)
	if err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	if cacheUsable {
		if err := s.statsCache.Set(ctx, period, cacheVersion, stats); err != nil {
			s.logger.Warn("GetStats: cache write failed: %v", err)
		}
	}

	return models.FromDomainStats(stats), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) checkDriver(ctx context.Context, driverUserID int64) error {
	user, err := s.userRepo.GetByID(ctx, driverUserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("AssignDriver: driver user id=%d not found", driverUserID)
			return fmt.Errorf("%w: user id=%d not found", ErrInvalidAssignment, driverUserID)
		}
		s.logger.Error("AssignDriver: repository error for user id=%d: %v", driverUserID, err)
		return fmt.Errorf("%w: AssignDriver - repository error: %v", ErrInternal, err)
	}

	if user.Role != domain.RoleDriver {
		s.logger.Warn("AssignDriver: user id=%d has role=%s", driverUserID, user.Role)
		return fmt.Errorf("%w: user id=%d is not a driver", ErrInvalidAssignment, driverUserID)
	}
	return nil
}

// buildPatch проверяет запрос смены статуса и собирает изменения без completedAt
func (s *Service) buildPatch(req *models.UpdateStatusRequest) (domain.BookingStatus, domain.BookingPatch, error) {
	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		return "", domain.BookingPatch{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	patch := domain.BookingPatch{
		Status:        &next,
		DriverNotes:   req.DriverNotes,
		ActualPrice:   req.ActualPrice,
		PaymentMethod: req.PaymentMethod,
	}

	if req.DriverNotes != nil && len(*req.DriverNotes) > domain.MaxNotesLength {
		return "", patch, fmt.Errorf("%w: driverNotes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.ActualPrice != nil && *req.ActualPrice < 0 {
		return "", patch, fmt.Errorf("%w: actualPrice must not be negative", ErrInvalidInput)
	}

	if req.PaymentStatus != nil {
		paymentStatus, err := models.ToDomainPaymentStatus(*req.PaymentStatus)
		if err != nil {
			return "", patch, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		patch.PaymentStatus = &paymentStatus
	}

	return next, patch, nil
}

// wrapTxError оставляет доменные ошибки как есть, остальное считается внутренней ошибкой
func (s *Service) wrapTxError(op string, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrDriverRequired),
		errors.Is(err, ErrInvalidAssignment),
		errors.Is(err, ErrInternal):
		return err
	}
	s.logger.Error("%s: transaction failed: %v", op, err)
	return fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, op, err)
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidateStats: failed to invalidate stats cache: %v", err)
	}
}
