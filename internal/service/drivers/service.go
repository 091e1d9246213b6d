package drivers

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	driverRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/driver"
	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
	bookingModels "github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
	"github.com/m04kA/SMC-PickupService/pkg/ptr"
)

// Service сервис справочника водителей
type Service struct {
	driverRepo   DriverRepository
	bookingRepo  BookingRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса водителей
func NewService(
	driverRepo DriverRepository,
	bookingRepo BookingRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		driverRepo:   driverRepo,
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetDashboard собирает панель водителя за сегодняшний день по локальному времени сервера.
// В выборку попадают бронирования, у которых желаемая дата или дата создания приходится на сегодня.
func (s *Service) GetDashboard(ctx context.Context, driverCode string) (*models.DashboardResponse, error) {
	driver, err := s.getDriver(ctx, "GetDashboard", driverCode)
	if err != nil {
		return nil, err
	}

	today := domain.DayRange(s.timeProvider.Now())
	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{
		DriverID:                 ptr.Ptr(driver.UserID),
		PreferredOrCreatedWithin: &today,
	})
	if err != nil {
		s.logger.Error("GetDashboard: failed to list bookings for driver=%s: %v", driverCode, err)
		return nil, fmt.Errorf("%w: GetDashboard - repository error: %v", ErrInternal, err)
	}

	dashboard := &domain.DriverDashboard{
		Driver:   driver,
		Stats:    domain.ComputeDashboardStats(bookings),
		Bookings: bookings,
	}

	s.logger.Info("GetDashboard: driver=%s, bookings today=%d", driverCode, len(bookings))
	return models.FromDomainDashboard(dashboard), nil
}

// GetDriverBookings получает бронирования водителя, новые первыми
func (s *Service) GetDriverBookings(ctx context.Context, req *models.DriverBookingsRequest) (*bookingModels.BookingListResponse, error) {
	driver, err := s.getDriver(ctx, "GetDriverBookings", req.DriverID)
	if err != nil {
		return nil, err
	}

	filter := domain.BookingFilter{DriverID: ptr.Ptr(driver.UserID)}

	if req.Status != nil && *req.Status != domain.FilterAll {
		status, err := bookingModels.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetDriverBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	if req.Date != nil {
		day := domain.DayRange(*req.Date)
		filter.PreferredOrCreatedWithin = &day
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetDriverBookings: repository error for driver=%s: %v", req.DriverID, err)
		return nil, fmt.Errorf("%w: GetDriverBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDriverBookings: driver=%s, found %d bookings", req.DriverID, len(bookings))
	return bookingModels.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус водителя и уведомляет администраторов
func (s *Service) UpdateStatus(ctx context.Context, driverCode string, req *models.UpdateStatusRequest) (*models.DriverResponse, error) {
	status, err := models.ToDomainDriverStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for driver=%s", req.Status, driverCode)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverCode, status); err != nil {
		return nil, s.wrapRepoError("UpdateStatus", driverCode, err)
	}

	driver, err := s.getDriver(ctx, "UpdateStatus", driverCode)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyDriverStatusChange(driverCode, status)

	s.logger.Info("UpdateStatus: driver=%s is now %s", driverCode, status)
	return models.FromDomainDriver(driver), nil
}

// UpdateLocation сохраняет координаты водителя
func (s *Service) UpdateLocation(ctx context.Context, driverCode string, req *models.UpdateLocationRequest) (*models.DriverResponse, error) {
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		s.logger.Warn("UpdateLocation: coordinates out of range for driver=%s: lat=%f, lng=%f", driverCode, req.Lat, req.Lng)
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}

	if err := s.driverRepo.UpdateLocation(ctx, driverCode, req.Lat, req.Lng); err != nil {
		return nil, s.wrapRepoError("UpdateLocation", driverCode, err)
	}

	driver, err := s.getDriver(ctx, "UpdateLocation", driverCode)
	if err != nil {
		return nil, err
	}

	return models.FromDomainDriver(driver), nil
}

// GetAvailableDrivers получает активных водителей со статусом available
func (s *Service) GetAvailableDrivers(ctx context.Context) (*models.DriverListResponse, error) {
	return s.list(ctx, "GetAvailableDrivers", domain.DriverFilter{
		Status:     ptr.Ptr(domain.DriverAvailable),
		ActiveOnly: true,
	})
}

// GetAllDrivers получает всех активных водителей
func (s *Service) GetAllDrivers(ctx context.Context) (*models.DriverListResponse, error) {
	return s.list(ctx, "GetAllDrivers", domain.DriverFilter{ActiveOnly: true})
}

func (s *Service) list(ctx context.Context, op string, filter domain.DriverFilter) (*models.DriverListResponse, error) {
	drivers, err := s.driverRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: found %d drivers", op, len(drivers))
	return models.FromDomainDriverList(drivers), nil
}

func (s *Service) getDriver(ctx context.Context, op, driverCode string) (*domain.Driver, error) {
	driver, err := s.driverRepo.GetByCode(ctx, driverCode)
	if err != nil {
		return nil, s.wrapRepoError(op, driverCode, err)
	}
	return driver, nil
}

func (s *Service) wrapRepoError(op, driverCode string, err error) error {
	if errors.Is(err, driverRepo.ErrDriverNotFound) {
		s.logger.Warn("%s: driver=%s not found", op, driverCode)
		return fmt.Errorf("%w: %s", ErrDriverNotFound, driverCode)
	}
	s.logger.Error("%s: repository error for driver=%s: %v", op, driverCode, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
