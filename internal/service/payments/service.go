package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PickupService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-PickupService/internal/service/payments/models"
	"github.com/m04kA/SMC-PickupService/pkg/ptr"
)

const (
	operationCharge  = "charge"
	operationConfirm = "confirm"
	operationRefund  = "refund"

	resultSucceeded = "succeeded"
	resultPending   = "pending"
	resultDeclined  = "declined"
	resultError     = "error"

	paymentMethodCard = "card"
)

// Service сервис оплаты бронирований.
// Провайдер работает в минимальных единицах валюты, бронирования хранят цену в основных.
type Service struct {
	bookingRepo BookingRepository
	gateway     PaymentGateway
	statsCache  StatsCache
	metrics     Metrics
	currency    string
	newKey      func() uuid.UUID
	logger      Logger
}

// NewService создает новый экземпляр сервиса оплаты. statsCache может быть nil.
func NewService(
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	statsCache StatsCache,
	metrics Metrics,
	currency string,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		gateway:     gateway,
		statsCache:  statsCache,
		metrics:     metrics,
		currency:    currency,
		newKey:      uuid.New,
		logger:      logger,
	}
}

// CreatePayment списывает предварительную стоимость бронирования.
// Ссылка провайдера сохраняется всегда, статус paid только при мгновенном успехе.
func (s *Service) CreatePayment(ctx context.Context, bookingID int64) (*models.ChargeResponse, error) {
	booking, err := s.getBooking(ctx, "CreatePayment", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.PaymentStatus == domain.PaymentPaid {
		s.logger.Warn("CreatePayment: booking id=%d already paid", bookingID)
		return nil, fmt.Errorf("%w: booking %s", ErrAlreadyPaid, booking.BookingCode)
	}

	amount := domain.ToMinorUnits(booking.EstimatedPrice)
	charge, err := s.gateway.CreateCharge(ctx, paymentgateway.ChargeRequest{
		Amount:    amount,
		Currency:  s.currency,
		Reference: booking.BookingCode,
		Metadata: map[string]string{
			"bookingId":   booking.BookingCode,
			"serviceType": string(booking.ServiceType),
		},
	}, s.newKey())
	if err != nil {
		if errors.Is(err, paymentgateway.ErrPaymentDeclined) {
			s.metrics.RecordPayment(operationCharge, resultDeclined)
			s.markFailed(ctx, bookingID)
			s.logger.Warn("CreatePayment: charge declined for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: booking %s", ErrPaymentDeclined, booking.BookingCode)
		}
		s.metrics.RecordPayment(operationCharge, resultError)
		s.logger.Error("CreatePayment: gateway error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CreatePayment - gateway error: %v", ErrInternal, err)
	}

	patch := domain.BookingPatch{
		PaymentReference: ptr.Ptr(charge.ID),
		PaymentMethod:    ptr.Ptr(paymentMethodCard),
	}
	paymentStatus := booking.PaymentStatus
	if charge.Succeeded() {
		paymentStatus = domain.PaymentPaid
		patch.PaymentStatus = &paymentStatus
	}

	if err := s.bookingRepo.Update(ctx, bookingID, patch); err != nil {
		s.logger.Error("CreatePayment: failed to save charge=%s for booking id=%d: %v", charge.ID, bookingID, err)
		return nil, fmt.Errorf("%w: CreatePayment - repository error: %v", ErrInternal, err)
	}

	if charge.Succeeded() {
		s.metrics.RecordPayment(operationCharge, resultSucceeded)
	} else {
		s.metrics.RecordPayment(operationCharge, resultPending)
	}

	s.logger.Info("CreatePayment: charge=%s for booking id=%d, status=%s", charge.ID, bookingID, charge.Status)
	return &models.ChargeResponse{
		BookingID:        bookingID,
		PaymentReference: charge.ID,
		Status:           charge.Status,
		PaymentStatus:    string(paymentStatus),
		Amount:           domain.FromMinorUnits(charge.Amount),
		Currency:         charge.Currency,
	}, nil
}

// ConfirmPayment сверяет платеж с провайдером по его ссылке.
// При успехе бронирование получает статус paid и фактическую цену из суммы списания.
func (s *Service) ConfirmPayment(ctx context.Context, reference string) (*models.ConfirmResponse, error) {
	booking, err := s.bookingRepo.GetByPaymentReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ConfirmPayment: no booking for reference=%s", reference)
			return nil, fmt.Errorf("%w: reference=%s", ErrPaymentNotFound, reference)
		}
		s.logger.Error("ConfirmPayment: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: ConfirmPayment - repository error: %v", ErrInternal, err)
	}

	charge, err := s.getCharge(ctx, "ConfirmPayment", reference)
	if err != nil {
		s.metrics.RecordPayment(operationConfirm, resultError)
		return nil, err
	}

	if !charge.Succeeded() {
		s.metrics.RecordPayment(operationConfirm, resultPending)
		s.logger.Info("ConfirmPayment: charge=%s not succeeded yet, status=%s", reference, charge.Status)
		return &models.ConfirmResponse{
			Success:       false,
			BookingID:     booking.ID,
			Status:        charge.Status,
			PaymentStatus: string(booking.PaymentStatus),
		}, nil
	}

	actualPrice := domain.FromMinorUnits(charge.Amount)
	if err := s.bookingRepo.Update(ctx, booking.ID, domain.BookingPatch{
		PaymentStatus: ptr.Ptr(domain.PaymentPaid),
		ActualPrice:   &actualPrice,
	}); err != nil {
		s.logger.Error("ConfirmPayment: failed to update booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: ConfirmPayment - repository error: %v", ErrInternal, err)
	}

	s.metrics.RecordPayment(operationConfirm, resultSucceeded)
	s.invalidateStats(ctx)

	s.logger.Info("ConfirmPayment: booking id=%d paid, amount=%.2f", booking.ID, actualPrice)
	return &models.ConfirmResponse{
		Success:       true,
		BookingID:     booking.ID,
		Status:        charge.Status,
		PaymentStatus: string(domain.PaymentPaid),
		ActualPrice:   &actualPrice,
	}, nil
}

// RefundPayment возвращает деньги по платежу бронирования
func (s *Service) RefundPayment(ctx context.Context, bookingID int64, req *models.RefundRequest) (*models.RefundResponse, error) {
	var amount *int64
	if req != nil && req.Amount != nil {
		if *req.Amount <= 0 {
			s.logger.Warn("RefundPayment: non-positive amount for booking id=%d", bookingID)
			return nil, fmt.Errorf("%w: refund amount must be positive", ErrInvalidInput)
		}
		amount = ptr.Ptr(domain.ToMinorUnits(*req.Amount))
	}

	booking, err := s.getBooking(ctx, "RefundPayment", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.PaymentReference == nil {
		s.logger.Warn("RefundPayment: booking id=%d has no payment", bookingID)
		return nil, fmt.Errorf("%w: booking %s has no payment", ErrPaymentNotFound, booking.BookingCode)
	}

	refund, err := s.gateway.Refund(ctx, *booking.PaymentReference, amount)
	if err != nil {
		switch {
		case errors.Is(err, paymentgateway.ErrChargeNotFound):
			s.metrics.RecordPayment(operationRefund, resultError)
			s.logger.Warn("RefundPayment: charge=%s unknown to gateway", *booking.PaymentReference)
			return nil, fmt.Errorf("%w: charge=%s", ErrPaymentNotFound, *booking.PaymentReference)
		case errors.Is(err, paymentgateway.ErrPaymentDeclined):
			s.metrics.RecordPayment(operationRefund, resultDeclined)
			s.logger.Warn("RefundPayment: refund declined for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: refund for booking %s", ErrPaymentDeclined, booking.BookingCode)
		}
		s.metrics.RecordPayment(operationRefund, resultError)
		s.logger.Error("RefundPayment: gateway error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: RefundPayment - gateway error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.Update(ctx, bookingID, domain.BookingPatch{
		PaymentStatus: ptr.Ptr(domain.PaymentRefunded),
	}); err != nil {
		s.logger.Error("RefundPayment: failed to update booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: RefundPayment - repository error: %v", ErrInternal, err)
	}

	s.metrics.RecordPayment(operationRefund, resultSucceeded)
	s.invalidateStats(ctx)

	s.logger.Info("RefundPayment: refund=%s for booking id=%d", refund.ID, bookingID)
	return &models.RefundResponse{
		BookingID:     bookingID,
		RefundID:      refund.ID,
		Status:        refund.Status,
		PaymentStatus: string(domain.PaymentRefunded),
		Amount:        domain.FromMinorUnits(refund.Amount),
	}, nil
}

// GetPaymentStatus возвращает состояние платежа у провайдера или pending, если платежа нет
func (s *Service) GetPaymentStatus(ctx context.Context, bookingID int64) (*models.StatusResponse, error) {
	booking, err := s.getBooking(ctx, "GetPaymentStatus", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.PaymentReference == nil {
		return &models.StatusResponse{
			BookingID: bookingID,
			Status:    string(domain.PaymentPending),
			Message:   "No payment created yet",
		}, nil
	}

	charge, err := s.getCharge(ctx, "GetPaymentStatus", *booking.PaymentReference)
	if err != nil {
		return nil, err
	}

	return &models.StatusResponse{
		BookingID:        bookingID,
		Status:           charge.Status,
		PaymentReference: booking.PaymentReference,
		Amount:           ptr.Ptr(domain.FromMinorUnits(charge.Amount)),
		Currency:         charge.Currency,
		Created:          ptr.Ptr(time.Unix(charge.Created, 0).UTC()),
	}, nil
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

func (s *Service) getCharge(ctx context.Context, op, chargeID string) (*paymentgateway.Charge, error) {
	charge, err := s.gateway.GetCharge(ctx, chargeID)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrChargeNotFound) {
			s.logger.Warn("%s: charge=%s unknown to gateway", op, chargeID)
			return nil, fmt.Errorf("%w: charge=%s", ErrPaymentNotFound, chargeID)
		}
		s.logger.Error("%s: gateway error for charge=%s: %v", op, chargeID, err)
		return nil, fmt.Errorf("%w: %s - gateway error: %v", ErrInternal, op, err)
	}
	return charge, nil
}

func (s *Service) markFailed(ctx context.Context, bookingID int64) {
	if err := s.bookingRepo.Update(ctx, bookingID, domain.BookingPatch{
		PaymentStatus: ptr.Ptr(domain.PaymentFailed),
	}); err != nil {
		s.logger.Error("markFailed: failed to update booking id=%d: %v", bookingID, err)
	}
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidateStats: failed to invalidate stats cache: %v", err)
	}
}
