package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	"github.com/m04kA/SMC-PickupService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PickupService/pkg/nullable"
	"github.com/m04kA/SMC-PickupService/pkg/pgerr"
	"github.com/m04kA/SMC-PickupService/pkg/psqlbuilder"
)

const bookingCodeConstraint = "bookings_booking_code_key"

// bookingColumns колонки выборки бронирования вместе с данными клиента и водителя
var bookingColumns = []string{
	"b.id",
	"b.booking_code",
	"b.customer_id",
	"b.driver_id",
	"b.first_name",
	"b.last_name",
	"b.email",
	"b.phone",
	"b.address",
	"b.city",
	"b.zip_code",
	"b.service_type",
	"b.bag_count",
	"b.urgent_pickup",
	"b.preferred_date",
	"b.preferred_time",
	"b.special_instructions",
	"b.notes",
	"b.priority",
	"b.estimated_price",
	"b.actual_price",
	"b.status",
	"b.payment_status",
	"b.payment_method",
	"b.payment_reference",
	"b.completed_at",
	"b.driver_notes",
	"b.created_at",
	"b.updated_at",
	"cu.first_name",
	"cu.last_name",
	"cu.email",
	"cu.phone",
	"du.first_name",
	"du.last_name",
	"du.email",
	"du.phone",
	"du.driver_code",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("users cu ON cu.id = b.customer_id").
		LeftJoin("users du ON du.id = b.driver_id")
}

// Create сохраняет новое бронирование.
// При совпадении booking_code возвращает ErrBookingCodeTaken, вызывающий генерирует новый код.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_code",
			"customer_id",
			"driver_id",
			"first_name",
			"last_name",
			"email",
			"phone",
			"address",
			"city",
			"zip_code",
			"service_type",
			"bag_count",
			"urgent_pickup",
			"preferred_date",
			"preferred_time",
			"special_instructions",
			"notes",
			"priority",
			"estimated_price",
			"actual_price",
			"status",
			"payment_status",
			"payment_method",
			"completed_at",
		).
		Values(
			booking.BookingCode,
			booking.CustomerID,
			booking.DriverID,
			booking.Customer.FirstName,
			booking.Customer.LastName,
			booking.Customer.Email,
			booking.Customer.Phone,
			booking.Customer.Address,
			booking.Customer.City,
			booking.Customer.ZipCode,
			booking.ServiceType,
			booking.BagCount,
			booking.UrgentPickup,
			booking.PreferredDate,
			booking.PreferredTime,
			booking.SpecialInstructions,
			booking.Notes,
			booking.Priority,
			booking.EstimatedPrice,
			booking.ActualPrice,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentMethod,
			booking.CompletedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := pgerr.UniqueViolation(err); ok && constraint == bookingCodeConstraint {
			return nil, fmt.Errorf("%w: %s", ErrBookingCodeTaken, booking.BookingCode)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с данными клиента и водителя.
// Внутри транзакции строка бронирования блокируется (FOR UPDATE OF b).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().Where(squirrel.Eq{"b.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByPaymentReference получает бронирование по идентификатору платежа у провайдера
func (r *Repository) GetByPaymentReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.payment_reference": reference}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentReference - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentReference - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, новые первыми.
// Пустой фильтр возвращает все бронирования.
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listBuilder(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Update применяет изменения из patch. Поля с nil не трогаются.
func (r *Repository) Update(ctx context.Context, id int64, patch domain.BookingPatch) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
	}
	if patch.DriverNotes != nil {
		updateBuilder = updateBuilder.Set("driver_notes", *patch.DriverNotes)
	}
	if patch.ActualPrice != nil {
		updateBuilder = updateBuilder.Set("actual_price", *patch.ActualPrice)
	}
	if patch.PaymentMethod != nil {
		updateBuilder = updateBuilder.Set("payment_method", *patch.PaymentMethod)
	}
	if patch.PaymentStatus != nil {
		updateBuilder = updateBuilder.Set("payment_status", *patch.PaymentStatus)
	}
	if patch.PaymentReference != nil {
		updateBuilder = updateBuilder.Set("payment_reference", *patch.PaymentReference)
	}
	if patch.CompletedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *patch.CompletedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// AssignDriver назначает водителя и выставляет статус
func (r *Repository) AssignDriver(ctx context.Context, id int64, driverUserID int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("driver_id", driverUserID).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AssignDriver - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "AssignDriver", query, args)
}

// Stats считает агрегаты по бронированиям.
// Границы периода включительные по календарным дням, каждая граница опциональна.
func (r *Repository) Stats(ctx context.Context, period domain.StatsRange) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := statsBuilder(period).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalBookings,
		&stats.TotalRevenue,
		&stats.CompletedBookings,
		&stats.PendingBookings,
		&stats.EmergencyBookings,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan aggregates: %v", ErrScanRow, err)
	}

	return &stats, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// listBuilder строит выборку бронирований по фильтру
func listBuilder(filter domain.BookingFilter) squirrel.SelectBuilder {
	selectBuilder := selectBookings()

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.ServiceType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.service_type": *filter.ServiceType})
	}
	if filter.DriverID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.driver_id": *filter.DriverID})
	}
	if filter.CreatedWithin != nil {
		selectBuilder = selectBuilder.Where(inRange("b.created_at", *filter.CreatedWithin))
	}
	if filter.PreferredOrCreatedWithin != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			inRange("b.preferred_date", *filter.PreferredOrCreatedWithin),
			inRange("b.created_at", *filter.PreferredOrCreatedWithin),
		})
	}

	return selectBuilder.OrderBy("b.created_at DESC", "b.id DESC")
}

// statsBuilder строит агрегирующий запрос статистики
func statsBuilder(period domain.StatsRange) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(estimated_price), 0)",
	).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusCompleted)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusPending)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE service_type = ?)", domain.ServiceEmergency)).
		From("bookings")

	if period.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": domain.DayRange(*period.From).Start})
	}
	if period.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": domain.DayRange(*period.To).End})
	}

	return selectBuilder
}

func inRange(column string, r domain.TimeRange) squirrel.And {
	return squirrel.And{
		squirrel.GtOrEq{column: r.Start},
		squirrel.Lt{column: r.End},
	}
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b        domain.Booking
		driverID sql.NullInt64

		preferredDate, completedAt                        sql.NullTime
		preferredTime, specialInstructions, notes         sql.NullString
		paymentMethod, paymentReference, driverNotes      sql.NullString
		actualPrice                                       sql.NullFloat64
		customer                                          domain.UserSummary
		driverFirst, driverLast, driverEmail, driverPhone sql.NullString
		driverCode                                        sql.NullString
	)

	err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.CustomerID,
		&driverID,
		&b.Customer.FirstName,
		&b.Customer.LastName,
		&b.Customer.Email,
		&b.Customer.Phone,
		&b.Customer.Address,
		&b.Customer.City,
		&b.Customer.ZipCode,
		&b.ServiceType,
		&b.BagCount,
		&b.UrgentPickup,
		&preferredDate,
		&preferredTime,
		&specialInstructions,
		&notes,
		&b.Priority,
		&b.EstimatedPrice,
		&actualPrice,
		&b.Status,
		&b.PaymentStatus,
		&paymentMethod,
		&paymentReference,
		&completedAt,
		&driverNotes,
		&b.CreatedAt,
		&b.UpdatedAt,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&driverFirst,
		&driverLast,
		&driverEmail,
		&driverPhone,
		&driverCode,
	)
	if err != nil {
		return nil, err
	}

	customer.ID = b.CustomerID
	b.CustomerUser = &customer

	b.PreferredDate = nullable.Time(preferredDate)
	b.CompletedAt = nullable.Time(completedAt)
	b.PreferredTime = nullable.String(preferredTime)
	b.SpecialInstructions = nullable.String(specialInstructions)
	b.Notes = nullable.String(notes)
	b.PaymentMethod = nullable.String(paymentMethod)
	b.PaymentReference = nullable.String(paymentReference)
	b.DriverNotes = nullable.String(driverNotes)
	b.ActualPrice = nullable.Float64(actualPrice)

	if driverID.Valid {
		b.DriverID = &driverID.Int64
		b.DriverUser = &domain.UserSummary{
			ID:         driverID.Int64,
			FirstName:  driverFirst.String,
			LastName:   driverLast.String,
			Email:      driverEmail.String,
			Phone:      driverPhone.String,
			DriverCode: nullable.String(driverCode),
		}
	}

	return &b, nil
}
