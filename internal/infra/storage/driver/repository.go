package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	"github.com/m04kA/SMC-PickupService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PickupService/pkg/nullable"
	"github.com/m04kA/SMC-PickupService/pkg/pgerr"
	"github.com/m04kA/SMC-PickupService/pkg/psqlbuilder"
)

var driverColumns = []string{
	"d.id",
	"d.user_id",
	"d.driver_code",
	"d.status",
	"d.current_lat",
	"d.current_lng",
	"d.location_updated_at",
	"d.rating",
	"d.total_ratings",
	"d.total_pickups",
	"d.total_earnings",
	"d.vehicle_make",
	"d.vehicle_model",
	"d.vehicle_year",
	"d.vehicle_plate",
	"d.vehicle_capacity",
	"d.working_hours_start",
	"d.working_hours_end",
	"d.working_days",
	"d.emergency_name",
	"d.emergency_phone",
	"d.emergency_relationship",
	"d.is_active",
	"d.last_active_at",
	"d.created_at",
	"d.updated_at",
	"u.first_name",
	"u.last_name",
	"u.email",
	"u.phone",
	"u.role",
	"u.is_active",
}

// Repository репозиторий профилей водителей
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// NextDriverNumber атомарно выделяет следующий порядковый номер водителя из последовательности
func (r *Repository) NextDriverNumber(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var n int64
	if err := executor.QueryRowContext(ctx, "SELECT nextval('driver_number_seq')").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: NextDriverNumber - nextval: %v", ErrExecQuery, err)
	}
	return n, nil
}

// Create создает профиль водителя
func (r *Repository) Create(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var (
		vehicleMake, vehicleModel *string
		plate, capacity           *string
		year                      *int
		hoursStart, hoursEnd      *string
		contactName, contactPhone *string
		contactRelationship       *string
	)
	if d.Vehicle != nil {
		vehicleMake, vehicleModel = &d.Vehicle.Make, &d.Vehicle.Model
		plate, capacity = &d.Vehicle.LicensePlate, &d.Vehicle.Capacity
		year = &d.Vehicle.Year
	}
	if d.WorkingHours != nil {
		hoursStart, hoursEnd = &d.WorkingHours.Start, &d.WorkingHours.End
	}
	if d.EmergencyContact != nil {
		contactName = &d.EmergencyContact.Name
		contactPhone = &d.EmergencyContact.Phone
		contactRelationship = &d.EmergencyContact.Relationship
	}

	workingDays := d.WorkingDays
	if workingDays == nil {
		workingDays = []string{}
	}

	query, args, err := psqlbuilder.Insert("drivers").
		Columns(
			"user_id",
			"driver_code",
			"status",
			"rating",
			"vehicle_make",
			"vehicle_model",
			"vehicle_year",
			"vehicle_plate",
			"vehicle_capacity",
			"working_hours_start",
			"working_hours_end",
			"working_days",
			"emergency_name",
			"emergency_phone",
			"emergency_relationship",
			"is_active",
		).
		Values(
			d.UserID,
			d.DriverCode,
			d.Status,
			d.Rating,
			vehicleMake,
			vehicleModel,
			year,
			plate,
			capacity,
			hoursStart,
			hoursEnd,
			pq.Array(workingDays),
			contactName,
			contactPhone,
			contactRelationship,
			d.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if _, ok := pgerr.UniqueViolation(err); ok {
			return nil, fmt.Errorf("%w: %s", ErrDriverExists, d.DriverCode)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	d.WorkingDays = workingDays
	return d, nil
}

// GetByCode получает водителя по внешнему идентификатору (D0001) вместе с данными пользователя
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Driver, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectDrivers().
		Where(squirrel.Eq{"d.driver_code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDriver(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan driver: %v", ErrScanRow, err)
	}

	return d, nil
}

// List получает водителей по фильтру, упорядоченных по коду
func (r *Repository) List(ctx context.Context, filter domain.DriverFilter) ([]*domain.Driver, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectDrivers()
	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.is_active": true})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.status": *filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("d.driver_code ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan driver: %v", ErrScanRow, err)
		}
		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return drivers, nil
}

// UpdateStatus меняет статус водителя и обновляет время последней активности
func (r *Repository) UpdateStatus(ctx context.Context, code string, status domain.DriverStatus) error {
	query, args, err := psqlbuilder.Update("drivers").
		Set("status", status).
		Set("last_active_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"driver_code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateStatus", query, args)
}

// UpdateLocation сохраняет текущие координаты водителя
func (r *Repository) UpdateLocation(ctx context.Context, code string, lat, lng float64) error {
	query, args, err := psqlbuilder.Update("drivers").
		Set("current_lat", lat).
		Set("current_lng", lng).
		Set("location_updated_at", squirrel.Expr("NOW()")).
		Set("last_active_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"driver_code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateLocation", query, args)
}

// SetActive включает или выключает профиль водителя при смене роли пользователя
func (r *Repository) SetActive(ctx context.Context, code string, active bool) error {
	query, args, err := psqlbuilder.Update("drivers").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"driver_code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "SetActive", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrDriverNotFound
	}

	return nil
}

func selectDrivers() squirrel.SelectBuilder {
	return psqlbuilder.Select(driverColumns...).
		From("drivers d").
		Join("users u ON u.id = d.user_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var (
		d    domain.Driver
		user domain.User

		lat, lng                  sql.NullFloat64
		locationUpdatedAt         sql.NullTime
		vehicleMake, vehicleModel sql.NullString
		vehiclePlate, vehicleCap  sql.NullString
		vehicleYear               sql.NullInt64
		hoursStart, hoursEnd      sql.NullString
		contactName, contactPhone sql.NullString
		contactRelationship       sql.NullString
		lastActiveAt              sql.NullTime
		workingDays               pq.StringArray
	)

	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.DriverCode,
		&d.Status,
		&lat,
		&lng,
		&locationUpdatedAt,
		&d.Rating,
		&d.TotalRatings,
		&d.TotalPickups,
		&d.TotalEarnings,
		&vehicleMake,
		&vehicleModel,
		&vehicleYear,
		&vehiclePlate,
		&vehicleCap,
		&hoursStart,
		&hoursEnd,
		&workingDays,
		&contactName,
		&contactPhone,
		&contactRelationship,
		&d.IsActive,
		&lastActiveAt,
		&d.CreatedAt,
		&d.UpdatedAt,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		d.CurrentLocation = &domain.Location{Lat: lat.Float64, Lng: lng.Float64, UpdatedAt: locationUpdatedAt.Time}
	}
	if vehicleMake.Valid || vehicleModel.Valid || vehiclePlate.Valid {
		d.Vehicle = &domain.VehicleInfo{
			Make:         vehicleMake.String,
			Model:        vehicleModel.String,
			Year:         int(vehicleYear.Int64),
			LicensePlate: vehiclePlate.String,
			Capacity:     vehicleCap.String,
		}
	}
	if hoursStart.Valid || hoursEnd.Valid {
		d.WorkingHours = &domain.WorkingHours{Start: hoursStart.String, End: hoursEnd.String}
	}
	if contactName.Valid {
		d.EmergencyContact = &domain.EmergencyContact{
			Name:         contactName.String,
			Phone:        contactPhone.String,
			Relationship: contactRelationship.String,
		}
	}
	d.WorkingDays = []string(workingDays)
	if d.WorkingDays == nil {
		d.WorkingDays = []string{}
	}
	d.LastActiveAt = nullable.Time(lastActiveAt)

	user.ID = d.UserID
	user.DriverCode = &d.DriverCode
	d.User = &user

	return &d, nil
}
