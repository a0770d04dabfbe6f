package studio

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PSB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения студий, facility и услуг
// и обновления рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория студий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает студию по ID с распарсенными рабочими часами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"city",
		"owner_user_id",
		"operating_hours",
		"created_at",
		"updated_at",
	).
		From("studios").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		studio    domain.Studio
		hoursRaw  []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&studio.ID,
		&studio.Name,
		&studio.City,
		&studio.OwnerUserID,
		&hoursRaw,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStudioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan studio: %v", ErrScanRow, err)
	}

	// operating_hours хранится как JSONB: {"monday": {"open": "09:00", ...}, ...}
	// Пустой/NULL JSON означает: у студии нет собственного расписания,
	// для всех дней действует дефолтная политика
	studio.OperatingHours = domain.OperatingHours{}
	if len(hoursRaw) > 0 {
		if err := json.Unmarshal(hoursRaw, &studio.OperatingHours); err != nil {
			return nil, fmt.Errorf("%w: GetByID - decode operating_hours: %v", ErrScanRow, err)
		}
	}

	studio.CreatedAt = createdAt.Time
	studio.UpdatedAt = updatedAt.Time

	return &studio, nil
}

// UpdateOperatingHours заменяет недельное расписание студии целиком
func (r *Repository) UpdateOperatingHours(ctx context.Context, studioID int64, hours domain.OperatingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("%w: UpdateOperatingHours - encode hours: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("studios").
		Set("operating_hours", encoded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": studioID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateOperatingHours - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateOperatingHours - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateOperatingHours - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStudioNotFound
	}

	return nil
}

// GetFacilityByID получает facility по ID
func (r *Repository) GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"studio_id",
		"name",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		facility  domain.Facility
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&facility.StudioID,
		&facility.Name,
		&facility.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityByID - scan facility: %v", ErrScanRow, err)
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return &facility, nil
}

// GetAddonByID получает услугу по ID
func (r *Repository) GetAddonByID(ctx context.Context, id int64) (*domain.Addon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"facility_id",
		"name",
		"pricing_type",
		"price",
		"created_at",
		"updated_at",
	).
		From("addons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddonByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		addon     domain.Addon
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&addon.ID,
		&addon.FacilityID,
		&addon.Name,
		&addon.PricingType,
		&addon.Price,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAddonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddonByID - scan addon: %v", ErrScanRow, err)
	}

	addon.CreatedAt = createdAt.Time
	addon.UpdatedAt = updatedAt.Time

	return &addon, nil
}
