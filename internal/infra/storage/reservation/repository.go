package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PSB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями и их addon-позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var reservationColumns = []string{
	"id",
	"studio_id",
	"user_id",
	"customer_name",
	"reservation_date",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// GetByID получает бронирование по ID вместе с его addon-позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservationRow(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadAddons(ctx, executor, []*domain.Reservation{res}); err != nil {
		return nil, err
	}

	return res, nil
}

// GetLiveByFacilityAndDate получает живые бронирования, занимающие facility
// в указанную дату — вход для индекса конфликтов.
//
// Выборка выполняется ОДИН раз на запрос доступности и переиспользуется для
// всех кандидатных слотов: все кандидаты видят один консистентный снимок.
// Внутри транзакции строки бронирований дополнительно блокируются
// FOR UPDATE OF r; защиту от фантомных вставок даёт SERIALIZABLE-изоляция
// транзакции коммита.
func (r *Repository) GetLiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	liveStatuses := make([]string, len(domain.LiveStatuses))
	for i, s := range domain.LiveStatuses {
		liveStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"r.studio_id",
		"r.user_id",
		"r.customer_name",
		"r.reservation_date",
		"r.status",
		"ra.id",
		"ra.addon_id",
		"ra.facility_id",
		"ra.pricing_type",
		"ra.start_time",
		"ra.end_time",
		"ra.quantity",
		"ra.price",
	).
		From("reservations r").
		Join("reservation_addons ra ON ra.reservation_id = r.id").
		Where(squirrel.Eq{"ra.facility_id": facilityID}).
		Where(squirrel.Eq{"r.reservation_date": date}).
		Where(squirrel.Eq{"r.status": liveStatuses}).
		OrderBy("ra.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLiveByFacilityAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLiveByFacilityAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// Группируем строки join-а по бронированию
	byID := make(map[int64]*domain.Reservation)
	order := make([]*domain.Reservation, 0)

	for rows.Next() {
		var (
			res   domain.Reservation
			addon domain.ReservationAddon
		)

		err := rows.Scan(
			&res.ID,
			&res.StudioID,
			&res.UserID,
			&res.CustomerName,
			&res.ReservationDate,
			&res.Status,
			&addon.ID,
			&addon.AddonID,
			&addon.FacilityID,
			&addon.PricingType,
			&addon.StartTime,
			&addon.EndTime,
			&addon.Quantity,
			&addon.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetLiveByFacilityAndDate - scan row: %v", ErrScanRow, err)
		}

		existing, ok := byID[res.ID]
		if !ok {
			res.Code = domain.ReservationCode(res.ID)
			existing = &res
			byID[res.ID] = existing
			order = append(order, existing)
		}
		addon.ReservationID = existing.ID
		existing.Addons = append(existing.Addons, addon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLiveByFacilityAndDate - rows error: %v", ErrScanRow, err)
	}

	return order, nil
}

// CreateAddon добавляет addon-позицию к бронированию. Это единственная
// операция записи расписания: вызывается только внутри сериализуемой
// транзакции после повторной проверки конфликтов.
func (r *Repository) CreateAddon(ctx context.Context, addon *domain.ReservationAddon) (*domain.ReservationAddon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_addons").
		Columns(
			"reservation_id",
			"addon_id",
			"facility_id",
			"pricing_type",
			"start_time",
			"end_time",
			"quantity",
			"price",
		).
		Values(
			addon.ReservationID,
			addon.AddonID,
			addon.FacilityID,
			addon.PricingType,
			addon.StartTime,
			addon.EndTime,
			addon.Quantity,
			addon.Price,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAddon - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&addon.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAddon - execute insert: %v", ErrExecQuery, err)
	}

	addon.CreatedAt = createdAt.Time
	return addon, nil
}

// GetByUserID получает бронирования пользователя, опционально по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAddons(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// GetByStudioWithFilter получает бронирования студии с гибкой фильтрацией:
// по facility, периоду, статусу и включению неактивных бронирований
func (r *Repository) GetByStudioWithFilter(ctx context.Context, filter domain.StudioReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"studio_id": filter.StudioID})

	if filter.FacilityID != nil {
		// Фильтр по facility идёт через addon-позиции
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("id IN (SELECT reservation_id FROM reservation_addons WHERE facility_id = ?)", *filter.FacilityID),
		)
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, id DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudioWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudioWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAddons(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservationRow сканирует одну строку бронирования
func (r *Repository) scanReservationRow(row *sql.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.StudioID,
		&res.UserID,
		&res.CustomerName,
		&res.ReservationDate,
		&res.Status,
		&res.Notes,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan reservation: %v", ErrScanRow, err)
	}

	res.Code = domain.ReservationCode(res.ID)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.StudioID,
			&res.UserID,
			&res.CustomerName,
			&res.ReservationDate,
			&res.Status,
			&res.Notes,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.Code = domain.ReservationCode(res.ID)
		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// loadAddons подгружает addon-позиции для набора бронирований одним запросом
func (r *Repository) loadAddons(ctx context.Context, executor DBExecutor, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]int64, len(reservations))
	byID := make(map[int64]*domain.Reservation, len(reservations))
	for i, res := range reservations {
		ids[i] = res.ID
		byID[res.ID] = res
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"addon_id",
		"facility_id",
		"pricing_type",
		"start_time",
		"end_time",
		"quantity",
		"price",
		"created_at",
	).
		From("reservation_addons").
		Where(squirrel.Eq{"reservation_id": ids}).
		OrderBy("reservation_id ASC, id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadAddons - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadAddons - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var addon domain.ReservationAddon
		var createdAt sql.NullTime

		err := rows.Scan(
			&addon.ID,
			&addon.ReservationID,
			&addon.AddonID,
			&addon.FacilityID,
			&addon.PricingType,
			&addon.StartTime,
			&addon.EndTime,
			&addon.Quantity,
			&addon.Price,
			&createdAt,
		)
		if err != nil {
			return fmt.Errorf("%w: loadAddons - scan row: %v", ErrScanRow, err)
		}

		addon.CreatedAt = createdAt.Time
		if res, ok := byID[addon.ReservationID]; ok {
			res.Addons = append(res.Addons, addon)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadAddons - rows error: %v", ErrScanRow, err)
	}

	return nil
}
