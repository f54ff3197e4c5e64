package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// dayLockPrefix префикс ключа advisory lock на календарный день
const dayLockPrefix = "appointments:"

var selectColumns = []string{
	"a.id",
	"a.client_id",
	"a.service_id",
	"a.start_at",
	"a.price_at_booking",
	"a.status",
	"a.notes",
	"a.created_at",
	"a.updated_at",
	"s.name",
	"s.duration_minutes",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) selectAppointments() squirrel.SelectBuilder {
	return psqlbuilder.Select(selectColumns...).
		From("appointments a").
		Join("services s ON s.id = a.service_id")
}

// GetActiveInRange получает неотмененные записи со стартом в [from, to)
// Длительность каждой записи берется из услуги на момент чтения.
// Внутри транзакции строки блокируются (FOR UPDATE OF a), чтобы повторная
// проверка и вставка шли по зафиксированному набору записей.
func (r *Repository) GetActiveInRange(ctx context.Context, from, to time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectAppointments().
		Where(squirrel.GtOrEq{"a.start_at": from}).
		Where(squirrel.Lt{"a.start_at": to}).
		Where(squirrel.Expr(statusExpr("a")+" <> ALL(?)", pq.Array(aliasesOf(domain.StatusCancelled)))).
		OrderBy("a.start_at ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"a.id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByID получает запись по ID (внутри транзакции с блокировкой строки)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectAppointments().Where(squirrel.Eq{"a.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// GetByClientID получает записи клиента, сначала новые
// Без фильтра по статусу отмененные записи не возвращаются
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectAppointments().
		Where(squirrel.Eq{"a.client_id": clientID}).
		OrderBy("a.start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(statusIs("a", *status))
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Expr(statusExpr("a")+" <> ALL(?)", pq.Array(aliasesOf(domain.StatusCancelled))))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CreateBatch вставляет записи по порядку и заполняет ID и временные метки
// Атомарность обеспечивает транзакция вызывающего кода
func (r *Repository) CreateBatch(ctx context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for i, appointment := range appointments {
		query, args, err := psqlbuilder.Insert("appointments").
			Columns(
				"client_id",
				"service_id",
				"start_at",
				"price_at_booking",
				"status",
				"notes",
			).
			Values(
				appointment.ClientID,
				appointment.ServiceID,
				appointment.StartAt,
				appointment.PriceAtBooking,
				string(appointment.Status),
				appointment.Notes,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - build insert query #%d: %v", ErrBuildQuery, i, err)
		}

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(ctx, query, args...).Scan(
			&appointment.ID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - execute insert #%d: %w", ErrExecQuery, i, err)
		}

		appointment.CreatedAt = createdAt.Time
		appointment.UpdatedAt = updatedAt.Time
	}

	return appointments, nil
}

// UpdateStatus условно переводит запись из статуса from в статус to
// Если запись уже не в статусе from (или не существует), возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(statusIs("", from)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// Reschedule переносит запись: новое время, услуга и зафиксированная цена
// notes == nil оставляет заметки без изменений
func (r *Repository) Reschedule(
	ctx context.Context,
	id int64,
	startAt time.Time,
	serviceID int64,
	price decimal.Decimal,
	notes *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("start_at", startAt).
		Set("service_id", serviceID).
		Set("price_at_booking", price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(statusIs("", domain.StatusScheduled))

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// LockDay берет транзакционный advisory lock на календарный день
// Конкурентные записи на один день выстраиваются в очередь до конца транзакции
func (r *Repository) LockDay(ctx context.Context, day time.Time) error {
	tx, ok := dbmetrics.GetTx(ctx)
	if !ok {
		return ErrTransaction
	}

	key := dayLockPrefix + day.Format(domain.DateFormat)
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: LockDay - %s: %w", ErrExecQuery, key, err)
	}

	return nil
}

// scanAppointment сканирует одну строку selectColumns
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appointment          domain.Appointment
		status, notes, name  sql.NullString
		duration             sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appointment.ID,
		&appointment.ClientID,
		&appointment.ServiceID,
		&appointment.StartAt,
		&appointment.PriceAtBooking,
		&status,
		&notes,
		&createdAt,
		&updatedAt,
		&name,
		&duration,
	)
	if err != nil {
		return nil, err
	}

	appointment.Status = normalizeStatus(status)
	if notes.Valid {
		appointment.Notes = &notes.String
	}
	appointment.ServiceName = name.String
	appointment.DurationMinutes = domain.EffectiveDuration(int(duration.Int64))
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
