package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var selectColumns = []string{
	"id",
	"name",
	"duration_minutes",
	"price",
	"is_active",
}

// Repository репозиторий каталога услуг (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByIDs получает активные услуги по списку ID
// Неактивные и несуществующие ID в результат не попадают, порядок не гарантируется
func (r *Repository) GetActiveByIDs(ctx context.Context, ids []int64) ([]*domain.BookableService, error) {
	if len(ids) == 0 {
		return []*domain.BookableService{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("services").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.BookableService, 0, len(ids))
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByIDs - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetByID получает услугу по ID независимо от активности
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookableService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}

	return service, nil
}

func scanService(row interface{ Scan(dest ...interface{}) error }) (*domain.BookableService, error) {
	var (
		service  domain.BookableService
		duration sql.NullInt64
	)

	if err := row.Scan(
		&service.ID,
		&service.Name,
		&duration,
		&service.Price,
		&service.IsActive,
	); err != nil {
		return nil, err
	}

	service.DurationMinutes = int(duration.Int64)

	return &service, nil
}
