package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository читает календарь салона: сам салон, услуги и часы работы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSalon получает салон по ID
func (r *Repository) GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "timezone").
		From("salons").
		Where(squirrel.Eq{"id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - build select query: %v", ErrBuildQuery, err)
	}

	var salon domain.Salon
	err = executor.QueryRowContext(ctx, query, args...).Scan(&salon.ID, &salon.Name, &salon.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - scan salon: %w", ErrScanRow, err)
	}

	return &salon, nil
}

// GetService получает услугу салона
func (r *Repository) GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "duration_minutes", "price").
		From("services").
		Where(squirrel.Eq{"id": serviceID}).
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.SalonID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return &service, nil
}

// GetOpeningHours возвращает настроенные дни недели салона по порядку.
// Дни без записи в результат не попадают
func (r *Repository) GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("salon_id", "day_of_week", "open_time", "close_time", "is_closed").
		From("opening_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpeningHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpeningHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := make(domain.WeeklySchedule, 0, 7)
	for rows.Next() {
		var h domain.OpeningHours
		if err := rows.Scan(&h.SalonID, &h.DayOfWeek, &h.OpenTime, &h.CloseTime, &h.IsClosed); err != nil {
			return nil, fmt.Errorf("%w: GetOpeningHours - scan row: %w", ErrScanRow, err)
		}
		schedule = append(schedule, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOpeningHours - rows error: %w", ErrScanRow, err)
	}

	return schedule, nil
}

// ReplaceOpeningHours заменяет расписание салона целиком.
// Должен вызываться внутри транзакции, иначе читатели могут увидеть пустое расписание
func (r *Repository) ReplaceOpeningHours(ctx context.Context, salonID uuid.UUID, schedule domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("opening_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - execute delete: %w", ErrExecQuery, err)
	}

	if len(schedule) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("opening_hours").
		Columns("salon_id", "day_of_week", "open_time", "close_time", "is_closed")
	for _, h := range schedule {
		insert = insert.Values(salonID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsClosed)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
