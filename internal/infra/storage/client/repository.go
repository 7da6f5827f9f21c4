package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var columns = []string{"id", "salon_id", "first_name", "last_name", "email", "phone", "created_at"}

// Repository карточки клиентов салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %w", ErrScanRow, err)
	}
	return c, nil
}

// GetOrCreate находит клиента салона по email (без учёта регистра) или создаёт нового.
// Использует транзакцию из контекста, если она есть
func (r *Repository) GetOrCreate(ctx context.Context, salonID uuid.UUID, contact domain.ClientContact) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	email := strings.ToLower(strings.TrimSpace(contact.Email))

	query, args, err := psqlbuilder.Select(columns...).
		From("clients").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Expr("lower(email) = ?", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build select query: %v", ErrBuildQuery, err)
	}

	existing, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: GetOrCreate - scan client: %w", ErrScanRow, err)
	}

	created := &domain.Client{
		ID:        uuid.New(),
		SalonID:   salonID,
		FirstName: strings.TrimSpace(contact.FirstName),
		LastName:  strings.TrimSpace(contact.LastName),
		Email:     email,
		Phone:     contact.Phone,
	}

	query, args, err = psqlbuilder.Insert("clients").
		Columns("id", "salon_id", "first_name", "last_name", "email", "phone").
		Values(created.ID, created.SalonID, created.FirstName, created.LastName, created.Email, created.Phone).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

func scanClient(row interface{ Scan(dest ...any) error }) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.SalonID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
