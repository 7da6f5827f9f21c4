// Package supabase реализует хранилище календаря и записей поверх Supabase (PostgREST).
// Схема таблиц совпадает с migrations/, поэтому exclusion constraint на пересечение
// подтверждённых записей действует и здесь.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/calendar"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
)

const codeExclusionViolation = "23P01"

// base общий доступ к PostgREST
type base struct {
	client *supa.Client
}

// Calendar салоны, услуги и часы работы. Ошибки совпадают с postgres-репозиторием calendar
type Calendar struct{ base }

// Appointments записи салона. Ошибки совпадают с postgres-репозиторием appointment
type Appointments struct{ base }

// Clients карточки клиентов. Ошибки совпадают с postgres-репозиторием client
type Clients struct{ base }

// NewClient создает клиент Supabase
func NewClient(url, key string) (*supa.Client, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase: create client: %w", err)
	}
	return client, nil
}

// NewCalendar создает хранилище календаря
func NewCalendar(client *supa.Client) *Calendar {
	return &Calendar{base{client: client}}
}

// NewAppointments создает хранилище записей
func NewAppointments(client *supa.Client) *Appointments {
	return &Appointments{base{client: client}}
}

// NewClients создает хранилище клиентов
func NewClients(client *supa.Client) *Clients {
	return &Clients{base{client: client}}
}

// GetSalon получает салон по ID
func (s *Calendar) GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, error) {
	var rows []salonRow
	err := s.query(ctx, "GetSalon", s.client.From("salons").
		Select("id,name,timezone", "", false).
		Eq("id", salonID.String()), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, calendarRepo.ErrSalonNotFound
	}
	return rows[0].toDomain(), nil
}

// GetService получает услугу салона
func (s *Calendar) GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error) {
	var rows []serviceRow
	err := s.query(ctx, "GetService", s.client.From("services").
		Select("id,salon_id,name,duration_minutes,price", "", false).
		Eq("id", serviceID.String()).
		Eq("salon_id", salonID.String()), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, calendarRepo.ErrServiceNotFound
	}
	return rows[0].toDomain(), nil
}

// GetOpeningHours возвращает настроенные дни недели салона
func (s *Calendar) GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error) {
	var rows []openingHoursRow
	err := s.query(ctx, "GetOpeningHours", s.client.From("opening_hours").
		Select("salon_id,day_of_week,open_time,close_time,is_closed", "", false).
		Eq("salon_id", salonID.String()).
		Order("day_of_week", &postgrest.OrderOpts{Ascending: true}), &rows)
	if err != nil {
		return nil, err
	}

	schedule := make(domain.WeeklySchedule, 0, len(rows))
	for _, row := range rows {
		h, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: GetOpeningHours: %v", ErrDecode, err)
		}
		schedule = append(schedule, h)
	}
	return schedule, nil
}

// ReplaceOpeningHours заменяет расписание салона.
// PostgREST не даёт транзакции на два запроса: удаление и вставка выполняются последовательно
func (s *Calendar) ReplaceOpeningHours(ctx context.Context, salonID uuid.UUID, schedule domain.WeeklySchedule) error {
	if err := s.exec(ctx, "ReplaceOpeningHours", s.client.From("opening_hours").
		Delete("minimal", "").
		Eq("salon_id", salonID.String())); err != nil {
		return err
	}
	if len(schedule) == 0 {
		return nil
	}

	rows := make([]openingHoursRow, len(schedule))
	for i, h := range schedule {
		rows[i] = toOpeningHoursRow(salonID, h)
	}
	return s.exec(ctx, "ReplaceOpeningHours", s.client.From("opening_hours").
		Insert(rows, false, "", "minimal", ""))
}

// Create сохраняет запись. Нарушение exclusion constraint возвращается как ErrOverlap
func (s *Appointments) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}

	var rows []appointmentRow
	err := s.query(ctx, "Create", s.client.From("appointments").
		Insert(appointmentInsert{
			ID:        apt.ID,
			SalonID:   apt.SalonID,
			ClientID:  apt.ClientID,
			ServiceID: apt.ServiceID,
			StartTime: apt.StartTime.UTC(),
			EndTime:   apt.EndTime.UTC(),
			Status:    string(apt.Status),
			Notes:     apt.Notes,
		}, false, "", "representation", ""), &rows)
	if err != nil {
		if strings.Contains(err.Error(), codeExclusionViolation) {
			return nil, fmt.Errorf("%w: %v", appointmentRepo.ErrOverlap, err)
		}
		return nil, err
	}
	if len(rows) == 0 {
		return apt, nil
	}
	return rows[0].toDomain(), nil
}

// GetByID получает запись по ID
func (s *Appointments) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	var rows []appointmentRow
	err := s.query(ctx, "GetByID", s.client.From("appointments").
		Select("*", "", false).
		Eq("id", id.String()), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return rows[0].toDomain(), nil
}

// GetConfirmedInRange подтверждённые записи салона со start_time в [from, to)
func (s *Appointments) GetConfirmedInRange(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	var rows []appointmentRow
	err := s.query(ctx, "GetConfirmedInRange", s.client.From("appointments").
		Select("*", "", false).
		Eq("salon_id", salonID.String()).
		Eq("status", string(domain.StatusConfirmed)).
		Or(halfOpenRange("start_time", from, to), "").
		Order("start_time", &postgrest.OrderOpts{Ascending: true}), &rows)
	if err != nil {
		return nil, err
	}
	return toAppointments(rows), nil
}

// List записи по фильтру
func (s *Appointments) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	query := s.client.From("appointments").Select("*", "", false)

	if filter.SalonID != nil {
		query = query.Eq("salon_id", filter.SalonID.String())
	}
	if filter.ClientID != nil {
		query = query.Eq("client_id", filter.ClientID.String())
	}
	switch {
	case filter.From != nil && filter.To != nil:
		query = query.Or(halfOpenRange("start_time", *filter.From, *filter.To), "")
	case filter.From != nil:
		query = query.Gte("start_time", formatInstant(*filter.From))
	case filter.To != nil:
		query = query.Lt("start_time", formatInstant(*filter.To))
	}
	if filter.Status != nil {
		query = query.Eq("status", string(*filter.Status))
	}
	ascending := !(filter.SalonID == nil && filter.ClientID != nil)
	query = query.Order("start_time", &postgrest.OrderOpts{Ascending: ascending})

	var rows []appointmentRow
	if err := s.query(ctx, "List", query, &rows); err != nil {
		return nil, err
	}
	return toAppointments(rows), nil
}

// Cancel переводит подтверждённую запись в cancelled
func (s *Appointments) Cancel(ctx context.Context, id uuid.UUID, reason *string, at time.Time) (*domain.Appointment, error) {
	return s.transition(ctx, "Cancel", id, map[string]any{
		"status":              domain.StatusCancelled,
		"cancellation_reason": reason,
		"cancelled_at":        at.UTC(),
		"updated_at":          at.UTC(),
	})
}

// Complete переводит подтверждённую запись в completed
func (s *Appointments) Complete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Appointment, error) {
	return s.transition(ctx, "Complete", id, map[string]any{
		"status":       domain.StatusCompleted,
		"completed_at": at.UTC(),
		"updated_at":   at.UTC(),
	})
}

func (s *Appointments) transition(ctx context.Context, op string, id uuid.UUID, values map[string]any) (*domain.Appointment, error) {
	var rows []appointmentRow
	err := s.query(ctx, op, s.client.From("appointments").
		Update(values, "representation", "").
		Eq("id", id.String()).
		Eq("status", string(domain.StatusConfirmed)), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, appointmentRepo.ErrStatusConflict
	}
	return rows[0].toDomain(), nil
}

// GetOrCreate находит клиента салона по email или создаёт нового
func (s *Clients) GetOrCreate(ctx context.Context, salonID uuid.UUID, contact domain.ClientContact) (*domain.Client, error) {
	email := strings.ToLower(strings.TrimSpace(contact.Email))

	var rows []clientRow
	err := s.query(ctx, "GetOrCreate", s.client.From("clients").
		Select("*", "", false).
		Eq("salon_id", salonID.String()).
		Eq("email", email).
		Limit(1, ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows[0].toDomain(), nil
	}

	insert := clientInsert{
		ID:        uuid.New(),
		SalonID:   salonID,
		FirstName: strings.TrimSpace(contact.FirstName),
		LastName:  strings.TrimSpace(contact.LastName),
		Email:     email,
		Phone:     contact.Phone,
	}
	err = s.query(ctx, "GetOrCreate", s.client.From("clients").
		Insert(insert, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &domain.Client{
			ID:        insert.ID,
			SalonID:   salonID,
			FirstName: insert.FirstName,
			LastName:  insert.LastName,
			Email:     email,
			Phone:     contact.Phone,
		}, nil
	}
	return rows[0].toDomain(), nil
}

// GetByID получает клиента по ID
func (s *Clients) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var rows []clientRow
	err := s.query(ctx, "GetByID", s.client.From("clients").
		Select("*", "", false).
		Eq("id", id.String()), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, clientRepo.ErrClientNotFound
	}
	return rows[0].toDomain(), nil
}

// query выполняет запрос и декодирует JSON-массив в dest.
// postgrest-go не принимает контекст, поэтому отменённый контекст проверяется до запроса
func (s *base) query(ctx context.Context, op string, fb *postgrest.FilterBuilder, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, _, err := fb.Execute()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRequest, op, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
	}
	return nil
}

func (s *base) exec(ctx context.Context, op string, fb *postgrest.FilterBuilder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := fb.Execute(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRequest, op, err)
	}
	return nil
}

// halfOpenRange фильтр column in [from, to).
// postgrest-go хранит фильтры в map по имени колонки, поэтому два условия
// на одну колонку собираются в логическое выражение and(...)
func halfOpenRange(column string, from, to time.Time) string {
	return fmt.Sprintf(`and(%s.gte."%s",%s.lt."%s")`, column, formatInstant(from), column, formatInstant(to))
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toAppointments(rows []appointmentRow) []*domain.Appointment {
	result := make([]*domain.Appointment, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result
}
