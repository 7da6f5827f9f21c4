package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeCalendar struct {
	salon      *domain.Salon
	service    *domain.Service
	hours      domain.WeeklySchedule
	salonErr   error
	serviceErr error
	hoursErr   error
}

func (f *fakeCalendar) GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, *time.Location, error) {
	if f.salonErr != nil {
		return nil, nil, f.salonErr
	}
	loc, err := f.salon.Location()
	return f.salon, loc, err
}

func (f *fakeCalendar) GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error) {
	return f.service, f.serviceErr
}

func (f *fakeCalendar) GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error) {
	return f.hours, f.hoursErr
}

type fakeAppointments struct {
	existing  []*domain.Appointment
	createErr error
	created   []*domain.Appointment
	from, to  time.Time
}

func (f *fakeAppointments) GetConfirmedInRange(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	f.from, f.to = from, to
	return f.existing, nil
}

func (f *fakeAppointments) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	saved := *apt
	saved.ID = uuid.New()
	saved.CreatedAt = time.Date(2025, 10, 12, 12, 0, 0, 0, time.UTC)
	saved.UpdatedAt = saved.CreatedAt
	f.created = append(f.created, &saved)
	return &saved, nil
}

type fakeClients struct {
	known        map[uuid.UUID]*domain.Client
	getOrCreated []domain.ClientContact
}

func (f *fakeClients) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	if c, ok := f.known[id]; ok {
		return c, nil
	}
	return nil, clientRepo.ErrClientNotFound
}

func (f *fakeClients) GetOrCreate(ctx context.Context, salonID uuid.UUID, contact domain.ClientContact) (*domain.Client, error) {
	f.getOrCreated = append(f.getOrCreated, contact)
	return &domain.Client{ID: uuid.New(), SalonID: salonID, FirstName: contact.FirstName, Email: contact.Email}, nil
}

type fakeTx struct{ calls int }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakePublisher struct {
	published []*domain.Appointment
	err       error
}

func (f *fakePublisher) PublishAppointment(ctx context.Context, apt *domain.Appointment) error {
	f.published = append(f.published, apt)
	return f.err
}

type fakeMetrics struct {
	appointments map[string]int
	conflicts    map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{appointments: map[string]int{}, conflicts: map[string]int{}}
}

func (f *fakeMetrics) IncAppointment(status string) { f.appointments[status]++ }
func (f *fakeMetrics) IncConflict(source string)    { f.conflicts[source]++ }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	salonID   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	serviceID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	monday    = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	// воскресенье, полдень
	defaultNow = time.Date(2025, 10, 12, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	calendar     *fakeCalendar
	appointments *fakeAppointments
	clients      *fakeClients
	tx           *fakeTx
	publisher    *fakePublisher
	metrics      *fakeMetrics
	rules        Rules
	now          time.Time
}

func newFixture() *fixture {
	return &fixture{
		calendar: &fakeCalendar{
			salon:   &domain.Salon{ID: salonID, Name: "Salon", Timezone: "UTC"},
			service: &domain.Service{ID: serviceID, SalonID: salonID, DurationMinutes: 60},
			hours: domain.WeeklySchedule{
				{SalonID: salonID, DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
				{SalonID: salonID, DayOfWeek: 0, IsClosed: true},
			},
		},
		appointments: &fakeAppointments{},
		clients:      &fakeClients{known: map[uuid.UUID]*domain.Client{}},
		tx:           &fakeTx{},
		publisher:    &fakePublisher{},
		metrics:      newFakeMetrics(),
		now:          defaultNow,
	}
}

func (f *fixture) useCase() *UseCase {
	return NewUseCase(f.calendar, f.appointments, f.clients, f.tx, f.publisher, f.metrics, f.rules, nopLogger{}).
		WithTimeProvider(fixedTime{now: f.now})
}

func anonymousRequest(at types.TimeString) *Request {
	return &Request{
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      monday,
		StartTime: at,
		Notes:     ptr.Ptr("first visit"),
		Client: &domain.ClientContact{
			FirstName: "Anna",
			LastName:  "Ivanova",
			Email:     "anna@example.com",
		},
	}
}

func confirmed(start time.Time, minutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:        uuid.New(),
		SalonID:   salonID,
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
		Status:    domain.StatusConfirmed,
	}
}

func TestExecute_CreatesConfirmedAppointment(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), anonymousRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, monday.Add(10*time.Hour), resp.StartTime)
	assert.Equal(t, monday.Add(11*time.Hour), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, types.TimeString("10:00"), resp.Time)
	assert.Equal(t, "first visit", *resp.Notes)
	require.NotNil(t, resp.ClientID)

	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.clients.getOrCreated, 1)
	assert.Equal(t, "anna@example.com", f.clients.getOrCreated[0].Email)
	assert.Len(t, f.publisher.published, 1)
	assert.Equal(t, 1, f.metrics.appointments["confirmed"])

	// перепроверка захватывает записи, начавшиеся до слота
	assert.True(t, f.appointments.from.Before(resp.StartTime))
	assert.Equal(t, resp.EndTime, f.appointments.to)
}

func TestExecute_KnownClient(t *testing.T) {
	f := newFixture()
	clientID := uuid.New()
	f.clients.known[clientID] = &domain.Client{ID: clientID, SalonID: salonID}

	req := &Request{SalonID: salonID, ServiceID: serviceID, Date: monday, StartTime: "11:00", ClientID: &clientID}
	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, clientID, *resp.ClientID)
	assert.Empty(t, f.clients.getOrCreated)
}

func TestExecute_KnownClientOfAnotherSalon(t *testing.T) {
	f := newFixture()
	clientID := uuid.New()
	f.clients.known[clientID] = &domain.Client{ID: clientID, SalonID: uuid.New()}

	req := &Request{SalonID: salonID, ServiceID: serviceID, Date: monday, StartTime: "11:00", ClientID: &clientID}
	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.Empty(t, f.appointments.created)
}

func TestExecute_ValidationReportsEveryField(t *testing.T) {
	f := newFixture()

	_, err := f.useCase().Execute(context.Background(), &Request{StartTime: "25:99"})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"salonId", "serviceId", "date", "startTime", "firstName", "lastName", "email"}, verr.Fields)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_ValidationContactFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		fields []string
	}{
		{
			name:   "malformed email",
			mutate: func(r *Request) { r.Client.Email = "not-an-email" },
			fields: []string{"email"},
		},
		{
			name:   "blank names",
			mutate: func(r *Request) { r.Client.FirstName, r.Client.LastName = " ", "" },
			fields: []string{"firstName", "lastName"},
		},
		{
			name: "notes too long",
			mutate: func(r *Request) {
				long := make([]rune, domain.MaxNotesLength+1)
				for i := range long {
					long[i] = 'a'
				}
				r.Notes = ptr.Ptr(string(long))
			},
			fields: []string{"notes"},
		},
		{
			name:   "nil client id",
			mutate: func(r *Request) { r.ClientID = &uuid.Nil },
			fields: []string{"clientId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := anonymousRequest("10:00")
			tt.mutate(req)

			_, err := newFixture().useCase().Execute(context.Background(), req)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestExecute_ConflictOnRecheck(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{confirmed(monday.Add(10*time.Hour), 45)}

	_, err := f.useCase().Execute(context.Background(), anonymousRequest("10:30"))
	assert.ErrorIs(t, err, ErrConflictDetected)
	assert.Empty(t, f.appointments.created)
	assert.Empty(t, f.publisher.published)
	assert.Equal(t, 1, f.metrics.conflicts["recheck"])
}

func TestExecute_AdjacentAppointmentDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{confirmed(monday.Add(9*time.Hour), 60)}

	_, err := f.useCase().Execute(context.Background(), anonymousRequest("10:00"))
	require.NoError(t, err)
	assert.Len(t, f.appointments.created, 1)
}

func TestExecute_ConstraintViolationIsConflict(t *testing.T) {
	f := newFixture()
	f.appointments.createErr = fmt.Errorf("%w: exclusion violation", appointmentRepo.ErrOverlap)

	_, err := f.useCase().Execute(context.Background(), anonymousRequest("10:00"))
	assert.ErrorIs(t, err, ErrConflictDetected)
	assert.Equal(t, 1, f.metrics.conflicts["constraint"])
	assert.Zero(t, f.metrics.appointments["confirmed"])
}

func TestExecute_PublishFailureKeepsAppointment(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	resp, err := f.useCase().Execute(context.Background(), anonymousRequest("10:00"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestExecute_SlotRules(t *testing.T) {
	tests := []struct {
		name    string
		at      types.TimeString
		date    time.Time
		now     time.Time
		rules   Rules
		wantErr error
	}{
		{name: "closed day", at: "10:00", date: monday.AddDate(0, 0, -1), now: defaultNow.AddDate(0, 0, -1), wantErr: ErrSalonClosed},
		{name: "missing weekday", at: "10:00", date: monday.AddDate(0, 0, 1), wantErr: ErrSalonClosed},
		{name: "off grid", at: "10:15", date: monday, wantErr: ErrInvalidTimeSlot},
		{name: "before opening", at: "08:00", date: monday, wantErr: ErrInvalidTimeSlot},
		{name: "overflows closing", at: "16:30", date: monday, wantErr: ErrInvalidTimeSlot},
		{name: "in the past", at: "09:00", date: monday, now: monday.Add(9*time.Hour + time.Minute), wantErr: ErrSlotInPast},
		{name: "min notice", at: "10:00", date: monday, now: monday.Add(9*time.Hour + 30*time.Minute), rules: Rules{MinNoticeMinutes: 60}, wantErr: ErrTooLateToBook},
		{name: "beyond horizon", at: "10:00", date: monday, now: monday.AddDate(0, 0, -10), rules: Rules{MaxAdvanceDays: 7}, wantErr: ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if !tt.now.IsZero() {
				f.now = tt.now
			}
			f.rules = tt.rules
			req := anonymousRequest(tt.at)
			req.Date = tt.date

			_, err := f.useCase().Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.appointments.created)
		})
	}
}

func TestExecute_PastStartNamesField(t *testing.T) {
	tests := []struct {
		name  string
		at    types.TimeString
		now   time.Time
		field string
	}{
		{name: "earlier today", at: "09:00", now: monday.Add(9*time.Hour + time.Minute), field: "startTime"},
		{name: "previous day", at: "10:00", now: monday.AddDate(0, 0, 1).Add(12 * time.Hour), field: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.now = tt.now

			_, err := f.useCase().Execute(context.Background(), anonymousRequest(tt.at))
			require.ErrorIs(t, err, ErrSlotInPast)
			require.ErrorIs(t, err, domain.ErrValidation)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, []string{tt.field}, verr.Fields)
		})
	}
}

func TestExecute_AgendaModeUsesQuarterHourGrid(t *testing.T) {
	f := newFixture()
	req := anonymousRequest("09:15")
	req.Mode = ModeAgenda

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, monday.Add(9*time.Hour+15*time.Minute), resp.StartTime)
	assert.Equal(t, monday.Add(10*time.Hour+15*time.Minute), resp.EndTime)
	require.Len(t, f.appointments.created, 1)

	// тот же час в клиентском режиме не попадает в сетку 30 минут
	booking := anonymousRequest("09:15")
	booking.Mode = ModeBooking
	_, err = newFixture().useCase().Execute(context.Background(), booking)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_AgendaModeSkipsBookingRules(t *testing.T) {
	f := newFixture()
	f.now = monday.Add(9*time.Hour + 30*time.Minute)
	f.rules = Rules{MinNoticeMinutes: 60}
	req := anonymousRequest("09:45")
	req.Mode = ModeAgenda

	_, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)

	// прошедшее время запрещено и в журнале
	req = anonymousRequest("09:15")
	req.Mode = ModeAgenda
	_, err = f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_UnknownModeIsValidationField(t *testing.T) {
	f := newFixture()
	req := anonymousRequest("10:00")
	req.Mode = "walk-in"

	_, err := f.useCase().Execute(context.Background(), req)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"mode"}, verr.Fields)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_LastSlotThatFits(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), anonymousRequest("16:00"))
	require.NoError(t, err)
	assert.Equal(t, monday.Add(17*time.Hour), resp.EndTime)
}

func TestExecute_SalonTimezone(t *testing.T) {
	f := newFixture()
	f.calendar.salon.Timezone = "Europe/Moscow"

	resp, err := f.useCase().Execute(context.Background(), anonymousRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 13, 7, 0, 0, 0, time.UTC), resp.StartTime.UTC())
	assert.Equal(t, types.TimeString("10:00"), resp.Time)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
}

func TestExecute_CalendarErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *fakeCalendar)
		wantErr error
	}{
		{name: "salon not found", mutate: func(c *fakeCalendar) { c.salonErr = calendar.ErrSalonNotFound }, wantErr: ErrSalonNotFound},
		{name: "service not found", mutate: func(c *fakeCalendar) { c.serviceErr = calendar.ErrServiceNotFound }, wantErr: ErrServiceNotFound},
		{name: "hours unavailable", mutate: func(c *fakeCalendar) { c.hoursErr = calendar.ErrSourceUnavailable }, wantErr: ErrSourceUnavailable},
		{name: "invalid timezone", mutate: func(c *fakeCalendar) { c.salonErr = calendar.ErrInvalidTimezone }, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.mutate(f.calendar)

			_, err := f.useCase().Execute(context.Background(), anonymousRequest("10:00"))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.tx.calls)
		})
	}
}
