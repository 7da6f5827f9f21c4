package get_opening_hours

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	openingHours "github.com/m04kA/SMC-SalonBooking/internal/service/opening_hours"
	"github.com/m04kA/SMC-SalonBooking/internal/service/opening_hours/models"
)

type fakeService struct {
	err error
}

func (f *fakeService) Get(ctx context.Context, salonID uuid.UUID) (*models.OpeningHoursResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.OpeningHoursResponse{
		SalonID:  salonID,
		Timezone: "Europe/Moscow",
		Days:     []models.DayResponse{{DayOfWeek: 0, IsClosed: true}},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func get(svc *fakeService, salonID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/"+salonID+"/opening-hours", nil)
	req = mux.SetURLVars(req, map[string]string{"salonId": salonID})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	rec := get(&fakeService{}, uuid.NewString())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"timezone":"Europe/Moscow"`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "salon").Code)
	assert.Equal(t, http.StatusNotFound, get(&fakeService{err: openingHours.ErrSalonNotFound}, uuid.NewString()).Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(&fakeService{err: openingHours.ErrSourceUnavailable}, uuid.NewString()).Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: openingHours.ErrInternal}, uuid.NewString()).Code)
}
