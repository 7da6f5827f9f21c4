package cancel_appointment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

type fakeService struct {
	id  uuid.UUID
	req *models.CancelAppointmentRequest
	err error
}

func (f *fakeService) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	f.id, f.req = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "cancelled", CancellationReason: req.CancellationReason}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func patch(svc *fakeService, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_WithReason(t *testing.T) {
	svc := &fakeService{}
	id := uuid.New()

	rec := patch(svc, id.String(), `{"cancellationReason":"заболела"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.id)
	require.NotNil(t, svc.req.CancellationReason)
	assert.Equal(t, "заболела", *svc.req.CancellationReason)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeService{}

	rec := patch(svc, uuid.NewString(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.req.CancellationReason)
}

func TestHandle_BadInput(t *testing.T) {
	rec := patch(&fakeService{}, "not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = patch(&fakeService{}, uuid.NewString(), `{"reason":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"already cancelled", fmt.Errorf("%w: cancelled", appointments.ErrInvalidTransition), http.StatusConflict},
		{"reason too long", appointments.ErrInvalidInput, http.StatusBadRequest},
		{"internal", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tt.err}, uuid.NewString(), "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
