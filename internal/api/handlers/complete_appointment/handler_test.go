package complete_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

type fakeService struct {
	err error
}

func (f *fakeService) Complete(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "completed"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
		want int
	}{
		{"ok", uuid.NewString(), nil, http.StatusOK},
		{"bad id", "42", nil, http.StatusBadRequest},
		{"not found", uuid.NewString(), appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"cancelled", uuid.NewString(), appointments.ErrInvalidTransition, http.StatusConflict},
		{"internal", uuid.NewString(), appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+tt.id+"/complete", nil)
			req = mux.SetURLVars(req, map[string]string{"appointmentId": tt.id})
			rec := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"status":"completed"`)
			}
		})
	}
}
