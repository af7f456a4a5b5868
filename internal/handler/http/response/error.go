package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User / permission errors
	case errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, "Invalid token role")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrSubjectMismatch):
		Forbidden(w, err.Error())

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrSubjectIDExists):
		Conflict(w, "CPF already registered")
	case errors.Is(err, worker.ErrInvalidAccessLevel):
		BadRequest(w, err.Error(), nil)

	// Sector domain errors
	case errors.Is(err, sector.ErrSectorNotFound):
		NotFound(w, "Sector not found")
	case errors.Is(err, sector.ErrSectorNameExists):
		Conflict(w, "Sector name already exists")
	case errors.Is(err, sector.ErrSectorInUse):
		Conflict(w, "Sector still has workers assigned")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrExceptionExists):
		Rejected(w, http.StatusConflict, "exceptionExists", err.Error(), nil)
	case errors.Is(err, attendance.ErrEventConflict):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrSystemKindNotAllowed):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrNoWorkers):
		NotFound(w, err.Error())
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrReportGenerationFailed):
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
