package sector

import (
	"math"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

// Offsets beyond half a day would move a punch into another calendar day.
const maxOffsetHours = 12

type CreateSectorRequest struct {
	Name             string  `json:"name"`
	EntryOffsetHours float64 `json:"entry_offset_hours"`
	ExitOffsetHours  float64 `json:"exit_offset_hours"`
}

func (r *CreateSectorRequest) Validate() error {
	return validateSector(r.Name, r.EntryOffsetHours, r.ExitOffsetHours)
}

type UpdateSectorRequest struct {
	ID               string  `json:"-"`
	Name             string  `json:"name"`
	EntryOffsetHours float64 `json:"entry_offset_hours"`
	ExitOffsetHours  float64 `json:"exit_offset_hours"`
}

func (r *UpdateSectorRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if err := validateSector(r.Name, r.EntryOffsetHours, r.ExitOffsetHours); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSector(name string, entry, exit float64) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(name) > 120 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 120 characters"})
	}
	if math.IsNaN(entry) || math.Abs(entry) > maxOffsetHours {
		errs = append(errs, validator.ValidationError{Field: "entry_offset_hours", Message: "entry_offset_hours must be between -12 and 12"})
	}
	if math.IsNaN(exit) || math.Abs(exit) > maxOffsetHours {
		errs = append(errs, validator.ValidationError{Field: "exit_offset_hours", Message: "exit_offset_hours must be between -12 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SectorResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	EntryOffsetHours float64   `json:"entry_offset_hours"`
	ExitOffsetHours  float64   `json:"exit_offset_hours"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewSectorResponse(s Sector) SectorResponse {
	return SectorResponse{
		ID:               s.ID,
		Name:             s.Name,
		EntryOffsetHours: s.EntryOffsetHours,
		ExitOffsetHours:  s.ExitOffsetHours,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
