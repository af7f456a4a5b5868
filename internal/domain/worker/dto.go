package worker

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

type WorkerFilter struct {
	SectorID *string
	Search   *string
}

type CreateWorkerRequest struct {
	SubjectID     string   `json:"subject_id"`
	Name          string   `json:"name"`
	SectorID      string   `json:"sector_id"`
	RoleTitle     *string  `json:"role_title"`
	Registration  *string  `json:"registration"`
	AdmissionDate *string  `json:"admission_date"`
	RestDays      *[7]bool `json:"rest_days"`
	AccessLevel   string   `json:"access_level"`

	// Parsed during validation
	AdmissionDateParsed *time.Time `json:"-"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	r.SubjectID = validator.NormalizeCPF(r.SubjectID)
	if !validator.IsValidCPF(r.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "subject_id must be a valid CPF"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.SectorID) {
		errs = append(errs, validator.ValidationError{Field: "sector_id", Message: "sector_id is required"})
	}
	if r.AccessLevel == "" {
		r.AccessLevel = string(user.RoleUser)
	}
	if !isWorkerLevel(r.AccessLevel) {
		errs = append(errs, validator.ValidationError{Field: "access_level", Message: "access_level must be one of super_admin, admin, user"})
	}
	if r.AdmissionDate != nil {
		date, ok := validator.IsValidDate(*r.AdmissionDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "admission_date", Message: "admission_date must be in YYYY-MM-DD format"})
		} else {
			r.AdmissionDateParsed = &date
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkerRequest struct {
	SubjectID     string   `json:"-"`
	Name          *string  `json:"name"`
	SectorID      *string  `json:"sector_id"`
	RoleTitle     *string  `json:"role_title"`
	Registration  *string  `json:"registration"`
	AdmissionDate *string  `json:"admission_date"`
	RestDays      *[7]bool `json:"rest_days"`
	AccessLevel   *string  `json:"access_level"`

	AdmissionDateParsed *time.Time `json:"-"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	r.SubjectID = validator.NormalizeCPF(r.SubjectID)
	if !validator.IsValidCPF(r.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "subject_id must be a valid CPF"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.SectorID != nil && validator.IsEmpty(*r.SectorID) {
		errs = append(errs, validator.ValidationError{Field: "sector_id", Message: "sector_id must not be empty"})
	}
	if r.AccessLevel != nil && !isWorkerLevel(*r.AccessLevel) {
		errs = append(errs, validator.ValidationError{Field: "access_level", Message: "access_level must be one of super_admin, admin, user"})
	}
	if r.AdmissionDate != nil {
		date, ok := validator.IsValidDate(*r.AdmissionDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "admission_date", Message: "admission_date must be in YYYY-MM-DD format"})
		} else {
			r.AdmissionDateParsed = &date
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Terminals are devices, never workers.
func isWorkerLevel(level string) bool {
	return validator.IsInSlice(level, []string{
		string(user.RoleSuperAdmin),
		string(user.RoleAdmin),
		string(user.RoleUser),
	})
}

type WorkerResponse struct {
	ID            string    `json:"id"`
	SubjectID     string    `json:"subject_id"`
	Name          string    `json:"name"`
	SectorID      string    `json:"sector_id"`
	SectorName    string    `json:"sector_name,omitempty"`
	RoleTitle     *string   `json:"role_title"`
	Registration  *string   `json:"registration"`
	AdmissionDate *string   `json:"admission_date"`
	RestDays      [7]bool   `json:"rest_days"`
	AccessLevel   string    `json:"access_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewWorkerResponse(w Worker) WorkerResponse {
	var admission *string
	if w.AdmissionDate != nil {
		s := w.AdmissionDate.Format("2006-01-02")
		admission = &s
	}
	return WorkerResponse{
		ID:            w.ID,
		SubjectID:     w.SubjectID,
		Name:          w.Name,
		SectorID:      w.SectorID,
		SectorName:    w.SectorName,
		RoleTitle:     w.RoleTitle,
		Registration:  w.Registration,
		AdmissionDate: admission,
		RestDays:      w.RestDays,
		AccessLevel:   string(w.AccessLevel),
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}
