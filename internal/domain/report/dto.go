package report

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/pdf"
	}
}

// AttendanceReportRequest selects either a single worker or a whole sector.
type AttendanceReportRequest struct {
	SubjectID *string `json:"subject_id"`
	SectorID  *string `json:"sector_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Format    Format  `json:"format"`
	Detailed  bool    `json:"detailed"`
	MaxDays   int     `json:"-"`

	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SubjectID != nil {
		normalized := validator.NormalizeCPF(*r.SubjectID)
		r.SubjectID = &normalized
	}

	hasSubject := r.SubjectID != nil && !validator.IsEmpty(*r.SubjectID)
	hasSector := r.SectorID != nil && !validator.IsEmpty(*r.SectorID)
	switch {
	case hasSubject && hasSector:
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "subject_id and sector_id are mutually exclusive"})
	case !hasSubject && !hasSector:
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "either subject_id or sector_id is required"})
	}

	if r.Format == "" {
		r.Format = FormatPDF
	}
	if r.Format != FormatPDF && r.Format != FormatXLSX {
		errs = append(errs, validator.ValidationError{Field: "format", Message: "format must be pdf or xlsx"})
	}

	from, to, rangeErrs := attendance.ParseDateRange(r.From, r.To, r.MaxDays)
	errs = append(errs, rangeErrs...)
	r.FromDate, r.ToDate = from, to

	if len(errs) > 0 {
		return errs
	}
	return nil
}
