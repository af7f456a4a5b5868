package attendance

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

const (
	maxEvidenceSize   = 10 << 20 // 10MB
	maxAttachmentSize = 10 << 20
)

// ParseDateRange parses an inclusive YYYY-MM-DD range. maxDays <= 0 disables
// the length check.
func ParseDateRange(from, to string, maxDays int) (time.Time, time.Time, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	fromDate, okFrom := validator.IsValidDate(from)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
	}
	toDate, okTo := validator.IsValidDate(to)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
	}
	if !okFrom || !okTo {
		return time.Time{}, time.Time{}, errs
	}

	if fromDate.After(toDate) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must not be after to"})
		return time.Time{}, time.Time{}, errs
	}
	if maxDays > 0 && DaysInRange(fromDate, toDate) > maxDays {
		errs = append(errs, validator.ValidationError{Field: "to", Message: fmt.Sprintf("range must not exceed %d days", maxDays)})
		return time.Time{}, time.Time{}, errs
	}

	return fromDate, toDate, nil
}

// DaysInRange counts civil dates in the inclusive range [from, to].
func DaysInRange(from, to time.Time) int {
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// ========================================
// TABLE DTOs
// ========================================

type TableRequest struct {
	SubjectID string `json:"subject_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	MaxDays   int    `json:"-"`

	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

func (r *TableRequest) Validate() error {
	var errs validator.ValidationErrors

	r.SubjectID = validator.NormalizeCPF(r.SubjectID)
	if validator.IsEmpty(r.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "subject_id is required"})
	}

	from, to, rangeErrs := ParseDateRange(r.From, r.To, r.MaxDays)
	errs = append(errs, rangeErrs...)
	r.FromDate, r.ToDate = from, to

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayRecordResponse struct {
	Date          string    `json:"date"`
	DayType       DayType   `json:"day_type"`
	Entry         *string   `json:"entry"`
	IntervalStart *string   `json:"interval_start"`
	IntervalEnd   *string   `json:"interval_end"`
	Exit          *string   `json:"exit"`
	Slots         [4]string `json:"slots"`
}

func NewDayRecordResponse(r DayRecord) DayRecordResponse {
	return DayRecordResponse{
		Date:          r.Date.Format("2006-01-02"),
		DayType:       r.DayType,
		Entry:         clockPtr(r.Entry),
		IntervalStart: clockPtr(r.IntervalStart),
		IntervalEnd:   clockPtr(r.IntervalEnd),
		Exit:          clockPtr(r.Exit),
		Slots:         r.Slots(),
	}
}

func clockPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}

type TableResponse struct {
	SubjectID  string              `json:"subject_id"`
	WorkerName string              `json:"worker_name"`
	SectorName string              `json:"sector_name"`
	From       string              `json:"from"`
	To         string              `json:"to"`
	Days       []DayRecordResponse `json:"days"`
}

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	SubjectID  string                `json:"subject_id"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

// Validate checks the request shape. A malformed subject is not a validation
// error: it is reported as ResultInvalidSubject by the engine.
func (r *PunchRequest) Validate() error {
	r.SubjectID = validator.NormalizeCPF(r.SubjectID)
	if validator.IsEmpty(r.SubjectID) {
		return validator.ValidationErrors{{Field: "subject_id", Message: "subject_id is required"}}
	}
	return nil
}

// ValidateEvidence checks the captured photo required to commit a punch.
func (r *PunchRequest) ValidateEvidence() error {
	var errs validator.ValidationErrors

	if r.FileHeader == nil || r.File == nil {
		errs = append(errs, validator.ValidationError{Field: "photo", Message: "punch evidence photo is required"})
	} else {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{Field: "photo", Message: "invalid file type: only jpg, jpeg, png allowed"})
		} else if r.FileHeader.Size > maxEvidenceSize {
			errs = append(errs, validator.ValidationError{Field: "photo", Message: "punch evidence photo size must not exceed 10MB"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	Result     ResultCode `json:"result"`
	Message    string     `json:"message"`
	SubjectID  string     `json:"subject_id"`
	WorkerName *string    `json:"worker_name,omitempty"`
	Kind       *Kind      `json:"kind,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	EventID    *string    `json:"event_id,omitempty"`
}

var resultMessages = map[ResultCode]string{
	ResultOK:                 "Punch recorded",
	ResultCooldown:           "A punch was recorded less than the minimum interval ago",
	ResultDayComplete:        "All punches for today are already recorded",
	ResultInvalidSubject:     "Worker not found",
	ResultVacationExists:     "Worker is on vacation today",
	ResultHolidayExists:      "Today is a holiday",
	ResultAbsenceExists:      "An absence is recorded for today",
	ResultMedicalLeaveExists: "A medical leave is recorded for today",
	ResultUnauthorized:       "Not authorized to record punches",
}

func (c ResultCode) Message() string {
	return resultMessages[c]
}

// ========================================
// EXCEPTION DTOs
// ========================================

type ExceptionRequest struct {
	SubjectID  string                `json:"subject_id"`
	Date       string                `json:"date"`
	Kind       Kind                  `json:"kind"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`

	DateParsed time.Time `json:"-"`
}

func (r *ExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	r.SubjectID = validator.NormalizeCPF(r.SubjectID)
	if validator.IsEmpty(r.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "subject_id is required"})
	} else if r.SubjectID != SystemSubjectID && !validator.IsValidCPF(r.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "subject_id must be a valid CPF or " + SystemSubjectID})
	}

	if !r.Kind.IsException() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "kind must be one of vacation, holiday, optional_holiday, absence, medical_leave"})
	} else if r.SubjectID == SystemSubjectID && !r.Kind.IsCalendarWide() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: ErrSystemKindNotAllowed.Error()})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	} else {
		r.DateParsed = date
	}

	if r.FileHeader != nil && r.FileHeader.Size > maxAttachmentSize {
		errs = append(errs, validator.ValidationError{Field: "attachment", Message: "attachment size must not exceed 10MB"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RemoveEventRequest struct {
	SubjectID string `json:"subject_id"`
	Date      string `json:"date"`
	Kind      Kind   `json:"kind"`

	DateParsed time.Time `json:"-"`
}

func (r *RemoveEventRequest) Validate() error {
	var errs validator.ValidationErrors

	r.SubjectID = validator.NormalizeCPF(r.SubjectID)
	if validator.IsEmpty(r.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "subject_id is required"})
	}
	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "kind is invalid"})
	}
	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	} else {
		r.DateParsed = date
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventFilter struct {
	SubjectID string
	From      string
	To        string
	MaxDays   int

	FromDate time.Time
	ToDate   time.Time
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	f.SubjectID = validator.NormalizeCPF(f.SubjectID)
	if validator.IsEmpty(f.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "subject_id is required"})
	}
	from, to, rangeErrs := ParseDateRange(f.From, f.To, f.MaxDays)
	errs = append(errs, rangeErrs...)
	f.FromDate, f.ToDate = from, to

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	Kind        Kind      `json:"kind"`
	Timestamp   time.Time `json:"timestamp"`
	CalendarDay string    `json:"calendar_day"`
	EvidenceRef *string   `json:"evidence_ref"`
	EvidenceURL *string   `json:"evidence_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewEventResponse(e Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		SubjectID:   e.SubjectID,
		Kind:        e.Kind,
		Timestamp:   e.Timestamp,
		CalendarDay: e.CalendarDay.Format("2006-01-02"),
		EvidenceRef: e.EvidenceRef,
		CreatedAt:   e.CreatedAt,
	}
}
