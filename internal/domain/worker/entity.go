package worker

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
)

// weekdayLabels follows time.Weekday ordering, Sunday first.
var weekdayLabels = [7]string{"DOM", "SEG", "TER", "QUA", "QUI", "SEX", "SÁB"}

type Worker struct {
	ID            string
	SubjectID     string // CPF, digits only
	Name          string
	SectorID      string
	RoleTitle     *string
	Registration  *string
	AdmissionDate *time.Time
	RestDays      [7]bool // indexed by time.Weekday
	AccessLevel   user.Role
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	SectorName string
}

// RestsOn reports whether d is one of the worker's rest days.
func (w Worker) RestsOn(d time.Weekday) bool {
	return w.RestDays[d]
}

// RestDayLabels returns the short weekday names of the rest days, Sunday first.
func (w Worker) RestDayLabels() []string {
	labels := make([]string, 0, 7)
	for i, rest := range w.RestDays {
		if rest {
			labels = append(labels, weekdayLabels[i])
		}
	}
	return labels
}
