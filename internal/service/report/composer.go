package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

const maxSheetNameLength = 31

var reportColumns = [5]string{"DATA", "ENTRADA", "INÍCIO DE INTERVALO", "FIM DE INTERVALO", "SAÍDA"}

var weekdayShort = [7]string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"}

// WorkerTable is the computed attendance table of one worker.
type WorkerTable struct {
	Worker worker.Worker
	Sector sector.Sector
	Days   []attendance.DayRecord
}

// Compose lays out one section per table, in the given order.
func Compose(tables []WorkerTable, from, to time.Time, detailed bool) report.Document {
	doc := report.Document{
		Title: fmt.Sprintf("PLANILHA DE HORÁRIOS POR TRABALHADOR DE %s A %s",
			from.Format("02/01/2006"), to.Format("02/01/2006")),
		Columns:  reportColumns,
		Sections: make([]report.Section, 0, len(tables)),
	}

	usedSheets := make(map[string]bool, len(tables))
	for _, t := range tables {
		section := report.Section{
			Header:    sectionHeader(t, detailed),
			Rows:      make([]report.Row, 0, len(t.Days)),
			SheetName: uniqueSheetName(t.Worker.Name, usedSheets),
		}
		for _, day := range t.Days {
			section.Rows = append(section.Rows, composeRow(day))
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc
}

func sectionHeader(t WorkerTable, detailed bool) []report.HeaderLine {
	lines := []report.HeaderLine{
		{Label: "NOME", Value: strings.ToUpper(t.Worker.Name)},
		{Label: "SETOR", Value: t.Sector.Name},
		{Label: "CPF", Value: validator.FormatCPF(t.Worker.SubjectID)},
	}
	if !detailed {
		return lines
	}

	admission := ""
	if t.Worker.AdmissionDate != nil {
		admission = t.Worker.AdmissionDate.Format("02/01/2006")
	}
	return append(lines,
		report.HeaderLine{Label: "CARGO", Value: valueOrEmpty(t.Worker.RoleTitle)},
		report.HeaderLine{Label: "MATRÍCULA", Value: valueOrEmpty(t.Worker.Registration)},
		report.HeaderLine{Label: "ADMISSÃO", Value: admission},
		report.HeaderLine{Label: "REPOUSO", Value: strings.Join(t.Worker.RestDayLabels(), ", ")},
	)
}

func composeRow(day attendance.DayRecord) report.Row {
	slots := day.Slots()
	return report.Row{
		Date: day.Date,
		Cells: [5]string{
			fmt.Sprintf("%s - %s", day.Date.Format("02/01"), weekdayShort[day.Date.Weekday()]),
			slots[0], slots[1], slots[2], slots[3],
		},
	}
}

// uniqueSheetName returns a worksheet-safe name that is not in used yet.
func uniqueSheetName(name string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(name)))
	base = strings.Trim(base, "' ")
	if base == "" {
		base = "TRABALHADOR"
	}
	base = truncateRunes(base, maxSheetNameLength)

	candidate := base
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(base, maxSheetNameLength-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
