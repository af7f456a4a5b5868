package report

import (
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	from := attendance.Date(2024, time.May, 13)
	to := attendance.Date(2024, time.May, 14)
	entry := time.Date(2024, time.May, 13, 8, 0, 0, 0, time.UTC)

	tables := []WorkerTable{{
		Worker: worker.Worker{SubjectID: "52998224725", Name: "Maria da Silva"},
		Sector: sector.Sector{Name: "Portaria"},
		Days: []attendance.DayRecord{
			{Date: from, DayType: attendance.DayWorkday, Entry: &entry},
			{Date: to, DayType: attendance.DayHoliday},
		},
	}}

	doc := Compose(tables, from, to, false)

	assert.Equal(t, "PLANILHA DE HORÁRIOS POR TRABALHADOR DE 13/05/2024 A 14/05/2024", doc.Title)
	assert.Equal(t, "DATA", doc.Columns[0])
	require.Len(t, doc.Sections, 1)

	section := doc.Sections[0]
	require.Len(t, section.Header, 3)
	assert.Equal(t, "MARIA DA SILVA", section.Header[0].Value)
	assert.Equal(t, "Portaria", section.Header[1].Value)
	assert.Equal(t, "529.982.247-25", section.Header[2].Value)

	require.Len(t, section.Rows, 2)
	assert.Equal(t, [5]string{"13/05 - seg", "08:00", "---", "---", "---"}, section.Rows[0].Cells)
	assert.Equal(t, [5]string{"14/05 - ter", "FERIADO", "FERIADO", "FERIADO", "FERIADO"}, section.Rows[1].Cells)
}

func TestCompose_DetailedHeader(t *testing.T) {
	role := "Vigilante"
	registration := "0042"
	admission := attendance.Date(2020, time.February, 3)

	tables := []WorkerTable{{
		Worker: worker.Worker{
			SubjectID:     "52998224725",
			Name:          "Maria",
			RoleTitle:     &role,
			Registration:  &registration,
			AdmissionDate: &admission,
			RestDays:      [7]bool{true, false, false, false, false, false, true},
		},
	}}

	doc := Compose(tables, admission, admission, true)
	header := doc.Sections[0].Header
	require.Len(t, header, 7)
	assert.Equal(t, "CARGO", header[3].Label)
	assert.Equal(t, "Vigilante", header[3].Value)
	assert.Equal(t, "0042", header[4].Value)
	assert.Equal(t, "03/02/2020", header[5].Value)
	assert.Equal(t, "DOM, SÁB", header[6].Value)
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{}

	assert.Equal(t, "JOÃO", uniqueSheetName("João", used))
	assert.Equal(t, "JOÃO (2)", uniqueSheetName("joão", used))
	assert.Equal(t, "A B", uniqueSheetName("a/b", used))
	assert.Equal(t, "TRABALHADOR", uniqueSheetName("  ", used))

	long := uniqueSheetName(strings.Repeat("x", 40), used)
	assert.Len(t, []rune(long), maxSheetNameLength)
	again := uniqueSheetName(strings.Repeat("x", 40), used)
	assert.LessOrEqual(t, len([]rune(again)), maxSheetNameLength)
	assert.NotEqual(t, long, again)
}
