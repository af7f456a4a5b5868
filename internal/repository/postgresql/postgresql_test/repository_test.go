package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	setup, ok, err := NewTestDatabase()
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(func() {
		_ = setup.TruncateAllTables(context.Background())
		setup.Close()
	})
	return setup
}

func seedWorker(t *testing.T, setup *TestDatabaseSetup, subjectID string) (sector.Sector, worker.Worker) {
	t.Helper()
	ctx := context.Background()

	sec, err := postgresql.NewSectorRepository(setup.DB).Create(ctx, sector.Sector{Name: "Portaria", EntryOffsetHours: 0.033})
	require.NoError(t, err)

	w, err := postgresql.NewWorkerRepository(setup.DB).Create(ctx, worker.Worker{
		SubjectID:   subjectID,
		Name:        "Maria da Silva",
		SectorID:    sec.ID,
		RestDays:    [7]bool{true, false, false, false, false, false, true},
		AccessLevel: user.RoleUser,
	})
	require.NoError(t, err)
	return sec, w
}

func TestWorkerRepository(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	sec, _ := seedWorker(t, setup, "52998224725")
	repo := postgresql.NewWorkerRepository(setup.DB)

	got, err := repo.GetBySubjectID(ctx, "52998224725")
	require.NoError(t, err)
	assert.Equal(t, "Portaria", got.SectorName)
	assert.Equal(t, [7]bool{true, false, false, false, false, false, true}, got.RestDays)

	_, err = repo.GetBySubjectID(ctx, "11144477735")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	roster, err := repo.ListBySector(ctx, sec.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	search := "maria"
	found, err := repo.List(ctx, worker.WorkerFilter{Search: &search})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestEventRepository_AppendAndList(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	sec, w := seedWorker(t, setup, "52998224725")
	repo := postgresql.NewEventRepository(setup.DB)

	day := attendance.Date(2024, time.May, 15)
	ts := time.Date(2024, time.May, 15, 10, 58, 0, 0, time.UTC)

	created, err := repo.Append(ctx, attendance.Event{SubjectID: w.SubjectID, Kind: attendance.KindEntry, Timestamp: ts, CalendarDay: day})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.CalendarDay.Equal(day))

	_, err = repo.Append(ctx, attendance.Event{SubjectID: w.SubjectID, Kind: attendance.KindEntry, Timestamp: ts.Add(time.Hour), CalendarDay: day})
	assert.ErrorIs(t, err, attendance.ErrEventConflict)

	_, err = repo.Append(ctx, attendance.Event{SubjectID: attendance.SystemSubjectID, Kind: attendance.KindHoliday, Timestamp: ts, CalendarDay: day.AddDate(0, 0, 1)})
	require.NoError(t, err)

	_, err = repo.Append(ctx, attendance.Event{SubjectID: w.SubjectID, Kind: attendance.KindVacation, Timestamp: ts, CalendarDay: day.AddDate(0, 0, 2)})
	require.NoError(t, err)
	_, err = repo.Append(ctx, attendance.Event{SubjectID: w.SubjectID, Kind: attendance.KindAbsence, Timestamp: ts, CalendarDay: day.AddDate(0, 0, 2)})
	assert.ErrorIs(t, err, attendance.ErrEventConflict, "one exception per day")

	events, err := repo.ListBySubjects(ctx, []string{w.SubjectID}, day, day)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	events, err = repo.ListBySector(ctx, sec.ID, day, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Len(t, events, 3)

	removed, err := repo.Delete(ctx, w.SubjectID, day, attendance.KindEntry)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = repo.Delete(ctx, w.SubjectID, day, attendance.KindEntry)
	assert.ErrorIs(t, err, attendance.ErrEventNotFound)
}

func TestEventRepository_WithSubjectLockSerializes(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	_, w := seedWorker(t, setup, "52998224725")
	repo := postgresql.NewEventRepository(setup.DB)

	day := attendance.Date(2024, time.May, 15)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inside   int
		overlaps int
	)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.WithSubjectLock(ctx, w.SubjectID, func(txCtx context.Context) error {
				mu.Lock()
				inside++
				if inside > 1 {
					overlaps++
				}
				mu.Unlock()

				_, err := repo.ListBySubjects(txCtx, []string{w.SubjectID}, day, day)
				time.Sleep(20 * time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Zero(t, overlaps)
}
