package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const eventColumns = `id, subject_id, kind, occurred_at, calendar_day, evidence_ref, created_at`

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepositoryImpl{db: db}
}

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var e attendance.Event
	err := row.Scan(&e.ID, &e.SubjectID, &e.Kind, &e.Timestamp, &e.CalendarDay, &e.EvidenceRef, &e.CreatedAt)
	return e, err
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	defer rows.Close()

	events := make([]attendance.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance events: %w", err)
	}
	return events, nil
}

// ListBySubjects implements attendance.EventRepository.
func (r *eventRepositoryImpl) ListBySubjects(ctx context.Context, subjectIDs []string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE subject_id = ANY($1)
		  AND calendar_day BETWEEN $2 AND $3
		ORDER BY occurred_at, created_at
	`

	rows, err := q.Query(ctx, query, subjectIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	return collectEvents(rows)
}

// ListBySector implements attendance.EventRepository.
func (r *eventRepositoryImpl) ListBySector(ctx context.Context, sectorID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE calendar_day BETWEEN $2 AND $3
		  AND (
			subject_id IN (SELECT subject_id FROM workers WHERE sector_id = $1)
			OR subject_id = $4
		  )
		ORDER BY occurred_at, created_at
	`

	rows, err := q.Query(ctx, query, sectorID, from, to, attendance.SystemSubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sector attendance events: %w", err)
	}
	return collectEvents(rows)
}

// Append implements attendance.EventRepository.
func (r *eventRepositoryImpl) Append(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (subject_id, kind, occurred_at, calendar_day, evidence_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + eventColumns

	created, err := scanEvent(q.QueryRow(ctx, query, e.SubjectID, e.Kind, e.Timestamp, e.CalendarDay, e.EvidenceRef))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Event{}, fmt.Errorf("%w: %s", attendance.ErrEventConflict, pgErr.ConstraintName)
		}
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}
	return created, nil
}

// Delete implements attendance.EventRepository.
func (r *eventRepositoryImpl) Delete(ctx context.Context, subjectID string, day time.Time, kind attendance.Kind) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendance_events
		WHERE subject_id = $1 AND calendar_day = $2 AND kind = $3
		RETURNING ` + eventColumns

	removed, err := scanEvent(q.QueryRow(ctx, query, subjectID, day, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to delete attendance event: %w", err)
	}
	return removed, nil
}

// WithSubjectLock implements attendance.EventRepository. The advisory lock is
// released when the transaction ends.
func (r *eventRepositoryImpl) WithSubjectLock(ctx context.Context, subjectID string, fn func(ctx context.Context) error) error {
	if tx, ok := txFromContext(ctx); ok {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, subjectID); err != nil {
			return fmt.Errorf("failed to lock subject: %w", err)
		}
		return fn(ctx)
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, subjectID); err != nil {
			return fmt.Errorf("failed to lock subject: %w", err)
		}
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}
