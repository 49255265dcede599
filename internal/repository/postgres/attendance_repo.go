package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"
)

type eventAttendanceRepository struct {
	DB *sql.DB
}

func NewEventAttendanceRepository(db *sql.DB) domain.EventAttendanceRepository {
	return &eventAttendanceRepository{
		DB: db,
	}
}

func (r *eventAttendanceRepository) Upsert(ctx context.Context, a *domain.EventAttendance) error {
	query := `
		INSERT INTO event_attendance (event_id, user_id, attended, recorded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET attended = EXCLUDED.attended, recorded_at = EXCLUDED.recorded_at
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, a.EventID, a.UserID, a.Attended, a.RecordedAt).Scan(&a.ID)
}

func (r *eventAttendanceRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventAttendance, error) {
	query := `
		SELECT id, event_id, user_id, attended, recorded_at
		FROM event_attendance
		WHERE event_id = $1 AND user_id = $2
	`
	a := &domain.EventAttendance{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&a.ID, &a.EventID, &a.UserID, &a.Attended, &a.RecordedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *eventAttendanceRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventAttendance, error) {
	query := `
		SELECT id, event_id, user_id, attended, recorded_at
		FROM event_attendance
		WHERE event_id = $1
		ORDER BY recorded_at ASC
	`
	return r.list(ctx, query, eventID)
}

func (r *eventAttendanceRepository) ListAttendedByUserID(ctx context.Context, userID string) ([]*domain.EventAttendance, error) {
	query := `
		SELECT id, event_id, user_id, attended, recorded_at
		FROM event_attendance
		WHERE user_id = $1 AND attended = TRUE
		ORDER BY recorded_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *eventAttendanceRepository) list(ctx context.Context, query string, arg string) ([]*domain.EventAttendance, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.EventAttendance, 0)
	for rows.Next() {
		a := &domain.EventAttendance{}
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Attended, &a.RecordedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
