package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{
		DB: db,
	}
}

const registrationSelect = `
	SELECT r.id, r.event_id, e.title, r.user_id, r.user_name, r.user_email, r.status,
		r.check_in_time, r.feedback, r.rating, r.registration_time, r.updated_at
	FROM event_registrations r
	JOIN events e ON e.id = r.event_id`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.EventRegistration, error) {
	reg := &domain.EventRegistration{}
	var status string
	var checkIn sql.NullTime
	var feedback sql.NullString
	var rating sql.NullInt64
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.EventTitle, &reg.UserID, &reg.UserName, &reg.UserEmail, &status,
		&checkIn, &feedback, &rating, &reg.RegistrationTime, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	reg.Status = domain.RegistrationStatus(status)
	if checkIn.Valid {
		reg.CheckInTime = &checkIn.Time
	}
	if feedback.Valid {
		reg.Feedback = &feedback.String
	}
	if rating.Valid {
		v := int(rating.Int64)
		reg.Rating = &v
	}
	return reg, nil
}

func (r *eventRegistrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]*domain.EventRegistration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.EventRegistration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *eventRegistrationRepository) CreateWithinCapacity(ctx context.Context, reg *domain.EventRegistration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxParticipants int
	err = tx.QueryRowContext(ctx, `SELECT max_participants FROM events WHERE id = $1 FOR UPDATE`, reg.EventID).
		Scan(&maxParticipants)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock event: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id = $1 AND status = $2`,
		reg.EventID, string(domain.RegistrationStatusRegistered),
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	if count >= maxParticipants {
		return domain.ErrCapacityExceeded
	}

	query := `
		INSERT INTO event_registrations (event_id, user_id, user_name, user_email, status, registration_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		reg.EventID, reg.UserID, reg.UserName, reg.UserEmail, string(reg.Status), reg.RegistrationTime, reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return tx.Commit()
}

func (r *eventRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.EventRegistration, error) {
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, registrationSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, registrationSelect+` WHERE r.event_id = $1 AND r.user_id = $2`, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.EventRegistration, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_registrations`).Scan(&total); err != nil {
		return nil, 0, err
	}
	regs, err := r.queryRegistrations(ctx, registrationSelect+`
		ORDER BY r.registration_time DESC, r.id ASC
		LIMIT $1 OFFSET $2`, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

func (r *eventRegistrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRegistration, error) {
	return r.queryRegistrations(ctx, registrationSelect+` WHERE r.event_id = $1 ORDER BY r.registration_time ASC`, eventID)
}

func (r *eventRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	return r.queryRegistrations(ctx, registrationSelect+` WHERE r.user_id = $1 ORDER BY r.registration_time DESC`, userID)
}

func (r *eventRegistrationRepository) ListUpcomingByUserID(ctx context.Context, userID string, now time.Time) ([]*domain.EventRegistration, error) {
	return r.queryRegistrations(ctx, registrationSelect+`
		WHERE r.user_id = $1 AND e.start_time >= $2
		ORDER BY e.start_time ASC`, userID, now)
}

func (r *eventRegistrationRepository) ListPastByUserID(ctx context.Context, userID string, now time.Time) ([]*domain.EventRegistration, error) {
	return r.queryRegistrations(ctx, registrationSelect+`
		WHERE r.user_id = $1 AND e.end_time < $2
		ORDER BY e.start_time DESC`, userID, now)
}

func (r *eventRegistrationRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

func (r *eventRegistrationRepository) CountByEventIDAndStatus(ctx context.Context, eventID string, status domain.RegistrationStatus) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id = $1 AND status = $2`,
		eventID, string(status),
	).Scan(&count)
	return count, err
}

func (r *eventRegistrationRepository) Update(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		UPDATE event_registrations
		SET status = $1, check_in_time = $2, feedback = $3, rating = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query,
		string(reg.Status), reg.CheckInTime, reg.Feedback, reg.Rating, reg.UpdatedAt, reg.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
