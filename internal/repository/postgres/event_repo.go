package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"

	"github.com/lib/pq"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// Cancelled registrations do not occupy a seat.
const eventSelect = `
	SELECT e.id, e.title, e.description, e.category_id, c.name, e.start_time, e.end_time,
		e.location, e.venue_id, e.max_participants, e.organizer, e.organizer_id, e.image_url,
		e.tags, e.status, e.created_at, e.updated_at,
		(SELECT COUNT(*) FROM event_registrations r WHERE r.event_id = e.id AND r.status <> 'CANCELLED')
	FROM events e
	LEFT JOIN event_categories c ON c.id = e.category_id`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var categoryName, imageURL sql.NullString
	var venueID sql.NullInt64
	var tags pq.StringArray
	var status string
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.CategoryID, &categoryName, &e.StartTime, &e.EndTime,
		&e.Location, &venueID, &e.MaxParticipants, &e.Organizer, &e.OrganizerID, &imageURL,
		&tags, &status, &e.CreatedAt, &e.UpdatedAt, &e.CurrentRegistrations,
	)
	if err != nil {
		return nil, err
	}
	if categoryName.Valid {
		e.CategoryName = categoryName.String
	}
	if venueID.Valid {
		e.VenueID = &venueID.Int64
	}
	if imageURL.Valid {
		e.ImageURL = &imageURL.String
	}
	e.Tags = []string(tags)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	e.Status = domain.EventStatus(status)
	return e, nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, category_id, start_time, end_time, location, venue_id,
			max_participants, organizer, organizer_id, image_url, tags, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.CategoryID, e.StartTime, e.EndTime, e.Location, e.VenueID,
		e.MaxParticipants, e.Organizer, e.OrganizerID, e.ImageURL, pq.Array(e.Tags), string(e.Status),
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	return r.queryEvents(ctx, eventSelect+` WHERE e.id = ANY($1)`, pq.Array(ids))
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}
	events, err := r.queryEvents(ctx, eventSelect+`
		ORDER BY e.start_time ASC, e.id ASC
		LIMIT $1 OFFSET $2`, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return r.queryEvents(ctx, eventSelect+` WHERE e.organizer_id = $1 ORDER BY e.start_time ASC`, organizerID)
}

func (r *eventRepository) ListByCategoryID(ctx context.Context, categoryID string) ([]*domain.Event, error) {
	return r.queryEvents(ctx, eventSelect+` WHERE e.category_id = $1 ORDER BY e.start_time ASC`, categoryID)
}

func (r *eventRepository) ListUpcoming(ctx context.Context, status domain.EventStatus, now time.Time) ([]*domain.Event, error) {
	return r.queryEvents(ctx, eventSelect+`
		WHERE e.status = $1 AND e.start_time >= $2
		ORDER BY e.start_time ASC`, string(status), now)
}

// likeEscaper makes LIKE metacharacters in a keyword match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *eventRepository) Search(ctx context.Context, c domain.EventSearchCriteria) ([]*domain.Event, error) {
	var where []string
	var args []any
	n := 1
	if c.CategoryID != "" {
		where = append(where, fmt.Sprintf("e.category_id = $%d", n))
		args = append(args, c.CategoryID)
		n++
	}
	if c.Keyword != "" {
		where = append(where, fmt.Sprintf(`(e.title ILIKE $%d ESCAPE '\' OR e.description ILIKE $%d ESCAPE '\')`, n, n))
		args = append(args, "%"+likeEscaper.Replace(c.Keyword)+"%")
		n++
	}
	if c.StartFrom != nil {
		where = append(where, fmt.Sprintf("e.start_time >= $%d", n))
		args = append(args, *c.StartFrom)
		n++
	}
	if c.StartTo != nil {
		where = append(where, fmt.Sprintf("e.start_time <= $%d", n))
		args = append(args, *c.StartTo)
		n++
	}
	if c.Status != nil {
		where = append(where, fmt.Sprintf("e.status = $%d", n))
		args = append(args, string(*c.Status))
	}
	query := eventSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.start_time ASC"
	return r.queryEvents(ctx, query, args...)
}

func (r *eventRepository) ListByAllTags(ctx context.Context, tags []string) ([]*domain.Event, error) {
	return r.queryEvents(ctx, eventSelect+` WHERE e.tags @> $1 ORDER BY e.start_time ASC`, pq.Array(tags))
}

func (r *eventRepository) CountByCategoryID(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE category_id = $1`, categoryID).Scan(&count)
	return count, err
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, category_id = $3, start_time = $4, end_time = $5,
			location = $6, venue_id = $7, max_participants = $8, image_url = $9, tags = $10,
			status = $11, updated_at = $12
		WHERE id = $13
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.CategoryID, e.StartTime, e.EndTime,
		e.Location, e.VenueID, e.MaxParticipants, e.ImageURL, pq.Array(e.Tags),
		string(e.Status), e.UpdatedAt, e.ID,
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

func (r *eventRepository) SetVenue(ctx context.Context, id string, venueID int64, updatedAt time.Time) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE events SET venue_id = $1, updated_at = $2 WHERE id = $3`, venueID, updatedAt, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
