package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"campusevents/internal/domain"

	"github.com/lib/pq"
)

type eventRatingRepository struct {
	DB *sql.DB
}

func NewEventRatingRepository(db *sql.DB) domain.EventRatingRepository {
	return &eventRatingRepository{
		DB: db,
	}
}

const ratingSelect = `
	SELECT id, event_id, user_id, rating, comment, categories, rated_at
	FROM event_ratings`

func scanRating(row interface{ Scan(...any) error }) (*domain.EventRating, error) {
	rt := &domain.EventRating{}
	var comment sql.NullString
	var categories []byte
	if err := row.Scan(&rt.ID, &rt.EventID, &rt.UserID, &rt.Rating, &comment, &categories, &rt.RatedAt); err != nil {
		return nil, err
	}
	if comment.Valid {
		rt.Comment = &comment.String
	}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &rt.Categories); err != nil {
			return nil, fmt.Errorf("decode rating categories: %w", err)
		}
	}
	return rt, nil
}

// Categories are stored as JSONB; an empty map is stored as NULL.
func encodeCategories(categories map[string]int) (any, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *eventRatingRepository) Upsert(ctx context.Context, rt *domain.EventRating) error {
	categories, err := encodeCategories(rt.Categories)
	if err != nil {
		return fmt.Errorf("encode rating categories: %w", err)
	}
	query := `
		INSERT INTO event_ratings (event_id, user_id, rating, comment, categories, rated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment,
			categories = EXCLUDED.categories, rated_at = EXCLUDED.rated_at
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, rt.EventID, rt.UserID, rt.Rating, rt.Comment, categories, rt.RatedAt).Scan(&rt.ID)
}

func (r *eventRatingRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRating, error) {
	rt, err := scanRating(r.DB.QueryRowContext(ctx, ratingSelect+` WHERE event_id = $1 AND user_id = $2`, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rt, nil
}

func (r *eventRatingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRating, error) {
	return r.list(ctx, ratingSelect+` WHERE event_id = $1 ORDER BY rated_at DESC`, eventID)
}

func (r *eventRatingRepository) ListByUserAndEventIDs(ctx context.Context, userID string, eventIDs []string) ([]*domain.EventRating, error) {
	if len(eventIDs) == 0 {
		return []*domain.EventRating{}, nil
	}
	return r.list(ctx, ratingSelect+` WHERE user_id = $1 AND event_id = ANY($2)`, userID, pq.Array(eventIDs))
}

func (r *eventRatingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.EventRating, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.EventRating, 0)
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rt)
	}
	return list, rows.Err()
}
