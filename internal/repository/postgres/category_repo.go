package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type eventCategoryRepository struct {
	DB *sql.DB
}

func NewEventCategoryRepository(db *sql.DB) domain.EventCategoryRepository {
	return &eventCategoryRepository{
		DB: db,
	}
}

const categoryColumns = `
	c.id, c.name, c.description, c.color, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM events e WHERE e.category_id = c.id) AS event_count`

func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == uniqueViolation
}

func (r *eventCategoryRepository) Create(ctx context.Context, c *domain.EventCategory) error {
	query := `
		INSERT INTO event_categories (name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.Name, c.Description, c.Color, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func scanCategory(row interface{ Scan(...any) error }) (*domain.EventCategory, error) {
	c := &domain.EventCategory{}
	var descNull, colorNull sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &descNull, &colorNull, &c.CreatedAt, &c.UpdatedAt, &c.EventCount); err != nil {
		return nil, err
	}
	if descNull.Valid {
		c.Description = &descNull.String
	}
	if colorNull.Valid {
		c.Color = &colorNull.String
	}
	return c, nil
}

func (r *eventCategoryRepository) GetByID(ctx context.Context, id string) (*domain.EventCategory, error) {
	query := `SELECT` + categoryColumns + `
		FROM event_categories c
		WHERE c.id = $1
	`
	c, err := scanCategory(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *eventCategoryRepository) GetByNameIgnoreCase(ctx context.Context, name string) (*domain.EventCategory, error) {
	query := `SELECT` + categoryColumns + `
		FROM event_categories c
		WHERE lower(c.name) = lower($1)
	`
	c, err := scanCategory(r.DB.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *eventCategoryRepository) List(ctx context.Context) ([]*domain.EventCategory, error) {
	query := `SELECT` + categoryColumns + `
		FROM event_categories c
		ORDER BY c.name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*domain.EventCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *eventCategoryRepository) Update(ctx context.Context, c *domain.EventCategory) error {
	query := `
		UPDATE event_categories
		SET name = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := r.DB.ExecContext(ctx, query, c.Name, c.Description, c.Color, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventCategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
