package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type eventCategoryService struct {
	categoryRepo   domain.EventCategoryRepository
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventCategoryService returns an EventCategoryService backed by the given repositories.
func NewEventCategoryService(categoryRepo domain.EventCategoryRepository, eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.EventCategoryService {
	return &eventCategoryService{
		categoryRepo:   categoryRepo,
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventCategoryService) CreateCategory(ctx context.Context, name string, description, color *string) (*domain.EventCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	now := s.now()
	c := domain.NewEventCategory(name, description, color, now, now)
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateName, name)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.logger.InfoContext(ctx, "category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *eventCategoryService) UpdateCategory(ctx context.Context, id, name string, description, color *string) (*domain.EventCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if name != c.Name {
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
	}

	c.Name = name
	c.Description = description
	c.Color = color
	c.UpdatedAt = s.now()
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrDuplicateName):
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateName, name)
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	count, err := s.eventRepo.CountByCategoryID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count category events: %w", err)
	}
	c.EventCount = count
	s.logger.InfoContext(ctx, "category updated", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *eventCategoryService) DeleteCategory(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get category: %w", err)
	}

	count, err := s.eventRepo.CountByCategoryID(ctx, id)
	if err != nil {
		return fmt.Errorf("count category events: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: category has %d events", domain.ErrHasDependents, count)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	s.logger.InfoContext(ctx, "category deleted", "category_id", id)
	return nil
}

func (s *eventCategoryService) ListCategories(ctx context.Context) ([]*domain.EventCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if list == nil {
		list = []*domain.EventCategory{}
	}
	return list, nil
}

func (s *eventCategoryService) GetCategory(ctx context.Context, id string) (*domain.EventCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// ensureNameFree fails with ErrDuplicateName when another category (not exceptID) uses name in any casing.
func (s *eventCategoryService) ensureNameFree(ctx context.Context, name, exceptID string) error {
	existing, err := s.categoryRepo.GetByNameIgnoreCase(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get category by name: %w", err)
	}
	if existing.ID != exceptID {
		s.logger.WarnContext(ctx, "duplicate category name", "name", name)
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, name)
	}
	return nil
}
