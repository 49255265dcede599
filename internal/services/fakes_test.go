package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"campusevents/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// fakeCategoryRepo is an in-memory EventCategoryRepository for tests.
type fakeCategoryRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.EventCategory
	nextID int
	events *fakeEventRepo
}

func newFakeCategoryRepo(events *fakeEventRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[string]*domain.EventCategory), nextID: 1, events: events}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.EventCategory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrDuplicateName
		}
	}
	c.ID = fmt.Sprintf("cat-%d", f.nextID)
	f.nextID++
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.EventCategory, error) {
	f.mu.Lock()
	c, ok := f.byID[id]
	f.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.EventCount = f.countEvents(ctx, id)
	return &cp, nil
}

func (f *fakeCategoryRepo) GetByNameIgnoreCase(ctx context.Context, name string) (*domain.EventCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.EventCategory, error) {
	f.mu.Lock()
	out := make([]*domain.EventCategory, 0, len(f.byID))
	for _, c := range f.byID {
		cp := *c
		out = append(out, &cp)
	}
	f.mu.Unlock()
	for _, c := range out {
		c.EventCount = f.countEvents(ctx, c.ID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *domain.EventCategory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCategoryRepo) countEvents(ctx context.Context, id string) int {
	if f.events == nil {
		return 0
	}
	n, _ := f.events.CountByCategoryID(ctx, id)
	return n
}

// fakeEventRepo is an in-memory EventRepository for tests. It stores and returns copies.
type fakeEventRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, every method returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) put(e *domain.Event) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	cp := *e
	f.byID[e.ID] = &cp
	return e
}

func (f *fakeEventRepo) get(id string) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil
	}
	cp := *e
	return &cp
}

func (f *fakeEventRepo) filter(keep func(*domain.Event) bool) []*domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Event
	for _, e := range f.byID {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.put(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e := f.get(id); e != nil {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return f.filter(func(e *domain.Event) bool { return want[e.ID] }), nil
}

func (f *fakeEventRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	all := f.filter(func(*domain.Event) bool { return true })
	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return f.filter(func(e *domain.Event) bool { return e.OrganizerID == organizerID }), nil
}

func (f *fakeEventRepo) ListByCategoryID(ctx context.Context, categoryID string) ([]*domain.Event, error) {
	return f.filter(func(e *domain.Event) bool { return e.CategoryID == categoryID }), nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, status domain.EventStatus, now time.Time) ([]*domain.Event, error) {
	out := f.filter(func(e *domain.Event) bool { return e.Status == status && !e.StartTime.Before(now) })
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeEventRepo) Search(ctx context.Context, c domain.EventSearchCriteria) ([]*domain.Event, error) {
	return f.filter(c.Matches), nil
}

func (f *fakeEventRepo) ListByAllTags(ctx context.Context, tags []string) ([]*domain.Event, error) {
	return f.filter(func(e *domain.Event) bool { return e.HasAllTags(tags) }), nil
}

func (f *fakeEventRepo) CountByCategoryID(ctx context.Context, categoryID string) (int, error) {
	return len(f.filter(func(e *domain.Event) bool { return e.CategoryID == categoryID })), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if f.get(e.ID) == nil {
		return domain.ErrNotFound
	}
	f.put(e)
	return nil
}

func (f *fakeEventRepo) SetVenue(ctx context.Context, id string, venueID int64, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.VenueID = &venueID
	e.UpdatedAt = updatedAt
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeRegistrationRepo is an in-memory EventRegistrationRepository. Capacity is read from events.
type fakeRegistrationRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.EventRegistration
	nextID int
	events *fakeEventRepo
}

func newFakeRegistrationRepo(events *fakeEventRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{byID: make(map[string]*domain.EventRegistration), nextID: 1, events: events}
}

func (f *fakeRegistrationRepo) CreateWithinCapacity(ctx context.Context, reg *domain.EventRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event := f.events.get(reg.EventID)
	if event == nil {
		return domain.ErrNotFound
	}
	active := 0
	for _, r := range f.byID {
		if r.EventID != reg.EventID {
			continue
		}
		if r.UserID == reg.UserID {
			return domain.ErrAlreadyRegistered
		}
		if r.Status == domain.RegistrationStatusRegistered {
			active++
		}
	}
	if active >= event.MaxParticipants {
		return domain.ErrCapacityExceeded
	}
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	cp := *reg
	f.byID[reg.ID] = &cp
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byID {
		if r.EventID == eventID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) filter(keep func(*domain.EventRegistration) bool) []*domain.EventRegistration {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.EventRegistration
	for _, r := range f.byID {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRegistrationRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.EventRegistration, int, error) {
	all := f.filter(func(*domain.EventRegistration) bool { return true })
	return all, len(all), nil
}

func (f *fakeRegistrationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRegistration, error) {
	return f.filter(func(r *domain.EventRegistration) bool { return r.EventID == eventID }), nil
}

func (f *fakeRegistrationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	return f.filter(func(r *domain.EventRegistration) bool { return r.UserID == userID }), nil
}

func (f *fakeRegistrationRepo) ListUpcomingByUserID(ctx context.Context, userID string, now time.Time) ([]*domain.EventRegistration, error) {
	return f.filter(func(r *domain.EventRegistration) bool {
		e := f.events.get(r.EventID)
		return r.UserID == userID && e != nil && !e.StartTime.Before(now)
	}), nil
}

func (f *fakeRegistrationRepo) ListPastByUserID(ctx context.Context, userID string, now time.Time) ([]*domain.EventRegistration, error) {
	return f.filter(func(r *domain.EventRegistration) bool {
		e := f.events.get(r.EventID)
		return r.UserID == userID && e != nil && e.EndTime.Before(now)
	}), nil
}

func (f *fakeRegistrationRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	return len(f.filter(func(r *domain.EventRegistration) bool { return r.EventID == eventID })), nil
}

func (f *fakeRegistrationRepo) CountByEventIDAndStatus(ctx context.Context, eventID string, status domain.RegistrationStatus) (int, error) {
	return len(f.filter(func(r *domain.EventRegistration) bool { return r.EventID == eventID && r.Status == status })), nil
}

func (f *fakeRegistrationRepo) Update(ctx context.Context, reg *domain.EventRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[reg.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *reg
	f.byID[reg.ID] = &cp
	return nil
}

// fakeAttendanceRepo is an in-memory EventAttendanceRepository keyed by (event, user).
type fakeAttendanceRepo struct {
	mu     sync.Mutex
	rows   map[string]*domain.EventAttendance
	nextID int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*domain.EventAttendance), nextID: 1}
}

func pairKey(eventID, userID string) string { return eventID + "|" + userID }

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, a *domain.EventAttendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := pairKey(a.EventID, a.UserID)
	if existing, ok := f.rows[k]; ok {
		a.ID = existing.ID
	} else {
		a.ID = fmt.Sprintf("att-%d", f.nextID)
		f.nextID++
	}
	cp := *a
	f.rows[k] = &cp
	return nil
}

func (f *fakeAttendanceRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[pairKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttendanceRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.EventAttendance
	for _, a := range f.rows {
		if a.EventID == eventID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAttendanceRepo) ListAttendedByUserID(ctx context.Context, userID string) ([]*domain.EventAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.EventAttendance
	for _, a := range f.rows {
		if a.UserID == userID && a.Attended {
			cp := *a
			out = append(out, &cp)
		}
	}
	// Ordered by ID; the service sorts by recency.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeRatingRepo is an in-memory EventRatingRepository keyed by (event, user).
type fakeRatingRepo struct {
	mu     sync.Mutex
	rows   map[string]*domain.EventRating
	nextID int
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{rows: make(map[string]*domain.EventRating), nextID: 1}
}

func (f *fakeRatingRepo) Upsert(ctx context.Context, r *domain.EventRating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := pairKey(r.EventID, r.UserID)
	if existing, ok := f.rows[k]; ok {
		r.ID = existing.ID
	} else {
		r.ID = fmt.Sprintf("rat-%d", f.nextID)
		f.nextID++
	}
	cp := *r
	f.rows[k] = &cp
	return nil
}

func (f *fakeRatingRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[pairKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRatingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.EventRating
	for _, r := range f.rows {
		if r.EventID == eventID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRatingRepo) ListByUserAndEventIDs(ctx context.Context, userID string, eventIDs []string) ([]*domain.EventRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.EventRating
	for _, id := range eventIDs {
		if r, ok := f.rows[pairKey(id, userID)]; ok {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeSummaryCache is an in-memory generational RatingSummaryCache that counts calls.
type fakeSummaryCache struct {
	mu      sync.Mutex
	gens    map[string]int64
	entries map[string]*domain.RatingSummary
	gets    int
	sets    int
	bumped  []string
	getErr  error
	genErr  error
	bumpErr error
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{gens: make(map[string]int64), entries: make(map[string]*domain.RatingSummary)}
}

func cacheKey(eventID string, gen int64) string {
	return fmt.Sprintf("%s@%d", eventID, gen)
}

// current returns the entry under the live generation.
func (f *fakeSummaryCache) current(eventID string) (*domain.RatingSummary, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.entries[cacheKey(eventID, f.gens[eventID])]
	return s, ok
}

func (f *fakeSummaryCache) Generation(ctx context.Context, eventID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.genErr != nil {
		return 0, f.genErr
	}
	return f.gens[eventID], nil
}

func (f *fakeSummaryCache) Get(ctx context.Context, eventID string, gen int64) (*domain.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.entries[cacheKey(eventID, gen)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSummaryCache) Set(ctx context.Context, gen int64, s *domain.RatingSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.entries[cacheKey(s.EventID, gen)] = s
	return nil
}

func (f *fakeSummaryCache) Bump(ctx context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bumpErr != nil {
		return f.bumpErr
	}
	f.gens[eventID]++
	f.bumped = append(f.bumped, eventID)
	return nil
}

// pausingRatingRepo blocks the first ListByEventID after it has read the rows
// until release is closed.
type pausingRatingRepo struct {
	*fakeRatingRepo
	once    sync.Once
	listed  chan struct{}
	release chan struct{}
}

func newPausingRatingRepo(inner *fakeRatingRepo) *pausingRatingRepo {
	return &pausingRatingRepo{fakeRatingRepo: inner, listed: make(chan struct{}), release: make(chan struct{})}
}

func (p *pausingRatingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRating, error) {
	out, err := p.fakeRatingRepo.ListByEventID(ctx, eventID)
	p.once.Do(func() {
		close(p.listed)
		<-p.release
	})
	return out, err
}

// fakeVenueAllocator returns a fixed result and records requests.
type fakeVenueAllocator struct {
	mu          sync.Mutex
	result      domain.VenueAllocationResult
	requests    []domain.VenueAllocationRequest
	unavailable bool
	checked     []int64
}

func (f *fakeVenueAllocator) Allocate(ctx context.Context, req domain.VenueAllocationRequest) domain.VenueAllocationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result
}

func (f *fakeVenueAllocator) GetVenue(ctx context.Context, id int64) domain.Venue {
	return domain.Venue{ID: id, Name: "Main Hall"}
}

func (f *fakeVenueAllocator) CheckAvailability(ctx context.Context, id int64, start, end time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checked = append(f.checked, id)
	return !f.unavailable
}

func (f *fakeVenueAllocator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func unavailableVenues() *fakeVenueAllocator {
	return &fakeVenueAllocator{result: domain.VenueAllocationResult{Success: false, Message: domain.VenueUnavailableMessage}}
}

func allocatingVenues(id int64, name string) *fakeVenueAllocator {
	return &fakeVenueAllocator{result: domain.VenueAllocationResult{Success: true, VenueID: &id, VenueName: &name, Message: "allocated"}}
}

// fakeEmailService records sent emails by template name.
type fakeEmailService struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
	err       error
}

func (f *fakeEmailService) SendRegistrationConfirmed(ctx context.Context, data *domain.RegistrationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.confirmed = append(f.confirmed, data.Email)
	return nil
}

func (f *fakeEmailService) SendRegistrationCancelled(ctx context.Context, data *domain.RegistrationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, data.Email)
	return nil
}

// fakePublisher records published notices.
type fakePublisher struct {
	mu      sync.Mutex
	notices []domain.RegistrationNotice
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, n domain.RegistrationNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, n)
	return nil
}

func (f *fakePublisher) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.notices))
	for _, n := range f.notices {
		out = append(out, n.Kind)
	}
	return out
}

var errBoom = errors.New("boom")
