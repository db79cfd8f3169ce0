package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/queue"
	"github.com/iliyamo/cinema-backoffice/internal/utils"
)

// memDB is an in-memory stand-in for the MySQL repositories.  It keeps
// the unique seat key and the cascades the schema enforces.
type memDB struct {
	mu         sync.Mutex
	nextID     uint64
	theaters   map[uint64]model.Theater
	categories map[uint64]model.Category
	movies     map[uint64]model.Movie
	screens    map[uint64]model.Screen
	customers  map[uint64]model.Customer
	tickets    map[uint64]model.Ticket
	users      map[uint64]model.User
}

func newMemDB() *memDB {
	return &memDB{
		theaters:   map[uint64]model.Theater{},
		categories: map[uint64]model.Category{},
		movies:     map[uint64]model.Movie{},
		screens:    map[uint64]model.Screen{},
		customers:  map[uint64]model.Customer{},
		tickets:    map[uint64]model.Ticket{},
		users:      map[uint64]model.User{},
	}
}

func (db *memDB) id() uint64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) stores() Stores {
	return Stores{
		Theaters:   memTheaters{db},
		Categories: memCategories{db},
		Movies:     memMovies{db},
		Screens:    memScreens{db},
		Customers:  memCustomers{db},
		Tickets:    memTickets{db},
	}
}

func notFound(entity string) error { return fmt.Errorf("%s: %w", entity, model.ErrNotFound) }

type fakeTx struct{ calls int }

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type memTheaters struct{ db *memDB }

func (r memTheaters) Create(_ context.Context, t *model.Theater) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t.ID = r.db.id()
	r.db.theaters[t.ID] = *t
	return nil
}

func (r memTheaters) GetByID(_ context.Context, id uint64) (*model.Theater, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.theaters[id]
	if !ok {
		return nil, notFound("theater")
	}
	return &t, nil
}

func (r memTheaters) Update(_ context.Context, t *model.Theater) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.theaters[t.ID]; !ok {
		return notFound("theater")
	}
	r.db.theaters[t.ID] = *t
	return nil
}

func (r memTheaters) Delete(_ context.Context, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.theaters[id]; !ok {
		return notFound("theater")
	}
	delete(r.db.theaters, id)
	for sid, s := range r.db.screens {
		if s.TheaterID == id {
			r.db.deleteScreenLocked(sid)
		}
	}
	return nil
}

func (r memTheaters) List(_ context.Context, activeOnly bool) ([]model.Theater, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Theater
	for _, t := range r.db.theaters {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memCategories struct{ db *memDB }

func (r memCategories) Create(_ context.Context, c *model.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = r.db.id()
	r.db.categories[c.ID] = *c
	return nil
}

func (r memCategories) GetByID(_ context.Context, id uint64) (*model.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, notFound("category")
	}
	return &c, nil
}

func (r memCategories) Update(_ context.Context, c *model.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[c.ID]; !ok {
		return notFound("category")
	}
	r.db.categories[c.ID] = *c
	return nil
}

func (r memCategories) Delete(_ context.Context, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, m := range r.db.movies {
		if m.CategoryID == id {
			return fmt.Errorf("category is still referenced: %w", model.ErrIntegrityConflict)
		}
	}
	delete(r.db.categories, id)
	return nil
}

type memMovies struct{ db *memDB }

func (r memMovies) Create(_ context.Context, m *model.Movie) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m.ID = r.db.id()
	r.db.movies[m.ID] = *m
	return nil
}

func (r memMovies) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.movies[id]
	if !ok {
		return nil, notFound("movie")
	}
	return &m, nil
}

func (r memMovies) Update(_ context.Context, m *model.Movie) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.movies[m.ID]; !ok {
		return notFound("movie")
	}
	r.db.movies[m.ID] = *m
	return nil
}

func (r memMovies) Delete(_ context.Context, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.movies[id]; !ok {
		return notFound("movie")
	}
	delete(r.db.movies, id)
	for sid, s := range r.db.screens {
		if s.MovieID != nil && *s.MovieID == id {
			s.MovieID = nil
			r.db.screens[sid] = s
		}
	}
	return nil
}

type memScreens struct{ db *memDB }

func (r memScreens) Create(_ context.Context, s *model.Screen) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s.ID = r.db.id()
	r.db.screens[s.ID] = *s
	return nil
}

func (r memScreens) GetByID(_ context.Context, id uint64) (*model.Screen, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.screens[id]
	if !ok {
		return nil, notFound("screen")
	}
	return &s, nil
}

func (r memScreens) GetForUpdate(ctx context.Context, id uint64) (*model.Screen, error) {
	return r.GetByID(ctx, id)
}

func (r memScreens) Update(_ context.Context, s *model.Screen) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.screens[s.ID]; !ok {
		return notFound("screen")
	}
	r.db.screens[s.ID] = *s
	return nil
}

func (r memScreens) Delete(_ context.Context, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.screens[id]; !ok {
		return notFound("screen")
	}
	r.db.deleteScreenLocked(id)
	return nil
}

func (db *memDB) deleteScreenLocked(id uint64) {
	delete(db.screens, id)
	for tid, t := range db.tickets {
		if t.ScreenID == id {
			delete(db.tickets, tid)
		}
	}
}

func (r memScreens) ListByTheater(_ context.Context, theaterID uint64, activeOnly bool) ([]model.Screen, error) {
	out := r.filter(func(s model.Screen) bool { return s.TheaterID == theaterID && (!activeOnly || s.IsActive) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memScreens) ListByMovieForUpdate(_ context.Context, movieID uint64) ([]model.Screen, error) {
	return r.filter(func(s model.Screen) bool { return s.MovieID != nil && *s.MovieID == movieID }), nil
}

func (r memScreens) filter(keep func(model.Screen) bool) []model.Screen {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Screen
	for _, s := range r.db.screens {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memCustomers struct{ db *memDB }

func (r memCustomers) Create(_ context.Context, c *model.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.customers {
		if o.Email == c.Email {
			return fmt.Errorf("customer: %w", model.ErrIntegrityConflict)
		}
	}
	c.ID = r.db.id()
	r.db.customers[c.ID] = *c
	return nil
}

func (r memCustomers) GetByID(_ context.Context, id uint64) (*model.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.customers[id]
	if !ok {
		return nil, notFound("customer")
	}
	return &c, nil
}

func (r memCustomers) Update(_ context.Context, c *model.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.customers[c.ID]; !ok {
		return notFound("customer")
	}
	r.db.customers[c.ID] = *c
	return nil
}

func (r memCustomers) Delete(_ context.Context, id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.customers[id]; !ok {
		return notFound("customer")
	}
	for _, t := range r.db.tickets {
		if t.CustomerID != nil && *t.CustomerID == id {
			return fmt.Errorf("customer is still referenced: %w", model.ErrIntegrityConflict)
		}
	}
	delete(r.db.customers, id)
	return nil
}

type memTickets struct{ db *memDB }

func (r memTickets) insertLocked(t *model.Ticket) error {
	for _, o := range r.db.tickets {
		if o.ScreenID == t.ScreenID && o.SeatNumber == t.SeatNumber {
			return fmt.Errorf("ticket: %w: duplicate seat %d", model.ErrIntegrityConflict, t.SeatNumber)
		}
	}
	t.ID = r.db.id()
	r.db.tickets[t.ID] = *t
	return nil
}

func (r memTickets) Create(_ context.Context, t *model.Ticket) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.insertLocked(t)
}

func (r memTickets) CreateBulk(_ context.Context, tickets []model.Ticket) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range tickets {
		if err := r.insertLocked(&tickets[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r memTickets) GetByID(_ context.Context, id uint64) (*model.Ticket, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tickets[id]
	if !ok {
		return nil, notFound("ticket")
	}
	return &t, nil
}

func (r memTickets) GetForUpdate(ctx context.Context, id uint64) (*model.Ticket, error) {
	return r.GetByID(ctx, id)
}

func (r memTickets) Update(_ context.Context, t *model.Ticket) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tickets[t.ID]; !ok {
		return notFound("ticket")
	}
	r.db.tickets[t.ID] = *t
	return nil
}

func (r memTickets) ListByScreen(_ context.Context, screenID uint64) ([]model.Ticket, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Ticket
	for _, t := range r.db.tickets {
		if t.ScreenID == screenID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out, nil
}

func (r memTickets) DeleteByScreen(_ context.Context, screenID uint64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, t := range r.db.tickets {
		if t.ScreenID == screenID {
			delete(r.db.tickets, id)
			n++
		}
	}
	return n, nil
}

func (r memTickets) DeleteAvailableSeats(_ context.Context, screenID uint64, seats []int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	drop := map[int]bool{}
	for _, s := range seats {
		drop[s] = true
	}
	for id, t := range r.db.tickets {
		if t.ScreenID == screenID && t.CustomerID == nil && drop[t.SeatNumber] {
			delete(r.db.tickets, id)
		}
	}
	return nil
}

func (r memTickets) CountAvailable(_ context.Context, screenIDs []uint64) (map[uint64]int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	want := map[uint64]bool{}
	for _, id := range screenIDs {
		want[id] = true
	}
	out := map[uint64]int{}
	for _, t := range r.db.tickets {
		if want[t.ScreenID] && t.CustomerID == nil {
			out[t.ScreenID]++
		}
	}
	return out, nil
}

type memUsers struct {
	db *memDB
}

func (r memUsers) Create(_ context.Context, u *model.User, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.users {
		if o.Email == u.Email {
			return fmt.Errorf("user: %w", model.ErrIntegrityConflict)
		}
	}
	u.ID = r.db.id()
	u.PasswordHash = hash
	r.db.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, notFound("user")
}

func (r memUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return &u, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

var testNow = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
