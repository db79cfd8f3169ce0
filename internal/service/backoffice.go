// Package service runs the back office save pipeline: it loads the
// entities a save depends on, applies the booking rules, persists the
// outcome in one transaction and announces what changed.
package service

import (
	"context"
	"log"
	"sync"

	"github.com/iliyamo/cinema-backoffice/internal/clock"
	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/queue"
)

// TxRunner runs fn in a single transaction carried by the context.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type TheaterStore interface {
	Create(ctx context.Context, t *model.Theater) error
	GetByID(ctx context.Context, id uint64) (*model.Theater, error)
	Update(ctx context.Context, t *model.Theater) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, activeOnly bool) ([]model.Theater, error)
}

type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint64) error
}

type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id uint64) error
}

type ScreenStore interface {
	Create(ctx context.Context, s *model.Screen) error
	GetByID(ctx context.Context, id uint64) (*model.Screen, error)
	GetForUpdate(ctx context.Context, id uint64) (*model.Screen, error)
	Update(ctx context.Context, s *model.Screen) error
	Delete(ctx context.Context, id uint64) error
	ListByTheater(ctx context.Context, theaterID uint64, activeOnly bool) ([]model.Screen, error)
	ListByMovieForUpdate(ctx context.Context, movieID uint64) ([]model.Screen, error)
}

type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id uint64) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uint64) error
}

type TicketStore interface {
	Create(ctx context.Context, t *model.Ticket) error
	CreateBulk(ctx context.Context, tickets []model.Ticket) error
	GetByID(ctx context.Context, id uint64) (*model.Ticket, error)
	GetForUpdate(ctx context.Context, id uint64) (*model.Ticket, error)
	Update(ctx context.Context, t *model.Ticket) error
	ListByScreen(ctx context.Context, screenID uint64) ([]model.Ticket, error)
	DeleteByScreen(ctx context.Context, screenID uint64) (int64, error)
	DeleteAvailableSeats(ctx context.Context, screenID uint64, seats []int) error
	CountAvailable(ctx context.Context, screenIDs []uint64) (map[uint64]int, error)
}

// Publisher announces committed changes.
type Publisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// Stores groups the persistence the pipeline depends on.
type Stores struct {
	Theaters   TheaterStore
	Categories CategoryStore
	Movies     MovieStore
	Screens    ScreenStore
	Customers  CustomerStore
	Tickets    TicketStore
}

// Backoffice is the only writer of screens and tickets.  Saves touching a
// screen's tickets are serialized per screen in process and by a row lock
// on the screen in the database.
type Backoffice struct {
	tx     TxRunner
	st     Stores
	clock  clock.Clock
	events Publisher
	locks  screenLocks
}

type Option func(*Backoffice)

// WithPublisher sends committed events to p.  Without it events are
// dropped.
func WithPublisher(p Publisher) Option {
	return func(b *Backoffice) {
		if p != nil {
			b.events = p
		}
	}
}

func NewBackoffice(tx TxRunner, st Stores, clk clock.Clock, opts ...Option) *Backoffice {
	b := &Backoffice{tx: tx, st: st, clock: clk}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// publish sends events collected during a committed transaction.  A
// broker failure never fails the save that already committed.
func (b *Backoffice) publish(ctx context.Context, evs []queue.Event) {
	if b.events == nil {
		return
	}
	for _, ev := range evs {
		if err := b.events.Publish(ctx, ev); err != nil {
			log.Printf("backoffice: publish %s for screen %d: %v", ev.Type, ev.ScreenID, err)
		}
	}
}

// screenLocks hands out one mutex per screen id.
type screenLocks struct {
	m sync.Map
}

func (l *screenLocks) lock(id uint64) func() {
	v, _ := l.m.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
