package service

import (
	"context"
	"time"

	"github.com/iliyamo/cinema-backoffice/internal/booking"
	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/queue"
)

func (b *Backoffice) GetTicket(ctx context.Context, id uint64) (*model.Ticket, error) {
	return b.st.Tickets.GetByID(ctx, id)
}

// SaveTicket runs the issuing chain for t and persists it.  Price and
// issuance instant are derived: the price follows the screen type and
// IssuedAt is set when a customer first takes the seat and cleared when
// the seat is released.
func (b *Backoffice) SaveTicket(ctx context.Context, t *model.Ticket) error {
	defer b.locks.lock(t.ScreenID)()
	now := b.clock.Now()
	var evs []queue.Event

	err := b.tx.WithTx(ctx, func(ctx context.Context) error {
		screen, err := b.st.Screens.GetForUpdate(ctx, t.ScreenID)
		if err != nil {
			return err
		}
		theater, err := b.st.Theaters.GetByID(ctx, screen.TheaterID)
		if err != nil {
			return err
		}
		var customer *model.Customer
		if t.CustomerID != nil {
			if customer, err = b.st.Customers.GetByID(ctx, *t.CustomerID); err != nil {
				return err
			}
		}

		var prev *model.Ticket
		t.IssuedAt = nil
		v := booking.ValidateTicket(t, booking.TicketRefs{Screen: screen, Theater: theater, Customer: customer})
		if t.ID != 0 {
			if prev, err = b.st.Tickets.GetForUpdate(ctx, t.ID); err != nil {
				return err
			}
			v.Merge(booking.ValidateTicketChange(prev, t))
			t.IssuedAt = prev.IssuedAt
		}
		if err := v.Err(); err != nil {
			return err
		}

		booking.DeriveTicket(t, screen, now)
		if prev == nil {
			err = b.st.Tickets.Create(ctx, t)
		} else {
			err = b.st.Tickets.Update(ctx, t)
		}
		if err != nil {
			return err
		}

		var prevCustomer *uint64
		if prev != nil {
			prevCustomer = prev.CustomerID
		}
		if prevCustomer != nil && (t.CustomerID == nil || *prevCustomer != *t.CustomerID) {
			ev := ticketEvent(queue.TicketReleased, prev, now)
			ev.Label = prev.Label(theater, screen, nil)
			evs = append(evs, ev)
		}
		if t.CustomerID != nil && (prevCustomer == nil || *prevCustomer != *t.CustomerID) {
			ev := ticketEvent(queue.TicketIssued, t, now)
			ev.Label = t.Label(theater, screen, customer)
			evs = append(evs, ev)
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.publish(ctx, evs)
	return nil
}

func ticketEvent(typ string, t *model.Ticket, at time.Time) queue.Event {
	ev := queue.NewEvent(typ, t.ScreenID, at)
	ev.TicketID = t.ID
	ev.SeatNumber = t.SeatNumber
	ev.CustomerID = t.CustomerID
	ev.Price = t.Price.String()
	return ev
}
