package service

import (
	"context"

	"github.com/iliyamo/cinema-backoffice/internal/booking"
	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// SaveCustomer validates c and records actorID as its creator.
func (b *Backoffice) SaveCustomer(ctx context.Context, actorID uint64, c *model.Customer) error {
	if err := booking.ValidateCustomer(c).Err(); err != nil {
		return err
	}
	c.CreatedBy = actorID
	if c.ID == 0 {
		return b.st.Customers.Create(ctx, c)
	}
	return b.st.Customers.Update(ctx, c)
}

// DeleteCustomer fails with model.ErrIntegrityConflict while the customer
// holds tickets.
func (b *Backoffice) DeleteCustomer(ctx context.Context, id uint64) error {
	return b.st.Customers.Delete(ctx, id)
}
