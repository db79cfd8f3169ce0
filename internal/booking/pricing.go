package booking

import (
	"time"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

var (
	vipPrice    = model.NewMoney(45)
	publicPrice = model.NewMoney(10)
)

// PriceFor maps a screen type to the ticket price in model.Currency.
// Unknown types are priced as Public.
func PriceFor(t model.ScreenType) model.Money {
	if t == model.ScreenVIP {
		return vipPrice
	}
	return publicPrice
}

// StampIssuance keeps IssuedAt consistent with the customer reference:
// releasing a ticket clears it, issuing an unissued ticket stamps now and
// re-saving an issued ticket keeps the original instant.
func StampIssuance(t *model.Ticket, now time.Time) {
	if t.CustomerID == nil {
		t.IssuedAt = nil
		return
	}
	if t.IssuedAt == nil {
		stamp := now
		t.IssuedAt = &stamp
	}
}

// DeriveTicket overwrites the derived fields of t from its screen: the
// price always follows the screen's current type regardless of what the
// caller supplied.
func DeriveTicket(t *model.Ticket, screen *model.Screen, now time.Time) {
	t.Price = PriceFor(screen.Type)
	StampIssuance(t, now)
}
