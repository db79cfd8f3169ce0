// Package booking holds the consistency and allocation rules of the back
// office: the validation chain, screen occupancy, ticket provisioning,
// pricing and availability.  Everything here is pure; the service layer
// loads the related entities, passes the current instant in and persists
// the outcome.
package booking

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// NonField is the key used for violations that concern the entity as a
// whole rather than a single field.
const NonField = "non_field"

// Violations maps a field name (or NonField) to every message raised
// against it.  The zero value is ready to use.
type Violations map[string][]string

// Add records msg against field.
func (v *Violations) Add(field, msg string) {
	if *v == nil {
		*v = make(Violations)
	}
	(*v)[field] = append((*v)[field], msg)
}

// Merge copies every violation of o into v.
func (v *Violations) Merge(o Violations) {
	for field, msgs := range o {
		for _, m := range msgs {
			v.Add(field, m)
		}
	}
}

// Empty reports whether no violation was recorded.
func (v Violations) Empty() bool { return len(v) == 0 }

// Err returns nil when v is empty and a *ValidationError carrying v
// otherwise.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// ValidationError is returned when a candidate entity is inconsistent
// with itself or with the entities it references.  It carries every
// violation found so the caller can present them in one round trip.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Violations[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateTheater checks the theater's own fields.
func ValidateTheater(t *model.Theater) Violations {
	var v Violations
	if strings.TrimSpace(t.Name) == "" {
		v.Add("name", "This field is required.")
	}
	return v
}

// ValidateCategory checks the category's own fields.
func ValidateCategory(c *model.Category) Violations {
	var v Violations
	if strings.TrimSpace(c.Name) == "" {
		v.Add("name", "This field is required.")
	}
	return v
}

// ValidateMovie checks a movie against its category.  A nil category
// means the reference is not resolved yet and is skipped.
func ValidateMovie(m *model.Movie, category *model.Category) Violations {
	var v Violations
	if strings.TrimSpace(m.Name) == "" {
		v.Add("name", "This field is required.")
	}
	if m.StartsAt.IsZero() {
		v.Add("starts_at", "This field is required.")
	}
	if m.EndsAt.IsZero() {
		v.Add("ends_at", "This field is required.")
	}
	if !m.StartsAt.IsZero() && !m.EndsAt.IsZero() && m.StartsAt.After(m.EndsAt) {
		v.Add("starts_at", "Start date is after end date.")
	}
	if category != nil && !category.IsActive {
		v.Add("category", "The category is not active.")
	}
	return v
}

// ValidateScreen checks a screen against its theater and movie.  Nil
// references are skipped.
func ValidateScreen(s *model.Screen, theater *model.Theater, movie *model.Movie) Violations {
	var v Violations
	if strings.TrimSpace(s.Name) == "" {
		v.Add("name", "This field is required.")
	}
	if !s.Type.Valid() {
		v.Add("type", fmt.Sprintf("Value %d is not a valid choice.", uint8(s.Type)))
	}
	if s.TotalSeats < model.MinSeats {
		v.Add("total_seats", fmt.Sprintf("Ensure this value is greater than or equal to %d.", model.MinSeats))
	}
	if s.TotalSeats > model.MaxSeats {
		v.Add("total_seats", fmt.Sprintf("Ensure this value is less than or equal to %d.", model.MaxSeats))
	}
	if theater != nil && !theater.IsActive {
		v.Add("theater", "The theater is not active.")
	}
	if movie != nil && !movie.IsActive {
		v.Add("movie", "The movie is not active.")
	}
	return v
}

// ValidateCustomer checks the customer's own fields.
func ValidateCustomer(c *model.Customer) Violations {
	var v Violations
	if strings.TrimSpace(c.Name) == "" {
		v.Add("name", "This field is required.")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		v.Add("email", "This field is required.")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		v.Add("email", "Enter a valid email address.")
	}
	if c.Phone != nil && strings.TrimSpace(*c.Phone) == "" {
		v.Add("phone", "Enter a valid phone number.")
	}
	return v
}

// TicketRefs carries the entities a ticket depends on.  Any of them may
// be nil while the ticket is only partially filled.
type TicketRefs struct {
	Screen   *model.Screen
	Theater  *model.Theater // theater of Screen
	Customer *model.Customer
}

// ValidateTicket runs the issuing chain: the screen's theater must be
// active, the screen must show a movie and be active, the seat must
// exist on the screen and the customer, if any, must be active.
func ValidateTicket(t *model.Ticket, refs TicketRefs) Violations {
	var v Violations
	if t.SeatNumber < 1 {
		v.Add("seat_number", "Ensure this value is greater than or equal to 1.")
	}
	if s := refs.Screen; s != nil {
		if refs.Theater != nil && !refs.Theater.IsActive {
			v.Add(NonField, "Can not issue a ticket for inactive theater.")
		}
		if s.MovieID == nil {
			v.Add(NonField, "Can not issue a ticket without adding a movie to the screen first.")
		}
		if !s.IsActive {
			v.Add(NonField, "Can not issue a ticket for inactive screen.")
		}
		if t.SeatNumber > s.TotalSeats {
			v.Add("seat_number", fmt.Sprintf("The seat number %q is higher than the total number of seats %q.",
				fmt.Sprint(t.SeatNumber), fmt.Sprint(s.TotalSeats)))
		}
	}
	if refs.Customer != nil && !refs.Customer.IsActive {
		v.Add("customer", "The customer is not active.")
	}
	return v
}

// ValidateTicketChange checks an update against the stored ticket: a
// provisioned seat stays on its screen under its number.
func ValidateTicketChange(prev, next *model.Ticket) Violations {
	var v Violations
	if prev.ScreenID != next.ScreenID {
		v.Add("screen", "A ticket can not be moved to another screen.")
	}
	if prev.SeatNumber != next.SeatNumber {
		v.Add("seat_number", "The seat number of an existing ticket can not be changed.")
	}
	return v
}
