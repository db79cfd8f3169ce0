package booking

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

func u64(v uint64) *uint64 { return &v }

func TestValidateMovie(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("start after end", func(t *testing.T) {
		v := ValidateMovie(&model.Movie{Name: "Heat", StartsAt: start, EndsAt: end}, nil)
		got := v["starts_at"]
		if len(got) != 1 || got[0] != "Start date is after end date." {
			t.Fatalf("expected start/end violation, got %v", v)
		}
	})

	t.Run("equal instants are allowed", func(t *testing.T) {
		v := ValidateMovie(&model.Movie{Name: "Heat", StartsAt: start, EndsAt: start}, &model.Category{IsActive: true})
		if !v.Empty() {
			t.Fatalf("expected no violations, got %v", v)
		}
	})

	t.Run("reports every violation together", func(t *testing.T) {
		v := ValidateMovie(&model.Movie{StartsAt: start, EndsAt: end}, &model.Category{IsActive: false})
		for _, field := range []string{"name", "starts_at", "category"} {
			if len(v[field]) == 0 {
				t.Fatalf("expected violation on %s, got %v", field, v)
			}
		}
		if v["category"][0] != "The category is not active." {
			t.Fatalf("unexpected category message %q", v["category"][0])
		}
	})

	t.Run("unresolved category is skipped", func(t *testing.T) {
		v := ValidateMovie(&model.Movie{Name: "Heat", StartsAt: end, EndsAt: start}, nil)
		if !v.Empty() {
			t.Fatalf("expected no violations, got %v", v)
		}
	})
}

func TestValidateScreen(t *testing.T) {
	t.Parallel()

	base := model.Screen{Name: "Screen 1", Type: model.ScreenVIP, TotalSeats: 10, IsActive: true}

	tests := []struct {
		name    string
		mutate  func(s *model.Screen)
		theater *model.Theater
		movie   *model.Movie
		fields  []string
	}{
		{name: "valid", theater: &model.Theater{IsActive: true}, movie: &model.Movie{IsActive: true}},
		{name: "inactive theater", theater: &model.Theater{IsActive: false}, fields: []string{"theater"}},
		{name: "inactive movie", movie: &model.Movie{IsActive: false}, fields: []string{"movie"}},
		{name: "too few seats", mutate: func(s *model.Screen) { s.TotalSeats = 9 }, fields: []string{"total_seats"}},
		{name: "too many seats", mutate: func(s *model.Screen) { s.TotalSeats = 101 }, fields: []string{"total_seats"}},
		{name: "unknown type", mutate: func(s *model.Screen) { s.Type = 7 }, fields: []string{"type"}},
		{
			name:    "everything at once",
			mutate:  func(s *model.Screen) { s.Name = " " },
			theater: &model.Theater{IsActive: false},
			movie:   &model.Movie{IsActive: false},
			fields:  []string{"name", "theater", "movie"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s := base
			if tc.mutate != nil {
				tc.mutate(&s)
			}
			v := ValidateScreen(&s, tc.theater, tc.movie)
			if len(v) != len(tc.fields) {
				t.Fatalf("expected violations on %v, got %v", tc.fields, v)
			}
			for _, f := range tc.fields {
				if len(v[f]) == 0 {
					t.Fatalf("expected violation on %s, got %v", f, v)
				}
			}
		})
	}
}

func TestValidateTicket(t *testing.T) {
	t.Parallel()

	screen := &model.Screen{ID: 1, MovieID: u64(3), TotalSeats: 10, IsActive: true}
	theater := &model.Theater{IsActive: true}

	t.Run("seat beyond total", func(t *testing.T) {
		v := ValidateTicket(&model.Ticket{SeatNumber: 11}, TicketRefs{Screen: screen, Theater: theater})
		want := `The seat number "11" is higher than the total number of seats "10".`
		if len(v["seat_number"]) != 1 || v["seat_number"][0] != want {
			t.Fatalf("expected %q, got %v", want, v)
		}
		var verr *ValidationError
		if !errors.As(v.Err(), &verr) {
			t.Fatalf("expected *ValidationError, got %T", v.Err())
		}
	})

	t.Run("last seat is valid", func(t *testing.T) {
		v := ValidateTicket(&model.Ticket{SeatNumber: 10}, TicketRefs{Screen: screen, Theater: theater})
		if v.Err() != nil {
			t.Fatalf("expected no error, got %v", v.Err())
		}
	})

	t.Run("whole chain", func(t *testing.T) {
		bare := &model.Screen{TotalSeats: 10, IsActive: false}
		v := ValidateTicket(
			&model.Ticket{SeatNumber: 0},
			TicketRefs{Screen: bare, Theater: &model.Theater{IsActive: false}, Customer: &model.Customer{IsActive: false}},
		)
		if len(v[NonField]) != 3 {
			t.Fatalf("expected 3 non-field violations, got %v", v[NonField])
		}
		if len(v["seat_number"]) != 1 || len(v["customer"]) != 1 {
			t.Fatalf("expected seat and customer violations, got %v", v)
		}
	})

	t.Run("no screen yet", func(t *testing.T) {
		v := ValidateTicket(&model.Ticket{SeatNumber: 500}, TicketRefs{})
		if !v.Empty() {
			t.Fatalf("expected no violations, got %v", v)
		}
	})
}

func TestValidateCustomer(t *testing.T) {
	t.Parallel()

	empty := ""
	v := ValidateCustomer(&model.Customer{Name: "", Email: "not-an-email", Phone: &empty})
	for _, f := range []string{"name", "email", "phone"} {
		if len(v[f]) == 0 {
			t.Fatalf("expected violation on %s, got %v", f, v)
		}
	}
	if v := ValidateCustomer(&model.Customer{Name: "Ann", Email: "ann@example.com"}); !v.Empty() {
		t.Fatalf("expected valid customer, got %v", v)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	var v Violations
	v.Add("seat_number", "too high")
	v.Add(NonField, "screen inactive")
	msg := v.Err().Error()
	if !strings.Contains(msg, "non_field: screen inactive") || !strings.Contains(msg, "seat_number: too high") {
		t.Fatalf("unexpected message %q", msg)
	}
	if strings.Index(msg, "non_field") > strings.Index(msg, "seat_number") {
		t.Fatalf("expected fields sorted, got %q", msg)
	}
}

func TestValidateTicketChange(t *testing.T) {
	t.Parallel()

	prev := &model.Ticket{ScreenID: 1, SeatNumber: 4}
	if v := ValidateTicketChange(prev, &model.Ticket{ScreenID: 1, SeatNumber: 4, CustomerID: u64(9)}); !v.Empty() {
		t.Fatalf("expected customer change to pass, got %v", v)
	}
	v := ValidateTicketChange(prev, &model.Ticket{ScreenID: 2, SeatNumber: 5})
	if len(v["screen"]) != 1 || len(v["seat_number"]) != 1 {
		t.Fatalf("expected screen and seat violations, got %v", v)
	}
}
