package booking

import (
	"reflect"
	"testing"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

func seatRun(n int) []model.Ticket {
	out := make([]model.Ticket, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Ticket{SeatNumber: i})
	}
	return out
}

func TestTransitionOf(t *testing.T) {
	tests := []struct {
		prev, next *uint64
		want       Transition
	}{
		{nil, nil, StayUnassigned},
		{nil, u64(1), Assign},
		{u64(1), nil, Unassign},
		{u64(1), u64(1), Keep},
		{u64(1), u64(2), Keep},
	}
	for _, tc := range tests {
		if got := TransitionOf(tc.prev, tc.next); got != tc.want {
			t.Fatalf("TransitionOf(%v, %v) = %s, want %s", tc.prev, tc.next, got, tc.want)
		}
	}
}

func TestPlanTickets(t *testing.T) {
	t.Parallel()

	t.Run("assign provisions the whole run", func(t *testing.T) {
		plan, v := PlanTickets(Assign, 10, nil)
		if !v.Empty() {
			t.Fatalf("unexpected violations %v", v)
		}
		if len(plan.Create) != 10 || plan.Create[0] != 1 || plan.Create[9] != 10 {
			t.Fatalf("expected seats 1..10, got %v", plan.Create)
		}
		if plan.ClearAll || len(plan.Remove) != 0 {
			t.Fatalf("unexpected plan %+v", plan)
		}
	})

	t.Run("keep with full run is a no-op", func(t *testing.T) {
		plan, v := PlanTickets(Keep, 10, seatRun(10))
		if !v.Empty() || !plan.Empty() {
			t.Fatalf("expected empty plan, got %+v %v", plan, v)
		}
	})

	t.Run("unassign clears sold and unsold", func(t *testing.T) {
		existing := seatRun(10)
		existing[2].CustomerID = u64(5)
		plan, _ := PlanTickets(Unassign, 10, existing)
		if !plan.ClearAll {
			t.Fatalf("expected clear all, got %+v", plan)
		}
	})

	t.Run("unassign with no tickets is a no-op", func(t *testing.T) {
		plan, _ := PlanTickets(Unassign, 10, nil)
		if !plan.Empty() {
			t.Fatalf("expected empty plan, got %+v", plan)
		}
	})

	t.Run("growing adds the new seats", func(t *testing.T) {
		plan, _ := PlanTickets(Keep, 12, seatRun(10))
		if !reflect.DeepEqual(plan.Create, []int{11, 12}) {
			t.Fatalf("expected seats 11,12, got %v", plan.Create)
		}
	})

	t.Run("shrinking removes unsold seats", func(t *testing.T) {
		plan, v := PlanTickets(Keep, 10, seatRun(12))
		if !v.Empty() {
			t.Fatalf("unexpected violations %v", v)
		}
		if !reflect.DeepEqual(plan.Remove, []int{11, 12}) {
			t.Fatalf("expected seats 11,12 removed, got %v", plan.Remove)
		}
	})

	t.Run("shrinking over a sold seat is rejected", func(t *testing.T) {
		existing := seatRun(12)
		existing[11].CustomerID = u64(1)
		plan, v := PlanTickets(Keep, 10, existing)
		if len(v["total_seats"]) != 1 {
			t.Fatalf("expected total_seats violation, got %v", v)
		}
		if !plan.Empty() {
			t.Fatalf("expected no plan on violation, got %+v", plan)
		}
	})
}

func TestNewTickets(t *testing.T) {
	screen := &model.Screen{ID: 7, Type: model.ScreenVIP}
	tickets := NewTickets(screen, []int{1, 2, 3})
	if len(tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(tickets))
	}
	for i, tk := range tickets {
		if tk.ScreenID != 7 || tk.SeatNumber != i+1 || tk.CustomerID != nil || tk.IssuedAt != nil {
			t.Fatalf("unexpected ticket %+v", tk)
		}
		if !tk.Price.Equal(model.NewMoney(45)) {
			t.Fatalf("expected price 45, got %s", tk.Price)
		}
	}
	if AvailableSeats(tickets) != 3 {
		t.Fatalf("expected 3 available seats")
	}
	tickets[0].CustomerID = u64(2)
	if AvailableSeats(tickets) != 2 {
		t.Fatalf("expected 2 available seats")
	}
}
