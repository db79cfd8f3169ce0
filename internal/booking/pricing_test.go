package booking

import (
	"testing"
	"time"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

func TestPriceFor(t *testing.T) {
	if got := PriceFor(model.ScreenVIP); !got.Equal(model.NewMoney(45)) {
		t.Fatalf("expected VIP price 45, got %s", got)
	}
	if got := PriceFor(model.ScreenPublic); !got.Equal(model.NewMoney(10)) {
		t.Fatalf("expected Public price 10, got %s", got)
	}
}

func TestDeriveTicket(t *testing.T) {
	t.Parallel()

	first := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)
	screen := &model.Screen{Type: model.ScreenVIP}

	t.Run("caller price is overridden", func(t *testing.T) {
		tk := &model.Ticket{Price: model.NewMoney(1)}
		DeriveTicket(tk, screen, first)
		if !tk.Price.Equal(model.NewMoney(45)) {
			t.Fatalf("expected price 45, got %s", tk.Price)
		}
	})

	t.Run("issue then re-save then release", func(t *testing.T) {
		tk := &model.Ticket{CustomerID: u64(4)}
		DeriveTicket(tk, screen, first)
		if tk.IssuedAt == nil || !tk.IssuedAt.Equal(first) {
			t.Fatalf("expected issued at %v, got %v", first, tk.IssuedAt)
		}

		DeriveTicket(tk, screen, later)
		if !tk.IssuedAt.Equal(first) {
			t.Fatalf("expected original issuance %v kept, got %v", first, tk.IssuedAt)
		}

		tk.CustomerID = nil
		DeriveTicket(tk, screen, later)
		if tk.IssuedAt != nil {
			t.Fatalf("expected issuance cleared, got %v", tk.IssuedAt)
		}
	})
}
