package clock

import (
	"testing"
	"time"
)

func TestAt(t *testing.T) {
	loc := time.FixedZone("BST", 3600)
	c := At(time.Date(2025, 3, 10, 19, 0, 0, 0, loc))
	want := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	if got := c.Now(); !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !c.Now().Equal(c.Now()) {
		t.Fatalf("expected a fixed instant")
	}
}

func TestSystemIsUTC(t *testing.T) {
	if loc := System().Now().Location(); loc != time.UTC {
		t.Fatalf("expected UTC, got %v", loc)
	}
}
