package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	dsn := DSN("app", "secret", "db.local", "3306", "cinema")
	for _, want := range []string{"app:secret@tcp(db.local:3306)/cinema", "parseTime=true", "clientFoundRows=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("expected %q in dsn %q", want, dsn)
		}
	}
}

func TestStatements(t *testing.T) {
	stmts := Statements()
	if len(stmts) != 7 {
		t.Fatalf("expected 7 schema statements, got %d", len(stmts))
	}
	var tickets string
	for _, s := range stmts {
		if !strings.HasPrefix(s, "CREATE TABLE IF NOT EXISTS") {
			t.Fatalf("unexpected statement %q", s[:40])
		}
		if strings.Contains(s, "EXISTS tickets") {
			tickets = s
		}
	}
	if !strings.Contains(tickets, "UNIQUE KEY uq_tickets_screen_seat (screen_id, seat_number)") {
		t.Fatalf("expected unique seat key in tickets table")
	}
}
