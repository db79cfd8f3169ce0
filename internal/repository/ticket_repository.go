package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

const ticketColumns = `id, screen_id, customer_id, seat_number, price, issued_at, created_at, updated_at`

// TicketRepo persists tickets.  The (screen_id, seat_number) unique key
// rejects a second row for the same seat, which makes a racing bulk
// insert fail as model.ErrIntegrityConflict instead of duplicating seats.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

func scanTicket(row interface{ Scan(...any) error }, t *model.Ticket) error {
	var (
		customerID sql.NullInt64
		issuedAt   sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.ScreenID, &customerID, &t.SeatNumber, &t.Price, &issuedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}
	t.CustomerID = nil
	if customerID.Valid {
		id := uint64(customerID.Int64)
		t.CustomerID = &id
	}
	t.IssuedAt = nil
	if issuedAt.Valid {
		at := issuedAt.Time
		t.IssuedAt = &at
	}
	return nil
}

// Create inserts a single ticket.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		`INSERT INTO tickets (screen_id, customer_id, seat_number, price, issued_at) VALUES (?, ?, ?, ?, ?)`,
		t.ScreenID, t.CustomerID, t.SeatNumber, t.Price, t.IssuedAt)
	if err != nil {
		return translate(err, "ticket")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return translate(scanTicket(q.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, t.ID), t), "ticket")
}

// CreateBulk inserts all tickets in one statement so provisioning is
// all-or-nothing even outside a transaction.  IDs are not populated.
func (r *TicketRepo) CreateBulk(ctx context.Context, tickets []model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(`INSERT INTO tickets (screen_id, customer_id, seat_number, price, issued_at) VALUES `)
	args := make([]any, 0, len(tickets)*5)
	for i, t := range tickets {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, t.ScreenID, t.CustomerID, t.SeatNumber, t.Price, t.IssuedAt)
	}
	_, err := conn(ctx, r.db).ExecContext(ctx, b.String(), args...)
	return translate(err, "ticket")
}

func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	var t model.Ticket
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	if err := scanTicket(row, &t); err != nil {
		return nil, translate(err, "ticket")
	}
	return &t, nil
}

// GetForUpdate reads a ticket and locks it inside a transaction.
func (r *TicketRepo) GetForUpdate(ctx context.Context, id uint64) (*model.Ticket, error) {
	var t model.Ticket
	row := conn(ctx, r.db).QueryRowContext(ctx, forUpdate(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`), id)
	if err := scanTicket(row, &t); err != nil {
		return nil, translate(err, "ticket")
	}
	return &t, nil
}

// Update writes the ticket's screen, customer, seat and derived fields.
func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE tickets SET screen_id = ?, customer_id = ?, seat_number = ?, price = ?, issued_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		t.ScreenID, t.CustomerID, t.SeatNumber, t.Price, t.IssuedAt, t.ID)
	if err != nil {
		return translate(err, "ticket")
	}
	return affected(res, "ticket")
}

// ListByScreen returns a screen's tickets ordered by seat number.
func (r *TicketRepo) ListByScreen(ctx context.Context, screenID uint64) ([]model.Ticket, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE screen_id = ? ORDER BY seat_number`, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteByScreen removes every ticket of a screen and reports how many
// went.  Deleting nothing is not an error.
func (r *TicketRepo) DeleteByScreen(ctx context.Context, screenID uint64) (int64, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM tickets WHERE screen_id = ?`, screenID)
	if err != nil {
		return 0, translate(err, "ticket")
	}
	return res.RowsAffected()
}

// DeleteAvailableSeats removes the listed seats of a screen that no
// customer holds.
func (r *TicketRepo) DeleteAvailableSeats(ctx context.Context, screenID uint64, seats []int) error {
	if len(seats) == 0 {
		return nil
	}
	args := make([]any, 0, len(seats)+1)
	args = append(args, screenID)
	for _, s := range seats {
		args = append(args, s)
	}
	q := `DELETE FROM tickets WHERE screen_id = ? AND customer_id IS NULL AND seat_number IN (?` +
		strings.Repeat(", ?", len(seats)-1) + `)`
	_, err := conn(ctx, r.db).ExecContext(ctx, q, args...)
	return translate(err, "ticket")
}

// CountAvailable returns the number of unsold tickets per screen for the
// given screens.  Screens without tickets are absent from the map.
func (r *TicketRepo) CountAvailable(ctx context.Context, screenIDs []uint64) (map[uint64]int, error) {
	out := make(map[uint64]int, len(screenIDs))
	if len(screenIDs) == 0 {
		return out, nil
	}
	args := make([]any, 0, len(screenIDs))
	for _, id := range screenIDs {
		args = append(args, id)
	}
	q := `SELECT screen_id, COUNT(*) FROM tickets WHERE customer_id IS NULL AND screen_id IN (?` +
		strings.Repeat(", ?", len(screenIDs)-1) + `) GROUP BY screen_id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id uint64
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}
