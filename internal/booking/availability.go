package booking

import "github.com/iliyamo/cinema-backoffice/internal/model"

// AvailableSeats counts the tickets no customer holds.
func AvailableSeats(tickets []model.Ticket) int {
	n := 0
	for i := range tickets {
		if tickets[i].Available() {
			n++
		}
	}
	return n
}
