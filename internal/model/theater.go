package model

import "time"

// Theater is a cinema venue.  A theater owns zero or more screens;
// deleting a theater removes its screens (and their tickets) with it.
// This struct corresponds to a row in the `theaters` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique name of the theater.
//  Location  – free-form address or area.
//  IsActive  – inactive theaters cannot host bookings.
//  CreatedAt – timestamp when the theater was created.
//  UpdatedAt – timestamp of last update.
type Theater struct {
	ID        uint64    `json:"id"`         // theaters.id
	Name      string    `json:"name"`       // theaters.name
	Location  string    `json:"location"`   // theaters.location
	IsActive  bool      `json:"is_active"`  // theaters.is_active
	CreatedAt time.Time `json:"created_at"` // theaters.created_at
	UpdatedAt time.Time `json:"updated_at"` // theaters.updated_at
}

// Category groups movies (genre).  Movies may only be saved against an
// active category.
type Category struct {
	ID       uint64 `json:"id"`        // categories.id
	Name     string `json:"name"`      // categories.name
	IsActive bool   `json:"is_active"` // categories.is_active
}
