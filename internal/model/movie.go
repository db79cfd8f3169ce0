package model

import "time"

// Movie is a film scheduled between StartsAt and EndsAt.  IsActive is
// derived on every save (a movie stays active until its end instant
// passes) and is never taken from the caller.  CreatedBy records the
// staff user that last saved the movie.
//
// Fields:
//  ID         – primary key identifier.
//  CategoryID – category of the movie (restrict on delete).
//  Name       – title.
//  StartsAt   – first instant of the showing window.
//  EndsAt     – last instant of the showing window (inclusive).
//  IsActive   – derived activity flag.
//  CreatedBy  – users.id of the staff user (restrict on delete).
type Movie struct {
	ID         uint64    `json:"id"`          // movies.id
	CategoryID uint64    `json:"category_id"` // movies.category_id
	Name       string    `json:"name"`        // movies.name
	StartsAt   time.Time `json:"starts_at"`   // movies.starts_at
	EndsAt     time.Time `json:"ends_at"`     // movies.ends_at
	IsActive   bool      `json:"is_active"`   // movies.is_active (derived)
	CreatedBy  uint64    `json:"created_by"`  // movies.created_by
	CreatedAt  time.Time `json:"created_at"`  // movies.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // movies.updated_at
}
