package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Seat is a table position, 0-3, assigned in join order
type Seat int

// Team is one of the two partnerships. Seats 0/2 are team 0, seats 1/3 team 1.
type Team int

// NumSeats is the number of seats at the table
const NumSeats = 4

// NumTeams is the number of partnerships
const NumTeams = 2

// TeamOf returns the team a seat belongs to
func TeamOf(s Seat) Team {
	return Team(int(s) % 2)
}

// Opponent returns the other team
func (t Team) Opponent() Team {
	return 1 - t
}

// NextSeat returns the seat clockwise of s
func NextSeat(s Seat) Seat {
	return Seat((int(s) + 1) % NumSeats)
}

// ValidSeat reports whether s is a table position
func ValidSeat(s Seat) bool {
	return s >= 0 && s < NumSeats
}

// Player represents a connected participant
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data.
// Stored separately so the password hash never travels with the player record.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SeatAssignment binds a player to a table seat
type SeatAssignment struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
	Seat        Seat     `json:"seat"`
}
