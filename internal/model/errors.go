package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Seating errors
	ErrRoomFull      = errors.New("all four seats are taken")
	ErrAlreadySeated = errors.New("player is already seated")
	ErrNotSeated     = errors.New("player is not seated at the table")

	// Phase/turn errors
	ErrWrongPhase = errors.New("action not valid in the current phase")
	ErrOutOfTurn  = errors.New("not this seat's turn")

	// Auction errors
	ErrInvalidBid = errors.New("bid does not outrank the current bid")

	// Doubling errors
	ErrInvalidEscalation = errors.New("escalation not available to this seat")

	// Trick-play errors
	ErrIllegalCard = errors.New("card is not a legal play")
	ErrCardNotHeld = errors.New("card is not in hand")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
