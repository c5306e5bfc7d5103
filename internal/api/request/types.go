package request

import "github.com/vkaradzhov/belot-server/internal/model"

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BidRequest is the request body for an auction action. Bid is a ladder
// rung or "pass".
type BidRequest struct {
	Bid model.Bid `json:"bid"`
}

// PlayRequest is the request body for playing a card
type PlayRequest struct {
	Card model.Card `json:"card"`
}
