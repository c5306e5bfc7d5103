package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeRoomFull           = "ROOM_FULL"
	CodeAlreadySeated      = "ALREADY_SEATED"
	CodeNotSeated          = "NOT_SEATED"
	CodeWrongPhase         = "WRONG_PHASE"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeInvalidBid         = "INVALID_BID"
	CodeInvalidEscalation  = "INVALID_ESCALATION"
	CodeCardNotHeld        = "CARD_NOT_HELD"
	CodeIllegalCard        = "ILLEGAL_CARD"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "All four seats are taken"}}
	case errors.Is(err, model.ErrAlreadySeated):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySeated, "Already seated at the table"}}
	case errors.Is(err, model.ErrNotSeated):
		return &httpError{http.StatusForbidden, APIError{CodeNotSeated, "Not seated at the table"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Action not valid in the current phase"}}
	case errors.Is(err, model.ErrOutOfTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidBid):
		return &httpError{http.StatusConflict, APIError{CodeInvalidBid, "Bid does not outrank the current bid"}}
	case errors.Is(err, model.ErrInvalidEscalation):
		return &httpError{http.StatusConflict, APIError{CodeInvalidEscalation, "Escalation not available to this seat"}}
	case errors.Is(err, model.ErrCardNotHeld):
		return &httpError{http.StatusConflict, APIError{CodeCardNotHeld, "Card is not in your hand"}}
	case errors.Is(err, model.ErrIllegalCard):
		return &httpError{http.StatusConflict, APIError{CodeIllegalCard, "Card is not a legal play"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
