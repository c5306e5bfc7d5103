package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vkaradzhov/belot-server/internal/api/middleware"
	"github.com/vkaradzhov/belot-server/internal/api/request"
	"github.com/vkaradzhov/belot-server/internal/api/response"
	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/services/session"
)

// TableHandler handles table and gameplay endpoints
type TableHandler struct {
	controller *session.Controller
}

// NewTableHandler creates a new table handler
func NewTableHandler(controller *session.Controller) *TableHandler {
	return &TableHandler{
		controller: controller,
	}
}

// Join handles POST /api/v1/table/join
func (h *TableHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	seat, err := h.controller.Join(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	sess, err := h.controller.State(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResponse{Seat: seat, Phase: sess.Phase})
}

// Leave handles POST /api/v1/table/leave
func (h *TableHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.controller.Leave(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Get handles GET /api/v1/table
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	sess, err := h.controller.State(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableStateFromSession(sess, player.ID))
}

// GetHand handles GET /api/v1/table/hand
func (h *TableHandler) GetHand(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	cards, err := h.controller.HandOf(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HandResponse{Cards: cards})
}

// GetHistory handles GET /api/v1/table/hands/history
func (h *TableHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	hands, err := h.controller.History(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryResponse{Hands: hands})
}

// Bid handles POST /api/v1/table/bid
func (h *TableHandler) Bid(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Bid != model.BidPass && !model.ValidBid(req.Bid) {
		WriteError(w, NewInvalidRequestError("bid must be a ladder rung or pass"))
		return
	}

	if err := h.controller.SubmitBid(r.Context(), player.ID, req.Bid); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Contra handles POST /api/v1/table/contra
func (h *TableHandler) Contra(w http.ResponseWriter, r *http.Request) {
	h.doublingAction(w, r, h.controller.CallContra)
}

// ContraPass handles POST /api/v1/table/contra/pass
func (h *TableHandler) ContraPass(w http.ResponseWriter, r *http.Request) {
	h.doublingAction(w, r, h.controller.PassContra)
}

// Rekontra handles POST /api/v1/table/rekontra
func (h *TableHandler) Rekontra(w http.ResponseWriter, r *http.Request) {
	h.doublingAction(w, r, h.controller.CallRekontra)
}

// RekontraPass handles POST /api/v1/table/rekontra/pass
func (h *TableHandler) RekontraPass(w http.ResponseWriter, r *http.Request) {
	h.doublingAction(w, r, h.controller.PassRekontra)
}

// Play handles POST /api/v1/table/play
func (h *TableHandler) Play(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if !model.ValidSuit(req.Card.Suit) || !model.ValidRank(req.Card.Rank) {
		WriteError(w, NewInvalidRequestError("card must have a valid suit and rank"))
		return
	}

	if err := h.controller.PlayCard(r.Context(), player.ID, req.Card); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *TableHandler) doublingAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, playerID model.PlayerID) error,
) {
	player := middleware.MustGetPlayer(r.Context())

	if err := action(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
