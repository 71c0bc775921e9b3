package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/kassalytics/tracker/internal/betting"
	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/repository"
)

// DefaultEventQueryLimit bounds admin event-log queries when no limit
// is given.
const DefaultEventQueryLimit = 50

type AdminHandler struct {
	betting betting.Service
	events  repository.EventLog
}

func NewAdminHandler(bettingSvc betting.Service, events repository.EventLog) *AdminHandler {
	return &AdminHandler{
		betting: bettingSvc,
		events:  events,
	}
}

type ResolveGameRequest struct {
	GameID      string `json:"game_id" validate:"required"`
	WinningSide string `json:"winning_side" validate:"required,side"`
}

// HandleResolveGame settles a game by operator decision. This is the
// manual path for games flagged needs_manual_resolution, but it works
// from any unresolved state.
func (h *AdminHandler) HandleResolveGame(w http.ResponseWriter, r *http.Request) {
	var req ResolveGameRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve game"); err != nil {
		return
	}

	side := domain.Side(strings.ToLower(req.WinningSide))
	summary, err := h.betting.Resolve(r.Context(), req.GameID, side)
	if err != nil {
		respondServiceError(w, r, ErrMsgResolveFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

type AdjustBalanceRequest struct {
	BettorID string `json:"bettor_id" validate:"required"`
	Delta    int64  `json:"delta"`
}

// HandleAdjustBalance applies an operator balance correction.
func (h *AdminHandler) HandleAdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req AdjustBalanceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Adjust balance"); err != nil {
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, ErrMsgDeltaRequired)
		return
	}

	account, err := h.betting.AdminAdjust(r.Context(), req.BettorID, req.Delta)
	if err != nil {
		respondServiceError(w, r, ErrMsgAdjustFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// HandleGetEvents queries the engine event journal. Supports optional
// game_id, type, since (RFC 3339) and limit query parameters.
func (h *AdminHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetLimitParam(r, w, DefaultEventQueryLimit)
	if !ok {
		return
	}

	filter := repository.EventLogFilter{Limit: limit}
	if gameID := r.URL.Query().Get("game_id"); gameID != "" {
		filter.GameID = &gameID
	}
	if eventType := r.URL.Query().Get("type"); eventType != "" {
		filter.EventType = &eventType
	}
	if sinceRaw := r.URL.Query().Get("since"); sinceRaw != "" {
		since, err := time.Parse(time.RFC3339, sinceRaw)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}
		filter.Since = &since
	}

	entries, err := h.events.GetEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetEventsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: entries})
}
