package handler

import (
	"net/http"
	"strings"

	"github.com/kassalytics/tracker/internal/betting"
	"github.com/kassalytics/tracker/internal/domain"
)

// Default limits for paged betting queries
const (
	DefaultLeaderboardLimit = 10
	DefaultHistoryLimit     = 20
)

type BettingHandler struct {
	service betting.Service
}

func NewBettingHandler(service betting.Service) *BettingHandler {
	return &BettingHandler{service: service}
}

type PlaceBetRequest struct {
	GameID   string `json:"game_id" validate:"required"`
	BettorID string `json:"bettor_id" validate:"required"`
	Side     string `json:"side" validate:"required,side"`
	Stake    int64  `json:"stake" validate:"required,gt=0"`
}

func (h *BettingHandler) HandlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req PlaceBetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place bet"); err != nil {
		return
	}

	side := domain.Side(strings.ToLower(req.Side))
	wager, err := h.service.PlaceBet(r.Context(), req.GameID, req.BettorID, side, req.Stake)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceBetFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, wager)
}

func (h *BettingHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	bettorID, ok := GetQueryParam(r, w, "bettor_id")
	if !ok {
		return
	}

	account, err := h.service.GetBalance(r.Context(), bettorID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetBalanceFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

func (h *BettingHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetLimitParam(r, w, DefaultLeaderboardLimit)
	if !ok {
		return
	}

	accounts, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgLeaderboardFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: accounts})
}

func (h *BettingHandler) HandleWagerHistory(w http.ResponseWriter, r *http.Request) {
	bettorID, ok := GetQueryParam(r, w, "bettor_id")
	if !ok {
		return
	}
	limit, ok := GetLimitParam(r, w, DefaultHistoryLimit)
	if !ok {
		return
	}

	wagers, err := h.service.WagerHistory(r.Context(), bettorID, limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgWagerHistoryFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: wagers})
}

func (h *BettingHandler) HandleListGameWagers(w http.ResponseWriter, r *http.Request) {
	gameID, ok := GetQueryParam(r, w, "game_id")
	if !ok {
		return
	}

	wagers, err := h.service.ListGameWagers(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListWagersFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: wagers})
}
