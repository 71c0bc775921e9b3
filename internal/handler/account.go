package handler

import (
	"net/http"

	"github.com/kassalytics/tracker/internal/registry"
)

type AccountHandler struct {
	registry registry.Service
}

func NewAccountHandler(registrySvc registry.Service) *AccountHandler {
	return &AccountHandler{registry: registrySvc}
}

type TrackAccountRequest struct {
	GameName string `json:"game_name" validate:"required,max=16"`
	TagLine  string `json:"tag_line" validate:"required,max=5"`
}

func (h *AccountHandler) HandleTrackAccount(w http.ResponseWriter, r *http.Request) {
	var req TrackAccountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Track account"); err != nil {
		return
	}

	account, err := h.registry.TrackAccount(r.Context(), req.GameName, req.TagLine)
	if err != nil {
		respondServiceError(w, r, ErrMsgTrackAccountFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{
		Message: MsgAccountTrackedSuccess,
		Data:    account,
	})
}

type UntrackAccountRequest struct {
	GameName string `json:"game_name" validate:"required,max=16"`
	TagLine  string `json:"tag_line" validate:"required,max=5"`
}

func (h *AccountHandler) HandleUntrackAccount(w http.ResponseWriter, r *http.Request) {
	var req UntrackAccountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Untrack account"); err != nil {
		return
	}

	if err := h.registry.UntrackAccount(r.Context(), req.GameName, req.TagLine); err != nil {
		respondServiceError(w, r, ErrMsgUntrackAccountFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAccountUntrackedSuccess})
}

func (h *AccountHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.registry.ListTrackedAccounts(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgListAccountsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: accounts})
}
