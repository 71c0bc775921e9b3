package handler

import (
	"net/http"

	"github.com/kassalytics/tracker/internal/registry"
)

type GameHandler struct {
	registry registry.Service
}

func NewGameHandler(registrySvc registry.Service) *GameHandler {
	return &GameHandler{registry: registrySvc}
}

// HandleListGames returns all games that have not been resolved yet,
// oldest first.
func (h *GameHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.registry.ListUnresolvedGames(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgListGamesFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: games})
}

func (h *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := GetQueryParam(r, w, "game_id")
	if !ok {
		return
	}

	game, err := h.registry.GetGame(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetGameFailed, err)
		return
	}
	if game == nil {
		http.Error(w, ErrMsgGameNotFoundHTTP, http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, game)
}
