package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

// HTTPServer exposes the bot's internal notification endpoints. The
// engine posts lifecycle updates here so the bot can announce them in
// the configured channel.
type HTTPServer struct {
	server *http.Server
	bot    *Bot
}

// NewHTTPServer creates the bot's internal HTTP server
func NewHTTPServer(port string, bot *Bot) *HTTPServer {
	mux := http.NewServeMux()

	srv := &HTTPServer{
		server: &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		},
		bot: bot,
	}

	mux.HandleFunc("/notify/game-opened", srv.handleGameOpened)
	mux.HandleFunc("/notify/betting-closed", srv.handleBettingClosed)
	mux.HandleFunc("/notify/game-resolved", srv.handleGameResolved)
	mux.HandleFunc("/notify/needs-manual", srv.handleNeedsManual)
	mux.HandleFunc("/health", srv.HandleHealth)
	return srv
}

// Start starts the HTTP server
func (s *HTTPServer) Start() {
	go func() {
		slog.Info("Starting Discord internal HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Discord internal HTTP server failed", "error", err)
		}
	}()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Discord internal HTTP server shutdown failed", "error", err)
	}
}

func decodeNotifyRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// handleGameOpened posts the betting announcement and returns the
// message id so the engine can target later edits at it.
func (s *HTTPServer) handleGameOpened(w http.ResponseWriter, r *http.Request) {
	var req GameOpenedRequest
	if !decodeNotifyRequest(w, r, &req) {
		return
	}

	ref, err := s.bot.SendGameMessage(buildGameOpenedEmbed(&req.Game))
	if err != nil {
		slog.Error("Failed to announce game", "error", err, "game_id", req.Game.GameID)
		http.Error(w, "Failed to send to Discord", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GameOpenedResponse{Ref: ref})
}

func (s *HTTPServer) handleBettingClosed(w http.ResponseWriter, r *http.Request) {
	var req BettingClosedRequest
	if !decodeNotifyRequest(w, r, &req) {
		return
	}

	embed := buildBettingClosedEmbed(&req.Game)
	if err := s.editOrSend(req.Game.NotificationRef, embed); err != nil {
		slog.Error("Failed to announce betting close", "error", err, "game_id", req.Game.GameID)
		http.Error(w, "Failed to send to Discord", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleGameResolved(w http.ResponseWriter, r *http.Request) {
	var req GameResolvedRequest
	if !decodeNotifyRequest(w, r, &req) {
		return
	}

	// The settlement gets its own message; the original announcement is
	// updated in place so stale odds don't invite late bets.
	if req.Game.NotificationRef != "" {
		if err := s.bot.EditGameMessage(req.Game.NotificationRef, buildBettingClosedEmbed(&req.Game)); err != nil {
			slog.Warn("Failed to update original announcement", "error", err, "game_id", req.Game.GameID)
		}
	}
	if _, err := s.bot.SendGameMessage(buildGameResolvedEmbed(&req.Game, &req.Summary)); err != nil {
		slog.Error("Failed to announce resolution", "error", err, "game_id", req.Game.GameID)
		http.Error(w, "Failed to send to Discord", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleNeedsManual(w http.ResponseWriter, r *http.Request) {
	var req NeedsManualRequest
	if !decodeNotifyRequest(w, r, &req) {
		return
	}

	if _, err := s.bot.SendGameMessage(buildNeedsManualEmbed(&req.Game)); err != nil {
		slog.Error("Failed to announce manual resolution", "error", err, "game_id", req.Game.GameID)
		http.Error(w, "Failed to send to Discord", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// editOrSend updates the referenced announcement, falling back to a new
// message when no reference exists.
func (s *HTTPServer) editOrSend(ref string, embed *discordgo.MessageEmbed) error {
	if ref != "" {
		return s.bot.EditGameMessage(ref, embed)
	}
	_, err := s.bot.SendGameMessage(embed)
	return err
}
