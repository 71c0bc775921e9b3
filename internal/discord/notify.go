package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kassalytics/tracker/internal/domain"
)

// Notification payload types shared between the engine's notifier client
// and the bot's internal HTTP server.

// GameOpenedRequest announces a newly detected game
type GameOpenedRequest struct {
	Game domain.TrackedGame `json:"game"`
}

// GameOpenedResponse carries the posted message id back to the engine
type GameOpenedResponse struct {
	Ref string `json:"ref"`
}

// BettingClosedRequest announces the end of a betting window
type BettingClosedRequest struct {
	Game domain.TrackedGame `json:"game"`
}

// GameResolvedRequest announces a settled game
type GameResolvedRequest struct {
	Game    domain.TrackedGame       `json:"game"`
	Summary domain.SettlementSummary `json:"summary"`
}

// NeedsManualRequest flags a game an operator has to settle by hand
type NeedsManualRequest struct {
	Game domain.TrackedGame `json:"game"`
}

// buildGameOpenedEmbed renders the betting announcement for a new game
func buildGameOpenedEmbed(game *domain.TrackedGame) *discordgo.MessageEmbed {
	description := fmt.Sprintf(
		"**%s** is in a ranked game on %s!\n\n"+
			"🔵 Blue: **%.2fx** (%.0f%% to win)\n"+
			"🔴 Red: **%.2fx** (%.0f%% to win)\n\n"+
			"Bet with `/bet %s <side> <stake>`\nBetting closes <t:%d:R>.",
		game.TrackedName, sideLabel(string(game.TrackedSide)),
		game.Odds.BlueMultiplier, game.Odds.BlueWinPct,
		game.Odds.RedMultiplier, game.Odds.RedWinPct,
		game.GameID, game.BettingClosesAt.Unix())

	embed := createEmbed("🎲 Betting Open!", description, 0x2ecc71, "")
	embed.Timestamp = time.Now().Format(time.RFC3339)
	return embed
}

// buildBettingClosedEmbed renders the closed-window update
func buildBettingClosedEmbed(game *domain.TrackedGame) *discordgo.MessageEmbed {
	description := fmt.Sprintf(
		"Betting on **%s**'s game `%s` is closed.\nWaiting for the result...",
		game.TrackedName, game.GameID)
	return createEmbed("⏰ Betting Closed", description, 0xf39c12, "")
}

// buildGameResolvedEmbed renders the settlement announcement
func buildGameResolvedEmbed(game *domain.TrackedGame, summary *domain.SettlementSummary) *discordgo.MessageEmbed {
	outcome := "lost"
	if game.TrackedSide == summary.WinningSide {
		outcome = "won"
	}
	description := fmt.Sprintf(
		"**%s** %s on %s!\n\n**Winner:** %s\n**Wagers:** %d settled (%d won, %d lost)\n**Paid out:** %d points",
		game.TrackedName, outcome, sideLabel(string(game.TrackedSide)),
		sideLabel(string(summary.WinningSide)),
		summary.WagersSettled, summary.WinningBets, summary.LosingBets,
		summary.TotalPaidOut)
	return createEmbed("🏁 Game Resolved", description, sideColor(string(summary.WinningSide)), "")
}

// buildNeedsManualEmbed renders the manual-resolution alert
func buildNeedsManualEmbed(game *domain.TrackedGame) *discordgo.MessageEmbed {
	description := fmt.Sprintf(
		"No result could be fetched for **%s**'s game `%s`.\nAn admin must settle it with `/resolve`.",
		game.TrackedName, game.GameID)
	return createEmbed("⚠️ Manual Resolution Needed", description, 0xe67e22, FooterKassalyticsAdmin)
}
