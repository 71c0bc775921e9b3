package discord

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kassalytics/tracker/internal/domain"
)

// GamesCommand returns the games command definition and handler
func GamesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "games",
		Description: "List live tracked games and their betting status",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		games, err := client.ListGames()
		if err != nil {
			slog.Error("Failed to list games", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if len(games) == 0 {
			respondError(s, i, "No tracked games are live right now.")
			return
		}

		description := ""
		for _, game := range games {
			description += formatGameLine(&game) + "\n"
		}

		embed := createEmbed("🎮 Live Games", description, 0x9b59b6, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// HistoryCommand returns the bet history command definition and handler
func HistoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "history",
		Description: "Show your recent bets",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		wagers, err := client.GetWagerHistory(user.ID, 10)
		if err != nil {
			slog.Error("Failed to get wager history", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if len(wagers) == 0 {
			respondError(s, i, "You haven't placed any bets yet. Try `/bet`!")
			return
		}

		description := ""
		for _, wager := range wagers {
			state := "⏳ open"
			if wager.Settled {
				state = "✅ settled"
			}
			description += fmt.Sprintf("`%s` %s %d @ %.2fx (%s)\n",
				wager.GameID, sideLabel(string(wager.Side)), wager.Stake,
				wager.MultiplierAtPlacement, state)
		}

		embed := createEmbed(fmt.Sprintf("📜 Bets for %s", user.Username), description, 0x95a5a6, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// formatGameLine renders one tracked game as a summary line
func formatGameLine(game *domain.TrackedGame) string {
	line := fmt.Sprintf("`%s` **%s** playing %s",
		game.GameID, game.TrackedName, sideLabel(string(game.TrackedSide)))

	switch game.State {
	case domain.GameStateBettingOpen:
		closes := time.Until(game.BettingClosesAt).Round(time.Second)
		line += fmt.Sprintf("\n   Betting open for **%s**: blue %.2fx / red %.2fx",
			closes, game.Odds.BlueMultiplier, game.Odds.RedMultiplier)
	case domain.GameStateBettingClosed, domain.GameStateAwaitingResult:
		line += "\n   Betting closed, waiting for the result"
	case domain.GameStateResolved:
		line += "\n   Resolved"
	}
	if game.NeedsManual {
		line += " ⚠️ needs manual resolution"
	}
	return line
}
