package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// BalanceCommand returns the balance command definition and handler
func BalanceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "balance",
		Description: "Check your point balance and betting record",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		account, err := client.GetBalance(user.ID)
		if err != nil {
			slog.Error("Failed to get balance", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		description := fmt.Sprintf(
			"**Balance:** %d points\n**Bets placed:** %d\n**Bets won:** %d (%.0f%%)\n**Total wagered:** %d\n**Total won:** %d\n**Total lost:** %d",
			account.Balance, account.BetsPlaced, account.BetsWon, account.WinRate(),
			account.TotalWagered, account.TotalWon, account.TotalLost)
		embed := createEmbed(fmt.Sprintf("💰 %s", user.Username), description, 0xf1c40f, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// LeaderboardCommand returns the leaderboard command definition and handler
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Show the top bettors by balance",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "Number of bettors to show (default 10)",
				Required:    false,
				MinValue:    &[]float64{1}[0],
				MaxValue:    25,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		limit := 10
		if options := getOptions(i); len(options) > 0 {
			limit = int(options[0].IntValue())
		}

		accounts, err := client.GetLeaderboard(limit)
		if err != nil {
			slog.Error("Failed to get leaderboard", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if len(accounts) == 0 {
			respondError(s, i, "No bettors yet. Place the first bet with `/bet`!")
			return
		}

		medals := []string{"🥇", "🥈", "🥉"}
		description := ""
		for idx, account := range accounts {
			rank := fmt.Sprintf("%d.", idx+1)
			if idx < len(medals) {
				rank = medals[idx]
			}
			description += fmt.Sprintf("%s <@%s>: %d points (%d/%d won)\n",
				rank, account.BettorID, account.Balance, account.BetsWon, account.BetsPlaced)
		}

		embed := createEmbed("🏆 Betting Leaderboard", description, 0xf1c40f, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
