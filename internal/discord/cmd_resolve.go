package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// ResolveCommand returns the admin resolve command definition and handler.
// Restricted to members with the Manage Server permission; used for games
// flagged as needing manual resolution.
func ResolveCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	adminPerms := int64(discordgo.PermissionManageServer)

	cmd := &discordgo.ApplicationCommand{
		Name:                     "resolve",
		Description:              "Manually resolve a tracked game (admin)",
		DefaultMemberPermissions: &adminPerms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "game-id",
				Description: "ID of the game to resolve",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "winner",
				Description: "Winning side",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Blue", Value: "blue"},
					{Name: "Red", Value: "red"},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		options := getOptions(i)
		gameID := options[0].StringValue()
		winner := options[1].StringValue()

		summary, err := client.ResolveGame(gameID, winner)
		if err != nil {
			slog.Error("Failed to resolve game", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		description := fmt.Sprintf(
			"**Game:** `%s`\n**Winner:** %s\n**Wagers settled:** %d (%d won, %d lost)\n**Paid out:** %d points\n**Lost stakes:** %d points",
			summary.GameID, sideLabel(string(summary.WinningSide)),
			summary.WagersSettled, summary.WinningBets, summary.LosingBets,
			summary.TotalPaidOut, summary.TotalLost)
		embed := createEmbed("⚖️ Game Resolved", description, sideColor(string(summary.WinningSide)), FooterKassalyticsAdmin)
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
