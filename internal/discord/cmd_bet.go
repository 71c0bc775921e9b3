package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// BetCommand returns the bet command definition and handler
func BetCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "bet",
		Description: "Place a bet on a tracked game",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "game-id",
				Description: "ID of the game to bet on (see /games)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "side",
				Description: "Which team wins",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Blue", Value: "blue"},
					{Name: "Red", Value: "red"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "stake",
				Description: "Points to stake",
				Required:    true,
				MinValue:    &[]float64{1}[0],
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		options := getOptions(i)
		gameID := options[0].StringValue()
		side := options[1].StringValue()
		stake := options[2].IntValue()

		wager, err := client.PlaceBet(user.ID, gameID, side, stake)
		if err != nil {
			slog.Error("Failed to place bet", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		description := fmt.Sprintf(
			"**Game:** `%s`\n**Side:** %s\n**Stake:** %d\n**Multiplier:** %.2fx\n**Potential payout:** %d",
			wager.GameID, sideLabel(string(wager.Side)), wager.Stake,
			wager.MultiplierAtPlacement, wager.PotentialPayout)
		embed := createEmbed("🎫 Bet Placed!", description, sideColor(string(wager.Side)), "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

func sideLabel(side string) string {
	if side == "blue" {
		return "🔵 Blue"
	}
	return "🔴 Red"
}

func sideColor(side string) int {
	if side == "blue" {
		return 0x3498db
	}
	return 0xe74c3c
}
