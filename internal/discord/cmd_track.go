package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// TrackCommand returns the track command definition and handler
func TrackCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "track",
		Description: "Start tracking a Riot account for live games",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Riot ID game name (the part before the #)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "tag",
				Description: "Riot ID tag line (the part after the #)",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		options := getOptions(i)
		gameName := options[0].StringValue()
		tagLine := options[1].StringValue()

		account, err := client.TrackAccount(gameName, tagLine)
		if err != nil {
			slog.Error("Failed to track account", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		description := fmt.Sprintf(
			"Now watching **%s** (%s).\nA betting window opens whenever they enter a ranked solo queue game.",
			account.DisplayName, account.Region)
		embed := createEmbed("📡 Account Tracked", description, 0x2ecc71, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// UntrackCommand returns the untrack command definition and handler
func UntrackCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "untrack",
		Description: "Stop tracking a Riot account",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Riot ID game name",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "tag",
				Description: "Riot ID tag line",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		options := getOptions(i)
		gameName := options[0].StringValue()
		tagLine := options[1].StringValue()

		msg, err := client.UntrackAccount(gameName, tagLine)
		if err != nil {
			slog.Error("Failed to untrack account", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := createEmbed("📡 Account Untracked", msg, 0x95a5a6, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// AccountsCommand returns the accounts command definition and handler
func AccountsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "accounts",
		Description: "List the Riot accounts being tracked",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		accounts, err := client.ListAccounts()
		if err != nil {
			slog.Error("Failed to list accounts", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if len(accounts) == 0 {
			respondError(s, i, "No accounts are tracked yet. Add one with `/track`.")
			return
		}

		description := ""
		for _, account := range accounts {
			description += fmt.Sprintf("• **%s** (%s)\n", account.DisplayName, account.Region)
		}

		embed := createEmbed("📡 Tracked Accounts", description, 0x3498db, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
