package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/kassalytics/tracker/internal/discord"
)

// Default values for optional configuration
const (
	DefaultInternalPort = "8091"
	DefaultAPIURL       = "http://localhost:8080/api/v1"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	_ = godotenv.Load()

	setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	// Internal server the engine posts game announcements to
	internalPort := os.Getenv("BOT_INTERNAL_PORT")
	if internalPort == "" {
		internalPort = DefaultInternalPort
	}

	httpServer := discord.NewHTTPServer(internalPort, bot)
	httpServer.Start()
	defer httpServer.Stop()

	registerCommands(bot, getCommandFactories())

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
}

// loadConfig loads and validates Discord bot configuration from environment variables.
// Returns error if required variables are missing.
func loadConfig() (discord.Config, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return discord.Config{}, errors.New("DISCORD_TOKEN is required")
	}

	appID := os.Getenv("DISCORD_APP_ID")
	if appID == "" {
		return discord.Config{}, errors.New("DISCORD_APP_ID is required")
	}

	channelID := os.Getenv("DISCORD_CHANNEL_ID")
	if channelID == "" {
		return discord.Config{}, errors.New("DISCORD_CHANNEL_ID is required")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	slog.Info("Configured API URL", "url", apiURL)

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		slog.Warn("API_KEY not set, engine requests may fail")
	}

	return discord.Config{
		Token:     token,
		AppID:     appID,
		APIURL:    apiURL,
		APIKey:    apiKey,
		ChannelID: channelID,
	}, nil
}

// getCommandFactories returns a list of all available Discord command factories.
// This provides a single place to see and manage all registered commands.
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		// Betting commands
		discord.BetCommand,
		discord.BalanceCommand,
		discord.HistoryCommand,
		discord.LeaderboardCommand,

		// Game commands
		discord.GamesCommand,

		// Tracking commands
		discord.TrackCommand,
		discord.UntrackCommand,
		discord.AccountsCommand,

		// Admin commands
		discord.ResolveCommand,
	}
}

// registerCommands registers all provided command factories with the bot's registry.
// Each factory is called to create the command and handler, then registered.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
