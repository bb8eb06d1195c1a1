package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-relay/internal/config"
	"tg-relay/internal/logger"
)

// BotService represents the Telegram bot service
type BotService struct {
	Bot     *telego.Bot
	Handler *th.BotHandler
}

// Start starts the bot handler
func (b *BotService) Start() {
	b.Handler.Start()
}

// Stop stops the bot handler
func (b *BotService) Stop() {
	b.Handler.Stop()
}

// Initialize creates the telego client and the update source. With a
// webhook endpoint configured it sets up the webhook server; otherwise
// it falls back to long polling and the returned server is nil.
func Initialize(ctx context.Context, cfg *config.Config) (*BotService, *WebhookServer, error) {
	if cfg.Bot.Token == "" {
		return nil, nil, fmt.Errorf("bot token is required")
	}

	bot, err := telego.NewBot(cfg.Bot.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	botUser, err := bot.GetMe(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get bot info: %w", err)
	}
	logger.Infof("Authorized on account %s", botUser.Username)

	setCommands(ctx, bot)

	if cfg.Bot.Webhook.Endpoint == "" {
		logger.Infof("No webhook endpoint configured, using long polling")

		// Drop any previously registered webhook so polling works.
		if err := bot.DeleteWebhook(ctx, &telego.DeleteWebhookParams{}); err != nil {
			return nil, nil, fmt.Errorf("failed to delete existing webhook: %w", err)
		}

		updates, err := bot.UpdatesViaLongPolling(ctx, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start long polling: %w", err)
		}

		bh, err := th.NewBotHandler(bot, updates)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create bot handler: %w", err)
		}

		return &BotService{Bot: bot, Handler: bh}, nil, nil
	}

	// Fixed secret token derived from the bot token tail.
	secretToken := "secure_webhook_token_" + cfg.Bot.Token[len(cfg.Bot.Token)-6:]

	bh, server, err := SetupWebhook(ctx, bot,
		cfg.Bot.Webhook.Endpoint,
		cfg.Bot.Webhook.ListenPort,
		cfg.Bot.Webhook.DebugPath,
		secretToken,
		cfg.Bot.Webhook.CertFile,
		cfg.Bot.Webhook.KeyFile,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup webhook: %w", err)
	}

	return &BotService{Bot: bot, Handler: bh}, server, nil
}

// setCommands registers the bot command menu
func setCommands(ctx context.Context, bot *telego.Bot) {
	commands := []telego.BotCommand{
		{Command: "start", Description: "Show usage"},
		{Command: "help", Description: "Show usage"},
		{Command: "groups", Description: "List registered groups"},
		{Command: "toggle", Description: "Toggle forwarding for a group"},
		{Command: "allow", Description: "Put a group on the allow-list"},
		{Command: "block", Description: "Block a group and leave it"},
		{Command: "addadmin", Description: "Add an administrator"},
		{Command: "send", Description: "Send a message to a group by id"},
	}

	err := bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		logger.Warningf("Failed to set bot commands: %v", err)
	}
}
