package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"blossom/internal/config"
)

// Bot is the Discord operator console.
type Bot struct {
	session *discordgo.Session
	guildID string
	handler *Handler
	logger  *slog.Logger
	created *discordgo.ApplicationCommand
}

// NewBot creates a Bot for the token and guild of cfg.
func NewBot(cfg *config.Runtime, handler *Handler, logger *slog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	bot := &Bot{
		session: s,
		guildID: cfg.DiscordGuildID,
		handler: handler,
		logger:  logger.With(slog.String("subsystem", "discord")),
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name == b.handler.CommandName() {
		b.handler.HandleCommand(s, i)
	}
}

// Start opens the session and registers the slash command.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	cmd := b.handler.applicationCommand()
	created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, cmd)
	if err != nil {
		b.session.Close()
		return fmt.Errorf("register command %s: %w", cmd.Name, err)
	}
	b.created = created
	b.logger.Info("Discord console online.", slog.String("command", "/"+cmd.Name))
	return nil
}

// Stop removes the slash command and closes the session.
func (b *Bot) Stop() {
	if b.created != nil {
		if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.guildID, b.created.ID); err != nil {
			b.logger.Warn("Remove slash command failed.", tint.Err(err))
		}
	}
	if err := b.session.Close(); err != nil {
		b.logger.Warn("Close discord session failed.", tint.Err(err))
	}
}
