package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"blossom/internal/ports/input"
	"blossom/internal/ports/output"
)

// PrefixFunc returns the command prefix currently served by the plugin.
type PrefixFunc func() string

// StaticPrefix serves prefix forever.
func StaticPrefix(prefix string) PrefixFunc {
	return func() string { return prefix }
}

// Handler turns slash command interactions into command lines.
type Handler struct {
	exec   input.CommandUseCase
	prefs  output.LanguagePreferences
	prefix PrefixFunc
	name   string
	logger *slog.Logger
}

// NewHandler creates a Handler running commands through exec. prefix is
// asked on every interaction so a reload that changes it is picked up.
func NewHandler(exec input.CommandUseCase, prefs output.LanguagePreferences, prefix PrefixFunc, logger *slog.Logger) *Handler {
	return &Handler{
		exec:   exec,
		prefs:  prefs,
		prefix: prefix,
		name:   commandName(prefix()),
		logger: logger,
	}
}

// CommandName is the slash command this handler answers. It is taken from
// the prefix at construction and stays fixed while Discord knows the command.
func (h *Handler) CommandName() string {
	return h.name
}

func (h *Handler) applicationCommand() *discordgo.ApplicationCommand {
	return applicationCommand(h.name, h.prefix())
}

func (h *Handler) HandleCommand(s responder, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		h.logger.Warn("Defer interaction failed.", tint.Err(err))
		return
	}

	src := newSource(s, i.Interaction, h.prefs, h.logger)
	line := commandLine(h.prefix(), i.ApplicationCommandData())
	if err := h.exec.Execute(context.Background(), src, line); err != nil {
		h.logger.Debug("Discord command failed.", slog.String("source", src.ID()), slog.String("line", line), tint.Err(err))
	}
}
