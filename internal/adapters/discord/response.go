package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"blossom/internal/domain"
	"blossom/internal/infrastructure/i18n"
	"blossom/internal/ports/output"
)

// responder is the part of *discordgo.Session used to answer interactions.
type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if member != nil && member.User != nil {
		user = member.User
	}
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// permissionLevel maps Discord member permissions onto host levels.
func permissionLevel(member *discordgo.Member) int {
	if member == nil {
		return domain.PermissionUser
	}
	switch p := member.Permissions; {
	case p&discordgo.PermissionAdministrator != 0:
		return domain.PermissionOwner
	case p&discordgo.PermissionManageGuild != 0:
		return domain.PermissionAdmin
	case p&discordgo.PermissionManageMessages != 0:
		return domain.PermissionHelper
	}
	return domain.PermissionUser
}

// viewerLanguage is the stored preference of sourceID, else the client locale.
func viewerLanguage(ctx context.Context, prefs output.LanguagePreferences, sourceID string, locale discordgo.Locale) string {
	if prefs != nil {
		if language, ok, err := prefs.Language(ctx, sourceID); err == nil && ok {
			return language
		}
	}
	if language, err := i18n.ParseLanguage(string(locale)); err == nil {
		return language
	}
	return ""
}

var _ output.Source = (*source)(nil)

// source is the member who invoked the slash command. Replies are sent as
// ephemeral followups to the deferred interaction response.
type source struct {
	session     responder
	interaction *discordgo.Interaction
	prefs       output.LanguagePreferences
	logger      *slog.Logger
	id          string
	name        string
	level       int
}

func newSource(s responder, i *discordgo.Interaction, prefs output.LanguagePreferences, logger *slog.Logger) *source {
	id := ""
	if u := interactionUser(i); u != nil {
		id = "discord:" + u.ID
	}
	return &source{
		session:     s,
		interaction: i,
		prefs:       prefs,
		logger:      logger,
		id:          id,
		name:        resolveDisplayName(i.Member, i.User),
		level:       permissionLevel(i.Member),
	}
}

func (s *source) ID() string   { return s.id }
func (s *source) Name() string { return s.name }

func (s *source) HasPermission(level int) bool {
	return s.level >= level
}

// Reply resolves message for the viewer. The language is looked up on every
// reply so a language change shows up right away.
func (s *source) Reply(message domain.Resolvable) {
	language := viewerLanguage(context.Background(), s.prefs, s.id, s.interaction.Locale)
	content := ""
	if c, err := message.Resolve(language); err != nil {
		content = err.Error()
	} else {
		content = i18n.PlainText(c)
	}
	_, err := s.session.FollowupMessageCreate(s.interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		s.logger.Warn("Send reply failed.", slog.String("source", s.id), tint.Err(err))
	}
}
