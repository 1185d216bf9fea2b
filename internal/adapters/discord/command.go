package discord

import (
	"strings"
	"unicode"

	"github.com/bwmarrin/discordgo"
)

const (
	argsOption         = "args"
	defaultCommandName = "blossom"
	maxCommandName     = 32
)

// commandName turns a chat prefix such as "!!blossom" into a valid slash
// command name.
func commandName(prefix string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(prefix) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		return defaultCommandName
	}
	if runes := []rune(name); len(runes) > maxCommandName {
		name = string(runes[:maxCommandName])
	}
	return name
}

func applicationCommand(name, prefix string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        name,
		Description: "Run " + prefix + " commands",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        argsOption,
				Description: "Arguments, e.g. \"reload\" or \"language zh_cn\"",
				Required:    false,
			},
		},
	}
}

// commandLine rebuilds the chat command line from the slash command options.
func commandLine(prefix string, data discordgo.ApplicationCommandInteractionData) string {
	for _, opt := range data.Options {
		if opt.Name == argsOption && opt.Type == discordgo.ApplicationCommandOptionString {
			if args := strings.Join(strings.Fields(opt.StringValue()), " "); args != "" {
				return prefix + " " + args
			}
		}
	}
	return prefix
}
