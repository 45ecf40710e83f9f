package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kinoteka/i18n"
)

// startCommand registers the user and introduces the bot.
func startCommand(loc *i18n.Bundle, lib Library, commandList func() string) Command {
	return Command{
		Name:        "start",
		Description: loc.Get("CommandDescriptions.Start"),
		Handler: func(ctx context.Context, req *Request) error {
			username := ""
			if req.From != nil {
				username = req.From.UserName
			}
			if _, err := lib.GetOrCreateUser(ctx, req.UserID, username); err != nil {
				return err
			}
			text := req.T("Messages.Greetings", displayName(req.From)) +
				"\n\n" + req.T("Messages.Help") + "\n" + commandList()
			return req.Send(text, nil)
		},
	}
}

// displayName assembles the user's name for the greeting: real name
// first, username as fallback.
func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = u.UserName
	}
	return name
}

// helpCommand lists the available commands.
func helpCommand(loc *i18n.Bundle, commandList func() string) Command {
	return Command{
		Name:        "help",
		Description: loc.Get("CommandDescriptions.Help"),
		Handler: func(ctx context.Context, req *Request) error {
			return req.Send(req.T("Messages.Help")+"\n"+commandList(), nil)
		},
	}
}
