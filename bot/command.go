package bot

import (
	"context"
	"sort"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Command binds one slash-command name to a handler. Handlers are
// stateless closures over the collaborators their constructor declared;
// everything request-scoped arrives through the Request.
type Command struct {
	Name        string
	Description string
	Handler     func(ctx context.Context, req *Request) error
}

// commandSet is the static command lookup table, built once at startup.
type commandSet struct {
	handlers map[string]Command

	listOnce sync.Once
	list     string
}

func newCommandSet() *commandSet {
	return &commandSet{handlers: make(map[string]Command)}
}

func (s *commandSet) register(cmds ...Command) {
	for _, cmd := range cmds {
		s.handlers[strings.ToLower(cmd.Name)] = cmd
	}
}

func (s *commandSet) lookup(name string) (Command, bool) {
	cmd, ok := s.handlers[name]
	return cmd, ok
}

// FormattedList returns the alphabetically sorted "/name - description"
// listing of all registered commands with non-empty descriptions. Built
// lazily on first use so handlers may capture it during registration.
func (s *commandSet) FormattedList() string {
	s.listOnce.Do(func() {
		names := make([]string, 0, len(s.handlers))
		for name, cmd := range s.handlers {
			if cmd.Description != "" {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		lines := make([]string, 0, len(names))
		for _, name := range names {
			lines = append(lines, "/"+name+" - "+s.handlers[name].Description)
		}
		s.list = strings.Join(lines, "\n")
	})
	return s.list
}

// botCommands returns the transport-facing command registrations.
func (s *commandSet) botCommands() []tgbotapi.BotCommand {
	names := make([]string, 0, len(s.handlers))
	for name, cmd := range s.handlers {
		if cmd.Description != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	cmds := make([]tgbotapi.BotCommand, 0, len(names))
	for _, name := range names {
		cmds = append(cmds, tgbotapi.BotCommand{
			Command:     name,
			Description: s.handlers[name].Description,
		})
	}
	return cmds
}

// dispatchCommand resolves the token and runs its handler. Handler
// failures are logged and reported as a generic message; they never
// propagate to the transport loop.
func (b *Bot) dispatchCommand(ctx context.Context, req *Request, token string) {
	cmd, ok := b.commands.lookup(token)
	if !ok {
		req.log.Warn("bot.command.unknown", "command", token, "user_id", req.UserID)
		if err := req.Send(req.T("Messages.UnknownCommand"), nil); err != nil {
			req.log.Error("bot.command.reply_failed", "command", token, "error", err)
		}
		return
	}

	if err := cmd.Handler(ctx, req); err != nil {
		req.log.Error("bot.command.failed", "command", cmd.Name, "user_id", req.UserID, "error", err)
		if err := req.Send(req.T("Messages.Error"), nil); err != nil {
			req.log.Error("bot.command.reply_failed", "command", cmd.Name, "error", err)
		}
	}
}
