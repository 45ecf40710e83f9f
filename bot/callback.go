package bot

import (
	"context"
	"strings"
)

// Callback binds one inline-button name to a handler. The callback
// value (everything after the first colon) arrives in Request.Value;
// handlers with structured values do their own secondary split.
type Callback struct {
	Name    string
	Handler func(ctx context.Context, req *Request) error
}

// Reserved callback names, intercepted before handler lookup: both
// clear the requester's conversation state unconditionally.
const (
	callbackCancel = "cancel"
	callbackBack   = "back"
)

// callbackSet is the static callback lookup table.
type callbackSet struct {
	handlers map[string]Callback
}

func newCallbackSet() *callbackSet {
	return &callbackSet{handlers: make(map[string]Callback)}
}

func (s *callbackSet) register(cbs ...Callback) {
	for _, cb := range cbs {
		s.handlers[strings.ToLower(cb.Name)] = cb
	}
}

func (s *callbackSet) lookup(name string) (Callback, bool) {
	cb, ok := s.handlers[name]
	return cb, ok
}

// splitCallbackData splits an opaque "name:value" token on the first
// colon only; the value may itself contain colons.
func splitCallbackData(data string) (name, value string) {
	if i := strings.Index(data, ":"); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, ""
}

// dispatchCallback resolves the button token and runs its handler.
// A missing callback is a warning, not an error: users reach it mainly
// through stale buttons on old messages.
func (b *Bot) dispatchCallback(ctx context.Context, req *Request, data string) {
	name, value := splitCallbackData(data)

	if name == callbackCancel || name == callbackBack {
		b.states.Clear(req.UserID)
		if err := req.Edit(req.T("Messages.ActionCancelled"), nil); err != nil {
			req.log.Error("bot.callback.reply_failed", "callback", name, "error", err)
		}
		return
	}

	cb, ok := b.callbacks.lookup(strings.ToLower(name))
	if !ok {
		req.log.Warn("bot.callback.unknown", "callback", name, "user_id", req.UserID)
		if err := req.Edit(req.T("Messages.CallbackNotFound"), nil); err != nil {
			req.log.Error("bot.callback.reply_failed", "callback", name, "error", err)
		}
		return
	}

	req.Value = value
	if err := cb.Handler(ctx, req); err != nil {
		req.log.Error("bot.callback.failed", "callback", cb.Name, "user_id", req.UserID, "error", err)
		if err := req.Replace(req.T("Messages.CallbackError"), nil); err != nil {
			req.log.Error("bot.callback.reply_failed", "callback", cb.Name, "error", err)
		}
	}
}
