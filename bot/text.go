package bot

import (
	"context"
	"strings"

	"kinoteka/models"
)

// routeText handles a plain text message by consulting conversation
// state. Only the awaiting-query flow consumes free text; other pending
// flows deliberately ignore it, and with no state at all the text is
// not actionable.
func (b *Bot) routeText(ctx context.Context, req *Request) {
	tag, payload, ok := b.states.Get(req.UserID)
	if !ok {
		if err := req.Send(req.T("Messages.UnknownCommand"), nil); err != nil {
			req.log.Error("bot.text.reply_failed", "error", err)
		}
		return
	}

	if tag != tagAwaitingQuery {
		return
	}

	mediaType, ok := payload.(models.MediaType)
	if !ok {
		b.states.Clear(req.UserID)
		if err := req.Send(req.T("Messages.ContentTypeNotSpecified"), nil); err != nil {
			req.log.Error("bot.text.reply_failed", "error", err)
		}
		return
	}

	query := strings.TrimSpace(req.Text)
	if query == "" {
		if err := req.Send(req.T("Messages.EnterSearchQuery"), nil); err != nil {
			req.log.Error("bot.text.reply_failed", "error", err)
		}
		return
	}

	results := b.movies.Search(ctx, query, mediaType, 1)
	if len(results.Items) == 0 {
		// State stays untouched so the user can just retype.
		if err := req.Send(req.T("Messages.SearchResultsIsEmpty"), nil); err != nil {
			req.log.Error("bot.text.reply_failed", "error", err)
		}
		return
	}

	b.states.Set(req.UserID, tagSearchResults, results)
	if err := req.Send(formatSearchHeader(req.loc, results), searchResultsKeyboard(req.loc, results)); err != nil {
		req.log.Error("bot.text.reply_failed", "query", query, "error", err)
	}
}
