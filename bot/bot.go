// Package bot is the chat front end: it classifies inbound transport
// events as commands, callbacks or free text and dispatches them to the
// registered handlers.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"

	"kinoteka/bot/state"
	"kinoteka/i18n"
	"kinoteka/models"
)

// MovieFinder is the metadata-gateway surface handlers work against.
type MovieFinder interface {
	Search(ctx context.Context, query string, mediaType models.MediaType, page int) *models.SearchResults
	Details(ctx context.Context, movieID int64) *models.Movie
	SaveToLibrary(ctx context.Context, movie *models.Movie) error
}

// Library is the per-user library surface handlers work against.
type Library interface {
	GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error)
	AddToWatchlist(ctx context.Context, userID, movieID int64) error
	RemoveFromWatchlist(ctx context.Context, userID, movieID int64) error
	MarkWatched(ctx context.Context, userID, movieID int64) error
	UnmarkWatched(ctx context.Context, userID, movieID int64) error
	WatchlistPage(ctx context.Context, userID int64, page int) (*models.LibraryResults, error)
	WatchedPage(ctx context.Context, userID int64, page int) (*models.LibraryResults, error)
	RandomFromWatchlist(ctx context.Context, userID int64, mediaType *models.MediaType) *models.Movie
	Rate(ctx context.Context, userID, movieID int64, rating int) error
	RatingFor(ctx context.Context, userID, movieID int64) *int
	IsInWatchlist(ctx context.Context, userID, movieID int64) bool
	IsInWatched(ctx context.Context, userID, movieID int64) bool
}

// Conversation state tags. Each names the pending flow the payload
// belongs to.
const (
	tagAwaitingQuery  state.Tag = "awaiting_query"  // payload: models.MediaType
	tagSearchResults  state.Tag = "search_results"  // payload: *models.SearchResults
	tagLibraryResults state.Tag = "library_results" // payload: *models.LibraryResults
	tagSelectedItem   state.Tag = "selected_item"   // payload: movie id
	tagRating         state.Tag = "rating"          // payload: movie id
)

// Deps are the collaborators the bot's handlers draw from. Each handler
// constructor receives only the subset it declares.
type Deps struct {
	Movies  MovieFinder
	Library Library
	States  *state.Store
}

// Bot runs the transport update loop and owns the dispatch tables.
type Bot struct {
	api       *tgbotapi.BotAPI
	client    tgClient
	commands  *commandSet
	callbacks *callbackSet
	states    *state.Store
	movies    MovieFinder
	loc       *i18n.Bundle
	log       *slog.Logger
}

// New connects to the transport and builds the static registration
// tables for commands and callbacks.
func New(token string, loc *i18n.Bundle, deps Deps, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}

	b := newBot(api, loc, deps, log)
	b.api = api
	return b, nil
}

// newBot wires the dispatch tables over an already-connected transport
// client.
func newBot(client tgClient, loc *i18n.Bundle, deps Deps, log *slog.Logger) *Bot {
	b := &Bot{
		client: client,
		states: deps.States,
		movies: deps.Movies,
		loc:    loc,
		log:    log,
	}

	b.commands = newCommandSet()
	b.commands.register(
		startCommand(loc, deps.Library, b.commands.FormattedList),
		helpCommand(loc, b.commands.FormattedList),
		searchCommand(loc),
		watchlistCommand(loc, deps.Library, deps.States),
		watchedCommand(loc, deps.Library, deps.States),
		libraryCommand(loc),
		randomCommand(loc),
	)

	b.callbacks = newCallbackSet()
	b.callbacks.register(
		searchMediaTypeCallback(deps.States),
		searchPageCallback(deps.States, deps.Movies),
		movieDetailsCallback(deps.States, deps.Library),
		addToWatchlistCallback(deps.States, deps.Movies, deps.Library),
		watchlistItemCallback(deps.States, deps.Movies),
		watchedItemCallback(deps.Movies, deps.Library),
		removeFromWatchlistCallback(deps.States, deps.Movies, deps.Library),
		markWatchedCallback(deps.States, deps.Movies, deps.Library),
		unmarkWatchedCallback(deps.States, deps.Movies, deps.Library),
		rateCallback(deps.Movies, deps.Library),
		randomPickCallback(deps.Library),
		showWatchlistCallback(deps.Library, deps.States),
		showWatchedCallback(deps.Library, deps.States),
		libraryPageCallback(deps.States, deps.Library),
	)

	return b
}

// Run registers the command list with the transport and pumps updates
// until the context is cancelled. Each update is handled on its own
// goroutine so one slow user does not stall the others.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.registerCommands(); err != nil {
		b.log.Warn("bot.register_commands.failed", "error", err)
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	b.log.Info("bot.started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("bot.stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate is the last-resort safety net: nothing below the handler
// boundary should ever panic, but a bug in one update must not take the
// process down.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var c panics.Catcher
	c.Try(func() { b.route(ctx, update) })
	if r := c.Recovered(); r != nil {
		b.log.Error("bot.update.panic", "update_id", update.UpdateID, "panic", r.String())
	}
}

// route classifies one inbound event and forwards it to the matching
// dispatcher.
func (b *Bot) route(ctx context.Context, update tgbotapi.Update) {
	log := b.log.With("update_id", update.UpdateID, "request_id", uuid.NewString())

	switch {
	case update.Message != nil && update.Message.From != nil && update.Message.Text != "":
		msg := update.Message
		req := &Request{
			ChatID:    msg.Chat.ID,
			UserID:    msg.From.ID,
			MessageID: msg.MessageID,
			Text:      msg.Text,
			From:      msg.From,
			api:       b.client,
			loc:       b.loc,
			log:       log,
		}
		if strings.HasPrefix(msg.Text, "/") {
			b.dispatchCommand(ctx, req, commandToken(msg.Text))
		} else {
			b.routeText(ctx, req)
		}

	case update.CallbackQuery != nil && update.CallbackQuery.From != nil && update.CallbackQuery.Message != nil:
		cq := update.CallbackQuery
		req := &Request{
			ChatID:    cq.Message.Chat.ID,
			UserID:    cq.From.ID,
			MessageID: cq.Message.MessageID,
			From:      cq.From,
			HasPhoto:  len(cq.Message.Photo) > 0,
			api:       b.client,
			loc:       b.loc,
			log:       log,
		}

		// Acknowledge immediately so the client stops its spinner.
		if _, err := b.client.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			log.Warn("bot.callback.ack_failed", "error", err)
		}

		if cq.Data == "" {
			return
		}
		b.dispatchCallback(ctx, req, cq.Data)
	}
}

// registerCommands publishes the command list (name + description) to
// the transport so clients can offer completion.
func (b *Bot) registerCommands() error {
	cmds := b.commands.botCommands()
	if len(cmds) == 0 {
		return nil
	}
	_, err := b.client.Request(tgbotapi.NewSetMyCommands(cmds...))
	if err != nil {
		return fmt.Errorf("failed to set command list: %w", err)
	}
	return nil
}

// commandToken extracts the lookup token from a command message: the
// first word, with the leading slash and any @botname suffix stripped,
// lower-cased.
func commandToken(text string) string {
	token := text
	if i := strings.IndexAny(token, " \t\n"); i >= 0 {
		token = token[:i]
	}
	token = strings.TrimPrefix(token, "/")
	if i := strings.Index(token, "@"); i >= 0 {
		token = token[:i]
	}
	return strings.ToLower(token)
}
