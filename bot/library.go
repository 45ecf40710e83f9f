package bot

import (
	"context"
	"strconv"

	"kinoteka/bot/state"
	"kinoteka/i18n"
	"kinoteka/models"
)

// watchlistCommand shows the first page of the user's watchlist.
func watchlistCommand(loc *i18n.Bundle, lib Library, states *state.Store) Command {
	return Command{
		Name:        "watchlist",
		Description: loc.Get("CommandDescriptions.WatchList"),
		Handler: func(ctx context.Context, req *Request) error {
			return openLibrary(ctx, req, lib, states, models.LibraryWatchlist)
		},
	}
}

// watchedCommand shows the first page of the user's watched list.
func watchedCommand(loc *i18n.Bundle, lib Library, states *state.Store) Command {
	return Command{
		Name:        "watched",
		Description: loc.Get("CommandDescriptions.Watched"),
		Handler: func(ctx context.Context, req *Request) error {
			return openLibrary(ctx, req, lib, states, models.LibraryWatched)
		},
	}
}

// libraryCommand asks which per-user list to open.
func libraryCommand(loc *i18n.Bundle) Command {
	return Command{
		Name:        "library",
		Description: loc.Get("CommandDescriptions.Library"),
		Handler: func(ctx context.Context, req *Request) error {
			return req.Send(req.T("Messages.ChooseLibraryType"), libraryTypeKeyboard(req.loc))
		},
	}
}

// showWatchlistCallback renders the watchlist in place, resuming the
// page the user was on when possible.
func showWatchlistCallback(lib Library, states *state.Store) Callback {
	return Callback{
		Name: "show_watchlist",
		Handler: func(ctx context.Context, req *Request) error {
			return renderLibraryPage(ctx, req, lib, states, models.LibraryWatchlist, resumePage(states, req.UserID, models.LibraryWatchlist))
		},
	}
}

// showWatchedCallback renders the watched list in place.
func showWatchedCallback(lib Library, states *state.Store) Callback {
	return Callback{
		Name: "show_watched",
		Handler: func(ctx context.Context, req *Request) error {
			return renderLibraryPage(ctx, req, lib, states, models.LibraryWatched, resumePage(states, req.UserID, models.LibraryWatched))
		},
	}
}

// libraryPageCallback flips to another page of the list the user is
// currently browsing.
func libraryPageCallback(states *state.Store, lib Library) Callback {
	return Callback{
		Name: "library_page",
		Handler: func(ctx context.Context, req *Request) error {
			page, err := strconv.Atoi(req.Value)
			if err != nil || page < 1 {
				return req.Edit(req.T("Messages.InvalidParameter", req.Value), nil)
			}

			_, payload, ok := states.Get(req.UserID)
			prev, isLibrary := payload.(*models.LibraryResults)
			if !ok || !isLibrary {
				return req.Show(req.T("Messages.InvalidSelection"), nil)
			}
			return renderLibraryPage(ctx, req, lib, states, prev.LibraryType, page)
		},
	}
}

// watchlistItemCallback shows the card for one watchlist entry.
func watchlistItemCallback(states *state.Store, movies MovieFinder) Callback {
	return Callback{
		Name: "watchlist_item",
		Handler: func(ctx context.Context, req *Request) error {
			movieID, err := strconv.ParseInt(req.Value, 10, 64)
			if err != nil {
				return req.Edit(req.T("Messages.InvalidMovieId"), nil)
			}

			movie := movies.Details(ctx, movieID)
			if movie == nil {
				return req.Show(req.T("Messages.MovieNotFoundInLibrary"), nil)
			}

			states.Set(req.UserID, tagSelectedItem, movieID)
			caption := formatMovieDetail(req.loc, movie, true, false)
			kb := libraryItemKeyboard(req.loc, movieID, models.LibraryWatchlist)
			return req.EditPhoto(caption, movie.PosterURL, kb)
		},
	}
}

// removeFromWatchlistCallback drops the entry from the watchlist and
// confirms.
func removeFromWatchlistCallback(states *state.Store, movies MovieFinder, lib Library) Callback {
	return Callback{
		Name: "remove_from_watchlist",
		Handler: func(ctx context.Context, req *Request) error {
			movieID, err := strconv.ParseInt(req.Value, 10, 64)
			if err != nil {
				return req.Edit(req.T("Messages.InvalidMovieId"), nil)
			}

			movie := movies.Details(ctx, movieID)
			if movie == nil {
				return req.Show(req.T("Messages.MovieNotFoundInLibrary"), nil)
			}

			if err := lib.RemoveFromWatchlist(ctx, req.UserID, movieID); err != nil {
				return err
			}
			states.Clear(req.UserID)

			text := req.T("Messages.MovieRemovedFromWatchList",
				mediaTypeName(req.loc, movie.MediaType), movie.Title, movie.Year)
			return req.Show(text, backToLibraryKeyboard(req.loc, models.LibraryWatchlist))
		},
	}
}

// openLibrary answers a library command with a fresh first page.
func openLibrary(ctx context.Context, req *Request, lib Library, states *state.Store, libraryType models.LibraryType) error {
	res, err := fetchLibraryPage(ctx, req.UserID, lib, libraryType, 1)
	if err != nil {
		return err
	}
	if res.TotalResults == 0 {
		return req.Send(req.T(emptyLibraryKey(libraryType)), nil)
	}
	states.Set(req.UserID, tagLibraryResults, res)
	return req.Send(formatLibraryHeader(req.loc, res), libraryKeyboard(req.loc, res))
}

// renderLibraryPage rewrites the originating message with the requested
// library page. A page that fell off the end after removals snaps back
// to the last page.
func renderLibraryPage(ctx context.Context, req *Request, lib Library, states *state.Store, libraryType models.LibraryType, page int) error {
	res, err := fetchLibraryPage(ctx, req.UserID, lib, libraryType, page)
	if err != nil {
		return err
	}
	if res.TotalResults == 0 {
		states.Clear(req.UserID)
		return req.Show(req.T(emptyLibraryKey(libraryType)), nil)
	}
	if len(res.Items) == 0 {
		res, err = fetchLibraryPage(ctx, req.UserID, lib, libraryType, res.TotalPages)
		if err != nil {
			return err
		}
	}

	states.Set(req.UserID, tagLibraryResults, res)
	return req.Show(formatLibraryHeader(req.loc, res), libraryKeyboard(req.loc, res))
}

func fetchLibraryPage(ctx context.Context, userID int64, lib Library, libraryType models.LibraryType, page int) (*models.LibraryResults, error) {
	if libraryType == models.LibraryWatched {
		return lib.WatchedPage(ctx, userID, page)
	}
	return lib.WatchlistPage(ctx, userID, page)
}

func emptyLibraryKey(libraryType models.LibraryType) string {
	if libraryType == models.LibraryWatched {
		return "Messages.EmptyWatchedLibrary"
	}
	return "Messages.EmptyWatchList"
}

// resumePage returns the page the user was last browsing in the given
// list, or the first page.
func resumePage(states *state.Store, userID int64, libraryType models.LibraryType) int {
	tag, payload, ok := states.Get(userID)
	if !ok || tag != tagLibraryResults {
		return 1
	}
	if prev, isLibrary := payload.(*models.LibraryResults); isLibrary && prev.LibraryType == libraryType {
		return prev.CurrentPage
	}
	return 1
}
