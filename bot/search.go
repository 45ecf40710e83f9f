package bot

import (
	"context"
	"strconv"

	"kinoteka/bot/state"
	"kinoteka/i18n"
	"kinoteka/models"
)

// searchCommand starts the search flow by asking for a media type.
func searchCommand(loc *i18n.Bundle) Command {
	return Command{
		Name:        "search",
		Description: loc.Get("CommandDescriptions.Search"),
		Handler: func(ctx context.Context, req *Request) error {
			return req.Send(req.T("Messages.SearchFilter"), mediaTypeKeyboard(req.loc))
		},
	}
}

// searchMediaTypeCallback records the chosen media type and prompts for
// the query text.
func searchMediaTypeCallback(states *state.Store) Callback {
	return Callback{
		Name: "search_media_type",
		Handler: func(ctx context.Context, req *Request) error {
			mediaType, ok := models.ParseMediaType(req.Value)
			if !ok {
				return req.Edit(req.T("Messages.InvalidParameter", req.Value), nil)
			}
			states.Set(req.UserID, tagAwaitingQuery, mediaType)
			return req.Edit(req.T("Messages.EnterSearchQuery"), nil)
		},
	}
}

// searchPageCallback re-runs the pending search for another result
// page. It also serves as the way back to the list from a detail view.
func searchPageCallback(states *state.Store, movies MovieFinder) Callback {
	return Callback{
		Name: "page",
		Handler: func(ctx context.Context, req *Request) error {
			page, err := strconv.Atoi(req.Value)
			if err != nil || page < 1 {
				return req.Edit(req.T("Messages.InvalidParameter", req.Value), nil)
			}

			_, payload, ok := states.Get(req.UserID)
			prev, isResults := payload.(*models.SearchResults)
			if !ok || !isResults {
				return req.Show(req.T("Messages.InvalidSelection"), nil)
			}

			results := movies.Search(ctx, prev.Query, prev.MediaType, page)
			if len(results.Items) == 0 {
				return req.Show(req.T("Messages.SearchPageIsEmpty"), nil)
			}

			states.Set(req.UserID, tagSearchResults, results)
			return req.Show(formatSearchHeader(req.loc, results), searchResultsKeyboard(req.loc, results))
		},
	}
}

// movieDetailsCallback shows the full card for one result on the
// current page, annotated with the user's library status.
func movieDetailsCallback(states *state.Store, lib Library) Callback {
	return Callback{
		Name: "movie_details",
		Handler: func(ctx context.Context, req *Request) error {
			index, err := strconv.Atoi(req.Value)
			if err != nil {
				return req.Edit(req.T("Messages.ItemSelectionError"), nil)
			}

			_, payload, ok := states.Get(req.UserID)
			results, isResults := payload.(*models.SearchResults)
			if !ok || !isResults || index < 0 || index >= len(results.Items) {
				return req.Show(req.T("Messages.InvalidSelection"), nil)
			}

			movie := results.Items[index]
			inWatchlist := lib.IsInWatchlist(ctx, req.UserID, movie.ID)
			watched := lib.IsInWatched(ctx, req.UserID, movie.ID)
			if watched {
				movie.UserRating = lib.RatingFor(ctx, req.UserID, movie.ID)
			}

			caption := formatMovieDetail(req.loc, &movie, inWatchlist, watched)
			kb := movieDetailKeyboard(req.loc, index, results.CurrentPage, inWatchlist, watched)
			return req.EditPhoto(caption, movie.PosterURL, kb)
		},
	}
}

// addToWatchlistCallback caches the selected result locally and puts it
// on the user's watchlist.
func addToWatchlistCallback(states *state.Store, movies MovieFinder, lib Library) Callback {
	return Callback{
		Name: "add_to_watchlist",
		Handler: func(ctx context.Context, req *Request) error {
			index, err := strconv.Atoi(req.Value)
			if err != nil {
				return req.Edit(req.T("Messages.ItemSelectionError"), nil)
			}

			_, payload, ok := states.Get(req.UserID)
			results, isResults := payload.(*models.SearchResults)
			if !ok || !isResults || index < 0 || index >= len(results.Items) {
				return req.Show(req.T("Messages.InvalidSelection"), nil)
			}

			movie := results.Items[index]
			if err := movies.SaveToLibrary(ctx, &movie); err != nil {
				return err
			}

			username := ""
			if req.From != nil {
				username = req.From.UserName
			}
			if _, err := lib.GetOrCreateUser(ctx, req.UserID, username); err != nil {
				return err
			}
			if err := lib.AddToWatchlist(ctx, req.UserID, movie.ID); err != nil {
				return err
			}

			text := req.T("Messages.MovieAddedToWatchList",
				mediaTypeName(req.loc, movie.MediaType), movie.Title, movie.Year)
			return req.Show(text, backToSearchKeyboard(req.loc, results.CurrentPage))
		},
	}
}
