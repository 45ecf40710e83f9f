package bot

import (
	"context"
	"strconv"

	"kinoteka/bot/state"
	"kinoteka/models"
)

// watchedItemCallback shows the card for one watched entry, including
// the user's own rating.
func watchedItemCallback(movies MovieFinder, lib Library) Callback {
	return Callback{
		Name: "watched_item",
		Handler: func(ctx context.Context, req *Request) error {
			movieID, err := strconv.ParseInt(req.Value, 10, 64)
			if err != nil {
				return req.Edit(req.T("Messages.InvalidMovieId"), nil)
			}

			movie := movies.Details(ctx, movieID)
			if movie == nil {
				return req.Show(req.T("Messages.MovieNotFoundInLibrary"), nil)
			}
			movie.UserRating = lib.RatingFor(ctx, req.UserID, movieID)

			caption := formatMovieDetail(req.loc, movie, false, true)
			kb := libraryItemKeyboard(req.loc, movieID, models.LibraryWatched)
			return req.EditPhoto(caption, movie.PosterURL, kb)
		},
	}
}

// markWatchedCallback moves the entry from the watchlist to the watched
// list and offers the rating scale.
func markWatchedCallback(states *state.Store, movies MovieFinder, lib Library) Callback {
	return Callback{
		Name: "mark_watched",
		Handler: func(ctx context.Context, req *Request) error {
			movieID, err := strconv.ParseInt(req.Value, 10, 64)
			if err != nil {
				return req.Edit(req.T("Messages.InvalidMovieId"), nil)
			}

			movie := movies.Details(ctx, movieID)
			if movie == nil {
				return req.Show(req.T("Messages.MovieNotFoundInLibrary"), nil)
			}

			if err := lib.MarkWatched(ctx, req.UserID, movieID); err != nil {
				return err
			}
			states.Set(req.UserID, tagRating, movieID)

			text := req.T("Messages.MovieMarkedAsWatched",
				mediaTypeName(req.loc, movie.MediaType), movie.Title, movie.Year)
			return req.Show(text, ratingKeyboard(req.loc, movieID))
		},
	}
}

// unmarkWatchedCallback moves the entry back to the watchlist,
// discarding its rating.
func unmarkWatchedCallback(states *state.Store, movies MovieFinder, lib Library) Callback {
	return Callback{
		Name: "unmark_watched",
		Handler: func(ctx context.Context, req *Request) error {
			movieID, err := strconv.ParseInt(req.Value, 10, 64)
			if err != nil {
				return req.Edit(req.T("Messages.InvalidMovieId"), nil)
			}

			movie := movies.Details(ctx, movieID)
			if movie == nil {
				return req.Show(req.T("Messages.MovieNotFoundInLibrary"), nil)
			}

			if err := lib.UnmarkWatched(ctx, req.UserID, movieID); err != nil {
				return err
			}
			states.Clear(req.UserID)

			text := req.T("Messages.MovieReturnedToWatchList",
				mediaTypeName(req.loc, movie.MediaType), movie.Title, movie.Year)
			return req.Show(text, backToLibraryKeyboard(req.loc, models.LibraryWatchlist))
		},
	}
}

// rateCallback stores a 1-10 rating for a watched entry. The callback
// value carries both the movie id and the chosen rating.
func rateCallback(movies MovieFinder, lib Library) Callback {
	return Callback{
		Name: "rate",
		Handler: func(ctx context.Context, req *Request) error {
			idToken, ratingToken := splitCallbackData(req.Value)

			movieID, err := strconv.ParseInt(idToken, 10, 64)
			if err != nil {
				return req.Edit(req.T("Messages.InvalidMovieId"), nil)
			}
			rating, err := strconv.Atoi(ratingToken)
			if err != nil {
				return req.Edit(req.T("Messages.RatingError"), nil)
			}
			if rating < 1 || rating > 10 {
				return req.Edit(req.T("Messages.InvalidRating"), nil)
			}

			movie := movies.Details(ctx, movieID)
			if movie == nil {
				return req.Show(req.T("Messages.MovieNotFoundInLibrary"), nil)
			}

			if err := lib.Rate(ctx, req.UserID, movieID, rating); err != nil {
				return err
			}

			text := req.T("Messages.MovieRated",
				mediaTypeName(req.loc, movie.MediaType), movie.Title, movie.Year, rating)
			return req.Show(text, backToLibraryKeyboard(req.loc, models.LibraryWatched))
		},
	}
}
