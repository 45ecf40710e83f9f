package bot

import (
	"context"

	"kinoteka/i18n"
	"kinoteka/models"
)

// randomCommand starts the random-pick flow by asking which slice of
// the watchlist to draw from.
func randomCommand(loc *i18n.Bundle) Command {
	return Command{
		Name:        "random",
		Description: loc.Get("CommandDescriptions.Random"),
		Handler: func(ctx context.Context, req *Request) error {
			return req.Send(req.T("Messages.RandomChoice"), randomKeyboard(req.loc))
		},
	}
}

// randomPickCallback draws one watchlist entry at random, optionally
// restricted to a media type. The keyboard stays so the user can
// re-roll.
func randomPickCallback(lib Library) Callback {
	return Callback{
		Name: "random",
		Handler: func(ctx context.Context, req *Request) error {
			var mediaType *models.MediaType
			if req.Value != "any" {
				mt, ok := models.ParseMediaType(req.Value)
				if !ok {
					return req.Edit(req.T("Messages.InvalidParameter", req.Value), nil)
				}
				mediaType = &mt
			}

			movie := lib.RandomFromWatchlist(ctx, req.UserID, mediaType)
			if movie == nil {
				text := req.T("Messages.RandomMoviesNotFound", randomScopeName(req.loc, mediaType))
				return req.Show(text, randomKeyboard(req.loc))
			}

			caption := req.T("Messages.RandomResult", mediaTypeLocative(req.loc, movie.MediaType)) +
				"\n\n" + formatMovieDetail(req.loc, movie, true, false)
			return req.EditPhoto(caption, movie.PosterURL, randomKeyboard(req.loc))
		},
	}
}

// randomScopeName names the slice of the watchlist a draw was scoped
// to, for the nothing-found message.
func randomScopeName(loc *i18n.Bundle, mediaType *models.MediaType) string {
	if mediaType == nil {
		return loc.Get("MediaTypes.AnyGenitive")
	}
	return mediaTypeGenitivePlural(loc, *mediaType)
}
