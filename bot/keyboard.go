package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kinoteka/i18n"
	"kinoteka/models"
)

func button(text, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data)
}

func markup(rows ...[]tgbotapi.InlineKeyboardButton) *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// mediaTypeKeyboard asks which kind of title to search for.
func mediaTypeKeyboard(loc *i18n.Bundle) *tgbotapi.InlineKeyboardMarkup {
	return markup(
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("MediaTypes.Movie"), "search_media_type:"+string(models.MediaTypeMovie)),
			button(loc.Get("MediaTypes.TvShow"), "search_media_type:"+string(models.MediaTypeTV)),
		),
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.Cancel"), callbackCancel),
		),
	)
}

// searchResultsKeyboard lists one page of search results, one button
// per item carrying its index into the current page.
func searchResultsKeyboard(loc *i18n.Bundle, r *models.SearchResults) *tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(r.Items)+2)
	for i := range r.Items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(formatSearchRow(&r.Items[i]), fmt.Sprintf("movie_details:%d", i)),
		))
	}

	if nav := pageRow(loc, r.CurrentPage, r.TotalPages, "page"); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		button(loc.Get("Buttons.Cancel"), callbackCancel),
	))
	return markup(rows...)
}

// movieDetailKeyboard offers actions on one search result. The add
// button is hidden once the title is anywhere in the user's library.
func movieDetailKeyboard(loc *i18n.Bundle, index, currentPage int, inWatchlist, watched bool) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if !inWatchlist && !watched {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.AddToWatchListFull"), fmt.Sprintf("add_to_watchlist:%d", index)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		button(loc.Get("Buttons.BackToSearch"), fmt.Sprintf("page:%d", currentPage)),
	))
	return markup(rows...)
}

// backToSearchKeyboard returns to the given search result page.
func backToSearchKeyboard(loc *i18n.Bundle, currentPage int) *tgbotapi.InlineKeyboardMarkup {
	return markup(tgbotapi.NewInlineKeyboardRow(
		button(loc.Get("Buttons.BackToSearch"), fmt.Sprintf("page:%d", currentPage)),
	))
}

// backToLibraryKeyboard returns to the given per-user list.
func backToLibraryKeyboard(loc *i18n.Bundle, libraryType models.LibraryType) *tgbotapi.InlineKeyboardMarkup {
	target := "show_watchlist"
	if libraryType == models.LibraryWatched {
		target = "show_watched"
	}
	return markup(tgbotapi.NewInlineKeyboardRow(
		button(loc.Get("Buttons.BackToLibrary"), target),
	))
}

// libraryTypeKeyboard asks which per-user list to open.
func libraryTypeKeyboard(loc *i18n.Bundle) *tgbotapi.InlineKeyboardMarkup {
	return markup(
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.WatchList"), "show_watchlist"),
			button(loc.Get("Buttons.WatchedLibrary"), "show_watched"),
		),
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.Cancel"), callbackCancel),
		),
	)
}

// libraryKeyboard lists one page of a library, one button per entry
// carrying the entry's movie id.
func libraryKeyboard(loc *i18n.Bundle, r *models.LibraryResults) *tgbotapi.InlineKeyboardMarkup {
	itemCallback := "watchlist_item"
	if r.LibraryType == models.LibraryWatched {
		itemCallback = "watched_item"
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(r.Items)+2)
	for i := range r.Items {
		m := &r.Items[i]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(formatLibraryRow(loc, m, r.LibraryType), fmt.Sprintf("%s:%d", itemCallback, m.ID)),
		))
	}

	if nav := pageRow(loc, r.CurrentPage, r.TotalPages, "library_page"); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		button(loc.Get("Buttons.Cancel"), callbackCancel),
	))
	return markup(rows...)
}

// libraryItemKeyboard offers actions on one library entry.
func libraryItemKeyboard(loc *i18n.Bundle, movieID int64, libraryType models.LibraryType) *tgbotapi.InlineKeyboardMarkup {
	if libraryType == models.LibraryWatched {
		return markup(
			tgbotapi.NewInlineKeyboardRow(
				button(loc.Get("Buttons.RemoveFromWatchedFull"), fmt.Sprintf("unmark_watched:%d", movieID)),
			),
			tgbotapi.NewInlineKeyboardRow(
				button(loc.Get("Buttons.BackToLibrary"), "show_watched"),
			),
		)
	}
	return markup(
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.MarkAsWatched"), fmt.Sprintf("mark_watched:%d", movieID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.RemoveFromWatchListFull"), fmt.Sprintf("remove_from_watchlist:%d", movieID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.BackToLibrary"), "show_watchlist"),
		),
	)
}

// ratingKeyboard offers the 1-10 rating scale for a freshly watched
// title, plus an opt-out.
func ratingKeyboard(loc *i18n.Bundle, movieID int64) *tgbotapi.InlineKeyboardMarkup {
	low := make([]tgbotapi.InlineKeyboardButton, 0, 5)
	high := make([]tgbotapi.InlineKeyboardButton, 0, 5)
	for n := 1; n <= 5; n++ {
		low = append(low, button(fmt.Sprintf("%d", n), fmt.Sprintf("rate:%d:%d", movieID, n)))
	}
	for n := 6; n <= 10; n++ {
		high = append(high, button(fmt.Sprintf("%d", n), fmt.Sprintf("rate:%d:%d", movieID, n)))
	}
	return markup(
		low,
		high,
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.DoNotRate"), callbackBack),
		),
	)
}

// randomKeyboard asks which slice of the watchlist to pick from.
func randomKeyboard(loc *i18n.Bundle) *tgbotapi.InlineKeyboardMarkup {
	return markup(
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("MediaTypes.Movie"), "random:"+string(models.MediaTypeMovie)),
			button(loc.Get("MediaTypes.TvShow"), "random:"+string(models.MediaTypeTV)),
		),
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("MediaTypes.Any"), "random:any"),
		),
		tgbotapi.NewInlineKeyboardRow(
			button(loc.Get("Buttons.Back"), callbackBack),
		),
	)
}

// pageRow builds the previous/next navigation row, or nil when the
// listing fits on one page.
func pageRow(loc *i18n.Bundle, currentPage, totalPages int, callbackName string) []tgbotapi.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}
	var row []tgbotapi.InlineKeyboardButton
	if currentPage > 1 {
		row = append(row, button(loc.Get("Buttons.Previous"), fmt.Sprintf("%s:%d", callbackName, currentPage-1)))
	}
	if currentPage < totalPages {
		row = append(row, button(loc.Get("Buttons.Next"), fmt.Sprintf("%s:%d", callbackName, currentPage+1)))
	}
	return row
}
