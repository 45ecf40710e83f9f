package bot

import (
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kinoteka/models"
)

func flattenData(kb *tgbotapi.InlineKeyboardMarkup) []string {
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				data = append(data, *btn.CallbackData)
			}
		}
	}
	return data
}

func containsData(kb *tgbotapi.InlineKeyboardMarkup, want string) bool {
	for _, d := range flattenData(kb) {
		if d == want {
			return true
		}
	}
	return false
}

func TestMediaTypeKeyboard(t *testing.T) {
	kb := mediaTypeKeyboard(testBundle(t))
	for _, want := range []string{"search_media_type:movie", "search_media_type:tv", "cancel"} {
		if !containsData(kb, want) {
			t.Errorf("mediaTypeKeyboard missing %q, have %v", want, flattenData(kb))
		}
	}
}

func TestSearchResultsKeyboardNavigation(t *testing.T) {
	loc := testBundle(t)
	r := &models.SearchResults{
		MediaType:   models.MediaTypeMovie,
		Items:       []models.Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
		CurrentPage: 2,
		TotalPages:  4,
	}

	kb := searchResultsKeyboard(loc, r)
	for _, want := range []string{"movie_details:0", "movie_details:1", "page:1", "page:3", "cancel"} {
		if !containsData(kb, want) {
			t.Errorf("searchResultsKeyboard missing %q, have %v", want, flattenData(kb))
		}
	}
}

func TestSearchResultsKeyboardSinglePageHasNoNav(t *testing.T) {
	loc := testBundle(t)
	r := &models.SearchResults{Items: []models.Movie{{ID: 1}}, CurrentPage: 1, TotalPages: 1}

	kb := searchResultsKeyboard(loc, r)
	for _, d := range flattenData(kb) {
		if d == "page:0" || d == "page:2" {
			t.Errorf("single-page keyboard has nav button %q", d)
		}
	}
}

func TestMovieDetailKeyboardHidesAddWhenInLibrary(t *testing.T) {
	loc := testBundle(t)

	kb := movieDetailKeyboard(loc, 3, 2, false, false)
	if !containsData(kb, "add_to_watchlist:3") {
		t.Error("detail keyboard missing add button for a new title")
	}
	if !containsData(kb, "page:2") {
		t.Error("detail keyboard missing back-to-results button")
	}

	kb = movieDetailKeyboard(loc, 3, 2, true, false)
	if containsData(kb, "add_to_watchlist:3") {
		t.Error("detail keyboard shows add button for a watchlisted title")
	}

	kb = movieDetailKeyboard(loc, 3, 2, false, true)
	if containsData(kb, "add_to_watchlist:3") {
		t.Error("detail keyboard shows add button for a watched title")
	}
}

func TestLibraryKeyboardCarriesMovieIDs(t *testing.T) {
	loc := testBundle(t)
	r := &models.LibraryResults{
		LibraryType: models.LibraryWatchlist,
		Items:       []models.Movie{{ID: 603, Title: "The Matrix", MediaType: models.MediaTypeMovie}},
		CurrentPage: 1,
		TotalPages:  2,
	}

	kb := libraryKeyboard(loc, r)
	for _, want := range []string{"watchlist_item:603", "library_page:2", "cancel"} {
		if !containsData(kb, want) {
			t.Errorf("libraryKeyboard missing %q, have %v", want, flattenData(kb))
		}
	}

	r.LibraryType = models.LibraryWatched
	kb = libraryKeyboard(loc, r)
	if !containsData(kb, "watched_item:603") {
		t.Errorf("watched keyboard missing watched_item, have %v", flattenData(kb))
	}
}

func TestLibraryItemKeyboard(t *testing.T) {
	loc := testBundle(t)

	kb := libraryItemKeyboard(loc, 603, models.LibraryWatchlist)
	for _, want := range []string{"mark_watched:603", "remove_from_watchlist:603", "show_watchlist"} {
		if !containsData(kb, want) {
			t.Errorf("watchlist item keyboard missing %q, have %v", want, flattenData(kb))
		}
	}

	kb = libraryItemKeyboard(loc, 603, models.LibraryWatched)
	for _, want := range []string{"unmark_watched:603", "show_watched"} {
		if !containsData(kb, want) {
			t.Errorf("watched item keyboard missing %q, have %v", want, flattenData(kb))
		}
	}
}

func TestRatingKeyboardCoversFullScale(t *testing.T) {
	kb := ratingKeyboard(testBundle(t), 603)
	for n := 1; n <= 10; n++ {
		want := fmt.Sprintf("rate:603:%d", n)
		if !containsData(kb, want) {
			t.Errorf("ratingKeyboard missing %q", want)
		}
	}
	if !containsData(kb, "back") {
		t.Error("ratingKeyboard missing skip button")
	}
}

func TestRandomKeyboard(t *testing.T) {
	kb := randomKeyboard(testBundle(t))
	for _, want := range []string{"random:movie", "random:tv", "random:any", "back"} {
		if !containsData(kb, want) {
			t.Errorf("randomKeyboard missing %q, have %v", want, flattenData(kb))
		}
	}
}
