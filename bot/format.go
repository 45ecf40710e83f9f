package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"kinoteka/i18n"
	"kinoteka/models"
)

// Rendering limits imposed by the transport and by readability.
const (
	maxCaptionRunes  = 1024
	maxOverviewRunes = 600
)

// formatSearchHeader renders the header line above a search result
// page.
func formatSearchHeader(loc *i18n.Bundle, r *models.SearchResults) string {
	return loc.Get("Messages.SearchResults",
		mediaTypeGenitivePlural(loc, r.MediaType), r.Query, r.CurrentPage, r.TotalPages)
}

// formatLibraryHeader renders the header line above a library page.
func formatLibraryHeader(loc *i18n.Bundle, r *models.LibraryResults) string {
	title := loc.Get("Messages.WatchListTitle")
	if r.LibraryType == models.LibraryWatched {
		title = loc.Get("Messages.WatchedLibraryTitle")
	}
	if r.TotalPages <= 1 {
		return title
	}
	return title + "\n" + loc.Get("Messages.LibraryPagination", r.CurrentPage, r.TotalPages)
}

// formatSearchRow renders a search result as button text.
func formatSearchRow(m *models.Movie) string {
	row := formatTitleYear(m)
	if m.Rating > 0 {
		row += " " + formatRating(m.Rating) + "/10"
	}
	return row
}

// formatLibraryRow renders a library entry as button text. Watched
// entries show the user's own rating instead of the media type.
func formatLibraryRow(loc *i18n.Bundle, m *models.Movie, libraryType models.LibraryType) string {
	row := formatTitleYear(m)
	if libraryType == models.LibraryWatched && m.UserRating != nil {
		return fmt.Sprintf("%s - %d/10", row, *m.UserRating)
	}
	return row + " - " + mediaTypeName(loc, m.MediaType)
}

// formatMovieDetail renders the detail caption for one movie, in HTML.
// The overview is cut first, then the whole caption is clamped to the
// transport's caption limit.
func formatMovieDetail(loc *i18n.Bundle, m *models.Movie, inWatchlist, watched bool) string {
	var b strings.Builder

	b.WriteString("<b>" + html.EscapeString(formatTitleYear(m)) + "</b>\n")
	if m.Rating > 0 {
		b.WriteString(loc.Get("Messages.Rating", formatRating(m.Rating)) + "\n")
	}

	if watched {
		b.WriteString("\n" + loc.Get("Messages.AlreadyWatchedStatus") + "\n")
		if m.UserRating != nil {
			b.WriteString(loc.Get("Messages.YourRating", *m.UserRating) + "\n")
		} else {
			b.WriteString(loc.Get("Messages.NotRatedYet") + "\n")
		}
	} else if inWatchlist {
		b.WriteString("\n" + loc.Get("Messages.AddedToLibraryStatus") + "\n")
	}

	if m.Overview != "" {
		b.WriteString("\n" + html.EscapeString(truncateRunes(m.Overview, maxOverviewRunes)) + "\n")
	}

	if m.PageURL != "" {
		label := loc.Get("Messages.MoreDetailsAbout", mediaTypeLocative(loc, m.MediaType))
		b.WriteString(fmt.Sprintf("\n<a href=%q>%s</a>", m.PageURL, html.EscapeString(label)))
	}

	return truncateRunes(b.String(), maxCaptionRunes)
}

// formatTitleYear renders "Title (Year)", or just the title when the
// year is unknown.
func formatTitleYear(m *models.Movie) string {
	if m.Year == 0 {
		return m.Title
	}
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// formatRating renders a provider rating with one decimal place.
func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

// truncateRunes cuts s to at most n runes, appending an ellipsis when
// anything was dropped.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func mediaTypeName(loc *i18n.Bundle, mt models.MediaType) string {
	if mt == models.MediaTypeTV {
		return loc.Get("MediaTypes.TvShow")
	}
	return loc.Get("MediaTypes.Movie")
}

func mediaTypeGenitivePlural(loc *i18n.Bundle, mt models.MediaType) string {
	if mt == models.MediaTypeTV {
		return loc.Get("MediaTypes.TvShowsGenitive")
	}
	return loc.Get("MediaTypes.MoviesGenitive")
}

func mediaTypeLocative(loc *i18n.Bundle, mt models.MediaType) string {
	if mt == models.MediaTypeTV {
		return loc.Get("MediaTypes.TvShowLocative")
	}
	return loc.Get("MediaTypes.MovieLocative")
}
