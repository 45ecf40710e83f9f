package models

// LibraryPageSize is the fixed number of items per library listing page.
const LibraryPageSize = 20

// SearchResults is one page of provider search results for a query.
type SearchResults struct {
	Query        string    `json:"query"`
	MediaType    MediaType `json:"mediaType"`
	Items        []Movie   `json:"items"`
	CurrentPage  int       `json:"currentPage"`
	TotalPages   int       `json:"totalPages"`
	TotalResults int       `json:"totalResults"`
}

// LibraryType names which per-user list a library page is scoped to.
type LibraryType string

const (
	LibraryWatchlist LibraryType = "watchlist"
	LibraryWatched   LibraryType = "watched"
)

// LibraryResults is one page of a user's watchlist or watched list.
type LibraryResults struct {
	UserID       int64       `json:"userId"`
	LibraryType  LibraryType `json:"libraryType"`
	Items        []Movie     `json:"items"`
	CurrentPage  int         `json:"currentPage"`
	TotalPages   int         `json:"totalPages"`
	TotalResults int         `json:"totalResults"`
}
