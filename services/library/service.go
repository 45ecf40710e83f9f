// Package library manages per-user watchlists, watched lists and
// ratings on top of the persistent store.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"kinoteka/models"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Upsert(ctx context.Context, userID int64, username string) (*models.User, error)
	AddToWatchlist(ctx context.Context, userID, movieID int64) error
	RemoveFromWatchlist(ctx context.Context, userID, movieID int64) error
	Watchlist(ctx context.Context, userID int64) ([]models.Movie, error)
	Watched(ctx context.Context, userID int64) ([]models.Movie, error)
	MoveToWatched(ctx context.Context, userID, movieID int64) error
	MoveToWatchlist(ctx context.Context, userID, movieID int64) error
	SetRating(ctx context.Context, userID, movieID int64, rating int) error
	GetRating(ctx context.Context, userID, movieID int64) (*int, error)
	IsInWatchlist(ctx context.Context, userID, movieID int64) (bool, error)
	IsInWatched(ctx context.Context, userID, movieID int64) (bool, error)
}

// Service wraps the repository with pagination, rating validation and
// the point-lookup failure policy (defaults instead of errors).
type Service struct {
	repo Repository

	// randIntn is swappable so random selection is testable.
	randIntn func(n int) int
}

// NewService creates a library service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, randIntn: rand.Intn}
}

// GetOrCreateUser registers the user or re-syncs the display name.
func (s *Service) GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error) {
	user, err := s.repo.Upsert(ctx, userID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to register user %d: %w", userID, err)
	}
	return user, nil
}

// AddToWatchlist puts the movie on the user's watchlist. Idempotent.
func (s *Service) AddToWatchlist(ctx context.Context, userID, movieID int64) error {
	return s.repo.AddToWatchlist(ctx, userID, movieID)
}

// RemoveFromWatchlist takes the movie off the user's watchlist.
func (s *Service) RemoveFromWatchlist(ctx context.Context, userID, movieID int64) error {
	return s.repo.RemoveFromWatchlist(ctx, userID, movieID)
}

// MarkWatched moves the movie from the watchlist to the watched list as
// one atomic store operation.
func (s *Service) MarkWatched(ctx context.Context, userID, movieID int64) error {
	return s.repo.MoveToWatched(ctx, userID, movieID)
}

// UnmarkWatched moves the movie back from the watched list to the
// watchlist, dropping any rating.
func (s *Service) UnmarkWatched(ctx context.Context, userID, movieID int64) error {
	return s.repo.MoveToWatchlist(ctx, userID, movieID)
}

// WatchlistPage returns one title-sorted page of the user's watchlist.
func (s *Service) WatchlistPage(ctx context.Context, userID int64, page int) (*models.LibraryResults, error) {
	items, err := s.repo.Watchlist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist of user %d: %w", userID, err)
	}
	return paginate(items, models.LibraryWatchlist, userID, page), nil
}

// WatchedPage returns one title-sorted page of the user's watched list.
func (s *Service) WatchedPage(ctx context.Context, userID int64, page int) (*models.LibraryResults, error) {
	items, err := s.repo.Watched(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watched list of user %d: %w", userID, err)
	}
	return paginate(items, models.LibraryWatched, userID, page), nil
}

// paginate slices a full sorted list into the fixed-size page shape.
// An out-of-range page yields empty items, not an error.
func paginate(items []models.Movie, libraryType models.LibraryType, userID int64, page int) *models.LibraryResults {
	if page < 1 {
		page = 1
	}

	totalResults := len(items)
	totalPages := (totalResults + models.LibraryPageSize - 1) / models.LibraryPageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * models.LibraryPageSize
	end := start + models.LibraryPageSize
	var pageItems []models.Movie
	if start < totalResults {
		if end > totalResults {
			end = totalResults
		}
		pageItems = items[start:end]
	}

	return &models.LibraryResults{
		UserID:       userID,
		LibraryType:  libraryType,
		Items:        pageItems,
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalResults: totalResults,
	}
}

// RandomFromWatchlist picks one watchlist entry uniformly at random,
// optionally restricted to a media type. Nil when nothing qualifies.
func (s *Service) RandomFromWatchlist(ctx context.Context, userID int64, mediaType *models.MediaType) *models.Movie {
	items, err := s.repo.Watchlist(ctx, userID)
	if err != nil {
		slog.Error("library.random.failed", "user_id", userID, "error", err)
		return nil
	}

	if mediaType != nil {
		filtered := make([]models.Movie, 0, len(items))
		for _, m := range items {
			if m.MediaType == *mediaType {
				filtered = append(filtered, m)
			}
		}
		items = filtered
	}

	if len(items) == 0 {
		return nil
	}
	pick := items[s.randIntn(len(items))]
	return &pick
}

// Rate stores a 1-10 rating. Out-of-range values are dropped with a
// warning instead of reaching the store.
func (s *Service) Rate(ctx context.Context, userID, movieID int64, rating int) error {
	if rating < 1 || rating > 10 {
		slog.Warn("library.rate.out_of_range", "user_id", userID, "movie_id", movieID, "rating", rating)
		return nil
	}
	return s.repo.SetRating(ctx, userID, movieID, rating)
}

// RatingFor returns the user's rating, or nil when unrated or on
// store failure.
func (s *Service) RatingFor(ctx context.Context, userID, movieID int64) *int {
	rating, err := s.repo.GetRating(ctx, userID, movieID)
	if err != nil {
		slog.Error("library.rating_lookup.failed", "user_id", userID, "movie_id", movieID, "error", err)
		return nil
	}
	return rating
}

// IsInWatchlist reports watchlist membership; false on store failure.
func (s *Service) IsInWatchlist(ctx context.Context, userID, movieID int64) bool {
	ok, err := s.repo.IsInWatchlist(ctx, userID, movieID)
	if err != nil {
		slog.Error("library.watchlist_lookup.failed", "user_id", userID, "movie_id", movieID, "error", err)
		return false
	}
	return ok
}

// IsInWatched reports watched membership; false on store failure.
func (s *Service) IsInWatched(ctx context.Context, userID, movieID int64) bool {
	ok, err := s.repo.IsInWatched(ctx, userID, movieID)
	if err != nil {
		slog.Error("library.watched_lookup.failed", "user_id", userID, "movie_id", movieID, "error", err)
		return false
	}
	return ok
}
