// Package movies is the gateway between the bot and movie metadata:
// provider search plus the local movie cache.
package movies

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kinoteka/models"
)

// Searcher is the external metadata provider surface the service needs.
type Searcher interface {
	Search(ctx context.Context, query string, mediaType models.MediaType, page int) (*models.SearchResults, error)
}

// Repository is the movie-cache surface the service needs.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	Insert(ctx context.Context, m *models.Movie) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service resolves searches against the provider and caches selected
// movies locally. Lookups never propagate collaborator failures; they
// log and return a safe default instead.
type Service struct {
	search Searcher
	repo   Repository
}

// NewService creates a movie service over the given provider and cache.
func NewService(search Searcher, repo Repository) *Service {
	return &Service{search: search, repo: repo}
}

// Search returns one page of provider results. On any failure (or a
// blank query) it returns an empty page for the requested query, kind
// and page rather than an error.
func (s *Service) Search(ctx context.Context, query string, mediaType models.MediaType, page int) *models.SearchResults {
	empty := &models.SearchResults{Query: query, MediaType: mediaType, CurrentPage: page}

	if strings.TrimSpace(query) == "" {
		slog.Warn("movies.search.empty_query", "media_type", mediaType, "page", page)
		return empty
	}

	results, err := s.search.Search(ctx, query, mediaType, page)
	if err != nil {
		slog.Error("movies.search.failed", "query", query, "media_type", mediaType, "page", page, "error", err)
		return empty
	}
	return results
}

// Details returns the cached movie, or nil when unknown or on failure.
func (s *Service) Details(ctx context.Context, movieID int64) *models.Movie {
	movie, err := s.repo.GetByID(ctx, movieID)
	if err != nil {
		slog.Error("movies.details.failed", "movie_id", movieID, "error", err)
		return nil
	}
	return movie
}

// SaveToLibrary caches the movie if absent. The write is re-verified so
// a silent insert failure surfaces as an error instead of a library row
// that points at nothing.
func (s *Service) SaveToLibrary(ctx context.Context, movie *models.Movie) error {
	exists, err := s.repo.Exists(ctx, movie.ID)
	if err != nil {
		return fmt.Errorf("failed to check movie %d: %w", movie.ID, err)
	}
	if exists {
		return nil
	}

	if err := s.repo.Insert(ctx, movie); err != nil {
		return fmt.Errorf("failed to cache movie %d: %w", movie.ID, err)
	}

	exists, err = s.repo.Exists(ctx, movie.ID)
	if err != nil {
		return fmt.Errorf("failed to verify movie %d: %w", movie.ID, err)
	}
	if !exists {
		return fmt.Errorf("movie %d missing after insert", movie.ID)
	}
	return nil
}
