package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kinoteka/models"
)

// MovieRepository caches metadata-provider movies in the local store so
// library listings don't have to call the provider again.
type MovieRepository struct {
	conn *sql.DB
}

// NewMovieRepository creates a repository bound to the given connection.
func NewMovieRepository(conn *sql.DB) *MovieRepository {
	return &MovieRepository{conn: conn}
}

const movieColumns = "id, title, year, rating, overview, media_type, poster_path, page_path"

// GetByID returns the cached movie, or nil when it is not cached.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	row := r.conn.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id = ?", id)

	var m models.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Year, &m.Rating, &m.Overview, &m.MediaType, &m.PosterURL, &m.PageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load movie %d: %w", id, err)
	}
	return &m, nil
}

// Insert stores the movie, ignoring the write if it is already cached.
func (r *MovieRepository) Insert(ctx context.Context, m *models.Movie) error {
	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO movies (`+movieColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		m.ID, m.Title, m.Year, m.Rating, m.Overview, m.MediaType, m.PosterURL, m.PageURL)
	if err != nil {
		return fmt.Errorf("failed to insert movie %d: %w", m.ID, err)
	}
	return nil
}

// Exists reports whether the movie is cached.
func (r *MovieRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM movies WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check movie %d: %w", id, err)
	}
	return count > 0, nil
}
