package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kinoteka/models"
)

// UserRepository persists users and their watchlist/watched membership.
type UserRepository struct {
	conn *sql.DB
}

// NewUserRepository creates a repository bound to the given connection.
func NewUserRepository(conn *sql.DB) *UserRepository {
	return &UserRepository{conn: conn}
}

// Upsert inserts the user or refreshes the stored display name.
func (r *UserRepository) Upsert(ctx context.Context, userID int64, username string) (*models.User, error) {
	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO users (id, username) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET username = excluded.username`,
		userID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %d: %w", userID, err)
	}
	return &models.User{ID: userID, Username: username}, nil
}

// Get returns the stored user, or nil when unknown.
func (r *UserRepository) Get(ctx context.Context, userID int64) (*models.User, error) {
	var u models.User
	err := r.conn.QueryRowContext(ctx,
		"SELECT id, username FROM users WHERE id = ?", userID).Scan(&u.ID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return &u, nil
}

// AddToWatchlist adds a membership row; adding twice is a no-op.
func (r *UserRepository) AddToWatchlist(ctx context.Context, userID, movieID int64) error {
	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO watchlist (user_id, movie_id) VALUES (?, ?)
		ON CONFLICT (user_id, movie_id) DO NOTHING`,
		userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to add movie %d to watchlist of user %d: %w", movieID, userID, err)
	}
	return nil
}

// RemoveFromWatchlist removes a membership row; removing a missing row
// is a no-op.
func (r *UserRepository) RemoveFromWatchlist(ctx context.Context, userID, movieID int64) error {
	_, err := r.conn.ExecContext(ctx,
		"DELETE FROM watchlist WHERE user_id = ? AND movie_id = ?", userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove movie %d from watchlist of user %d: %w", movieID, userID, err)
	}
	return nil
}

// Watchlist returns the user's full watchlist sorted by title.
func (r *UserRepository) Watchlist(ctx context.Context, userID int64) ([]models.Movie, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT m.id, m.title, m.year, m.rating, m.overview, m.media_type, m.poster_path, m.page_path
		FROM movies m
		JOIN watchlist w ON m.id = w.movie_id
		WHERE w.user_id = ?
		ORDER BY m.title COLLATE NOCASE ASC, m.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist of user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Rating, &m.Overview, &m.MediaType, &m.PosterURL, &m.PageURL); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist row: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Watched returns the user's full watched list with per-user ratings,
// sorted by title.
func (r *UserRepository) Watched(ctx context.Context, userID int64) ([]models.Movie, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT m.id, m.title, m.year, m.rating, m.overview, m.media_type, m.poster_path, m.page_path, w.user_rating
		FROM movies m
		JOIN watched w ON m.id = w.movie_id
		WHERE w.user_id = ?
		ORDER BY m.title COLLATE NOCASE ASC, m.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watched list of user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []models.Movie
	for rows.Next() {
		var m models.Movie
		var rating sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Rating, &m.Overview, &m.MediaType, &m.PosterURL, &m.PageURL, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan watched row: %w", err)
		}
		if rating.Valid {
			v := int(rating.Int64)
			m.UserRating = &v
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// MoveToWatched removes the movie from the watchlist and records it as
// watched in one transaction, so a failure cannot leave the movie in
// neither list.
func (r *UserRepository) MoveToWatched(ctx context.Context, userID, movieID int64) error {
	return r.move(ctx, userID, movieID, "watchlist", "watched")
}

// MoveToWatchlist is the mirror of MoveToWatched: the movie leaves the
// watched list (dropping its rating) and returns to the watchlist.
func (r *UserRepository) MoveToWatchlist(ctx context.Context, userID, movieID int64) error {
	return r.move(ctx, userID, movieID, "watched", "watchlist")
}

func (r *UserRepository) move(ctx context.Context, userID, movieID int64, from, to string) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin move transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM "+from+" WHERE user_id = ? AND movie_id = ?", userID, movieID); err != nil {
		return fmt.Errorf("failed to remove movie %d from %s of user %d: %w", movieID, from, userID, err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+to+" (user_id, movie_id) VALUES (?, ?) ON CONFLICT (user_id, movie_id) DO NOTHING",
		userID, movieID); err != nil {
		return fmt.Errorf("failed to add movie %d to %s of user %d: %w", movieID, to, userID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move of movie %d for user %d: %w", movieID, userID, err)
	}
	return nil
}

// SetRating records the user's rating on an existing watched row.
func (r *UserRepository) SetRating(ctx context.Context, userID, movieID int64, rating int) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE watched SET user_rating = ? WHERE user_id = ? AND movie_id = ?",
		rating, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to set rating for movie %d of user %d: %w", movieID, userID, err)
	}
	return nil
}

// GetRating returns the user's rating for a watched movie, or nil when
// the movie is unrated or not watched.
func (r *UserRepository) GetRating(ctx context.Context, userID, movieID int64) (*int, error) {
	var rating sql.NullInt64
	err := r.conn.QueryRowContext(ctx,
		"SELECT user_rating FROM watched WHERE user_id = ? AND movie_id = ?",
		userID, movieID).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rating for movie %d of user %d: %w", movieID, userID, err)
	}
	if !rating.Valid {
		return nil, nil
	}
	v := int(rating.Int64)
	return &v, nil
}

// IsInWatchlist reports watchlist membership.
func (r *UserRepository) IsInWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	return r.isMember(ctx, "watchlist", userID, movieID)
}

// IsInWatched reports watched-list membership.
func (r *UserRepository) IsInWatched(ctx context.Context, userID, movieID int64) (bool, error) {
	return r.isMember(ctx, "watched", userID, movieID)
}

func (r *UserRepository) isMember(ctx context.Context, table string, userID, movieID int64) (bool, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM "+table+" WHERE user_id = ? AND movie_id = ?",
		userID, movieID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check %s membership of movie %d for user %d: %w", table, movieID, userID, err)
	}
	return count > 0, nil
}
