package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kinoteka/models"
)

const (
	tmdbAPIBaseURL   = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"
	tmdbWebBaseURL   = "https://www.themoviedb.org"
)

// Client handles TMDB API interactions for title search.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
}

// searchResponse is the paged payload of /search/movie and /search/tv.
type searchResponse struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []searchResult `json:"results"`
}

// searchResult carries the union of movie and tv fields; movies use
// title/release_date, series use name/first_air_date.
type searchResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, language string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    tmdbAPIBaseURL,
		apiKey:     apiKey,
		language:   language,
	}
}

// Search runs a paged title search for the given media type.
func (c *Client) Search(ctx context.Context, query string, mediaType models.MediaType, page int) (*models.SearchResults, error) {
	endpoint := fmt.Sprintf("%s/search/%s", c.baseURL, mediaType)

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := &models.SearchResults{
		Query:        query,
		MediaType:    mediaType,
		CurrentPage:  payload.Page,
		TotalPages:   payload.TotalPages,
		TotalResults: payload.TotalResults,
	}
	if results.CurrentPage == 0 {
		results.CurrentPage = page
	}

	for _, r := range payload.Results {
		results.Items = append(results.Items, toMovie(r, mediaType))
	}

	return results, nil
}

// toMovie maps a provider result into the domain shape, resolving
// poster and detail-page URLs.
func toMovie(r searchResult, mediaType models.MediaType) models.Movie {
	title := r.Title
	date := r.ReleaseDate
	if mediaType == models.MediaTypeTV {
		title = r.Name
		date = r.FirstAirDate
	}

	posterURL := ""
	if r.PosterPath != "" {
		posterURL = tmdbImageBaseURL + r.PosterPath
	}

	return models.Movie{
		ID:        r.ID,
		Title:     title,
		Year:      yearOf(date),
		Rating:    r.VoteAverage,
		Overview:  r.Overview,
		PosterURL: posterURL,
		PageURL:   fmt.Sprintf("%s/%s/%d", tmdbWebBaseURL, mediaType, r.ID),
		MediaType: mediaType,
	}
}

// yearOf extracts the year from a provider date ("2006-01-02"); zero
// when the date is absent or malformed.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
