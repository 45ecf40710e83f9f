package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinoteka/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "en-US")
	c.baseURL = srv.URL
	return c
}

func TestSearchMovies(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("api_key = %q", r.URL.Query().Get("api_key"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 1,
			"total_pages": 2,
			"total_results": 21,
			"results": [
				{"id": 348, "title": "Alien", "release_date": "1979-05-25", "vote_average": 8.1, "overview": "In space...", "poster_path": "/alien.jpg"}
			]
		}`))
	})

	results, err := c.Search(context.Background(), "alien", models.MediaTypeMovie, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotPath != "/search/movie" {
		t.Errorf("request path = %q, want /search/movie", gotPath)
	}
	if gotQuery != "alien" {
		t.Errorf("request query = %q, want alien", gotQuery)
	}
	if results.TotalPages != 2 || results.TotalResults != 21 {
		t.Errorf("totals = (%d, %d), want (2, 21)", results.TotalPages, results.TotalResults)
	}
	if len(results.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(results.Items))
	}

	m := results.Items[0]
	if m.ID != 348 || m.Title != "Alien" || m.Year != 1979 {
		t.Errorf("movie = %+v", m)
	}
	if m.PosterURL != tmdbImageBaseURL+"/alien.jpg" {
		t.Errorf("PosterURL = %q", m.PosterURL)
	}
	if m.PageURL != tmdbWebBaseURL+"/movie/348" {
		t.Errorf("PageURL = %q", m.PageURL)
	}
	if m.MediaType != models.MediaTypeMovie {
		t.Errorf("MediaType = %q", m.MediaType)
	}
}

func TestSearchSeriesUsesTVFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("request path = %q, want /search/tv", r.URL.Path)
		}
		w.Write([]byte(`{
			"page": 1, "total_pages": 1, "total_results": 1,
			"results": [{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20", "vote_average": 8.9}]
		}`))
	})

	results, err := c.Search(context.Background(), "breaking bad", models.MediaTypeTV, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	m := results.Items[0]
	if m.Title != "Breaking Bad" || m.Year != 2008 {
		t.Errorf("series = %+v", m)
	}
	if m.PosterURL != "" {
		t.Errorf("PosterURL = %q, want empty without poster_path", m.PosterURL)
	}
}

func TestSearchNonOKStatusIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	})

	if _, err := c.Search(context.Background(), "alien", models.MediaTypeMovie, 1); err == nil {
		t.Fatal("Search() error = nil, want status failure")
	}
}

func TestSearchZeroPageFallsBackToRequested(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_pages": 0, "total_results": 0, "results": []}`))
	})

	results, err := c.Search(context.Background(), "nothing", models.MediaTypeMovie, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if results.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, want requested page 3", results.CurrentPage)
	}
}

func TestYearOf(t *testing.T) {
	cases := map[string]int{
		"1979-05-25": 1979,
		"":           0,
		"19":         0,
		"abcd-01-01": 0,
	}
	for in, want := range cases {
		if got := yearOf(in); got != want {
			t.Errorf("yearOf(%q) = %d, want %d", in, got, want)
		}
	}
}
