package movies

import (
	"context"
	"errors"
	"testing"

	"kinoteka/models"
)

type stubSearcher struct {
	results *models.SearchResults
	err     error
	calls   int
}

func (s *stubSearcher) Search(ctx context.Context, query string, mediaType models.MediaType, page int) (*models.SearchResults, error) {
	s.calls++
	return s.results, s.err
}

type stubCache struct {
	movies    map[int64]*models.Movie
	insertErr error
	inserted  []int64
}

func (s *stubCache) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	return s.movies[id], nil
}

func (s *stubCache) Insert(ctx context.Context, m *models.Movie) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if s.movies == nil {
		s.movies = make(map[int64]*models.Movie)
	}
	s.movies[m.ID] = m
	s.inserted = append(s.inserted, m.ID)
	return nil
}

func (s *stubCache) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := s.movies[id]
	return ok, nil
}

func TestSearchPassesThroughResults(t *testing.T) {
	want := &models.SearchResults{Query: "alien", Items: []models.Movie{{ID: 1}}, TotalResults: 1}
	svc := NewService(&stubSearcher{results: want}, &stubCache{})

	got := svc.Search(context.Background(), "alien", models.MediaTypeMovie, 1)
	if got != want {
		t.Errorf("Search() = %+v, want provider results", got)
	}
}

func TestSearchBlankQuerySkipsProvider(t *testing.T) {
	searcher := &stubSearcher{}
	svc := NewService(searcher, &stubCache{})

	got := svc.Search(context.Background(), "   ", models.MediaTypeMovie, 1)
	if searcher.calls != 0 {
		t.Error("blank query reached the provider")
	}
	if len(got.Items) != 0 || got.CurrentPage != 1 {
		t.Errorf("Search(blank) = %+v, want empty page 1", got)
	}
}

func TestSearchProviderFailureYieldsEmptyPage(t *testing.T) {
	svc := NewService(&stubSearcher{err: errors.New("tmdb down")}, &stubCache{})

	got := svc.Search(context.Background(), "alien", models.MediaTypeTV, 3)
	if got == nil || len(got.Items) != 0 {
		t.Fatalf("Search() on failure = %+v, want empty page", got)
	}
	if got.Query != "alien" || got.MediaType != models.MediaTypeTV || got.CurrentPage != 3 {
		t.Errorf("empty page lost request shape: %+v", got)
	}
}

func TestSaveToLibrarySkipsKnownMovies(t *testing.T) {
	cache := &stubCache{movies: map[int64]*models.Movie{42: {ID: 42}}}
	svc := NewService(&stubSearcher{}, cache)

	if err := svc.SaveToLibrary(context.Background(), &models.Movie{ID: 42}); err != nil {
		t.Fatalf("SaveToLibrary() error = %v", err)
	}
	if len(cache.inserted) != 0 {
		t.Errorf("known movie was re-inserted: %v", cache.inserted)
	}
}

func TestSaveToLibraryInsertsNewMovies(t *testing.T) {
	cache := &stubCache{}
	svc := NewService(&stubSearcher{}, cache)

	if err := svc.SaveToLibrary(context.Background(), &models.Movie{ID: 42, Title: "Alien"}); err != nil {
		t.Fatalf("SaveToLibrary() error = %v", err)
	}
	if len(cache.inserted) != 1 || cache.inserted[0] != 42 {
		t.Errorf("inserted = %v, want [42]", cache.inserted)
	}
}

func TestSaveToLibraryPropagatesInsertFailure(t *testing.T) {
	cache := &stubCache{insertErr: errors.New("disk full")}
	svc := NewService(&stubSearcher{}, cache)

	if err := svc.SaveToLibrary(context.Background(), &models.Movie{ID: 42}); err == nil {
		t.Fatal("SaveToLibrary() error = nil, want failure")
	}
}

// lostWriteCache reports a successful insert without storing anything.
type lostWriteCache struct{ stubCache }

func (c *lostWriteCache) Insert(ctx context.Context, m *models.Movie) error { return nil }

func TestSaveToLibraryDetectsLostWrite(t *testing.T) {
	svc := NewService(&stubSearcher{}, &lostWriteCache{})

	if err := svc.SaveToLibrary(context.Background(), &models.Movie{ID: 42}); err == nil {
		t.Fatal("SaveToLibrary() error = nil, want lost-write detection")
	}
}

func TestDetailsUnknownMovieIsNil(t *testing.T) {
	svc := NewService(&stubSearcher{}, &stubCache{})

	if got := svc.Details(context.Background(), 99); got != nil {
		t.Errorf("Details(99) = %+v, want nil", got)
	}
}
