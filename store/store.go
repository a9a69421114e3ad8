package store

import (
	"sync"
	"time"

	"newslens/config"
	"newslens/types"
)

// Store holds per-category raw fetch state and analysis cache entries with
// thread-safe access. It is created once in main and injected into the
// poller and the request handlers; there are no package-level globals.
type Store struct {
	mu sync.RWMutex

	categories map[string]*types.CategoryState
	analyses   map[string]*types.AnalysisEntry

	// analyzing tracks which categories have an analysis run in flight.
	// Guarded by mu, so at most one goroutine can hold a category's slot.
	analyzing map[string]bool

	startedAt time.Time
}

// New creates a Store with an empty loading state for each category.
func New(categories []string) *Store {
	s := &Store{
		categories: make(map[string]*types.CategoryState, len(categories)),
		analyses:   make(map[string]*types.AnalysisEntry, len(categories)),
		analyzing:  make(map[string]bool, len(categories)),
		startedAt:  time.Now(),
	}
	for _, c := range categories {
		s.categories[c] = &types.CategoryState{IsLoading: true}
	}
	return s
}

// CategorySnapshot returns a copy of the category's raw state. The article
// slice is copied so callers can iterate without holding the lock.
func (s *Store) CategorySnapshot(category string) (types.CategoryState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.categories[category]
	if !ok {
		return types.CategoryState{}, false
	}
	snapshot := *state
	snapshot.Articles = append([]*types.Article{}, state.Articles...)
	return snapshot, true
}

// SetArticles stores a fetched article set for a category and clears the
// loading and error flags.
func (s *Store) SetArticles(category string, articles []*types.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.categories[category]
	if !ok {
		return
	}
	state.Articles = articles
	state.IsLoading = false
	state.LastError = ""
	state.LastFetched = time.Now()
}

// SetFetchError records a category-level fetch failure. Retained articles
// are left untouched.
func (s *Store) SetFetchError(category string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.categories[category]
	if !ok {
		return
	}
	state.IsLoading = false
	state.LastError = err.Error()
	state.LastFetched = time.Now()
}

// InInitialLoadWindow reports whether the process is still inside the
// startup window during which an unloaded category answers "loading".
func (s *Store) InInitialLoadWindow() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startedAt) < config.InitialLoadWindow
}

// Analysis returns the category's analysis entry and its age, if present.
func (s *Store) Analysis(category string) (*types.AnalysisEntry, time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.analyses[category]
	if !ok || entry.Data == nil {
		return nil, 0, false
	}
	return entry, time.Since(entry.Timestamp), true
}

// SetAnalysis stores a completed analysis with a fresh timestamp.
func (s *Store) SetAnalysis(category string, data *types.AnalysisData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[category] = &types.AnalysisEntry{Data: data, Timestamp: time.Now()}
}

// TryBeginAnalysis claims the category's analysis slot. It returns false if
// another run is already in flight; at most one caller per category can hold
// the slot at a time.
func (s *Store) TryBeginAnalysis(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.analyzing[category] {
		return false
	}
	s.analyzing[category] = true
	return true
}

// EndAnalysis releases the category's analysis slot. Callers must defer this
// immediately after a successful TryBeginAnalysis so the slot is released on
// every path, including panics in the annotation step.
func (s *Store) EndAnalysis(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.analyzing, category)
}

// IsAnalyzing reports whether an analysis run is in flight for the category.
func (s *Store) IsAnalyzing(category string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzing[category]
}

// Overview builds the lightweight per-category listing. No analysis is
// triggered.
func (s *Store) Overview(categories []string) []types.CategoryOverview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.CategoryOverview, 0, len(categories))
	for _, c := range categories {
		state, ok := s.categories[c]
		if !ok {
			continue
		}
		ov := types.CategoryOverview{
			Category:     c,
			ArticleCount: len(state.Articles),
			IsLoading:    state.IsLoading,
			LastError:    state.LastError,
			LastFetched:  state.LastFetched,
		}
		if entry, ok := s.analyses[c]; ok && entry.Data != nil {
			ov.Analyzed = true
			ov.AnalysisAge = int64(time.Since(entry.Timestamp).Seconds())
		}
		out = append(out, ov)
	}
	return out
}
