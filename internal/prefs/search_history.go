package prefs

import "strings"

const (
	maxSearchHistoryItems  = 10
	searchHistorySeparator = "|"
)

// SearchHistory returns recent search keywords, newest first.
func (s *Store) SearchHistory() []string {
	stored := s.backend.Value(keySearchHistory, "")
	if stored == "" {
		return []string{}
	}
	parts := strings.Split(stored, searchHistorySeparator)
	history := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			history = append(history, p)
		}
	}
	return history
}

// AddSearch records a keyword at the front of the history, moving it there
// if already present and capping the list length. Blank keywords are ignored.
func (s *Store) AddSearch(keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	history := s.SearchHistory()
	filtered := make([]string, 0, len(history)+1)
	filtered = append(filtered, keyword)
	for _, item := range history {
		if item != keyword {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) > maxSearchHistoryItems {
		filtered = filtered[:maxSearchHistoryItems]
	}
	return s.backend.Set(keySearchHistory, strings.Join(filtered, searchHistorySeparator))
}

// RemoveSearch deletes one keyword from the history.
func (s *Store) RemoveSearch(keyword string) error {
	history := s.SearchHistory()
	filtered := make([]string, 0, len(history))
	for _, item := range history {
		if item != keyword {
			filtered = append(filtered, item)
		}
	}
	return s.backend.Set(keySearchHistory, strings.Join(filtered, searchHistorySeparator))
}

// ClearSearchHistory removes the whole history.
func (s *Store) ClearSearchHistory() error {
	return s.backend.Delete(keySearchHistory)
}
