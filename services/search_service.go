package services

import (
	"log"
	"strings"
	"unicode/utf8"
)

// candidateFetchLimit is how many raw candidates we pull from the
// catalog before ranking trims to MaxResults.
const candidateFetchLimit = 100

// SearchService wires the catalog's raw substring search into the
// ranker. Search is best-effort: a failed catalog lookup degrades to
// an empty result set with a logged error instead of propagating.
type SearchService struct {
	catalog Catalog
	ranker  *SearchRanker
}

func NewSearchService(catalog Catalog) *SearchService {
	return &SearchService{catalog: catalog, ranker: NewSearchRanker()}
}

func (s *SearchService) SearchFoods(query string) SearchResult {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		return SearchResult{Outcome: OutcomeTooShort}
	}
	candidates, err := s.catalog.FindByNameSubstring(query, candidateFetchLimit)
	if err != nil {
		log.Printf("food search %q: %v", query, err)
		candidates = nil
	}
	return s.ranker.Rank(query, candidates)
}
