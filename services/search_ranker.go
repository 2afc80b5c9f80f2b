package services

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

const (
	// MinQueryLength is the raw-query length below which no search
	// runs at all. The caller gets OutcomeTooShort, which it must be
	// able to render differently from an empty result set.
	MinQueryLength = 2

	// MaxResults caps the ranked list.
	MaxResults = 30
)

type SearchOutcome string

const (
	OutcomeTooShort  SearchOutcome = "type_more"
	OutcomeNoMatches SearchOutcome = "no_matches"
	OutcomeResults   SearchOutcome = "results"
)

type SearchResult struct {
	Outcome SearchOutcome     `json:"outcome"`
	Items   []models.FoodItem `json:"items"`
}

// SearchRanker turns free-text picker input into a ranked catalog
// result list. It is pure: debouncing the keystroke stream (300 ms
// recommended, utils.NewDebouncer) is the caller's contract.
type SearchRanker struct {
	collator *collate.Collator
}

func NewSearchRanker() *SearchRanker {
	// Catalog names are Portuguese; loose collation ignores case and
	// accent width for the alphabetical tie-break.
	return &SearchRanker{collator: collate.New(language.Portuguese, collate.Loose)}
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases, strips accents, treats commas as token
// separators and collapses whitespace.
func NormalizeName(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, ",", " ")
	return strings.Join(strings.Fields(out), " ")
}

type rankedItem struct {
	item models.FoodItem
	// relevant is the normalized name the match happened on; secondary
	// (simplified-name) matches order ahead of primary-only ones.
	relevant  string
	secondary bool
}

// Rank filters and orders candidates for a query. Every query token
// must be a substring of the candidate's normalized primary name, or
// of its secondary (simplified) name when it has one — AND semantics.
func (r *SearchRanker) Rank(query string, candidates []models.FoodItem) SearchResult {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		return SearchResult{Outcome: OutcomeTooShort}
	}
	tokens := strings.Fields(NormalizeName(query))
	if len(tokens) == 0 {
		return SearchResult{Outcome: OutcomeTooShort}
	}

	// Two lookups share one candidate list here; dedupe by identity
	// with the secondary-name match winning.
	byID := make(map[string]int)
	var matched []rankedItem
	for _, c := range candidates {
		primary := NormalizeName(c.Name)
		secondary := ""
		if c.SimplifiedName != "" {
			secondary = NormalizeName(c.SimplifiedName)
		}

		ri := rankedItem{item: c}
		switch {
		case secondary != "" && containsAll(secondary, tokens):
			ri.relevant, ri.secondary = secondary, true
		case containsAll(primary, tokens):
			ri.relevant = primary
		default:
			continue
		}

		if at, seen := byID[c.ID]; seen {
			if ri.secondary && !matched[at].secondary {
				matched[at] = ri
			}
			continue
		}
		byID[c.ID] = len(matched)
		matched = append(matched, ri)
	}

	if len(matched) == 0 {
		return SearchResult{Outcome: OutcomeNoMatches, Items: []models.FoodItem{}}
	}

	first := tokens[0]
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.secondary != b.secondary {
			return a.secondary
		}
		ap := strings.HasPrefix(a.relevant, first)
		bp := strings.HasPrefix(b.relevant, first)
		if ap != bp {
			return ap
		}
		return r.collator.CompareString(a.item.Name, b.item.Name) < 0
	})

	if len(matched) > MaxResults {
		matched = matched[:MaxResults]
	}
	items := make([]models.FoodItem, 0, len(matched))
	for _, m := range matched {
		items = append(items, m.item)
	}
	return SearchResult{Outcome: OutcomeResults, Items: items}
}

func containsAll(name string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(name, t) {
			return false
		}
	}
	return true
}
