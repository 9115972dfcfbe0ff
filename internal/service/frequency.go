package service

import (
	"strings"

	"wordlens/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FrequencyCounter turns text into word counts, dropping stopwords.
type FrequencyCounter struct {
	builtin  mapset.Set[string]
	caseMode domain.StopwordCaseMode
}

// NewFrequencyCounter creates a counter. extraBuiltin words are added to the
// built-in stopword list for every request and are always lowercased.
func NewFrequencyCounter(caseMode domain.StopwordCaseMode, extraBuiltin []string) *FrequencyCounter {
	if caseMode != domain.StopwordCasePreserve {
		caseMode = domain.StopwordCaseFold
	}

	builtin := BuiltinStopwords()
	lower := cases.Lower(language.Und)
	for _, w := range extraBuiltin {
		if w = strings.TrimSpace(w); w != "" {
			builtin.Add(lower.String(w))
		}
	}

	return &FrequencyCounter{
		builtin:  builtin,
		caseMode: caseMode,
	}
}

// CaseMode returns how extra stopwords are matched
func (c *FrequencyCounter) CaseMode() domain.StopwordCaseMode {
	return c.caseMode
}

// IsBuiltinStopword reports whether word is in the built-in list
func (c *FrequencyCounter) IsBuiltinStopword(word string) bool {
	return c.builtin.Contains(word)
}

// StopwordSet returns the union of the built-in set and the whitespace
// separated extra words.
func (c *FrequencyCounter) StopwordSet(extra string) mapset.Set[string] {
	words := strings.Fields(extra)
	if c.caseMode == domain.StopwordCaseFold {
		lower := cases.Lower(language.Und)
		for i, w := range words {
			words[i] = lower.String(w)
		}
	}
	return c.builtin.Union(mapset.NewSet[string](words...))
}

// Count splits text on whitespace, lowercases every token and counts the
// tokens that are not stopwords. Punctuation is kept as part of the token.
func (c *FrequencyCounter) Count(text, extraStopwords string) (*domain.FrequencyMap, domain.TokenStats) {
	stopwords := c.StopwordSet(extraStopwords)
	// A Caser is stateful, so one per call.
	lower := cases.Lower(language.Und)

	builder := domain.NewFrequencyBuilder()
	var stats domain.TokenStats
	for _, token := range strings.Fields(text) {
		stats.TotalTokens++
		word := lower.String(token)
		if stopwords.Contains(word) {
			stats.FilteredTokens++
			continue
		}
		builder.Add(word)
	}

	return builder.Build(), stats
}
