package domain

import (
	"encoding/json"
	"sort"
)

// WordCount is a single entry of a word ranking.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TokenStats describes how a text was tokenized.
type TokenStats struct {
	TotalTokens    int `json:"total_tokens"`
	FilteredTokens int `json:"filtered_tokens"`
}

// CountedTokens is the number of tokens that ended up in the frequency map.
func (s TokenStats) CountedTokens() int {
	return s.TotalTokens - s.FilteredTokens
}

// FrequencyMap maps words to their occurrence count. It remembers the order in
// which words were first seen so rankings are deterministic. A FrequencyMap is
// read-only once built and safe to share between goroutines.
type FrequencyMap struct {
	counts map[string]int
	order  []string
}

// FrequencyBuilder accumulates counts for a new FrequencyMap.
type FrequencyBuilder struct {
	counts map[string]int
	order  []string
}

// NewFrequencyBuilder creates an empty builder
func NewFrequencyBuilder() *FrequencyBuilder {
	return &FrequencyBuilder{counts: make(map[string]int)}
}

// Add records one occurrence of word
func (b *FrequencyBuilder) Add(word string) {
	b.AddN(word, 1)
}

// AddN records n occurrences of word. Non-positive n is ignored.
func (b *FrequencyBuilder) AddN(word string, n int) {
	if n <= 0 {
		return
	}
	if _, seen := b.counts[word]; !seen {
		b.order = append(b.order, word)
	}
	b.counts[word] += n
}

// Build hands the accumulated counts over to a FrequencyMap. The builder is
// reset and can be reused.
func (b *FrequencyBuilder) Build() *FrequencyMap {
	m := &FrequencyMap{counts: b.counts, order: b.order}
	b.counts = make(map[string]int)
	b.order = nil
	return m
}

// FrequencyMapFromEntries builds a map from ranked or unranked entries.
// Duplicate words are summed.
func FrequencyMapFromEntries(entries []WordCount) *FrequencyMap {
	b := NewFrequencyBuilder()
	for _, e := range entries {
		b.AddN(e.Word, e.Count)
	}
	return b.Build()
}

// Count returns the count for word, zero when absent
func (f *FrequencyMap) Count(word string) int {
	if f == nil {
		return 0
	}
	return f.counts[word]
}

// Contains reports whether word has been counted
func (f *FrequencyMap) Contains(word string) bool {
	return f.Count(word) > 0
}

// Len returns the number of distinct words
func (f *FrequencyMap) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Total returns the sum of all counts
func (f *FrequencyMap) Total() int {
	if f == nil {
		return 0
	}
	total := 0
	for _, c := range f.counts {
		total += c
	}
	return total
}

// Entries returns every word with its count in first-seen order.
func (f *FrequencyMap) Entries() []WordCount {
	if f == nil {
		return []WordCount{}
	}
	entries := make([]WordCount, 0, len(f.order))
	for _, w := range f.order {
		entries = append(entries, WordCount{Word: w, Count: f.counts[w]})
	}
	return entries
}

// MostCommon returns up to n entries ordered by descending count. Words with
// equal counts keep their first-seen order. n <= 0 returns every entry.
func (f *FrequencyMap) MostCommon(n int) []WordCount {
	entries := f.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// MarshalJSON encodes the map as a ranked list of entries.
func (f *FrequencyMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.MostCommon(0))
}
