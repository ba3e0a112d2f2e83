// internal/languages/languages.go
package languages

import "sort"

// Entry is one row of the ranked language frequency table.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Frequencies counts, per language, how many repositories use it. The input
// is the ordered sequence of per-repository language maps produced by a sync.
// Within a single repository the map keys are visited alphabetically so the
// first-encountered order, and therefore tie-breaking in Rank, is
// deterministic.
func Frequencies(repoLanguages []map[string]int) []Entry {
	counts := make(map[string]int)
	var order []string

	for _, langs := range repoLanguages {
		names := make([]string, 0, len(langs))
		for name := range langs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, name := range order {
		entries = append(entries, Entry{Name: name, Count: counts[name]})
	}
	return entries
}

// Rank sorts entries by descending count, keeping first-encountered order
// for ties, and truncates to at most n entries.
func Rank(entries []Entry, n int) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Top is the one-step form used by callers that hold repository maps.
func Top(repoLanguages []map[string]int, n int) []Entry {
	return Rank(Frequencies(repoLanguages), n)
}
