// internal/languages/languages_test.go
package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencies(t *testing.T) {
	t.Run("counts repositories per language", func(t *testing.T) {
		repos := []map[string]int{
			{"Go": 100},
			{"Go": 50, "Rust": 10},
		}

		entries := Frequencies(repos)

		assert.Equal(t, []Entry{{Name: "Go", Count: 2}, {Name: "Rust", Count: 1}}, entries)
	})

	t.Run("empty input yields empty table", func(t *testing.T) {
		assert.Empty(t, Frequencies(nil))
		assert.Empty(t, Frequencies([]map[string]int{{}, {}}))
	})

	t.Run("language keys within a repo are visited alphabetically", func(t *testing.T) {
		repos := []map[string]int{
			{"TypeScript": 5, "CSS": 3, "HTML": 2},
		}

		entries := Frequencies(repos)

		assert.Equal(t, []Entry{
			{Name: "CSS", Count: 1},
			{Name: "HTML", Count: 1},
			{Name: "TypeScript", Count: 1},
		}, entries)
	})
}

func TestRank(t *testing.T) {
	t.Run("sorts descending and truncates", func(t *testing.T) {
		repos := []map[string]int{
			{"Go": 1}, {"Go": 1}, {"Go": 1},
			{"Rust": 1}, {"Rust": 1},
			{"Python": 1}, {"Ruby": 1}, {"C": 1}, {"Zig": 1}, {"Lua": 1},
		}

		top := Top(repos, 5)

		assert.Len(t, top, 5)
		assert.Equal(t, Entry{Name: "Go", Count: 3}, top[0])
		assert.Equal(t, Entry{Name: "Rust", Count: 2}, top[1])
		for i := 1; i < len(top); i++ {
			assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
		}
	})

	t.Run("ties keep first-encountered order", func(t *testing.T) {
		repos := []map[string]int{
			{"Python": 10},
			{"Elixir": 20},
		}

		top := Top(repos, 5)

		assert.Equal(t, []Entry{{Name: "Python", Count: 1}, {Name: "Elixir", Count: 1}}, top)
	})

	t.Run("returns fewer entries than n when input is small", func(t *testing.T) {
		top := Top([]map[string]int{{"Go": 1}}, 6)
		assert.Len(t, top, 1)
	})
}
