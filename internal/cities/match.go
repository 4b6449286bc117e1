package cities

import (
	"slices"
	"strings"

	"github.com/Domenick1991/railbooking/internal/domain"
)

const (
	minInputLen = 2
	maxTypoDist = 2
)

// MatchResult is the outcome of a fuzzy lookup. Suggestion is only set when
// no city matched by prefix.
type MatchResult struct {
	Candidates []string `json:"candidates"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Match resolves free-text input against the city list by name prefix, misspelling
// prefix and, failing that, the closest edit distance.
func Match(input string, list []domain.City) MatchResult {
	res := MatchResult{Candidates: []string{}}
	q := strings.ToLower(strings.TrimSpace(input))
	if len([]rune(q)) < minInputLen {
		return res
	}

	closest := ""
	closestDist := maxTypoDist + 1
	track := func(d int, name string) {
		if d <= maxTypoDist && d < closestDist {
			closestDist = d
			closest = name
		}
	}

	for _, c := range list {
		name := strings.ToLower(c.Name)
		if strings.HasPrefix(name, q) {
			res.Candidates = append(res.Candidates, c.Name)
			continue
		}
		track(Levenshtein(q, name), c.Name)
		for _, m := range c.Misspellings {
			if strings.HasPrefix(m, q) && !slices.Contains(res.Candidates, c.Name) {
				res.Candidates = append(res.Candidates, c.Name)
			}
			track(Levenshtein(q, m), c.Name)
		}
	}

	if len(res.Candidates) == 0 && closest != "" {
		res.Suggestion = closest
	}
	return res
}

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
