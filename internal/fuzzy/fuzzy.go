// Package fuzzy implements the edit-distance lookup behind "did you mean"
// hints for unknown options and commands.
package fuzzy

// DefaultMaxDistance is the largest distance still offered as a suggestion.
const DefaultMaxDistance = 2

// Candidate is one spelling the user may have meant. Key is compared against
// the input; Label is what gets shown (for example Key "file-path" with Label
// "--file-path").
type Candidate struct {
	Key   string
	Label string
}

// Match is the outcome of a nearest-candidate search.
type Match struct {
	Candidate
	Distance int
}

// Matcher finds the nearest candidate within maxDistance edits.
type Matcher struct {
	maxDistance int
}

// NewMatcher returns a matcher that accepts matches at most maxDistance away.
func NewMatcher(maxDistance int) *Matcher {
	if maxDistance < 0 {
		maxDistance = 0
	}
	return &Matcher{maxDistance: maxDistance}
}

// MaxDistance reports the acceptance threshold.
func (m *Matcher) MaxDistance() int { return m.maxDistance }

// Nearest returns the candidate with the smallest distance to input. Ties keep
// the earliest candidate. ok is false when candidates is empty.
func (m *Matcher) Nearest(input string, candidates []Candidate) (best Match, ok bool) {
	for i, c := range candidates {
		d := Distance(input, c.Key)
		if i == 0 || d < best.Distance {
			best = Match{Candidate: c, Distance: d}
			ok = true
		}
	}
	return best, ok
}

// Suggest returns the label of the nearest candidate, or "" when nothing lies
// within the threshold.
func (m *Matcher) Suggest(input string, candidates []Candidate) string {
	best, ok := m.Nearest(input, candidates)
	if !ok || best.Distance > m.maxDistance {
		return ""
	}
	return best.Label
}

// Distance is the unit-cost Levenshtein distance between a and b, counted in
// runes.
func Distance(a, b string) int {
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

var defaultMatcher = NewMatcher(DefaultMaxDistance)

// Suggest runs the default matcher.
func Suggest(input string, candidates []Candidate) string {
	return defaultMatcher.Suggest(input, candidates)
}
