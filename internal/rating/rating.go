package rating

import (
	"sort"
	"sync"
)

// Ratings keeps one Glicko2 rating per named contestant, e.g. a policy in a
// given seat. Each recorded game is its own rating period.
type Ratings struct {
	mu     sync.Mutex
	byName map[string]Glicko2Rating
	games  map[string]int
}

func NewRatings() *Ratings {
	return &Ratings{
		byName: make(map[string]Glicko2Rating),
		games:  make(map[string]int),
	}
}

// Get returns the current rating of name.
func (r *Ratings) Get(name string) Glicko2Rating {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(name)
}

func (r *Ratings) get(name string) Glicko2Rating {
	if rt, ok := r.byName[name]; ok {
		return rt
	}
	return DefaultRating()
}

// RecordMatch updates both contestants from one game in which a scored
// scoreA (1 win, 0.5 tie, 0 loss). Both updates use the pre-game ratings.
func (r *Ratings) RecordMatch(a, b string, scoreA float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ra, rb := r.get(a), r.get(b)
	r.byName[a] = Update(ra, []Match{{Opponent: rb, Score: scoreA}})
	r.byName[b] = Update(rb, []Match{{Opponent: ra, Score: 1 - scoreA}})
	r.games[a]++
	r.games[b]++
}

// Standing is one line of the ratings table.
type Standing struct {
	Name  string
	Elo   float64
	RD    float64
	Games int
}

// Standings lists every contestant, best first.
func (r *Ratings) Standings() []Standing {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Standing, 0, len(r.byName))
	for name, rt := range r.byName {
		out = append(out, Standing{Name: name, Elo: rt.ToElo(), RD: rt.RD(), Games: r.games[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Elo != out[j].Elo {
			return out[i].Elo > out[j].Elo
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MatchScore converts a game winner (0 tie, 1 or 2) into player 1's score.
func MatchScore(winner int) float64 {
	switch winner {
	case 1:
		return 1
	case 2:
		return 0
	}
	return 0.5
}
