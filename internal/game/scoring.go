package game

import "github.com/jason-s-yu/scopa/internal/models"

// primieraValues maps rank to its primiera worth. Index 0 is unused.
var primieraValues = [models.NumRanks + 1]int{
	models.Ace:   16,
	models.Two:   12,
	models.Three: 13,
	models.Four:  14,
	models.Five:  15,
	models.Six:   18,
	models.Seven: 21,
	models.Jack:  10,
	models.Queen: 10,
	models.King:  10,
}

// PrimieraValue returns the primiera worth of a rank.
func PrimieraValue(r models.Rank) int { return primieraValues[r] }

// Primiera is the best primiera card per suit, summed, along with how many
// suits contributed.
type Primiera struct {
	Sum   int `json:"sum"`
	Suits int `json:"suits"`
}

// ComputePrimiera evaluates the primiera of a set of captured cards.
func ComputePrimiera(cards Cards) Primiera {
	var best [models.NumSuits]int
	for _, c := range cards {
		if v := PrimieraValue(c.Rank); v > best[c.Suit] {
			best[c.Suit] = v
		}
	}
	var p Primiera
	for _, v := range best {
		if v > 0 {
			p.Sum += v
			p.Suits++
		}
	}
	return p
}

// ComparePrimiera returns 1 if a wins the primiera point, -1 if b wins and
// 0 if neither does. Full suit coverage beats partial coverage regardless of
// sum; otherwise more suits wins, then the higher sum.
func ComparePrimiera(a, b Primiera) int {
	switch {
	case a.Suits == models.NumSuits && b.Suits < models.NumSuits:
		return 1
	case b.Suits == models.NumSuits && a.Suits < models.NumSuits:
		return -1
	case a.Suits != b.Suits:
		return sign(a.Suits - b.Suits)
	default:
		return sign(a.Sum - b.Sum)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Breakdown lists how a player's final score was made up.
type Breakdown struct {
	MostCards    bool     `json:"most_cards"`
	SetteBello   bool     `json:"sette_bello"`
	MostDiamonds bool     `json:"most_diamonds"`
	Primiera     bool     `json:"primiera"`
	Scopas       int      `json:"scopas"`
	PrimieraRaw  Primiera `json:"primiera_raw"`
	Total        int      `json:"total"`
}

// Outcome is the result of a finished round. Winner is 1 or 2, or 0 for a
// tie.
type Outcome struct {
	Scores    [NumPlayers]int       `json:"scores"`
	Breakdown [NumPlayers]Breakdown `json:"breakdown"`
	Winner    int                   `json:"winner"`
}

// IsTie reports whether both players finished level.
func (o Outcome) IsTie() bool { return o.Winner == 0 }

// Score computes the end-of-round result for two piles. Each categorical
// point goes to the strictly greater side only.
func Score(p1, p2 Pile) Outcome {
	var o Outcome
	piles := [NumPlayers]Pile{p1, p2}

	cards := sign(p1.Len() - p2.Len())
	diamonds := sign(p1.Cards.CountSuit(models.Diamonds) - p2.Cards.CountSuit(models.Diamonds))
	prim := [NumPlayers]Primiera{ComputePrimiera(p1.Cards), ComputePrimiera(p2.Cards)}
	primiera := ComparePrimiera(prim[0], prim[1])

	for i := range piles {
		// +1 favours player 1, -1 favours player 2.
		want := 1 - 2*i
		b := Breakdown{
			MostCards:    cards == want,
			SetteBello:   piles[i].HasSetteBello(),
			MostDiamonds: diamonds == want,
			Primiera:     primiera == want,
			Scopas:       piles[i].Scopas,
			PrimieraRaw:  prim[i],
		}
		b.Total = b.Scopas
		for _, point := range []bool{b.MostCards, b.SetteBello, b.MostDiamonds, b.Primiera} {
			if point {
				b.Total++
			}
		}
		o.Breakdown[i] = b
		o.Scores[i] = b.Total
	}

	switch sign(o.Scores[0] - o.Scores[1]) {
	case 1:
		o.Winner = 1
	case -1:
		o.Winner = 2
	}
	return o
}
