package game

import (
	"testing"

	"github.com/jason-s-yu/scopa/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPrimieraTable(t *testing.T) {
	tests := []struct {
		rank models.Rank
		want int
	}{
		{models.Seven, 21},
		{models.Six, 18},
		{models.Ace, 16},
		{models.Five, 15},
		{models.Four, 14},
		{models.Three, 13},
		{models.Two, 12},
		{models.Jack, 10},
		{models.Queen, 10},
		{models.King, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PrimieraValue(tt.rank), "rank %s", tt.rank)
	}
}

func TestComputePrimieraBestPerSuit(t *testing.T) {
	p := ComputePrimiera(cards("7d", "Ad", "6h", "Kh"))
	assert.Equal(t, Primiera{Sum: 21 + 18, Suits: 2}, p)

	assert.Equal(t, Primiera{}, ComputePrimiera(nil))
}

// TestComparePrimieraSuitCoverage: four low suits beat three high suits.
func TestComparePrimieraSuitCoverage(t *testing.T) {
	allSuits := ComputePrimiera(cards("Jd", "Jh", "Js", "Jc"))
	threeSuits := ComputePrimiera(cards("7d", "7h", "7s"))
	assert.Less(t, allSuits.Sum, threeSuits.Sum)

	assert.Equal(t, 1, ComparePrimiera(allSuits, threeSuits))
	assert.Equal(t, -1, ComparePrimiera(threeSuits, allSuits))
}

func TestComparePrimieraFallbacks(t *testing.T) {
	twoSuits := ComputePrimiera(cards("Jd", "Jh"))
	oneSuit := ComputePrimiera(cards("7d"))
	assert.Equal(t, 1, ComparePrimiera(twoSuits, oneSuit), "more suits wins over a higher single card")

	high := ComputePrimiera(cards("7d", "6h"))
	low := ComputePrimiera(cards("Ad", "Kh"))
	assert.Equal(t, 1, ComparePrimiera(high, low))
	assert.Equal(t, -1, ComparePrimiera(low, high))

	same := ComputePrimiera(cards("7s", "6c"))
	assert.Equal(t, 0, ComparePrimiera(high, same))
}

func TestScoreAllCategories(t *testing.T) {
	p1 := Pile{Cards: cards("7d", "6d", "5h"), Scopas: 1}
	p2 := Pile{Cards: cards("Kc", "Qc")}

	o := Score(p1, p2)

	assert.Equal(t, Breakdown{
		MostCards:    true,
		SetteBello:   true,
		MostDiamonds: true,
		Primiera:     true,
		Scopas:       1,
		PrimieraRaw:  Primiera{Sum: 21 + 15, Suits: 2},
		Total:        5,
	}, o.Breakdown[0])
	assert.Equal(t, 0, o.Scores[1])
	assert.Equal(t, [NumPlayers]int{5, 0}, o.Scores)
	assert.Equal(t, 1, o.Winner)
}

func TestScoreTiedCategoriesGoToNobody(t *testing.T) {
	p1 := Pile{Cards: cards("Ad", "2h")}
	p2 := Pile{Cards: cards("Ah", "2d")}

	o := Score(p1, p2)

	for i := range o.Breakdown {
		assert.False(t, o.Breakdown[i].MostCards)
		assert.False(t, o.Breakdown[i].MostDiamonds)
		assert.False(t, o.Breakdown[i].Primiera)
		assert.False(t, o.Breakdown[i].SetteBello)
	}
	assert.True(t, o.IsTie())
	assert.Equal(t, [NumPlayers]int{0, 0}, o.Scores)
}

func TestScoreScopasDecideWinner(t *testing.T) {
	p1 := Pile{Cards: cards("Ad", "2h"), Scopas: 0}
	p2 := Pile{Cards: cards("Ah", "2d"), Scopas: 2}

	o := Score(p1, p2)

	assert.Equal(t, 2, o.Winner)
	assert.Equal(t, 2, o.Scores[1])
}
