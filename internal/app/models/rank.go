package models

// Rank is a named reputation tier derived purely from PC points.
type Rank string

const (
	RankIniciante    Rank = "Iniciante"
	RankAprendiz     Rank = "Aprendiz"
	RankContribuidor Rank = "Contribuidor"
	RankEspecialista Rank = "Especialista"
	RankMestre       Rank = "Mestre"
	RankGuru         Rank = "Guru"
)

// rankThreshold pairs a rank with the cumulative PC points that unlock it.
type rankThreshold struct {
	Rank  Rank
	MinPC int
}

// rankTable is the single canonical threshold table, ascending. Every place
// that derives a rank goes through RankFor so the table cannot drift.
var rankTable = []rankThreshold{
	{RankIniciante, 0},
	{RankAprendiz, 100},
	{RankContribuidor, 500},
	{RankEspecialista, 1500},
	{RankMestre, 5000},
	{RankGuru, 15000},
}

// RankFor returns the rank implied by a PC point balance.
func RankFor(pcPoints int) Rank {
	if pcPoints < 0 {
		pcPoints = 0
	}
	rank := rankTable[0].Rank
	for _, entry := range rankTable {
		if pcPoints >= entry.MinPC {
			rank = entry.Rank
		} else {
			break
		}
	}
	return rank
}

// RankIndex returns the ordinal of a rank in the ascending table, or -1 for
// an unknown rank name.
func RankIndex(r Rank) int {
	for i, entry := range rankTable {
		if entry.Rank == r {
			return i
		}
	}
	return -1
}

// RankAtLeast reports whether have is the same tier as want or a higher one.
func RankAtLeast(have, want Rank) bool {
	hi, wi := RankIndex(have), RankIndex(want)
	return hi >= 0 && wi >= 0 && hi >= wi
}
