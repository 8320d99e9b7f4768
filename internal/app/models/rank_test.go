package models

import "testing"

func TestRankFor(t *testing.T) {
	tests := []struct {
		name     string
		pcPoints int
		want     Rank
	}{
		{"zero", 0, RankIniciante},
		{"negative clamps to floor", -50, RankIniciante},
		{"just below first threshold", 99, RankIniciante},
		{"first threshold", 100, RankAprendiz},
		{"mid tier", 499, RankAprendiz},
		{"contributor threshold", 500, RankContribuidor},
		{"specialist threshold", 1500, RankEspecialista},
		{"master threshold", 5000, RankMestre},
		{"guru threshold", 15000, RankGuru},
		{"well past the top", 1000000, RankGuru},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RankFor(tt.pcPoints); got != tt.want {
				t.Errorf("RankFor(%d) = %q, want %q", tt.pcPoints, got, tt.want)
			}
		})
	}
}

func TestRankIndex(t *testing.T) {
	if got := RankIndex(RankIniciante); got != 0 {
		t.Errorf("RankIndex(Iniciante) = %d, want 0", got)
	}
	if got := RankIndex(RankGuru); got != 5 {
		t.Errorf("RankIndex(Guru) = %d, want 5", got)
	}
	if got := RankIndex(Rank("Imperador")); got != -1 {
		t.Errorf("RankIndex(unknown) = %d, want -1", got)
	}
}

func TestRankAtLeast(t *testing.T) {
	tests := []struct {
		name string
		have Rank
		want Rank
		ok   bool
	}{
		{"same tier", RankContribuidor, RankContribuidor, true},
		{"higher tier", RankGuru, RankContribuidor, true},
		{"lower tier", RankAprendiz, RankContribuidor, false},
		{"unknown have", Rank("Imperador"), RankIniciante, false},
		{"unknown want", RankGuru, Rank("Imperador"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RankAtLeast(tt.have, tt.want); got != tt.ok {
				t.Errorf("RankAtLeast(%q, %q) = %v, want %v", tt.have, tt.want, got, tt.ok)
			}
		})
	}
}
