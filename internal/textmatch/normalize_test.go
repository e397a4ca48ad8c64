package textmatch

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Counter_Attack", "counter attack"},
		{"  counter-attack ", "counter attack"},
		{"ARTILLERY   Battalion", "artillery battalion"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"artillery battalion", "artillery battalion", 1.0},
		{"artillery battalion", "artillery brigade", 1.0 / 3.0},
		{"drone", "tank", 0.0},
		{"", "anything", 0.0},
	}
	for _, tt := range tests {
		if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Jaccard(%q, %q) = %.4f, want %.4f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"Defense", "defense", 1.0},
		{"artillery barrage", "artillery", 0.9}, // containment
		{"recon drone", "drone recon team", 2.0 / 3.0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %.4f, want %.4f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTable_FuzzyLookup(t *testing.T) {
	table := NewTable(map[string]map[string]float64{
		"artillery": {"defense": 0.85, "counter_attack": 0.8},
	})

	tests := []struct {
		name   string
		row    string
		col    string
		want   float64
		wantOK bool
	}{
		{"exact keys", "artillery", "defense", 0.85, true},
		{"separator variants", "Artillery", "Counter-Attack", 0.8, true},
		{"row containment", "artillery barrage", "defense", 0.85, true},
		{"unknown row", "submarine", "defense", 0, false},
		{"unknown column", "artillery", "retreat", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Lookup(tt.row, tt.col)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q, %q) ok = %v, want %v", tt.row, tt.col, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Lookup(%q, %q) = %.3f, want %.3f", tt.row, tt.col, got, tt.want)
			}
		})
	}
}
