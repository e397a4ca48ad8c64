package textmatch

import (
	"strings"
)

// Normalize lowercases a term and collapses separators so that keys like
// "Counter_Attack", "counter-attack" and "counter attack" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits a normalized term into keyword tokens
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// TokenSet returns the set of keyword tokens of a term
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(s) {
		set[tok] = struct{}{}
	}
	return set
}

// Jaccard computes token-set overlap between two terms in [0,1]
func Jaccard(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Similarity scores how alike two terms are: exact normalized match is 1.0,
// substring containment 0.9, otherwise token-set overlap.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.9
	}
	return Jaccard(na, nb)
}

// Contains reports whether the normalized haystack contains the normalized needle
func Contains(haystack, needle string) bool {
	h, n := Normalize(haystack), Normalize(needle)
	if h == "" || n == "" {
		return false
	}
	return strings.Contains(h, n)
}
