package domain

import "strings"

// MatchesRosterName reports whether a self-registered display name plausibly
// refers to a roster entry. Three rules, checked in order:
//
//  1. exact match after normalisation
//  2. substring containment in either direction ("Karlsson" / "A. Karlsson")
//  3. first and last token match, in either order, so "Anna Karlsson"
//     matches both "Anna K. Karlsson" and "Karlsson, Anna"
//
// Matching is deliberately a pure function over two strings so its rules can
// be tested without a store.
func MatchesRosterName(displayName, rosterName string) bool {
	d := normalizeName(displayName)
	r := normalizeName(rosterName)
	if d == "" || r == "" {
		return false
	}

	if d == r {
		return true
	}

	if strings.Contains(d, r) || strings.Contains(r, d) {
		return true
	}

	dt := strings.Fields(d)
	rt := strings.Fields(r)
	if len(dt) < 2 || len(rt) < 2 {
		return false
	}

	dFirst, dLast := dt[0], dt[len(dt)-1]
	rFirst, rLast := rt[0], rt[len(rt)-1]

	return (dFirst == rFirst && dLast == rLast) ||
		(dFirst == rLast && dLast == rFirst)
}

// normalizeName lowercases, strips punctuation that name lists commonly
// carry, and collapses whitespace.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', ';':
			return ' '
		}
		return r
	}, name)
	return strings.Join(strings.Fields(name), " ")
}
