package mask

import (
	"sort"
	"strings"
)

const digits = "0123456789"

// Alphabet is the set of characters a keystroke may contain. The zero value
// is unrestricted.
type Alphabet struct {
	set map[rune]struct{}
}

// AlphabetFor admits decimal digits plus every literal of the patterns.
// Zero patterns are skipped.
func AlphabetFor(patterns ...Pattern) Alphabet {
	set := make(map[rune]struct{}, len(digits)+8)
	for _, r := range digits {
		set[r] = struct{}{}
	}
	for _, p := range patterns {
		for _, r := range p.literals {
			set[r] = struct{}{}
		}
	}
	return Alphabet{set: set}
}

// Unrestricted returns an alphabet that admits every character.
func Unrestricted() Alphabet {
	return Alphabet{}
}

// Restricted reports whether the alphabet rejects anything at all.
func (a Alphabet) Restricted() bool {
	return a.set != nil
}

// Allows reports whether r may be typed.
func (a Alphabet) Allows(r rune) bool {
	if a.set == nil {
		return true
	}
	_, ok := a.set[r]
	return ok
}

// Filter drops the characters of s the alphabet does not admit.
func (a Alphabet) Filter(s string) string {
	if a.set == nil {
		return s
	}
	return strings.Map(func(r rune) rune {
		if a.Allows(r) {
			return r
		}
		return -1
	}, s)
}

// String lists the admitted characters in ascending order; empty when
// unrestricted.
func (a Alphabet) String() string {
	if a.set == nil {
		return ""
	}
	runes := make([]rune, 0, len(a.set))
	for r := range a.set {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}
