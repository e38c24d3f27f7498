package mask

import (
	"errors"
	"fmt"
	"unicode"
)

// Placeholder marks a pattern slot that consumes one input character.
const Placeholder = '#'

var (
	// ErrEmptyPattern is returned when a pattern has no placeholder slots.
	ErrEmptyPattern = errors.New("mask: pattern has no placeholders")
	// ErrAmbiguousLiteral is returned when a literal is a letter or digit and
	// would therefore be indistinguishable from user input when unmasking.
	ErrAmbiguousLiteral = errors.New("mask: literal collides with input characters")
)

// Pattern is a parsed mask template. The zero value is an empty pattern that
// masks nothing.
type Pattern struct {
	raw          string
	slots        []rune
	placeholders int
	prefix       int
	literals     []rune
}

// Parse validates a mask string and returns its Pattern.
func Parse(raw string) (Pattern, error) {
	slots := []rune(raw)
	p := Pattern{raw: raw, slots: slots, prefix: -1}
	seen := make(map[rune]struct{})

	for idx, r := range slots {
		if r == Placeholder {
			p.placeholders++
			if p.prefix < 0 {
				p.prefix = idx
			}
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return Pattern{}, fmt.Errorf("%w: %q in %q", ErrAmbiguousLiteral, r, raw)
		}
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			p.literals = append(p.literals, r)
		}
	}

	if p.placeholders == 0 {
		return Pattern{}, fmt.Errorf("%w: %q", ErrEmptyPattern, raw)
	}
	return p, nil
}

// MustParse is like Parse but panics on error. Intended for package-level
// pattern constants.
func MustParse(raw string) Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the mask string the pattern was parsed from.
func (p Pattern) String() string {
	return p.raw
}

// IsZero reports whether the pattern is the empty zero value.
func (p Pattern) IsZero() bool {
	return len(p.slots) == 0
}

// Len is the total number of slots, literals included. It equals the rune
// length of a fully rendered display value.
func (p Pattern) Len() int {
	return len(p.slots)
}

// Placeholders is the number of input characters the pattern consumes.
func (p Pattern) Placeholders() int {
	return p.placeholders
}

// LiteralPrefix is the number of literal slots before the first placeholder.
func (p Pattern) LiteralPrefix() int {
	if p.prefix < 0 {
		return 0
	}
	return p.prefix
}

// Literals returns the distinct literal runes in order of first appearance.
func (p Pattern) Literals() []rune {
	return append([]rune(nil), p.literals...)
}

// Literal reports the literal at slot idx. ok is false for placeholders and
// out-of-range indices.
func (p Pattern) Literal(idx int) (rune, bool) {
	if idx < 0 || idx >= len(p.slots) {
		return 0, false
	}
	r := p.slots[idx]
	if r == Placeholder {
		return 0, false
	}
	return r, true
}
