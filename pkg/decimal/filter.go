// Package decimal admits keystrokes into a fixed-point numeric field.
package decimal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// DefaultSeparator is the decimal separator used unless WithSeparator says
// otherwise.
const DefaultSeparator = '.'

var (
	// ErrInvalidBudget is returned by New when a digit budget is out of range.
	ErrInvalidBudget = errors.New("decimal: invalid digit budget")
	// ErrInvalidSeparator is returned by New when the separator is a digit.
	ErrInvalidSeparator = errors.New("decimal: invalid separator")
)

// Filter bounds the digits typed before and after a single decimal
// separator. A zero value is not usable; build one with New.
type Filter struct {
	before    int
	after     int
	separator rune
}

// Option configures a Filter.
type Option func(*Filter)

// WithSeparator overrides the decimal separator.
func WithSeparator(sep rune) Option {
	return func(f *Filter) {
		f.separator = sep
	}
}

// New builds a filter admitting at most before digits ahead of the separator
// and after digits behind it. after == 0 forbids the separator entirely.
func New(before, after int, opts ...Option) (*Filter, error) {
	if before < 1 {
		return nil, fmt.Errorf("%w: %d digits before separator", ErrInvalidBudget, before)
	}
	if after < 0 {
		return nil, fmt.Errorf("%w: %d digits after separator", ErrInvalidBudget, after)
	}
	f := &Filter{before: before, after: after, separator: DefaultSeparator}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if unicode.IsDigit(f.separator) || f.separator == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeparator, f.separator)
	}
	return f, nil
}

// Before returns the digit budget ahead of the separator.
func (f *Filter) Before() int { return f.before }

// After returns the digit budget behind the separator.
func (f *Filter) After() int { return f.after }

// Separator returns the decimal separator.
func (f *Filter) Separator() rune { return f.separator }

// Filter decides whether source may be inserted into text at cursor, a rune
// offset. It returns the text to insert in place of source and whether the
// insertion is admitted. Runes other than digits and the separator are
// dropped from source; a separator landing at the start of the field is
// prefixed with a zero.
func (f *Filter) Filter(text string, cursor int, source string) (string, bool) {
	if source == "" {
		return "", true
	}

	clean := f.sanitize(source)
	if clean == "" {
		return "", false
	}

	current := []rune(text)
	cursor = clampCursor(cursor, len(current))

	sepInSource := strings.Count(clean, string(f.separator))
	sepInText := strings.IndexRune(text, f.separator) >= 0
	if sepInSource > 1 || (sepInSource == 1 && (sepInText || f.after == 0)) {
		return "", false
	}

	replacement := clean
	if sepInSource == 1 && cursor == 0 && strings.HasPrefix(clean, string(f.separator)) {
		replacement = "0" + clean
	}

	candidate := make([]rune, 0, len(current)+len(replacement))
	candidate = append(candidate, current[:cursor]...)
	candidate = append(candidate, []rune(replacement)...)
	candidate = append(candidate, current[cursor:]...)

	whole, fraction, hasSep := f.split(candidate)

	if sepInSource == 1 {
		// The separator itself is always admitted; only the digits it moves
		// behind it are bounded.
		if len(fraction) > f.after {
			return "", false
		}
		if n := countDigits(whole); n > f.before && n > countDigits(current) {
			return "", false
		}
		return replacement, true
	}

	if !hasSep || cursor <= f.separatorIndex(current) {
		if countDigits(whole) > f.before {
			return "", false
		}
		return replacement, true
	}

	if len(fraction) > f.after {
		return "", false
	}
	return replacement, true
}

func (f *Filter) sanitize(source string) string {
	return strings.Map(func(r rune) rune {
		if r == f.separator || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}, source)
}

func (f *Filter) split(value []rune) (whole, fraction []rune, hasSep bool) {
	idx := indexRune(value, f.separator)
	if idx < 0 {
		return value, nil, false
	}
	return value[:idx], value[idx+1:], true
}

func (f *Filter) separatorIndex(value []rune) int {
	idx := indexRune(value, f.separator)
	if idx < 0 {
		return len(value)
	}
	return idx
}

func indexRune(value []rune, r rune) int {
	for i, c := range value {
		if c == r {
			return i
		}
	}
	return -1
}

func countDigits(value []rune) int {
	n := 0
	for _, r := range value {
		if '0' <= r && r <= '9' {
			n++
		}
	}
	return n
}

func clampCursor(cursor, length int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > length {
		return length
	}
	return cursor
}
