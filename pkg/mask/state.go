package mask

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Active identifies which pattern currently formats a field.
type Active int

const (
	// ActiveNone means the display holds the raw value: the unmasked length is
	// below the configured MinLength.
	ActiveNone Active = iota
	// ActivePrimary formats with Set.Primary.
	ActivePrimary
	// ActiveAlternate formats with Set.Alternate.
	ActiveAlternate
)

func (a Active) String() string {
	switch a {
	case ActiveNone:
		return "none"
	case ActivePrimary:
		return "primary"
	case ActiveAlternate:
		return "alternate"
	default:
		return fmt.Sprintf("active(%d)", int(a))
	}
}

// State is the per-field machine state. Callers own it and pass it back into
// every Step.
type State struct {
	Active Active
	// MinLength is the unmasked length below which no mask is applied. Zero
	// disables the threshold.
	MinLength int
	// Deleting records whether the last edit removed more than it inserted.
	Deleting bool
	// SuppressReentry is held while a programmatic replacement of the display
	// is in flight. Step returns the state unchanged while it is set.
	SuppressReentry bool
}

// Edit is a single change to a field's text.
type Edit struct {
	// Text is the field content after the user's change was applied.
	Text     string
	Inserted int
	Deleted  int
}

// Set pairs a primary pattern with an optional alternate.
type Set struct {
	Primary   Pattern
	Alternate Pattern
}

// NewSet parses the primary and alternate masks. An empty alternate, one equal
// to the primary, or one with fewer placeholders than the primary is ignored.
func NewSet(primary, alternate string) (Set, error) {
	p, err := Parse(primary)
	if err != nil {
		return Set{}, err
	}
	set := Set{Primary: p}
	if alternate == "" || alternate == primary {
		return set, nil
	}
	alt, err := Parse(alternate)
	if err != nil {
		return Set{}, fmt.Errorf("alternate: %w", err)
	}
	if alt.Placeholders() >= p.Placeholders() {
		set.Alternate = alt
	}
	return set, nil
}

// IsZero reports whether the set holds no pattern.
func (s Set) IsZero() bool {
	return s.Primary.IsZero()
}

// HasAlternate reports whether an alternate pattern is configured.
func (s Set) HasAlternate() bool {
	return !s.Alternate.IsZero()
}

// Pattern returns the pattern formatting a field in state st. ActiveNone
// resolves to the primary pattern.
func (s Set) Pattern(st State) Pattern {
	if st.Active == ActiveAlternate && s.HasAlternate() {
		return s.Alternate
	}
	return s.Primary
}

// MaxLength is the input-boundary length constraint: the length of the
// longest configured pattern.
func (s Set) MaxLength() int {
	if s.HasAlternate() && s.Alternate.Len() > s.Primary.Len() {
		return s.Alternate.Len()
	}
	return s.Primary.Len()
}

// Placeholders is the number of input characters the longest configured
// pattern consumes.
func (s Set) Placeholders() int {
	return max(s.Primary.Placeholders(), s.Alternate.Placeholders())
}

// IsLiteral reports whether r is a literal of either pattern.
func (s Set) IsLiteral(r rune) bool {
	return slices.Contains(s.Primary.literals, r) || slices.Contains(s.Alternate.literals, r)
}

// Alphabet admits digits and the literals of both patterns.
func (s Set) Alphabet() Alphabet {
	return AlphabetFor(s.Primary, s.Alternate)
}

// Unmask strips the literals of both patterns from display.
func (s Set) Unmask(display string) string {
	return UnmaskPattern(UnmaskPattern(display, s.Primary), s.Alternate)
}

// Format renders raw with the pattern its length selects.
func (s Set) Format(raw string) string {
	if s.HasAlternate() && utf8.RuneCountInString(raw) > s.Primary.Placeholders() {
		return Mask(raw, s.Alternate)
	}
	return Mask(raw, s.Primary)
}

// Initial infers the state of a field whose display was set without going
// through Step, e.g. a programmatic prefill.
func (s Set) Initial(minLength int, display string) State {
	st := State{Active: ActivePrimary, MinLength: minLength}
	raw := s.Unmask(display)
	switch {
	case minLength > 0 && utf8.RuneCountInString(raw) < minLength:
		st.Active = ActiveNone
	case s.HasAlternate() && utf8.RuneCountInString(display) > s.Primary.Len():
		st.Active = ActiveAlternate
	}
	return st
}

// Step advances the machine by one edit and returns the next state together
// with the display text the field should hold. The returned state always has
// SuppressReentry cleared.
func (s Set) Step(st State, e Edit) (next State, display string) {
	if st.SuppressReentry || s.IsZero() {
		return st, e.Text
	}

	next = st
	display = e.Text
	length := utf8.RuneCountInString(display)
	next.Deleting = e.Deleted > e.Inserted

	rendered := false
	if next.Deleting {
		raw := UnmaskPattern(display, s.Pattern(next))
		switch {
		case next.Active != ActiveNone && next.MinLength > 0 && utf8.RuneCountInString(raw) < next.MinLength:
			next.Active = ActiveNone
			display = raw
		case length <= s.Primary.Len() && next.Active == ActiveAlternate:
			next.Active = ActivePrimary
			display = Mask(raw, s.Primary)
		default:
			return next, display
		}
		rendered = true
	}

	next.SuppressReentry = true
	defer func() { next.SuppressReentry = false }()

	// A deletion that re-rendered the display leaves a complete rendering;
	// growing it again here could oscillate within one keystroke.
	if rendered {
		return next, display
	}

	// A multi-character insertion is rendered from scratch.
	if e.Inserted > 1 {
		next.Active, display = s.reformat(next.MinLength, display)
		return next, display
	}

	active := s.Pattern(next)
	switch {
	case length > active.Len() && s.HasAlternate() && next.Active != ActiveAlternate:
		next.Active = ActiveAlternate
		display = Mask(UnmaskPattern(display, active), s.Alternate)

	case next.MinLength > 0 && length == next.MinLength:
		next.Active = activeOrPrimary(next.Active)
		display = Mask(display, active)

	case length > next.MinLength:
		next.Active = activeOrPrimary(next.Active)
		display = appendLiteral(display, length, active)
	}

	return next, display
}

// reformat renders display with the pattern its unmasked length selects, as
// Format does, leaving it raw below minLength.
func (s Set) reformat(minLength int, display string) (Active, string) {
	raw := s.Unmask(display)
	n := utf8.RuneCountInString(raw)
	switch {
	case minLength > 0 && n < minLength:
		return ActiveNone, raw
	case s.HasAlternate() && n > s.Primary.Placeholders():
		return ActiveAlternate, Mask(raw, s.Alternate)
	default:
		return ActivePrimary, Mask(raw, s.Primary)
	}
}

func activeOrPrimary(a Active) Active {
	if a == ActiveNone {
		return ActivePrimary
	}
	return a
}

// appendLiteral emits the literal that follows the last typed character. When
// the slot at length is a placeholder preceded by a literal, the literal is
// inserted before the character just typed.
func appendLiteral(display string, length int, p Pattern) string {
	if length >= p.Len() {
		return display
	}
	if lit, ok := p.Literal(length); ok {
		return display + string(lit)
	}
	prev, ok := p.Literal(length - 1)
	if !ok {
		return display
	}
	runes := []rune(display)
	if len(runes) < length {
		return display
	}
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:length-1]...)
	out = append(out, prev)
	out = append(out, runes[length-1:]...)
	return string(out)
}
