package mask

import "strings"

// DefaultSeparators is the separator set stripped by Unmask.
const DefaultSeparators = "-|./(): "

// Mask renders raw against p. Literals are emitted as they are reached;
// rendering stops when raw runs out. Characters beyond the pattern's
// placeholder count are appended verbatim so callers can detect overflow.
func Mask(raw string, p Pattern) string {
	if raw == "" || p.IsZero() {
		return raw
	}

	input := []rune(raw)
	var b strings.Builder
	b.Grow(len(raw) + len(p.slots))

	consumed := 0
	for _, slot := range p.slots {
		if slot != Placeholder {
			b.WriteRune(slot)
			continue
		}
		if consumed >= len(input) {
			break
		}
		b.WriteRune(input[consumed])
		consumed++
	}

	for _, r := range input[consumed:] {
		b.WriteRune(r)
	}
	return b.String()
}

// Unmask strips DefaultSeparators from display.
func Unmask(display string) string {
	return strip(display, DefaultSeparators)
}

// UnmaskPattern strips exactly the literal characters of p from display.
func UnmaskPattern(display string, p Pattern) string {
	return strip(display, string(p.literals))
}

func strip(display, cutset string) string {
	if display == "" || cutset == "" {
		return display
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(cutset, r) {
			return -1
		}
		return r
	}, display)
}
