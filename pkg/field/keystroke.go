package field

import (
	"context"
	"unicode/utf8"
)

// BackspaceRune stands for a backspace keystroke in Replay input.
const BackspaceRune = '\b'

// Type builds the event of typing r at the end of text.
func Type(text string, r rune) Event {
	return Paste(text, utf8.RuneCountInString(text), string(r))
}

// Paste builds the event of inserting s at cursor, a rune offset into text.
func Paste(text string, cursor int, s string) Event {
	runes := []rune(text)
	cursor = clamp(cursor, 0, len(runes))
	inserted := utf8.RuneCountInString(s)
	return Event{
		PreviousText:   text,
		NewText:        string(runes[:cursor]) + s + string(runes[cursor:]),
		InsertedCount:  inserted,
		CursorPosition: cursor + inserted,
		HasFocus:       true,
	}
}

// Backspace builds the event of deleting the last rune of text. It reports
// ok false when text is empty.
func Backspace(text string) (Event, bool) {
	runes := []rune(text)
	if len(runes) == 0 {
		return Event{}, false
	}
	return Event{
		PreviousText:   text,
		NewText:        string(runes[:len(runes)-1]),
		DeletedCount:   1,
		CursorPosition: len(runes) - 1,
		HasFocus:       true,
	}, true
}

// Replay types input into b one keystroke at a time, starting from the
// binding's current text, and returns the output of every keystroke.
// BackspaceRune deletes the last rune.
func Replay(ctx context.Context, b *Binding, input string) []Output {
	outputs := make([]Output, 0, utf8.RuneCountInString(input))
	for _, r := range input {
		if r == BackspaceRune {
			ev, ok := Backspace(b.Text())
			if !ok {
				continue
			}
			outputs = append(outputs, b.Change(ctx, ev))
			continue
		}
		outputs = append(outputs, b.Change(ctx, Type(b.Text(), r)))
	}
	return outputs
}
