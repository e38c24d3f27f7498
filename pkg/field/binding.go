package field

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/goliatone/go-formmask/pkg/mask"
	"github.com/goliatone/go-formmask/pkg/validation"
)

// Event is a change reported by the field. NewText already contains the
// user's edit; CursorPosition is the rune offset right after the inserted
// characters.
type Event struct {
	PreviousText   string
	NewText        string
	InsertedCount  int
	DeletedCount   int
	CursorPosition int
	HasFocus       bool
}

// Output is what the field should show after an event.
type Output struct {
	DisplayText string             `json:"display_text"`
	Verdict     validation.Verdict `json:"verdict"`
	// MaxLength is the input-boundary length constraint, zero when unbounded.
	MaxLength int `json:"max_length"`
	// Rejected reports that some inserted characters were not admitted.
	Rejected bool `json:"rejected"`
}

// Binding drives one field. It is not safe for concurrent use.
type Binding struct {
	cfg     Resolved
	state   mask.State
	text    string
	verdict validation.Verdict
	logger  *slog.Logger
	setter  TextSetter
}

// New resolves cfg and binds it. Misconfiguration is reported here and never
// at keystroke time.
func New(cfg Config, opts ...Option) (*Binding, error) {
	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	b := &Binding{
		cfg:     resolved,
		state:   mask.State{MinLength: resolved.Rule.MaskMinLength},
		verdict: validation.Pass,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	emitFieldBound(context.Background(), b.cfg.Name, b.cfg.Rule.Kind.String(), b.cfg.Masks.Primary.String())
	return b, nil
}

// Name returns the configured field name.
func (b *Binding) Name() string { return b.cfg.Name }

// Config returns the resolved configuration.
func (b *Binding) Config() Resolved { return b.cfg }

// Text returns the current display text.
func (b *Binding) Text() string { return b.text }

// State returns the current mask state.
func (b *Binding) State() mask.State { return b.state }

// Verdict returns the verdict of the last validated change.
func (b *Binding) Verdict() validation.Verdict { return b.verdict }

// Value returns the unmasked value of the current text.
func (b *Binding) Value() string {
	if b.cfg.Masks.IsZero() {
		return b.text
	}
	return b.cfg.Masks.Unmask(b.text)
}

// Change processes one event. Events on an unfocused field only record the
// new text; calls made while the binding is writing its own output back
// through the TextSetter return the current output untouched.
func (b *Binding) Change(ctx context.Context, ev Event) Output {
	if b.state.SuppressReentry {
		return b.output(false)
	}
	if !ev.HasFocus {
		b.text = ev.NewText
		b.state = b.initialState(b.text)
		return b.output(false)
	}

	text, inserted, dropped := b.admit(ev)
	if ev.InsertedCount > 0 && inserted == 0 && ev.DeletedCount == 0 {
		return b.reject(ctx, ev, dropped)
	}

	previous := b.state.Active
	display := text
	if !b.cfg.Masks.IsZero() {
		b.state, display = b.cfg.Masks.Step(b.state, mask.Edit{
			Text:     text,
			Inserted: inserted,
			Deleted:  ev.DeletedCount,
		})
	}
	b.text = display

	if display != ev.NewText && b.setter != nil {
		b.writeBack(display)
	}

	b.verdict = validation.Validate(b.cfg.Rule, b.Value(), display)

	name, kind := b.cfg.Name, b.cfg.Rule.Kind.String()
	if dropped > 0 {
		emitFieldRejected(ctx, name, kind, dropped)
	}
	if b.state.Active != previous {
		emitMaskSwitched(ctx, name, b.state.Active.String(), b.cfg.Masks.Pattern(b.state).String())
	}
	emitFieldChanged(ctx, name, kind, b.verdict.Error.String(), utf8.RuneCountInString(display))

	b.logger.DebugContext(ctx, "field changed",
		slog.String("field", name),
		slog.String("kind", kind),
		slog.String("active", b.state.Active.String()),
		slog.String("display", display),
		slog.Bool("valid", b.verdict.Valid),
		slog.String("error", b.verdict.Error.String()),
	)

	return b.output(dropped > 0)
}

// reject handles an insertion none of whose characters were admitted. The
// field keeps its current text and the mask state is left as it was.
func (b *Binding) reject(ctx context.Context, ev Event, dropped int) Output {
	if ev.NewText != b.text && b.setter != nil {
		b.writeBack(b.text)
	}
	name, kind := b.cfg.Name, b.cfg.Rule.Kind.String()
	emitFieldRejected(ctx, name, kind, dropped)
	b.logger.DebugContext(ctx, "field input rejected",
		slog.String("field", name),
		slog.String("kind", kind),
		slog.Int("dropped", dropped),
	)
	return b.output(true)
}

// Prefill renders a programmatic value without validating it, as a field
// prefilled while unfocused would show it.
func (b *Binding) Prefill(raw string) string {
	display := raw
	if !b.cfg.Masks.IsZero() {
		if threshold := b.cfg.Rule.MaskMinLength; threshold == 0 || utf8.RuneCountInString(raw) >= threshold {
			display = b.cfg.Masks.Format(raw)
		}
	}
	b.text = display
	b.state = b.initialState(display)
	b.verdict = validation.Pass
	return display
}

// Revalidate recomputes the verdict for the current text.
func (b *Binding) Revalidate(ctx context.Context) Output {
	b.verdict = validation.Validate(b.cfg.Rule, b.Value(), b.text)
	b.logger.DebugContext(ctx, "field revalidated",
		slog.String("field", b.cfg.Name),
		slog.String("error", b.verdict.Error.String()),
	)
	return b.output(false)
}

func (b *Binding) writeBack(display string) {
	b.state.SuppressReentry = true
	defer func() { b.state.SuppressReentry = false }()
	b.setter(display)
}

func (b *Binding) initialState(display string) mask.State {
	if b.cfg.Masks.IsZero() {
		return mask.State{MinLength: b.cfg.Rule.MaskMinLength}
	}
	return b.cfg.Masks.Initial(b.cfg.Rule.MaskMinLength, display)
}

func (b *Binding) output(rejected bool) Output {
	return Output{
		DisplayText: b.text,
		Verdict:     b.verdict,
		MaxLength:   b.cfg.InputLimit(),
		Rejected:    rejected,
	}
}

// admit applies the keystroke filters to the inserted segment of ev and
// returns the admitted text, the number of runes it inserted and the number
// of runes dropped.
func (b *Binding) admit(ev Event) (string, int, int) {
	runes := []rune(ev.NewText)
	if ev.InsertedCount <= 0 {
		return ev.NewText, 0, 0
	}

	end := clamp(ev.CursorPosition, 0, len(runes))
	start := clamp(end-ev.InsertedCount, 0, end)
	segment := string(runes[start:end])
	base := make([]rune, 0, len(runes)-(end-start))
	base = append(base, runes[:start]...)
	base = append(base, runes[end:]...)

	if b.cfg.Decimal != nil {
		replacement, ok := b.cfg.Decimal.Filter(string(base), start, segment)
		if !ok {
			return string(base), 0, end - start
		}
		return splice(base, start, replacement), utf8.RuneCountInString(replacement), 0
	}

	admitted := []rune(b.cfg.Alphabet.Filter(segment))
	if masks := b.cfg.Masks; !masks.IsZero() {
		room := max(masks.Placeholders()-utf8.RuneCountInString(masks.Unmask(string(base))), 0)
		admitted = admitted[:fitPlaceholders(masks, admitted, room)]
	}
	if limit := b.cfg.InputLimit(); limit > 0 {
		room := max(limit-len(base), 0)
		if len(admitted) > room {
			admitted = admitted[:room]
		}
	}
	return splice(base, start, string(admitted)), len(admitted), (end - start) - len(admitted)
}

// fitPlaceholders returns how many leading runes of admitted fit when at most
// room of them may fill placeholders. Literals of the set fill none.
func fitPlaceholders(masks mask.Set, admitted []rune, room int) int {
	used := 0
	for i, r := range admitted {
		if masks.IsLiteral(r) {
			continue
		}
		if used == room {
			return i
		}
		used++
	}
	return len(admitted)
}

func splice(base []rune, at int, insert string) string {
	out := make([]rune, 0, len(base)+len(insert))
	out = append(out, base[:at]...)
	out = append(out, []rune(insert)...)
	out = append(out, base[at:]...)
	return string(out)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
