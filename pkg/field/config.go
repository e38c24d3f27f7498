package field

import (
	"fmt"

	"github.com/goliatone/go-formmask/pkg/decimal"
	"github.com/goliatone/go-formmask/pkg/mask"
	"github.com/goliatone/go-formmask/pkg/validation"
)

// Config is the configuration surface of a field. Selecting a Pattern fills
// every option left nil from the kind's preset; a non-nil option overrides the
// preset, including an explicit zero or empty mask.
type Config struct {
	Name                  string          `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Label                 string          `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Pattern               validation.Kind `json:"pattern" yaml:"pattern" toml:"pattern"`
	MinLength             *int            `json:"min_length,omitempty" yaml:"min_length,omitempty" toml:"min_length,omitempty"`
	MaxLength             *int            `json:"max_length,omitempty" yaml:"max_length,omitempty" toml:"max_length,omitempty"`
	MaskMinLength         *int            `json:"mask_min_length,omitempty" yaml:"mask_min_length,omitempty" toml:"mask_min_length,omitempty"`
	Required              *bool           `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Mask                  *string         `json:"mask,omitempty" yaml:"mask,omitempty" toml:"mask,omitempty"`
	AltMask               *string         `json:"alt_mask,omitempty" yaml:"alt_mask,omitempty" toml:"alt_mask,omitempty"`
	DigitsBeforeSeparator *int            `json:"digits_before_separator,omitempty" yaml:"digits_before_separator,omitempty" toml:"digits_before_separator,omitempty"`
	DigitsAfterSeparator  *int            `json:"digits_after_separator,omitempty" yaml:"digits_after_separator,omitempty" toml:"digits_after_separator,omitempty"`
}

// Resolved is a Config with presets applied and masks parsed.
type Resolved struct {
	Name     string
	Label    string
	Rule     validation.Rule
	Masks    mask.Set
	Alphabet mask.Alphabet
	// Decimal is set for decimal fields only.
	Decimal *decimal.Filter
}

// Resolve applies the preset of c.Pattern and validates the result.
func (c Config) Resolve() (Resolved, error) {
	if !c.Pattern.Valid() {
		return Resolved{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.describe(), validation.ErrUnknownKind)
	}
	preset, _ := validation.PresetFor(c.Pattern)

	rule := validation.Rule{
		Kind:          c.Pattern,
		MinLength:     intOr(c.MinLength, preset.MinLength),
		MaxLength:     intOr(c.MaxLength, preset.MaxLength),
		Required:      boolOr(c.Required, preset.Required),
		MaskMinLength: intOr(c.MaskMinLength, 0),
	}
	if rule.MinLength < 0 || rule.MaxLength < 0 || rule.MaskMinLength < 0 {
		return Resolved{}, fmt.Errorf("%w: %s: negative length", ErrInvalidConfig, c.describe())
	}
	if rule.MaxLength > 0 && rule.MinLength > rule.MaxLength {
		return Resolved{}, fmt.Errorf("%w: %s: min_length %d exceeds max_length %d",
			ErrInvalidConfig, c.describe(), rule.MinLength, rule.MaxLength)
	}

	out := Resolved{Name: c.Name, Label: c.Label, Rule: rule}

	primary := stringOr(c.Mask, preset.Mask)
	alternate := stringOr(c.AltMask, preset.AltMask)
	if c.Mask != nil && *c.Mask == "" && c.AltMask == nil {
		alternate = ""
	}
	switch {
	case primary != "":
		set, err := mask.NewSet(primary, alternate)
		if err != nil {
			return Resolved{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.describe(), err)
		}
		out.Masks = set
	case alternate != "":
		return Resolved{}, fmt.Errorf("%w: %s: alt_mask requires mask", ErrInvalidConfig, c.describe())
	}

	if out.Masks.IsZero() || preset.FreeForm {
		out.Alphabet = mask.Unrestricted()
	} else {
		out.Alphabet = out.Masks.Alphabet()
	}

	if c.Pattern == validation.KindDecimal {
		filter, err := decimal.New(
			intOr(c.DigitsBeforeSeparator, preset.DigitsBeforeSeparator),
			intOr(c.DigitsAfterSeparator, preset.DigitsAfterSeparator),
		)
		if err != nil {
			return Resolved{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.describe(), err)
		}
		out.Decimal = filter
	}

	return out, nil
}

// InputLimit is the length constraint installed at the input boundary; zero
// means unbounded.
func (r Resolved) InputLimit() int {
	switch {
	case r.Decimal != nil:
		limit := r.Decimal.Before()
		if r.Decimal.After() > 0 {
			limit += r.Decimal.After() + 1
		}
		return limit
	case !r.Masks.IsZero():
		return r.Masks.MaxLength()
	default:
		return r.Rule.MaxLength
	}
}

func (c Config) describe() string {
	if c.Name != "" {
		return fmt.Sprintf("field %q", c.Name)
	}
	return fmt.Sprintf("%s field", c.Pattern)
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

// Int returns a pointer to v, for filling Config literals.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
