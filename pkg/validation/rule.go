package validation

import "unicode/utf8"

// Rule is the immutable validation profile of a field.
type Rule struct {
	Kind      Kind
	MinLength int
	MaxLength int
	Required  bool
	// MaskMinLength is the unmasked length below which the field is not yet
	// masked; length failures under it report ErrorMaskLength.
	MaskMinLength int
}

// Verdict is the outcome of validating the current value.
type Verdict struct {
	Valid bool      `json:"valid"`
	Error ErrorKind `json:"error"`
}

// Pass is the verdict for a valid value.
var Pass = Verdict{Valid: true, Error: ErrorNone}

func fail(kind ErrorKind) Verdict {
	return Verdict{Valid: false, Error: kind}
}

// RuleFor builds the rule of a kind from its preset.
func RuleFor(kind Kind) Rule {
	preset, _ := PresetFor(kind)
	return Rule{
		Kind:      kind,
		MinLength: preset.MinLength,
		MaxLength: preset.MaxLength,
		Required:  preset.Required,
	}
}

// Validate classifies raw, the unmasked value, under rule. display is the
// text as shown in the field; the date predicate reads its separators.
// Malformed input never fails the call, it yields an invalid verdict.
func Validate(rule Rule, raw, display string) Verdict {
	if rule.Required && IsEmpty(raw) {
		return fail(ErrorRequired)
	}

	length := utf8.RuneCountInString(raw)
	if !ValidLength(raw, rule.MinLength, rule.MaxLength) {
		if rule.MaskMinLength > 0 && length < rule.MaskMinLength {
			return fail(ErrorMaskLength)
		}
		return fail(ErrorLength)
	}

	switch rule.Kind {
	case KindPhone:
		if raw != "" && length >= rule.MaskMinLength && !ValidPhoneLength(raw) {
			return fail(ErrorLength)
		}
	case KindEmail:
		if !ValidEmail(raw) {
			return fail(ErrorEmail)
		}
	case KindPlate:
		if !ValidPlate(raw) {
			return fail(ErrorDefault)
		}
	case KindYear:
		if !ValidYearDigits(raw) {
			return fail(ErrorDefault)
		}
	case KindTime:
		if !ValidTimeDigits(raw) {
			return fail(ErrorDefault)
		}
	case KindDate:
		if !ValidDateDigits(display) {
			return fail(ErrorDate)
		}
	}

	return Pass
}
