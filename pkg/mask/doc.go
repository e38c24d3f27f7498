// Package mask formats raw keystroke input into punctuated display values.
//
// A Pattern is a template where '#' marks a slot for one input character and
// every other rune is a literal emitted verbatim. Mask and the Unmask helpers
// are pure transforms; Set.Step is the per-keystroke state machine that keeps
// a field's display in sync with a primary pattern and an optional, longer
// alternate (landline vs. mobile phone numbers, CPF vs. CNPJ).
//
// The state machine holds no hidden fields: callers thread a State value
// through every Step call, which keeps it testable without a live UI field.
package mask
