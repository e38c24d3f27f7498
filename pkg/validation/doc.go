// Package validation classifies a field's unmasked value on every keystroke.
//
// Validate never fails: it returns a Verdict carrying a stable ErrorKind, and
// partially typed dates, times, years and plates are judged by what they can
// still become. Error text is left to the presentation layer.
package validation
