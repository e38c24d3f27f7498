package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bounds for phone numbers: area code plus an 8 digit landline or 9 digit
// mobile number.
const (
	PhoneMinLength = 10
	PhoneMaxLength = 11
)

var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9+._%\-]{1,256}` +
		`@` +
		`[a-zA-Z0-9][a-zA-Z0-9\-]{0,64}` +
		`(\.[a-zA-Z0-9][a-zA-Z0-9\-]{0,25})+$`,
)

// IsEmpty reports whether value holds nothing but whitespace.
func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ValidLength checks value against [minLength, maxLength]. A zero bound is
// not enforced and the empty value always passes; emptiness is the Required
// rule's concern.
func ValidLength(value string, minLength, maxLength int) bool {
	if value == "" {
		return true
	}
	n := utf8.RuneCountInString(value)
	if minLength > 0 && n < minLength {
		return false
	}
	if maxLength > 0 && n > maxLength {
		return false
	}
	return true
}

// ValidPhoneLength reports whether value has the length of a landline or a
// mobile number.
func ValidPhoneLength(value string) bool {
	return ValidLength(value, PhoneMinLength, PhoneMaxLength)
}

// ValidEmail matches value against an email address grammar.
func ValidEmail(value string) bool {
	if value == "" {
		return true
	}
	if utf8.RuneCountInString(value) < 3 {
		return false
	}
	return emailPattern.MatchString(value)
}

// ValidPlate accepts legacy (AAA9999) and Mercosul (AAA9A99) vehicle plates,
// including any prefix of one while it is being typed.
func ValidPlate(value string) bool {
	if value == "" {
		return true
	}
	if utf8.RuneCountInString(value) > 7 {
		return false
	}
	idx := 0
	for _, r := range value {
		switch {
		case idx < 3:
			if !unicode.IsLetter(r) {
				return false
			}
		case idx == 4:
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
		default:
			if !unicode.IsDigit(r) {
				return false
			}
		}
		idx++
	}
	return true
}

// yearDigitBounds are the admissible ranges for a year typed up to n digits,
// covering 1900 through 2100.
var yearDigitBounds = [...][2]int{
	{1, 2},
	{19, 21},
	{190, 210},
	{1900, 2100},
}

// ValidYearDigits checks a year that may still be partially typed.
func ValidYearDigits(value string) bool {
	if value == "" {
		return true
	}
	year, ok := parseDigits(value)
	if !ok || len(value) > len(yearDigitBounds) {
		return false
	}
	bounds := yearDigitBounds[len(value)-1]
	return year >= bounds[0] && year <= bounds[1]
}

var timeDigitCeilings = [...]int{2, 23, 235, 2359}

// ValidTimeDigits checks an hhmm time that may still be partially typed.
func ValidTimeDigits(value string) bool {
	if value == "" {
		return true
	}
	t, ok := parseDigits(value)
	if !ok || len(value) > len(timeDigitCeilings) {
		return false
	}
	return t <= timeDigitCeilings[len(value)-1]
}

// ValidDateDigits checks a dd/mm/yyyy display value that may still be
// partially typed. Day and month are bounded while they are the last segment
// typed. Once the year segment starts only the year digits are checked, until
// all four are present and the whole date is checked against the exact month
// length.
func ValidDateDigits(value string) bool {
	if value == "" {
		return true
	}
	parts := splitDate(value)
	if len(parts) == 0 || len(parts) > 3 {
		return false
	}
	for _, part := range parts {
		if _, ok := parseDigits(part); !ok || len(part) > 4 {
			return false
		}
	}
	if len(parts[0]) > 2 || (len(parts) > 1 && len(parts[1]) > 2) {
		return false
	}

	day, _ := parseDigits(parts[0])
	switch len(parts) {
	case 1:
		return day >= 1 && day <= 31
	case 2:
		month, _ := parseDigits(parts[1])
		if len(parts[1]) == 1 {
			if month > 12 {
				return false
			}
		} else if month < 1 || month > 12 {
			return false
		}
		return day >= 1 && day <= DaysInMonth(0, month)
	}

	year := parts[2]
	if !ValidYearDigits(year) {
		return false
	}
	if len(year) < 4 {
		return true
	}
	month, _ := parseDigits(parts[1])
	y, _ := strconv.Atoi(year)
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= DaysInMonth(y, month)
}

// ValidDate checks a complete dd/mm/yyyy date between 1900 and 2100.
func ValidDate(value string) bool {
	if value == "" {
		return true
	}
	parts := strings.Split(value, "/")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return false
	}
	day, okDay := parseDigits(parts[0])
	month, okMonth := parseDigits(parts[1])
	year, okYear := parseDigits(parts[2])
	if !okDay || !okMonth || !okYear {
		return false
	}
	if month < 1 || month > 12 || year < 1900 || year > 2100 {
		return false
	}
	return day >= 1 && day <= DaysInMonth(year, month)
}

// DaysInMonth returns the length of month in year. A year <= 0 stands for a
// year not typed yet and February then has 28 days.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 2:
		if year > 0 && isLeap(year) {
			return 29
		}
		return 28
	default:
		return 30
	}
}

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// splitDate splits on '/' and drops trailing empty segments, so "12/" holds
// only the day.
func splitDate(value string) []string {
	parts := strings.Split(value, "/")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func parseDigits(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
