package validation

import (
	"fmt"
	"strings"
)

// Kind selects the rule profile a field is validated against.
type Kind int

const (
	KindDefault Kind = iota
	KindPhone
	KindEmail
	KindDate
	KindPlate
	KindYear
	KindCpfCnpj
	KindTime
	KindCep
	KindDecimal
)

var kindNames = [...]string{
	KindDefault: "default",
	KindPhone:   "phone",
	KindEmail:   "email",
	KindDate:    "date",
	KindPlate:   "plate",
	KindYear:    "year",
	KindCpfCnpj: "cpf_cnpj",
	KindTime:    "time",
	KindCep:     "cep",
	KindDecimal: "decimal",
}

var kindAliases = map[string]Kind{
	"":              KindDefault,
	"cpf-cnpj":      KindCpfCnpj,
	"cpfcnpj":       KindCpfCnpj,
	"vehicle_plate": KindPlate,
	"zip":           KindCep,
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind resolves a kind name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for idx, candidate := range kindNames {
		if candidate == normalized {
			return Kind(idx), nil
		}
	}
	if kind, ok := kindAliases[normalized]; ok {
		return kind, nil
	}
	return KindDefault, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ErrorKind classifies a failed verdict. Rendering text for it is the UI
// layer's job.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorRequired
	ErrorLength
	ErrorMaskLength
	ErrorEmail
	ErrorDate
	ErrorDefault
)

var errorKindNames = [...]string{
	ErrorNone:       "none",
	ErrorRequired:   "required",
	ErrorLength:     "length",
	ErrorMaskLength: "mask_length",
	ErrorEmail:      "email",
	ErrorDate:       "date",
	ErrorDefault:    "default",
}

func (e ErrorKind) String() string {
	if e >= 0 && int(e) < len(errorKindNames) {
		return errorKindNames[e]
	}
	return fmt.Sprintf("error_kind(%d)", int(e))
}

// MarshalText implements encoding.TextMarshaler.
func (e ErrorKind) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *ErrorKind) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for idx, candidate := range errorKindNames {
		if candidate == name {
			*e = ErrorKind(idx)
			return nil
		}
	}
	return fmt.Errorf("validation: unknown error kind %q", name)
}
