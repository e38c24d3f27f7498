package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formmask/pkg/validation"
)

func TestValidYearDigits(t *testing.T) {
	cases := map[string]bool{
		"":      true,
		"1":     true,
		"2":     true,
		"3":     false,
		"19":    true,
		"18":    false,
		"192":   true,
		"211":   false,
		"1899":  false,
		"1900":  true,
		"2100":  true,
		"2101":  false,
		"19a0":  false,
		"-190":  false,
		"19000": false,
	}
	for value, want := range cases {
		assert.Equal(t, want, validation.ValidYearDigits(value), "year %q", value)
	}
}

func TestValidTimeDigits(t *testing.T) {
	cases := map[string]bool{
		"":      true,
		"2":     true,
		"3":     false,
		"23":    true,
		"24":    false,
		"235":   true,
		"236":   false,
		"2359":  true,
		"2360":  false,
		"0000":  true,
		"12345": false,
		"1a":    false,
	}
	for value, want := range cases {
		assert.Equal(t, want, validation.ValidTimeDigits(value), "time %q", value)
	}
}

func TestValidPlate(t *testing.T) {
	cases := map[string]bool{
		"":         true,
		"A":        true,
		"ABC":      true,
		"ABC1":     true,
		"ABC1234":  true,
		"ABC1D23":  true,
		"AB1234":   false,
		"ABCD123":  false,
		"ABC12D3":  false,
		"ABC12345": false,
		"ÁBC1234":  true,
	}
	for value, want := range cases {
		assert.Equal(t, want, validation.ValidPlate(value), "plate %q", value)
	}
}

func TestValidDateDigits(t *testing.T) {
	cases := map[string]bool{
		"":             true,
		"0":            false,
		"3":            true,
		"4":            true,
		"9":            true,
		"00":           false,
		"31":           true,
		"32":           false,
		"12/":          true,
		"12/0":         true,
		"12/3":         true,
		"31/0":         false,
		"30/0":         true,
		"31/1":         true,
		"29/2":         false,
		"28/2":         true,
		"31/04":        false,
		"30/04":        true,
		"28/02":        true,
		"29/02":        false,
		"30/02":        false,
		"12/13":        false,
		"12/00":        false,
		"12/05/":       true,
		"12/05/2":      true,
		"12/05/3":      false,
		"12/05/20":     true,
		"12/05/22":     false,
		"12/05/202":    true,
		"31/04/2":      true,
		"29/02/20":     true,
		"12/05/2024":   true,
		"12/05/2101":   false,
		"31/04/2024":   false,
		"29/02/2023":   false,
		"29/02/2024":   true,
		"29/02/1900":   false,
		"29/02/2000":   true,
		"12//2020":     false,
		"1a/05":        false,
		"1a/05/2":      false,
		"12/05/2024/":  true,
		"12/05/2024/1": false,
	}
	for value, want := range cases {
		assert.Equal(t, want, validation.ValidDateDigits(value), "date %q", value)
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, validation.ValidDate("29/02/2024"))
	assert.True(t, validation.ValidDate(""))
	assert.False(t, validation.ValidDate("29/02/2023"))
	assert.False(t, validation.ValidDate("1/05/2024"))
	assert.False(t, validation.ValidDate("01/13/2024"))
	assert.False(t, validation.ValidDate("01/01/1899"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validation.ValidEmail(""))
	assert.True(t, validation.ValidEmail("exemplo@email.com"))
	assert.True(t, validation.ValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, validation.ValidEmail("a@"))
	assert.False(t, validation.ValidEmail("no-at.example.com"))
	assert.False(t, validation.ValidEmail("user@domain"))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, validation.DaysInMonth(2023, 1))
	assert.Equal(t, 30, validation.DaysInMonth(2023, 4))
	assert.Equal(t, 28, validation.DaysInMonth(2023, 2))
	assert.Equal(t, 29, validation.DaysInMonth(2024, 2))
	assert.Equal(t, 28, validation.DaysInMonth(2100, 2))
	assert.Equal(t, 29, validation.DaysInMonth(2000, 2))
	assert.Equal(t, 28, validation.DaysInMonth(0, 2), "unknown year")
}

func TestValidate_Order(t *testing.T) {
	email := validation.RuleFor(validation.KindEmail)
	email.Required = true

	assert.Equal(t, validation.Verdict{Valid: false, Error: validation.ErrorRequired},
		validation.Validate(email, "", ""), "required wins over the email predicate")
	assert.Equal(t, validation.Verdict{Valid: false, Error: validation.ErrorLength},
		validation.Validate(email, "ab", "ab"))
	assert.Equal(t, validation.Verdict{Valid: false, Error: validation.ErrorEmail},
		validation.Validate(email, "abc", "abc"))
	assert.Equal(t, validation.Pass, validation.Validate(email, "a@b.io", "a@b.io"))
}

func TestValidate_Kinds(t *testing.T) {
	cases := []struct {
		name    string
		rule    validation.Rule
		raw     string
		display string
		want    validation.Verdict
	}{
		{
			name: "default required empty",
			rule: validation.RuleFor(validation.KindDefault),
			raw:  "  ",
			want: validation.Verdict{Error: validation.ErrorRequired},
		},
		{
			name: "phone short",
			rule: validation.RuleFor(validation.KindPhone),
			raw:  "119876",
			want: validation.Verdict{Error: validation.ErrorLength},
		},
		{
			name: "phone below mask threshold",
			rule: validation.Rule{Kind: validation.KindPhone, MinLength: 10, MaxLength: 11, MaskMinLength: 3},
			raw:  "11",
			want: validation.Verdict{Error: validation.ErrorMaskLength},
		},
		{
			name: "phone widened bounds still require area code and number",
			rule: validation.Rule{Kind: validation.KindPhone, MaxLength: 12, MaskMinLength: 3},
			raw:  "119876543210",
			want: validation.Verdict{Error: validation.ErrorLength},
		},
		{
			name: "phone mobile",
			rule: validation.RuleFor(validation.KindPhone),
			raw:  "11987654321",
			want: validation.Pass,
		},
		{
			name: "plate mercosul",
			rule: validation.RuleFor(validation.KindPlate),
			raw:  "ABC1D23",
			want: validation.Pass,
		},
		{
			name: "plate two letters",
			rule: validation.RuleFor(validation.KindPlate),
			raw:  "AB1234",
			want: validation.Verdict{Error: validation.ErrorDefault},
		},
		{
			name: "year length first",
			rule: validation.RuleFor(validation.KindYear),
			raw:  "19",
			want: validation.Verdict{Error: validation.ErrorLength},
		},
		{
			name: "year out of range",
			rule: validation.RuleFor(validation.KindYear),
			raw:  "1899",
			want: validation.Verdict{Error: validation.ErrorDefault},
		},
		{
			name: "time partial",
			rule: validation.RuleFor(validation.KindTime),
			raw:  "23",
			want: validation.Pass,
		},
		{
			name: "time invalid hour",
			rule: validation.RuleFor(validation.KindTime),
			raw:  "24",
			want: validation.Verdict{Error: validation.ErrorDefault},
		},
		{
			name:    "date reads the display",
			rule:    validation.RuleFor(validation.KindDate),
			raw:     "3104",
			display: "31/04",
			want:    validation.Verdict{Error: validation.ErrorDate},
		},
		{
			name:    "date partial",
			rule:    validation.RuleFor(validation.KindDate),
			raw:     "290220",
			display: "29/02/20",
			want:    validation.Pass,
		},
		{
			name: "cep exact",
			rule: validation.RuleFor(validation.KindCep),
			raw:  "0131010",
			want: validation.Verdict{Error: validation.ErrorLength},
		},
		{
			name: "optional empty passes",
			rule: validation.RuleFor(validation.KindCpfCnpj),
			want: validation.Pass,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validation.Validate(tc.rule, tc.raw, tc.display))
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, err := validation.ParseKind(" CPF_CNPJ ")
	require.NoError(t, err)
	assert.Equal(t, validation.KindCpfCnpj, kind)

	kind, err = validation.ParseKind("vehicle_plate")
	require.NoError(t, err)
	assert.Equal(t, validation.KindPlate, kind)

	_, err = validation.ParseKind("ssn")
	assert.ErrorIs(t, err, validation.ErrUnknownKind)
}

func TestKind_TextRoundTripInJSON(t *testing.T) {
	var payload struct {
		Pattern validation.Kind `json:"pattern"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"pattern":"time"}`), &payload))
	assert.Equal(t, validation.KindTime, payload.Pattern)

	out, err := json.Marshal(validation.Verdict{Error: validation.ErrorMaskLength})
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":false,"error":"mask_length"}`, string(out))

	var verdict validation.Verdict
	require.NoError(t, json.Unmarshal(out, &verdict))
	assert.Equal(t, validation.ErrorMaskLength, verdict.Error)
	assert.Error(t, json.Unmarshal([]byte(`{"error":"bogus"}`), &verdict))
}

func TestPresetFor(t *testing.T) {
	preset, ok := validation.PresetFor(validation.KindPhone)
	require.True(t, ok)
	assert.Equal(t, validation.MaskPhone, preset.Mask)
	assert.Equal(t, validation.MaskPhoneMobile, preset.AltMask)

	decimal, ok := validation.PresetFor(validation.KindDecimal)
	require.True(t, ok)
	assert.Equal(t, 8, decimal.DigitsBeforeSeparator)
	assert.Equal(t, 2, decimal.DigitsAfterSeparator)
}
