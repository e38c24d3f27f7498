package validation

// Mask strings used by the presets.
const (
	MaskCPF          = "###.###.###-##"
	MaskCNPJ         = "##.###.###/####-##"
	MaskPhone        = "(##) ####-####"
	MaskPhoneMobile  = "(##) #####-####"
	MaskCEP          = "#####-###"
	MaskDate         = "##/##/####"
	MaskVehiclePlate = "###-####"
	MaskYear         = "####"
	MaskTime         = "##:##"
)

// Preset is the default configuration for a kind. Zero bounds mean "no
// bound".
type Preset struct {
	MinLength             int
	MaxLength             int
	Required              bool
	Mask                  string
	AltMask               string
	DigitsBeforeSeparator int
	DigitsAfterSeparator  int
	// FreeForm lifts the digits-and-separators keystroke alphabet for kinds
	// whose placeholders accept letters.
	FreeForm bool
}

// presets is the fixed table consulted when a field selects a kind.
var presets = map[Kind]Preset{
	KindDefault: {Required: true},
	KindPhone:   {MinLength: 10, MaxLength: 11, Mask: MaskPhone, AltMask: MaskPhoneMobile},
	KindEmail:   {MinLength: 3},
	KindDate:    {MaxLength: 8, Mask: MaskDate},
	KindPlate:   {MaxLength: 7, Mask: MaskVehiclePlate, FreeForm: true},
	KindYear:    {MinLength: 4, MaxLength: 4, Required: true, Mask: MaskYear},
	KindCpfCnpj: {MinLength: 11, MaxLength: 14, Mask: MaskCPF, AltMask: MaskCNPJ},
	KindTime:    {MaxLength: 4, Mask: MaskTime},
	KindCep:     {MinLength: 8, MaxLength: 8, Mask: MaskCEP},
	KindDecimal: {DigitsBeforeSeparator: 8, DigitsAfterSeparator: 2},
}

// PresetFor returns the preset for kind.
func PresetFor(kind Kind) (Preset, bool) {
	preset, ok := presets[kind]
	return preset, ok
}
