package entities

import "slices"

// Radius bounds accepted by the search form, in kilometres.
const (
	MinRadiusKm     = 1
	MaxRadiusKm     = 20
	DefaultRadiusKm = 5
)

// Form defaults
const (
	DefaultCity  = "Vila Mariana"
	DefaultState = "SP"
)

// Condition filter options
const (
	ConditionAutism        = "Autismo (TEA)"
	ConditionDownSyndrome  = "Síndrome de Down"
	ConditionCerebralPalsy = "Paralisia Cerebral"
)

// ConditionOptions is the condition multi-select catalog.
var ConditionOptions = []string{
	ConditionAutism,
	ConditionDownSyndrome,
	ConditionCerebralPalsy,
}

// SpecialtyOptions is the specialty multi-select catalog.
var SpecialtyOptions = []string{
	"Psicologia",
	"Terapia Ocupacional",
	"Fonoaudiologia",
	"Fisioterapia",
	"Psicomotricidade",
	"Nutrição",
	"Psicopedagogia",
	"Musicoterapia",
	"Educação Física",
	"Cinoterapia",
	"Pediasuit",
	"Neuropsicologia",
}

// ClinicSearchQuery is what the user filled in on the search form.
type ClinicSearchQuery struct {
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	Address     string   `json:"address,omitempty"`
	RadiusKm    int      `json:"radius_km" validate:"min=1,max=20"`
	Conditions  []string `json:"conditions" validate:"dive,clinic_condition"`
	Specialties []string `json:"specialties" validate:"dive,clinic_specialty"`
}

// NewDefaultClinicSearchQuery returns the query the form starts with.
func NewDefaultClinicSearchQuery() ClinicSearchQuery {
	return ClinicSearchQuery{
		City:     DefaultCity,
		State:    DefaultState,
		RadiusKm: DefaultRadiusKm,
	}
}

// IsCondition reports whether name is in the condition catalog.
func IsCondition(name string) bool {
	return slices.Contains(ConditionOptions, name)
}

// IsSpecialty reports whether name is in the specialty catalog.
func IsSpecialty(name string) bool {
	return slices.Contains(SpecialtyOptions, name)
}
