package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("clinic_condition", validateCondition)
	validate.RegisterValidation("clinic_specialty", validateSpecialty)
}

func validateCondition(fl validator.FieldLevel) bool {
	return entities.IsCondition(fl.Field().String())
}

func validateSpecialty(fl validator.FieldLevel) bool {
	return entities.IsSpecialty(fl.Field().String())
}

// ValidateClinicSearchQuery checks the radius range, that a location was
// given and that every filter comes from the catalogs. Only the first
// failing field is reported.
func ValidateClinicSearchQuery(query entities.ClinicSearchQuery) error {
	err := validate.Struct(query)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError(err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "min", "max":
		return apperrors.NewValidationError(fmt.Sprintf("radius must be between %d and %d km", entities.MinRadiusKm, entities.MaxRadiusKm))
	case "required":
		return apperrors.NewValidationError(fmt.Sprintf("%s is required", fieldName(fe.StructField())))
	case "clinic_condition":
		return apperrors.NewValidationError(fmt.Sprintf("unknown condition filter %q", fe.Value()))
	case "clinic_specialty":
		return apperrors.NewValidationError(fmt.Sprintf("unknown specialty filter %q", fe.Value()))
	default:
		return apperrors.NewValidationError(fe.Error())
	}
}

func fieldName(structField string) string {
	switch structField {
	case "City":
		return "city"
	case "State":
		return "state"
	default:
		return structField
	}
}
