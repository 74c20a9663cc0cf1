package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ortholink/exercise-service/internal/models"
)

// Validator combines struct-tag validation of API requests with content-tree
// authoring validation.
type Validator struct {
	structValidator  *validator.Validate
	contentValidator *ContentValidator
}

// New creates the centralized validator instance.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:  structValidator,
		contentValidator: NewContentValidator(),
	}
}

// Validate validates struct tags on a request payload.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if ve := ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// Content returns the content-tree validator.
func (v *Validator) Content() *ContentValidator {
	return v.contentValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exercise_type", validateExerciseType)
	validate.RegisterValidation("language", validateLanguage)
	validate.RegisterValidation("role", validateRole)

	// Report json field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateExerciseType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, t := range models.AllExerciseTypes {
		if string(t) == value {
			return true
		}
	}
	return false
}

func validateLanguage(fl validator.FieldLevel) bool {
	switch models.Language(fl.Field().String()) {
	case models.LanguageArabic, models.LanguageEnglish:
		return true
	}
	return false
}

func validateRole(fl validator.FieldLevel) bool {
	switch models.Role(fl.Field().String()) {
	case models.RoleTherapist, models.RoleParent:
		return true
	}
	return false
}
