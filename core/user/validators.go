package user

import (
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

var (
	gradeTag  = "grade"
	gradeText = "a valid class between 1 and 12 is required"
)

// InitValidators registers the user app's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTag, gradeText)
}

// gradeValidation only allows K-12 class grades.
func gradeValidation(fl validator.FieldLevel) bool {
	grade, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return false
	}
	return grade >= 1 && grade <= 12
}
