package services

import (
	"maps"
	"slices"
	"strings"
	"survey/internal/apperr"
	"survey/internal/models"
	"unicode"
	"unicode/utf8"

	"github.com/gookit/validate"
)

type SurveyValidatorInterface interface {
	Validate(req *models.SurveyRequest) error
}

type SurveyValidator struct{}

func NewSurveyValidator() SurveyValidatorInterface {
	return &SurveyValidator{}
}

// Validate reports every violated field at once, keyed by its JSON name.
func (sv *SurveyValidator) Validate(req *models.SurveyRequest) error {
	v := validate.Struct(req)
	v.StopOnError = false
	if v.Validate() {
		return nil
	}

	fields := make(map[string]string, len(v.Errors))
	for field, messages := range v.Errors {
		rules := slices.Sorted(maps.Keys(messages))
		if len(rules) == 0 {
			continue
		}
		fields[fieldName(field)] = messages[rules[0]]
	}
	return apperr.Validation("invalid survey data", fields)
}

func fieldName(field string) string {
	name, _, _ := strings.Cut(field, ",")
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
