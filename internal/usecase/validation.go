package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// erros usam o nome do campo no JSON
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		return entity.PipelineStages.Contains(entity.Stage(fl.Field().String()))
	})
}

// validateInput roda as tags `validate` e junta tudo num DomainError.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &DomainError{Code: CodeValidation, Message: "dados inválidos: " + err.Error(), Err: err}
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		ve := ValidationError{Field: fe.Field(), Message: describe(fe)}
		parts = append(parts, ve.Field+" ("+ve.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "dados inválidos: " + strings.Join(parts, ", "),
		Err:     err,
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obrigatório"
	case "min":
		return "mínimo de " + fe.Param() + " caracteres"
	case "max":
		return "máximo de " + fe.Param() + " caracteres"
	case "email":
		return "inválido"
	case "stage":
		return "deve ser uma das etapas do funil"
	default:
		return "falhou em " + fe.Tag()
	}
}
