package utils

import (
	"ptmd-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("sexo", validateSexo)
	validate.RegisterValidation("cpf", validateCPF)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	hasMinLen := len(password) >= 8
	hasSpecialChar := regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar).MatchString(password)
	hasUppercase := regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase).MatchString(password)
	return hasMinLen && hasSpecialChar && hasUppercase
}

func validateSexo(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "MASCULINO" || value == "FEMININO" || value == "OUTRO"
}

func validateCPF(fl validator.FieldLevel) bool {
	cpf := fl.Field().String()
	return regexp.MustCompile(constvars.RegexCPFDigits).MatchString(cpf)
}
