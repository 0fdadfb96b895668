package utils

import (
	"regexp"
	"strings"

	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/dto/requests"
)

var nonDigits = regexp.MustCompile(`\D`)

// SanitizeCPF keeps digits only, so "123.456.789-00" and "12345678900"
// resolve to the same patient.
func SanitizeCPF(cpf string) string {
	return nonDigits.ReplaceAllString(strings.TrimSpace(cpf), "")
}

func SanitizeCreatePatientRequest(request *requests.CreatePatient) {
	request.Nome = strings.TrimSpace(request.Nome)
	request.CPF = SanitizeCPF(request.CPF)
	request.Sexo = strings.ToUpper(strings.TrimSpace(request.Sexo))
	request.DataNascimento = strings.TrimSpace(request.DataNascimento)
}

func SanitizeRegisterMedicoRequest(request *requests.RegisterMedico) {
	request.Nome = strings.TrimSpace(request.Nome)
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	request.CPF = SanitizeCPF(request.CPF)
	request.CRM = strings.TrimSpace(request.CRM)
	request.DataNascimento = strings.TrimSpace(request.DataNascimento)
}

func SanitizeLoginRequest(request *requests.Login) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
}

var fileNameUnsafe = regexp.MustCompile(constvars.RegexFileNameUnsafeChars)

// SanitizeFileName replaces anything outside [a-zA-Z0-9._-] so a diagnosis
// value can be embedded in an archive entry name.
func SanitizeFileName(name string) string {
	return fileNameUnsafe.ReplaceAllString(name, "_")
}
