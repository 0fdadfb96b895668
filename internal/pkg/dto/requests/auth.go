package requests

type RegisterMedico struct {
	Nome           string `json:"nome" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,password"`
	CPF            string `json:"cpf" validate:"required,cpf"`
	CRM            string `json:"crm" validate:"required"`
	DataNascimento string `json:"dataNascimento,omitempty"`
}

// Login does not enforce an email format: the seeded admin account uses a
// plain username in the email field.
type Login struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
}
