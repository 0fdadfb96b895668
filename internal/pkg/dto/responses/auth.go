package responses

type Login struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RegisterMedico struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
