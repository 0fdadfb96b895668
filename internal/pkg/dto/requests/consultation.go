package requests

// CreatePatient is the patient part of the multipart consultation form.
// CPF is the stable natural key used for deduplication.
type CreatePatient struct {
	Nome           string `json:"nome" validate:"required"`
	CPF            string `json:"cpf" validate:"required,cpf"`
	Sexo           string `json:"sexo" validate:"required,sexo"`
	DataNascimento string `json:"dataNascimento,omitempty"`
}

// ImageUpload carries one uploaded file, already read into memory.
// Order in CreateConsultation.Images is submission order.
type ImageUpload struct {
	Content     []byte
	FileName    string
	ContentType string
}

type CreateConsultation struct {
	Patient CreatePatient `json:"patient" validate:"required"`
	Images  []ImageUpload `json:"-"`
}

type ConfirmDiagnosis struct {
	FinalDiagnosis string `json:"finalDiagnosis" validate:"required"`
}

type ListConsultations struct {
	Nome string `json:"nome,omitempty"`
	CPF  string `json:"cpf,omitempty"`
}
