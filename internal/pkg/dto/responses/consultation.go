package responses

import "time"

type Patient struct {
	ID             string     `json:"id"`
	Nome           string     `json:"nome"`
	CPF            string     `json:"cpf"`
	Sexo           string     `json:"sexo"`
	DataNascimento *time.Time `json:"dataNascimento,omitempty"`
}

type Image struct {
	ID                  string     `json:"id"`
	FileName            string     `json:"fileName"`
	ObjectName          string     `json:"objectName"`
	FileSize            int64      `json:"fileSize"`
	ContentType         string     `json:"contentType"`
	AiDiagnosis         *string    `json:"aiDiagnosis,omitempty"`
	Confidence          *float64   `json:"confidence,omitempty"`
	MultClass           *string    `json:"multClass,omitempty"`
	MultClassConfidence *float64   `json:"multClassConfidence,omitempty"`
	FinalDiagnosis      *string    `json:"finalDiagnosis,omitempty"`
	Confirmed           bool       `json:"confirmed"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type Consultation struct {
	ID                  string     `json:"id"`
	Patient             *Patient   `json:"patient"`
	Images              []Image    `json:"images"`
	AiDiagnosis         *string    `json:"aiDiagnosis,omitempty"`
	Confidence          *float64   `json:"confidence,omitempty"`
	MultClass           *string    `json:"multClass,omitempty"`
	MultClassConfidence *float64   `json:"multClassConfidence,omitempty"`
	FinalDiagnosis      *string    `json:"finalDiagnosis,omitempty"`
	Confirmed           bool       `json:"confirmed"`
	CreatedAt           time.Time  `json:"createdAt"`
}
