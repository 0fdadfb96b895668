package models

import "time"

// Consultation is one doctor-patient encounter. The aiDiagnosis fields are a
// snapshot copied from the first image, in submission order, whose
// classification produced a primary class; later images never overwrite it.
// FinalDiagnosis and Confirmed are set only by consultation-level
// confirmation, independently of the per-image flags.
type Consultation struct {
	ID                  string     `bson:"_id,omitempty"`
	PatientID           string     `bson:"patientId"`
	MedicoID            string     `bson:"medicoId"`
	AiDiagnosis         *string    `bson:"aiDiagnosis,omitempty"`
	Confidence          *float64   `bson:"confidence,omitempty"`
	MultClass           *string    `bson:"multClass,omitempty"`
	MultClassConfidence *float64   `bson:"multClassConfidence,omitempty"`
	FinalDiagnosis      *Diagnosis `bson:"finalDiagnosis,omitempty"`
	Confirmed           bool       `bson:"confirmed"`
	CreatedAt           time.Time  `bson:"createdAt"`
}

// Image belongs to exactly one consultation and is never reassigned.
// Position records submission order within the consultation.
type Image struct {
	ID                  string     `bson:"_id,omitempty"`
	ConsultationID      string     `bson:"consultationId"`
	Position            int        `bson:"position"`
	ObjectName          string     `bson:"objectName"`
	FileName            string     `bson:"fileName"`
	FileSize            int64      `bson:"fileSize"`
	ContentType         string     `bson:"contentType"`
	AiDiagnosis         *string    `bson:"aiDiagnosis,omitempty"`
	Confidence          *float64   `bson:"confidence,omitempty"`
	MultClass           *string    `bson:"multClass,omitempty"`
	MultClassConfidence *float64   `bson:"multClassConfidence,omitempty"`
	FinalDiagnosis      *Diagnosis `bson:"finalDiagnosis,omitempty"`
	Confirmed           bool       `bson:"confirmed"`
	CreatedAt           time.Time  `bson:"createdAt"`
}
