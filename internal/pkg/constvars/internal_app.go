package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY   ContextKey = "requestID"
	CONTEXT_SESSION_DATA_KEY ContextKey = "sessionData"
)

const (
	MongoCollectionUsers         = "users"
	MongoCollectionPatients      = "patients"
	MongoCollectionConsultations = "consultations"
	MongoCollectionImages        = "images"
)

const (
	URLParamConsultationID = "consultationID"
	URLParamImageID        = "imageID"

	QueryParamNome = "nome"
	QueryParamCPF  = "cpf"
)

const (
	EventConsultationCreated = "consultation.created"
	EventDiagnosisConfirmed  = "diagnosis.confirmed"
)

const (
	BackupDatasetDir  = "dataset"
	BackupCSVName     = "database.csv"
	BackupArchiveName = "ptmd_database.zip"
	BackupCSVHeader   = "Image ID,Patient ID,Model Prediction,Doctor Final Diagnosis"
)
