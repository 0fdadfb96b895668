package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Auth messages
	RegisterSuccessMessage       = "doctor registered successfully"
	LoginSuccessMessage          = "successfully logged in"
	LogoutSuccessMessage         = "successfully logged out"
	ChangePasswordSuccessMessage = "password changed successfully"

	// Consultation messages
	CreateConsultationSuccessMessage = "consultation created successfully"
	ConfirmDiagnosisSuccessMessage   = "diagnosis confirmed successfully"
	GetConsultationsSuccessMessage   = "consultations retrieved successfully"
	GetConsultationSuccessMessage    = "consultation retrieved successfully"

	// Admin messages
	GetDashboardSuccessMessage = "dashboard retrieved successfully"
)
