package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingEndpointKey       = "endpoint"
	LoggingMethodKey         = "method"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingDurationKey       = "duration"
	LoggingErrorTypeKey      = "error_type"
	LoggingConsultationIDKey = "consultation_id"
	LoggingImageIDKey        = "image_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingUserIDKey         = "user_id"
	LoggingObjectNameKey     = "object_name"
	LoggingEventKey          = "event"
)
