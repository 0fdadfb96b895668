package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"password": "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"sexo":     "must be one of MASCULINO, FEMININO or OUTRO",
	"cpf":      "must contain exactly 11 digits",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientSomethingWrongWithApplication = "something went wrong with the application"
	ErrClientCannotProcessRequest          = "cannot process your request"
	ErrClientNotAuthorized                 = "you are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "you are not logged in"
	ErrClientInvalidUsernameOrPassword     = "invalid email or password"
	ErrClientCurrentPasswordIncorrect      = "current password is incorrect"
	ErrClientEmailAlreadyExists            = "email already in use"
	ErrClientCPFAlreadyExists              = "cpf already in use"
	ErrClientCRMAlreadyExists              = "crm already in use"
	ErrClientUserNotFound                  = "user not found"
	ErrClientConsultationNotFound          = "consultation not found"
	ErrClientImageNotFound                 = "image not found"
	ErrClientConsultationForbidden         = "you do not have permission to access this consultation"
	ErrClientInvalidDiagnosis              = "invalid diagnosis. allowed values: Normal, aom, csom, earwax, ExternalEarInfections, tympanoskleros"
	ErrClientAtLeastOneImage               = "at least one image is required"
	ErrClientClassifierUnavailable         = "the diagnosis service is unavailable, try again later"
	ErrClientNoConfirmedImages             = "no image with a doctor-confirmed diagnosis was found"
	ErrClientServerLongRespond             = "server takes too long to respond"
)

// Error messages for developers
const (
	ErrDevValidationFailed           = "request validation failed"
	ErrDevCannotParseJSON            = "cannot parse request body as JSON"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form"
	ErrDevCannotParseDate            = "cannot parse date value"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevMissingSessionData         = "session data missing from context"
	ErrDevFailedToHashPassword       = "failed to hash password"
	ErrDevInvalidCredentials         = "credentials do not match any user"
	ErrDevAuthTokenMissing           = "authorization token missing"
	ErrDevAuthTokenInvalid           = "authorization token invalid"
	ErrDevAuthTokenInvalidOrExpired  = "authorization token invalid or expired"
	ErrDevAuthGenerateToken          = "failed to generate auth token"
	ErrDevAuthSigningMethod          = "unexpected jwt signing method"
	ErrDevAuthInvalidSession         = "session not found or expired"
	ErrDevRoleTypeDoesntMatch        = "requester role does not allow this operation"
	ErrDevOwnershipViolation         = "requester is neither the owning doctor nor an admin"
	ErrDevUserNotExists              = "user does not exist"
	ErrDevConsultationNotExists      = "consultation does not exist"
	ErrDevImageNotExists             = "image does not exist"
	ErrDevInvalidDiagnosisValue      = "diagnosis value outside the closed enumeration"
	ErrDevServerDeadlineExceeded     = "request deadline exceeded"
	ErrDevServerProcess              = "internal process failed"
	ErrDevDBFailedToFindDocument     = "database failed to find document"
	ErrDevDBFailedToInsertDocument   = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "database failed to update document"
	ErrDevDBFailedToDeleteDocument   = "database failed to delete document"
	ErrDevDBFailedToIterateDocuments = "database failed to iterate documents"
	ErrDevDBFailedToCountDocuments   = "database failed to count documents"
	ErrDevDBStringNotObjectID        = "provided id is not a valid object id"
	ErrDevDBTransactionFailed        = "database transaction failed"
	ErrDevMinioFailedToCreateObject  = "minio failed to store object in bucket %s"
	ErrDevMinioFailedToGetObject     = "minio failed to read object from bucket %s"
	ErrDevMinioFailedToRemoveObject  = "minio failed to remove object from bucket %s"
	ErrDevRedisGetData               = "redis failed to get data"
	ErrDevRedisSetData               = "redis failed to set data"
	ErrDevRedisDeleteData            = "redis failed to delete data"
	ErrDevRabbitMQPublish            = "rabbitmq failed to publish message to queue %s"
	ErrDevClassifierBuildRequest     = "failed to build classifier request"
	ErrDevClassifierSendRequest      = "failed to reach classifier service"
	ErrDevClassifierBadStatus        = "classifier service returned status %d"
	ErrDevClassifierDecodeResponse   = "failed to decode classifier response"
	ErrDevBackupNoConfirmedImages    = "backup requested but no confirmed image exists"
	ErrDevBackupArchive              = "failed to assemble backup archive"
)
