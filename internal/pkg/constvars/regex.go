package constvars

const (
	RegexCPFDigits                    = `^\d{11}$`
	RegexContainAtLeastOneSpecialChar = `[!@#~$%^&*()+|_.,<>?/\\{}\[\]-]`
	RegexContainAtLeastOneUppercase   = `[A-Z]`
	RegexFileNameUnsafeChars          = `[^a-zA-Z0-9._-]`
)
