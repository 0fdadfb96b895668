package utils

import (
	"time"

	"ptmd-service/internal/pkg/exceptions"
)

const dateLayout = "2006-01-02"

// ParseOptionalDate parses a YYYY-MM-DD value; an empty string yields nil.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	return &parsed, nil
}
