// Package redact removes sensitive values from strings before they are
// logged. Items carry email addresses and store errors can carry database
// connection strings, so raw error text is redacted on its way into logs.
package redact

import (
	"net/url"
	"regexp"
)

// Redaction placeholders.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	// Connection strings with inline credentials, e.g. postgres://u:p@host/db
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=... fragments from DSNs and error messages
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts credentials and email addresses from the input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := dbConnRegex.ReplaceAllString(input, CredentialPlaceholder+"@")
	result = passwordRegex.ReplaceAllString(result, "$1$2"+CredentialPlaceholder)
	result = emailRegex.ReplaceAllString(result, EmailPlaceholder)
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// URL masks the userinfo of a connection URL for safe logging. Inputs that
// do not parse as URLs are fully redacted rather than passed through.
func URL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return CredentialPlaceholder
	}
	if parsed.User != nil {
		parsed.User = url.User(CredentialPlaceholder)
	}
	return parsed.String()
}
