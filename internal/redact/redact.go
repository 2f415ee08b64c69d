// Package redact masks credentials in strings before they are logged or
// printed. It covers connection URLs with embedded user info and
// key=value password settings such as those in libpq DSNs.
package redact

import (
	"net/url"
	"regexp"
)

// Placeholders substituted for redacted values.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedPasswordPlaceholder   = "[REDACTED]"
)

var (
	// scheme://user:password@ in connection strings
	dbConnRegex = regexp.MustCompile(`(?i)\b(postgres|postgresql|mysql|mongodb|db|database|connection)://[^@\s/]+@`)

	// password=secret, pwd: secret, passwd='secret'
	passwordRegex = regexp.MustCompile(`(?i)\b(password|passwd|pwd)(\s*[=:]\s*['"]?)[^'"&\s]+`)
)

// String masks credentials found anywhere in input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := dbConnRegex.ReplaceAllString(input, "${1}://"+RedactedCredentialPlaceholder+"@")
	return passwordRegex.ReplaceAllString(result, "${1}${2}"+RedactedPasswordPlaceholder)
}

// Error masks credentials in the message of err.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// URL returns a database URL safe to log: the password is masked and the
// rest is kept so the target stays recognizable. Strings that do not parse
// as URLs go through String.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return String(raw)
	}

	if q := u.Query(); q.Has("password") {
		q.Set("password", RedactedPasswordPlaceholder)
		u.RawQuery = q.Encode()
	}
	return u.Redacted()
}

// redactedError masks the message of err and still unwraps to it.
type redactedError struct {
	err error
}

// Wrap returns an error whose message has credentials masked and which
// still unwraps to err.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &redactedError{err: err}
}

func (e *redactedError) Error() string { return Error(e.err) }

func (e *redactedError) Unwrap() error { return e.err }
