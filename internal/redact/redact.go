// Package redact removes sensitive information from strings and request bodies
// before they are logged. Error messages can carry connection strings, tokens and
// addresses; request bodies can carry passwords.
package redact

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Placeholders substituted for redacted content.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; credentials go first so the email and host rules
// cannot split a connection string.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database|connection)://[^@\s]+@`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`\$2[abxy]\$\d{2}\$[./A-Za-z0-9]{53}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
}

// SensitiveFields are JSON keys whose values never reach a log, compared case-insensitively.
var SensitiveFields = []string{"password", "confirmPassword", "currentPassword", "newPassword"}

// sensitiveMember matches a SensitiveFields member of a JSON object that
// could not be parsed, including a string value cut off by truncation.
var sensitiveMember = regexp.MustCompile(`(?i)"(` + strings.Join(quoteAll(SensitiveFields), "|") +
	`)"(\s*:\s*)(?:"(?:[^"\\]|\\.)*"?|[^,}\]\s]*)`)

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = regexp.QuoteMeta(v)
	}
	return quoted
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// JSONBody returns body with every SensitiveFields value replaced by
// RedactionPlaceholder, at any nesting depth. The result is always valid JSON:
// a body that does not parse, such as one truncated for logging, is returned as
// a redacted JSON string.
func JSONBody(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		text := sensitiveMember.ReplaceAllString(string(trimmed), `"$1"$2"`+RedactionPlaceholder+`"`)
		quoted, _ := json.Marshal(String(text))
		return quoted
	}

	out, err := json.Marshal(redactValue(doc))
	if err != nil {
		quoted, _ := json.Marshal(RedactionPlaceholder)
		return quoted
	}
	return out
}

func redactValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for key, inner := range val {
			if isSensitiveField(key) {
				val[key] = RedactionPlaceholder
				continue
			}
			val[key] = redactValue(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = redactValue(inner)
		}
		return val
	default:
		return v
	}
}

func isSensitiveField(key string) bool {
	for _, field := range SensitiveFields {
		if strings.EqualFold(key, field) {
			return true
		}
	}
	return false
}
