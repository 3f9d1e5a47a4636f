package shared

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	policyOnce   sync.Once
)

// SanitizeText strips every HTML element from free text such as names and
// descriptions and trims surrounding whitespace. Entities are decoded again so
// "Core & Abs" survives unchanged.
func SanitizeText(s string) string {
	policyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeOptional applies SanitizeText to an optional value.
func SanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	return &clean
}
