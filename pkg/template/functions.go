package template

import (
	"strconv"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/google/uuid"
)

// funcs returns the helper functions available inside workshop templates.
func funcs() texttemplate.FuncMap {
	return texttemplate.FuncMap{
		"now":       funcNow,
		"timestamp": funcNowUnix,
		"uuid":      funcUUID,
		"uuidShort": funcUUIDShort,
		"upper":     funcUpper,
		"lower":     funcLower,
		"trim":      funcTrim,
		"default":   funcDefault,
	}
}

// Time functions

// funcNow returns the current time in RFC3339 format
func funcNow() string {
	return time.Now().Format(time.RFC3339)
}

// funcNowUnix returns the current Unix timestamp as a string
func funcNowUnix() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// UUID functions

// funcUUID generates a UUID v4
func funcUUID() string {
	return uuid.New().String()
}

// funcUUIDShort returns the first 8 characters of a UUID v4
func funcUUIDShort() string {
	return funcUUID()[:8]
}

// String functions

// funcUpper converts a string to uppercase
func funcUpper(s string) string {
	return strings.ToUpper(s)
}

// funcLower converts a string to lowercase
func funcLower(s string) string {
	return strings.ToLower(s)
}

// funcTrim trims whitespace from both ends of a string
func funcTrim(s string) string {
	return strings.TrimSpace(s)
}

// Default function

// funcDefault returns value if non-empty, otherwise returns fallback.
// The fallback comes first so it pipes naturally: {{.Port | default "8080"}}.
func funcDefault(fallback, value string) string {
	if value != "" {
		return value
	}
	return fallback
}
