// Package utils provides utility functions and helpers for common operations
// used throughout the application. It includes string manipulation, identifier
// parsing and data sanitization for logging.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// ParseID parses a numeric path identifier. Identifiers are compared as int64
// everywhere, so anything that is not a positive base-10 integer is rejected.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewBadRequestError(constants.MsgInvalidIdentifier)
	}
	return id, nil
}

// Slugify turns a post title into a URL slug.
//
// For example: "Hello, World!" becomes "hello-world"
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	return b.String()
}

// RandomToken returns n random bytes encoded as hex.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// TruncateString truncates a string to the given maximum length and adds ellipsis if necessary.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// MaskEmail masks the user part of an email address, showing only the first and last character.
//
// For example: "user@example.com" becomes "u**r@example.com"
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	user := parts[0]
	domain := parts[1]

	if len(user) <= 2 {
		return email
	}

	return string(user[0]) + strings.Repeat("*", len(user)-2) + string(user[len(user)-1]) + "@" + domain
}

// SanitizeKeys removes potentially sensitive fields from a map before it is logged.
// Nested maps and slices of maps are sanitized recursively.
func SanitizeKeys(data map[string]interface{}) map[string]interface{} {
	sensitiveKeys := map[string]bool{
		constants.ColumnPasswordHash: true,
		constants.ColumnResetCode:    true,
		"password":                   true,
		"new_password":               true,
		"newpassword":                true,
		"code":                       true,
		"token":                      true,
		"verification_token":         true,
		"secret":                     true,
	}

	result := make(map[string]interface{})

	for k, v := range data {
		if sensitiveKeys[strings.ToLower(k)] {
			result[k] = constants.LogRedactedValue
			continue
		}

		if nestedMap, ok := v.(map[string]interface{}); ok {
			result[k] = SanitizeKeys(nestedMap)
			continue
		}

		if nestedMapSlice, ok := v.([]map[string]interface{}); ok {
			sanitizedSlice := make([]map[string]interface{}, len(nestedMapSlice))
			for i, nestedMap := range nestedMapSlice {
				sanitizedSlice[i] = SanitizeKeys(nestedMap)
			}
			result[k] = sanitizedSlice
			continue
		}

		result[k] = v
	}

	return result
}
