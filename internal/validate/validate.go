// Package validate holds input validation and sanitization rules for
// signup and design payloads.
package validate

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Email checks basic RFC-style address shape. Input must already be
// normalized with NormalizeEmail.
func Email(email string) bool {
	return emailRe.MatchString(email)
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Password requires at least 8 characters with upper, lower and digit.
func Password(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// Name bounds sanitized first/last names to [2,50] characters.
func Name(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= 2 && n <= 50
}

// Sanitize trims and HTML-escapes free-form user input.
func Sanitize(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// DesignName bounds design names to [1,100] characters.
func DesignName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= 1 && n <= 100
}

// DesignData checks the canvas document shape: selectedTemplate string,
// logos array and numeric canvasSize dimensions.
func DesignData(data map[string]interface{}) bool {
	if data == nil {
		return false
	}
	if s, ok := data["selectedTemplate"].(string); !ok || s == "" {
		return false
	}
	if _, ok := data["logos"].([]interface{}); !ok {
		return false
	}
	canvas, ok := data["canvasSize"].(map[string]interface{})
	if !ok {
		return false
	}
	if _, ok := canvas["width"].(float64); !ok {
		return false
	}
	if _, ok := canvas["height"].(float64); !ok {
		return false
	}
	return true
}

// ImageType restricts saved images to the two known classes.
func ImageType(t string) bool {
	return t == "logo" || t == "mockup"
}

// ImageData requires inline base64 image payloads.
func ImageData(data string) bool {
	return strings.HasPrefix(data, "data:image/")
}
