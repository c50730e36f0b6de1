package services

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

const (
	maxNameRunes  = 255
	maxEmailRunes = 320
	maxTextRunes  = 4000
)

// validate is shared; validator.Validate is safe for concurrent use.
var validate = validator.New()

// isBlank reports whether s holds nothing but whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// textLen counts runes in the composed (NFC) form, so "e" plus a combining
// accent counts once. The stored value is never rewritten.
func textLen(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// requireText returns raw unchanged, or a ValidationError when it is blank
// or longer than limit runes.
func requireText(field, raw string, limit int) (string, error) {
	if isBlank(raw) {
		return "", invalid(field, "must not be empty")
	}
	if limit > 0 && textLen(raw) > limit {
		return "", invalid(field, "too long")
	}
	return raw, nil
}
