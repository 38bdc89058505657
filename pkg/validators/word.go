package validators

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrWordEmpty   = errors.New("Word or CSV file is required.")
	ErrWordTooLong = errors.New("word must be at most 100 characters long")
	ErrWordInvalid = errors.New("word contains invalid characters")
)

// WordValidator normalizes a submitted word and rejects values that can
// never be dictionary entries
func WordValidator(w string) (string, error) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" {
		return "", ErrWordEmpty
	}

	if len(w) > 100 {
		return "", ErrWordTooLong
	}

	if strings.IndexFunc(w, unicode.IsControl) >= 0 || strings.ContainsAny(w, "/?#<>") {
		return "", ErrWordInvalid
	}

	return w, nil
}
