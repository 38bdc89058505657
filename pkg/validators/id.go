// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"strconv"
)

var ErrIDInvalid = errors.New("id must be a positive integer")

// IDValidator parses a path id. Only positive integers are accepted.
func IDValidator(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrIDInvalid
	}

	return uint(id), nil
}
