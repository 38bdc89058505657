package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Custom implementation of the []string serializer used for synonym and
// antonym lists

const stringSliceSep = "|"

type StringSlice []string

func (StringSlice) GormDataType() string {
	return "text"
}

// Value implements the driver.Valuer interface.
// No element may contain the separator
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}

	for _, v := range s {
		if strings.Contains(v, stringSliceSep) {
			return "", fmt.Errorf("unsafe string, %s", v)
		}
	}

	return strings.Join(s, stringSliceSep), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan StringSlice, %v", value)
		}

		str = string(b)
	}

	if str == "" {
		*s = StringSlice{}
	} else {
		*s = strings.Split(str, stringSliceSep)
	}

	return nil
}

// NewStringSlice drops blank entries and entries containing the separator
func NewStringSlice(values []string) StringSlice {
	out := make(StringSlice, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || strings.Contains(v, stringSliceSep) {
			continue
		}
		out = append(out, v)
	}

	return out
}
