package state

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails when the value is nil, a blank string, zero, or an empty slice.
func Required(message string) Rule {
	return func(value any) string {
		switch v := value.(type) {
		case nil:
			return message
		case string:
			if strings.TrimSpace(v) == "" {
				return message
			}
		case int64:
			if v == 0 {
				return message
			}
		case int:
			if v == 0 {
				return message
			}
		case []int64:
			if len(v) == 0 {
				return message
			}
		case []string:
			if len(v) == 0 {
				return message
			}
		}
		return ""
	}
}

// Email fails with requiredMsg on a blank value and with invalidMsg when
// the value does not look like an address.
func Email(requiredMsg, invalidMsg string) Rule {
	return func(value any) string {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return requiredMsg
		}
		if !emailPattern.MatchString(s) {
			return invalidMsg
		}
		return ""
	}
}

// OneOf fails unless the value is one of allowed, compared case-insensitively.
// A blank value passes; combine with Required when the field is mandatory.
func OneOf(message string, allowed ...string) Rule {
	return func(value any) string {
		s, _ := value.(string)
		if s == "" {
			return ""
		}
		for _, a := range allowed {
			if strings.EqualFold(s, a) {
				return ""
			}
		}
		return message
	}
}
