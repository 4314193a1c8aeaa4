// utils/validation.go
package utils

import "regexp"

var mobileRegex = regexp.MustCompile(`^\d{10}$`)

// ValidateMobile checks that a mobile number is exactly 10 digits.
func ValidateMobile(mobile string) bool {
	return mobileRegex.MatchString(mobile)
}
