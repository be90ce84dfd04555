package domain

import "regexp"

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail performs a shape check only: something@host.tld without spaces
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}
