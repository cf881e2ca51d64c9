package validate

import "regexp"

// Signup contract: ASCII local part, dotted domain, TLD of two or more letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const MinPasswordLength = 6

func Email(email string) bool {
	return emailPattern.MatchString(email)
}

// Password checks the signup password policy. The reason, when non-empty,
// is meant to be shown to the user as-is.
func Password(password string) (bool, string) {
	if len(password) < MinPasswordLength {
		return false, "Password must be at least 6 characters long"
	}

	return true, ""
}
