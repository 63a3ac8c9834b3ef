package validation

import "regexp"

// Field limits from the persisted schema.
const (
	TitleMaxLength       = 255
	DescriptionMaxLength = 65535
	NameMaxLength        = 255
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsDateShaped reports whether s has the YYYY-MM-DD shape. Callers still
// parse the value to reject impossible dates.
func IsDateShaped(s string) bool {
	return datePattern.MatchString(s)
}
