package variable

// IsNumeric reports whether text is an optionally negative decimal integer.
func IsNumeric(text string) bool {
	digits := text
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// RequiresNumeric reports whether a variable name follows the lowercase
// convention for integer-only input.
func RequiresNumeric(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
