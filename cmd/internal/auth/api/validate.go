package authapi

import "regexp"

// Registration field rules. Names accept accented Latin letters so
// users are not forced to strip diacritics from their legal names.
var (
	nameRe     = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñÜü ]{2,60}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordRe = regexp.MustCompile("^[A-Za-z0-9!@#$%^&*()_+\\-={}\\[\\]|:;\"'<>,.?/~`]{6,}$")
	phoneRe    = regexp.MustCompile(`^[0-9+\-\s]{6,20}$`)
)

// validPassword requires the allowed charset plus at least one letter
// and one digit. RE2 has no lookaheads, so the two class checks are
// explicit.
func validPassword(pw string) bool {
	if !passwordRe.MatchString(pw) {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

type fieldError struct {
	Field   string
	Message string
}

// validateRegister returns the first failing field. Password length is
// additionally capped so the digest primitive never truncates input.
func validateRegister(req registerRequest) *fieldError {
	switch {
	case !nameRe.MatchString(req.Name):
		return &fieldError{Field: "name", Message: "name must be 2-60 letters"}
	case !nameRe.MatchString(req.Surname):
		return &fieldError{Field: "surname", Message: "surname must be 2-60 letters"}
	case !emailRe.MatchString(req.Email):
		return &fieldError{Field: "email", Message: "email address is not valid"}
	case !validPassword(req.Password):
		return &fieldError{Field: "password", Message: "password must be at least 6 characters with a letter and a digit"}
	case len(req.Password) > 72:
		return &fieldError{Field: "password", Message: "password must be at most 72 characters"}
	case req.Password != req.RepeatPassword:
		return &fieldError{Field: "repeat_password", Message: "passwords do not match"}
	case req.Phone != "" && !phoneRe.MatchString(req.Phone):
		return &fieldError{Field: "phone", Message: "phone number is not valid"}
	}
	return nil
}

func validateLogin(req loginRequest) *fieldError {
	switch {
	case req.Email == "":
		return &fieldError{Field: "email", Message: "email is required"}
	case req.Password == "":
		return &fieldError{Field: "password", Message: "password is required"}
	}
	return nil
}
