package authapi

import "testing"

func TestValidateRegisterAcceptsAccentedNames(t *testing.T) {
	req := registerRequest{
		Name:           "María José",
		Surname:        "Ibáñez",
		Email:          "maria@example.com",
		Password:       "abc123",
		RepeatPassword: "abc123",
	}
	if fe := validateRegister(req); fe != nil {
		t.Fatalf("validateRegister: unexpected failure on %s: %s", fe.Field, fe.Message)
	}
}

func TestValidateRegisterRejectsOversizedPassword(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	req := registerRequest{
		Name:           "Ada",
		Surname:        "Lovelace",
		Email:          "ada@example.com",
		Password:       string(long),
		RepeatPassword: string(long),
	}
	fe := validateRegister(req)
	if fe == nil || fe.Field != "password" {
		t.Fatalf("validateRegister: want password length rejection, got %+v", fe)
	}
}

func TestValidateRegisterPasswordNeedsLetterAndDigit(t *testing.T) {
	base := registerRequest{
		Name:    "Ada",
		Surname: "Lovelace",
		Email:   "ada@example.com",
	}

	for _, pw := range []string{"abcdef", "123456", "abc12"} {
		req := base
		req.Password = pw
		req.RepeatPassword = pw
		if fe := validateRegister(req); fe == nil || fe.Field != "password" {
			t.Fatalf("validateRegister(%q): want password rejection, got %+v", pw, fe)
		}
	}

	req := base
	req.Password = "abc123!"
	req.RepeatPassword = "abc123!"
	if fe := validateRegister(req); fe != nil {
		t.Fatalf("validateRegister: unexpected failure: %+v", fe)
	}
}

func TestValidateRegisterPhoneOptional(t *testing.T) {
	req := registerRequest{
		Name:           "Ada",
		Surname:        "Lovelace",
		Email:          "ada@example.com",
		Password:       "abc123",
		RepeatPassword: "abc123",
		Phone:          "",
	}
	if fe := validateRegister(req); fe != nil {
		t.Fatalf("validateRegister: phone should be optional, got %+v", fe)
	}
}
