package validation

import "testing"

func TestValidatePage(t *testing.T) {
	if err := ValidatePage(1); err != nil {
		t.Errorf("page 1 should be valid: %v", err)
	}
	if err := ValidatePage(0); err == nil {
		t.Error("page 0 should be invalid")
	}
	if err := ValidatePage(-3); err == nil {
		t.Error("negative pages should be invalid")
	}
}

func TestValidateLimit(t *testing.T) {
	if err := ValidateLimit(MinLimit); err != nil {
		t.Errorf("limit %d should be valid: %v", MinLimit, err)
	}
	if err := ValidateLimit(MaxLimit); err != nil {
		t.Errorf("limit %d should be valid: %v", MaxLimit, err)
	}
	if err := ValidateLimit(0); err == nil {
		t.Error("limit 0 should be invalid")
	}
	if err := ValidateLimit(MaxLimit + 1); err == nil {
		t.Error("limits above the maximum should be invalid")
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"08012345678", "+2348012345678", "447911123456"}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Errorf("phone %q should be valid: %v", phone, err)
		}
	}

	invalid := []string{"", "0801", "0801234567890123456", "0801-234-5678", "phone number"}
	for _, phone := range invalid {
		if err := ValidatePhone(phone); err == nil {
			t.Errorf("phone %q should be invalid", phone)
		}
	}
}

func TestValidateRole(t *testing.T) {
	for _, role := range []string{"", "SENDER", "CARRIER", "sender"} {
		if err := ValidateRole(role); err != nil {
			t.Errorf("role %q should be valid: %v", role, err)
		}
	}
	if err := ValidateRole("ALIEN"); err == nil {
		t.Error("unknown roles should be invalid")
	}
}

func TestValidateNonEmptyString(t *testing.T) {
	if err := ValidateNonEmptyString("password", "x"); err != nil {
		t.Errorf("non-empty value should be valid: %v", err)
	}
	if err := ValidateNonEmptyString("password", ""); err == nil {
		t.Error("empty value should be invalid")
	}
}
