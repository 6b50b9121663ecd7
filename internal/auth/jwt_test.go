package auth

import "testing"

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	token, err := GenerateToken("42", "chef", RoleAdmin)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	userID, username, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if userID != "42" {
		t.Fatalf("Expected userID 42, got %s", userID)
	}
	if username != "chef" {
		t.Fatalf("Expected username chef, got %s", username)
	}
	if role != RoleAdmin {
		t.Fatalf("Expected role %s, got %s", RoleAdmin, role)
	}
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, err := GenerateToken("", "chef", RoleStaff); err == nil {
		t.Fatal("expected error for empty userID")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GenerateToken("42", "chef", RoleStaff); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, _, _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken("42", "chef", RoleStaff)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, _, _, err := ValidateToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}
