package adapters

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/passmeter/backend/internal/domain/valueobject"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := newPasswordServiceWithCost(valueobject.StrengthModerate, bcrypt.MinCost)

	hash, err := svc.HashPassword("Abcdefgh1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "Abcdefgh1" {
		t.Fatal("expected password to be hashed")
	}
	if err := svc.VerifyPassword(hash, "Abcdefgh1"); err != nil {
		t.Errorf("expected password to verify, got %v", err)
	}
	if err := svc.VerifyPassword(hash, "abcdefgh1"); err == nil {
		t.Error("expected mismatch for a different password")
	}
}

func TestPasswordService_ValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name        string
		minStrength valueobject.StrengthLabel
		password    string
		wantErr     bool
	}{
		{"moderate passes moderate minimum", valueobject.StrengthModerate, "Abcdefgh1", false},
		{"weak fails moderate minimum", valueobject.StrengthModerate, "abcdefgh", true},
		{"short but labelled moderate", valueobject.StrengthModerate, "Abc1!", true},
		{"moderate fails strong minimum", valueobject.StrengthStrong, "Abcdefgh1", true},
		{"strong passes strong minimum", valueobject.StrengthStrong, "Abcdefghijk1!", false},
		{"weak passes weak minimum when long enough", valueobject.StrengthWeak, "abcdefgh", false},
		{"invalid minimum defaults to moderate", valueobject.StrengthLabel("Bogus"), "abcdefgh", true},
		{"longer than bcrypt allows", valueobject.StrengthWeak, strings.Repeat("Ab1!", 19), true},
		{"eight runes of multibyte text", valueobject.StrengthWeak, "éééééééé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newPasswordServiceWithCost(tt.minStrength, bcrypt.MinCost)
			err := svc.ValidatePasswordStrength(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePasswordStrength(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestPasswordService_EvaluateStrength(t *testing.T) {
	svc := NewPasswordService(valueobject.StrengthModerate)

	result := svc.EvaluateStrength("Password1")
	if result.Score != 3 || result.Label != valueobject.StrengthModerate || result.Class != valueobject.StrengthClassModerate {
		t.Errorf("unexpected result %+v", result)
	}
}
