package valueobject

import (
	"strings"
	"testing"
)

func TestEvaluatePasswordStrength(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedScore int
		expectedLabel StrengthLabel
		expectedClass string
	}{
		{
			name:          "empty password",
			password:      "",
			expectedScore: 0,
			expectedLabel: StrengthWeak,
			expectedClass: StrengthClassWeak,
		},
		{
			name:          "eight lowercase letters",
			password:      "abcdefgh",
			expectedScore: 1,
			expectedLabel: StrengthWeak,
			expectedClass: StrengthClassWeak,
		},
		{
			name:          "seven characters do not earn the length point",
			password:      "abcdefg",
			expectedScore: 0,
			expectedLabel: StrengthWeak,
			expectedClass: StrengthClassWeak,
		},
		{
			name:          "upper and digit with length nine",
			password:      "Abcdefgh1",
			expectedScore: 3,
			expectedLabel: StrengthModerate,
			expectedClass: StrengthClassModerate,
		},
		{
			name:          "twelve characters earn both length points",
			password:      "abcdefghijkl",
			expectedScore: 2,
			expectedLabel: StrengthModerate,
			expectedClass: StrengthClassModerate,
		},
		{
			name:          "eleven characters earn one length point",
			password:      "abcdefghijk",
			expectedScore: 1,
			expectedLabel: StrengthWeak,
			expectedClass: StrengthClassWeak,
		},
		{
			name:          "all checks satisfied",
			password:      "Abcdefghijk1!",
			expectedScore: 5,
			expectedLabel: StrengthStrong,
			expectedClass: StrengthClassStrong,
		},
		{
			name:          "short with full variety",
			password:      "Ab1!",
			expectedScore: 3,
			expectedLabel: StrengthModerate,
			expectedClass: StrengthClassModerate,
		},
		{
			name:          "score four is strong",
			password:      "Abcdefgh1!",
			expectedScore: 4,
			expectedLabel: StrengthStrong,
			expectedClass: StrengthClassStrong,
		},
		{
			name:          "space counts as a symbol",
			password:      "a b",
			expectedScore: 1,
			expectedLabel: StrengthWeak,
			expectedClass: StrengthClassWeak,
		},
		{
			name:          "non-ascii uppercase is not uppercase but is a symbol",
			password:      "ÉCOLE",
			expectedScore: 2,
			expectedLabel: StrengthModerate,
			expectedClass: StrengthClassModerate,
		},
		{
			name:          "non-ascii letters only",
			password:      "éèêë",
			expectedScore: 1,
			expectedLabel: StrengthWeak,
			expectedClass: StrengthClassWeak,
		},
		{
			name:          "fullwidth digits are not ascii digits",
			password:      "１２３",
			expectedScore: 1,
			expectedLabel: StrengthWeak,
			expectedClass: StrengthClassWeak,
		},
		{
			name:          "multi-byte letters count once each",
			password:      "ééééééé",
			expectedScore: 1,
			expectedLabel: StrengthWeak,
			expectedClass: StrengthClassWeak,
		},
		{
			name:          "astral characters count as two units",
			password:      "😀😀😀😀",
			expectedScore: 2,
			expectedLabel: StrengthModerate,
			expectedClass: StrengthClassModerate,
		},
		{
			name:          "six astral characters reach the long length",
			password:      "😀😀😀😀😀😀",
			expectedScore: 3,
			expectedLabel: StrengthModerate,
			expectedClass: StrengthClassModerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluatePasswordStrength(tt.password)

			if result.Score != tt.expectedScore {
				t.Errorf("expected score %d, got %d", tt.expectedScore, result.Score)
			}
			if result.Label != tt.expectedLabel {
				t.Errorf("expected label %s, got %s", tt.expectedLabel, result.Label)
			}
			if result.Class != tt.expectedClass {
				t.Errorf("expected class %s, got %s", tt.expectedClass, result.Class)
			}
		})
	}
}

func TestEvaluatePasswordStrength_AlwaysKnownLabel(t *testing.T) {
	inputs := []string{
		"", " ", "a", "Z", "0", "!", "\x00", "日本語のパスワード",
		strings.Repeat("a", 1000), "Aa1!Aa1!Aa1!Aa1!", "​​​",
	}

	for _, input := range inputs {
		result := EvaluatePasswordStrength(input)
		if !result.Label.IsValid() {
			t.Errorf("unexpected label %q for %q", result.Label, input)
		}
		if result.Score < 0 || result.Score > MaxStrengthScore {
			t.Errorf("score %d out of range for %q", result.Score, input)
		}
	}
}

func TestEvaluatePasswordStrength_Idempotent(t *testing.T) {
	for _, password := range []string{"", "abcdefgh", "Abcdefgh1", "Abcdefghijk1!"} {
		first := EvaluatePasswordStrength(password)
		second := EvaluatePasswordStrength(password)
		if first != second {
			t.Errorf("expected identical results for %q, got %+v and %+v", password, first, second)
		}
	}
}

func TestEvaluatePasswordStrength_NotMonotonicInLength(t *testing.T) {
	long := EvaluatePasswordStrength("abcdefghijklmnopqrstuvwxyz")
	short := EvaluatePasswordStrength("Ab1!")

	if long.Score != 2 {
		t.Errorf("expected long lowercase password to score 2, got %d", long.Score)
	}
	if short.Score != 3 {
		t.Errorf("expected short varied password to score 3, got %d", short.Score)
	}
	if long.Score >= short.Score {
		t.Error("expected the shorter varied password to outscore the longer plain one")
	}
}

func TestStrengthResultForScore(t *testing.T) {
	expected := map[int]StrengthLabel{
		0: StrengthWeak,
		1: StrengthWeak,
		2: StrengthModerate,
		3: StrengthModerate,
		4: StrengthStrong,
		5: StrengthStrong,
	}

	for score, label := range expected {
		if got := StrengthResultForScore(score).Label; got != label {
			t.Errorf("score %d: expected %s, got %s", score, label, got)
		}
	}
}

func TestStrengthLabel_AtLeast(t *testing.T) {
	tests := []struct {
		label    StrengthLabel
		min      StrengthLabel
		expected bool
	}{
		{StrengthWeak, StrengthWeak, true},
		{StrengthWeak, StrengthModerate, false},
		{StrengthModerate, StrengthModerate, true},
		{StrengthModerate, StrengthStrong, false},
		{StrengthStrong, StrengthWeak, true},
		{StrengthLabel("Unknown"), StrengthWeak, false},
	}

	for _, tt := range tests {
		if got := tt.label.AtLeast(tt.min); got != tt.expected {
			t.Errorf("%s.AtLeast(%s): expected %v, got %v", tt.label, tt.min, tt.expected, got)
		}
	}
}

func TestParseStrengthLabel(t *testing.T) {
	t.Run("accepts any case and surrounding space", func(t *testing.T) {
		for input, expected := range map[string]StrengthLabel{
			"weak":       StrengthWeak,
			" Moderate ": StrengthModerate,
			"STRONG":     StrengthStrong,
		} {
			got, err := ParseStrengthLabel(input)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", input, err)
			}
			if got != expected {
				t.Errorf("expected %s for %q, got %s", expected, input, got)
			}
		}
	})

	t.Run("rejects unknown labels", func(t *testing.T) {
		if _, err := ParseStrengthLabel("excellent"); err == nil {
			t.Error("expected an error for an unknown label")
		}
	})
}
