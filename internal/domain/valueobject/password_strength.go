// Package valueobject contains domain value objects for the passmeter service.
package valueobject

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// StrengthLabel is the qualitative strength of a password.
type StrengthLabel string

const (
	StrengthWeak     StrengthLabel = "Weak"
	StrengthModerate StrengthLabel = "Moderate"
	StrengthStrong   StrengthLabel = "Strong"
)

// Style classes written next to the password field by the sign-up page.
const (
	StrengthClassWeak     = "text-danger"
	StrengthClassModerate = "text-warning"
	StrengthClassStrong   = "text-success"
)

const (
	// MaxStrengthScore is the highest score EvaluatePasswordStrength can produce.
	MaxStrengthScore = 5

	// MinPasswordLength is the shortest password accepted for an account.
	MinPasswordLength = 8

	lengthThreshold     = 7
	longLengthThreshold = 11

	moderateScore = 2
	strongScore   = 4
)

// StrengthResult is the outcome of a single password evaluation.
type StrengthResult struct {
	Score int
	Label StrengthLabel
	Class string
}

// EvaluatePasswordStrength scores a password from 0 to 5 and classifies it.
//
// One point each for a length above 7 and above 11, an ASCII uppercase letter,
// an ASCII digit, and any character outside [A-Za-z0-9]. Letters outside A-Z
// never count as uppercase.
//
// Length is measured in UTF-16 code units, the way the sign-up page measures it,
// so a character outside the Basic Multilingual Plane counts twice.
func EvaluatePasswordStrength(password string) StrengthResult {
	score := 0

	length := len(utf16.Encode([]rune(password)))
	if length > lengthThreshold {
		score++
	}
	if length > longLengthThreshold {
		score++
	}

	var hasUpper, hasDigit, hasOther bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
		default:
			hasOther = true
		}
	}
	if hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if hasOther {
		score++
	}

	return StrengthResultForScore(score)
}

// StrengthResultForScore maps a score onto its label and style class.
func StrengthResultForScore(score int) StrengthResult {
	switch {
	case score < moderateScore:
		return StrengthResult{Score: score, Label: StrengthWeak, Class: StrengthClassWeak}
	case score < strongScore:
		return StrengthResult{Score: score, Label: StrengthModerate, Class: StrengthClassModerate}
	default:
		return StrengthResult{Score: score, Label: StrengthStrong, Class: StrengthClassStrong}
	}
}

// rank orders labels from weakest to strongest.
func (l StrengthLabel) rank() int {
	switch l {
	case StrengthWeak:
		return 0
	case StrengthModerate:
		return 1
	case StrengthStrong:
		return 2
	default:
		return -1
	}
}

// IsValid reports whether l is one of the three known labels.
func (l StrengthLabel) IsValid() bool {
	return l.rank() >= 0
}

// AtLeast reports whether l is as strong as min or stronger.
func (l StrengthLabel) AtLeast(min StrengthLabel) bool {
	return l.IsValid() && l.rank() >= min.rank()
}

// String implements fmt.Stringer.
func (l StrengthLabel) String() string {
	return string(l)
}

// ParseStrengthLabel parses a label case-insensitively.
func ParseStrengthLabel(s string) (StrengthLabel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weak":
		return StrengthWeak, nil
	case "moderate":
		return StrengthModerate, nil
	case "strong":
		return StrengthStrong, nil
	default:
		return "", fmt.Errorf("unknown password strength %q", s)
	}
}
