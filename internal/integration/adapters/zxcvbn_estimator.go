// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"strings"

	zxcvbn "github.com/ccojocar/zxcvbn-go"

	"github.com/passmeter/backend/internal/application/adapter"
)

// zxcvbnEstimator implements adapter.StrengthEstimator with zxcvbn.
type zxcvbnEstimator struct{}

// NewStrengthEstimator creates a zxcvbn-backed advisory estimator.
func NewStrengthEstimator() adapter.StrengthEstimator {
	return zxcvbnEstimator{}
}

// Estimate returns zxcvbn's score, entropy and crack time display.
func (zxcvbnEstimator) Estimate(password string, userInputs []string) adapter.StrengthEstimate {
	if password == "" {
		return adapter.StrengthEstimate{Score: 0, EntropyBits: 0, CrackTime: "instant"}
	}

	inputs := make([]string, 0, len(userInputs)*2)
	for _, input := range userInputs {
		input = strings.ToLower(strings.TrimSpace(input))
		if input == "" {
			continue
		}
		inputs = append(inputs, input)
		// The local part of an email is the usual thing people reuse.
		if at := strings.IndexByte(input, '@'); at > 0 {
			inputs = append(inputs, input[:at])
		}
	}

	result := zxcvbn.PasswordStrength(password, inputs)
	return adapter.StrengthEstimate{
		Score:       result.Score,
		EntropyBits: result.Entropy,
		CrackTime:   result.CrackTimeDisplay,
	}
}
