package adapters

import "testing"

func TestStrengthEstimator_Estimate(t *testing.T) {
	estimator := NewStrengthEstimator()

	t.Run("empty password", func(t *testing.T) {
		estimate := estimator.Estimate("", nil)
		if estimate.Score != 0 || estimate.EntropyBits != 0 || estimate.CrackTime != "instant" {
			t.Errorf("unexpected estimate %+v", estimate)
		}
	})

	t.Run("common password scores low", func(t *testing.T) {
		estimate := estimator.Estimate("password", nil)
		if estimate.Score > 1 {
			t.Errorf("expected score <= 1, got %d", estimate.Score)
		}
		if estimate.CrackTime == "" {
			t.Error("expected a crack time display")
		}
	})

	t.Run("random passphrase scores high", func(t *testing.T) {
		estimate := estimator.Estimate("correct-Horse-battery-staple-92!", nil)
		if estimate.Score < 3 {
			t.Errorf("expected score >= 3, got %d", estimate.Score)
		}
	})

	t.Run("email local part counts as a user input", func(t *testing.T) {
		without := estimator.Estimate("xqzvbtrw", nil)
		with := estimator.Estimate("xqzvbtrw", []string{"  XQZVBTRW@example.com "})
		if with.EntropyBits >= without.EntropyBits {
			t.Errorf("expected entropy with user inputs (%f) below entropy without (%f)", with.EntropyBits, without.EntropyBits)
		}
	})
}
