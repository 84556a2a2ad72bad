// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// StrengthEstimate is an advisory guess-resistance estimate for a password.
type StrengthEstimate struct {
	// Score ranges from 0 (guessable) to 4 (very unguessable).
	Score       int
	EntropyBits float64
	CrackTime   string
}

// StrengthEstimator produces an advisory estimate alongside the heuristic label.
type StrengthEstimator interface {
	// Estimate penalises passwords built from any of userInputs (email, name).
	Estimate(password string, userInputs []string) StrengthEstimate
}

// StrengthRecorder records the outcome of strength evaluations.
type StrengthRecorder interface {
	RecordEvaluation(label string)
}
