package strength

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/passmeter/backend/internal/application/adapter"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/domain/valueobject"
)

type stubPasswordService struct{}

func (stubPasswordService) HashPassword(password string) (string, error) { return "hash:" + password, nil }

func (stubPasswordService) VerifyPassword(hashedPassword, password string) error { return nil }

func (stubPasswordService) EvaluateStrength(password string) valueobject.StrengthResult {
	return valueobject.EvaluatePasswordStrength(password)
}

func (stubPasswordService) ValidatePasswordStrength(password string) error { return nil }

type stubEstimator struct {
	gotInputs []string
}

func (s *stubEstimator) Estimate(password string, userInputs []string) adapter.StrengthEstimate {
	s.gotInputs = userInputs
	return adapter.StrengthEstimate{Score: 1, EntropyBits: 12.5, CrackTime: "instant"}
}

type stubRecorder struct {
	labels []string
}

func (s *stubRecorder) RecordEvaluation(label string) {
	s.labels = append(s.labels, label)
}

func TestEvaluatePasswordUseCase_Execute(t *testing.T) {
	t.Run("returns heuristic result with advisory estimate", func(t *testing.T) {
		estimator := &stubEstimator{}
		recorder := &stubRecorder{}
		uc := NewEvaluatePasswordUseCase(stubPasswordService{}, estimator, recorder)

		output, err := uc.Execute(context.Background(), EvaluatePasswordInput{
			Password:   "Abcdefghijk1!",
			UserInputs: []string{"jane@example.com"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Result.Label != valueobject.StrengthStrong || output.Result.Score != 5 {
			t.Errorf("expected Strong/5, got %s/%d", output.Result.Label, output.Result.Score)
		}
		if output.Estimate == nil || output.Estimate.Score != 1 {
			t.Errorf("expected estimate to be attached, got %+v", output.Estimate)
		}
		if len(estimator.gotInputs) != 1 || estimator.gotInputs[0] != "jane@example.com" {
			t.Errorf("expected user inputs to be forwarded, got %v", estimator.gotInputs)
		}
		if len(recorder.labels) != 1 || recorder.labels[0] != "Strong" {
			t.Errorf("expected one Strong evaluation recorded, got %v", recorder.labels)
		}
	})

	t.Run("empty password is weak", func(t *testing.T) {
		uc := NewEvaluatePasswordUseCase(stubPasswordService{}, nil, nil)

		output, err := uc.Execute(context.Background(), EvaluatePasswordInput{Password: ""})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Result.Label != valueobject.StrengthWeak {
			t.Errorf("expected Weak, got %s", output.Result.Label)
		}
		if output.Estimate != nil {
			t.Errorf("expected no estimate without an estimator, got %+v", output.Estimate)
		}
	})

	t.Run("rejects oversized passwords", func(t *testing.T) {
		recorder := &stubRecorder{}
		uc := NewEvaluatePasswordUseCase(stubPasswordService{}, nil, recorder)

		_, err := uc.Execute(context.Background(), EvaluatePasswordInput{
			Password: strings.Repeat("a", MaxPasswordBytes+1),
		})

		var strengthErr *domainerror.StrengthError
		if !errors.As(err, &strengthErr) {
			t.Fatalf("expected StrengthError, got %v", err)
		}
		if strengthErr.Code != domainerror.ErrCodePasswordTooLong {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodePasswordTooLong, strengthErr.Code)
		}
		if len(recorder.labels) != 0 {
			t.Errorf("expected nothing recorded, got %v", recorder.labels)
		}
	})

	t.Run("accepts a password at the limit", func(t *testing.T) {
		uc := NewEvaluatePasswordUseCase(stubPasswordService{}, nil, nil)

		output, err := uc.Execute(context.Background(), EvaluatePasswordInput{
			Password: strings.Repeat("a", MaxPasswordBytes),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Result.Score != 2 {
			t.Errorf("expected score 2, got %d", output.Result.Score)
		}
	})
}
