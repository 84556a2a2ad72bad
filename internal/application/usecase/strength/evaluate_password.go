// Package strength contains password strength use cases.
package strength

import (
	"context"
	"fmt"

	"github.com/passmeter/backend/internal/application/adapter"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/domain/valueobject"
)

// MaxPasswordBytes bounds the input accepted for evaluation.
const MaxPasswordBytes = 1024

// EvaluatePasswordInput represents the input for a strength evaluation.
type EvaluatePasswordInput struct {
	Password   string
	UserInputs []string
}

// EvaluatePasswordOutput represents the output of a strength evaluation.
type EvaluatePasswordOutput struct {
	Result   valueobject.StrengthResult
	Estimate *adapter.StrengthEstimate
}

// EvaluatePasswordUseCase scores a password for the sign-up strength meter.
type EvaluatePasswordUseCase struct {
	passwordService adapter.PasswordService
	estimator       adapter.StrengthEstimator
	recorder        adapter.StrengthRecorder
}

// NewEvaluatePasswordUseCase creates a new EvaluatePasswordUseCase instance.
// estimator and recorder may be nil.
func NewEvaluatePasswordUseCase(
	passwordService adapter.PasswordService,
	estimator adapter.StrengthEstimator,
	recorder adapter.StrengthRecorder,
) *EvaluatePasswordUseCase {
	return &EvaluatePasswordUseCase{
		passwordService: passwordService,
		estimator:       estimator,
		recorder:        recorder,
	}
}

// Execute evaluates the password. The label comes from the heuristic only;
// the estimate is advisory.
func (uc *EvaluatePasswordUseCase) Execute(ctx context.Context, input EvaluatePasswordInput) (*EvaluatePasswordOutput, error) {
	if len(input.Password) > MaxPasswordBytes {
		return nil, domainerror.NewStrengthError(
			domainerror.ErrCodePasswordTooLong,
			fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes),
			domainerror.ErrPasswordTooLong,
		)
	}

	result := uc.passwordService.EvaluateStrength(input.Password)

	output := &EvaluatePasswordOutput{Result: result}
	if uc.estimator != nil {
		estimate := uc.estimator.Estimate(input.Password, input.UserInputs)
		output.Estimate = &estimate
	}

	if uc.recorder != nil {
		uc.recorder.RecordEvaluation(result.Label.String())
	}

	return output, nil
}
