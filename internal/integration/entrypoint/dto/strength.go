package dto

import (
	"github.com/passmeter/backend/internal/application/adapter"
	"github.com/passmeter/backend/internal/domain/valueobject"
)

// PasswordStrengthRequest represents the request body for a strength evaluation.
// Password is a pointer so that an empty string is accepted while an absent field is not.
type PasswordStrengthRequest struct {
	Password   *string  `json:"password" binding:"required"`
	UserInputs []string `json:"user_inputs" binding:"omitempty,max=20,dive,max=256"`
}

// StrengthLabelResponse carries the meter's score, label and display class.
type StrengthLabelResponse struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Class string `json:"class"`
}

// StrengthEstimateResponse carries the advisory entropy estimate.
type StrengthEstimateResponse struct {
	Score       int     `json:"score"`
	EntropyBits float64 `json:"entropy_bits"`
	CrackTime   string  `json:"crack_time"`
}

// PasswordStrengthResponse represents the response for a strength evaluation.
type PasswordStrengthResponse struct {
	StrengthLabelResponse
	Estimate *StrengthEstimateResponse `json:"estimate,omitempty"`
}

// ToStrengthLabelResponse converts a StrengthResult to its response DTO.
func ToStrengthLabelResponse(result valueobject.StrengthResult) StrengthLabelResponse {
	return StrengthLabelResponse{
		Score: result.Score,
		Label: result.Label.String(),
		Class: result.Class,
	}
}

// ToPasswordStrengthResponse builds the evaluation response.
func ToPasswordStrengthResponse(result valueobject.StrengthResult, estimate *adapter.StrengthEstimate) PasswordStrengthResponse {
	response := PasswordStrengthResponse{StrengthLabelResponse: ToStrengthLabelResponse(result)}
	if estimate != nil {
		response.Estimate = &StrengthEstimateResponse{
			Score:       estimate.Score,
			EntropyBits: estimate.EntropyBits,
			CrackTime:   estimate.CrackTime,
		}
	}
	return response
}
