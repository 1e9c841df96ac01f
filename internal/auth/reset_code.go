package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// GenerateResetCode returns a six digit code drawn uniformly from
// [ResetCodeMin, ResetCodeMax] using crypto/rand.
func GenerateResetCode() (string, error) {
	span := big.NewInt(constants.ResetCodeMax - constants.ResetCodeMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%0*d", constants.ResetCodeLength, n.Int64()+constants.ResetCodeMin), nil
}
