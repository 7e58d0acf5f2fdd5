package kernel

import (
	"fmt"
	"strings"

	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

// PincodeLength is the exact number of digits a postal pincode carries.
const PincodeLength = 6

// ErrPincodeIsNotConstructed is returned when validating a zero-value
// Pincode.
var ErrPincodeIsNotConstructed = errs.NewValueIsRequiredError(
	"pincode must be created via NewPincode constructor")

// Pincode is a 6-digit postal code, the primary manual location input for
// delivery addresses. Construction normalizes raw user input first (see
// NormalizePincode); anything that does not reduce to exactly 6 digits is
// rejected.
//
// Example:
//
//	pin, err := kernel.NewPincode("208 007")
//	// pin.String() == "208007"
type Pincode struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NormalizePincode strips every non-digit character from raw input and
// truncates the remainder to PincodeLength digits. The result may be shorter
// than PincodeLength; NewPincode is where completeness is enforced.
func NormalizePincode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == PincodeLength {
			break
		}
	}
	return b.String()
}

// NewPincode creates a Pincode from raw input. The input is normalized
// first; an error is returned unless exactly 6 digits remain.
func NewPincode(raw string) (Pincode, error) {
	normalized := NormalizePincode(raw)
	if len(normalized) != PincodeLength {
		return Pincode{}, errs.NewValueIsInvalidErrorWithCause("pincode",
			fmt.Errorf("%q does not contain exactly %d digits", raw, PincodeLength))
	}

	return Pincode{
		value: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Pincode was created through NewPincode.
func (p Pincode) Validate() error {
	return p.guard.Validate(ErrPincodeIsNotConstructed)
}

// String returns the 6-digit code.
func (p Pincode) String() string {
	return p.value
}

// IsEqual compares two pincodes for equality.
func (p Pincode) IsEqual(other Pincode) bool {
	return p.value == other.value
}
