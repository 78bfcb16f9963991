package domain

import (
	"batepapo/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateParticipant checks the registration constraints (name present,
// 1 to 100 characters).
func ValidateParticipant(p Participant) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return nil
}

// ValidateMessage checks the posting schema: from/to/text non-empty and
// type restricted to the enumerated variants.
func ValidateMessage(m Message) error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return nil
}
