package errors

import "fmt"

var (
	ErrValidation          = fmt.Errorf("invalid payload")
	ErrNameTaken           = fmt.Errorf("participant name already taken")
	ErrParticipantNotFound = fmt.Errorf("participant not found")
	ErrUnknownSender       = fmt.Errorf("sender is not a registered participant")
)
