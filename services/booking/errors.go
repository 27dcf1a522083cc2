package booking

import "fmt"

// InsufficientCreditsError blocks a submission before any network call when
// the last-known balance cannot cover the slot price.
type InsufficientCreditsError struct {
	Required  float64
	Available float64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: need %.2f, have %.2f", e.Required, e.Available)
}

// WizardStateError reports an operation called in the wrong wizard step.
type WizardStateError struct {
	Message string
}

func (e *WizardStateError) Error() string { return e.Message }

func newStateError(format string, args ...any) error {
	return &WizardStateError{Message: fmt.Sprintf(format, args...)}
}
