package identifier

import (
	"errors"
	"fmt"
)

// ErrSequenceExhausted is returned when every 4-digit suffix of a (hotel, role)
// pair, or every ID of an entity range, is taken.
var ErrSequenceExhausted = errors.New("identifier: sequence exhausted")

// ConfigurationError reports a role with no identifier code. It is a programmer
// error and should surface as a 500.
type ConfigurationError struct {
	Role string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("identifier: no role code configured for role %q", e.Role)
}

// FormatError reports a malformed identifier.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("identifier: malformed %q: %s", e.Input, e.Reason)
}
