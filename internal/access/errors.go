package access

import "fmt"

// DeniedError is an expected business-rule rejection. Required and Current are
// surfaced verbatim in the 403 payload.
type DeniedError struct {
	Required string `json:"required"`
	Current  string `json:"current"`
	Reason   string `json:"reason"`
}

func (e *DeniedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("access denied: %s (required %s, current %s)", e.Reason, e.Required, e.Current)
	}
	return fmt.Sprintf("access denied: required %s, current %s", e.Required, e.Current)
}
