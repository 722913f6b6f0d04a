package scaling

import (
	"fmt"
	"strings"
)

// ValidationError is one input violation found before scaling.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every violation found in one validation pass.
// Callers get the complete list up front instead of fixing inputs one error
// at a time.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "invalid scaling input: " + strings.Join(msgs, "; ")
}

// Any reports whether at least one violation was found.
func (e ValidationErrors) Any() bool {
	return len(e) > 0
}
