package story

import "strings"

// MinDescriptionLen is the minimum trimmed description length accepted
// before a draft is allowed to reach the network.
const MinDescriptionLen = 10

// ValidationError reports a single field-scoped problem with a draft.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks a draft before submission. An empty description reports
// only the required-field error; a non-empty description shorter than
// MinDescriptionLen reports only the length error.
func (d Draft) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(d.Heading) == "" {
		errs = append(errs, ValidationError{Field: "heading", Message: "heading is required"})
	}

	desc := strings.TrimSpace(d.Description)
	switch {
	case desc == "":
		errs = append(errs, ValidationError{Field: "description", Message: "description is required"})
	case len(desc) < MinDescriptionLen:
		errs = append(errs, ValidationError{Field: "description", Message: "description must be at least 10 characters"})
	}

	return errs
}
