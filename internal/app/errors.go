package app

// IntentError reports an intent dispatched in a view that does not accept
// it, or against a story the current list does not contain.
type IntentError struct {
	Intent string
	View   View
	Detail string
}

func (e *IntentError) Error() string {
	msg := e.Intent + " is not available in the " + e.View.String() + " view"
	if e.Detail != "" {
		msg = e.Intent + ": " + e.Detail
	}
	return msg
}
