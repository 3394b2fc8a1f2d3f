package catalog

import "fmt"

// ValidationError reports a request that breaks an input rule. It is raised
// before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError reports a lookup by ID that matched nothing.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("couldn't find %s with 'id'=%s", e.Resource, e.ID)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
