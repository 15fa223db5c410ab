package models

import "fmt"

// ModelNotFoundError is returned when a lookup matches no row.
type ModelNotFoundError struct {
	modelName string
}

func (e ModelNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.modelName)
}

// IsNotFoundError reports whether err represents a missing model instance.
func IsNotFoundError(err error) bool {
	_, ok := err.(ModelNotFoundError)
	return ok
}
