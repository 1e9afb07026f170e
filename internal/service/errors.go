package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials covers every authentication failure: unknown staff
// email, wrong password, unknown register number, or wrong date of birth.
// Callers must not reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// MissingColumnError aborts an import before any write when the file header
// lacks a required column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}
