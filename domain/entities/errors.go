package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is
var (
	ErrValidation = errors.New("validation failed")
	ErrConnection = errors.New("device unreachable")
	ErrCommand    = errors.New("command rejected by device")
)

// ValidationError reports malformed declared configuration
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConnectionError reports a device that could not be reached or logged into
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return ErrConnection
}

// CommandError reports a command the device refused to accept
type CommandError struct {
	Target  string
	Command string
	Output  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("device %s rejected %q: %s", e.Target, e.Command, e.Output)
}

func (e *CommandError) Unwrap() error {
	return ErrCommand
}
