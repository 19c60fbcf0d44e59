package account

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConnectionString is matched by every ConfigurationError
	ErrInvalidConnectionString = errors.New("invalid storage connection string")

	// Account construction errors
	ErrEmptyAccountName = errors.New("account name cannot be empty")
	ErrEmptyAccountKey  = errors.New("account key cannot be empty")
	ErrNilCredential    = errors.New("token credential cannot be nil")
)

// ConfigurationError reports a connection string that cannot be turned into
// account credentials. Setting is empty when the problem is not tied to a
// single key.
type ConfigurationError struct {
	Setting string
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := ErrInvalidConnectionString.Error()
	if e.Setting != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Setting)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvalidConnectionString) match any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConnectionString
}

func configErr(setting, reason string) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Reason: reason}
}
