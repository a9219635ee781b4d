package events

import "errors"

// FatalError marks a handler failure that redelivery cannot fix, such as a
// malformed payload. The subscriber routes the message straight to the
// dead-letter queue instead of retrying it.
type FatalError struct {
	Err error
}

// Fatal wraps err as a FatalError. A nil err returns nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

func (e *FatalError) Error() string {
	return "fatal: " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err carries a FatalError anywhere in its chain.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
