// Package status declares error constants returned when the
// versioning configuration or per-kind options are invalid.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/model and its
// consumers.
package status

import "github.com/arowla/django-versions/pkg/errors"

var (
	// ErrConfiguration indicates a missing or malformed repositories configuration
	ErrConfiguration = errors.New("invalid repositories configuration")

	// ErrOptions indicates invalid versioning options registered for a record kind
	ErrOptions = errors.New("invalid versioning options")

	// ErrInvalidKind indicates a record kind containing unsupported characters
	ErrInvalidKind = errors.New("invalid record kind")
)
