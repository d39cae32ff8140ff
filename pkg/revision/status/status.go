// Package status declares error constants returned by the revision
// manager's transaction state machine.
package status

import "github.com/arowla/django-versions/pkg/errors"

var (
	// ErrNotActive indicates a transaction-scoped call made outside an active transaction
	ErrNotActive = errors.New("there is no active transaction for this context")
)
