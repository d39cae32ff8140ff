// Package status declares error constants returned by repository
// backends and by Version resolution.
package status

import "github.com/arowla/django-versions/pkg/errors"

var (
	// ErrVersionDoesNotExist indicates that an item has no state at the requested revision
	ErrVersionDoesNotExist = errors.New("version does not exist")

	// ErrMultipleParents indicates a commit with more than one parent where a linear history is assumed
	ErrMultipleParents = errors.New("found multiple parents for commit")

	// ErrStorage indicates a backend I/O or durability failure; nothing was committed
	ErrStorage = errors.New("repository storage failure")

	// ErrUnknownBackend indicates a repository configured with an unsupported backend kind
	ErrUnknownBackend = errors.New("unknown repository backend")
)
