package model

import (
	"fmt"
	"sync"

	"github.com/arowla/django-versions/pkg/model/status"
)

// Options configures how one record kind is versioned.
//
// When Include is non empty only the listed fields are captured (plus
// the core status field). Otherwise the fields listed in Exclude are
// dropped. Repository routes the kind to a configured repository name.
type Options struct {
	Include    []string
	Exclude    []string
	Repository string
}

var (
	optionsMu sync.RWMutex
	options   = map[string]Options{}
)

// Register attaches versioning options to a record kind. It is meant to
// be called once per kind at program initialization.
//
// The core status field cannot be excluded.
func Register(kind string, opts Options) error {
	if err := ValidateKind(kind); err != nil {
		return err
	}
	for _, name := range opts.Exclude {
		if name == StatusField {
			return status.ErrOptions.Wrap(
				fmt.Errorf("cannot exclude %q from versioning of kind %q", StatusField, kind))
		}
	}
	if opts.Repository == "" {
		opts.Repository = DefaultRepository
	}
	optionsMu.Lock()
	options[kind] = opts
	optionsMu.Unlock()
	return nil
}

// OptionsFor returns the options registered for a kind, or defaults
// (capture everything, route to the default repository) when the kind
// was never registered.
func OptionsFor(kind string) Options {
	optionsMu.RLock()
	opts, ok := options[kind]
	optionsMu.RUnlock()
	if !ok {
		return Options{Repository: DefaultRepository}
	}
	return opts
}
