package model

import (
	"fmt"

	"github.com/arowla/django-versions/pkg/model/status"
)

// DefaultRepository is the repository name records route to unless
// their kind was registered with an explicit repository.
const DefaultRepository = "default"

// RepoConfig describes one named backend repository.
type RepoConfig struct {
	// Backend selects the repository implementation, e.g. "localfs" or "badger"
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Local is the backend's local storage location
	Local string `json:"local" yaml:"local" mapstructure:"local"`

	// Remote optionally names a remote location to synchronize with.
	// It is recorded for backends that support it and ignored otherwise.
	Remote string `json:"remote,omitempty" yaml:"remote,omitempty" mapstructure:"remote"`
}

// Config maps repository names to their backend configuration.
// A "default" entry is mandatory.
type Config map[string]RepoConfig

// Validate checks that a default repository is configured and that
// every entry specifies a backend kind and a local storage location.
func (c Config) Validate() error {
	if _, ok := c[DefaultRepository]; !ok {
		return status.ErrConfiguration.Wrap(
			fmt.Errorf("you must always configure a %q repository", DefaultRepository))
	}
	for name, repo := range c {
		if repo.Backend == "" || repo.Local == "" {
			return status.ErrConfiguration.Wrap(
				fmt.Errorf("you must specify all required configuration attributes for the %q repository", name))
		}
	}
	return nil
}
