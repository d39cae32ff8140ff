package revision

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/arowla/django-versions/pkg/model"
	modelstatus "github.com/arowla/django-versions/pkg/model/status"
	"github.com/arowla/django-versions/pkg/repo"
	"github.com/arowla/django-versions/pkg/repo/bdgr"
	repolocalfs "github.com/arowla/django-versions/pkg/repo/localfs"
	repostatus "github.com/arowla/django-versions/pkg/repo/status"
	storagelocalfs "github.com/arowla/django-versions/pkg/storage/localfs"
)

// Builder constructs a backend repository handle from its configuration
type Builder func(name string, cfg model.RepoConfig, l *zap.Logger) (repo.Repository, error)

// builders maps backend kind identifiers to their constructors
var builders = map[string]Builder{
	"localfs": func(name string, cfg model.RepoConfig, l *zap.Logger) (repo.Repository, error) {
		fs := afero.NewBasePathFs(afero.NewOsFs(), cfg.Local)
		return repolocalfs.New(name, storagelocalfs.New(fs), repolocalfs.Logger(l)), nil
	},
	"badger": func(name string, cfg model.RepoConfig, l *zap.Logger) (repo.Repository, error) {
		return bdgr.New(name, cfg.Local, bdgr.Logger(l))
	},
}

// registry lazily constructs and caches one repository handle per
// configured name. Handles live for the manager's lifetime and are
// shared by all execution contexts.
type registry struct {
	cfg model.Config

	mu       sync.Mutex
	repos    map[string]repo.Repository
	injected bool
}

func newRegistry(cfg model.Config) *registry {
	return &registry{
		cfg:   cfg,
		repos: map[string]repo.Repository{},
	}
}

func (g *registry) validate() error {
	if len(g.cfg) == 0 {
		if g.injected {
			return nil
		}
		return modelstatus.ErrConfiguration.Wrap(
			fmt.Errorf("no repositories configured"))
	}
	return g.cfg.Validate()
}

func (g *registry) inject(name string, r repo.Repository) {
	g.mu.Lock()
	g.repos[name] = r
	g.injected = true
	g.mu.Unlock()
}

func (g *registry) get(name string, l *zap.Logger) (repo.Repository, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.repos[name]; ok {
		return r, nil
	}
	cfg, ok := g.cfg[name]
	if !ok {
		return nil, modelstatus.ErrConfiguration.Wrap(
			fmt.Errorf("repository %q is not configured", name))
	}
	if cfg.Backend == "" || cfg.Local == "" {
		return nil, modelstatus.ErrConfiguration.Wrap(
			fmt.Errorf("you must specify all required configuration attributes for the %q repository", name))
	}
	build, ok := builders[cfg.Backend]
	if !ok {
		return nil, repostatus.ErrUnknownBackend.Wrap(
			fmt.Errorf("repository %q configured with unsupported backend %q", name, cfg.Backend))
	}
	r, err := build(name, cfg, l)
	if err != nil {
		return nil, err
	}
	g.repos[name] = r
	return r, nil
}
