package driver

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"luaufmt/internal/config"
	"luaufmt/internal/project"
)

// configResolver finds the configuration for each formatted file. Config
// files are looked up from the file's directory upwards and loaded once.
type configResolver struct {
	fixed  *config.Config
	logger *log.Logger

	mu     sync.Mutex
	byDir  map[string]string
	loaded map[string]config.Config
}

func newConfigResolver(fixed *config.Config, logger *log.Logger) *configResolver {
	return &configResolver{
		fixed:  fixed,
		logger: logger,
		byDir:  make(map[string]string),
		loaded: make(map[string]config.Config),
	}
}

func (r *configResolver) forPath(path string) (config.Config, error) {
	if r.fixed != nil {
		return *r.fixed, nil
	}
	dir := filepath.Dir(path)

	r.mu.Lock()
	defer r.mu.Unlock()

	cfgPath, ok := r.byDir[dir]
	if !ok {
		found, exists, err := project.FindConfig(dir)
		if err != nil {
			return config.Config{}, err
		}
		if exists {
			cfgPath = found
		}
		r.byDir[dir] = cfgPath
	}
	if cfgPath == "" {
		return config.Default(), nil
	}
	if cfg, ok := r.loaded[cfgPath]; ok {
		return cfg, nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	r.logger.Debug("loaded config", "path", cfgPath)
	r.loaded[cfgPath] = cfg
	return cfg, nil
}

// ResolveConfig returns the configuration that applies to path and the file
// it came from. An empty file means the defaults are in effect.
func ResolveConfig(path string) (config.Config, string, error) {
	found, ok, err := project.FindConfig(path)
	if err != nil {
		return config.Config{}, "", err
	}
	if !ok {
		return config.Default(), "", nil
	}
	cfg, err := config.Load(found)
	if err != nil {
		return config.Config{}, found, err
	}
	return cfg, found, nil
}
