package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/libpatch/internal/core/domain"
	"github.com/custodia-labs/libpatch/internal/core/ports/driven"
	"github.com/custodia-labs/libpatch/internal/core/ports/driving"
)

// Ensure TargetService implements the interface.
var _ driving.TargetService = (*TargetService)(nil)

// Config keys for target storage.
const (
	keyTargetsPrefix = "targets."
	keyDefaultGlobal = "defaults.global"

	fieldURL        = "url"
	fieldOutput     = "output"
	fieldStrategy   = "strategy"
	fieldIdentifier = "identifier"
	fieldGlobal     = "global"
	fieldMinSize    = "min_size"
)

// TargetService resolves targets from built-in defaults overlaid with
// configuration. A target is configured with keys of the form
// targets.<name>.<field>.
type TargetService struct {
	configStore driven.ConfigStore
}

// NewTargetService creates a new target service.
// configStore may be nil, in which case only the built-in targets exist.
func NewTargetService(configStore driven.ConfigStore) *TargetService {
	return &TargetService{configStore: configStore}
}

// List returns all targets: built-ins first, then config-defined targets
// sorted by name.
func (s *TargetService) List() ([]domain.Target, error) {
	defaults := domain.DefaultTargets()
	builtin := make(map[string]bool, len(defaults))

	targets := make([]domain.Target, 0, len(defaults))
	for _, t := range defaults {
		builtin[t.Name] = true
		resolved, err := s.resolve(t)
		if err != nil {
			return nil, err
		}
		targets = append(targets, resolved)
	}

	for _, name := range s.configuredNames() {
		if builtin[name] {
			continue
		}
		resolved, err := s.resolve(domain.Target{
			Name:       name,
			Identifier: domain.DefaultIdentifier,
			Global:     domain.DefaultGlobal,
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, resolved)
	}

	return targets, nil
}

// Get returns a target by name.
func (s *TargetService) Get(name string) (*domain.Target, error) {
	targets, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range targets {
		if targets[i].Name == name {
			return &targets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: target %q", domain.ErrNotFound, name)
}

// resolve overlays configuration onto base and validates the result.
func (s *TargetService) resolve(base domain.Target) (domain.Target, error) {
	t := base
	if s.configStore == nil {
		return t, t.Validate()
	}

	if global := s.configStore.GetString(keyDefaultGlobal); global != "" {
		t.Global = global
	}

	prefix := keyTargetsPrefix + t.Name + "."
	t.URL = s.getString(prefix+fieldURL, t.URL)
	t.Output = s.getString(prefix+fieldOutput, t.Output)
	t.Identifier = s.getString(prefix+fieldIdentifier, t.Identifier)
	t.Global = s.getString(prefix+fieldGlobal, t.Global)
	t.MinSize = s.getInt(prefix+fieldMinSize, t.MinSize)

	if raw := s.configStore.GetString(prefix + fieldStrategy); raw != "" {
		strategy, err := domain.ParseStrategy(raw)
		if err != nil {
			return t, fmt.Errorf("target %s: %w", t.Name, err)
		}
		t.Strategy = strategy
	}

	return t, t.Validate()
}

// configuredNames returns the target names that appear in configuration, sorted.
func (s *TargetService) configuredNames() []string {
	if s.configStore == nil {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, key := range s.configStore.Keys() {
		rest, ok := strings.CutPrefix(key, keyTargetsPrefix)
		if !ok {
			continue
		}
		name, _, ok := strings.Cut(rest, ".")
		if !ok || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *TargetService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt distinguishes a missing key from an explicit zero.
func (s *TargetService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}
