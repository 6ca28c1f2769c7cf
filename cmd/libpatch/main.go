// Command libpatch fetches JavaScript libraries and patches them so they
// attach to a global binding when loaded with a plain script tag.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/libpatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/libpatch/internal/adapters/driven/emitter"
	"github.com/custodia-labs/libpatch/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/libpatch/internal/adapters/driving/cli"
	"github.com/custodia-labs/libpatch/internal/core/ports/driven"
	"github.com/custodia-labs/libpatch/internal/core/services"
)

// Configuration keys read at startup.
const (
	keyFetchTimeout = "fetch.timeout_seconds"
	keyFetchRate    = "fetch.rate_per_second"
)

func main() {
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires adapters into the core services.
func buildServices(configDir string) (*cli.Services, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	targets := services.NewTargetService(store)
	pipeline := services.NewPipelineService(
		targets,
		fetcher.New(fetcherConfig(store)),
		services.NewDefaultPatcherRegistry(),
		emitter.New(""),
		uuid.NewString,
	)

	return &cli.Services{
		PatchService:  pipeline,
		TargetService: targets,
	}, nil
}

// fetcherConfig reads fetch settings. Unset or non-positive values keep
// the fetcher defaults.
func fetcherConfig(store driven.ConfigStore) fetcher.Config {
	var cfg fetcher.Config
	if secs := store.GetInt(keyFetchTimeout); secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if val, ok := store.Get(keyFetchRate); ok {
		switch v := val.(type) {
		case float64:
			cfg.RatePerSecond = v
		case int64:
			cfg.RatePerSecond = float64(v)
		case int:
			cfg.RatePerSecond = float64(v)
		}
	}
	return cfg
}
