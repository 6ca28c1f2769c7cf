// Package cli provides the cobra command tree for libpatch.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/libpatch/internal/core/ports/driving"
	"github.com/custodia-labs/libpatch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services holds the services the commands run against.
type Services struct {
	PatchService  driving.PatchService
	TargetService driving.TargetService
}

// ServiceFactory builds the services once global flags are parsed.
// configDir is the value of --config and may be empty.
type ServiceFactory func(configDir string) (*Services, error)

var (
	serviceFactory ServiceFactory
	patchService   driving.PatchService
	targetService  driving.TargetService

	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "libpatch [target...]",
	Short: "Fetch JavaScript libraries and patch them for global-scope use",
	Long: `libpatch downloads third-party JavaScript libraries and rewrites their
module scaffolding so they can be loaded with a plain <script> tag and
reached through a global binding such as window.ASS.

With no subcommand every configured target is processed, the same as
"libpatch run".`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	RunE:              runPatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "",
		"configuration directory (default ~/.libpatch)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	addRunFlags(rootCmd)
}

// SetServiceFactory sets the factory used to build services before a
// command runs.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// SetServices sets the services directly, bypassing the factory.
func SetServices(services *Services) {
	if services == nil {
		patchService, targetService = nil, nil
		return
	}
	patchService = services.PatchService
	targetService = services.TargetService
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// annotationNoServices marks commands that run without services, so a
// broken config file cannot stop them.
const annotationNoServices = "libpatch.no-services"

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if !needsServices(cmd) || serviceFactory == nil || (patchService != nil && targetService != nil) {
		return nil
	}

	services, err := serviceFactory(configDir)
	if err != nil {
		return err
	}
	if services == nil {
		return errors.New("service factory returned no services")
	}
	SetServices(services)
	return nil
}

// needsServices reports whether cmd or any parent uses the services.
// Cobra's generated help and completion commands never do.
func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoServices] != "" {
			return false
		}
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}
