// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Fetcher: Retrieves library source text from a URL or local path
//   - Patcher: Rewrites module-style source into global-assigning source
//   - PatcherRegistry: Selects the patcher for a strategy
//   - Emitter: Writes the patched artifact to disk
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or patcher package
package driven
