// Package file provides a file-based implementation of driven.ConfigStore.
//
// Configuration is a TOML document. Nested tables are flattened into
// dot-notation keys, so
//
//	[targets.loader]
//	global = "globalThis"
//
// is read as the key "targets.loader.global".
package file
