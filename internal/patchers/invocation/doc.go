// Package invocation provides a Patcher for UMD builds whose outer wrapper
// passes `this` as its final argument.
//
// Loaded as an extension content script or ES module, `this` is undefined
// at the top level, so the wrapper's closing `}(this))` is rewritten to
// pass the target global binding instead. When the idiom is missing a
// guarded global assignment is appended.
package invocation
