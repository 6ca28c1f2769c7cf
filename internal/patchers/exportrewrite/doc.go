// Package exportrewrite provides a Patcher that turns an ES module build
// into a plain global-scope script.
//
// The library's `export default <Identifier>;` statement is rewritten into
// an assignment on the target global binding, and the whole library is
// wrapped in an IIFE that hides the AMD `define` and CommonJS `module`
// bindings so the library's own environment detection treats it as a
// plain script. When the export statement cannot be located the blunt
// keyword replacement fallback fires and the result is marked degraded.
package exportrewrite
