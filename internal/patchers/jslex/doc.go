// Package jslex provides a lightweight lexical scan of JavaScript source.
//
// It does not tokenise or parse. It classifies every byte as code, string,
// template text, comment or regular expression literal, which is enough to
// find module idioms such as `export default X;` or a UMD wrapper's
// closing `}(this))` without matching text inside strings or comments.
//
// The scan is heuristic where JavaScript itself is ambiguous (a `/` may
// start a regex or be a division). Unterminated strings and regex literals
// end at the next newline so a misclassification cannot swallow the rest
// of the file.
package jslex
