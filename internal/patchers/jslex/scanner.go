package jslex

import "strings"

// Context classifies a byte of JavaScript source.
type Context uint8

// Byte contexts.
const (
	Code Context = iota
	String
	Template
	LineComment
	BlockComment
	Regex
)

// String returns the context name.
func (c Context) String() string {
	switch c {
	case Code:
		return "code"
	case String:
		return "string"
	case Template:
		return "template"
	case LineComment:
		return "line_comment"
	case BlockComment:
		return "block_comment"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// Keywords after which a slash starts a regular expression literal.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"of": true, "new": true, "delete": true, "void": true, "throw": true,
	"case": true, "do": true, "else": true, "yield": true, "await": true,
}

// Source is scanned JavaScript text.
type Source struct {
	text string
	ctx  []Context
}

// Scan classifies every byte of text.
func Scan(text string) *Source {
	s := &Source{text: text, ctx: make([]Context, len(text))}
	s.scan()
	return s
}

// Text returns the scanned text.
func (s *Source) Text() string {
	return s.text
}

// ContextAt returns the context of the byte at i.
func (s *Source) ContextAt(i int) Context {
	return s.ctx[i]
}

// InCode returns true if every byte in [start, end) is code.
func (s *Source) InCode(start, end int) bool {
	if start < 0 || end > len(s.text) || start >= end {
		return false
	}
	for i := start; i < end; i++ {
		if s.ctx[i] != Code {
			return false
		}
	}
	return true
}

// IndexAll returns the offsets of every non-overlapping occurrence of
// needle that lies entirely in code.
func (s *Source) IndexAll(needle string) []int {
	if needle == "" {
		return nil
	}
	var offsets []int
	for from := 0; from <= len(s.text)-len(needle); {
		i := strings.Index(s.text[from:], needle)
		if i < 0 {
			break
		}
		at := from + i
		if s.InCode(at, at+len(needle)) {
			offsets = append(offsets, at)
			from = at + len(needle)
			continue
		}
		from = at + 1
	}
	return offsets
}

// LastIndex returns the offset of the last occurrence of needle that lies
// entirely in code, or -1.
func (s *Source) LastIndex(needle string) int {
	if needle == "" {
		return -1
	}
	end := len(s.text)
	for {
		i := strings.LastIndex(s.text[:end], needle)
		if i < 0 {
			return -1
		}
		if s.InCode(i, i+len(needle)) {
			return i
		}
		end = i + len(needle) - 1
	}
}

// SkipSpace returns the first offset at or after i that is neither
// whitespace nor a comment.
func (s *Source) SkipSpace(i int) int {
	for i < len(s.text) {
		c := s.ctx[i]
		if c == LineComment || c == BlockComment || (c == Code && isSpace(s.text[i])) {
			i++
			continue
		}
		break
	}
	return i
}

// WordAt returns the identifier or keyword starting at i, or "" if i is
// not in code or is in the middle of a word.
func (s *Source) WordAt(i int) string {
	if i < 0 || i >= len(s.text) || s.ctx[i] != Code || !isIdentStart(s.text[i]) {
		return ""
	}
	if i > 0 && s.ctx[i-1] == Code && isIdentPart(s.text[i-1]) {
		return ""
	}
	end := i + 1
	for end < len(s.text) && s.ctx[end] == Code && isIdentPart(s.text[end]) {
		end++
	}
	return s.text[i:end]
}

// scan fills s.ctx. Template literal nesting is tracked with a stack of
// brace depths so that code inside ${...} is classified as code.
func (s *Source) scan() {
	text := s.text
	var templates []int
	depth := 0

	for i := 0; i < len(text); {
		ch := text[i]
		switch {
		case ch == '"' || ch == '\'':
			i = s.fill(i, s.scanString(i, ch), String)
		case ch == '`':
			i = s.fill(i, s.scanTemplate(i+1), Template)
			if i > 0 && i <= len(text) && text[i-1] == '{' && s.ctx[i-1] == Template {
				templates = append(templates, depth)
				depth++
			}
		case ch == '/' && i+1 < len(text) && text[i+1] == '/':
			i = s.fill(i, lineEnd(text, i), LineComment)
		case ch == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				i = s.fill(i, len(text), BlockComment)
			} else {
				i = s.fill(i, i+2+end+2, BlockComment)
			}
		case ch == '/' && s.regexAllowed(i):
			i = s.fill(i, s.scanRegex(i), Regex)
		case ch == '{':
			depth++
			i = s.fill(i, i+1, Code)
		case ch == '}':
			if n := len(templates); n > 0 && templates[n-1] == depth-1 {
				// Closes a ${...} substitution: resume the template text.
				templates = templates[:n-1]
				depth--
				s.ctx[i] = Template
				i = s.fill(i+1, s.scanTemplate(i+1), Template)
				if i > 0 && i <= len(text) && text[i-1] == '{' && s.ctx[i-1] == Template {
					templates = append(templates, depth)
					depth++
				}
				continue
			}
			if depth > 0 {
				depth--
			}
			i = s.fill(i, i+1, Code)
		default:
			i = s.fill(i, i+1, Code)
		}
	}
}

// fill marks [start, end) with ctx and returns end.
func (s *Source) fill(start, end int, ctx Context) int {
	for i := start; i < end; i++ {
		s.ctx[i] = ctx
	}
	return end
}

// scanString returns the offset just past a quoted string starting at i.
func (s *Source) scanString(i int, quote byte) int {
	text := s.text
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(text)
}

// scanTemplate returns the offset just past the end of template text that
// starts at i: either past the closing backtick or past a "${".
func (s *Source) scanTemplate(i int) int {
	text := s.text
	for j := i; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '`':
			return j + 1
		case '$':
			if j+1 < len(text) && text[j+1] == '{' {
				return j + 2
			}
		}
	}
	return len(text)
}

// scanRegex returns the offset just past a regex literal starting at i,
// including its flags.
func (s *Source) scanRegex(i int) int {
	text := s.text
	inClass := false
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return j
		case '/':
			if inClass {
				continue
			}
			j++
			for j < len(text) && isIdentPart(text[j]) {
				j++
			}
			return j
		}
	}
	return len(text)
}

// regexAllowed decides whether the slash at i starts a regex literal,
// based on the previous significant byte.
func (s *Source) regexAllowed(i int) bool {
	j := s.prevSignificant(i - 1)
	if j < 0 {
		return true
	}
	if s.ctx[j] != Code {
		return false
	}
	prev := s.text[j]
	switch {
	case isIdentPart(prev):
		start := j
		for start > 0 && s.ctx[start-1] == Code && isIdentPart(s.text[start-1]) {
			start--
		}
		// A keyword used as a property name (x.return) is an operand.
		if k := s.prevSignificant(start - 1); k >= 0 && s.ctx[k] == Code && s.text[k] == '.' {
			return false
		}
		return regexKeywords[s.text[start:j+1]]
	case prev == ')' || prev == ']':
		return false
	case (prev == '+' || prev == '-') && j > 0 && s.text[j-1] == prev && s.ctx[j-1] == Code:
		// Postfix i++ / a-- ends an operand; prefix ++ cannot precede a regex.
		k := s.prevSignificant(j - 2)
		if k < 0 {
			return true
		}
		if s.ctx[k] != Code {
			return false
		}
		before := s.text[k]
		return !(isIdentPart(before) || before == ')' || before == ']')
	default:
		return true
	}
}

// prevSignificant returns the offset of the last byte at or before j that
// is neither whitespace nor a comment, or -1.
func (s *Source) prevSignificant(j int) int {
	for j >= 0 {
		c := s.ctx[j]
		if c == LineComment || c == BlockComment || (c == Code && isSpace(s.text[j])) {
			j--
			continue
		}
		break
	}
	return j
}

func lineEnd(text string, i int) int {
	if n := strings.IndexByte(text[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(text)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
