package python

import (
	"bytes"
	"context"
	"strings"
	"unicode"

	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

// LexicalParser finds import statements with a line scanner instead of a full
// grammar. It understands comments, string literals, line continuations,
// bracketed statements and ";" separated statements. Imports nested in blocks
// are found as well; conditional and dynamic imports are not evaluated.
type LexicalParser struct{}

var _ ports.ImportParser = (*LexicalParser)(nil)

// NewLexicalParser creates a new LexicalParser.
func NewLexicalParser() *LexicalParser {
	return &LexicalParser{}
}

// Parse returns the canonical declarations of every import statement in src.
func (p *LexicalParser) Parse(ctx context.Context, path string, src []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bytes.IndexByte(src, 0) >= 0 {
		return nil, parseError(path, 1, "binary content")
	}

	statements, err := splitStatements(src)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	var decls declarations
	for _, st := range statements {
		text := importClause(st.text)
		if text == "" {
			continue
		}
		found, ok := parseImport(tokenize(text))
		if !ok {
			return nil, parseError(path, st.line, "invalid import statement")
		}
		decls.add(found...)
	}
	return decls.list, nil
}

type statement struct {
	text string
	line int
}

// splitStatements joins physical lines into logical statements. String
// literals are replaced by an empty literal and comments are dropped.
func splitStatements(src []byte) ([]statement, error) { //nolint:cyclop,funlen // Single pass state machine
	var (
		out       []statement
		buf       strings.Builder
		depth     int
		line      = 1
		startLine = 1
		openLine  int
	)
	flush := func() {
		if text := strings.TrimSpace(buf.String()); text != "" {
			out = append(out, statement{text: text, line: startLine})
		}
		buf.Reset()
	}
	write := func(b byte) {
		if buf.Len() == 0 {
			startLine = line
		}
		buf.WriteByte(b)
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '#':
			for i+1 < len(src) && src[i+1] != '\n' {
				i++
			}
		case '\'', '"':
			end, lines, ok := skipString(src, i)
			if !ok {
				return nil, lineError(line, "unterminated string literal")
			}
			write('"')
			write('"')
			line += lines
			i = end
		case '\\':
			switch {
			case i+1 < len(src) && src[i+1] == '\n':
				i++
				line++
				write(' ')
			case i+2 < len(src) && src[i+1] == '\r' && src[i+2] == '\n':
				i += 2
				line++
				write(' ')
			default:
				write(c)
			}
		case '(', '[', '{':
			if depth == 0 {
				openLine = line
			}
			depth++
			write(c)
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, lineError(line, "unmatched closing bracket")
			}
			write(c)
		case '\n':
			if depth > 0 {
				write(' ')
			} else {
				flush()
			}
			line++
		case ';':
			if depth > 0 {
				write(c)
			} else {
				flush()
			}
		case '\r', '\t', '\f':
			write(' ')
		default:
			write(c)
		}
	}
	if depth > 0 {
		return nil, lineError(openLine, "unclosed bracket")
	}
	flush()
	return out, nil
}

// skipString returns the index of the closing quote of the literal opening at
// start and the number of newlines it spans.
func skipString(src []byte, start int) (int, int, bool) {
	q := src[start]
	triple := start+2 < len(src) && src[start+1] == q && src[start+2] == q
	lines := 0
	i := start + 1
	if triple {
		i = start + 3
	}
	for ; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\\':
			if i+1 < len(src) && src[i+1] == '\n' {
				lines++
			}
			i++
		case c == '\n':
			if !triple {
				return 0, 0, false
			}
			lines++
		case c == q:
			if !triple {
				return i, lines, true
			}
			if i+2 < len(src) && src[i+1] == q && src[i+2] == q {
				return i + 2, lines, true
			}
		}
	}
	return 0, 0, false
}

// importClause returns the import statement contained in text, which may
// follow a block header on the same line ("try: import x").
func importClause(text string) string {
	for {
		if startsWithKeyword(text, "import") || startsWithKeyword(text, "from") {
			return text
		}
		idx := strings.IndexByte(text, ':')
		if idx < 0 {
			return ""
		}
		text = strings.TrimSpace(text[idx+1:])
	}
}

func startsWithKeyword(text, kw string) bool {
	if !strings.HasPrefix(text, kw) {
		return false
	}
	rest := text[len(kw):]
	return rest == "" || !isWordRune([]rune(rest)[0])
}

// tokenize splits an import statement into dotted words and punctuation.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flushWord := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}
	for _, r := range text {
		switch {
		case isWordRune(r) || r == '.':
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flushWord()
		default:
			flushWord()
			tokens = append(tokens, string(r))
		}
	}
	flushWord()
	return tokens
}

// parseImport turns the tokens of one import statement into declarations.
func parseImport(tokens []string) ([]string, bool) {
	if module, ok := strings.CutPrefix(tokens[0], "from."); ok {
		// "from.mod import x" has no space after the keyword.
		tokens = append([]string{"from", "." + module}, tokens[1:]...)
	}
	switch tokens[0] {
	case "import":
		var out []string
		for _, item := range splitItems(tokens[1:]) {
			name, ok := aliased(item)
			if !ok || !isDottedName(name) {
				return nil, false
			}
			out = append(out, name)
		}
		return out, len(out) > 0
	case "from":
		if len(tokens) < 4 || tokens[2] != "import" || !isModuleRef(tokens[1]) {
			return nil, false
		}
		module := tokens[1]
		names := tokens[3:]
		if len(names) == 1 && names[0] == "*" {
			return []string{module}, true
		}
		var out []string
		for _, item := range splitItems(names) {
			name, ok := aliased(item)
			if !ok || !isIdentifier(name) {
				return nil, false
			}
			out = append(out, join(module, name))
		}
		return out, len(out) > 0
	}
	return nil, false
}

// splitItems splits a comma separated, optionally parenthesised name list.
// A trailing comma inside parentheses is allowed.
func splitItems(tokens []string) [][]string {
	if len(tokens) >= 2 && tokens[0] == "(" && tokens[len(tokens)-1] == ")" {
		tokens = tokens[1 : len(tokens)-1]
	}
	var items [][]string
	var cur []string
	for _, t := range tokens {
		if t == "," {
			items = append(items, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 || len(items) == 0 {
		items = append(items, cur)
	}
	return items
}

// aliased returns the name of "name" or "name as alias".
func aliased(item []string) (string, bool) {
	switch {
	case len(item) == 1:
		return item[0], true
	case len(item) == 3 && item[1] == "as" && isIdentifier(item[2]):
		return item[0], true
	}
	return "", false
}

// join builds the declaration of a name imported from module.
func join(module, name string) string {
	if strings.HasSuffix(module, ".") {
		return module + name
	}
	return module + "." + name
}

func isModuleRef(s string) bool {
	rest := strings.TrimLeft(s, ".")
	if rest == "" {
		return true
	}
	return isDottedName(rest)
}

func isDottedName(s string) bool {
	for part := range strings.SplitSeq(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isWordRune(r) || (i == 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// declarations is an insertion-ordered set.
type declarations struct {
	list []string
	seen map[string]struct{}
}

func (d *declarations) add(values ...string) {
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	for _, v := range values {
		if _, ok := d.seen[v]; ok {
			continue
		}
		d.seen[v] = struct{}{}
		d.list = append(d.list, v)
	}
}

func parseError(path string, line int, reason string) error {
	return zerr.With(lineError(line, reason), "path", path)
}

func lineError(line int, reason string) error {
	return zerr.With(zerr.With(domain.ErrParseFailed, "line", line), "reason", reason)
}
