package toml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decoder is a recursive-descent scanner over a line-oriented TOML
// document. Position bookkeeping mirrors package json's decoder;
// syntax not covered by original_source's unfinished
// config_parser/toml/decoder2.hpp (lexing/parsing of keys, values,
// table headers) is authored directly from the ABNF description this
// repo's spec carries forward, since that source file never got past
// a handful of "Not implement" stubs.
type decoder struct {
	src  string
	pos  int
	line int
	col  int
	err  *ParseError
}

func (d *decoder) atEOF() bool { return d.pos >= len(d.src) }

func (d *decoder) current() byte { return d.src[d.pos] }

func (d *decoder) advance(n int) {
	for i := 0; i < n && d.pos < len(d.src); i++ {
		if d.src[d.pos] == '\n' {
			d.line++
			d.col = 1
		} else {
			d.col++
		}

		d.pos++
	}
}

func (d *decoder) matchAndAdvance(ch byte) bool {
	if d.atEOF() || d.current() != ch {
		return false
	}

	d.advance(1)

	return true
}

func (d *decoder) compareLiteralAndAdvance(lit string) bool {
	if len(d.src)-d.pos < len(lit) || d.src[d.pos:d.pos+len(lit)] != lit {
		return false
	}

	d.advance(len(lit))

	return true
}

func (d *decoder) fail(kind ErrorKind, msg string) error {
	if d.err == nil {
		d.err = &ParseError{Kind: kind, Line: d.line, Column: d.col, Message: msg}
	}

	return d.err
}

// wrapLocation folds a collector error (already pkgerrors-wrapped with
// path context) into a location-carrying [ParseError].
func (d *decoder) wrapLocation(err error) error {
	if d.err == nil {
		d.err = &ParseError{
			Kind:    classifyCollectorError(err),
			Line:    d.line,
			Column:  d.col,
			Message: err.Error(),
			Cause:   err,
		}
	}

	return d.err
}

func isTomlSpace(ch byte) bool { return ch == ' ' || ch == '\t' }

func isBareKeyChar(ch byte) bool {
	return ch == '_' || ch == '-' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func (d *decoder) skipSpacesOnly() {
	for !d.atEOF() && isTomlSpace(d.current()) {
		d.advance(1)
	}
}

func (d *decoder) skipComment() error {
	d.advance(1) // '#'

	for !d.atEOF() && d.current() != '\n' {
		ch := d.current()
		if ch <= 0x08 || (ch >= 0x0B && ch <= 0x1F) || ch == 0x7F {
			return d.fail(IllegalComment, "control character in comment")
		}

		d.advance(1)
	}

	return nil
}

func (d *decoder) skipWhitespaceAndNewlinesAndComments() error {
	for !d.atEOF() {
		switch ch := d.current(); {
		case ch == ' ' || ch == '\t' || ch == '\n':
			d.advance(1)
		case ch == '#':
			if err := d.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}

	return nil
}

func (d *decoder) expectLineEnd() error {
	d.skipSpacesOnly()

	if d.atEOF() {
		return nil
	}

	if d.current() == '#' {
		if err := d.skipComment(); err != nil {
			return err
		}
	}

	if d.atEOF() {
		return nil
	}

	if d.current() != '\n' {
		return d.fail(IllegalCharacter, "expected end of line")
	}

	d.advance(1)

	return nil
}

// Parse parses src as a TOML v1.0 document. On success it returns a
// Value whose root is a table and a nil error; on the first grammar
// or semantic violation it returns the zero Value and a *[ParseError].
// Line-ending normalization (CRLF -> LF) happens before scanning, per
// the documented TOML surface.
func Parse(src string) (Value, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	d := &decoder{src: src, line: 1, col: 1}
	c := NewCollector()

	if err := d.parseDocument(c); err != nil {
		return Value{}, err
	}

	return c.Dispose(), nil
}

func (d *decoder) parseDocument(c *Collector) error {
	for {
		if err := d.skipWhitespaceAndNewlinesAndComments(); err != nil {
			return err
		}

		if d.atEOF() {
			return nil
		}

		if d.current() == '[' {
			if err := d.parseTableHeader(c); err != nil {
				return err
			}

			continue
		}

		keys, err := d.parseDottedKey()
		if err != nil {
			return err
		}

		d.skipSpacesOnly()

		if !d.matchAndAdvance('=') {
			return d.fail(IllegalKey, "expected '='")
		}

		d.skipSpacesOnly()

		v, err := d.parseValue()
		if err != nil {
			return err
		}

		if err := c.AddEntry(keys, v); err != nil {
			return d.wrapLocation(err)
		}

		if err := d.expectLineEnd(); err != nil {
			return err
		}
	}
}

func (d *decoder) parseTableHeader(c *Collector) error {
	isArray := false

	d.advance(1) // '['

	if !d.atEOF() && d.current() == '[' {
		isArray = true

		d.advance(1)
	}

	d.skipSpacesOnly()

	keys, err := d.parseDottedKey()
	if err != nil {
		return err
	}

	d.skipSpacesOnly()

	if isArray {
		if !d.compareLiteralAndAdvance("]]") {
			return d.fail(IllegalTable, "expected ']]'")
		}

		if err := c.SwitchToArrayTable(keys); err != nil {
			return d.wrapLocation(err)
		}
	} else {
		if !d.matchAndAdvance(']') {
			return d.fail(IllegalTable, "expected ']'")
		}

		if err := c.SwitchToStdTable(keys); err != nil {
			return d.wrapLocation(err)
		}
	}

	return d.expectLineEnd()
}

func (d *decoder) parseKeySegment() (string, error) {
	if d.atEOF() {
		return "", d.fail(IllegalKey, "expected a key")
	}

	switch d.current() {
	case '"':
		v, err := d.parseBasicString()
		if err != nil {
			return "", err
		}

		s, _ := v.AsString()

		return s, nil
	case '\'':
		v, err := d.parseLiteralString()
		if err != nil {
			return "", err
		}

		s, _ := v.AsString()

		return s, nil
	default:
		start := d.pos
		for !d.atEOF() && isBareKeyChar(d.current()) {
			d.advance(1)
		}

		if d.pos == start {
			return "", d.fail(IllegalKey, "expected a key")
		}

		return d.src[start:d.pos], nil
	}
}

func (d *decoder) parseDottedKey() ([]string, error) {
	var keys []string

	for {
		d.skipSpacesOnly()

		seg, err := d.parseKeySegment()
		if err != nil {
			return nil, err
		}

		keys = append(keys, seg)
		d.skipSpacesOnly()

		if !d.atEOF() && d.current() == '.' {
			d.advance(1)

			continue
		}

		break
	}

	return keys, nil
}

func (d *decoder) parseValue() (Value, error) {
	if d.atEOF() {
		return Value{}, d.fail(EOFError, "unexpected end of input")
	}

	switch d.current() {
	case '"':
		return d.parseBasicString()
	case '\'':
		return d.parseLiteralString()
	case '[':
		return d.parseInlineArray()
	case '{':
		return d.parseInlineTable()
	default:
		tok := d.parseUnquotedToken()
		if tok == "" {
			return Value{}, d.fail(IllegalCharacter, "expected a value")
		}

		return d.parseScalarToken(tok)
	}
}

func (d *decoder) parseUnquotedToken() string {
	start := d.pos

	for !d.atEOF() {
		ch := d.current()
		if ch == ',' || ch == ']' || ch == '}' || ch == '#' || ch == '\n' || isTomlSpace(ch) {
			break
		}

		d.advance(1)
	}

	return d.src[start:d.pos]
}

func (d *decoder) parseScalarToken(tok string) (Value, error) {
	switch tok {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	}

	if looksLikeDatetime(tok) {
		dt, err := parseDateTime(tok)
		if err != nil {
			return Value{}, d.fail(IllegalDatetime, err.Error())
		}

		return DatetimeValue(dt), nil
	}

	return d.parseNumberToken(tok)
}

func validUnderscoreGrouping(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}

		if i == 0 || i == len(s)-1 || s[i-1] == '_' {
			return false
		}
	}

	return true
}

func (d *decoder) parseNumberToken(tok string) (Value, error) {
	v, err := numberFromToken(tok)
	if err != nil {
		return Value{}, d.fail(IllegalNumber, err.Error())
	}

	return v, nil
}

// numberFromToken parses tok (already isolated by whitespace/punctuation)
// as a TOML integer or float literal. It has no decoder dependency so
// fromyaml.go's bridge can reuse it for YAML scalar nodes.
func numberFromToken(tok string) (Value, error) {
	switch tok {
	case "inf", "+inf":
		return Float(math.Inf(1)), nil
	case "-inf":
		return Float(math.Inf(-1)), nil
	case "nan", "+nan":
		return Float(math.NaN()), nil
	case "-nan":
		return Float(math.Copysign(math.NaN(), -1)), nil
	}

	if !validUnderscoreGrouping(tok) {
		return Value{}, fmt.Errorf("malformed underscore grouping in %q", tok)
	}

	clean := strings.ReplaceAll(tok, "_", "")

	switch {
	case strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X"):
		v, err := strconv.ParseInt(clean[2:], 16, 64)
		if err != nil {
			return Value{}, fmt.Errorf("illegal hex integer %q", tok)
		}

		return Integer(v), nil
	case strings.HasPrefix(clean, "0o"):
		v, err := strconv.ParseInt(clean[2:], 8, 64)
		if err != nil {
			return Value{}, fmt.Errorf("illegal octal integer %q", tok)
		}

		return Integer(v), nil
	case strings.HasPrefix(clean, "0b"):
		v, err := strconv.ParseInt(clean[2:], 2, 64)
		if err != nil {
			return Value{}, fmt.Errorf("illegal binary integer %q", tok)
		}

		return Integer(v), nil
	}

	if strings.ContainsAny(clean, ".eE") {
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return Value{}, fmt.Errorf("illegal float %q", tok)
		}

		return Float(v), nil
	}

	v, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("illegal integer %q", tok)
	}

	return Integer(v), nil
}

func (d *decoder) parseEscape() (string, error) {
	ch := d.current()

	switch ch {
	case 'b':
		d.advance(1)
		return "\b", nil
	case 't':
		d.advance(1)
		return "\t", nil
	case 'n':
		d.advance(1)
		return "\n", nil
	case 'f':
		d.advance(1)
		return "\f", nil
	case 'r':
		d.advance(1)
		return "\r", nil
	case '"':
		d.advance(1)
		return `"`, nil
	case '\\':
		d.advance(1)
		return `\`, nil
	case 'u':
		v, err := d.parseHexEscape(4)
		if err != nil {
			return "", err
		}

		return string(rune(v)), nil
	case 'U':
		v, err := d.parseHexEscape(8)
		if err != nil {
			return "", err
		}

		return string(rune(v)), nil
	default:
		return "", d.fail(IllegalString, fmt.Sprintf("unknown escape \\%c", ch))
	}
}

func (d *decoder) parseHexEscape(n int) (uint32, error) {
	d.advance(1) // 'u' or 'U'

	if d.pos+n > len(d.src) {
		return 0, d.fail(IllegalString, "truncated unicode escape")
	}

	text := d.src[d.pos : d.pos+n]

	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, d.fail(IllegalString, fmt.Sprintf("illegal unicode escape %q", text))
	}

	d.advance(n)

	return uint32(v), nil
}

func (d *decoder) parseBasicString() (Value, error) {
	if d.compareLiteralAndAdvance(`"""`) {
		return d.parseMultilineBasicString()
	}

	d.advance(1) // opening quote

	var sb strings.Builder

	for {
		if d.atEOF() {
			return Value{}, d.fail(IllegalString, "unterminated basic string")
		}

		ch := d.current()

		if ch == '"' {
			d.advance(1)
			return String(sb.String()), nil
		}

		if ch == '\n' {
			return Value{}, d.fail(IllegalString, "newline in basic string")
		}

		if ch == '\\' {
			d.advance(1)

			if d.atEOF() {
				return Value{}, d.fail(IllegalString, "unterminated escape")
			}

			esc, err := d.parseEscape()
			if err != nil {
				return Value{}, err
			}

			sb.WriteString(esc)

			continue
		}

		sb.WriteByte(ch)
		d.advance(1)
	}
}

func (d *decoder) parseMultilineBasicString() (Value, error) {
	if !d.atEOF() && d.current() == '\n' {
		d.advance(1)
	}

	var sb strings.Builder

	for {
		if d.atEOF() {
			return Value{}, d.fail(IllegalString, "unterminated multi-line basic string")
		}

		if d.compareLiteralAndAdvance(`"""`) {
			return String(sb.String()), nil
		}

		ch := d.current()

		if ch == '\\' {
			d.advance(1)

			if !d.atEOF() && (d.current() == '\n' || isTomlSpace(d.current())) {
				for !d.atEOF() && (d.current() == '\n' || isTomlSpace(d.current())) {
					d.advance(1)
				}

				continue
			}

			if d.atEOF() {
				return Value{}, d.fail(IllegalString, "unterminated escape")
			}

			esc, err := d.parseEscape()
			if err != nil {
				return Value{}, err
			}

			sb.WriteString(esc)

			continue
		}

		sb.WriteByte(ch)
		d.advance(1)
	}
}

func (d *decoder) parseLiteralString() (Value, error) {
	if d.compareLiteralAndAdvance(`'''`) {
		return d.parseMultilineLiteralString()
	}

	d.advance(1) // opening quote

	start := d.pos

	for {
		if d.atEOF() {
			return Value{}, d.fail(IllegalString, "unterminated literal string")
		}

		if d.current() == '\'' {
			s := d.src[start:d.pos]
			d.advance(1)

			return String(s), nil
		}

		if d.current() == '\n' {
			return Value{}, d.fail(IllegalString, "newline in literal string")
		}

		d.advance(1)
	}
}

func (d *decoder) parseMultilineLiteralString() (Value, error) {
	if !d.atEOF() && d.current() == '\n' {
		d.advance(1)
	}

	start := d.pos

	for {
		if d.atEOF() {
			return Value{}, d.fail(IllegalString, "unterminated multi-line literal string")
		}

		if d.compareLiteralAndAdvance(`'''`) {
			return String(d.src[start : d.pos-3]), nil
		}

		d.advance(1)
	}
}

func (d *decoder) parseInlineArray() (Value, error) {
	d.advance(1) // '['

	var elems []Value

	for {
		if err := d.skipWhitespaceAndNewlinesAndComments(); err != nil {
			return Value{}, err
		}

		if d.atEOF() {
			return Value{}, d.fail(IllegalArray, "unterminated inline array")
		}

		if d.current() == ']' {
			d.advance(1)
			return ArrayValue(elems, true), nil
		}

		v, err := d.parseValue()
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, v)

		if err := d.skipWhitespaceAndNewlinesAndComments(); err != nil {
			return Value{}, err
		}

		if d.atEOF() {
			return Value{}, d.fail(IllegalArray, "unterminated inline array")
		}

		if d.current() == ',' {
			d.advance(1)
			continue
		}

		if d.current() == ']' {
			d.advance(1)
			return ArrayValue(elems, true), nil
		}

		return Value{}, d.fail(IllegalArray, "expected ',' or ']'")
	}
}

func (d *decoder) parseInlineTable() (Value, error) {
	d.advance(1) // '{'
	d.skipSpacesOnly()

	tbl := &Table{fields: map[string]Value{}, locked: true, defined: true}

	if !d.atEOF() && d.current() == '}' {
		d.advance(1)
		return tableValue(tbl), nil
	}

	for {
		keys, err := d.parseDottedKey()
		if err != nil {
			return Value{}, err
		}

		d.skipSpacesOnly()

		if !d.matchAndAdvance('=') {
			return Value{}, d.fail(IllegalInlineTable, "expected '=' in inline table")
		}

		d.skipSpacesOnly()

		v, err := d.parseValue()
		if err != nil {
			return Value{}, err
		}

		target := tbl

		for i := 0; i < len(keys)-1; i++ {
			k := keys[i]

			existing, ok := target.fields[k]
			if !ok {
				nt := &Table{fields: map[string]Value{}, locked: true}
				target.fields[k] = tableValue(nt)
				target = nt

				continue
			}

			if existing.Kind() != KindTable {
				return Value{}, d.fail(IllegalInlineTable, fmt.Sprintf("key %q is not a table", k))
			}

			target = existing.tbl
		}

		last := keys[len(keys)-1]
		if _, exists := target.fields[last]; exists {
			return Value{}, d.fail(IllegalInlineTable, fmt.Sprintf("key %q already defined", last))
		}

		target.fields[last] = v

		d.skipSpacesOnly()

		if !d.atEOF() && d.current() == ',' {
			d.advance(1)
			d.skipSpacesOnly()

			continue
		}

		if !d.atEOF() && d.current() == '}' {
			d.advance(1)
			return tableValue(tbl), nil
		}

		return Value{}, d.fail(IllegalInlineTable, "expected ',' or '}'")
	}
}
