package json

import (
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// ParseError is the structured failure [Parse] returns alongside an
// invalid [Value]; Kind mirrors the [ErrorCode] the Value itself
// carries; Line/Column are 1-based and point at the byte that
// triggered the failure.
type ParseError struct {
	Kind    ErrorCode
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("json: %s at line %d, column %d", e.Message, e.Line, e.Column)
}

// decoder is a recursive-descent scanner over a JSON source string. It
// never panics: every failure path produces a [Value] holding an
// [ErrorCode] (via fail), following
// original_source/leviathan/config_parser/json/json2.hpp's
// json_decoder. Position bookkeeping (line/column per advanced byte)
// follows ha1tch-tsqlparser/lexer/lexer.go's readChar.
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

// fail records the first [ParseError] encountered (nested failures
// returned by a child call already set it, so only the deepest failure
// wins) and returns a matching invalid [Value].
func (d *decoder) fail(ec ErrorCode) Value {
	if d.err == nil {
		d.err = &ParseError{Kind: ec, Line: d.line, Column: d.col, Message: ec.String()}
	}

	return FromError(ec)
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

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func (d *decoder) skipWhitespace() {
	for !d.atEOF() && isWhitespace(d.current()) {
		d.advance(1)
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isNumberChar(ch byte) bool {
	return isDigit(ch) || ch == '-' || ch == '+' || ch == '.' || ch == 'e' || ch == 'E'
}

// Parse parses src as a single JSON value. On success it returns a
// valid Value and a nil error. On any syntax violation — including
// trailing non-whitespace content after the value ([MultiValue]) — it
// returns a Value holding the matching [ErrorCode] alongside a
// *[ParseError] describing where parsing stopped. Callers may ignore
// the error and test [Value.IsValid] instead, per the tri-state
// contract.
func Parse(src string) (Value, error) {
	d := &decoder{src: src, line: 1, col: 1}

	root := d.parseValue()
	if !root.IsValid() {
		return root, d.err
	}

	d.skipWhitespace()
	if !d.atEOF() {
		return d.fail(MultiValue), d.err
	}

	return root, nil
}

func (d *decoder) parseValue() Value {
	d.skipWhitespace()

	if d.atEOF() {
		return d.fail(EOFError)
	}

	switch d.current() {
	case 't':
		return d.parseTrue()
	case 'n':
		return d.parseNull()
	case 'f':
		return d.parseFalse()
	case '[':
		return d.parseArray()
	case '{':
		return d.parseObject()
	case '"':
		return d.parseString()
	default:
		return d.parseNumber()
	}
}

func (d *decoder) parseNull() Value {
	if d.compareLiteralAndAdvance("null") {
		return Null()
	}

	return d.fail(IllegalLiteral)
}

func (d *decoder) parseTrue() Value {
	if d.compareLiteralAndAdvance("true") {
		return Bool(true)
	}

	return d.fail(IllegalLiteral)
}

func (d *decoder) parseFalse() Value {
	if d.compareLiteralAndAdvance("false") {
		return Bool(false)
	}

	return d.fail(IllegalLiteral)
}

func (d *decoder) parseArray() Value {
	d.advance(1) // '['
	d.skipWhitespace()

	var arr []Value

	if !d.atEOF() && d.current() == ']' {
		d.advance(1)
		return Array(arr...)
	}

	for {
		elem := d.parseValue()
		if !elem.IsValid() {
			return elem
		}

		arr = append(arr, elem)
		d.skipWhitespace()

		if d.atEOF() {
			return d.fail(IllegalArray)
		}

		if d.current() == ']' {
			d.advance(1)
			return Array(arr...)
		}

		if !d.matchAndAdvance(',') {
			return d.fail(IllegalArray)
		}

		d.skipWhitespace()
	}
}

func (d *decoder) parseObject() Value {
	d.advance(1) // '{'
	d.skipWhitespace()

	obj := map[string]Value{}

	if !d.atEOF() && d.current() == '}' {
		d.advance(1)
		return Object(obj)
	}

	if d.atEOF() || d.current() != '"' {
		return d.fail(IllegalObject)
	}

	for {
		key := d.parseString()
		if !key.IsValid() {
			return key
		}

		d.skipWhitespace()

		if !d.matchAndAdvance(':') {
			return d.fail(IllegalObject)
		}

		d.skipWhitespace()

		val := d.parseValue()
		if !val.IsValid() {
			return val
		}

		keyStr, _ := key.AsString()
		obj[keyStr] = val
		d.skipWhitespace()

		if d.atEOF() {
			return d.fail(IllegalObject)
		}

		if d.current() == '}' {
			d.advance(1)
			return Object(obj)
		}

		if !d.matchAndAdvance(',') {
			return d.fail(IllegalObject)
		}

		d.skipWhitespace()
	}
}

// parse4Hex reads exactly 4 hex digits starting at pos and returns the
// decoded code unit.
func (d *decoder) parse4Hex(pos int) (uint16, bool) {
	if pos+4 > len(d.src) {
		return 0, false
	}

	v, err := strconv.ParseUint(d.src[pos:pos+4], 16, 16)
	if err != nil {
		return 0, false
	}

	return uint16(v), true
}

const replacementChar = "�"

func (d *decoder) parseString() Value {
	d.advance(1) // opening quote

	var sb []byte

	for {
		if d.atEOF() {
			return d.fail(IllegalString)
		}

		ch := d.current()

		if ch == '"' {
			d.advance(1)
			return String(string(sb))
		}

		if ch == '\\' {
			d.advance(1)

			if d.atEOF() {
				return d.fail(IllegalString)
			}

			switch d.current() {
			case '"':
				sb = append(sb, '"')
			case '\\':
				sb = append(sb, '\\')
			case '/':
				sb = append(sb, '/')
			case 'b':
				sb = append(sb, '\b')
			case 'f':
				sb = append(sb, '\f')
			case 'n':
				sb = append(sb, '\n')
			case 'r':
				sb = append(sb, '\r')
			case 't':
				sb = append(sb, '\t')
			case 'u':
				first, ok := d.parse4Hex(d.pos + 1)
				if !ok {
					return d.fail(IllegalUnicode)
				}

				d.advance(4)

				if utf16.IsSurrogate(rune(first)) && first < 0xDC00 {
					if d.pos+2 < len(d.src) && d.src[d.pos+1] == '\\' && d.src[d.pos+2] == 'u' {
						second, ok := d.parse4Hex(d.pos + 3)
						if !ok {
							return d.fail(IllegalUnicode)
						}

						r := utf16.DecodeRune(rune(first), rune(second))
						if r != utf8.RuneError {
							d.advance(6)
							sb = append(sb, string(r)...)
							break
						}
					}

					sb = append(sb, replacementChar...)
				} else if first >= 0xDC00 && first < 0xE000 {
					sb = append(sb, replacementChar...)
				} else {
					sb = append(sb, string(rune(first))...)
				}
			default:
				return d.fail(IllegalString)
			}
		} else {
			sb = append(sb, ch)
		}

		d.advance(1)
	}
}

func (d *decoder) parseNumber() Value {
	if d.atEOF() || (!isDigit(d.current()) && d.current() != '-') {
		return d.fail(UnknownCharacter)
	}

	start := d.pos

	for !d.atEOF() && isNumberChar(d.current()) {
		d.advance(1)
	}

	text := d.src[start:d.pos]

	if text[0] != '0' {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(v)
		}

		if v, err := strconv.ParseUint(text, 10, 64); err == nil {
			return Uint(v)
		}
	} else if len(text) == 1 {
		return Int(0)
	} else if text[1] != '.' {
		return d.fail(IllegalNumber)
	}

	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return Float(v)
	}

	return d.fail(IllegalNumber)
}
