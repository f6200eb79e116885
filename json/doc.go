// Package json implements an RFC 8259 JSON parser and a tri-state
// [Value] that never fails to construct: a syntax error is represented
// as a [Value] holding an [ErrorCode], so callers can test
// [Value.IsValid] instead of unwrapping an error on every call. [Parse]
// also returns a *[ParseError] with the same kind and its location.
//
// Grounded on original_source/leviathan/config_parser/json/json.hpp
// (structural grammar, escape handling, number fallback) and
// original_source/leviathan/config_parser/json_value.hpp (the
// error_code enumeration and the number/value tagged unions). The
// scanner's line/column bookkeeping in advance follows the readChar of
// ha1tch-tsqlparser/lexer/lexer.go.
package json
