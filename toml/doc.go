// Package toml implements a TOML v1.0 value model and parser: a
// tagged-union [Value] over boolean/integer/float/string/array/table/
// datetime, a [Collector] state machine assembling `[section]` and
// `[[section]]` headers into a table tree, and [Parse]/[Format] for
// round-tripping text.
//
// Grounded on
// original_source/leviathan/config_parser/toml/{value,table,array,
// collector}.hpp. The lexing/parsing grammar itself (keys, strings,
// numbers, datetimes, table headers) is authored directly from the
// TOML v1.0 ABNF this repo's spec carries forward, since
// config_parser/toml/{decoder2,toml,toml2}.hpp in the same source tree
// never got past a handful of "Not implement" stubs.
package toml
