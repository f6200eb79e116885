// Package value provides the small adapter machinery shared by the
// [json] and [toml] value models: a size threshold that decides whether
// a tagged-union alternative is stored inline or behind an owning
// indirection, and a generic box type for the latter.
//
// Neither [json.Value] nor [toml.Value] embeds this package's types
// directly in their public API — each defines its own closed set of
// alternatives per spec, as original_source/leviathan/value.hpp and
// original_source/leviathan/variable.hpp do for their respective
// config-parser value types. What they share is the *policy*: an
// alternative whose storage footprint exceeds [InlineThreshold] bytes is
// boxed via [Box], so that the surrounding tagged-union struct stays
// small and cheap to move regardless of which alternative is active.
//
// A Go string header is 16 bytes (pointer + length) on a 64-bit target,
// exactly at the threshold, so strings are stored inline without needing
// [Box] at all -- the same outcome the source's adapter reaches by a
// different route (it treats std::string as small because SSO keeps
// short strings inline).
package value
