// Package convert maps between package json and package toml's value
// models: [ToJSON] folds a toml.Value into a json.Value, [ToTOML] folds
// a json.Value into a toml.Value. Both directions are total (every
// input Kind has a target representation) but not bijective: a round
// trip through JSON loses a TOML datetime's native type (it becomes a
// string) and a round trip through TOML loses JSON null (it becomes the
// string "null").
//
// Grounded on original_source/leviathan/config_parser/{value_cast,
// convert}.hpp's toml2json/json2toml visitor structs, reauthored here
// as the [json.Visitor]/[toml.Visitor] dispatch both value packages
// already expose instead of a variant std::visit.
package convert
