// Package pyhash implements an open-addressing hash table modeled on
// CPython's dict: a power-of-two `indices` array holding either a
// sentinel (unused/deleted) or an index into a dense `slots` array,
// probed with the perturbation sequence CPython uses for collision
// resolution.
//
// Grounded on
// original_source/leviathan/collections/hashtable/hash_slot.hpp
// (py_hash_generator) and
// original_source/leviathan/collections/hashtable/pyhash.hpp
// (insert/find/erase/rehash). Deleted slots are tombstoned in
// `indices` but never reclaimed outside of a full rehash, matching the
// source's tradeoff of cheap iteration over eager slot reuse.
package pyhash
