// Package skiplist implements a probabilistic multi-level linked list
// with a unique-keyed associative-container contract, grounded on
// original_source/leviathan/collections/list/skiplist.hpp.
//
// Each node carries a forward pointer per level it was promoted to
// (geometrically distributed, default ratio 1/4, clamped to a default
// max level of 24) and a single back-pointer shared by every level's
// bottom-most traversal, since only level 0 needs to go backward. The
// header node plays the same cyclic-sentinel role as [avltree]'s
// header: header.forward[i] points to itself at every level while the
// list is empty, so End() falls naturally out of the same structure
// used for interior nodes instead of a special nil case.
//
// The source parameterizes the random source as a template argument
// (default std::random_device); this package takes the equivalent as
// an injected *rand.Rand from math/rand/v2 so tests can drive
// deterministic level assignment.
package skiplist
