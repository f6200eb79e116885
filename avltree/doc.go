// Package avltree implements a header-sentinel AVL tree with the full
// associative-container contract: insert, emplace-with-hint, find,
// contains, lower/upper bound, equal range, erase, node-handle
// extraction, and bidirectional iteration that wraps from the sentinel
// back to either end.
//
// It is grounded on
// original_source/include/lv_cpp/collections/internal/avl_tree.hpp for
// the node shape and rotation/rebalancing algorithms, and on
// original_source/leviathan/collections/node_handle.hpp for node-handle
// ownership transfer. The sentinel ("header") node is a real allocated
// node rather than a nil pointer: header.height == -1, header.parent is
// the root (nil for an empty tree), and header.left/header.right cache
// the leftmost and rightmost nodes so that decrementing end() yields
// rbegin() without any special-cased branch in the iterator -- the same
// technique libstdc++'s red-black tree uses, which applies unchanged to
// any binary search tree shape.
//
// Keys are unique; inserting an existing key returns the iterator to
// the existing entry and false, matching spec. Multi-key variants are
// out of scope.
package avltree
