// Package sortedlist implements a "trucked" ordered sequence: a
// buffer of fixed-capacity chunks ("trucks"), each itself a
// [buffer.Buffer], kept individually sorted and collectively ordered
// by non-decreasing truck maxima. Locating a key binary-searches the
// truck maxima first, then binary-searches within the selected truck,
// giving O(log(n/T) + log T) lookup with O(T) in-truck insert/erase.
//
// Grounded on
// original_source/include/lv_cpp/collections/internal/sorted_list.hpp.
// That source's insert_impl and the split threshold in expand() are
// both incomplete/inconsistent in the original (insert_impl is
// `#if 0`'d out entirely, and expand()'s guard compares the truck
// *count* to TruckSize*2 rather than the truck being inserted into, as
// its own invariant comment requires); this package implements the
// stated invariant directly: no truck is empty, every truck holds at
// most 2*TruckSize items, and truck maxima are non-decreasing.
package sortedlist
