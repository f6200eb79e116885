// Package buffer implements a growable contiguous sequence that takes
// its [allocator.Allocator] as an explicit parameter on every mutating
// call rather than owning one, matching
// original_source/include/lv_cpp/collections/internal/buffer.hpp. It is
// the foundation [sortedlist] builds its trucks on, and is usable
// directly as a plain dynamic array.
//
// Capacity always doubles to the next power of two and is therefore
// always zero or a power of two. [Buffer.Insert] and [Buffer.PushBack]
// take the incoming value as a copy, so it cannot alias an element that
// is later shifted or moved. If a reallocation is needed it happens
// before any existing element is shifted, on an allocator that may
// fail, in which case the original buffer is untouched; after a
// successful reallocation the old storage is returned to the allocator.
package buffer
