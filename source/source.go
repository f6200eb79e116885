// Package source reads configuration input from disk. It is
// deliberately thin: a single os.ReadFile wrapper through which
// cmd/leviathan's parse, convert and index commands read their input,
// rather than importing os directly.
package source

import "os"

// ReadFile reads the file at path and returns its contents.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
