//go:build !unix

package mmio

import "os"

// Map reads the whole file when mmap is unavailable on this platform.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// WillNeed is a no-op off Unix.
func WillNeed(region []byte) error { return nil }

// DontNeed is a no-op off Unix.
func DontNeed(region []byte) error { return nil }
