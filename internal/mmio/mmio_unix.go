//go:build unix

package mmio

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
)

// Map maps the file at path read-only and returns its contents along
// with a cleanup func that unmaps it. An empty file maps to a non-nil
// zero-length slice.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errs.Wrap(errs.KindIO, "mmio: open", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, errs.Wrap(errs.KindIO, "mmio: stat", err)
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, errs.Wrap(errs.KindMMap, "mmio: mmap", err)
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		if err := unix.Munmap(data); err != nil {
			return errs.Wrap(errs.KindMMap, "mmio: munmap", err)
		}
		return nil
	}
	return data, cleanup, nil
}

// WillNeed advises the kernel that region will be accessed soon,
// triggering readahead. Used by ExtSort to prefetch each streaming
// segment's next window.
func WillNeed(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	if err := unix.Madvise(region, unix.MADV_WILLNEED); err != nil {
		return errs.Wrap(errs.KindMMap, "mmio: madvise WILLNEED", err)
	}
	return nil
}

// DontNeed advises the kernel that region is no longer needed, letting
// it reclaim those pages. Used by ExtSort to release a streaming
// segment's consumed window and by TreeCompress to release node-file
// windows it has already read.
func DontNeed(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	if err := unix.Madvise(region, unix.MADV_DONTNEED); err != nil {
		return errs.Wrap(errs.KindMMap, "mmio: madvise DONTNEED", err)
	}
	return nil
}
