//go:build !windows

package transfer

import (
	"fmt"
	"os"
	"syscall"
)

// LinkCount returns the number of hardlinks for a file
func LinkCount(path string) (uint32, error) {
	stat, err := statT(path)
	if err != nil {
		return 0, err
	}
	return uint32(stat.Nlink), nil
}

// SameDevice reports whether file and dir live on the same filesystem, in
// which case a hardlink can replace a copy
func SameDevice(file, dir string) (bool, error) {
	s1, err := statT(file)
	if err != nil {
		return false, err
	}
	s2, err := statT(dir)
	if err != nil {
		return false, err
	}
	return s1.Dev == s2.Dev, nil
}

func statT(path string) (*syscall.Stat_t, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("cannot convert to syscall.Stat_t for %s", path)
	}
	return stat, nil
}
