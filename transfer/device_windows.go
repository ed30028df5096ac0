//go:build windows

package transfer

import "fmt"

// LinkCount returns the number of hardlinks for a file
// Windows implementation - returns error as not supported
func LinkCount(path string) (uint32, error) {
	return 0, fmt.Errorf("hardlink counting not supported on Windows")
}

// SameDevice always reports false on Windows so Move copies
func SameDevice(file, dir string) (bool, error) {
	return false, nil
}
