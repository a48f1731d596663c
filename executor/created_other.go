//go:build !windows

package executor

import "os"

// creationTime is unavailable off Windows: birth time is not exposed
// portably, and an empty string already means "unknown" downstream.
func creationTime(os.FileInfo) string {
	return ""
}
