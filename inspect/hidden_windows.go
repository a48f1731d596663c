//go:build windows

package inspect

import (
	"os"
	"syscall"
)

func isHidden(_ string, info os.FileInfo) bool {
	if attrs, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return attrs.FileAttributes&syscall.FILE_ATTRIBUTE_HIDDEN != 0
	}
	return false
}
