//go:build windows

package executor

import (
	"os"
	"syscall"
	"time"
)

func creationTime(info os.FileInfo) string {
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return ""
	}
	return time.Unix(0, attrs.CreationTime.Nanoseconds()).Format(timeLayout)
}
