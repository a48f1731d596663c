//go:build !windows

package inspect

import (
	"os"
	"strings"
)

func isHidden(path string, _ os.FileInfo) bool {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.HasPrefix(base, ".")
}
