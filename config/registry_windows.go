//go:build windows

package config

import (
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

// registrySearch reads the vendor install path from the Windows Registry
// and verifies the executable found there. Checked under both hives and
// the WOW6432Node mirror for 32-bit installs.
func registrySearch(verify func(string) bool) string {
	hives := []registry.Key{registry.LOCAL_MACHINE, registry.CURRENT_USER}
	subkeys := []string{
		`SOFTWARE\voidtools\Everything`,
		`SOFTWARE\WOW6432Node\voidtools\Everything`,
	}

	for _, hive := range hives {
		for _, subkey := range subkeys {
			k, err := registry.OpenKey(hive, subkey, registry.QUERY_VALUE)
			if err != nil {
				continue
			}
			installPath, _, err := k.GetStringValue("InstallPath")
			k.Close()
			if err != nil || installPath == "" {
				continue
			}
			candidate := filepath.Join(installPath, exeName)
			if isRegularFile(candidate) && verify(candidate) {
				return candidate
			}
		}
	}
	return ""
}
