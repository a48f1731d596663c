//go:build !windows

package config

// registrySearch is a no-op on platforms without a system registry.
func registrySearch(func(string) bool) string {
	return ""
}
