//go:build !windows

package executor

import (
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// localeEncoding derives the preferred encoding from the locale
// environment (LC_ALL, LC_CTYPE, LANG). UTF-8 and unknown locales
// return nil.
func localeEncoding() encoding.Encoding {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		name := v
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		if i := strings.IndexByte(name, '@'); i >= 0 {
			name = name[:i]
		}
		if name == "" || strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "utf8") {
			return nil
		}
		if enc, err := ianaindex.IANA.Encoding(name); err == nil {
			return enc
		}
		return nil
	}
	return nil
}
