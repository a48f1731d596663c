package executor

import (
	"os"
	"strings"
	"sync"

	"esmcp/model"
)

const timeLayout = "2006-01-02 15:04:05"

// statWorkers bounds the fan-out of per-line os.Stat calls; large result
// batches would otherwise serialize hundreds of filesystem round trips.
const statWorkers = 8

// Materialize parses plain one-path-per-line es.exe output into enriched
// results. Only line-ending characters are trimmed: leading and trailing
// spaces inside a file name are significant. Lines that do not look like
// paths (stray diagnostics) are dropped; a path that cannot be stat'ed
// still produces an entry with unknown metadata, because presence in the
// index does not guarantee current accessibility.
func Materialize(stdout string) []model.SearchResult {
	paths := make([]string, 0, 64)
	for _, raw := range strings.Split(stdout, "\n") {
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !looksLikePath(line) {
			continue
		}
		paths = append(paths, line)
	}

	results := make([]model.SearchResult, len(paths))
	workers := statWorkers
	if len(paths) < workers {
		workers = len(paths)
	}
	if workers <= 1 {
		for i, p := range paths {
			results[i] = statToResult(p)
		}
		return results
	}

	var wg sync.WaitGroup
	idx := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				results[i] = statToResult(paths[i])
			}
		}()
	}
	for i := range paths {
		idx <- i
	}
	close(idx)
	wg.Wait()

	return results
}

// looksLikePath reports whether s has the shape of a Windows drive path,
// a UNC path, or a Unix-style absolute path.
func looksLikePath(s string) bool {
	if len(s) >= 3 && isASCIILetter(s[0]) && s[1] == ':' && (s[2] == '\\' || s[2] == '/') {
		return true
	}
	if strings.HasPrefix(s, `\\`) {
		return true
	}
	return strings.HasPrefix(s, "/")
}

func statToResult(path string) model.SearchResult {
	name := baseName(path)
	res := model.SearchResult{Path: path, Name: name, Size: -1}

	info, err := os.Stat(path)
	if err != nil {
		res.Extension = extensionOf(name)
		return res
	}

	res.IsDir = info.IsDir()
	if !res.IsDir {
		res.Size = info.Size()
		res.Extension = extensionOf(name)
	}
	res.DateModified = info.ModTime().Format(timeLayout)
	res.DateCreated = creationTime(info)
	return res
}

// baseName is a separator-agnostic filepath.Base: es.exe emits
// backslash-separated paths regardless of the host this code is tested
// on. Drive and filesystem roots fall back to the full path.
func baseName(p string) string {
	trimmed := strings.TrimRight(p, `/\`)
	base := trimmed
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		base = trimmed[i+1:]
	}
	if base == "" || strings.HasSuffix(base, ":") {
		return p
	}
	return base
}

func extensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
