package inspect

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	maxPreviewFileSize = 10 * 1024 * 1024
	maxPreviewChars    = 50000
)

// Extensions that can safely be read as text.
var textExtensions = map[string]struct{}{}

var textExtensionList = []string{
	"txt", "md", "mdx", "rst", "adoc", "org",
	"py", "pyi", "pyw",
	"js", "mjs", "cjs", "ts", "mts", "cts", "jsx", "tsx",
	"vue", "svelte", "astro",
	"c", "cpp", "cc", "cxx", "h", "hpp", "hxx", "cs", "java", "m", "mm",
	"go", "rs", "rb", "php", "swift", "kt", "kts", "scala", "r", "lua",
	"sh", "bash", "zsh", "fish", "ps1", "psm1", "bat", "cmd",
	"sql", "graphql", "gql",
	"html", "htm", "css", "scss", "sass", "less",
	"json", "jsonc", "json5", "jsonl", "ndjson",
	"xml", "xsl", "xsd", "svg", "rss", "atom",
	"yaml", "yml", "toml", "ini", "cfg", "conf", "env", "properties",
	"csv", "tsv", "log",
	"gitignore", "gitattributes", "editorconfig", "npmrc", "nvmrc",
	"dockerignore", "eslintrc", "prettierrc", "babelrc",
	"makefile", "dockerfile", "cmake", "gradle", "sbt",
	"tex", "bib", "cls", "sty",
	"asm", "s", "v", "sv", "vhd", "vhdl",
	"dart", "zig", "nim", "hx", "odin",
	"ex", "exs", "erl", "hrl", "hs", "ml", "mli", "fs", "fsi", "fsx",
	"clj", "cljs", "cljc", "edn", "lisp", "el", "rkt", "scm",
	"proto", "thrift", "capnp",
	"tf", "hcl", "nix", "dhall", "jsonnet", "cue",
	"http", "rest", "lock",
}

// Extensionless file names that are always text.
var textFilenames = map[string]struct{}{
	"makefile": {}, "dockerfile": {}, "cmakelists.txt": {}, "rakefile": {},
	"gemfile": {}, "procfile": {}, "vagrantfile": {}, "brewfile": {},
	"justfile": {}, "taskfile": {}, "license": {}, "licence": {},
	"readme": {}, "authors": {}, "contributors": {}, "changelog": {},
	"changes": {}, "history": {}, "news": {}, "todo": {},
}

func init() {
	for _, ext := range textExtensionList {
		textExtensions[ext] = struct{}{}
	}
}

// readPreview reads the first maxLines lines of a text file. The second
// return is false for binary or unreadable files.
func readPreview(path string, size int64, maxLines int) (string, bool) {
	if size > maxPreviewFileSize {
		return "(file too large for preview)", true
	}

	if !isTextCandidate(path) && !sniffText(path) {
		return "", false
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	r := bufio.NewReader(f)
	lines := make([]string, 0, maxLines)
	totalChars := 0
	truncated := false

	for len(lines) < maxLines {
		remaining := maxPreviewChars - totalChars
		if remaining <= 0 {
			truncated = true
			break
		}

		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if len(line) > remaining {
				line = line[:remaining]
				truncated = true
			}
			totalChars += len(line)
			lines = append(lines, line)
		}
		if err != nil {
			break
		}
	}

	if !truncated && len(lines) == maxLines {
		if _, err := r.Peek(1); err == nil {
			truncated = true
		}
	}

	joined := strings.Join(lines, "\n")
	joined = strings.TrimPrefix(joined, "\uFEFF")
	if !utf8.ValidString(joined) {
		// Single-byte fallback: always decodes, matching how legacy
		// text files are usually encoded.
		if decoded, err := charmap.ISO8859_1.NewDecoder().String(joined); err == nil {
			joined = decoded
		}
	}

	if truncated {
		joined += "\n... [preview truncated]"
	}
	return joined, true
}

// isTextCandidate works on the base name only, splitting on either
// separator because inspected paths usually arrive backslash-separated.
func isTextCandidate(path string) bool {
	name := strings.ToLower(path)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if strings.HasPrefix(name, ".") {
		// dotfiles are usually text
		return true
	}
	if _, ok := textFilenames[name]; ok {
		return true
	}
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ext = name[i+1:]
	}
	if ext != "" {
		if _, ok := textExtensions[ext]; ok {
			return true
		}
	}
	stem := strings.TrimSuffix(name, "."+ext)
	_, ok := textFilenames[stem]
	return ok
}

// sniffText reads the first 512 bytes and rejects anything containing a
// NUL byte.
func sniffText(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	chunk := make([]byte, 512)
	n, _ := f.Read(chunk)
	return bytes.IndexByte(chunk[:n], 0) < 0
}
