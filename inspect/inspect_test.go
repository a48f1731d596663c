package inspect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFiles_MissingPath(t *testing.T) {
	out := Files([]string{filepath.Join(t.TempDir(), "gone.txt")}, 0)
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0].Error != "File not found" {
		t.Fatalf("unexpected error: %q", out[0].Error)
	}
}

func TestFiles_RegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.MD")
	if err := os.WriteFile(file, []byte("# Title\nbody\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := Files([]string{file}, 0)
	d := out[0]
	if d.Type != "file" || d.Name != "notes.MD" {
		t.Fatalf("unexpected details: %+v", d)
	}
	if d.Extension != "md" {
		t.Fatalf("expected lowercase extension, got %q", d.Extension)
	}
	if d.Size != 13 || d.SizeHuman != "13 B" {
		t.Fatalf("unexpected size: %d / %q", d.Size, d.SizeHuman)
	}
	if d.DateModified == "" {
		t.Fatalf("expected modified timestamp")
	}
	if d.Preview != "" {
		t.Fatalf("preview must be opt-in, got %q", d.Preview)
	}
}

func TestFiles_PreviewLines(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "log.txt")
	content := "one\ntwo\nthree\nfour\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out := Files([]string{file}, 2)
	got := out[0].Preview
	if !strings.HasPrefix(got, "one\ntwo") {
		t.Fatalf("unexpected preview: %q", got)
	}
	if !strings.Contains(got, "... [preview truncated]") {
		t.Fatalf("expected truncation marker when lines remain: %q", got)
	}
	if strings.Contains(got, "three") {
		t.Fatalf("preview exceeded requested lines: %q", got)
	}
}

func TestFiles_FullPreviewNoMarker(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "short.txt")
	if err := os.WriteFile(file, []byte("only line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := Files([]string{file}, 10)
	if got := out[0].Preview; got != "only line" {
		t.Fatalf("unexpected preview: %q", got)
	}
}

func TestFiles_BinarySkipsPreview(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(file, []byte{0x7F, 'E', 'L', 'F', 0x00, 0x01, 0x02}, 0644); err != nil {
		t.Fatal(err)
	}

	out := Files([]string{file}, 5)
	if out[0].Preview != "" {
		t.Fatalf("binary file must not get a preview: %q", out[0].Preview)
	}
}

func TestFiles_DirectorySummary(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out := Files([]string{dir}, 0)
	d := out[0]
	if d.Type != "folder" {
		t.Fatalf("expected folder type, got %q", d.Type)
	}
	if d.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", d.ItemCount)
	}
	if len(d.Subdirs) != 1 || d.Subdirs[0] != "sub" {
		t.Fatalf("unexpected subdirs: %v", d.Subdirs)
	}
	if len(d.FilesSample) != 2 || d.FilesSample[0] != "a.txt" {
		t.Fatalf("expected sorted file sample, got %v", d.FilesSample)
	}
	if d.Size != 0 {
		t.Fatalf("directory size must stay unset, got %d", d.Size)
	}
}

func TestIsTextCandidate(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{`C:\src\main.go`, true},
		{`C:\src\Makefile`, true},
		{`C:\repo\.gitignore`, true},
		{`C:\repo\README`, true},
		{`C:\media\movie.mkv`, false},
		{`C:\bin\tool.exe`, false},
	}
	for _, c := range cases {
		if got := isTextCandidate(c.path); got != c.want {
			t.Fatalf("isTextCandidate(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestReadPreview_LargeFileShortCircuits(t *testing.T) {
	got, ok := readPreview(filepath.Join(t.TempDir(), "never-opened.txt"), maxPreviewFileSize+1, 5)
	if !ok || got != "(file too large for preview)" {
		t.Fatalf("unexpected: ok=%v %q", ok, got)
	}
}
