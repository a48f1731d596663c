// Package inspect gathers ad-hoc metadata for specific paths: stat
// details, bounded directory summaries, and text previews. All I/O is
// best-effort; failures are folded into the per-path result.
package inspect

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"esmcp/internal/textutil"
)

const (
	maxDirScanItems = 10000
	maxSubdirSample = 20
	maxFileSample   = 30
)

const timeLayout = "2006-01-02 15:04:05"

// Details is the per-path result of an inspection.
type Details struct {
	Path         string   `json:"path"`
	Name         string   `json:"name,omitempty"`
	Type         string   `json:"type,omitempty"`
	Size         int64    `json:"size,omitempty"`
	SizeHuman    string   `json:"size_human,omitempty"`
	Extension    string   `json:"extension,omitempty"`
	DateModified string   `json:"date_modified,omitempty"`
	ReadOnly     bool     `json:"read_only,omitempty"`
	Hidden       bool     `json:"hidden,omitempty"`
	ItemCount    int      `json:"item_count,omitempty"`
	Subdirs      []string `json:"subdirectories,omitempty"`
	FilesSample  []string `json:"files_sample,omitempty"`
	Note         string   `json:"note,omitempty"`
	ListingError string   `json:"listing_error,omitempty"`
	Preview      string   `json:"preview,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Files inspects each path in turn. previewLines > 0 adds a text preview
// for regular files.
func Files(paths []string, previewLines int) []Details {
	out := make([]Details, 0, len(paths))
	for _, p := range paths {
		out = append(out, inspectOne(p, previewLines))
	}
	return out
}

func inspectOne(path string, previewLines int) Details {
	d := Details{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			d.Error = "File not found"
		} else {
			d.Error = err.Error()
		}
		return d
	}

	d.Name = filepath.Base(path)
	d.DateModified = info.ModTime().Format(timeLayout)
	d.ReadOnly = info.Mode().Perm()&0o200 == 0
	d.Hidden = isHidden(path, info)

	if info.IsDir() {
		d.Type = "folder"
		summarizeDirectory(path, &d)
		return d
	}

	d.Type = "file"
	d.Size = info.Size()
	d.SizeHuman = textutil.HumanSize(info.Size())
	if ext := filepath.Ext(d.Name); len(ext) > 1 {
		d.Extension = strings.ToLower(ext[1:])
	}

	if previewLines > 0 {
		if preview, ok := readPreview(path, info.Size(), previewLines); ok {
			d.Preview = preview
		}
	}
	return d
}

// summarizeDirectory samples a directory without loading every entry:
// the scan stops at maxDirScanItems and only the first few names of each
// kind are kept.
func summarizeDirectory(path string, d *Details) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsPermission(err) {
			d.ListingError = "Permission denied"
		} else {
			d.ListingError = err.Error()
		}
		return
	}

	dirs := make([]string, 0, maxSubdirSample)
	files := make([]string, 0, maxFileSample)
	scanned := 0
	truncated := false

	for _, entry := range entries {
		if scanned >= maxDirScanItems {
			truncated = true
			break
		}
		scanned++
		if entry.IsDir() {
			if len(dirs) < maxSubdirSample {
				dirs = append(dirs, entry.Name())
			}
		} else if len(files) < maxFileSample {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(dirs)
	sort.Strings(files)
	d.ItemCount = scanned
	d.Subdirs = dirs
	d.FilesSample = files

	if truncated {
		d.Note = "Directory scan capped; samples may be incomplete"
	} else if scanned > maxSubdirSample+maxFileSample {
		d.Note = "Showing first items only"
	}
}
