// Package queryutil assembles Everything query strings from friendly
// parameters: file-type categories, recency windows, and extension lists.
// Pure string assembly, no state.
package queryutil

import (
	"fmt"
	"sort"
	"strings"
)

// FileTypes maps category names to Everything ext: filters.
var FileTypes = map[string]string{
	"audio":    "ext:mp3;wav;flac;aac;ogg;wma;m4a;opus;aiff;alac",
	"video":    "ext:mp4;avi;mkv;mov;wmv;flv;webm;m4v;mpeg;mpg;3gp;ts",
	"image":    "ext:jpg;jpeg;png;gif;bmp;svg;webp;tiff;tif;ico;raw;heic;heif;avif;psd",
	"document": "ext:pdf;doc;docx;xls;xlsx;ppt;pptx;odt;ods;odp;rtf;txt;md;epub;pages;numbers;key",
	"code": "ext:py;js;ts;jsx;tsx;c;cpp;h;hpp;cs;java;go;rs;rb;php;swift;kt;scala;r;" +
		"lua;sh;bash;ps1;bat;cmd;sql;html;css;scss;sass;less;vue;svelte;dart;zig;" +
		"nim;hx;ex;exs;erl;hs;ml;fs;clj;lisp;asm;toml;yaml;yml;json;xml;ini;cfg;" +
		"conf;env;dockerfile;makefile;cmake;gradle;sbt;proto;graphql;tf;hcl",
	"archive":    "ext:zip;rar;7z;tar;gz;bz2;xz;tgz;zst;lz4;cab;iso;dmg",
	"executable": "ext:exe;msi;dll;sys;com;scr;appx;msix",
	"font":       "ext:ttf;otf;woff;woff2;eot;fon",
	"3d":         "ext:obj;fbx;stl;blend;dae;3ds;gltf;glb;usd;usda;usdz;step;iges",
	"data":       "ext:csv;tsv;json;jsonl;ndjson;xml;sqlite;db;mdb;accdb;parquet;arrow;avro;hdf5;feather",
}

// TimePeriods maps friendly recency shortcuts to Everything dm: values.
var TimePeriods = map[string]string{
	"1min":    "last1min",
	"5min":    "last5mins",
	"10min":   "last10mins",
	"15min":   "last15mins",
	"30min":   "last30mins",
	"1hour":   "last1hour",
	"2hours":  "last2hours",
	"6hours":  "last6hours",
	"12hours": "last12hours",
	"today":   "today",
	"yesterday": "yesterday",
	"1day":    "last1day",
	"3days":   "last3days",
	"1week":   "last1week",
	"2weeks":  "last2weeks",
	"1month":  "last1month",
	"3months": "last3months",
	"6months": "last6months",
	"1year":   "last1year",
}

// TypeKeys returns the known file-type categories, sorted.
func TypeKeys() []string {
	keys := make([]string, 0, len(FileTypes))
	for k := range FileTypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PeriodKeys returns the known recency shortcuts, sorted.
func PeriodKeys() []string {
	keys := make([]string, 0, len(TimePeriods))
	for k := range TimePeriods {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BuildTypeQuery assembles a query for a file-type category, optionally
// restricted to a path and narrowed by an additional filter.
func BuildTypeQuery(fileType, extra, pathFilter string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(fileType))
	filter, ok := FileTypes[key]
	if !ok {
		return "", fmt.Errorf("unknown file type %q, available: %s",
			fileType, strings.Join(TypeKeys(), ", "))
	}

	parts := []string{filter}
	if pathFilter != "" {
		parts = append(parts, `path:"`+pathFilter+`"`)
	}
	if extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, " "), nil
}

// BuildRecentQuery assembles a query for recently modified files. Unknown
// periods pass through verbatim so raw Everything syntax like
// "last2hours" keeps working.
func BuildRecentQuery(period, pathFilter, extensions string) string {
	value, ok := TimePeriods[period]
	if !ok {
		value = period
	}

	parts := []string{"dm:" + value}
	if pathFilter != "" {
		parts = append(parts, `path:"`+pathFilter+`"`)
	}
	if exts := NormalizeExtensions(extensions); exts != "" {
		parts = append(parts, "ext:"+exts)
	}
	return strings.Join(parts, " ")
}

// NormalizeExtensions converts "py,js", ".py .js", or "py;js" into the
// native "py;js" form, dropping empties.
func NormalizeExtensions(s string) string {
	s = strings.NewReplacer(".", "", ",", ";", " ", ";").Replace(s)
	fields := strings.Split(s, ";")
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, ";")
}
