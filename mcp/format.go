package mcp

import (
	"fmt"
	"strings"

	"esmcp/internal/textutil"
	"esmcp/model"
)

// renderResults produces the human-readable summary that accompanies the
// structured tool output.
func renderResults(results []model.SearchResult, label string, maxResults, offset int) string {
	if len(results) == 0 {
		return "No results found for: " + label
	}

	var b strings.Builder
	if offset > 0 {
		fmt.Fprintf(&b, "Found %d results for: %s (offset: %d)\n", len(results), label, offset)
	} else {
		fmt.Fprintf(&b, "Found %d results for: %s\n", len(results), label)
	}

	for _, r := range results {
		kind := "[FILE]"
		if r.IsDir {
			kind = "[DIR] "
		}
		meta := make([]string, 0, 2)
		if !r.IsDir && r.Size >= 0 {
			meta = append(meta, textutil.HumanSize(r.Size))
		}
		if r.DateModified != "" {
			meta = append(meta, r.DateModified)
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, "%s %s (%s)\n", kind, r.Path, strings.Join(meta, ", "))
		} else {
			fmt.Fprintf(&b, "%s %s\n", kind, r.Path)
		}
	}

	if len(results) == maxResults {
		fmt.Fprintf(&b, "\nShowing first %d results. Use offset=%d to see more.",
			maxResults, offset+maxResults)
	}

	return strings.TrimRight(b.String(), "\n")
}
