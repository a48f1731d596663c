package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"esmcp/executor"
	"esmcp/inspect"
	"esmcp/internal/queryutil"
	"esmcp/internal/textutil"
	"esmcp/model"
)

const (
	defaultMaxResults = 50
	defaultSort       = "date-modified-desc"
	maxDetailPaths    = 20
	maxPreviewLines   = 200
	breakdownSample   = 500
	breakdownTop      = 30
)

// SearchInput is the input schema for the everything_search tool.
type SearchInput struct {
	Query          string `json:"query" jsonschema:"Everything search query (supports full Everything syntax)"`
	MaxResults     int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 50)"`
	Sort           string `json:"sort,omitempty" jsonschema:"sort order such as name, size-desc, date-modified-desc (default date-modified-desc)"`
	MatchCase      bool   `json:"match_case,omitempty" jsonschema:"match case exactly"`
	MatchWholeWord bool   `json:"match_whole_word,omitempty" jsonschema:"match whole words only"`
	MatchRegex     bool   `json:"match_regex,omitempty" jsonschema:"treat the query as a regular expression"`
	MatchPath      bool   `json:"match_path,omitempty" jsonschema:"match against the full path instead of the name"`
	Offset         int    `json:"offset,omitempty" jsonschema:"skip this many results for pagination"`
}

type SearchOutput struct {
	Query   string               `json:"query"`
	Count   int                  `json:"count"`
	Results []model.SearchResult `json:"results"`
	Summary string               `json:"summary"`
}

// SearchByTypeInput is the input schema for everything_search_by_type.
type SearchByTypeInput struct {
	FileType   string `json:"file_type" jsonschema:"file category: audio, video, image, document, code, archive, executable, font, 3d, data"`
	Query      string `json:"query,omitempty" jsonschema:"additional filter terms"`
	Path       string `json:"path,omitempty" jsonschema:"restrict results to this directory"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 50)"`
	Sort       string `json:"sort,omitempty" jsonschema:"sort order (default date-modified-desc)"`
}

// FindRecentInput is the input schema for everything_find_recent.
type FindRecentInput struct {
	Period     string `json:"period,omitempty" jsonschema:"recency window such as 5min, 1hour, today, 1week (default 1hour)"`
	Query      string `json:"query,omitempty" jsonschema:"additional filter terms"`
	Path       string `json:"path,omitempty" jsonschema:"restrict results to this directory"`
	Extensions string `json:"extensions,omitempty" jsonschema:"limit to extensions, e.g. py,js or py;js"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 50)"`
}

// FileDetailsInput is the input schema for everything_file_details.
type FileDetailsInput struct {
	Paths        []string `json:"paths" jsonschema:"absolute paths to inspect (1 to 20)"`
	PreviewLines int      `json:"preview_lines,omitempty" jsonschema:"lines of text preview per file, 0 disables (max 200)"`
}

type FileDetailsOutput struct {
	Files []inspect.Details `json:"files"`
}

// CountStatsInput is the input schema for everything_count_stats.
type CountStatsInput struct {
	Query       string `json:"query" jsonschema:"Everything search query to aggregate"`
	IncludeSize *bool  `json:"include_size,omitempty" jsonschema:"include total size of matches (default true)"`
	Breakdown   bool   `json:"breakdown,omitempty" jsonschema:"include a per-extension breakdown of a result sample"`
}

// ExtBreakdown is one per-extension aggregate row.
type ExtBreakdown struct {
	Extension      string `json:"extension"`
	Count          int    `json:"count"`
	TotalSize      int64  `json:"total_size"`
	TotalSizeHuman string `json:"total_size_human"`
}

type CountStatsOutput struct {
	Query          string         `json:"query"`
	TotalCount     int64          `json:"total_count"`
	TotalSize      int64          `json:"total_size,omitempty"`
	TotalSizeHuman string         `json:"total_size_human,omitempty"`
	Breakdown      []ExtBreakdown `json:"breakdown,omitempty"`
	Notes          []string       `json:"notes,omitempty"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "everything_search",
		Description: "Search the Everything index with full query syntax. Results are instant; the entire NTFS index is queried, not just indexed folders.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "everything_search_by_type",
		Description: "Search for files of a category (audio, video, image, document, code, archive, executable, font, 3d, data), optionally narrowed by extra terms or a directory.",
	}, s.handleSearchByType)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "everything_find_recent",
		Description: "Find files modified within a recency window such as 5min, 1hour, today, or 1week.",
	}, s.handleFindRecent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "everything_file_details",
		Description: "Inspect specific paths: size, timestamps, attributes, directory summaries, and optional text previews.",
	}, s.handleFileDetails)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "everything_count_stats",
		Description: "Count matches for a query and report total size, optionally with a per-extension breakdown.",
	}, s.handleCountStats)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, fmt.Errorf("query is required")
	}

	opts := searchOpts(input.MaxResults, input.Sort)
	opts.MatchCase = input.MatchCase
	opts.MatchWholeWord = input.MatchWholeWord
	opts.MatchRegex = input.MatchRegex
	opts.MatchPath = input.MatchPath
	opts.Offset = input.Offset

	results, err := s.ports.Executor.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{
		Query:   input.Query,
		Count:   len(results),
		Results: results,
		Summary: renderResults(results, input.Query, opts.MaxResults, opts.Offset),
	}, nil
}

func (s *Server) handleSearchByType(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchByTypeInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	query, err := queryutil.BuildTypeQuery(input.FileType, input.Query, input.Path)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	opts := searchOpts(input.MaxResults, input.Sort)
	results, err := s.ports.Executor.Search(ctx, query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	label := input.FileType + " files"
	if input.Query != "" {
		label += " matching: " + input.Query
	}

	return nil, SearchOutput{
		Query:   query,
		Count:   len(results),
		Results: results,
		Summary: renderResults(results, label, opts.MaxResults, 0),
	}, nil
}

func (s *Server) handleFindRecent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindRecentInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	period := input.Period
	if period == "" {
		period = "1hour"
	}

	query := queryutil.BuildRecentQuery(period, input.Path, input.Extensions)
	if input.Query != "" {
		query += " " + input.Query
	}

	opts := searchOpts(input.MaxResults, defaultSort)
	results, err := s.ports.Executor.Search(ctx, query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{
		Query:   query,
		Count:   len(results),
		Results: results,
		Summary: renderResults(results, "files modified in the last "+period, opts.MaxResults, 0),
	}, nil
}

func (s *Server) handleFileDetails(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FileDetailsInput,
) (*mcp.CallToolResult, FileDetailsOutput, error) {
	if len(input.Paths) == 0 {
		return nil, FileDetailsOutput{}, fmt.Errorf("at least one path is required")
	}
	if len(input.Paths) > maxDetailPaths {
		return nil, FileDetailsOutput{}, fmt.Errorf("too many paths: %d (max %d)", len(input.Paths), maxDetailPaths)
	}

	previewLines := input.PreviewLines
	if previewLines < 0 {
		previewLines = 0
	}
	if previewLines > maxPreviewLines {
		previewLines = maxPreviewLines
	}

	return nil, FileDetailsOutput{Files: inspect.Files(input.Paths, previewLines)}, nil
}

func (s *Server) handleCountStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CountStatsInput,
) (*mcp.CallToolResult, CountStatsOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, CountStatsOutput{}, fmt.Errorf("query is required")
	}

	out := CountStatsOutput{Query: input.Query, TotalCount: -1}

	count, err := s.ports.Executor.Count(ctx, input.Query)
	if err != nil {
		return nil, CountStatsOutput{}, err
	}
	out.TotalCount = count
	if count < 0 {
		out.Notes = append(out.Notes, "Result count could not be determined")
	}

	includeSize := input.IncludeSize == nil || *input.IncludeSize
	if includeSize {
		size, err := s.ports.Executor.TotalSize(ctx, input.Query)
		if err != nil {
			out.Notes = append(out.Notes, "Total size unavailable: "+err.Error())
		} else if size < 0 {
			out.Notes = append(out.Notes, "Total size could not be determined")
		} else {
			out.TotalSize = size
			out.TotalSizeHuman = textutil.HumanSize(size)
		}
	}

	if input.Breakdown {
		breakdown, note := s.extensionBreakdown(ctx, input.Query)
		out.Breakdown = breakdown
		if note != "" {
			out.Notes = append(out.Notes, note)
		}
	}

	return nil, out, nil
}

// extensionBreakdown samples up to breakdownSample results and aggregates
// them by extension. The sample keeps a stable name order so repeated
// calls agree.
func (s *Server) extensionBreakdown(ctx context.Context, query string) ([]ExtBreakdown, string) {
	results, err := s.ports.Executor.Search(ctx, query, executor.SearchOpts{
		MaxResults: breakdownSample,
		Sort:       "name",
	})
	if err != nil {
		return nil, "Breakdown unavailable: " + err.Error()
	}

	agg := make(map[string]*ExtBreakdown)
	for _, r := range results {
		if r.IsDir {
			continue
		}
		ext := r.Extension
		if ext == "" {
			ext = "(no extension)"
		}
		row, ok := agg[ext]
		if !ok {
			row = &ExtBreakdown{Extension: ext}
			agg[ext] = row
		}
		row.Count++
		if r.Size > 0 {
			row.TotalSize += r.Size
		}
	}

	rows := make([]ExtBreakdown, 0, len(agg))
	for _, row := range agg {
		row.TotalSizeHuman = textutil.HumanSize(row.TotalSize)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Extension < rows[j].Extension
	})
	if len(rows) > breakdownTop {
		rows = rows[:breakdownTop]
	}

	note := ""
	if len(results) == breakdownSample {
		note = fmt.Sprintf("Breakdown based on a sample of %d results", breakdownSample)
	}
	return rows, note
}

func searchOpts(maxResults int, sortOrder string) executor.SearchOpts {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if sortOrder == "" {
		sortOrder = defaultSort
	}
	return executor.SearchOpts{MaxResults: maxResults, Sort: sortOrder}
}
