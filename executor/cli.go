package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"esmcp/config"
	"esmcp/model"
)

// sortMap translates friendly sort names to es.exe -sort values. Unknown
// keys pass through verbatim so native sort keys added by newer es.exe
// builds keep working.
var sortMap = map[string]string{
	"name":               "name",
	"name-desc":          "name-descending",
	"path":               "path",
	"path-desc":          "path-descending",
	"size":               "size",
	"size-asc":           "size",
	"size-desc":          "size-descending",
	"date-modified":      "date-modified",
	"date-modified-asc":  "date-modified",
	"date-modified-desc": "date-modified-descending",
	"date-created":       "date-created",
	"date-created-asc":   "date-created",
	"date-created-desc":  "date-created-descending",
	"extension":          "extension",
}

// SortKeys returns the friendly sort names, sorted.
func SortKeys() []string {
	keys := make([]string, 0, len(sortMap))
	for k := range sortMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CLIExecutor runs queries against Everything through es.exe subprocess
// calls. It holds no mutable state beyond the shared read-only config;
// each call spawns its own child process.
type CLIExecutor struct {
	cfg    *config.Config
	runner runner
	log    *slog.Logger
}

func NewCLI(cfg *config.Config, logger *slog.Logger) *CLIExecutor {
	return &CLIExecutor{
		cfg:    cfg,
		runner: NewProcessRunner(cfg.Timeout, logger),
		log:    logger,
	}
}

// Search executes query and returns enriched results. The es.exe
// -size/-dm/-dc flags are deliberately omitted: plain one-path-per-line
// output parses identically across es.exe versions and locales, and
// metadata comes from os.Stat during materialization instead.
func (e *CLIExecutor) Search(ctx context.Context, query string, opts SearchOpts) ([]model.SearchResult, error) {
	if err := e.checkValid(); err != nil {
		return nil, err
	}

	argv := e.baseCmd()
	argv = appendSearchArgs(argv, opts, e.cfg.MaxResultsCap)
	argv = append(argv, query)

	out, err := e.runner.Run(ctx, argv)
	if err != nil {
		return nil, fmt.Errorf("Everything search failed: %w", err)
	}
	if out.exit != 0 {
		return nil, fmt.Errorf("Everything search failed: %s", exitMessage(out))
	}

	return Materialize(out.stdout), nil
}

// Count returns the number of results for query without listing them.
func (e *CLIExecutor) Count(ctx context.Context, query string) (int64, error) {
	if err := e.checkValid(); err != nil {
		return -1, err
	}

	// Never combine -get-result-count with "-n 0": es.exe reports 0 for
	// that combination.
	argv := append(e.baseCmd(), "-get-result-count", query)
	out, err := e.runner.Run(ctx, argv)
	if err != nil {
		return -1, fmt.Errorf("count failed: %w", err)
	}
	if out.exit != 0 {
		return -1, fmt.Errorf("count failed: %s", exitMessage(out))
	}

	return parseInteger(out.stdout), nil
}

// TotalSize returns the total size in bytes of all files matching query.
func (e *CLIExecutor) TotalSize(ctx context.Context, query string) (int64, error) {
	if err := e.checkValid(); err != nil {
		return -1, err
	}

	// Same exclusion as Count: "-n 0" makes es.exe report 0.
	argv := append(e.baseCmd(), "-get-total-size", query)
	out, err := e.runner.Run(ctx, argv)
	if err != nil {
		return -1, fmt.Errorf("total size failed: %w", err)
	}
	if out.exit != 0 {
		return -1, fmt.Errorf("total size failed: %s", exitMessage(out))
	}

	return parseInteger(out.stdout), nil
}

// Version queries the running engine's version string.
func (e *CLIExecutor) Version(ctx context.Context) (string, error) {
	if err := e.checkValid(); err != nil {
		return "", err
	}

	argv := append(e.baseCmd(), "-get-everything-version")
	out, err := e.runner.Run(ctx, argv)
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(out.stdout)
	if out.exit != 0 || version == "" {
		return "", fmt.Errorf("unexpected response from Everything")
	}
	return version, nil
}

// HealthCheck reports whether Everything is accessible. It never returns
// an error; failures are folded into the status payload.
func (e *CLIExecutor) HealthCheck(ctx context.Context) *model.HealthStatus {
	if !e.cfg.IsValid() {
		path := e.cfg.EsPath
		if path == "" {
			path = "not found"
		}
		return &model.HealthStatus{Status: "error", Errors: e.cfg.Errors, EsPath: path}
	}

	version, err := e.Version(ctx)
	if err != nil {
		return &model.HealthStatus{Status: "error", Message: err.Error(), EsPath: e.cfg.EsPath}
	}

	instance := e.cfg.Instance
	if instance == "" {
		instance = "default"
	}
	return &model.HealthStatus{
		Status:            "ok",
		EverythingVersion: version,
		EsPath:            e.cfg.EsPath,
		Instance:          instance,
	}
}

func (e *CLIExecutor) checkValid() error {
	if !e.cfg.IsValid() {
		return fmt.Errorf("Everything is not available: %s", strings.Join(e.cfg.Errors, " "))
	}
	return nil
}

func (e *CLIExecutor) baseCmd() []string {
	argv := []string{e.cfg.EsPath}
	if e.cfg.Instance != "" {
		argv = append(argv, "-instance", e.cfg.Instance)
	}
	return argv
}

func appendSearchArgs(argv []string, opts SearchOpts, resultCap int) []string {
	n := opts.MaxResults
	if n <= 0 {
		n = 100
	}
	if n > resultCap {
		n = resultCap
	}
	argv = append(argv, "-n", strconv.Itoa(n))

	if opts.Offset > 0 {
		argv = append(argv, "-o", strconv.Itoa(opts.Offset))
	}

	sortValue := opts.Sort
	if sortValue == "" {
		sortValue = "name"
	}
	if native, ok := sortMap[sortValue]; ok {
		sortValue = native
	}
	argv = append(argv, "-sort", sortValue)

	if opts.MatchCase {
		argv = append(argv, "-case")
	}
	if opts.MatchWholeWord {
		argv = append(argv, "-w")
	}
	if opts.MatchRegex {
		argv = append(argv, "-r")
	}
	if opts.MatchPath {
		argv = append(argv, "-p")
	}
	return argv
}

// parseInteger parses the single-line stdout of a count/size query.
// An unparseable value yields -1: the operation succeeded but the value
// is unavailable, which is distinct from an error return.
func parseInteger(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return -1
	}
	return n
}

func exitMessage(out runOutput) string {
	msg := strings.TrimSpace(out.stderr)
	if msg == "" {
		msg = strings.TrimSpace(out.stdout)
	}
	if msg == "" {
		msg = fmt.Sprintf("es.exe exited with code %d", out.exit)
	}
	return msg
}
