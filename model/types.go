package model

import "time"

// SearchResult is one filesystem entry returned by a search. Size is -1
// when unknown (directories, inaccessible paths); timestamps are empty
// strings when they could not be determined.
type SearchResult struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	IsDir        bool   `json:"is_dir"`
	Size         int64  `json:"size"`
	DateModified string `json:"date_modified,omitempty"`
	DateCreated  string `json:"date_created,omitempty"`
	Extension    string `json:"extension,omitempty"`
}

// HealthStatus is the payload of the health_check operation and the
// status resource.
type HealthStatus struct {
	Status            string   `json:"status"`
	EverythingVersion string   `json:"everything_version,omitempty"`
	EsPath            string   `json:"es_path,omitempty"`
	Instance          string   `json:"instance,omitempty"`
	Message           string   `json:"message,omitempty"`
	Errors            []string `json:"errors,omitempty"`
}

type HealthLevel int

const (
	Healthy   HealthLevel = 0
	Degraded  HealthLevel = 1
	Unhealthy HealthLevel = 2
	Critical  HealthLevel = 3
)

func (h HealthLevel) String() string {
	switch h {
	case Healthy:
		return "healthy"
	case Degraded:
		return "degraded"
	case Unhealthy:
		return "unhealthy"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

type ComponentHealth struct {
	Name        string      `json:"name"`
	Level       HealthLevel `json:"level"`
	LevelStr    string      `json:"level_str"`
	LastCheck   time.Time   `json:"last_check"`
	LastHealthy time.Time   `json:"last_healthy"`
	Message     string      `json:"message"`
	FailCount   int         `json:"fail_count"`
}

type SystemHealth struct {
	Overall    HealthLevel                 `json:"overall"`
	OverallStr string                      `json:"overall_str"`
	Components map[string]*ComponentHealth `json:"components"`
	StartedAt  time.Time                   `json:"started_at"`
	UptimeSec  int64                       `json:"uptime_sec"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type SearchRequest struct {
	Query          string `json:"query"`
	MaxResults     int    `json:"max_results"`
	Sort           string `json:"sort"`
	MatchCase      bool   `json:"match_case"`
	MatchWholeWord bool   `json:"match_whole_word"`
	MatchRegex     bool   `json:"match_regex"`
	MatchPath      bool   `json:"match_path"`
	Offset         int    `json:"offset"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

type CountRequest struct {
	Query string `json:"query"`
}

type CountResponse struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

type StatsRequest struct {
	Query       string `json:"query"`
	IncludeSize bool   `json:"include_size"`
}

type StatsResponse struct {
	Query          string `json:"query"`
	TotalCount     int64  `json:"total_count"`
	TotalSize      int64  `json:"total_size,omitempty"`
	TotalSizeHuman string `json:"total_size_human,omitempty"`
}

type DetailsRequest struct {
	Paths        []string `json:"paths"`
	PreviewLines int      `json:"preview_lines"`
}
