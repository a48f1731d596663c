package api

import (
	"errors"
	"net/http"
	"strings"

	"esmcp/executor"
	"esmcp/inspect"
	"esmcp/internal/textutil"
	"esmcp/model"
)

const (
	maxDetailPaths  = 20
	maxPreviewLines = 200
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req model.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "query is required")
		return
	}

	results, err := s.exec.Search(r.Context(), req.Query, executor.SearchOpts{
		MaxResults:     req.MaxResults,
		Sort:           req.Sort,
		MatchCase:      req.MatchCase,
		MatchWholeWord: req.MatchWholeWord,
		MatchRegex:     req.MatchRegex,
		MatchPath:      req.MatchPath,
		Offset:         req.Offset,
	})
	if err != nil {
		writeExecError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SearchResponse{
		Query:   req.Query,
		Count:   len(results),
		Results: results,
	})
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	var req model.CountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "query is required")
		return
	}

	count, err := s.exec.Count(r.Context(), req.Query)
	if err != nil {
		writeExecError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CountResponse{Query: req.Query, Count: count})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var req model.StatsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "query is required")
		return
	}

	count, err := s.exec.Count(r.Context(), req.Query)
	if err != nil {
		writeExecError(w, err)
		return
	}

	resp := model.StatsResponse{Query: req.Query, TotalCount: count}
	if req.IncludeSize {
		size, err := s.exec.TotalSize(r.Context(), req.Query)
		if err == nil && size >= 0 {
			resp.TotalSize = size
			resp.TotalSizeHuman = textutil.HumanSize(size)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	var req model.DetailsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body: "+err.Error())
		return
	}

	if len(req.Paths) == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "at least one path is required")
		return
	}
	if len(req.Paths) > maxDetailPaths {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "too many paths (max 20)")
		return
	}

	previewLines := req.PreviewLines
	if previewLines < 0 {
		previewLines = 0
	}
	if previewLines > maxPreviewLines {
		previewLines = maxPreviewLines
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"files": inspect.Files(req.Paths, previewLines),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.exec.HealthCheck(r.Context())

	payload := map[string]any{"engine": status}
	if s.heartbeat != nil {
		payload["components"] = s.heartbeat.GetHealth()
	}

	code := http.StatusOK
	if status.Status == "error" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

func writeExecError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, executor.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "DEADLINE_EXCEEDED", err.Error())
	case errors.Is(err, executor.ErrExecutableNotFound),
		strings.Contains(err.Error(), "not available"):
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
