package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"esmcp/config"
	"esmcp/executor"
	"esmcp/model"
)

type fakeExecutor struct {
	results   []model.SearchResult
	searchErr error
	count     int64
	countErr  error
	size      int64
	sizeErr   error
	health    *model.HealthStatus
}

func (f *fakeExecutor) Search(context.Context, string, executor.SearchOpts) ([]model.SearchResult, error) {
	return f.results, f.searchErr
}

func (f *fakeExecutor) Count(context.Context, string) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeExecutor) TotalSize(context.Context, string) (int64, error) {
	return f.size, f.sizeErr
}

func (f *fakeExecutor) Version(context.Context) (string, error) {
	return "1.4.1", nil
}

func (f *fakeExecutor) HealthCheck(context.Context) *model.HealthStatus {
	if f.health != nil {
		return f.health
	}
	return &model.HealthStatus{Status: "ok"}
}

func newTestServer(exec executor.Executor) *Server {
	fc := &config.FileConfig{}
	return NewServer(Deps{
		FileConfig: fc,
		Config:     &config.Config{EsPath: `C:\x\es.exe`},
		Executor:   exec,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch_OK(t *testing.T) {
	s := newTestServer(&fakeExecutor{results: []model.SearchResult{
		{Path: `C:\a.txt`, Name: "a.txt", Size: 10},
	}})

	rec := doRequest(s, http.MethodPost, "/api/search", `{"query":"*.txt"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp model.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Results[0].Path != `C:\a.txt` {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	s := newTestServer(&fakeExecutor{})

	rec := doRequest(s, http.MethodPost, "/api/search", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp model.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_ARGUMENT" || resp.Error.RequestID == "" {
		t.Fatalf("unexpected error payload: %+v", resp)
	}
}

func TestHandleSearch_TimeoutMapsTo504(t *testing.T) {
	s := newTestServer(&fakeExecutor{searchErr: executor.ErrTimeout})

	rec := doRequest(s, http.MethodPost, "/api/search", `{"query":"q"}`)
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}
}

func TestHandleSearch_UnavailableMapsTo503(t *testing.T) {
	s := newTestServer(&fakeExecutor{searchErr: executor.ErrExecutableNotFound})

	rec := doRequest(s, http.MethodPost, "/api/search", `{"query":"q"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleCount_OK(t *testing.T) {
	s := newTestServer(&fakeExecutor{count: 99})

	rec := doRequest(s, http.MethodPost, "/api/count", `{"query":"*.log"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp model.CountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 99 {
		t.Fatalf("unexpected count: %d", resp.Count)
	}
}

func TestHandleStats_SizeOptional(t *testing.T) {
	s := newTestServer(&fakeExecutor{count: 4, size: 2048})

	rec := doRequest(s, http.MethodPost, "/api/stats", `{"query":"q","include_size":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp model.StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.TotalSize != 2048 || resp.TotalSizeHuman != "2.0 KB" {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}

func TestHandleDetails_TooManyPaths(t *testing.T) {
	s := newTestServer(&fakeExecutor{})

	paths := make([]string, maxDetailPaths+1)
	for i := range paths {
		paths[i] = `"C:\\x"`
	}
	body := `{"paths":[` + strings.Join(paths, ",") + `]}`

	rec := doRequest(s, http.MethodPost, "/api/details", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleHealth_DegradedEngine(t *testing.T) {
	s := newTestServer(&fakeExecutor{health: &model.HealthStatus{
		Status: "error",
		Errors: []string{"es.exe not found."},
	}})

	rec := doRequest(s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleHealth_OK(t *testing.T) {
	s := newTestServer(&fakeExecutor{})

	rec := doRequest(s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
