package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/deppfellow/tutorial-api/internal/config"
	"github.com/deppfellow/tutorial-api/internal/errs"
	"github.com/deppfellow/tutorial-api/internal/handler"
	"github.com/deppfellow/tutorial-api/internal/model"
	"github.com/deppfellow/tutorial-api/internal/repository"
	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/deppfellow/tutorial-api/internal/service"
	"github.com/deppfellow/tutorial-api/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestRouter(t *testing.T, cfg *config.Config) (*echo.Echo, *server.Server) {
	t.Helper()

	srv := testutil.NewServer(t, cfg)
	services, err := service.NewServices(srv, repository.NewRepositories(srv))
	if err != nil {
		t.Fatalf("NewServices: %v", err)
	}

	return NewRouter(srv, handler.NewHandlers(srv, services)), srv
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: want=%d got=%d body=%s", want, rec.Code, rec.Body.String())
	}
}

func expectEmptyBody(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Body.Len() != 0 {
		t.Fatalf("body: want empty got=%q", rec.Body.String())
	}
}

func decodeTutorial(t *testing.T, rec *httptest.ResponseRecorder) model.Tutorial {
	t.Helper()
	var tutorial model.Tutorial
	if err := json.Unmarshal(rec.Body.Bytes(), &tutorial); err != nil {
		t.Fatalf("decode tutorial: %v body=%s", err, rec.Body.String())
	}
	return tutorial
}

func decodeTutorials(t *testing.T, rec *httptest.ResponseRecorder) []model.Tutorial {
	t.Helper()
	var tutorials []model.Tutorial
	if err := json.Unmarshal(rec.Body.Bytes(), &tutorials); err != nil {
		t.Fatalf("decode tutorials: %v body=%s", err, rec.Body.String())
	}
	return tutorials
}

func TestTutorialLifecycle(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := do(t, e, http.MethodGet, "/api/v1/tutorials", "")
	expectStatus(t, rec, http.StatusNoContent)
	expectEmptyBody(t, rec)

	rec = do(t, e, http.MethodPost, "/api/v1/tutorials", `{"title":"Go Basics","description":"intro","isPublished":true}`)
	expectStatus(t, rec, http.StatusCreated)
	first := decodeTutorial(t, rec)
	if first.ID == 0 || first.Title != "Go Basics" || first.Description != "intro" || first.IsPublished {
		t.Fatalf("created: got=%+v", first)
	}

	rec = do(t, e, http.MethodPost, "/api/v1/tutorials", `{"title":"Advanced GOLANG","description":"deep"}`)
	expectStatus(t, rec, http.StatusCreated)
	second := decodeTutorial(t, rec)

	rec = do(t, e, http.MethodPost, "/api/v1/tutorials", `{"title":"Rust","description":"other"}`)
	expectStatus(t, rec, http.StatusCreated)

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeTutorials(t, rec); len(got) != 3 {
		t.Fatalf("all: want=3 got=%d", len(got))
	}

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials?title=go", "")
	expectStatus(t, rec, http.StatusOK)
	matched := decodeTutorials(t, rec)
	if len(matched) != 2 || matched[0].ID != first.ID || matched[1].ID != second.ID {
		t.Fatalf("title filter: got=%+v", matched)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials?title=python", "")
	expectStatus(t, rec, http.StatusNoContent)

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials/isPublished", "")
	expectStatus(t, rec, http.StatusNoContent)

	rec = do(t, e, http.MethodPut, "/api/v1/tutorials/"+itoa(first.ID), `{"id":999,"title":"Go Basics","description":"updated","isPublished":true}`)
	expectStatus(t, rec, http.StatusOK)
	updated := decodeTutorial(t, rec)
	if updated.ID != first.ID || !updated.IsPublished || updated.Description != "updated" {
		t.Fatalf("updated: got=%+v", updated)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials/isPublished", "")
	expectStatus(t, rec, http.StatusOK)
	published := decodeTutorials(t, rec)
	if len(published) != 1 || published[0].ID != first.ID {
		t.Fatalf("published: got=%+v", published)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials/"+itoa(first.ID), "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeTutorial(t, rec); got != updated {
		t.Fatalf("get: want=%+v got=%+v", updated, got)
	}

	rec = do(t, e, http.MethodDelete, "/api/v1/tutorials/"+itoa(first.ID), "")
	expectStatus(t, rec, http.StatusNoContent)
	expectEmptyBody(t, rec)

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials/"+itoa(first.ID), "")
	expectStatus(t, rec, http.StatusNotFound)
	expectEmptyBody(t, rec)

	rec = do(t, e, http.MethodDelete, "/api/v1/tutorials", "")
	expectStatus(t, rec, http.StatusNoContent)

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials", "")
	expectStatus(t, rec, http.StatusNoContent)
}

func TestMissingTutorial(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := do(t, e, http.MethodGet, "/api/v1/tutorials/42", "")
	expectStatus(t, rec, http.StatusNotFound)
	expectEmptyBody(t, rec)

	rec = do(t, e, http.MethodPut, "/api/v1/tutorials/42", `{"title":"ghost","description":"","isPublished":true}`)
	expectStatus(t, rec, http.StatusNotFound)
	expectEmptyBody(t, rec)

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials", "")
	expectStatus(t, rec, http.StatusNoContent)

	rec = do(t, e, http.MethodDelete, "/api/v1/tutorials/42", "")
	expectStatus(t, rec, http.StatusNoContent)
}

func TestBadRequests(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	cases := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "non-numeric id", method: http.MethodGet, target: "/api/v1/tutorials/abc"},
		{name: "malformed json", method: http.MethodPost, target: "/api/v1/tutorials", body: `{"title":`},
		{name: "wrong field type", method: http.MethodPut, target: "/api/v1/tutorials/1", body: `{"isPublished":"yes"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, e, tc.method, tc.target, tc.body)
			expectStatus(t, rec, http.StatusBadRequest)

			var envelope errs.HTTPError
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode error envelope: %v body=%s", err, rec.Body.String())
			}
			if envelope.Status != http.StatusBadRequest || envelope.Code != "BAD_REQUEST" {
				t.Fatalf("envelope: got=%+v", envelope)
			}
		})
	}
}

func TestStorageFailure(t *testing.T) {
	e, srv := newTestRouter(t, nil)

	if err := srv.DB.Close(); err != nil {
		t.Fatalf("DB.Close: %v", err)
	}

	for _, target := range []string{"/api/v1/tutorials", "/api/v1/tutorials/isPublished", "/api/v1/tutorials/1"} {
		rec := do(t, e, http.MethodGet, target, "")
		expectStatus(t, rec, http.StatusInternalServerError)
		expectEmptyBody(t, rec)
	}

	rec := do(t, e, http.MethodPost, "/api/v1/tutorials", `{"title":"x"}`)
	expectStatus(t, rec, http.StatusInternalServerError)
	expectEmptyBody(t, rec)

	rec = do(t, e, http.MethodDelete, "/api/v1/tutorials", "")
	expectStatus(t, rec, http.StatusInternalServerError)
}

func TestLongTitleFilter(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	title := strings.Repeat("a", 300)
	rec := do(t, e, http.MethodPost, "/api/v1/tutorials", `{"title":"`+title+`","description":"long"}`)
	expectStatus(t, rec, http.StatusCreated)

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials?title="+strings.Repeat("a", 256), "")
	expectStatus(t, rec, http.StatusOK)

	tutorials := decodeTutorials(t, rec)
	if len(tutorials) != 1 || tutorials[0].Title != title {
		t.Fatalf("want the long tutorial got=%+v", tutorials)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials?title="+strings.Repeat("b", 1000), "")
	expectStatus(t, rec, http.StatusNoContent)
}

func TestStorageFailureLogging(t *testing.T) {
	e, srv := newTestRouter(t, nil)

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	srv.Logger = &log

	if err := srv.DB.Close(); err != nil {
		t.Fatalf("DB.Close: %v", err)
	}

	rec := do(t, e, http.MethodGet, "/api/v1/tutorials/1", "")
	expectStatus(t, rec, http.StatusInternalServerError)

	var messages []string
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry struct {
			Level   string `json:"level"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if entry.Level == zerolog.LevelErrorValue {
			messages = append(messages, entry.Message)
		}
	}

	sort.Strings(messages)
	want := []string{"API", http.StatusText(http.StatusInternalServerError), "handler execution failed"}
	if strings.Join(messages, "|") != strings.Join(want, "|") {
		t.Fatalf("error log lines: want=%q got=%q", want, messages)
	}
}

func TestCORS(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/tutorials/1", nil)
		req.Header.Set(echo.HeaderOrigin, origin)
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPut)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight(config.DefaultClientOrigin)
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != config.DefaultClientOrigin {
		t.Fatalf("allowed origin: want=%q got=%q", config.DefaultClientOrigin, got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowMethods); !strings.Contains(got, http.MethodPut) {
		t.Fatalf("allowed methods: want PUT in %q", got)
	}

	rec = preflight("http://evil.example")
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("foreign origin: want no allow header got=%q", got)
	}
}

func TestSystemRoutes(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := do(t, e, http.MethodGet, "/status", "")
	expectStatus(t, rec, http.StatusOK)
	var health map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "healthy" {
		t.Fatalf("health status: got=%v", health["status"])
	}
	checks, _ := health["checks"].(map[string]any)
	if _, ok := checks["database"]; !ok {
		t.Fatalf("health checks: want database entry got=%v", checks)
	}
	if _, ok := checks["redis"]; ok {
		t.Fatalf("health checks: redis is not configured, got=%v", checks)
	}

	rec = do(t, e, http.MethodGet, "/docs", "")
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextHTML) {
		t.Fatalf("docs content type: got=%q", ct)
	}

	rec = do(t, e, http.MethodGet, "/static/openapi.json", "")
	expectStatus(t, rec, http.StatusOK)
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode openapi document: %v", err)
	}

	rec = do(t, e, http.MethodGet, "/nowhere", "")
	expectStatus(t, rec, http.StatusNotFound)
	if !strings.Contains(rec.Body.String(), "Route not found") {
		t.Fatalf("unknown route body: got=%s", rec.Body.String())
	}
}

func TestHealthReportsDatabaseDown(t *testing.T) {
	e, srv := newTestRouter(t, nil)

	if err := srv.DB.Close(); err != nil {
		t.Fatalf("DB.Close: %v", err)
	}

	rec := do(t, e, http.MethodGet, "/status", "")
	expectStatus(t, rec, http.StatusServiceUnavailable)
}

func TestRequestID(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := do(t, e, http.MethodGet, "/api/v1/tutorials", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("X-Request-ID: want generated id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tutorials", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID: want=%q got=%q", "abc-123", got)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testutil.NewConfig()
	cfg.RateLimit = config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             1,
		Window:            1,
	}
	e, _ := newTestRouter(t, cfg)

	rec := do(t, e, http.MethodGet, "/api/v1/tutorials", "")
	expectStatus(t, rec, http.StatusNoContent)

	rec = do(t, e, http.MethodGet, "/api/v1/tutorials", "")
	expectStatus(t, rec, http.StatusTooManyRequests)
	if !strings.Contains(rec.Body.String(), "TOO_MANY_REQUESTS") {
		t.Fatalf("rate limit body: got=%s", rec.Body.String())
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
