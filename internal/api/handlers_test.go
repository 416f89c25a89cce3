package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/orgcontext/internal/assemble"
	"github.com/dgallion1/orgcontext/internal/config"
	"github.com/dgallion1/orgcontext/internal/metricdoc"
	"github.com/dgallion1/orgcontext/internal/orgindex"
)

const testKey = "test-api-key"

const testChart = `name: Company
children:
  - name: Block X
    children:
      - name: IT Department
        positions:
          - Senior Backend Engineer
      - name: Accounting
        positions:
          - Chief Accountant
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	chartPath := filepath.Join(dir, "orgchart.yaml")
	if err := os.WriteFile(chartPath, []byte(testChart), 0o644); err != nil {
		t.Fatal(err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := orgindex.NewLoader(chartPath, nil, log)
	resolver, err := metricdoc.NewResolver(metricdoc.DefaultRegistry(), dir, 16, 20000, log)
	if err != nil {
		t.Fatal(err)
	}
	assembler := assemble.New(loader, resolver, nil, 0, log)

	cfg := config.Config{APIKey: testKey, CoverageWorkers: 2}
	return NewServer(assembler, log, cfg)
}

func doRequest(t *testing.T, s *Server, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if authed {
		req.Header.Set("Authorization", "Bearer "+testKey)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/units", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated request status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/units", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key status = %d, want 401", w.Code)
	}
}

func TestAssembleEndpoint(t *testing.T) {
	s := newTestServer(t)

	body := `{"department":"IT Department","role":"Senior Backend Engineer"}`
	rec := doRequest(t, s, http.MethodPost, "/api/context", body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var ac assemble.AssembledContext
	if err := json.Unmarshal(rec.Body.Bytes(), &ac); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ac.ID == "" || ac.Department != "IT Department" {
		t.Errorf("unexpected record: %+v", ac)
	}
	if ac.RoleCategory != "technical" {
		t.Errorf("role category = %s", ac.RoleCategory)
	}
	if ac.MetricContent == "" {
		t.Error("metric content must not be empty")
	}
}

func TestAssembleEndpoint_Validation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing department", `{"role":"Engineer"}`},
		{"missing role", `{"department":"IT Department"}`},
		{"malformed json", `{"department":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/context", tc.body, true)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestUnitsEndpoint_Filter(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/units?q=account", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Count int `json:"count"`
		Units []struct {
			DisplayName string `json:"display_name"`
		} `json:"units"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Units[0].DisplayName != "Accounting" {
		t.Errorf("unexpected filter result: %s", rec.Body.String())
	}
}

func TestTreeEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/tree?target=Accounting", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"is_exact_target":true`) {
		t.Errorf("tree response missing highlighted target: %s", rec.Body.String())
	}
}

func TestCoverageEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/coverage", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var probe metricdoc.CoverageProbe
	if err := json.Unmarshal(rec.Body.Bytes(), &probe); err != nil {
		t.Fatal(err)
	}
	if probe.Total != 3 || !probe.Covered {
		t.Errorf("unexpected probe: %+v", probe)
	}
}

func TestStatsAndReloadEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/stats", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/reload", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("reload status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "reloaded") {
		t.Errorf("unexpected reload body: %s", rec.Body.String())
	}
}
