package sister

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	sistermodel "github.com/phigamnu/sistergreet/internal/model/sister"
	"github.com/phigamnu/sistergreet/internal/service/audit"
	"github.com/phigamnu/sistergreet/internal/service/imageprobe"
	"github.com/phigamnu/sistergreet/internal/service/roster"
)

func setupRouter() (*chi.Mux, *audit.Service) {
	auditSvc := audit.NewService(16)
	rosterSvc := roster.NewService(roster.NewStaticSource(sistermodel.Seed()), auditSvc)
	handler := New(rosterSvc, imageprobe.New(time.Second), auditSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, auditSvc
}

func TestListSisters(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/sisters", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var items []sistermodel.Sister
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != len(sistermodel.Seed()) {
		t.Fatalf("expected %d records, got %d", len(sistermodel.Seed()), len(items))
	}
}

func TestFindSisterCaseInsensitive(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/sisters/AVERY", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var record sistermodel.Sister
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if record.Name != "Avery" {
		t.Fatalf("expected Avery, got %q", record.Name)
	}
}

func TestFindSisterNotFound(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/sisters/nobody", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestExistsEndpoint(t *testing.T) {
	r, _ := setupRouter()

	for path, want := range map[string]bool{
		"/sisters/jordan/exists": true,
		"/sisters/nobody/exists": false,
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		var payload map[string]bool
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatalf("%s: decode response: %v", path, err)
		}
		if payload["exists"] != want {
			t.Fatalf("%s: expected exists=%v", path, want)
		}
	}
}

func TestValidateEndpointInvalidCandidate(t *testing.T) {
	r, auditSvc := setupRouter()

	payload, _ := json.Marshal(map[string]any{
		"name":     "A",
		"greeting": "G",
		"message":  "M",
		"images":   []string{"not a url", "https://example.com/x.jpg"},
	})

	req := httptest.NewRequest(http.MethodPost, "/sisters/validate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result sistermodel.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Image URL 1 is not valid" {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	events := auditSvc.Recent()
	if len(events) == 0 || events[0].Kind != audit.KindValidate {
		t.Fatalf("expected a validate audit event, got %v", events)
	}
}

func TestValidateEndpointValidCandidate(t *testing.T) {
	r, _ := setupRouter()

	payload, _ := json.Marshal(map[string]string{
		"name":     "A",
		"greeting": "G",
		"message":  "M",
	})

	req := httptest.NewRequest(http.MethodPost, "/sisters/validate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	var result sistermodel.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Valid || len(result.Errors) != 0 {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

func TestValidateEndpointBadBody(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/sisters/validate", bytes.NewReader([]byte("{")))
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestValidateEndpointProbeFlagsUnreachableImage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.jpg" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	auditSvc := audit.NewService(16)
	rosterSvc := roster.NewService(roster.NewStaticSource(nil))
	handler := New(rosterSvc, imageprobe.New(time.Second), auditSvc)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	payload, _ := json.Marshal(map[string]any{
		"name":     "A",
		"greeting": "G",
		"message":  "M",
		"images":   []string{upstream.URL + "/ok.jpg", upstream.URL + "/missing.jpg"},
	})

	req := httptest.NewRequest(http.MethodPost, "/sisters/validate?probeImages=true", bytes.NewReader(payload))
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	var result struct {
		Valid       bool     `json:"valid"`
		Unreachable []string `json:"unreachable"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Valid {
		t.Fatal("probe misses must not flip validity")
	}
	if len(result.Unreachable) != 1 || result.Unreachable[0] != upstream.URL+"/missing.jpg" {
		t.Fatalf("unexpected unreachable list: %v", result.Unreachable)
	}
}
