package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/osmoflow/rosim/internal/adapters/history"
	"github.com/osmoflow/rosim/internal/registry"
	"github.com/osmoflow/rosim/internal/transport"
	"github.com/osmoflow/rosim/internal/vessel"
)

const testCatalog = `
[membranes.CPA5-LD]
a_value = 3.0e-7
b_value = 2.0e-8
area_m2 = 37.0
default_dp_element = 0.3
default_osm_coef = 0.0008
`

func newTestServer(t *testing.T) (*gin.Engine, *history.JSONStore) {
	t.Helper()

	catalogPath := filepath.Join(t.TempDir(), "membranes.toml")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	reg, err := registry.Load(catalogPath, nil)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	store := history.NewJSONStore(t.TempDir())
	sim := vessel.New(reg, transport.DefaultParams(), nil)
	h := NewHandler(sim, reg, store, nil)
	return New(h, nil), store
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"product": "CPA5-LD",
	"feed_flow": 30.0,
	"feed_tds": 2000.0,
	"feed_pressure": 15.5,
	"temperature": 25.0,
	"num_elements": 4
}`

func TestSimulateEndpoint(t *testing.T) {
	r, store := newTestServer(t)

	w := postJSON(t, r, "/api/simulate", validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if fp, ok := resp["FinalPressure_bar"].(float64); !ok || math.Abs(fp-14.3) > 1e-9 {
		t.Fatalf("FinalPressure_bar = %v, want 14.3", resp["FinalPressure_bar"])
	}
	if recovery, ok := resp["Recovery_%"].(float64); !ok || recovery <= 0 {
		t.Fatalf("Recovery_%% = %v, want positive number", resp["Recovery_%"])
	}

	// The run was appended to history.
	records, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("history has %d records, want 1", len(records))
	}
}

func TestSimulateUnknownProduct(t *testing.T) {
	r, _ := newTestServer(t)

	body := strings.Replace(validBody, "CPA5-LD", "NOSUCH-8040", 1)
	w := postJSON(t, r, "/api/simulate", body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", w.Code, w.Body.String())
	}
}

func TestSimulateInvalidBody(t *testing.T) {
	r, _ := newTestServer(t)

	w := postJSON(t, r, "/api/simulate", `{"product":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSimulateInvalidElementCount(t *testing.T) {
	r, _ := newTestServer(t)

	body := strings.Replace(validBody, `"num_elements": 4`, `"num_elements": 0`, 1)
	w := postJSON(t, r, "/api/simulate", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestProductsEndpoint(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(t, r, "/api/products")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "CPA5-LD") {
		t.Fatalf("products response missing CPA5-LD: %s", w.Body.String())
	}
}

func TestHistoryEndpoint(t *testing.T) {
	r, _ := newTestServer(t)

	if w := postJSON(t, r, "/api/simulate", validBody); w.Code != http.StatusOK {
		t.Fatalf("simulate status = %d, want 200", w.Code)
	}

	w := get(t, r, "/api/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		History []map[string]interface{} `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(resp.History) != 1 {
		t.Fatalf("history has %d entries, want 1", len(resp.History))
	}
	if resp.History[0]["Selected_Product"] != "CPA5-LD" {
		t.Fatalf("history entry product = %v, want CPA5-LD", resp.History[0]["Selected_Product"])
	}
}

func TestHealthz(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(t, r, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
