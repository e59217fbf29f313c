package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/limanops/tarife/internal/catalog/domain"
	catalogrepo "github.com/limanops/tarife/internal/catalog/repository"
	catalogservice "github.com/limanops/tarife/internal/catalog/service"
	"github.com/limanops/tarife/internal/clock"
	"github.com/limanops/tarife/internal/config"
	"github.com/limanops/tarife/internal/observability"
	ratingservice "github.com/limanops/tarife/internal/rating/service"
	"github.com/limanops/tarife/internal/seed"
	"github.com/limanops/tarife/internal/server"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
	tariffrepo "github.com/limanops/tarife/internal/tariff/repository"
	tariffservice "github.com/limanops/tarife/internal/tariff/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	clock   *clock.FakeClock
	httpSrv *httptest.Server
	baseURL string
}

var env *testEnv

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	env, err = startEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start test environment:", err)
		os.Exit(1)
	}

	code := m.Run()
	env.httpSrv.Close()
	os.Exit(code)
}

func startEnv() (*testEnv, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&domain.VatRate{},
		&domain.VatExemption{},
		&domain.PricingRule{},
		&domain.Service{},
		&tariffdomain.TariffDocument{},
		&tariffdomain.TariffItem{},
	)
	if err != nil {
		return nil, err
	}
	if err := seed.EnsureDefaultCatalog(db); err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(9)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	fakeClock := clock.NewFakeClock(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	engineCfg := config.NewStaticEngineConfigHolder(config.EngineConfig{
		DefaultCurrency: "TRY",
		CodePrefix:      "TRF",
		AmountScale:     4,
	})
	metrics := observability.New()

	catRepo := catalogrepo.Provide()
	trfRepo := tariffrepo.Provide()

	catalogSvc := catalogservice.New(catalogservice.Params{
		DB: db, Log: log, GenID: node, Repo: catRepo,
	})
	tariffSvc := tariffservice.New(tariffservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		EngineCfg: engineCfg, Repo: trfRepo, CatalogRepo: catRepo,
	})
	ratingSvc := ratingservice.New(ratingservice.Params{
		DB: db, Log: log, EngineCfg: engineCfg, Metrics: metrics,
		Repo: trfRepo, CatalogRepo: catRepo,
	})

	engine := server.NewEngine(log, metrics)
	server.NewServer(server.ServerParams{
		Gin:        engine,
		CatalogSvc: catalogSvc,
		TariffSvc:  tariffSvc,
		RatingSvc:  ratingSvc,
		Metrics:    metrics,
	})

	srv := httptest.NewServer(engine)
	return &testEnv{
		db:      db,
		clock:   fakeClock,
		httpSrv: srv,
		baseURL: srv.URL,
	}, nil
}

func postJSON(t *testing.T, path string, body any, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(env.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	decode(t, resp.Body, out)
	return resp.StatusCode
}

func getJSON(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(env.baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	decode(t, resp.Body, out)
	return resp.StatusCode
}

func putJSON(t *testing.T, path string, body any, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPut, env.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build PUT %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	decode(t, resp.Body, out)
	return resp.StatusCode
}

func decode(t *testing.T, r io.Reader, out any) {
	t.Helper()
	if out == nil {
		_, _ = io.Copy(io.Discard, r)
		return
	}
	if err := json.NewDecoder(r).Decode(out); err != nil && err != io.EOF {
		t.Fatalf("decode response: %v", err)
	}
}

func TestE2E_HealthCheck(t *testing.T) {
	resp, err := http.Get(env.baseURL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestE2E_SeededCatalog(t *testing.T) {
	var rates struct {
		VatRates []struct {
			ID          string `json:"id"`
			Code        string `json:"code"`
			RatePercent string `json:"rate_percent"`
		} `json:"vat_rates"`
	}
	if status := getJSON(t, "/api/vat-rates", &rates); status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}
	if len(rates.VatRates) < 3 {
		t.Fatalf("expected seeded vat rates, got %d", len(rates.VatRates))
	}
}

// Full publication flow: catalog setup, draft, pricing, approval, resolution,
// derivation and supersession, all through the HTTP surface.
func TestE2E_TariffLifecycle(t *testing.T) {
	// Find the seeded 20% rate.
	var rates struct {
		VatRates []struct {
			ID   string `json:"id"`
			Code string `json:"code"`
		} `json:"vat_rates"`
	}
	getJSON(t, "/api/vat-rates", &rates)
	var vatRateID string
	for _, r := range rates.VatRates {
		if r.Code == "KDV20" {
			vatRateID = r.ID
		}
	}
	if vatRateID == "" {
		t.Fatal("seeded KDV20 rate not found")
	}

	var rule struct {
		ID string `json:"id"`
	}
	status := postJSON(t, "/api/pricing-rules", map[string]any{
		"code":             "PILOT-PKG-E2E",
		"name":             "Pilotaj paket",
		"calculation_type": "PACKAGE_PLUS_OVERAGE",
		"min_quantity":     "4",
		"package_price":    "150",
	}, &rule)
	if status != http.StatusCreated {
		t.Fatalf("create pricing rule: expected 201, got %d", status)
	}

	var svc struct {
		ID string `json:"id"`
	}
	status = postJSON(t, "/api/services", map[string]any{
		"code":            "PILOTAJ-E2E",
		"name":            "Pilotaj hizmeti",
		"unit":            "HOUR",
		"vat_rate_id":     vatRateID,
		"pricing_rule_id": rule.ID,
	}, &svc)
	if status != http.StatusCreated {
		t.Fatalf("create service: expected 201, got %d", status)
	}

	var draft struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	status = postJSON(t, "/api/tariffs", map[string]any{
		"code":       "TRF-2026-E2E",
		"name":       "2026 tarifesi",
		"currency":   "TRY",
		"valid_from": "2026-01-01T00:00:00Z",
	}, &draft)
	if status != http.StatusCreated {
		t.Fatalf("create draft: expected 201, got %d", status)
	}
	if draft.Status != "TASLAK" {
		t.Fatalf("expected TASLAK draft, got %s", draft.Status)
	}

	status = putJSON(t, "/api/tariffs/"+draft.ID+"/items", map[string]any{
		"service_id": svc.ID,
		"unit_price": "0",
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("put item: expected 200, got %d", status)
	}

	// A zero price on an active service blocks approval.
	var errBody struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	status = postJSON(t, "/api/tariffs/"+draft.ID+"/approve", map[string]any{}, &errBody)
	if status != http.StatusConflict {
		t.Fatalf("approve with zero price: expected 409, got %d", status)
	}

	status = putJSON(t, "/api/tariffs/"+draft.ID+"/items", map[string]any{
		"service_id": svc.ID,
		"unit_price": "37.50",
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("update item price: expected 200, got %d", status)
	}

	var approved struct {
		Approved struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"approved"`
	}
	status = postJSON(t, "/api/tariffs/"+draft.ID+"/approve", map[string]any{
		"effective_date": "2026-01-01T00:00:00Z",
	}, &approved)
	if status != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d", status)
	}
	if approved.Approved.Status != "AKTIF" {
		t.Fatalf("expected AKTIF, got %s", approved.Approved.Status)
	}

	var line struct {
		PreVatAmount string `json:"pre_vat_amount"`
		VatAmount    string `json:"vat_amount"`
		Total        string `json:"total"`
		Currency     string `json:"currency"`
	}
	status = postJSON(t, "/api/rating/resolve", map[string]any{
		"service_id": svc.ID,
		"as_of":      "2026-03-01T00:00:00Z",
		"quantity":   "3.5",
	}, &line)
	if status != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d", status)
	}
	if line.PreVatAmount != "150" || line.VatAmount != "30" || line.Total != "180" {
		t.Fatalf("unexpected amounts: preVat=%s vat=%s total=%s",
			line.PreVatAmount, line.VatAmount, line.Total)
	}
	if line.Currency != "TRY" {
		t.Fatalf("expected TRY, got %s", line.Currency)
	}

	// Derive next year's tariff with a 10% increase and publish it.
	var derived struct {
		Document struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"document"`
		Items []struct {
			UnitPrice string `json:"unit_price"`
		} `json:"items"`
	}
	status = postJSON(t, "/api/tariffs/"+draft.ID+"/derive", map[string]any{
		"adjustment": map[string]any{"mode": "PERCENTAGE", "value": "10"},
		"valid_from": "2027-01-01T00:00:00Z",
	}, &derived)
	if status != http.StatusCreated {
		t.Fatalf("derive: expected 201, got %d", status)
	}
	if derived.Document.Status != "TASLAK" {
		t.Fatalf("derived document must start as TASLAK, got %s", derived.Document.Status)
	}
	if len(derived.Items) != 1 || derived.Items[0].UnitPrice != "41.25" {
		t.Fatalf("expected adjusted unit price 41.25, got %+v", derived.Items)
	}

	status = postJSON(t, "/api/tariffs/"+derived.Document.ID+"/approve", map[string]any{
		"effective_date": "2027-01-01T00:00:00Z",
	}, &approved)
	if status != http.StatusOK {
		t.Fatalf("approve derived: expected 200, got %d", status)
	}

	// The old tariff is superseded; 2026 dates now have no active tariff,
	// 2027 dates price at the increased rate.
	var oldDoc struct {
		Document struct {
			Status  string  `json:"status"`
			ValidTo *string `json:"valid_to"`
		} `json:"document"`
	}
	getJSON(t, "/api/tariffs/"+draft.ID, &oldDoc)
	if oldDoc.Document.Status != "PASIF" {
		t.Fatalf("expected superseded tariff to be PASIF, got %s", oldDoc.Document.Status)
	}
	if oldDoc.Document.ValidTo == nil {
		t.Fatal("superseded tariff must have an end date")
	}

	status = postJSON(t, "/api/rating/resolve", map[string]any{
		"service_id": svc.ID,
		"as_of":      "2027-02-01T00:00:00Z",
		"quantity":   "5",
	}, &line)
	if status != http.StatusOK {
		t.Fatalf("resolve against derived tariff: expected 200, got %d", status)
	}
	// Package price is catalog-owned and unadjusted: 150 + 1h overage at the
	// derived 41.25 = 191.25, plus VAT 20%.
	if line.PreVatAmount != "191.25" || line.Total != "229.5" {
		t.Fatalf("unexpected amounts: preVat=%s total=%s", line.PreVatAmount, line.Total)
	}
}

func TestE2E_ResolveUnpricedDate(t *testing.T) {
	var svc struct {
		ID string `json:"id"`
	}
	var rates struct {
		VatRates []struct {
			ID   string `json:"id"`
			Code string `json:"code"`
		} `json:"vat_rates"`
	}
	getJSON(t, "/api/vat-rates", &rates)
	var vatRateID string
	for _, r := range rates.VatRates {
		if r.Code == "KDV10" {
			vatRateID = r.ID
		}
	}
	status := postJSON(t, "/api/services", map[string]any{
		"code":        "ATIK-E2E",
		"name":        "Atık alım",
		"unit":        "SERVICE",
		"vat_rate_id": vatRateID,
	}, &svc)
	if status != http.StatusCreated {
		t.Fatalf("create service: expected 201, got %d", status)
	}

	var errBody struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	status = postJSON(t, "/api/rating/resolve", map[string]any{
		"service_id": svc.ID,
		"as_of":      "1999-01-01T00:00:00Z",
		"quantity":   "1",
	}, &errBody)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unpriced date, got %d", status)
	}
	if errBody.Error.Type != "no_price_defined" {
		t.Fatalf("expected no_price_defined, got %s", errBody.Error.Type)
	}
}
