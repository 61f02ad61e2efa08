package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridian/fund-console/internal/address"
	"github.com/meridian/fund-console/internal/config"
	"github.com/meridian/fund-console/internal/draft"
	"github.com/meridian/fund-console/internal/forms"
	"github.com/meridian/fund-console/internal/notify"
	"github.com/meridian/fund-console/internal/quickpaste"
)

type harness struct {
	srv   *Server
	store draft.Store
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()

	cfg := config.Defaults()
	if mutate != nil {
		mutate(&cfg)
	}

	store := draft.NewMemoryStore()
	hub := notify.NewHub()
	normalizer := address.NewNormalizer(nil, nil)
	engine := quickpaste.New(normalizer)
	registry := forms.NewRegistry(store, hub, zap.NewNop(), forms.RegistryOptions{
		Debounce:     10 * time.Millisecond,
		PasteRelease: 20 * time.Millisecond,
		Defaults:     map[string]any{"stage": "new"},
	})

	srv, err := New(Options{
		Config:   &cfg,
		Toasts:   hub,
		Engine:   engine,
		Addr:     normalizer,
		Drafts:   store,
		Sessions: registry,
	})
	require.NoError(t, err)
	t.Cleanup(srv.rateLimiter.Stop)

	return &harness{srv: srv, store: store}
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestParseMemoEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/parse/memo", map[string]string{
		"text": "Investment Amount: $500,000\nInstrument: SAFE (Post-Money)\nPro-rata rights: yes",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(500000), fields["investment_amount"])
	assert.Equal(t, "safe_post", fields["instrument"])
	assert.Equal(t, true, fields["pro_rata"])
	assert.NotEmpty(t, body["failed_to_parse"], "unstated fields are reported as failed")
}

func TestParseMemoRejectsBadJSON(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/parse/memo", `{"text": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseDiligenceEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/parse/diligence", map[string]string{
		"text": "Country of Incorporation: Estonia\nEntity type: Delaware C-Corp\n\nFounder: Ada Lovelace <ada@acme.example>",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	fields := decodeBody(t, rec)["fields"].(map[string]any)
	assert.Equal(t, "Estonia", fields["country"])
	assert.Equal(t, "c_corp", fields["incorporation_type"])
	founders, ok := fields["founders"].([]any)
	require.True(t, ok)
	require.Len(t, founders, 1)
	assert.Equal(t, "Ada Lovelace", founders[0].(map[string]any)["name"])
}

func TestNormalizeAddressEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/address/normalize", map[string]string{
		"address": "500 Market Street, San Francisco, CA 94105, USA",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "regex", body["method"])
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "San Francisco", fields["city"])
	assert.Equal(t, "CA", fields["state"])
}

func TestNormalizeAddressRequiresText(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/address/normalize", map[string]string{"address": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftRoundTrip(t *testing.T) {
	h := newTestServer(t, nil)
	snapshot := `{"company_name": "Acme", "investment_amount": 500000}`

	rec := h.do(t, "PUT", "/drafts/wizard-1", snapshot)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, "GET", "/drafts/wizard-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, snapshot, rec.Body.String())

	rec = h.do(t, "DELETE", "/drafts/wizard-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, "GET", "/drafts/wizard-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutDraftRejectsInvalidSnapshot(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "PUT", "/drafts/wizard-1", `{"company_name": null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Nothing was stored.
	_, ok, err := h.store.Get(context.Background(), "wizard-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFormLifecycle(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/forms/wizard-2/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "watching", body["state"])
	assert.Equal(t, "new", body["snapshot"].(map[string]any)["stage"])

	rec = h.do(t, "POST", "/forms/wizard-2/changes", map[string]any{
		"fields": map[string]any{"company_name": "Acme"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "Acme", body["snapshot"].(map[string]any)["company_name"])

	rec = h.do(t, "POST", "/forms/wizard-2/flush", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, decodeBody(t, rec)["writes"], float64(1))

	rec = h.do(t, "GET", "/drafts/wizard-2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme")

	rec = h.do(t, "POST", "/forms/wizard-2/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, "GET", "/drafts/wizard-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormChangesRequiresFields(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/forms/wizard-3/changes", map[string]any{"fields": map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFormPasteAppliesExtractedFields(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/forms/wizard-4/paste", map[string]string{
		"variant": "memo",
		"text":    "Investment Amount: $250,000\nValuation Cap: $10M",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	snapshot := body["snapshot"].(map[string]any)
	assert.Equal(t, float64(250000), snapshot["investment_amount"])
	assert.Equal(t, float64(10000000), snapshot["conversion_cap"])

	extraction, ok := body["extraction"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, extraction["successfully_parsed"], "investment_amount")
}

func TestFormPasteRejectsUnknownVariant(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/forms/wizard-5/paste", map[string]string{
		"variant": "term-sheet",
		"text":    "anything",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompaniesUnavailableWithoutDatabase(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "GET", "/companies", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEnrichUnavailableWithoutDependencies(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "POST", "/companies/0b1f8c1e-0000-0000-0000-000000000000/enrich", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	secret := "test-secret"
	h := newTestServer(t, func(c *config.Config) { c.JWTSecret = secret })

	t.Run("missing token rejected", func(t *testing.T) {
		rec := h.do(t, "GET", "/companies", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("health stays open", func(t *testing.T) {
		rec := h.do(t, "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			Email: "analyst@fund.example",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/companies", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		h.srv.httpServer.Handler.ServeHTTP(rec, req)

		// Auth passed; the route then reports its missing database.
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/companies", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		h.srv.httpServer.Handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimitKicksIn(t *testing.T) {
	h := newTestServer(t, nil)
	body := map[string]string{"text": "nothing to parse"}

	// The paste endpoints allow a burst of 20 per client.
	for i := 0; i < 20; i++ {
		rec := h.do(t, "POST", "/parse/memo", body)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i)
	}

	rec := h.do(t, "POST", "/parse/memo", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limit_exceeded", decodeBody(t, rec)["error"])
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, nil)

	rec := h.do(t, "OPTIONS", "/companies", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
}
