package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"school-backend/config"
	"school-backend/database/dbtest"
	"school-backend/middleware"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{ExposeErrors: true, CORSAllowedOrigin: "*"}
	h, err := newHandler(dbtest.Open(t), cfg, zaptest.NewLogger(t), prometheus.NewRegistry())
	require.NoError(t, err)
	return h
}

func serveTest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerEndToEnd(t *testing.T) {
	h := newTestHandler(t)

	rec := serveTest(h, http.MethodPost, "/alunos", `{"nome_completo":"João Silva"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serveTest(h, http.MethodGet, "/alunos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "João Silva")

	rec = serveTest(h, http.MethodOptions, "/alunos/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerOperationalRoutes(t *testing.T) {
	h := newTestHandler(t)

	rec := serveTest(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	serveTest(h, http.MethodGet, "/categories", "")
	rec = serveTest(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/categories",status="200"} 1`)

	rec = serveTest(h, http.MethodGet, "/apidocs/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/order-details/{order_id}/{product_id}")

	rec = serveTest(h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Not found"}`, rec.Body.String())
}
