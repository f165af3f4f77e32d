package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reflectometry/internal/api"
	"reflectometry/internal/api/handler/v1handler"
	"reflectometry/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMain(m *testing.M) {
	_ = logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func rsaKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	return priv, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func publicKeyPEM(t *testing.T) string {
	t.Helper()
	_, pub := rsaKey(t)

	return pub
}

func newServerWith(t *testing.T, mp *sdkmetric.MeterProvider, opts api.Options) (*http.Server, error) {
	t.Helper()
	opts.Addr = ":0"
	opts.RequestTimeout = time.Second
	opts.MetricsPath = "/metrics"
	opts.AllowedOrigins = []string{"https://lab.example"}

	return api.NewServer(api.Deps{MeterProvider: mp}, opts)
}

func newServer(t *testing.T, pub string, pprof bool) (*http.Server, error) {
	t.Helper()

	return newServerWith(t, sdkmetric.NewMeterProvider(), api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: pub},
		Pprof:             pprof,
	})
}

func TestNewServer_Routes(t *testing.T) {
	srv, err := newServer(t, publicKeyPEM(t), true)
	require.NoError(t, err)

	for _, tc := range []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/specs/v1.yaml", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/debug/pprof/cmdline", http.StatusOK},
		{http.MethodGet, "/v1/fits", http.StatusUnauthorized},
		{http.MethodPost, "/v1/calculate", http.StatusUnauthorized},
		{http.MethodOptions, "/v1/fits", http.StatusNoContent},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodGet, "/v1/nowhere", http.StatusNotFound},
	} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
		require.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.target)
	}
}

func TestNewServer_PprofDisabled(t *testing.T) {
	srv, err := newServer(t, publicKeyPEM(t), false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewServer_CORSAndRequestID(t *testing.T) {
	srv, err := newServer(t, publicKeyPEM(t), false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/v1/fits", nil)
	req.Header.Set("Origin", "https://lab.example")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://lab.example", rec.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestNewServer_RequiresPublicKey(t *testing.T) {
	_, err := newServer(t, "", false)
	require.Error(t, err)
}

func TestNewServer_BodyLimit(t *testing.T) {
	priv, pub := rsaKey(t)
	srv, err := newServerWith(t, sdkmetric.NewMeterProvider(), api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: pub},
		MaxBodyBytes:      64,
	})
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(priv)
	require.NoError(t, err)

	body := `{"model":"` + strings.Repeat("x", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/calculate", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"code":"BAD_REQUEST","message":"request body exceeds 64 bytes"}`, rec.Body.String())
}

func TestNewServer_RecordsOperationMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	srv, err := newServerWith(t, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: publicKeyPEM(t)},
	})
	require.NoError(t, err)

	for range 2 {
		srv.Handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/fits", nil))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "ogen.server.request_count" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value(attribute.Key("oas.operation"))
				counts[op.AsString()] += dp.Value
			}
		}
	}
	require.Equal(t, map[string]int64{"listFits": 2}, counts)
}
