package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"reflectometry/pkg/controller"

	"github.com/stretchr/testify/require"
)

func serveCORS(t *testing.T, mw func(http.Handler) http.Handler, method, origin string) (*http.Response, bool) {
	t.Helper()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(method, "/v1/fits", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	return rec.Result(), called
}

func TestWithCORS_Preflight(t *testing.T) {
	res, called := serveCORS(t, controller.WithCORS(), http.MethodOptions, "https://lab.example")

	require.False(t, called, "next handler should not be called for OPTIONS preflight")
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.Empty(t, res.Header.Get("Access-Control-Allow-Credentials"))
	require.Contains(t, res.Header.Get("Access-Control-Allow-Headers"), "Authorization")
	require.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestWithCORS_NormalRequest(t *testing.T) {
	res, called := serveCORS(t, controller.WithCORS(), http.MethodGet, "")

	require.True(t, called, "next handler should be called for non-OPTIONS request")
	require.Equal(t, http.StatusTeapot, res.StatusCode)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "X-Request-Id", res.Header.Get("Access-Control-Expose-Headers"))
}

func TestWithCORS_AllowedOrigins(t *testing.T) {
	mw := controller.WithCORS("https://lab.example", "https://beamline.example")

	res, called := serveCORS(t, mw, http.MethodPost, "https://beamline.example")
	require.True(t, called)
	require.Equal(t, "https://beamline.example", res.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))
	require.Equal(t, "Origin", res.Header.Get("Vary"))

	res, called = serveCORS(t, mw, http.MethodPost, "https://elsewhere.example")
	require.True(t, called)
	require.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
	require.Empty(t, res.Header.Get("Access-Control-Allow-Credentials"))
}

func TestWithCORS_WildcardOrigin(t *testing.T) {
	res, _ := serveCORS(t, controller.WithCORS("*"), http.MethodGet, "https://lab.example")
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}
