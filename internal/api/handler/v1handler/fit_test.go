package v1handler_test

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reflectometry/internal/api/handler/v1handler"
	"reflectometry/internal/api/specs/v1specs"
	mockfitjob "reflectometry/internal/fitjob/mock"
	"reflectometry/pkg/domain"
	"reflectometry/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testAPI struct {
	svc   *mockfitjob.MockService
	srv   *v1specs.Server
	priv  *rsa.PrivateKey
	user  domain.UserID
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mockfitjob.NewMockService(ctrl)
	priv, pubPEM := genRSAKeys(t)
	sec := newSecHandlerForTest(t, pubPEM)

	h := v1handler.New(v1handler.Deps{Service: svc})
	srv, err := v1specs.NewServer(h, sec,
		v1specs.WithErrorHandler(h.HandleError),
		v1specs.WithPathPrefix("/v1"))
	require.NoError(t, err)

	user := uuid.New()
	now := time.Now()

	return &testAPI{
		svc:   svc,
		srv:   srv,
		priv:  priv,
		user:  domain.UserID(user),
		token: signJWTRS256(t, priv, user.String(), now, now.Add(time.Hour)),
	}
}

func (a *testAPI) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+a.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.srv.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}

	return rec, out
}

func TestHandler_RequiresBearerToken(t *testing.T) {
	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/fits", nil)
	rec := httptest.NewRecorder()
	a.srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/fits", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	a.srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
	require.Contains(t, rec.Body.String(), `"message":"invalid token"`)
}

func TestHandler_MissingTokenIsUnauthorized(t *testing.T) {
	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/fits", strings.NewReader(`{"project":"name: p"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"message":"missing bearer token"`)
}

func TestHandler_UnknownRouteAndMethod(t *testing.T) {
	a := newTestAPI(t)

	rec, _ := a.do(t, http.MethodGet, "/v1/nowhere", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = a.do(t, http.MethodPut, "/v1/fits", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET,POST", rec.Header().Get("Allow"))
}

func TestHandler_Calculate(t *testing.T) {
	a := newTestAPI(t)

	a.svc.EXPECT().Calculate(gomock.Any(), []byte("name: m"), []float64{0.01, 0.02}, "parratt").
		Return(&domain.FitCurve{Model: "m", Q: []float64{0.01, 0.02}, R: []float64{0.5, 0.25}}, nil)

	rec, out := a.do(t, http.MethodPost, "/v1/calculate",
		`{"model":"name: m","q":[0.01,0.02],"backend":"parratt","extra":{"ignored":true}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "m", out["model"])
	require.Equal(t, []any{0.5, 0.25}, out["r"])
}

func TestHandler_Calculate_BadBody(t *testing.T) {
	a := newTestAPI(t)

	for _, body := range []string{
		`{"model": 3}`,
		`{"q":[1]}`,
		`{"model":"name: m","backend":"fourier"}`,
		`{"model":"name: m"} trailing`,
	} {
		rec, out := a.do(t, http.MethodPost, "/v1/calculate", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, serrors.ErrBadRequest.Error(), out["code"], body)
		require.Contains(t, out["message"], "invalid request body", body)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/calculate", strings.NewReader(`model: m`))
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()
	a.srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Calculate_ValidationError(t *testing.T) {
	a := newTestAPI(t)

	a.svc.EXPECT().Calculate(gomock.Any(), gomock.Any(), gomock.Any(), "").
		Return(nil, serrors.With(serrors.ErrValidation, "unknown material \"gold\""))

	rec, out := a.do(t, http.MethodPost, "/v1/calculate", `{"model":"name: m","q":[0.1]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "unknown material \"gold\"", out["message"])
}

func TestHandler_CreateFit(t *testing.T) {
	a := newTestAPI(t)
	id := uuid.New()

	a.svc.EXPECT().Enqueue(gomock.Any(), a.user, []byte("name: p")).
		Return(&domain.Fit{
			ID:        domain.FitID(id),
			Name:      "p",
			Backend:   "abeles",
			Status:    domain.FitStatusPending,
			CreatedAt: time.Now(),
		}, nil)

	rec, out := a.do(t, http.MethodPost, "/v1/fits", `{"project":"name: p"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, id.String(), out["id"])
	require.Equal(t, "PENDING", out["status"])
	require.NotContains(t, out, "project")
}

func TestHandler_ListFits(t *testing.T) {
	a := newTestAPI(t)

	a.svc.EXPECT().UserFits(gomock.Any(), a.user, domain.FitStatusCompleted, "c1", uint(5)).
		Return([]domain.Fit{{ID: domain.FitID(uuid.New()), Status: domain.FitStatusCompleted}}, "c2", nil)

	rec, out := a.do(t, http.MethodGet, "/v1/fits?status=COMPLETED&cursor=c1&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, out["items"], 1)
	require.Equal(t, "c2", out["nextCursor"])

	for _, query := range []string{"limit=-1", "limit=101", "limit=ten", "status=RUNNING"} {
		rec, out = a.do(t, http.MethodGet, "/v1/fits?"+query, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, query)
		require.Equal(t, serrors.ErrBadRequest.Error(), out["code"], query)
	}

	a.svc.EXPECT().UserFits(gomock.Any(), a.user, domain.FitStatus(""), "", uint(20)).Return(nil, "", nil)
	rec, out = a.do(t, http.MethodGet, "/v1/fits", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, out["items"])
	require.Contains(t, out, "nextCursor")
	require.Nil(t, out["nextCursor"])
}

func TestHandler_GetFit(t *testing.T) {
	a := newTestAPI(t)
	id := domain.FitID(uuid.New())
	lo := 50.0

	a.svc.EXPECT().Result(gomock.Any(), a.user, id).Return(&domain.Fit{
		ID:      id,
		Project: "name: p",
		Status:  domain.FitStatusCompleted,
		Result: domain.FitResult{
			Parameters: []domain.FitParameter{{Name: "film.thickness", Value: 100, Stderr: 0.5, Min: &lo}},
			Chi2:       1.5,
			Converged:  true,
			Curves:     []domain.FitCurve{{Model: "m", Q: []float64{0.1}, R: []float64{0.01}}},
		},
	}, nil)

	rec, out := a.do(t, http.MethodGet, "/v1/fits/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "name: p", out["project"])
	result, ok := out["result"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 1.5, result["chi2"])
	params, ok := result["parameters"].([]any)
	require.True(t, ok)
	require.Len(t, params, 1)
	p, ok := params[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 50.0, p["min"])
	require.NotContains(t, p, "max")
}

func TestHandler_GetFit_Errors(t *testing.T) {
	a := newTestAPI(t)

	rec, out := a.do(t, http.MethodGet, "/v1/fits/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, serrors.ErrBadRequest.Error(), out["code"])

	id := domain.FitID(uuid.New())
	a.svc.EXPECT().Result(gomock.Any(), a.user, id).Return(nil, serrors.With(serrors.ErrNotFound, "fit not found"))
	rec, out = a.do(t, http.MethodGet, "/v1/fits/"+id.String(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "fit not found", out["message"])
}

func TestHandler_DeleteFit(t *testing.T) {
	a := newTestAPI(t)
	id := domain.FitID(uuid.New())

	a.svc.EXPECT().Delete(gomock.Any(), a.user, id).Return(nil)
	rec, _ := a.do(t, http.MethodDelete, "/v1/fits/"+id.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	a.svc.EXPECT().Delete(gomock.Any(), a.user, id).Return(context.DeadlineExceeded)
	rec, out := a.do(t, http.MethodDelete, "/v1/fits/"+id.String(), "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", out["message"])
}
