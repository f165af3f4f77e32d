package v1handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"reflectometry/internal/api/handler/v1handler"
	"reflectometry/internal/api/specs/v1specs"
	"reflectometry/pkg/logger"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"

	"github.com/ogen-go/ogen/ogenerrors"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	_ = logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	res := v1handler.New(v1handler.Deps{}).NewError(context.Background(), errors.New("boom"))
	require.NotNil(t, res)
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), string(res.Response.Code))
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	res := v1handler.New(v1handler.Deps{}).NewError(context.Background(), serrors.ErrNotFound)
	require.Equal(t, 404, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), string(res.Response.Code))
	require.Equal(t, "resource not found", res.Response.Message)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	err := serrors.With(serrors.ErrBadRequest, "invalid payload: missing project")
	res := v1handler.New(v1handler.Deps{}).NewError(context.Background(), err)
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), string(res.Response.Code))
	require.Equal(t, "invalid payload: missing project", res.Response.Message)
}

func TestNewError_SemanticWrap_Unauthorized(t *testing.T) {
	cause := errors.New("bad token")
	err := serrors.Wrap(serrors.ErrUnauthorized, cause, "unauthorized")
	res := v1handler.New(v1handler.Deps{}).NewError(context.Background(), err)
	require.Equal(t, 401, res.StatusCode)
	require.Equal(t, serrors.ErrUnauthorized.Error(), string(res.Response.Code))
	// Should include provided message, not the cause
	require.Equal(t, "unauthorized", res.Response.Message)
}

func TestNewError_DescriptionErrorsKeepDetails(t *testing.T) {
	err := fmt.Errorf("could not enqueue: %w",
		serrors.Wrap(serrors.ErrConstraintCycle, &param.CycleError{Path: []string{"a", "b", "a"}}, "invalid constraints"))
	res := v1handler.New(v1handler.Deps{}).NewError(context.Background(), err)
	require.Equal(t, 422, res.StatusCode)
	require.Equal(t, serrors.ErrConstraintCycle.Error(), string(res.Response.Code))
	require.Equal(t, "invalid constraints: constraint cycle: a -> b -> a", res.Response.Message)

	res = v1handler.New(v1handler.Deps{}).NewError(context.Background(), serrors.With(serrors.ErrValidation, "thickness must be >= 0"))
	require.Equal(t, 422, res.StatusCode)
	require.Equal(t, "thickness must be >= 0", res.Response.Message)
}

func TestNewError_InternalKind_GeneratesInternal(t *testing.T) {
	res := v1handler.New(v1handler.Deps{}).NewError(context.Background(), serrors.KindOnly(serrors.ErrInternal))
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), string(res.Response.Code))
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_GeneratedServerErrors(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	op := ogenerrors.OperationContext{Name: v1specs.ListFitsOperation, ID: "listFits"}

	res := h.NewError(context.Background(), &ogenerrors.SecurityError{
		OperationContext: op,
		Err:              ogenerrors.ErrSecurityRequirementIsNotSatisfied,
	})
	require.Equal(t, 401, res.StatusCode)
	require.Equal(t, v1specs.ErrorCodeUNAUTHORIZED, res.Response.Code)
	require.Equal(t, "missing bearer token", res.Response.Message)

	res = h.NewError(context.Background(), &ogenerrors.DecodeParamsError{
		OperationContext: op,
		Err:              errors.New("query: limit: out of range"),
	})
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, v1specs.ErrorCodeBADREQUEST, res.Response.Code)
	require.Equal(t, "invalid parameters: query: limit: out of range", res.Response.Message)

	res = h.NewError(context.Background(), &ogenerrors.DecodeRequestError{
		OperationContext: op,
		Err:              &http.MaxBytesError{Limit: 64},
	})
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, "request body exceeds 64 bytes", res.Response.Message)
}

func TestHandleError_WritesErrorBody(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	rec := httptest.NewRecorder()

	h.HandleError(context.Background(), rec, httptest.NewRequest(http.MethodGet, "/v1/fits", nil),
		serrors.With(serrors.ErrNotFound, "fit not found"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"code":"NOT_FOUND","message":"fit not found"}`, rec.Body.String())
}
