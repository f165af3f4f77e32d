package v1handler

import (
	"context"
	"net/http"

	"reflectometry/internal/api/specs/v1specs"
	"reflectometry/pkg/logger"
	"reflectometry/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/ogen-go/ogen/ogenerrors"
	"go.uber.org/zap"
)

var statuses = []struct {
	kind    serrors.Kind
	status  int
	message string
}{
	{serrors.ErrBadRequest, http.StatusBadRequest, "bad request"},
	{serrors.ErrValidation, http.StatusUnprocessableEntity, "invalid description"},
	{serrors.ErrConstraintCycle, http.StatusUnprocessableEntity, "constraint cycle"},
	{serrors.ErrConfiguration, http.StatusUnprocessableEntity, "invalid fit setup"},
	{serrors.ErrCalculation, http.StatusUnprocessableEntity, "calculation failed"},
	{serrors.ErrNotFound, http.StatusNotFound, "resource not found"},
	{serrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{serrors.ErrConflict, http.StatusConflict, "conflict"},
}

// NewError maps err onto an HTTP status and a client-facing message.
// Errors without a known kind are logged and reported as internal errors.
func (h Handler) NewError(ctx context.Context, err error) *v1specs.ErrorStatusCode {
	if kerr := requestError(err); kerr != nil {
		err = kerr
	}

	for _, s := range statuses {
		if !errors.Is(err, s.kind) {
			continue
		}

		msg := s.message
		var se *serrors.Error
		if errors.As(err, &se) {
			switch {
			case s.kind == serrors.ErrUnauthorized && se.Message() != "":
				msg = se.Message()
			case s.kind != serrors.ErrUnauthorized && se.Error() != s.kind.Error():
				msg = se.Error()
			}
		}

		return &v1specs.ErrorStatusCode{
			StatusCode: s.status,
			Response:   v1specs.Error{Code: v1specs.ErrorCode(s.kind.Error()), Message: msg},
		}
	}

	logger.Error(ctx, "internal error", zap.Error(err))

	return &v1specs.ErrorStatusCode{
		StatusCode: http.StatusInternalServerError,
		Response:   v1specs.Error{Code: v1specs.ErrorCodeINTERNAL, Message: "internal error"},
	}
}

// requestError assigns a kind to the errors the generated server raises
// before a handler runs. It returns nil for any other error.
func requestError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return serrors.With(serrors.ErrBadRequest, "request body exceeds %d bytes", tooLarge.Limit)
	}

	var (
		secErr    *ogenerrors.SecurityError
		paramsErr *ogenerrors.DecodeParamsError
		reqErr    *ogenerrors.DecodeRequestError
	)
	switch {
	case errors.As(err, &secErr):
		if serrors.KindOf(err) != nil {
			return nil
		}
		return serrors.Wrap(serrors.ErrUnauthorized, err, "missing bearer token")
	case errors.As(err, &paramsErr):
		return serrors.Wrap(serrors.ErrBadRequest, paramsErr.Err, "invalid parameters")
	case errors.As(err, &reqErr):
		return serrors.Wrap(serrors.ErrBadRequest, reqErr.Err, "invalid request body")
	}

	return nil
}

// HandleError writes err as an Error response. The generated server calls it
// for requests it rejects before a handler runs.
func (h Handler) HandleError(ctx context.Context, w http.ResponseWriter, _ *http.Request, err error) {
	res := h.NewError(ctx, err)

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	res.Response.Encode(e)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(res.StatusCode)
	_, _ = w.Write(e.Bytes())
}
