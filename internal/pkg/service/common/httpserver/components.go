package httpserver

import (
	"net/http"

	"github.com/dimfeld/httptreemux/v5"

	"github.com/keboola/config-features/internal/pkg/log"
	svcerrors "github.com/keboola/config-features/internal/pkg/service/common/errors"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

type Components struct {
	Muxer       *httptreemux.ContextMux
	ErrorWriter ErrorWriter
}

func newComponents(cfg Config, logger log.Logger) Components {
	errorWr := NewErrorWriter(logger, cfg.ErrorNamePrefix)
	return Components{
		Muxer:       NewMuxer(errorWr),
		ErrorWriter: errorWr,
	}
}

// NewMuxer creates a router, not found and method not allowed responses are written as JSON errors.
func NewMuxer(errorWr ErrorWriter) *httptreemux.ContextMux {
	mux := httptreemux.NewContextMux()
	mux.NotFoundHandler = func(w http.ResponseWriter, req *http.Request) {
		errorWr.WriteWithStatusCode(req.Context(), w, svcerrors.NewEndpointNotFoundError(req.URL))
	}
	mux.MethodNotAllowedHandler = func(w http.ResponseWriter, req *http.Request, _ map[string]httptreemux.HandlerFunc) {
		errorWr.WriteWithStatusCode(req.Context(), w, svcerrors.NewMethodNotAllowedError(req.Method, req.URL))
	}
	mux.PanicHandler = func(w http.ResponseWriter, req *http.Request, value any) {
		errorWr.WriteWithStatusCode(req.Context(), w, errors.Errorf("panic: %v", value))
	}
	return mux
}
