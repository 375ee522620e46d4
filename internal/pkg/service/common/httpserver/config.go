package httpserver

import (
	"github.com/keboola/config-features/internal/pkg/service/common/httpserver/middleware"
)

type Config struct {
	ListenAddress string
	// ErrorNamePrefix is prepended to the error name in the response, e.g. "dino."
	ErrorNamePrefix   string
	MiddlewareOptions []middleware.Option
	// Mount endpoints to the Muxer
	Mount func(c Components)
}
