package middleware

type Config struct {
	accessLogFilters []FilterFn
	telemetryFilters []FilterFn
}

type Option func(config *Config)

// WithFilterAccessLog defines ignored requests that will not be logged.
// A Filter must return true if the request should be logged.
func WithFilterAccessLog(filters ...FilterFn) Option {
	return func(c *Config) {
		c.accessLogFilters = append(c.accessLogFilters, filters...)
	}
}

// WithFilterTelemetry defines ignored requests that will not be traced and metered.
func WithFilterTelemetry(filters ...FilterFn) Option {
	return func(c *Config) {
		c.telemetryFilters = append(c.telemetryFilters, filters...)
	}
}

func NewConfig(opts ...Option) Config {
	cfg := Config{}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
