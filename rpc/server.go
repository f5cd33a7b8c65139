package rpc

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/metric"

	"github.com/hashgraph/hedera-services-sub009/observability"
)

const (
	headerContentType = "Content-Type"
	applicationJson   = "application/json"
	applicationCBOR   = "application/cbor"

	DefaultMaxBodyBytes int64 = 4194304 // 4MB
)

var allowedCORSHeaders = []string{"Accept", "Accept-Language", "Content-Language", "Origin", headerContentType}

type (
	// Registrar registers new HTTP handlers for given router.
	Registrar interface {
		Register(r *mux.Router)
	}

	// RegistrarFunc type is an adapter to allow the use of ordinary function as Registrar.
	RegistrarFunc func(r *mux.Router)

	Observability interface {
		Meter(name string, opts ...metric.MeterOption) metric.Meter
		// MetricsHandler returns nil when metrics are not exported over HTTP.
		MetricsHandler() http.Handler
		Logger() *slog.Logger
	}

	// ServerConfiguration is the configuration of the REST server.
	ServerConfiguration struct {
		// Address specifies the TCP address for the server to listen on, in the form "host:port".
		// Server isn't started if Address is empty.
		Address string `mapstructure:"address" yaml:"address"`

		// ReadTimeout is the maximum duration for reading the entire request, including the body. A zero or negative
		// value means there will be no timeout.
		ReadTimeout time.Duration `mapstructure:"readTimeout" yaml:"readTimeout"`

		// ReadHeaderTimeout is the amount of time allowed to read request headers. If ReadHeaderTimeout is zero, the
		// value of ReadTimeout is used. If both are zero, there is no timeout.
		ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout" yaml:"readHeaderTimeout"`

		// WriteTimeout is the maximum duration before timing out writes of the response. A zero or negative value means
		// there will be no timeout.
		WriteTimeout time.Duration `mapstructure:"writeTimeout" yaml:"writeTimeout"`

		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alive is enabled. If
		// IdleTimeout is zero, the value of ReadTimeout is used. If both are zero, there is no timeout.
		IdleTimeout time.Duration `mapstructure:"idleTimeout" yaml:"idleTimeout"`

		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header's keys
		// and values, including the request line. If zero, http.DefaultMaxHeaderBytes is used.
		MaxHeaderBytes int `mapstructure:"maxHeaderBytes" yaml:"maxHeaderBytes"`

		// MaxBodyBytes controls the maximum number of bytes the server will read parsing the request body. If zero,
		// DefaultMaxBodyBytes is used.
		MaxBodyBytes int64 `mapstructure:"maxBodyBytes" yaml:"maxBodyBytes"`
	}
)

func DefaultServerConfiguration() ServerConfiguration {
	return ServerConfiguration{
		Address:           "localhost:26866",
		ReadTimeout:       3 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       30 * time.Second,
		MaxBodyBytes:      DefaultMaxBodyBytes,
	}
}

func (c *ServerConfiguration) IsAddressEmpty() bool {
	return strings.TrimSpace(c.Address) == ""
}

/*
NewHTTPServer creates server with handlers of the registrars mounted under
"/api/v1" prefix. When the observability exports metrics over HTTP the
handler is mounted as "/api/v1/metrics".
*/
func NewHTTPServer(conf ServerConfiguration, obs Observability, registrars ...Registrar) *http.Server {
	log := obs.Logger()

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(http.NotFound)
	apiV1Router := router.PathPrefix("/api/v1").Subrouter()
	apiV1Router.Use(
		handlers.CORS(handlers.AllowedHeaders(allowedCORSHeaders)),
		instrumentHTTP(obs.Meter(observability.ScopeRESTAPI), log))

	if h := obs.MetricsHandler(); h != nil {
		apiV1Router.Handle("/metrics", h).Methods(http.MethodGet)
	}
	for _, registrar := range registrars {
		registrar.Register(apiV1Router)
	}

	maxBody := conf.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &http.Server{
		Addr:              conf.Address,
		ReadTimeout:       conf.ReadTimeout,
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		WriteTimeout:      conf.WriteTimeout,
		IdleTimeout:       conf.IdleTimeout,
		MaxHeaderBytes:    conf.MaxHeaderBytes,
		Handler:           http.MaxBytesHandler(router, maxBody),
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}
}

func (f RegistrarFunc) Register(r *mux.Router) {
	f(r)
}
