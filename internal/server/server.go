package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/shareclass/accounts/internal/ginutil"
	"github.com/shareclass/accounts/internal/logging"
	"github.com/shareclass/accounts/internal/server/data"
	"github.com/shareclass/accounts/internal/server/email"
	"github.com/shareclass/accounts/internal/server/redis"
	"github.com/shareclass/accounts/metrics"
)

type Options struct {
	// EnableLogSampling indicates whether or not to sample HTTP access logs.
	// When true, non-error HTTP GET logs will be sampled down to 1 every 7
	// seconds grouped by the request path.
	EnableLogSampling bool

	// SessionDuration is the lifetime of a session started by login or
	// registration.
	SessionDuration time.Duration

	// Redis contains configuration options for the cache server. Rate limits
	// are disabled when no host is configured.
	Redis redis.Options

	DBDriver           string
	DBConnectionString string

	EmailAppDomain   string
	EmailFromAddress string
	EmailFromName    string
	SendgridApiKey   string
	SMTPServer       string

	Addr ListenerOptions

	API APIOptions
}

type ListenerOptions struct {
	HTTP    string
	Metrics string
}

type APIOptions struct {
	RequestTimeout time.Duration
}

type Server struct {
	options         Options
	db              *gorm.DB
	redis           *redis.Redis
	Addrs           Addrs
	routines        []routine
	metricsRegistry *prometheus.Registry
}

type Addrs struct {
	HTTP    net.Addr
	Metrics net.Addr
}

// New creates a Server, and initializes it. The returned Server is ready to run.
func New(options Options) (*Server, error) {
	if options.SessionDuration == 0 {
		options.SessionDuration = 24 * time.Hour
	}
	if options.API.RequestTimeout == 0 {
		options.API.RequestTimeout = time.Minute
	}

	server := &Server{options: options}

	driver, err := newDriver(options)
	if err != nil {
		return nil, err
	}

	db, err := data.NewDB(driver)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	server.db = db

	server.metricsRegistry = prometheus.NewRegistry()
	metrics.RegisterAccountMetrics(server.metricsRegistry, db)

	server.redis = redis.NewRedis(options.Redis)

	configureEmail(options)

	if err := server.listen(); err != nil {
		return nil, fmt.Errorf("listening: %w", err)
	}

	return server, nil
}

func newDriver(options Options) (gorm.Dialector, error) {
	switch options.DBDriver {
	case "postgres":
		return data.NewPostgresDriver(options.DBConnectionString)
	case "sqlite", "":
		return data.NewSQLiteDriver(options.DBConnectionString)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", options.DBDriver)
	}
}

func configureEmail(options Options) {
	if len(options.EmailAppDomain) > 0 {
		email.AppDomain = options.EmailAppDomain
	}
	if len(options.EmailFromAddress) > 0 {
		email.FromAddress = options.EmailFromAddress
	}
	if len(options.EmailFromName) > 0 {
		email.FromName = options.EmailFromName
	}
	if len(options.SendgridApiKey) > 0 {
		email.SendgridAPIKey = options.SendgridApiKey
	}
	if len(options.SMTPServer) > 0 {
		email.SMTPServer = options.SMTPServer
		email.UseSMTP = true
	}
}

// DB returns the database connection pool used by the server. It is primarily
// used by tests to create fixture data.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Run the server and all of its background jobs until the context is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.SetupBackgroundJobs(ctx)

	group, ctx := errgroup.WithContext(ctx)

	for i := range s.routines {
		group.Go(s.routines[i].run)
	}

	logging.Infof("starting accounts server - http:%s metrics:%s",
		s.Addrs.HTTP, s.Addrs.Metrics)

	<-ctx.Done()
	for i := range s.routines {
		s.routines[i].stop()
	}

	err := group.Wait()

	if sqlDB, dbErr := s.db.DB(); dbErr == nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logging.L.Warn().Err(closeErr).Msg("failed to close database connection")
		}
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) listen() error {
	ginutil.SetMode()
	router := s.GenerateRoutes()

	metricsServer := &http.Server{
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       60 * time.Second,
		Addr:              s.options.Addr.Metrics,
		Handler:           metrics.NewHandler(s.metricsRegistry),
	}

	var err error
	s.Addrs.Metrics, err = s.setupServer(metricsServer)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       60 * time.Second,
		Addr:              s.options.Addr.HTTP,
		Handler:           router,
	}
	s.Addrs.HTTP, err = s.setupServer(httpServer)
	if err != nil {
		return err
	}

	return nil
}

func (s *Server) setupServer(server *http.Server) (net.Addr, error) {
	if server.Addr == "" {
		server.Addr = "127.0.0.1:"
	}
	l, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return nil, err
	}
	logging.Infof("listening on %s", l.Addr().String())

	s.routines = append(s.routines, routine{
		run: func() error {
			err := server.Serve(l)
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		stop: func() {
			_ = server.Close()
		},
	})
	return l.Addr(), nil
}

type routine struct {
	run  func() error
	stop func()
}
