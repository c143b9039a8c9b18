package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/joho/godotenv"
	"github.com/navikt/airtable-tasklists/pkg/airtable"
	"github.com/navikt/airtable-tasklists/pkg/config/v2"
	"github.com/navikt/airtable-tasklists/pkg/leaderelection"
	"github.com/navikt/airtable-tasklists/pkg/logsink"
	"github.com/navikt/airtable-tasklists/pkg/requestlogger"
	"github.com/navikt/airtable-tasklists/pkg/service/core"
	apiclients "github.com/navikt/airtable-tasklists/pkg/service/core/api"
	"github.com/navikt/airtable-tasklists/pkg/service/core/handlers"
	"github.com/navikt/airtable-tasklists/pkg/service/core/routes"
	"github.com/navikt/airtable-tasklists/pkg/syncers/tablecreator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

var (
	configFilePath = flag.String("config", "config.yaml", "path to config file, defaults and environment are used if it does not exist")
	envFilePath    = flag.String("env-file", "", "optional dotenv file to load before reading the config")
	printRoutes    = flag.Bool("print-routes", false, "print the routing table and exit")
)

var promErrs = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "airtable_tasklists",
	Name:      "errors_total",
}, []string{"location"})

const (
	TableCreatorStartupDelay = 0 * time.Second
	ShutdownTimeout          = 5 * time.Second
)

func main() {
	flag.Parse()

	zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if *envFilePath != "" {
		err := godotenv.Load(*envFilePath)
		if err != nil {
			zlog.Fatal().Err(err).Str("path", *envFilePath).Msg("loading env file")
		}
	}

	fileParts, err := config.ProcessConfigPath(*configFilePath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("processing config path")
	}

	loader := &config.FileSystemLoader{AllowMissing: true}

	cfg, err := loader.Load(fileParts.FileName, fileParts.Path, "TASKLISTS", config.NewDefaultEnvBinder())
	if err != nil {
		zlog.Fatal().Err(err).Msg("loading config")
	}

	err = cfg.Validate()
	if err != nil {
		zlog.Fatal().Err(err).Msg("validating config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		zlog.Fatal().Err(err).Msg("parsing log level")
	}

	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	zlog = zlog.Level(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Airtable.TimeoutSeconds) * time.Second,
	}

	sink := logsink.New(cfg.LogSink.Capacity, zlog.With().Str("component", "logsink").Logger())

	airtableClient := airtable.New(
		cfg.Airtable.APIURL,
		cfg.Airtable.Token,
		cfg.Debug,
		httpClient,
		zlog.With().Str("component", "airtable").Logger(),
	)

	apiClients := apiclients.NewClients(airtableClient, cfg, zlog)
	services := core.NewServices(apiClients, sink)
	h := handlers.NewHandlers(services, sink, cfg.LogSink.RecentLimit)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		requestlogger.Middleware(zlog.With().Str("component", "requests").Logger(), "/health", "/internal/metrics"),
		middleware.Recoverer,
	)

	routes.Add(router,
		routes.NewStatusRoutes(routes.NewStatusEndpoints(zlog, h.StatusHandler)),
		routes.NewLogsRoutes(routes.NewLogsEndpoints(zlog, h.LogsHandler)),
		routes.NewAirtableRoutes(routes.NewAirtableEndpoints(zlog, h.AirtableHandler)),
		routes.NewMetricsRoutes(routes.NewMetricsEndpoints(prom(apiClients.Metrics()...))),
	)

	if *printRoutes {
		err = routes.Print(router, os.Stdout)
		if err != nil {
			zlog.Fatal().Err(err).Msg("printing routes")
		}

		return
	}

	server := http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Address, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		zlog.Fatal().Err(err).Str("address", server.Addr).Msg("listening")
	}

	zlog.Info().Msgf("Listening on %s", listener.Addr())

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("serving")
		}
	}()

	if cfg.Airtable.CreateOnStartup {
		go tablecreator.New(
			apiClients.AirtableAPI,
			sink,
			apiClients.SlackAPI,
			leaderelection.NewFromEnv(http.DefaultClient),
			promErrs,
			zlog.With().Str("subsystem", "tablecreator").Logger(),
		).Run(ctx, TableCreatorStartupDelay)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Warn().Err(err).Msg("Shutdown error")
	}
}

func prom(cols ...prometheus.Collector) *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(promErrs)
	r.MustRegister(collectors.NewGoCollector())
	r.MustRegister(cols...)

	return r
}
