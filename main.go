package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"school-backend/config"
	"school-backend/database"
	"school-backend/docs"
	"school-backend/handlers"
	"school-backend/logger"
	"school-backend/middleware"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("🚀 starting school backend",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(db, cfg, log); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewDBStatsCollector(db.DB, cfg.DBName))

	handler, err := newHandler(db, cfg, log, reg)
	if err != nil {
		return err
	}

	return serve(ctx, newServer(":"+cfg.ServerPort, handler), log)
}

// newHandler assembles the router with every resource, the documentation,
// health and metrics endpoints, wrapped in the middleware chain.
func newHandler(db *sqlx.DB, cfg *config.Config, log *zap.Logger, reg *prometheus.Registry) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(middleware.NewMetrics(reg).Middleware)

	resources, err := handlers.Register(r, db, handlers.Options{
		ExposeErrors: cfg.ExposeErrors,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("registering routes: %w", err)
	}

	r.Handle("/health", handlers.NewHealthHandler(db, log)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	spec, err := docs.Build(docs.Info{
		Title:       "API de Gestão Escolar",
		Version:     "1.0.0",
		Description: "API para gestão de alunos, categorias e detalhes de pedidos",
	}, resources)
	if err != nil {
		return nil, fmt.Errorf("building docs: %w", err)
	}
	if err := docs.Mount(r, spec); err != nil {
		return nil, fmt.Errorf("mounting docs: %w", err)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Not found"}`))
	})

	var h http.Handler = r
	h = middleware.CORS(cfg.CORSAllowedOrigin)(h)
	h = middleware.Logging(log)(h)
	h = middleware.RequestID(h)
	h = middleware.Recover(log)(h)
	return h, nil
}
