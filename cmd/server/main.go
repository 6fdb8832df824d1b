package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/coverply/warranty-admin/internal/catalog"
	"github.com/coverply/warranty-admin/internal/config"
	"github.com/coverply/warranty-admin/internal/events"
	"github.com/coverply/warranty-admin/internal/httpserver"
	"github.com/coverply/warranty-admin/internal/repo"
	"github.com/coverply/warranty-admin/internal/search"
	"github.com/coverply/warranty-admin/internal/service"
	pkgdb "github.com/coverply/warranty-admin/pkg/db"
	"github.com/coverply/warranty-admin/pkg/logging"
	loggingmw "github.com/coverply/warranty-admin/pkg/middleware/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := pkgdb.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
	}

	var indexer *search.Indexer
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		indexer = &search.Indexer{ES: esClient, Index: cfg.ESIndex}
	}

	gormRepo := &repo.GormRepo{DB: db}

	catalogSvc := &service.CatalogService{Repo: gormRepo}
	if cfg.CatalogAPIURL != "" {
		catalogSvc.Client = catalog.NewClient(cfg.CatalogAPIURL, cfg.CatalogAPIToken)
	}

	definitionSvc := &service.DefinitionService{
		Repo:    gormRepo,
		Catalog: catalogSvc,
		Events:  producer,
		Search:  indexer,
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		DefinitionHandler: &httpserver.DefinitionHTTP{Svc: definitionSvc},
		CatalogHandler:    &httpserver.CatalogHTTP{Svc: catalogSvc},
		SessionSecret:     []byte(cfg.SessionSecret),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
