package main

import (
	"context"
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

	"github.com/Skotchmaster/furniture_supply/internal/analytics"
	"github.com/Skotchmaster/furniture_supply/internal/auth"
	"github.com/Skotchmaster/furniture_supply/internal/clock"
	"github.com/Skotchmaster/furniture_supply/internal/config"
	"github.com/Skotchmaster/furniture_supply/internal/db"
	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/events"
	"github.com/Skotchmaster/furniture_supply/internal/httpserver"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	loggingmw "github.com/Skotchmaster/furniture_supply/internal/middleware/logging"
	"github.com/Skotchmaster/furniture_supply/internal/printing"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
	"github.com/Skotchmaster/furniture_supply/internal/search"
	"github.com/Skotchmaster/furniture_supply/internal/seed"
	"github.com/Skotchmaster/furniture_supply/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	r := repo.New(gdb)
	if cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 10*time.Second)
		_, err := seed.Demo(ctx, r)
		cancel()
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	} else {
		logger.Info("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	var index search.Index
	if cfg.ESURL != "" {
		client, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unavailable", "error", err)
		} else {
			index = search.NewESIndex(client, cfg.ESIndex)
		}
	}

	var generator analytics.Generator = analytics.Disabled{}
	if cfg.GeminiAPIKey != "" {
		g, err := analytics.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("analytics_disabled", "reason", "gemini client failed", "error", err)
		} else {
			defer g.Close()
			generator = g
		}
	}

	clk := clock.System{}
	catalog := &service.CatalogService{Repo: r, Events: publisher, Index: index}
	orders := &service.OrderService{
		Repo:    r,
		Catalog: catalog,
		Events:  publisher,
		Clock:   clk,
		Format:  domain.DefaultDateFormatter(cfg.ReportLocation),
	}
	printer := &service.PrintService{Repo: r, Renderer: &printing.Renderer{Now: clk.Now, Loc: cfg.ReportLocation}}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Clock:     clk,
		Auth: &httpserver.AuthHTTP{Svc: &auth.Service{
			Stores:           r,
			Secret:           cfg.JWTSecret,
			SupplierPassword: cfg.SupplierPassword,
			Clock:            clk,
		}},
		Catalog: &httpserver.CatalogHTTP{Svc: catalog},
		Cart:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Catalog: catalog, Events: publisher}},
		Orders:  &httpserver.OrderHTTP{Svc: orders, Printer: printer},
		Reports: &httpserver.ReportHTTP{
			Svc:       &service.ReportService{Repo: r, Loc: cfg.ReportLocation},
			Analytics: &service.AnalyticsService{Repo: r, Generator: generator, Loc: cfg.ReportLocation},
		},
		Stores:  &httpserver.StoreHTTP{Svc: &service.StoreService{Repo: r}},
		Setting: &httpserver.SettingHTTP{Svc: printer},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("server_stopped")
}
