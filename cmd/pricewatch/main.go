package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Navneet2569/WebScraper-Bot/internal/adapter/cache"
	"github.com/Navneet2569/WebScraper-Bot/internal/adapter/handler"
	"github.com/Navneet2569/WebScraper-Bot/internal/adapter/notifier"
	"github.com/Navneet2569/WebScraper-Bot/internal/adapter/source"
	"github.com/Navneet2569/WebScraper-Bot/internal/adapter/storage"
	"github.com/Navneet2569/WebScraper-Bot/internal/application/service"
	"github.com/Navneet2569/WebScraper-Bot/internal/application/usecase"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
	"github.com/Navneet2569/WebScraper-Bot/internal/infrastructure/config"
	"github.com/Navneet2569/WebScraper-Bot/internal/infrastructure/logger"
	"github.com/Navneet2569/WebScraper-Bot/internal/infrastructure/server"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to config file")
	portFlag   = flag.Int("port", 0, "Port number")
	helpFlag   = flag.Bool("help", false, "Show help")
)

func main() {
	flag.Parse()

	if *helpFlag {
		printUsage()
		os.Exit(0)
	}

	// .env is optional; environment still overrides the config file.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *portFlag != 0 {
		cfg.Server.Port = *portFlag
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting pricewatch", "source_mode", cfg.Source.Mode)

	postgresAdapter, err := storage.NewPostgresAdapter(cfg.PostgresDSN())
	if err != nil {
		log.Error("failed to initialize postgres", "error", err)
		os.Exit(1)
	}
	defer postgresAdapter.Close()

	if err := postgresAdapter.InitSchema(context.Background()); err != nil {
		log.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// The cache is best-effort: an unreachable redis degrades reads, it does
	// not stop the pipeline.
	var snapCache port.SnapshotCache
	redisAdapter, err := cache.NewRedisAdapter(
		cfg.RedisAddr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.TTL,
	)
	if err != nil {
		log.Warn("redis unavailable, running without snapshot cache", "error", err)
	} else {
		snapCache = redisAdapter
		defer redisAdapter.Close()
	}

	var snapSource port.SnapshotSource
	switch cfg.Source.Mode {
	case "live":
		if cfg.Source.Endpoint == "" {
			log.Error("source.endpoint is required in live mode")
			os.Exit(1)
		}
		snapSource = source.NewHTTPSource("scrape-endpoint", cfg.Source.Endpoint, log)
	default:
		snapSource = source.NewSimulatedSource("simulated", 0)
	}

	var notif port.Notifier
	if cfg.SMTP.Enabled && cfg.SMTP.Host != "" {
		notif = notifier.NewSMTPNotifier(cfg.SMTPAddr(), cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
	} else {
		notif = notifier.NewLogNotifier(log)
	}

	engine := service.NewDecisionEngine(cfg.Refresh.ThresholdDropPercent)

	refreshUseCase := usecase.NewRefreshUseCase(
		postgresAdapter, snapSource, notif, snapCache, engine, log,
		usecase.RefreshOptions{
			FetchTimeout: cfg.Source.FetchTimeout,
			BatchBudget:  cfg.Refresh.BatchBudget,
			Workers:      cfg.Refresh.Workers,
		},
	)
	productUseCase := usecase.NewProductUseCase(postgresAdapter, snapCache)
	subscribeUseCase := usecase.NewSubscribeUseCase(postgresAdapter, snapSource, notif, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := service.NewRefreshScheduler(refreshUseCase, log)
	scheduler.Start(ctx, cfg.Refresh.Interval)
	defer scheduler.Stop()

	productHandler := handler.NewProductHandler(productUseCase, log)
	refreshHandler := handler.NewRefreshHandler(refreshUseCase, log)
	subscriptionHandler := handler.NewSubscriptionHandler(subscribeUseCase, log)
	healthHandler := handler.NewHealthHandler(postgresAdapter, snapCache, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", productHandler.List)
	mux.HandleFunc("GET /products/detail", productHandler.Detail)
	mux.HandleFunc("GET /products/latest", productHandler.Latest)
	mux.HandleFunc("POST /refresh", refreshHandler.Trigger)
	mux.HandleFunc("POST /subscriptions", subscriptionHandler.Subscribe)
	mux.HandleFunc("GET /health", healthHandler.Check)

	srv := server.NewServer(cfg.Server.Port, handler.WithRequestID(handler.WithLogging(log, mux)),
		cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, log)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down gracefully")

	cancel()
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}

	log.Info("shutdown complete")
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  pricewatch [--config <path>] [--port <N>]")
	fmt.Println("  pricewatch --help")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config PATH  Path to config file (default configs/config.yaml)")
	fmt.Println("  --port N       Port number")
}
