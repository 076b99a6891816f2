package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkpulse/internal/config"
	"linkpulse/internal/geo"
	"linkpulse/internal/handler"
	"linkpulse/internal/metrics"
	"linkpulse/internal/mq"
	"linkpulse/internal/repository"
	"linkpulse/internal/service"
	"linkpulse/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

// @title LinkPulse Analytics API
// @version 1.0
// @description Click ingestion and link analytics
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.example.com/support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	closeLog := setupLogger(cfg.Server.Mode, cfg.Log)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("Service terminated")
		closeLog()
		os.Exit(1)
	}

	log.Info().Msg("Service exited")
	closeLog()
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Initialize repositories
	mysqlRepo, err := repository.NewMySQLRepository(&cfg.Database.MySQL)
	if err != nil {
		return fmt.Errorf("mysql: %w", err)
	}
	defer mysqlRepo.Close()

	redisClient := repository.NewRedisClient(&cfg.Database.Redis)
	redisRepo := repository.NewRedisRepository(redisClient)
	defer redisRepo.Close()

	// Initialize broker
	broker, err := newBroker(cfg, redisClient)
	if err != nil {
		return fmt.Errorf("broker: %w", err)
	}
	defer broker.Close()

	// Initialize services
	var locator service.GeoLocator
	if cfg.GeoIP.Enabled {
		geoSvc := geo.NewService(geo.Config{
			DatabasePath: cfg.GeoIP.DatabasePath,
			APIURL:       cfg.GeoIP.APIURL,
			Timeout:      cfg.GeoIP.Timeout,
			CacheTTL:     cfg.GeoIP.CacheTTL,
		}, redisRepo)
		defer geoSvc.Close()
		locator = geoSvc
	}

	storage := service.NewClickStorage(mysqlRepo, locator, cfg.Storage, m)

	consumer := mq.NewConsumer(broker, cfg.Broker.Channel, m)
	consumer.RegisterHandler(storage)

	var aggregator *service.StatsAggregator
	var aggregatorStatus handler.AggregatorStatus
	if cfg.Aggregator.Enabled {
		aggregator = service.NewStatsAggregator(mysqlRepo, cfg.Aggregator, m)
		aggregatorStatus = aggregator
	}

	analyticsSvc := service.NewAnalyticsService(mysqlRepo)
	producer := mq.NewClickProducer(broker, cfg.Broker.Channel)

	// Setup Gin
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger("/health", "/metrics"))
	router.Use(middleware.Recovery())
	router.Use(corsMiddleware())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		handler.NewAnalyticsHandler(analyticsSvc).Register(v1)

		clickHandler := handler.NewClickHandler(producer)
		v1.POST("/clicks", clickHandler.Track)
	}

	// Health and stats
	healthHandler := handler.NewHealthHandler(consumer, storage, aggregatorStatus, version)
	router.GET("/health", healthHandler.Health)
	router.GET("/stats", healthHandler.Stats)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger documentation
	setupSwagger(router)

	// Start pipeline
	storage.Start(ctx)
	if aggregator != nil {
		aggregator.Start(ctx)
	}
	if err := consumer.Start(ctx); err != nil {
		stopPipeline(consumer, aggregator, storage, cfg.Server.ShutdownTimeout)
		return fmt.Errorf("consumer: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Msgf("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// A transport failure ends the consumer loop and takes the process down
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return nil
		case <-consumer.Done():
			return consumer.Err()
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}

		stopPipeline(consumer, aggregator, storage, cfg.Server.ShutdownTimeout)
		return nil
	})

	return g.Wait()
}

// stopPipeline stops intake first, then the jobs, then flushes the buffer
func stopPipeline(consumer *mq.Consumer, aggregator *service.StatsAggregator, storage *service.ClickStorage, timeout time.Duration) {
	if err := consumer.Stop(); err != nil {
		log.Warn().Err(err).Msg("Failed to stop consumer cleanly")
	}

	if aggregator != nil {
		aggregator.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop logs the failed final flush itself
	_ = storage.Stop(ctx)
}

// newBroker builds the transport selected by broker.type
func newBroker(cfg *config.Config, redisClient *redis.Client) (mq.Broker, error) {
	switch cfg.Broker.Type {
	case config.BrokerRocketMQ:
		b, err := mq.NewRocketMQBroker(mq.RocketMQConfig{
			NameServer: cfg.RocketMQ.NameServer,
			Group:      cfg.RocketMQ.Group,
		})
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BrokerMemory:
		log.Warn().Msg("Using in-process broker, clicks are only seen by this instance")
		return mq.NewMemoryBroker(), nil
	default:
		return mq.NewRedisBroker(redisClient), nil
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// setupSwagger sets up Swagger UI
func setupSwagger(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
