package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/config"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/handler"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/hub"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/kafka"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/middleware"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/repository"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/service"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/store"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/database"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/jwt"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	pkglog.Init(cfg.Log, "zyrok")
	logger := pkglog.L()
	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting zyrok")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db, domain.Models()...); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	var counters store.CounterStore
	if cfg.Redis.Enabled {
		redisStore, err := store.NewRedisCounterStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		counters = redisStore
		logger.Info().Str("address", cfg.Redis.Address).Msg("connected to redis")
	} else {
		counters = store.NewMemoryCounterStore()
		logger.Info().Msg("using in-memory counter store")
	}
	defer counters.Close()

	var producer kafka.EngagementEventProducer
	if cfg.Kafka.Enabled {
		confluent, err := kafka.NewConfluentProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to kafka")
		}
		defer confluent.Close()
		producer = confluent
		logger.Info().Str("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("connected to kafka")
	}

	var mediaStore storage.Storage
	var mediaDir string
	switch cfg.Storage.Driver {
	case "s3":
		mediaStore, err = storage.NewS3Storage(context.Background(), cfg.Storage.S3)
	default:
		mediaStore, err = storage.NewLocalStorage(cfg.Storage.Local)
		mediaDir = cfg.Storage.Local.BasePath
	}
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to initialize media storage")
	}

	jwtManager, err := jwt.NewManager(cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL, cfg.Auth.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize token manager")
	}

	users := repository.NewGormUserRepository(db)
	videos := repository.NewGormVideoRepository(db)
	comments := repository.NewGormCommentRepository(db)
	likes := repository.NewGormLikeRepository(db)
	follows := repository.NewGormFollowRepository(db)
	music := repository.NewGormMusicRepository(db)

	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()

	engagementSvc := service.NewEngagementService(videos, comments, likes, counters, producer)
	socialSvc := service.NewSocialService(follows, users, counters, producer)
	videoSvc := service.NewVideoService(videos, music, mediaStore)
	realtimeSvc := service.NewRealtimeService(wsHub, engagementSvc, socialSvc)

	router := &handler.Router{
		WS:         handler.NewWSHandler(wsHub, realtimeSvc),
		Videos:     handler.NewVideoHandler(videoSvc),
		Engagement: handler.NewEngagementHandler(engagementSvc),
		Social:     handler.NewSocialHandler(socialSvc, videoSvc),
		JWT:        jwtManager,
		RateLimit:  middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute),
		MediaDir:   mediaDir,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("stopped")
}
