package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/homeplanner/api/handler"
	"github.com/fastygo/homeplanner/api/transport"
	"github.com/fastygo/homeplanner/internal/config"
	"github.com/fastygo/homeplanner/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/homeplanner/internal/infrastructure/redis"
	"github.com/fastygo/homeplanner/internal/middleware"
	"github.com/fastygo/homeplanner/internal/router"
	"github.com/fastygo/homeplanner/internal/services/lifecycle"
	"github.com/fastygo/homeplanner/pkg/httpcontext"
	"github.com/fastygo/homeplanner/pkg/logger"
	"github.com/fastygo/homeplanner/repository"
	redisRepo "github.com/fastygo/homeplanner/repository/redis"
	"github.com/fastygo/homeplanner/usecase"
	"github.com/fastygo/homeplanner/usecase/collection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.NotifyContext(context.Background())
	defer stop()

	st, err := openStores(appCtx, cfg, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("store setup failed", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	probes := []monitor.Probe{st.probe}

	var cache usecase.ListCache
	if cfg.Cache.Enabled {
		redisClient, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(context.Context) error {
			return redisClient.Close()
		})
		cache = redisRepo.NewListCache(redisClient, cfg.Cache.Prefix, cfg.Cache.TTL)
		probes = append(probes, redisInfra.Pinger{Client: redisClient})
	}

	mon := monitor.New(probes, cfg.Health.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	areas := collection.New(repository.CollectionAreas, st.areas, cache, zapLogger)
	weeklyTasks := collection.New(repository.CollectionWeeklyTasks, st.weeklyTasks, cache, zapLogger)
	contacts := collection.New(repository.CollectionContacts, st.contacts, cache, zapLogger)

	validate := transport.NewValidator()
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Areas:       apiHandler.NewAreaHandler(areas, validate, ctxAdapter, zapLogger),
		WeeklyTasks: apiHandler.NewWeeklyTaskHandler(weeklyTasks, validate, ctxAdapter, zapLogger),
		Contacts:    apiHandler.NewContactHandler(contacts, validate, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(middleware.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		OwnerClaim: cfg.JWT.OwnerClaim,
	}, zapLogger)
	r := router.New(handlers, authMiddleware, zapLogger)

	server := &fasthttp.Server{
		Handler:      middleware.AccessLog(zapLogger)(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("cache", cache != nil),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()
	zapLogger.Info("shutdown signal received", zap.Strings("components", manager.Components()))

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
