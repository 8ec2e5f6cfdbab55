package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/learnmarket/internal/config"
	"github.com/fsdevblog/learnmarket/internal/metrics"
	"github.com/fsdevblog/learnmarket/internal/repository/pgrepo"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/internal/service"
	"github.com/fsdevblog/learnmarket/internal/service/psswd"
	"github.com/fsdevblog/learnmarket/internal/transport/api"
	"github.com/fsdevblog/learnmarket/internal/transport/api/middlewares"
	"github.com/fsdevblog/learnmarket/internal/transport/broker"
	"github.com/fsdevblog/learnmarket/internal/transport/paygate"
	"github.com/fsdevblog/learnmarket/internal/transport/relay"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	rateLimitPrefix   = "learnmarket:ratelimit"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %w", connErr)
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %w", uowErr)
	}

	publisher := broker.New(a.Config.RabbitMQURL, a.Logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			a.Logger.WithError(err).Warn("close broker publisher")
		}
	}()

	services, sErr := service.Factory(unitOfWork, service.FactoryArgs{
		JWTSecret:      []byte(a.Config.JWTUserSecret),
		JWTTokenExpire: a.Config.JWTTokenTTL,
		PaymentSecret:  []byte(a.Config.PaymentKeySecret),
		Currency:       a.Config.PaymentCurrency,
		Provider:       paygate.New(a.Config.PaymentAPIAddress, a.Config.PaymentKeyID, a.Config.PaymentKeySecret),
		Publisher:      publisher,
		Hasher:         psswd.New(bcrypt.DefaultCost),
	})
	if sErr != nil {
		return fmt.Errorf("app run: %w", sErr)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
	})
	defer rdb.Close()
	if pingErr := rdb.Ping(notifyCtx).Err(); pingErr != nil {
		a.Logger.WithError(pingErr).Warn("redis is not reachable, rate limiting falls back to in-process buckets")
	}

	fallbackLimiter := middlewares.NewLocalLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst)
	go fallbackLimiter.Run(notifyCtx, middlewares.DefaultLocalCleanupInterval)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	router, routerErr := api.New(api.RouterArgs{
		Logger:          a.Logger,
		UserService:     services.UserService,
		CourseService:   services.CourseService,
		CheckoutService: services.CheckoutService,
		PaymentService:  services.PaymentService,
		JWTSecretKey:    []byte(a.Config.JWTUserSecret),
		Metrics:         collector,
		Gatherer:        registry,
		Limiter: middlewares.NewRedisLimiter(
			rdb, rateLimitPrefix, a.Config.RateLimitRPS, a.Config.RateLimitBurst,
		),
		FallbackLimiter: fallbackLimiter,
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %w", routerErr)
	}

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if runErr := srv.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	processor := relay.New(services.OutboxService, publisher, a.Logger).
		SetWorkers(a.Config.OutboxWorkers).
		SetObserver(collector)

	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		processor.Run(notifyCtx)
	}()

	var runErr error
	select {
	case <-notifyCtx.Done():
		runErr = notifyCtx.Err()
	case runErr = <-errChan:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(notifyCtx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("http server shutdown")
	}
	<-relayDone

	return runErr
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := []struct {
		name    repoargs.RepositoryName
		factory uow.RepositoryFactory
	}{
		{repoargs.UserRepoName, func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewUserRepository(dbtx) }},
		{repoargs.CourseRepoName, func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewCourseRepository(dbtx) }},
		{repoargs.LectureRepoName, func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewLectureRepository(dbtx) }},
		{repoargs.PaymentRepoName, func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewPaymentRepository(dbtx) }},
		{
			repoargs.SubscriptionRepoName,
			func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewSubscriptionRepository(dbtx) },
		},
		{repoargs.OutboxRepoName, func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewOutboxRepository(dbtx) }},
	}
	for _, f := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(f.name), f.factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: register %s: %w", f.name, regErr)
		}
	}
	return unitOfWork, nil
}
