package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/yamao-tech/catalog-backend/internal/cfg"
	v1Http "github.com/yamao-tech/catalog-backend/internal/delivery/v1/http"
	authInfra "github.com/yamao-tech/catalog-backend/internal/infrastructure/auth"
	"github.com/yamao-tech/catalog-backend/internal/infrastructure/kafka"
	minioInfra "github.com/yamao-tech/catalog-backend/internal/infrastructure/minio"
	fileRepo "github.com/yamao-tech/catalog-backend/internal/repository/file"
	s3Repo "github.com/yamao-tech/catalog-backend/internal/repository/minio"
	"github.com/yamao-tech/catalog-backend/internal/repository/pgdb"
	pgdbConv "github.com/yamao-tech/catalog-backend/internal/repository/pgdb/converter"
	redisRepo "github.com/yamao-tech/catalog-backend/internal/repository/redis"
	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/clients"
	"github.com/yamao-tech/catalog-backend/pkg/closer"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
	"github.com/yamao-tech/catalog-backend/pkg/postgres"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает слои приложения и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	db           *postgres.PgDatabase
	redisClient  *clients.RedisClient
	producer     *kafka.Producer
	outboxWorker *kafka.OutboxWorker
	imagesInfra  *minioInfra.MinioInfrastructure
	httpSrv      *v1Http.Server

	closer *closer.Closer

	workerCtx    context.Context
	workerCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	prConv := pgdbConv.NewProductConverterImpl()
	catConv := pgdbConv.NewCategoryConverterImpl()
	admConv := pgdbConv.NewAdminConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()

	getter := trmpgx.DefaultCtxGetter
	trManager := manager.Must(trmpgx.NewDefaultFactory(db.Pool))

	productRepo := pgdb.NewProductRepo(db.Pool, getter, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, getter, catConv)
	adminRepo := pgdb.NewAdminRepo(db.Pool, admConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, getter, outboxConv)
	settingsRepo := fileRepo.NewSettingsRepo(cfg.App.SettingsDir)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	tokenRepo := redisRepo.NewTokenRepo(redisClient, log)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, workerCtx)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		workerCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		workerCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	tokens := authInfra.NewJWTManager(cfg.Auth)
	hasher := authInfra.NewPasswordHasher()

	catalogUC := usecase.NewCatalogUC(productRepo, categoryRepo, log)
	adminUC := usecase.NewAdminUC(productRepo, categoryRepo, outboxRepo, imagesInfra, trManager, log)
	authUC := usecase.NewAuthUC(adminRepo, tokenRepo, tokens, hasher, log)
	settingsUC := usecase.NewSettingsUC(settingsRepo)
	seedUC := usecase.NewSeedUC(adminRepo, categoryRepo, productRepo, hasher, log)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer seedCancel()
	if err := seedUC.EnsureDefaults(seedCtx, cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
		workerCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log, cfg)
	router.Init(catalogUC, adminUC, authUC, settingsUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:          cfg,
		logger:       log,
		db:           db,
		redisClient:  redisClient,
		producer:     producer,
		outboxWorker: outboxWorker,
		imagesInfra:  imagesInfra,
		httpSrv:      httpSrv,
		closer:       closer.NewCloser(0),
		workerCtx:    workerCtx,
		workerCancel: workerCancel,
	}, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала
// завершения или фатальной ошибки сервера. Ресурсы закрываются в порядке,
// обратном открытию.
func (a *App) Run() error {
	a.outboxWorker.Start(a.workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.registerShutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

// registerShutdown собирает функции закрытия; Closer выполняет их в LIFO.
func (a *App) registerShutdown() {
	a.closer.Add(func(_ context.Context) error {
		a.db.Close()
		return nil
	})

	a.closer.Add(func(_ context.Context) error {
		return a.redisClient.Client.Close()
	})

	a.closer.Add(func(_ context.Context) error {
		return a.producer.Close()
	})

	a.closer.Add(func(_ context.Context) error {
		// Отмена контекста будит воркер, Stop дожидается его горутин
		a.workerCancel()
		a.outboxWorker.Stop()
		return nil
	})

	a.closer.Add(func(ctx context.Context) error {
		return a.imagesInfra.WaitForCleanup(ctx)
	})

	a.closer.Add(func(ctx context.Context) error {
		return a.httpSrv.Stop(ctx)
	})
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
