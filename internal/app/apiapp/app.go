package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Thenukee/JobMarket-sub000/internal/config"
	s3infra "github.com/Thenukee/JobMarket-sub000/internal/infra/s3"
	"github.com/Thenukee/JobMarket-sub000/internal/jobs/cleanup"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
	redrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/redis"
	accountsvc "github.com/Thenukee/JobMarket-sub000/internal/services/accounts"
	activitysvc "github.com/Thenukee/JobMarket-sub000/internal/services/activity"
	appsvc "github.com/Thenukee/JobMarket-sub000/internal/services/applications"
	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
	jobsvc "github.com/Thenukee/JobMarket-sub000/internal/services/jobs"
	mediasvc "github.com/Thenukee/JobMarket-sub000/internal/services/media"
	modsvc "github.com/Thenukee/JobMarket-sub000/internal/services/moderation"
	notifsvc "github.com/Thenukee/JobMarket-sub000/internal/services/notifications"
	reportsvc "github.com/Thenukee/JobMarket-sub000/internal/services/reports"
	reviewsvc "github.com/Thenukee/JobMarket-sub000/internal/services/reviews"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	cleanupJob *cleanup.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)

	accountRepo := pgrepo.NewAccountRepo(pool)
	jobRepo := pgrepo.NewJobRepo(pool)
	applicationRepo := pgrepo.NewApplicationRepo(pool)
	reviewRepo := pgrepo.NewReviewRepo(pool)
	reportRepo := pgrepo.NewReportRepo(pool)
	activityRepo := pgrepo.NewActivityRepo(pool)
	notificationRepo := pgrepo.NewNotificationRepo(pool)
	errorLogRepo := pgrepo.NewErrorLogRepo(pool)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(accountRepo, sessionRepo, jwtManager, cfg.Auth.RefreshTTL, cfg.Auth.SessionIdleTTL)
	activityService := activitysvc.NewService(activityRepo)
	authService.AttachAudit(activityService)
	notificationService := notifsvc.NewService(notificationRepo)
	accountService := accountsvc.NewService(accountRepo)
	jobService := jobsvc.NewService(jobRepo, activityService, cfg.Board.ListingLifetime)
	applicationService := appsvc.NewService(applicationRepo, jobRepo, activityService, notificationService)
	reviewService := reviewsvc.NewService(reviewRepo, accountRepo, activityService)
	reportService := reportsvc.NewService(reportRepo)
	mediaService := mediasvc.NewService(s3Client, cfg.S3.Bucket)
	moderationService := modsvc.NewService(modsvc.Dependencies{
		Accounts: accountRepo,
		Jobs:     jobRepo,
		Reviews:  reviewRepo,
		Reports:  reportRepo,
		Audit:    activityService,
		Outbox:   notificationService,
		ErrorLog: errorLogRepo,
		Logger:   log,
	})

	cleanupJob := cleanup.New(jobRepo, activityRepo, cfg.Cleanup.Interval, cfg.Cleanup.ActivityRetention, log)

	RegisterRoutes(r, Dependencies{
		AuthService:         authService,
		AccountService:      accountService,
		JobService:          jobService,
		ApplicationService:  applicationService,
		ReviewService:       reviewService,
		ReportService:       reportService,
		NotificationService: notificationService,
		ActivityService:     activityService,
		ModerationService:   moderationService,
		MediaService:        mediaService,
		Logger:              log,
		Config:              cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		cleanupJob: cleanupJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.cleanupJob.Start(ctx)

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
