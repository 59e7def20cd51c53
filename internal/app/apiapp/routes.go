package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Thenukee/JobMarket-sub000/internal/config"
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
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService         *authsvc.Service
	AccountService      *accountsvc.Service
	JobService          *jobsvc.Service
	ApplicationService  *appsvc.Service
	ReviewService       *reviewsvc.Service
	ReportService       *reportsvc.Service
	NotificationService *notifsvc.Service
	ActivityService     *activitysvc.Service
	ModerationService   *modsvc.Service
	MediaService        *mediasvc.Service
	Logger              *zap.Logger
	Config              config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	accountHandler := handlers.NewAccountHandler(deps.AccountService)
	jobHandler := handlers.NewJobHandler(deps.JobService, deps.Config.Board.PageSize, deps.Config.Board.MaxPageSize)
	applicationHandler := handlers.NewApplicationHandler(deps.ApplicationService, deps.MediaService)
	reviewHandler := handlers.NewReviewHandler(deps.ReviewService)
	reportHandler := handlers.NewReportHandler(deps.ReportService)
	notificationHandler := handlers.NewNotificationHandler(deps.NotificationService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)
	adminHandler := handlers.NewAdminHandler(
		deps.ModerationService,
		deps.AccountService,
		deps.ActivityService,
		deps.Config.IsDev(),
	)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	adminMW := RequireRole("admin")

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/v1", func(r chi.Router) {
		r.With(authMW).Get("/me", accountHandler.Me)
		r.With(authMW).Put("/me", accountHandler.UpdateProfile)
		r.With(authMW).Post("/me/password", accountHandler.ChangePassword)

		r.Get("/jobs", jobHandler.Search)
		r.Get("/jobs/{id}", jobHandler.Get)
		r.With(authMW).Post("/jobs", jobHandler.Create)
		r.With(authMW).Put("/jobs/{id}", jobHandler.Update)
		r.With(authMW).Delete("/jobs/{id}", jobHandler.Delete)
		r.With(authMW).Get("/employer/jobs", jobHandler.ListOwn)
		r.With(authMW).Get("/jobs/{id}/applications", applicationHandler.ListForJob)

		r.With(authMW).Post("/applications", applicationHandler.Apply)
		r.With(authMW).Get("/applications", applicationHandler.ListOwn)
		r.With(authMW).Post("/applications/{id}/withdraw", applicationHandler.Withdraw)
		r.With(authMW).Post("/applications/{id}/resume", applicationHandler.AttachResume)
		r.With(authMW).Post("/applications/{id}/status", applicationHandler.SetStatus)
		r.With(authMW).Get("/applications/{id}/resume_link", applicationHandler.ResumeLink)

		r.With(authMW).Post("/media/resume", mediaHandler.ResumeUpload)

		r.Get("/employers/{id}/reviews", reviewHandler.ListForEmployer)
		r.With(authMW).Post("/reviews", reviewHandler.Create)

		r.Post("/reports", reportHandler.Create)

		r.With(authMW).Get("/notifications", notificationHandler.ListUnread)
		r.With(authMW).Get("/notifications/count", notificationHandler.UnreadCount)
		r.With(authMW).Post("/notifications/{id}/read", notificationHandler.MarkRead)
	})

	r.Route("/v1/admin", func(r chi.Router) {
		r.Use(authMW, adminMW)
		r.Post("/moderation/transition", adminHandler.Transition)
		r.Post("/moderation/bulk", adminHandler.BulkAction)
		r.Get("/accounts", adminHandler.ListAccounts)
		r.Get("/reviews/pending", reviewHandler.ListPending)
		r.Get("/reports/pending", reportHandler.ListPending)
		r.Get("/activity", adminHandler.ActivityLog)
		r.Post("/activity/clear", adminHandler.ClearActivityLog)
	})
}
