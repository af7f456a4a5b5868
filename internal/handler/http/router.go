package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string

	// UploadsDir is served under /uploads when evidence is kept on local disk.
	UploadsDir string
}

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	masterHandler MasterHandler,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			// Capture terminals
			r.Route("/punches", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPunchCreate))
				r.Post("/", attendanceHandler.Punch)
				r.Post("/preview", attendanceHandler.PreviewPunch)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(user.PermissionAttendanceViewOwn, user.PermissionAttendanceViewAll))
					r.Get("/table", attendanceHandler.Table)
					r.Get("/events", attendanceHandler.ListEvents)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionExceptionManage))
					r.Post("/exceptions", attendanceHandler.RecordException)
					r.Delete("/events", attendanceHandler.RemoveEvent)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsExport))
				r.Get("/attendance", reportHandler.DownloadAttendanceReport)
			})

			r.Route("/sectors", func(r chi.Router) {
				r.With(middleware.RequireAnyPermission(user.PermissionWorkerViewAll, user.PermissionSectorManage)).Get("/", masterHandler.ListSectors)
				r.With(middleware.RequireAnyPermission(user.PermissionWorkerViewAll, user.PermissionSectorManage)).Get("/{id}", masterHandler.GetSector)

				// Super admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSectorManage))
					r.Post("/", masterHandler.CreateSector)
					r.Put("/{id}", masterHandler.UpdateSector)
					r.Delete("/{id}", masterHandler.DeleteSector)
				})
			})

			r.Route("/workers", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionWorkerViewAll)).Get("/", masterHandler.ListWorkers)
				r.With(middleware.RequireAnyPermission(user.PermissionAttendanceViewOwn, user.PermissionWorkerViewAll)).Get("/{subjectID}", masterHandler.GetWorker)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionWorkerManage))
					r.Post("/", masterHandler.CreateWorker)
					r.Put("/{subjectID}", masterHandler.UpdateWorker)
				})
			})
		})
	})
	return r
}
