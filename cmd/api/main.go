package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/ponto-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/redis"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/ponto-backend-go/internal/service/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/file"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/master"
	reportService "github.com/cmlabs-hris/ponto-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
	}

	ctx := context.Background()

	fileStorage, err := storage.New(ctx, cfg.Storage.Type, cfg.Storage.BasePath, cfg.Storage.BaseURL, cfg.Storage.S3Bucket, cfg.Storage.S3Prefix)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	// Without REDIS_ADDR the nil client makes the punch lock a no-op and the
	// advisory lock in PostgreSQL is the only serialization.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to initialize redis:", err)
		}
		defer redisClient.Close()
	}

	eventRepo := postgresql.NewEventRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	sectorRepo := postgresql.NewSectorRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		eventRepo,
		workerRepo,
		sectorRepo,
		fileService,
		redisClient,
		attendanceService.Config{
			Cooldown:     cfg.Attendance.PunchCooldown,
			Location:     cfg.Location(),
			MaxRangeDays: cfg.Attendance.ReportMaxDays,
		},
	)
	reportSvc := reportService.NewReportService(eventRepo, workerRepo, sectorRepo, cfg.Location(), cfg.Attendance.ReportMaxDays)
	sectorSvc := master.NewSectorService(sectorRepo)
	workerSvc := master.NewWorkerService(workerRepo, sectorRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	masterHandler := appHTTP.NewMasterHandler(sectorSvc, workerSvc)

	opts := appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		LogLevel:       logLevel,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	}
	if cfg.Storage.Type == "local" {
		opts.UploadsDir = cfg.Storage.BasePath
	}

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		reportHandler,
		masterHandler,
		opts,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
